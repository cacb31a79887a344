// Package controller drives block-by-block asset indexing for one chain.
package controller

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/goodnatureofminers/blockinsight7000-assets/internal/asset/model"
	"github.com/goodnatureofminers/blockinsight7000-assets/internal/asset/node"
	"github.com/goodnatureofminers/blockinsight7000-assets/internal/clock"
	"go.uber.org/zap"
)

var (
	errTipReached     = errors.New("chain tip reached")
	errReorgTooDeep   = errors.New("reorganization deeper than max reorg depth")
	errMissingMetrics = errors.New("sync controller metrics is required")
)

// Config tunes the controller loop. Zero values fall back to defaults.
type Config struct {
	Coin           model.Coin
	Network        model.Network
	PollInterval   time.Duration
	BackoffInitial time.Duration
	BackoffMax     time.Duration
	MaxReorgDepth  uint64
	// StartHeight is the first block indexed when no cursor is persisted.
	StartHeight    uint64
}

func (c Config) withDefaults() Config {
	if c.PollInterval <= 0 {
		c.PollInterval = defaultPollInterval
	}
	if c.BackoffInitial <= 0 {
		c.BackoffInitial = defaultBackoffInitial
	}
	if c.BackoffMax <= 0 {
		c.BackoffMax = defaultBackoffMax
	}
	if c.MaxReorgDepth == 0 {
		c.MaxReorgDepth = defaultMaxReorgDepth
	}
	return c
}

// Controller is the single sequential driver of one coin/network.
type Controller struct {
	logger      *zap.Logger
	cfg         Config
	node        Node
	store       Store
	metrics     Metrics
	processor   *blockProcessor
	backoff     backoff.BackOff
	sleep       func(context.Context, time.Duration) error
	wait        func(context.Context, time.Duration) error
	now         func() time.Time
	newID       func() string
	blockSignal <-chan struct{}
	wake        chan struct{}

	mu         sync.Mutex
	state      State
	cursor     model.SyncCursor
	loaded     bool
	pending    *model.ResyncRequest
	// recent maps processed heights to hashes for reorg walk-back.
	recent     map[uint64]string
	reorgDepth uint64
}

// New builds a Controller. skips and blockSignal are optional.
func New(
	cfg Config,
	n Node,
	store Store,
	cls Classifier,
	res Resolver,
	rec Recorder,
	skips SkipSink,
	metrics Metrics,
	logger *zap.Logger,
	blockSignal <-chan struct{},
) (*Controller, error) {
	if metrics == nil {
		return nil, errMissingMetrics
	}
	cfg = cfg.withDefaults()
	logger = logger.With(
		zap.String("coin", string(cfg.Coin)),
		zap.String("network", string(cfg.Network)),
	)

	c := &Controller{
		logger:  logger,
		cfg:     cfg,
		node:    n,
		store:   store,
		metrics: metrics,
		processor: &blockProcessor{
			node:       n,
			classifier: cls,
			resolver:   res,
			recorder:   rec,
			skips:      skips,
			coin:       cfg.Coin,
			network:    cfg.Network,
			logger:     logger.Named("blockProcessor"),
		},
		backoff: backoff.NewExponentialBackOff(
			backoff.WithInitialInterval(cfg.BackoffInitial),
			backoff.WithMaxInterval(cfg.BackoffMax),
			backoff.WithMaxElapsedTime(0),
		),
		sleep:       clock.SleepWithContext,
		now:         time.Now,
		newID:       newRequestID,
		blockSignal: blockSignal,
		wake:        make(chan struct{}, 1),
		state:       StateIdle,
		recent:      make(map[uint64]string),
	}
	c.wait = c.waitForBlock
	return c, nil
}

// Run indexes blocks until ctx is canceled or a fatal error occurs. The block
// in flight is always finished before Run returns.
func (c *Controller) Run(ctx context.Context) error {
	if err := c.loadCursor(ctx); err != nil {
		return err
	}
	c.logger.Info("sync controller started", zap.Uint64("cursor_height", c.Cursor().Height))

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		if req := c.takePending(); req != nil {
			if err := c.performResync(ctx, *req); err != nil {
				return err
			}
			continue
		}

		err := c.step(ctx)
		switch {
		case err == nil:
			c.backoff.Reset()
		case errors.Is(err, errTipReached):
			c.backoff.Reset()
			c.setState(StateIdle)
			if waitErr := c.wait(ctx, c.cfg.PollInterval); waitErr != nil {
				return waitErr
			}
		case ctx.Err() != nil && errors.Is(err, ctx.Err()):
			return ctx.Err()
		case node.IsTransport(err):
			if sleepErr := c.backoffAfter(ctx, err); sleepErr != nil {
				return sleepErr
			}
		default:
			c.logger.Error("sync controller halted", zap.Error(err))
			return err
		}
	}
}

func (c *Controller) loadCursor(ctx context.Context) error {
	cursor, err := c.store.GetCursor(ctx, c.cfg.Coin, c.cfg.Network)
	if err != nil {
		return fmt.Errorf("load cursor: %w", err)
	}
	if err = cursor.Validate(); err != nil {
		return err
	}
	if cursor.Height == 0 && cursor.Hash == "" && c.cfg.StartHeight > 1 {
		cursor.Height = c.cfg.StartHeight - 1
	}

	c.mu.Lock()
	c.cursor = cursor
	c.loaded = true
	if cursor.Hash != "" {
		c.recent[cursor.Height] = cursor.Hash
	}
	c.mu.Unlock()
	c.metrics.ObserveCursor(cursor.Height)
	return nil
}

func (c *Controller) step(ctx context.Context) error {
	cursor := c.Cursor()
	height := cursor.Next()

	c.setState(StateFetching)
	block, err := c.node.GetBlockByHeight(ctx, height)
	if errors.Is(err, node.ErrNotFound) {
		return errTipReached
	}
	if err != nil {
		return err
	}
	if block.Height != height {
		return &node.TransportError{
			Method: "getblock",
			Err:    fmt.Errorf("node returned height %d for %d", block.Height, height),
		}
	}

	if cursor.Hash != "" && block.PreviousBlockHash != cursor.Hash {
		return c.handleReorg(ctx, cursor, block)
	}

	started := time.Now()
	c.setState(StateProcessingBlock)
	// The block is finished even when shutdown is requested.
	outcome, err := c.processor.Process(context.WithoutCancel(ctx), block)
	c.metrics.ObserveBlock(err, len(block.Tx), started)
	if err != nil {
		return fmt.Errorf("process block %d: %w", height, err)
	}
	c.metrics.ObserveOutputs(outcome.Inserted, outcome.Duplicates, outcome.Malformed, outcome.Unresolved)

	c.setState(StateAdvancingCursor)
	next := model.SyncCursor{Height: block.Height, Hash: block.Hash, UpdatedAt: c.now().UTC()}
	if err = c.store.SetCursor(context.WithoutCancel(ctx), c.cfg.Coin, c.cfg.Network, next); err != nil {
		return fmt.Errorf("advance cursor to %d: %w", block.Height, err)
	}
	c.advance(next)

	c.logger.Info("block processed",
		zap.Uint64("height", block.Height),
		zap.String("hash", block.Hash),
		zap.Int("transactions", len(block.Tx)),
		zap.Int("inserted", outcome.Inserted),
		zap.Int("duplicates", outcome.Duplicates),
		zap.Int("skipped_malformed", outcome.Malformed),
		zap.Int("skipped_unresolved", outcome.Unresolved),
		zap.Duration("duration", time.Since(started)),
	)
	c.setState(StateIdle)
	return nil
}

func (c *Controller) advance(next model.SyncCursor) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cursor = next
	c.recent[next.Height] = next.Hash
	if next.Height > c.cfg.MaxReorgDepth {
		delete(c.recent, next.Height-c.cfg.MaxReorgDepth-1)
	}
	c.reorgDepth = 0
	c.metrics.ObserveCursor(next.Height)
}

func (c *Controller) backoffAfter(ctx context.Context, cause error) error {
	d := c.backoff.NextBackOff()
	if d == backoff.Stop {
		d = c.cfg.BackoffMax
	}
	c.setState(StateErrorBackoff)
	c.metrics.ObserveBackoff(d)
	c.logger.Warn("node unavailable, backing off",
		zap.Uint64("height", c.Cursor().Next()),
		zap.Duration("sleep", d),
		zap.Error(cause),
	)
	return c.sleep(ctx, d)
}

func (c *Controller) waitForBlock(ctx context.Context, d time.Duration) error {
	_, err := clock.WaitForSignal(ctx, d, c.blockSignal, c.wake)
	return err
}

func (c *Controller) notify() {
	select {
	case c.wake <- struct{}{}:
	default:
	}
}

// Cursor returns the last fully processed position.
func (c *Controller) Cursor() model.SyncCursor {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cursor
}
