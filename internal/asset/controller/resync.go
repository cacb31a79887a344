package controller

import (
	"context"
	"fmt"

	"github.com/goodnatureofminers/blockinsight7000-assets/internal/asset/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

func newRequestID() string {
	return uuid.NewString()
}

// RequestResync validates req and queues it for the loop. The block in flight
// finishes before the resync starts. Rejections leave state untouched.
func (c *Controller) RequestResync(req model.ResyncRequest) (model.ResyncRequest, error) {
	if !req.Mode.Valid() {
		return model.ResyncRequest{}, &model.AdministrativeResyncError{Reason: fmt.Sprintf("unknown mode %q", req.Mode)}
	}
	if req.FromHeight < 1 {
		return model.ResyncRequest{}, &model.AdministrativeResyncError{Reason: "fromHeight must be at least 1"}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.loaded {
		return model.ResyncRequest{}, &model.AdministrativeResyncError{Reason: "controller is not running"}
	}
	if req.FromHeight > c.cursor.Next() {
		return model.ResyncRequest{}, &model.AdministrativeResyncError{
			Reason: fmt.Sprintf("fromHeight %d is beyond cursor %d", req.FromHeight, c.cursor.Height),
		}
	}
	if c.pending != nil {
		return model.ResyncRequest{}, &model.AdministrativeResyncError{
			Reason: fmt.Sprintf("resync %s is already pending", c.pending.ID),
		}
	}

	req.ID = c.newID()
	req.Reason = reasonOperator
	c.pending = &req
	c.notify()

	c.logger.Info("resync requested",
		zap.String("id", req.ID),
		zap.Uint64("from_height", req.FromHeight),
		zap.String("mode", string(req.Mode)),
	)
	return req, nil
}

func (c *Controller) takePending() *model.ResyncRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	req := c.pending
	c.pending = nil
	return req
}

// PendingResync returns the queued request, if any.
func (c *Controller) PendingResync() *model.ResyncRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending == nil {
		return nil
	}
	req := *c.pending
	return &req
}

// performResync rewinds the cursor to req.FromHeight-1 and then cleans up.
// The cursor is written first so a crash mid-cleanup replays the range.
func (c *Controller) performResync(ctx context.Context, req model.ResyncRequest) (err error) {
	c.setState(StateResyncing)
	defer func() {
		c.metrics.ObserveResync(req.Mode, req.Reason, err)
	}()

	ctx = context.WithoutCancel(ctx)
	target := req.FromHeight - 1

	c.mu.Lock()
	hash := ""
	if req.Reason == reasonReorg {
		hash = c.recent[target]
	}
	c.mu.Unlock()

	rewound := model.SyncCursor{Height: target, Hash: hash, UpdatedAt: c.now().UTC()}
	if err = c.store.SetCursor(ctx, c.cfg.Coin, c.cfg.Network, rewound); err != nil {
		return fmt.Errorf("resync %s: rewind cursor: %w", req.ID, err)
	}

	var deleted uint64
	switch req.Mode {
	case model.ResyncClearAll:
		err = c.store.ResetAll(ctx, c.cfg.Coin, c.cfg.Network)
	case model.ResyncClearTransfers:
		deleted, err = c.store.DeleteTransfersFrom(ctx, c.cfg.Coin, c.cfg.Network, req.FromHeight)
	}
	if err != nil {
		return fmt.Errorf("resync %s: %s cleanup: %w", req.ID, req.Mode, err)
	}

	c.mu.Lock()
	c.cursor = rewound
	for h := range c.recent {
		if h > target {
			delete(c.recent, h)
		}
	}
	c.mu.Unlock()
	c.metrics.ObserveCursor(target)

	c.logger.Info("resync completed",
		zap.String("id", req.ID),
		zap.String("reason", req.Reason),
		zap.String("mode", string(req.Mode)),
		zap.Uint64("from_height", req.FromHeight),
		zap.Uint64("cursor_height", target),
		zap.Uint64("deleted_transfers", deleted),
	)
	c.setState(StateFetching)
	return nil
}

// handleReorg rewinds to the last block whose hash still matches the node.
func (c *Controller) handleReorg(ctx context.Context, cursor model.SyncCursor, block *model.Block) error {
	fork, err := c.forkPoint(ctx, cursor)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.reorgDepth += cursor.Height - fork
	depth := c.reorgDepth
	c.mu.Unlock()
	if depth > c.cfg.MaxReorgDepth {
		return fmt.Errorf("%w: rewound %d blocks below %d", errReorgTooDeep, depth, block.Height)
	}

	c.logger.Warn("chain reorganization detected",
		zap.Uint64("height", block.Height),
		zap.String("expected_prev", cursor.Hash),
		zap.String("actual_prev", block.PreviousBlockHash),
		zap.Uint64("fork_height", fork),
	)
	return c.performResync(ctx, model.ResyncRequest{
		ID:         c.newID(),
		FromHeight: fork + 1,
		Mode:       model.ResyncClearTransfers,
		Reason:     reasonReorg,
	})
}

// forkPoint walks back from the cursor comparing recorded hashes with the
// node. Unknown history rewinds one block at a time.
func (c *Controller) forkPoint(ctx context.Context, cursor model.SyncCursor) (uint64, error) {
	for depth := uint64(1); depth <= c.cfg.MaxReorgDepth; depth++ {
		if cursor.Height < depth {
			return 0, nil
		}
		height := cursor.Height - depth
		if height == 0 {
			return 0, nil
		}

		c.mu.Lock()
		ours, ok := c.recent[height]
		c.mu.Unlock()
		if !ok {
			return height, nil
		}

		theirs, err := c.node.GetBlockHash(ctx, height)
		if err != nil {
			return 0, err
		}
		if ours == theirs {
			return height, nil
		}
	}
	return 0, fmt.Errorf("%w: no common block within %d blocks of %d", errReorgTooDeep, c.cfg.MaxReorgDepth, cursor.Height)
}
