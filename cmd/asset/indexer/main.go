package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/btcsuite/btcd/rpcclient"
	"github.com/goodnatureofminers/blockinsight7000-assets/internal/asset/classifier"
	"github.com/goodnatureofminers/blockinsight7000-assets/internal/asset/controller"
	"github.com/goodnatureofminers/blockinsight7000-assets/internal/asset/explorer"
	"github.com/goodnatureofminers/blockinsight7000-assets/internal/asset/fallback"
	"github.com/goodnatureofminers/blockinsight7000-assets/internal/asset/model"
	"github.com/goodnatureofminers/blockinsight7000-assets/internal/asset/node"
	"github.com/goodnatureofminers/blockinsight7000-assets/internal/asset/recorder"
	"github.com/goodnatureofminers/blockinsight7000-assets/internal/asset/repository/clickhouse"
	"github.com/goodnatureofminers/blockinsight7000-assets/internal/asset/repository/postgres"
	"github.com/goodnatureofminers/blockinsight7000-assets/internal/asset/resolver"
	"github.com/goodnatureofminers/blockinsight7000-assets/internal/metrics"
	"github.com/goodnatureofminers/blockinsight7000-assets/internal/transport"
	"github.com/goodnatureofminers/blockinsight7000-assets/pkg/batcher"
	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const (
	storageClickhouse = "clickhouse"
	storagePostgres   = "postgres"

	skipFlushSize     = 100
	skipFlushInterval = 5 * time.Second
	skipFlushRPS      = 10
)

type config struct {
	Storage          string        `long:"storage" env:"ASSET_INDEXER_STORAGE" description:"storage backend" choice:"clickhouse" choice:"postgres" default:"clickhouse"`
	ClickhouseDSN    string        `long:"clickhouse-dsn" env:"ASSET_INDEXER_CLICKHOUSE_DSN" description:"ClickHouse DSN"`
	PostgresDSN      string        `long:"postgres-dsn" env:"ASSET_INDEXER_POSTGRES_DSN" description:"PostgreSQL DSN"`
	Coin             model.Coin    `long:"coin" env:"ASSET_INDEXER_COIN" description:"coin name" required:"true"`
	Network          model.Network `long:"network" env:"ASSET_INDEXER_NETWORK" description:"network name" required:"true"`
	RPCURL           string        `long:"rpc-url" env:"ASSET_INDEXER_RPC_URL" description:"node RPC URL" default:"http://127.0.0.1:8766"`
	RPCUser          string        `long:"rpc-user" env:"ASSET_INDEXER_RPC_USER" description:"node RPC username"`
	RPCPassword      string        `long:"rpc-password" env:"ASSET_INDEXER_RPC_PASSWORD" description:"node RPC password"`
	RPCTimeout       time.Duration `long:"rpc-timeout" env:"ASSET_INDEXER_RPC_TIMEOUT" description:"timeout for a single RPC request" default:"30s"`
	PollInterval     time.Duration `long:"poll-interval" env:"ASSET_INDEXER_POLL_INTERVAL" description:"wait between polls at the chain tip" default:"5s"`
	BackoffInitial   time.Duration `long:"backoff-initial" env:"ASSET_INDEXER_BACKOFF_INITIAL" description:"first retry delay after a node failure" default:"1s"`
	BackoffMax       time.Duration `long:"backoff-max" env:"ASSET_INDEXER_BACKOFF_MAX" description:"retry delay cap" default:"1m"`
	MaxReorgDepth    uint64        `long:"max-reorg-depth" env:"ASSET_INDEXER_MAX_REORG_DEPTH" description:"deepest reorganization rewound automatically" default:"100"`
	StartHeight      uint64        `long:"start-height" env:"ASSET_INDEXER_START_HEIGHT" description:"first height indexed when no cursor exists"`
	HTTPAddr         string        `long:"http-addr" env:"ASSET_INDEXER_HTTP_ADDR" description:"address for the read and admin API" default:":8080"`
	ReadOnly         bool          `long:"read-only" env:"ASSET_INDEXER_READ_ONLY" description:"do not expose admin endpoints"`
	MetricsAddr      string        `long:"metrics-addr" env:"ASSET_INDEXER_METRICS_ADDR" description:"address for metrics server" default:":2112"`
	ZMQAddr          string        `long:"zmq-addr" env:"ASSET_INDEXER_ZMQ_ADDR" description:"node ZMQ endpoint publishing hashblock"`
	ClassifierConfig string        `long:"classifier-config" env:"ASSET_INDEXER_CLASSIFIER_CONFIG" description:"YAML file with classifier overrides"`
	BurnAddresses    []string      `long:"burn-address" env:"ASSET_INDEXER_BURN_ADDRESSES" env-delim:"," description:"address whose receipts are burns (repeatable)"`
	FallbackWorkers  int           `long:"fallback-workers" env:"ASSET_INDEXER_FALLBACK_WORKERS" description:"parallel address lookups on the fallback path" default:"4"`
	LogJSON          bool          `long:"log-json" env:"ASSET_INDEXER_LOG_JSON" description:"emit JSON logs"`
}

// storage is everything the indexer needs from a backend.
type storage interface {
	controller.Store
	recorder.Store
	resolver.Registry
	explorer.Store
	InsertSkippedOutputs(ctx context.Context, outputs []model.SkippedOutput) error
	Close() error
}

func main() {
	cfg := config{}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if _, err := flags.ParseArgs(&cfg, os.Args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger, err := newLogger(cfg.LogJSON)
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("asset indexer failed", zap.Error(err))
	}
}

func newLogger(jsonOutput bool) (*zap.Logger, error) {
	if jsonOutput {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	startMetricsServer(ctx, cfg.MetricsAddr, logger)

	repo, err := newStorage(cfg)
	if err != nil {
		return fmt.Errorf("init repository: %w", err)
	}
	defer func() {
		if err := repo.Close(); err != nil {
			logger.Error("failed to close repository", zap.Error(err))
		}
	}()

	rpcClient, err := newRPCClient(cfg.RPCURL, cfg.RPCUser, cfg.RPCPassword)
	if err != nil {
		return fmt.Errorf("init node rpc client: %w", err)
	}
	defer func() {
		rpcClient.Shutdown()
		rpcClient.WaitForShutdown()
	}()
	nodeClient := node.NewClient(rpcClient, metrics.NewRPCClient(cfg.Coin, cfg.Network), cfg.RPCTimeout)

	clsCfg, err := classifier.LoadConfig(cfg.ClassifierConfig)
	if err != nil {
		return err
	}
	clsCfg.BurnAddresses = append(clsCfg.BurnAddresses, cfg.BurnAddresses...)

	skips := batcher.New(
		logger.Named("skippedOutputs"),
		repo.InsertSkippedOutputs,
		skipFlushSize,
		skipFlushInterval,
		skipFlushRPS,
	)
	skips.Start(ctx)
	defer skips.Stop()

	blockSignal, err := startBlockSignal(ctx, cfg.ZMQAddr, logger)
	if err != nil {
		return fmt.Errorf("init block signal: %w", err)
	}

	ctrl, err := controller.New(
		controller.Config{
			Coin:           cfg.Coin,
			Network:        cfg.Network,
			PollInterval:   cfg.PollInterval,
			BackoffInitial: cfg.BackoffInitial,
			BackoffMax:     cfg.BackoffMax,
			MaxReorgDepth:  cfg.MaxReorgDepth,
			StartHeight:    cfg.StartHeight,
		},
		nodeClient,
		repo,
		classifier.New(clsCfg),
		resolver.New(repo, cfg.Coin, cfg.Network),
		recorder.New(repo, cfg.Coin, cfg.Network, logger.Named("recorder")),
		skips,
		metrics.NewSyncController(cfg.Coin, cfg.Network, controller.States()...),
		logger.Named("controller"),
		blockSignal,
	)
	if err != nil {
		return err
	}

	query := fallback.New(nodeClient, repo, cfg.Coin, cfg.Network, cfg.FallbackWorkers, logger.Named("fallback"))
	svc, err := explorer.New(repo, query, metrics.NewExplorer(cfg.Coin, cfg.Network), cfg.Coin, cfg.Network, logger.Named("explorer"))
	if err != nil {
		return err
	}

	var admin transport.Admin
	if !cfg.ReadOnly {
		admin = ctrl
	}
	startAPIServer(ctx, cfg.HTTPAddr, transport.NewHandler(svc, admin, logger.Named("http")), logger)

	if err := ctrl.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logger.Info("asset indexer stopped", zap.Uint64("cursor_height", ctrl.Cursor().Height))
	return nil
}

func newStorage(cfg config) (storage, error) {
	switch cfg.Storage {
	case storageClickhouse:
		return clickhouse.NewRepository(cfg.ClickhouseDSN, metrics.NewRepository(storageClickhouse))
	case storagePostgres:
		return postgres.NewRepository(cfg.PostgresDSN, metrics.NewRepository(storagePostgres))
	default:
		return nil, fmt.Errorf("unknown storage %q", cfg.Storage)
	}
}

func startAPIServer(ctx context.Context, addr string, handler http.Handler, logger *zap.Logger) {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("starting api server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("api server failed", zap.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to shutdown api server", zap.Error(err))
		}
	}()
}

func startMetricsServer(ctx context.Context, addr string, logger *zap.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("starting metrics server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", zap.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to shutdown metrics server", zap.Error(err))
		}
	}()
}

// newRPCClient connects in HTTP POST mode; request timeouts are applied by node.Client.
func newRPCClient(rawURL, user, password string) (*rpcclient.Client, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse rpc url: %w", err)
	}
	if parsed.Scheme != "http" {
		return nil, fmt.Errorf("rpc url scheme %q not supported, use http", parsed.Scheme)
	}
	if parsed.Host == "" {
		return nil, errors.New("rpc url missing host")
	}

	cfg := &rpcclient.ConnConfig{
		Host:         parsed.Host,
		User:         user,
		Pass:         password,
		HTTPPostMode: true,
		DisableTLS:   true,
	}

	return rpcclient.New(cfg, nil)
}
