package controller

import (
	"context"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-assets/internal/asset/classifier"
	"github.com/goodnatureofminers/blockinsight7000-assets/internal/asset/model"
	"github.com/goodnatureofminers/blockinsight7000-assets/internal/asset/recorder"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Node interface {
		GetBlockByHeight(ctx context.Context, height uint64) (*model.Block, error)
		GetBlockHash(ctx context.Context, height uint64) (string, error)
		GetTransaction(ctx context.Context, txid string) (*model.Transaction, error)
		BestHeight(ctx context.Context) (uint64, error)
	}
	Store interface {
		GetCursor(ctx context.Context, coin model.Coin, network model.Network) (model.SyncCursor, error)
		SetCursor(ctx context.Context, coin model.Coin, network model.Network, cursor model.SyncCursor) error
		ResetAll(ctx context.Context, coin model.Coin, network model.Network) error
		DeleteTransfersFrom(ctx context.Context, coin model.Coin, network model.Network, height uint64) (uint64, error)
		Stats(ctx context.Context, coin model.Coin, network model.Network) (model.RegistryStats, error)
	}
	Classifier interface {
		Classify(tx model.Transaction) []classifier.RawPayload
	}
	Resolver interface {
		Resolve(ctx context.Context, txid string, p classifier.RawPayload) (model.AssetIdentity, error)
	}
	Recorder interface {
		Record(ctx context.Context, ev recorder.Event) (recorder.Result, model.AssetTransfer, error)
	}
	SkipSink interface {
		Add(ctx context.Context, item model.SkippedOutput) error
	}
	Metrics interface {
		ObserveBlock(err error, transactions int, started time.Time)
		ObserveOutputs(inserted, duplicates, malformed, unresolved int)
		ObserveCursor(height uint64)
		ObserveState(state string)
		ObserveBackoff(d time.Duration)
		ObserveResync(mode model.ResyncMode, reason string, err error)
	}
)
