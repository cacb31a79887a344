package explorer

import (
	"context"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-assets/internal/asset/fallback"
	"github.com/goodnatureofminers/blockinsight7000-assets/internal/asset/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Store interface {
		FindTransfersByAsset(ctx context.Context, coin model.Coin, network model.Network, assetID string, offset, limit uint64) ([]model.AssetTransfer, error)
		CountTransfersByAsset(ctx context.Context, coin model.Coin, network model.Network, assetID string) (uint64, error)
	}
	Fallback interface {
		Lookup(ctx context.Context, assetID string, extra ...string) fallback.Result
	}
	Metrics interface {
		ObserveQuery(source model.DataSource, degraded bool, started time.Time)
	}
)
