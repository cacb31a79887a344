package resolver

import (
	"context"

	"github.com/goodnatureofminers/blockinsight7000-assets/internal/asset/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Registry looks up persisted assets. Misses return model.ErrAssetNotFound.
	Registry interface {
		FindAssetByID(ctx context.Context, coin model.Coin, network model.Network, assetID string) (model.Asset, error)
		FindAssetByName(ctx context.Context, coin model.Coin, network model.Network, name string) (model.Asset, error)
	}
)
