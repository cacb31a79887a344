package recorder

import (
	"context"

	"github.com/goodnatureofminers/blockinsight7000-assets/internal/asset/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Store interface {
		InsertTransferIfAbsent(ctx context.Context, t model.AssetTransfer) (model.AssetTransfer, bool, error)
		UpsertAsset(ctx context.Context, asset model.Asset) (bool, error)
		FindAssetByID(ctx context.Context, coin model.Coin, network model.Network, assetID string) (model.Asset, error)
		RefreshTransferCount(ctx context.Context, coin model.Coin, network model.Network, assetID string) error
		UpdateAssetOwner(ctx context.Context, coin model.Coin, network model.Network, assetID, owner string) error
	}
)
