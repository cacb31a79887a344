package fallback

import (
	"context"

	"github.com/goodnatureofminers/blockinsight7000-assets/internal/asset/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Node interface {
		GetAddressDeltas(ctx context.Context, addresses []string, assetName string) ([]model.AddressDelta, error)
	}
	Registry interface {
		FindAssetByID(ctx context.Context, coin model.Coin, network model.Network, assetID string) (model.Asset, error)
	}
)
