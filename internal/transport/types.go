package transport

import (
	"context"

	"github.com/goodnatureofminers/blockinsight7000-assets/internal/asset/controller"
	"github.com/goodnatureofminers/blockinsight7000-assets/internal/asset/explorer"
	"github.com/goodnatureofminers/blockinsight7000-assets/internal/asset/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Explorer interface {
		GetTransfersForAsset(ctx context.Context, assetID string, page, limit int) (explorer.Page, error)
	}
	Admin interface {
		RequestResync(req model.ResyncRequest) (model.ResyncRequest, error)
		Diagnostics(ctx context.Context) (controller.Diagnostics, error)
	}
)
