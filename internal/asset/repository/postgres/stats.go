package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-assets/internal/asset/model"
	"github.com/goodnatureofminers/blockinsight7000-assets/pkg/safe"
)

// Stats returns registry totals for diagnostics.
func (r *Repository) Stats(ctx context.Context, coin model.Coin, network model.Network) (model.RegistryStats, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("stats", coin, network, err, start)
	}()

	const query = `
SELECT
	(SELECT count(*) FROM assets WHERE coin = $1 AND network = $2),
	(SELECT count(*) FROM asset_transfers WHERE coin = $1 AND network = $2)`

	var assets, transfers int64
	if err = r.db.QueryRowContext(ctx, query, string(coin), string(network)).Scan(&assets, &transfers); err != nil {
		return model.RegistryStats{}, fmt.Errorf("query stats: %w", err)
	}

	var stats model.RegistryStats
	if stats.AssetCount, err = safe.Uint64(assets); err != nil {
		return model.RegistryStats{}, err
	}
	if stats.TransferCount, err = safe.Uint64(transfers); err != nil {
		return model.RegistryStats{}, err
	}
	return stats, nil
}
