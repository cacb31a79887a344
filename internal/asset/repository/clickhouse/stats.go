package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-assets/internal/asset/model"
)

const statsQuery = `
SELECT
	(SELECT count() FROM assets FINAL WHERE coin = ? AND network = ?) AS asset_count,
	(SELECT count() FROM asset_transfers FINAL WHERE coin = ? AND network = ?) AS transfer_count`

// Stats returns registry totals for diagnostics.
func (r *Repository) Stats(ctx context.Context, coin model.Coin, network model.Network) (model.RegistryStats, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("stats", coin, network, err, start)
	}()

	var stats model.RegistryStats
	if err = r.conn.QueryRow(ctx, statsQuery, string(coin), string(network), string(coin), string(network)).Scan(
		&stats.AssetCount,
		&stats.TransferCount,
	); err != nil {
		return model.RegistryStats{}, fmt.Errorf("query stats: %w", err)
	}
	return stats, nil
}
