package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-assets/internal/asset/model"
)

// refreshTransferCountQuery writes the delta that brings one asset's summed
// counter level with its persisted transfer and burn rows.
const refreshTransferCountQuery = `
INSERT INTO asset_transfer_counts (coin, network, asset_id, delta)
SELECT ?, ?, ?, d
FROM
(
	SELECT
		(
			SELECT toInt64(count())
			FROM asset_transfers FINAL
			WHERE coin = ? AND network = ? AND asset_id = ? AND type IN ('transfer', 'burn')
		) - (
			SELECT toInt64(sum(delta))
			FROM asset_transfer_counts
			WHERE coin = ? AND network = ? AND asset_id = ?
		) AS d
)
WHERE d != 0`

// reconcileTransferCountsQuery writes a correcting delta for every asset whose
// summed counter differs from its persisted transfer and burn rows.
const reconcileTransferCountsQuery = `
INSERT INTO asset_transfer_counts (coin, network, asset_id, delta)
SELECT ?, ?, c.asset_id, t.transfer_count - c.transfer_count
FROM
(
	SELECT asset_id, sum(delta) AS transfer_count
	FROM asset_transfer_counts
	WHERE coin = ? AND network = ?
	GROUP BY asset_id
) AS c
LEFT JOIN
(
	SELECT asset_id, toInt64(count()) AS transfer_count
	FROM asset_transfers FINAL
	WHERE coin = ? AND network = ? AND type IN ('transfer', 'burn')
	GROUP BY asset_id
) AS t ON t.asset_id = c.asset_id
WHERE t.transfer_count != c.transfer_count`

// RefreshTransferCount levels the asset's transfer counter with its stored rows.
func (r *Repository) RefreshTransferCount(ctx context.Context, coin model.Coin, network model.Network, assetID string) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("refresh_transfer_count", coin, network, err, start)
	}()

	if err = r.conn.Exec(ctx, refreshTransferCountQuery,
		string(coin), string(network), assetID,
		string(coin), string(network), assetID,
		string(coin), string(network), assetID,
	); err != nil {
		return fmt.Errorf("refresh transfer count: %w", err)
	}
	return nil
}

func (r *Repository) reconcileTransferCounts(ctx context.Context, coin model.Coin, network model.Network) error {
	if err := r.conn.Exec(ctx, reconcileTransferCountsQuery,
		string(coin), string(network),
		string(coin), string(network),
		string(coin), string(network),
	); err != nil {
		return fmt.Errorf("reconcile transfer counts: %w", err)
	}
	return nil
}
