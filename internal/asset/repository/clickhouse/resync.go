package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-assets/internal/asset/model"
)

var resetTables = []string{
	"asset_transfers",
	"asset_transfer_counts",
	"asset_skipped_outputs",
	"assets",
}

const countTransfersFromQuery = `
SELECT count()
FROM asset_transfers FINAL
WHERE coin = ? AND network = ? AND block_height >= ?`

const deleteTransfersFromQuery = `
DELETE FROM asset_transfers
WHERE coin = ? AND network = ? AND block_height >= ?`

const deleteSkippedOutputsFromQuery = `
DELETE FROM asset_skipped_outputs
WHERE coin = ? AND network = ? AND block_height >= ?`

// ResetAll drops every asset, transfer, counter and skip record of the chain.
// The cursor is left to the caller.
func (r *Repository) ResetAll(ctx context.Context, coin model.Coin, network model.Network) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("reset_all", coin, network, err, start)
	}()

	for _, table := range resetTables {
		query := fmt.Sprintf("DELETE FROM %s WHERE coin = ? AND network = ?", table)
		if err = r.conn.Exec(ctx, query, string(coin), string(network)); err != nil {
			return fmt.Errorf("delete from %s: %w", table, err)
		}
	}
	return nil
}

// DeleteTransfersFrom removes transfers at or above height and recomputes the
// transfer counters. Running it again after a partial failure converges.
func (r *Repository) DeleteTransfersFrom(ctx context.Context, coin model.Coin, network model.Network, height uint64) (uint64, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("delete_transfers_from", coin, network, err, start)
	}()

	var deleted uint64
	if err = r.conn.QueryRow(ctx, countTransfersFromQuery, string(coin), string(network), height).Scan(&deleted); err != nil {
		return 0, fmt.Errorf("count transfers from %d: %w", height, err)
	}

	if err = r.conn.Exec(ctx, deleteTransfersFromQuery, string(coin), string(network), height); err != nil {
		return 0, fmt.Errorf("delete transfers from %d: %w", height, err)
	}
	if err = r.conn.Exec(ctx, deleteSkippedOutputsFromQuery, string(coin), string(network), height); err != nil {
		return 0, fmt.Errorf("delete skipped outputs from %d: %w", height, err)
	}
	if err = r.reconcileTransferCounts(ctx, coin, network); err != nil {
		return 0, err
	}
	return deleted, nil
}
