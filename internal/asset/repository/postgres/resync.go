package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-assets/internal/asset/model"
	"github.com/goodnatureofminers/blockinsight7000-assets/pkg/safe"
	"github.com/lib/pq"
)

// ResetAll drops every asset, transfer and skip record of the chain in one transaction.
// The cursor is left to the caller.
func (r *Repository) ResetAll(ctx context.Context, coin model.Coin, network model.Network) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("reset_all", coin, network, err, start)
	}()

	err = r.inTx(ctx, func(tx *sql.Tx) error {
		for _, table := range []string{"asset_transfers", "asset_skipped_outputs", "assets"} {
			query := fmt.Sprintf("DELETE FROM %s WHERE coin = $1 AND network = $2", table)
			if _, execErr := tx.ExecContext(ctx, query, string(coin), string(network)); execErr != nil {
				return fmt.Errorf("delete from %s: %w", table, execErr)
			}
		}
		return nil
	})
	return err
}

// DeleteTransfersFrom removes transfers at or above height and recomputes the
// transfer counters of the assets they belonged to, atomically.
func (r *Repository) DeleteTransfersFrom(ctx context.Context, coin model.Coin, network model.Network, height uint64) (uint64, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("delete_transfers_from", coin, network, err, start)
	}()

	const deleteQuery = `
DELETE FROM asset_transfers
WHERE coin = $1 AND network = $2 AND block_height >= $3
RETURNING asset_id`

	const deleteSkippedQuery = `
DELETE FROM asset_skipped_outputs
WHERE coin = $1 AND network = $2 AND block_height >= $3`

	const recountQuery = `
UPDATE assets AS a
SET transfer_count = (
	SELECT count(*)
	FROM asset_transfers AS t
	WHERE t.coin = a.coin AND t.network = a.network AND t.asset_id = a.asset_id AND t.type IN ('transfer', 'burn')
)
WHERE a.coin = $1 AND a.network = $2 AND a.asset_id = ANY($3)`

	from, err := safe.Int64(height)
	if err != nil {
		return 0, fmt.Errorf("delete height: %w", err)
	}

	var deleted uint64
	err = r.inTx(ctx, func(tx *sql.Tx) error {
		rows, txErr := tx.QueryContext(ctx, deleteQuery, string(coin), string(network), from)
		if txErr != nil {
			return fmt.Errorf("delete transfers from %d: %w", height, txErr)
		}

		affected := make(map[string]struct{})
		for rows.Next() {
			var assetID string
			if txErr = rows.Scan(&assetID); txErr != nil {
				_ = rows.Close()
				return fmt.Errorf("scan deleted transfer: %w", txErr)
			}
			affected[assetID] = struct{}{}
			deleted++
		}
		if txErr = rows.Err(); txErr != nil {
			_ = rows.Close()
			return fmt.Errorf("iterate deleted transfers: %w", txErr)
		}
		if txErr = rows.Close(); txErr != nil {
			return fmt.Errorf("close rows: %w", txErr)
		}

		if _, txErr = tx.ExecContext(ctx, deleteSkippedQuery, string(coin), string(network), from); txErr != nil {
			return fmt.Errorf("delete skipped outputs from %d: %w", height, txErr)
		}
		if len(affected) == 0 {
			return nil
		}

		ids := make([]string, 0, len(affected))
		for id := range affected {
			ids = append(ids, id)
		}
		if _, txErr = tx.ExecContext(ctx, recountQuery, string(coin), string(network), pq.Array(ids)); txErr != nil {
			return fmt.Errorf("recount transfers: %w", txErr)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}
