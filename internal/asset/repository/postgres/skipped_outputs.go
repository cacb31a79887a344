package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-assets/internal/asset/model"
	"github.com/goodnatureofminers/blockinsight7000-assets/pkg/safe"
)

// InsertSkippedOutputs stores reconciliation rows; a repeated skip refreshes its reason and detail.
func (r *Repository) InsertSkippedOutputs(ctx context.Context, outputs []model.SkippedOutput) error {
	start := time.Now()
	var (
		err     error
		coin    model.Coin
		network model.Network
	)
	if len(outputs) > 0 {
		coin, network = outputs[0].Coin, outputs[0].Network
	}
	defer func() {
		r.metrics.Observe("insert_skipped_outputs", coin, network, err, start)
	}()

	if len(outputs) == 0 {
		return nil
	}

	const query = `
INSERT INTO asset_skipped_outputs (coin, network, txid, vout_index, block_height, reason, raw_asset_id, raw_name, detail, observed_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
ON CONFLICT (coin, network, txid, vout_index) DO UPDATE
SET reason = EXCLUDED.reason, raw_asset_id = EXCLUDED.raw_asset_id, raw_name = EXCLUDED.raw_name,
	detail = EXCLUDED.detail, observed_at = EXCLUDED.observed_at`

	observedAt := r.now().UTC()
	err = r.inTx(ctx, func(tx *sql.Tx) error {
		stmt, prepErr := tx.PrepareContext(ctx, query)
		if prepErr != nil {
			return fmt.Errorf("prepare skipped outputs: %w", prepErr)
		}
		defer stmt.Close()

		for _, out := range outputs {
			height, convErr := safe.Int64(out.BlockHeight)
			if convErr != nil {
				return fmt.Errorf("skipped output height: %w", convErr)
			}
			if _, execErr := stmt.ExecContext(ctx,
				string(out.Coin),
				string(out.Network),
				out.TxID,
				int64(out.VoutIndex),
				height,
				string(out.Reason),
				out.RawAssetID,
				out.RawName,
				out.Detail,
				observedAt,
			); execErr != nil {
				return fmt.Errorf("insert skipped output %s:%d: %w", out.TxID, out.VoutIndex, execErr)
			}
		}
		return nil
	})
	return err
}
