package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-assets/internal/asset/model"
)

const insertSkippedOutputsQuery = `
INSERT INTO asset_skipped_outputs (
	coin,
	network,
	txid,
	vout_index,
	block_height,
	reason,
	raw_asset_id,
	raw_name,
	detail
) VALUES`

// InsertSkippedOutputs stores reconciliation rows for outputs the indexer did not record.
func (r *Repository) InsertSkippedOutputs(ctx context.Context, outputs []model.SkippedOutput) error {
	start := time.Now()
	var err error
	coin, network := firstChain(outputs)
	defer func() {
		r.metrics.Observe("insert_skipped_outputs", coin, network, err, start)
	}()

	if len(outputs) == 0 {
		return nil
	}

	batch, err := r.conn.PrepareBatch(ctx, insertSkippedOutputsQuery)
	if err != nil {
		return fmt.Errorf("prepare skipped outputs batch: %w", err)
	}

	for _, out := range outputs {
		if err = batch.Append(
			string(out.Coin),
			string(out.Network),
			out.TxID,
			out.VoutIndex,
			out.BlockHeight,
			string(out.Reason),
			out.RawAssetID,
			out.RawName,
			out.Detail,
		); err != nil {
			return fmt.Errorf("append skipped output: %w", err)
		}
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert skipped outputs: %w", err)
	}
	return nil
}

func firstChain(outputs []model.SkippedOutput) (model.Coin, model.Network) {
	if len(outputs) == 0 {
		return "", ""
	}
	return outputs[0].Coin, outputs[0].Network
}
