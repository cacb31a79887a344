package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-assets/internal/asset/model"
	"github.com/goodnatureofminers/blockinsight7000-assets/pkg/safe"
)

const transferColumns = `txid, vout_index, tx_index, asset_id, asset_name, from_address, to_address, amount, type, block_height, block_time`

// InsertTransferIfAbsent stores t unless the dedup constraint already holds a
// row for (txid, vout_index). It returns the stored record and whether this call created it.
func (r *Repository) InsertTransferIfAbsent(ctx context.Context, t model.AssetTransfer) (model.AssetTransfer, bool, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("insert_transfer_if_absent", t.Coin, t.Network, err, start)
	}()

	const insertQuery = `
INSERT INTO asset_transfers (coin, network, ` + transferColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
ON CONFLICT ON CONSTRAINT asset_transfers_dedup DO NOTHING
RETURNING txid`

	amount, err := safe.Int64(t.Amount)
	if err != nil {
		return model.AssetTransfer{}, false, fmt.Errorf("transfer amount: %w", err)
	}
	height, err := safe.Int64(t.BlockHeight)
	if err != nil {
		return model.AssetTransfer{}, false, fmt.Errorf("transfer block height: %w", err)
	}

	var txid string
	err = r.db.QueryRowContext(ctx, insertQuery,
		string(t.Coin),
		string(t.Network),
		t.TxID,
		int64(t.VoutIndex),
		int64(t.TxIndex),
		t.AssetID,
		t.AssetName,
		t.From,
		t.To,
		amount,
		string(t.Type),
		height,
		t.BlockTime.UTC(),
	).Scan(&txid)
	switch {
	case err == nil:
		return t, true, nil
	case !errors.Is(err, sql.ErrNoRows):
		return model.AssetTransfer{}, false, fmt.Errorf("insert transfer: %w", err)
	}

	const existingQuery = `
SELECT ` + transferColumns + `
FROM asset_transfers
WHERE coin = $1 AND network = $2 AND txid = $3 AND vout_index = $4`

	row := r.db.QueryRowContext(ctx, existingQuery, string(t.Coin), string(t.Network), t.TxID, int64(t.VoutIndex))
	existing, err := scanTransfer(row, t.Coin, t.Network)
	if err != nil {
		return model.AssetTransfer{}, false, fmt.Errorf("load existing transfer: %w", err)
	}
	return existing, false, nil
}

// FindTransfersByAsset returns one page of an asset's transfers in chain order.
func (r *Repository) FindTransfersByAsset(ctx context.Context, coin model.Coin, network model.Network, assetID string, offset, limit uint64) (transfers []model.AssetTransfer, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("find_transfers_by_asset", coin, network, err, start)
	}()

	const query = `
SELECT ` + transferColumns + `
FROM asset_transfers
WHERE coin = $1 AND network = $2 AND asset_id = $3
ORDER BY block_height ASC, tx_index ASC, vout_index ASC
LIMIT $4 OFFSET $5`

	limitArg, err := safe.Int64(limit)
	if err != nil {
		return nil, fmt.Errorf("limit: %w", err)
	}
	offsetArg, err := safe.Int64(offset)
	if err != nil {
		return nil, fmt.Errorf("offset: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, string(coin), string(network), assetID, limitArg, offsetArg)
	if err != nil {
		return nil, fmt.Errorf("query transfers by asset: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", cerr)
		}
	}()

	transfers = make([]model.AssetTransfer, 0, limit)
	for rows.Next() {
		t, scanErr := scanTransfer(rows, coin, network)
		if scanErr != nil {
			err = scanErr
			return nil, err
		}
		transfers = append(transfers, t)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transfers: %w", err)
	}
	return transfers, nil
}

// CountTransfersByAsset returns the number of persisted transfers of an asset.
func (r *Repository) CountTransfersByAsset(ctx context.Context, coin model.Coin, network model.Network, assetID string) (uint64, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("count_transfers_by_asset", coin, network, err, start)
	}()

	const query = `
SELECT count(*)
FROM asset_transfers
WHERE coin = $1 AND network = $2 AND asset_id = $3`

	var n int64
	if err = r.db.QueryRowContext(ctx, query, string(coin), string(network), assetID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count transfers by asset: %w", err)
	}
	count, err := safe.Uint64(n)
	return count, err
}

func scanTransfer(row scanner, coin model.Coin, network model.Network) (model.AssetTransfer, error) {
	t := model.AssetTransfer{Coin: coin, Network: network}
	var (
		vout, txIndex, amount, height int64
		kind                          string
	)
	if err := row.Scan(
		&t.TxID,
		&vout,
		&txIndex,
		&t.AssetID,
		&t.AssetName,
		&t.From,
		&t.To,
		&amount,
		&kind,
		&height,
		&t.BlockTime,
	); err != nil {
		return model.AssetTransfer{}, fmt.Errorf("scan transfer: %w", err)
	}

	var err error
	if t.VoutIndex, err = safe.Uint32(vout); err != nil {
		return model.AssetTransfer{}, fmt.Errorf("transfer vout index: %w", err)
	}
	if t.TxIndex, err = safe.Uint32(txIndex); err != nil {
		return model.AssetTransfer{}, fmt.Errorf("transfer tx index: %w", err)
	}
	if t.Amount, err = safe.Uint64(amount); err != nil {
		return model.AssetTransfer{}, fmt.Errorf("transfer amount: %w", err)
	}
	if t.BlockHeight, err = safe.Uint64(height); err != nil {
		return model.AssetTransfer{}, fmt.Errorf("transfer block height: %w", err)
	}
	t.Type = model.TransferType(kind)
	t.BlockTime = t.BlockTime.UTC()
	return t, nil
}
