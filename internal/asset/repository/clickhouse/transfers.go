package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/goodnatureofminers/blockinsight7000-assets/internal/asset/model"
)

const transferColumns = `
	txid,
	vout_index,
	tx_index,
	asset_id,
	asset_name,
	from_address,
	to_address,
	amount,
	type,
	block_height,
	block_time`

const findTransferQuery = `
SELECT` + transferColumns + `
FROM asset_transfers FINAL
WHERE coin = ? AND network = ? AND txid = ? AND vout_index = ?
LIMIT 1`

const findTransfersByAssetQuery = `
SELECT` + transferColumns + `
FROM asset_transfers FINAL
WHERE coin = ? AND network = ? AND asset_id = ?
ORDER BY block_height ASC, tx_index ASC, vout_index ASC
LIMIT ? OFFSET ?`

const countTransfersByAssetQuery = `
SELECT count()
FROM asset_transfers FINAL
WHERE coin = ? AND network = ? AND asset_id = ?`

const insertTransferQuery = `
INSERT INTO asset_transfers (
	coin,
	network,
	txid,
	vout_index,
	tx_index,
	asset_id,
	asset_name,
	from_address,
	to_address,
	amount,
	type,
	block_height,
	block_time
) VALUES`

// InsertTransferIfAbsent stores t unless a transfer with the same (txid, vout)
// exists. It returns the stored record and whether this call created it.
func (r *Repository) InsertTransferIfAbsent(ctx context.Context, t model.AssetTransfer) (model.AssetTransfer, bool, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("insert_transfer_if_absent", t.Coin, t.Network, err, start)
	}()

	existing, found, err := r.findTransfer(ctx, t.Coin, t.Network, t.TxID, t.VoutIndex)
	if err != nil {
		return model.AssetTransfer{}, false, err
	}
	if found {
		return existing, false, nil
	}

	batch, err := r.conn.PrepareBatch(ctx, insertTransferQuery)
	if err != nil {
		return model.AssetTransfer{}, false, fmt.Errorf("prepare transfers batch: %w", err)
	}

	if err = batch.Append(
		string(t.Coin),
		string(t.Network),
		t.TxID,
		t.VoutIndex,
		t.TxIndex,
		t.AssetID,
		t.AssetName,
		t.From,
		t.To,
		t.Amount,
		string(t.Type),
		t.BlockHeight,
		t.BlockTime.UTC(),
	); err != nil {
		return model.AssetTransfer{}, false, fmt.Errorf("append transfer: %w", err)
	}

	if err = batch.Send(); err != nil {
		return model.AssetTransfer{}, false, fmt.Errorf("insert transfer: %w", err)
	}
	return t, true, nil
}

func (r *Repository) findTransfer(ctx context.Context, coin model.Coin, network model.Network, txid string, vout uint32) (transfer model.AssetTransfer, found bool, err error) {
	rows, err := r.conn.Query(ctx, findTransferQuery, string(coin), string(network), txid, vout)
	if err != nil {
		return model.AssetTransfer{}, false, fmt.Errorf("query transfer: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", cerr)
		}
	}()

	if rows.Next() {
		if transfer, err = scanTransfer(rows, coin, network); err != nil {
			return model.AssetTransfer{}, false, err
		}
		found = true
	}
	if err = rows.Err(); err != nil {
		return model.AssetTransfer{}, false, fmt.Errorf("iterate transfer: %w", err)
	}
	return transfer, found, nil
}

// FindTransfersByAsset returns one page of an asset's transfers in chain order.
func (r *Repository) FindTransfersByAsset(ctx context.Context, coin model.Coin, network model.Network, assetID string, offset, limit uint64) (transfers []model.AssetTransfer, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("find_transfers_by_asset", coin, network, err, start)
	}()

	rows, err := r.conn.Query(ctx, findTransfersByAssetQuery, string(coin), string(network), assetID, limit, offset)
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

	var n uint64
	if err = r.conn.QueryRow(ctx, countTransfersByAssetQuery, string(coin), string(network), assetID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count transfers by asset: %w", err)
	}
	return n, nil
}

func scanTransfer(rows driver.Rows, coin model.Coin, network model.Network) (model.AssetTransfer, error) {
	t := model.AssetTransfer{Coin: coin, Network: network}
	var kind string
	if err := rows.Scan(
		&t.TxID,
		&t.VoutIndex,
		&t.TxIndex,
		&t.AssetID,
		&t.AssetName,
		&t.From,
		&t.To,
		&t.Amount,
		&kind,
		&t.BlockHeight,
		&t.BlockTime,
	); err != nil {
		return model.AssetTransfer{}, fmt.Errorf("scan transfer: %w", err)
	}
	t.Type = model.TransferType(kind)
	return t, nil
}
