package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-assets/internal/asset/model"
)

const assetColumns = `
	a.asset_id,
	a.name,
	a.owner_address,
	a.creator_address,
	a.total_supply,
	a.created_at_height,
	toUInt64(greatest(c.transfer_count, 0)) AS transfer_count
FROM assets AS a FINAL
LEFT JOIN
(
	SELECT asset_id, sum(delta) AS transfer_count
	FROM asset_transfer_counts
	WHERE coin = ? AND network = ?
	GROUP BY asset_id
) AS c ON c.asset_id = a.asset_id`

const findAssetByIDQuery = `
SELECT` + assetColumns + `
WHERE a.coin = ? AND a.network = ? AND a.asset_id = ?
LIMIT 1`

const findAssetByNameQuery = `
SELECT` + assetColumns + `
WHERE a.coin = ? AND a.network = ? AND a.name = ?
ORDER BY a.created_at_height ASC
LIMIT 1`

const insertAssetQuery = `
INSERT INTO assets (
	coin,
	network,
	asset_id,
	name,
	owner_address,
	creator_address,
	total_supply,
	created_at_height,
	version
) VALUES`

// FindAssetByID returns the asset with its transfer count or model.ErrAssetNotFound.
func (r *Repository) FindAssetByID(ctx context.Context, coin model.Coin, network model.Network, assetID string) (model.Asset, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("find_asset_by_id", coin, network, err, start)
	}()

	asset, err := r.findAsset(ctx, findAssetByIDQuery, coin, network, assetID)
	return asset, err
}

// FindAssetByName returns the asset registered under name or model.ErrAssetNotFound.
func (r *Repository) FindAssetByName(ctx context.Context, coin model.Coin, network model.Network, name string) (model.Asset, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("find_asset_by_name", coin, network, err, start)
	}()

	asset, err := r.findAsset(ctx, findAssetByNameQuery, coin, network, name)
	return asset, err
}

func (r *Repository) findAsset(ctx context.Context, query string, coin model.Coin, network model.Network, key string) (asset model.Asset, err error) {
	rows, err := r.conn.Query(ctx, query, string(coin), string(network), string(coin), string(network), key)
	if err != nil {
		return model.Asset{}, fmt.Errorf("query asset: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", cerr)
		}
	}()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return model.Asset{}, fmt.Errorf("iterate asset: %w", err)
		}
		return model.Asset{}, model.ErrAssetNotFound
	}

	asset = model.Asset{Coin: coin, Network: network}
	if err = rows.Scan(
		&asset.AssetID,
		&asset.Name,
		&asset.OwnerAddress,
		&asset.CreatorAddress,
		&asset.TotalSupply,
		&asset.CreatedAtHeight,
		&asset.TransferCount,
	); err != nil {
		return model.Asset{}, fmt.Errorf("scan asset: %w", err)
	}
	if err = rows.Err(); err != nil {
		return model.Asset{}, fmt.Errorf("iterate asset: %w", err)
	}
	return asset, nil
}

// UpsertAsset registers asset unless an asset with the same id already exists.
// It reports whether a new row was written.
func (r *Repository) UpsertAsset(ctx context.Context, asset model.Asset) (bool, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("upsert_asset", asset.Coin, asset.Network, err, start)
	}()

	const existsQuery = `
SELECT count()
FROM assets FINAL
WHERE coin = ? AND network = ? AND asset_id = ?`

	var n uint64
	if err = r.conn.QueryRow(ctx, existsQuery, string(asset.Coin), string(asset.Network), asset.AssetID).Scan(&n); err != nil {
		return false, fmt.Errorf("check asset exists: %w", err)
	}
	if n > 0 {
		return false, nil
	}

	if err = r.insertAsset(ctx, asset); err != nil {
		return false, err
	}
	return true, nil
}

// UpdateAssetOwner writes a newer version of the asset row with a different owner.
func (r *Repository) UpdateAssetOwner(ctx context.Context, coin model.Coin, network model.Network, assetID, owner string) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("update_asset_owner", coin, network, err, start)
	}()

	asset, err := r.findAsset(ctx, findAssetByIDQuery, coin, network, assetID)
	if err != nil {
		return err
	}
	if asset.OwnerAddress == owner {
		return nil
	}

	asset.OwnerAddress = owner
	err = r.insertAsset(ctx, asset)
	return err
}

func (r *Repository) insertAsset(ctx context.Context, asset model.Asset) error {
	batch, err := r.conn.PrepareBatch(ctx, insertAssetQuery)
	if err != nil {
		return fmt.Errorf("prepare assets batch: %w", err)
	}

	if err = batch.Append(
		string(asset.Coin),
		string(asset.Network),
		asset.AssetID,
		asset.Name,
		asset.OwnerAddress,
		asset.CreatorAddress,
		asset.TotalSupply,
		asset.CreatedAtHeight,
		r.version(),
	); err != nil {
		return fmt.Errorf("append asset: %w", err)
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert asset: %w", err)
	}
	return nil
}
