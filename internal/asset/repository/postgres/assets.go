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

const selectAssetQuery = `
SELECT asset_id, name, owner_address, creator_address, total_supply, transfer_count, created_at_height
FROM assets
WHERE coin = $1 AND network = $2`

// FindAssetByID returns the asset or model.ErrAssetNotFound.
func (r *Repository) FindAssetByID(ctx context.Context, coin model.Coin, network model.Network, assetID string) (model.Asset, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("find_asset_by_id", coin, network, err, start)
	}()

	row := r.db.QueryRowContext(ctx, selectAssetQuery+" AND asset_id = $3", string(coin), string(network), assetID)
	asset, err := scanAsset(row, coin, network)
	return asset, err
}

// FindAssetByName returns the earliest asset registered under name or model.ErrAssetNotFound.
func (r *Repository) FindAssetByName(ctx context.Context, coin model.Coin, network model.Network, name string) (model.Asset, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("find_asset_by_name", coin, network, err, start)
	}()

	row := r.db.QueryRowContext(ctx, selectAssetQuery+" AND name = $3 ORDER BY created_at_height ASC LIMIT 1", string(coin), string(network), name)
	asset, err := scanAsset(row, coin, network)
	return asset, err
}

func scanAsset(row scanner, coin model.Coin, network model.Network) (model.Asset, error) {
	asset := model.Asset{Coin: coin, Network: network}
	var supply, transfers, createdAt int64
	if err := row.Scan(
		&asset.AssetID,
		&asset.Name,
		&asset.OwnerAddress,
		&asset.CreatorAddress,
		&supply,
		&transfers,
		&createdAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Asset{}, model.ErrAssetNotFound
		}
		return model.Asset{}, fmt.Errorf("scan asset: %w", err)
	}

	var err error
	if asset.TotalSupply, err = safe.Uint64(supply); err != nil {
		return model.Asset{}, fmt.Errorf("asset total supply: %w", err)
	}
	if asset.TransferCount, err = safe.Uint64(transfers); err != nil {
		return model.Asset{}, fmt.Errorf("asset transfer count: %w", err)
	}
	if asset.CreatedAtHeight, err = safe.Uint64(createdAt); err != nil {
		return model.Asset{}, fmt.Errorf("asset created at height: %w", err)
	}
	return asset, nil
}

// UpsertAsset registers asset unless it already exists. The transfer count is
// seeded from transfers already stored for the asset.
func (r *Repository) UpsertAsset(ctx context.Context, asset model.Asset) (bool, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("upsert_asset", asset.Coin, asset.Network, err, start)
	}()

	const query = `
INSERT INTO assets (coin, network, asset_id, name, owner_address, creator_address, total_supply, created_at_height, transfer_count)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, (
	SELECT count(*)
	FROM asset_transfers
	WHERE coin = $1 AND network = $2 AND asset_id = $3 AND type IN ('transfer', 'burn')
))
ON CONFLICT (coin, network, asset_id) DO NOTHING`

	supply, err := safe.Int64(asset.TotalSupply)
	if err != nil {
		return false, fmt.Errorf("asset total supply: %w", err)
	}
	createdAt, err := safe.Int64(asset.CreatedAtHeight)
	if err != nil {
		return false, fmt.Errorf("asset created at height: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query,
		string(asset.Coin),
		string(asset.Network),
		asset.AssetID,
		asset.Name,
		asset.OwnerAddress,
		asset.CreatorAddress,
		supply,
		createdAt,
	)
	if err != nil {
		return false, fmt.Errorf("insert asset: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("insert asset rows affected: %w", err)
	}
	return affected == 1, nil
}

// UpdateAssetOwner moves ownership of an existing asset.
func (r *Repository) UpdateAssetOwner(ctx context.Context, coin model.Coin, network model.Network, assetID, owner string) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("update_asset_owner", coin, network, err, start)
	}()

	const query = `
UPDATE assets SET owner_address = $4
WHERE coin = $1 AND network = $2 AND asset_id = $3`

	res, err := r.db.ExecContext(ctx, query, string(coin), string(network), assetID, owner)
	if err != nil {
		return fmt.Errorf("update asset owner: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update asset owner rows affected: %w", err)
	}
	if affected == 0 {
		err = model.ErrAssetNotFound
		return err
	}
	return nil
}

// RefreshTransferCount sets the asset's transfer counter to the number of its
// stored transfer and burn rows. Transfers of assets that are not registered
// yet are counted when the asset is registered.
func (r *Repository) RefreshTransferCount(ctx context.Context, coin model.Coin, network model.Network, assetID string) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("refresh_transfer_count", coin, network, err, start)
	}()

	const query = `
UPDATE assets SET transfer_count = (
	SELECT count(*) FROM asset_transfers
	WHERE coin = $1 AND network = $2 AND asset_id = $3 AND type IN ('transfer', 'burn')
)
WHERE coin = $1 AND network = $2 AND asset_id = $3`

	if _, err = r.db.ExecContext(ctx, query, string(coin), string(network), assetID); err != nil {
		return fmt.Errorf("refresh transfer count: %w", err)
	}
	return nil
}
