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

// GetCursor returns the persisted cursor, or a zero cursor when none exists.
func (r *Repository) GetCursor(ctx context.Context, coin model.Coin, network model.Network) (model.SyncCursor, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("get_cursor", coin, network, err, start)
	}()

	const query = `
SELECT height, hash, updated_at
FROM asset_sync_cursor
WHERE coin = $1 AND network = $2`

	var (
		height int64
		cursor model.SyncCursor
	)
	err = r.db.QueryRowContext(ctx, query, string(coin), string(network)).Scan(&height, &cursor.Hash, &cursor.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		err = nil
		return model.SyncCursor{}, nil
	}
	if err != nil {
		return model.SyncCursor{}, fmt.Errorf("query cursor: %w", err)
	}
	if cursor.Height, err = safe.Uint64(height); err != nil {
		return model.SyncCursor{}, fmt.Errorf("%w: %v", model.ErrCursorCorrupted, err)
	}
	return cursor, nil
}

// SetCursor replaces the cursor of the chain.
func (r *Repository) SetCursor(ctx context.Context, coin model.Coin, network model.Network, cursor model.SyncCursor) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("set_cursor", coin, network, err, start)
	}()

	const query = `
INSERT INTO asset_sync_cursor (coin, network, height, hash, updated_at)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (coin, network) DO UPDATE
SET height = EXCLUDED.height, hash = EXCLUDED.hash, updated_at = EXCLUDED.updated_at`

	height, err := safe.Int64(cursor.Height)
	if err != nil {
		return fmt.Errorf("cursor height: %w", err)
	}
	updatedAt := cursor.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = r.now()
	}

	if _, err = r.db.ExecContext(ctx, query, string(coin), string(network), height, cursor.Hash, updatedAt.UTC()); err != nil {
		return fmt.Errorf("set cursor: %w", err)
	}
	return nil
}
