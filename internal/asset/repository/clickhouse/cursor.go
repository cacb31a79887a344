package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-assets/internal/asset/model"
)

const getCursorQuery = `
SELECT
	count() AS versions,
	argMax(height, updated_at) AS height,
	argMax(hash, updated_at) AS hash,
	max(updated_at) AS updated_at
FROM asset_sync_cursor
WHERE coin = ? AND network = ?`

const setCursorQuery = `
INSERT INTO asset_sync_cursor (coin, network, height, hash, updated_at)
VALUES (?, ?, ?, ?, ?)`

// GetCursor returns the latest persisted cursor, or a zero cursor when none exists.
func (r *Repository) GetCursor(ctx context.Context, coin model.Coin, network model.Network) (model.SyncCursor, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("get_cursor", coin, network, err, start)
	}()

	var (
		versions uint64
		cursor   model.SyncCursor
	)
	if err = r.conn.QueryRow(ctx, getCursorQuery, string(coin), string(network)).Scan(
		&versions,
		&cursor.Height,
		&cursor.Hash,
		&cursor.UpdatedAt,
	); err != nil {
		return model.SyncCursor{}, fmt.Errorf("query cursor: %w", err)
	}
	if versions == 0 {
		return model.SyncCursor{}, nil
	}
	return cursor, nil
}

// SetCursor appends a new cursor version. The newest updated_at wins.
func (r *Repository) SetCursor(ctx context.Context, coin model.Coin, network model.Network, cursor model.SyncCursor) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("set_cursor", coin, network, err, start)
	}()

	updatedAt := cursor.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = r.now()
	}

	if err = r.conn.Exec(ctx, setCursorQuery, string(coin), string(network), cursor.Height, cursor.Hash, updatedAt.UTC()); err != nil {
		return fmt.Errorf("set cursor: %w", err)
	}
	return nil
}
