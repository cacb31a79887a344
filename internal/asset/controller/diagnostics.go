package controller

import (
	"context"
	"fmt"

	"github.com/goodnatureofminers/blockinsight7000-assets/internal/asset/model"
	"go.uber.org/zap"
)

// Diagnostics is a point-in-time view of indexing progress.
type Diagnostics struct {
	Coin           model.Coin           `json:"coin"`
	Network        model.Network        `json:"network"`
	AssetCount     uint64               `json:"assetCount"`
	TransferCount  uint64               `json:"transferCount"`
	CursorHeight   uint64               `json:"cursorHeight"`
	CursorHash     string               `json:"cursorHash,omitempty"`
	State          State                `json:"state"`
	NodeBestHeight *uint64              `json:"nodeBestHeight,omitempty"`
	Lag            *uint64              `json:"lag,omitempty"`
	PendingResync  *model.ResyncRequest `json:"pendingResync,omitempty"`
}

// Diagnostics reads registry totals and cursor state. An unreachable node
// only leaves the node fields empty.
func (c *Controller) Diagnostics(ctx context.Context) (Diagnostics, error) {
	stats, err := c.store.Stats(ctx, c.cfg.Coin, c.cfg.Network)
	if err != nil {
		return Diagnostics{}, fmt.Errorf("registry stats: %w", err)
	}

	cursor := c.Cursor()
	d := Diagnostics{
		Coin:          c.cfg.Coin,
		Network:       c.cfg.Network,
		AssetCount:    stats.AssetCount,
		TransferCount: stats.TransferCount,
		CursorHeight:  cursor.Height,
		CursorHash:    cursor.Hash,
		State:         c.State(),
		PendingResync: c.PendingResync(),
	}

	best, err := c.node.BestHeight(ctx)
	if err != nil {
		c.logger.Debug("best height unavailable", zap.Error(err))
		return d, nil
	}
	d.NodeBestHeight = &best
	var lag uint64
	if best > cursor.Height {
		lag = best - cursor.Height
	}
	d.Lag = &lag
	return d, nil
}
