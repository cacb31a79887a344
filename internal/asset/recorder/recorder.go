// Package recorder persists asset events exactly once per (txid, vout).
package recorder

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-assets/internal/asset/model"
	"go.uber.org/zap"
)

// Result tells whether Record created the transfer or found it already stored.
type Result int

const (
	Inserted Result = iota + 1
	AlreadyExists
)

func (r Result) String() string {
	switch r {
	case Inserted:
		return "inserted"
	case AlreadyExists:
		return "already_exists"
	default:
		return "unknown"
	}
}

// Event is a resolved asset movement with its block context.
type Event struct {
	Identity    model.AssetIdentity
	From        string
	To          string
	Amount      uint64
	Type        model.TransferType
	TxID        string
	VoutIndex   uint32
	TxIndex     uint32
	BlockHeight uint64
	BlockTime   time.Time
}

type Recorder struct {
	store   Store
	coin    model.Coin
	network model.Network
	logger  *zap.Logger
}

func New(store Store, coin model.Coin, network model.Network, logger *zap.Logger) *Recorder {
	return &Recorder{
		store:   store,
		coin:    coin,
		network: network,
		logger:  logger,
	}
}

// Record stores ev. Replaying an event returns AlreadyExists with the stored
// record. Side effects are idempotent and reapplied on replay, so a replay
// after a failed write completes them.
func (r *Recorder) Record(ctx context.Context, ev Event) (Result, model.AssetTransfer, error) {
	if !ev.Type.Valid() {
		return 0, model.AssetTransfer{}, fmt.Errorf("record %s:%d: unknown transfer type %q", ev.TxID, ev.VoutIndex, ev.Type)
	}

	transfer := model.AssetTransfer{
		Coin:        r.coin,
		Network:     r.network,
		TxID:        ev.TxID,
		VoutIndex:   ev.VoutIndex,
		TxIndex:     ev.TxIndex,
		AssetID:     ev.Identity.AssetID,
		AssetName:   ev.Identity.Name,
		From:        ev.From,
		To:          ev.To,
		Amount:      ev.Amount,
		Type:        ev.Type,
		BlockHeight: ev.BlockHeight,
		BlockTime:   ev.BlockTime.UTC(),
	}

	// A mint registers its asset before the row is written.
	if transfer.Type == model.TransferMint {
		if err := r.registerAsset(ctx, transfer); err != nil {
			return 0, model.AssetTransfer{}, err
		}
	}

	stored, inserted, err := r.store.InsertTransferIfAbsent(ctx, transfer)
	if err != nil {
		return 0, model.AssetTransfer{}, fmt.Errorf("insert transfer %s:%d: %w", ev.TxID, ev.VoutIndex, err)
	}
	result := Inserted
	if !inserted {
		result = AlreadyExists
		r.logger.Info("duplicate transfer suppressed",
			zap.String("txid", ev.TxID),
			zap.Uint32("vout", ev.VoutIndex),
			zap.String("asset_id", stored.AssetID),
			zap.Uint64("height", stored.BlockHeight),
		)
	}

	if err = r.applyTransferEffects(ctx, stored); err != nil {
		return 0, model.AssetTransfer{}, err
	}
	return result, stored, nil
}

func (r *Recorder) registerAsset(ctx context.Context, t model.AssetTransfer) error {
	created, err := r.store.UpsertAsset(ctx, model.Asset{
		Coin:            t.Coin,
		Network:         t.Network,
		AssetID:         t.AssetID,
		Name:            t.AssetName,
		OwnerAddress:    t.To,
		CreatorAddress:  t.To,
		TotalSupply:     t.Amount,
		CreatedAtHeight: t.BlockHeight,
	})
	if err != nil {
		return fmt.Errorf("upsert asset %s: %w", t.AssetID, err)
	}
	if created {
		r.logger.Debug("asset registered",
			zap.String("asset_id", t.AssetID),
			zap.String("name", t.AssetName),
			zap.Uint64("height", t.BlockHeight),
		)
	}
	return nil
}

// applyTransferEffects recomputes the counter from stored rows and applies
// ownership moves. Both converge when repeated.
func (r *Recorder) applyTransferEffects(ctx context.Context, t model.AssetTransfer) error {
	if !t.Type.Counted() {
		return nil
	}
	if err := r.store.RefreshTransferCount(ctx, t.Coin, t.Network, t.AssetID); err != nil {
		return fmt.Errorf("refresh transfer count %s: %w", t.AssetID, err)
	}
	if t.Type != model.TransferTransfer || t.To == "" {
		return nil
	}
	return r.moveOwnership(ctx, t)
}

// moveOwnership hands a unique asset to the receiver when a transfer carries its whole supply.
func (r *Recorder) moveOwnership(ctx context.Context, t model.AssetTransfer) error {
	asset, err := r.store.FindAssetByID(ctx, t.Coin, t.Network, t.AssetID)
	switch {
	case errors.Is(err, model.ErrAssetNotFound):
		return nil
	case err != nil:
		return fmt.Errorf("find asset %s: %w", t.AssetID, err)
	}
	if asset.TotalSupply == 0 || asset.TotalSupply != t.Amount || asset.OwnerAddress == t.To {
		return nil
	}

	if err = r.store.UpdateAssetOwner(ctx, t.Coin, t.Network, t.AssetID, t.To); err != nil {
		return fmt.Errorf("update asset owner %s: %w", t.AssetID, err)
	}
	return nil
}
