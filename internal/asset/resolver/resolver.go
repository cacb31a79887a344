// Package resolver maps raw asset payloads to canonical asset identities.
package resolver

import (
	"context"
	"errors"
	"fmt"

	"github.com/goodnatureofminers/blockinsight7000-assets/internal/asset/classifier"
	"github.com/goodnatureofminers/blockinsight7000-assets/internal/asset/model"
)

// Resolver canonicalizes payload identities with at most one registry lookup per payload.
type Resolver struct {
	registry Registry
	coin     model.Coin
	network  model.Network
}

// New constructs a Resolver scoped to one coin/network.
func New(registry Registry, coin model.Coin, network model.Network) *Resolver {
	return &Resolver{
		registry: registry,
		coin:     coin,
		network:  network,
	}
}

// Resolve returns the canonical identity for p, or a *model.MalformedPayloadError,
// a *model.UnresolvedIdentityError, or a registry error.
func (r *Resolver) Resolve(ctx context.Context, txid string, p classifier.RawPayload) (model.AssetIdentity, error) {
	var canonicalID string
	if p.AssetID != "" {
		id, err := CanonicalAssetID(p.AssetID)
		if err != nil {
			return model.AssetIdentity{}, &model.MalformedPayloadError{
				TxID:      txid,
				VoutIndex: p.VoutIndex,
				Field:     "asset_id",
				Reason:    fmt.Sprintf("%q: %v", p.AssetID, err),
			}
		}
		canonicalID = id
	}

	switch {
	case p.Name != "" && canonicalID != "":
		return model.AssetIdentity{AssetID: canonicalID, Name: p.Name}, nil
	case p.Name != "":
		return r.resolveByName(ctx, txid, p)
	case canonicalID != "":
		return r.resolveByID(ctx, txid, p, canonicalID)
	default:
		return model.AssetIdentity{}, &model.UnresolvedIdentityError{
			TxID:        txid,
			VoutIndex:   p.VoutIndex,
			MissingBoth: true,
		}
	}
}

func (r *Resolver) resolveByName(ctx context.Context, txid string, p classifier.RawPayload) (model.AssetIdentity, error) {
	asset, err := r.registry.FindAssetByName(ctx, r.coin, r.network, p.Name)
	switch {
	case err == nil:
		return model.AssetIdentity{AssetID: asset.AssetID, Name: p.Name}, nil
	case !errors.Is(err, model.ErrAssetNotFound):
		return model.AssetIdentity{}, fmt.Errorf("find asset by name %q: %w", p.Name, err)
	case p.Kind == model.TransferMint:
		// A new asset is identified by its creation transaction.
		return model.AssetIdentity{AssetID: txid, Name: p.Name}, nil
	default:
		return model.AssetIdentity{}, &model.UnresolvedIdentityError{
			TxID:      txid,
			VoutIndex: p.VoutIndex,
			RawName:   p.Name,
		}
	}
}

func (r *Resolver) resolveByID(ctx context.Context, txid string, p classifier.RawPayload, canonicalID string) (model.AssetIdentity, error) {
	asset, err := r.registry.FindAssetByID(ctx, r.coin, r.network, canonicalID)
	switch {
	case err == nil:
		return model.AssetIdentity{AssetID: asset.AssetID, Name: asset.Name}, nil
	case errors.Is(err, model.ErrAssetNotFound):
		return model.AssetIdentity{}, &model.UnresolvedIdentityError{
			TxID:        txid,
			VoutIndex:   p.VoutIndex,
			RawAssetID:  p.AssetID,
			CanonicalID: canonicalID,
		}
	default:
		return model.AssetIdentity{}, fmt.Errorf("find asset by id %q: %w", canonicalID, err)
	}
}
