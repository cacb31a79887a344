package controller

import (
	"context"
	"errors"

	"github.com/goodnatureofminers/blockinsight7000-assets/internal/asset/model"
	"github.com/goodnatureofminers/blockinsight7000-assets/internal/asset/node"
)

// senderResolver finds the address that funded a transaction. It caches
// transactions for the lifetime of one block.
type senderResolver struct {
	node  Node
	cache map[string]model.Transaction
}

func newSenderResolver(n Node, block *model.Block) *senderResolver {
	r := &senderResolver{
		node:  n,
		cache: make(map[string]model.Transaction, len(block.Tx)),
	}
	for _, tx := range block.Tx {
		r.cache[tx.TxID] = tx
	}
	return r
}

// Resolve returns the address of the first non-coinbase input, or "" when it
// cannot be determined.
func (r *senderResolver) Resolve(ctx context.Context, tx model.Transaction) (string, error) {
	for _, vin := range tx.Vin {
		if vin.IsCoinbase() {
			continue
		}
		if vin.Address != "" {
			return vin.Address, nil
		}

		prev, err := r.lookup(ctx, vin.TxID)
		if errors.Is(err, node.ErrNotFound) {
			return "", nil
		}
		if err != nil {
			return "", err
		}
		for _, out := range prev.Vout {
			if out.N == vin.Vout {
				return out.ScriptPubKey.Destination(), nil
			}
		}
		return "", nil
	}
	return "", nil
}

func (r *senderResolver) lookup(ctx context.Context, txid string) (model.Transaction, error) {
	if tx, ok := r.cache[txid]; ok {
		return tx, nil
	}
	tx, err := r.node.GetTransaction(ctx, txid)
	if err != nil {
		return model.Transaction{}, err
	}
	r.cache[txid] = *tx
	return *tx, nil
}
