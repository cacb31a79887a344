// Package fallback reconstructs a partial asset history from the node's
// address index when nothing is persisted. It never writes.
package fallback

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/goodnatureofminers/blockinsight7000-assets/internal/asset/model"
	"github.com/goodnatureofminers/blockinsight7000-assets/pkg/workerpool"
	"go.uber.org/zap"
)

const defaultWorkers = 4

// Result is always partial. Degraded lists why it may be less complete than
// the node could provide.
type Result struct {
	Transfers        []model.AssetTransfer
	Partial          bool
	Degraded         []string
	QueriedAddresses []string
}

type Query struct {
	node     Node
	registry Registry
	coin     model.Coin
	network  model.Network
	workers  int
	logger   *zap.Logger
}

func New(node Node, registry Registry, coin model.Coin, network model.Network, workers int, logger *zap.Logger) *Query {
	if workers < 1 {
		workers = defaultWorkers
	}
	return &Query{
		node:     node,
		registry: registry,
		coin:     coin,
		network:  network,
		workers:  workers,
		logger:   logger,
	}
}

// Lookup queries the owner and creator of assetID plus any extra addresses.
// Failures end up in Result.Degraded, never in an error.
func (q *Query) Lookup(ctx context.Context, assetID string, extra ...string) Result {
	res := Result{Partial: true}

	asset, err := q.registry.FindAssetByID(ctx, q.coin, q.network, assetID)
	switch {
	case errors.Is(err, model.ErrAssetNotFound):
		res.Degraded = append(res.Degraded, fmt.Sprintf("asset %s is not in the registry", assetID))
		return res
	case err != nil:
		q.logger.Warn("fallback registry lookup failed", zap.String("asset_id", assetID), zap.Error(err))
		res.Degraded = append(res.Degraded, "registry unavailable")
		return res
	}

	res.QueriedAddresses = uniqueAddresses(append([]string{asset.OwnerAddress, asset.CreatorAddress}, extra...))
	if len(res.QueriedAddresses) == 0 {
		res.Degraded = append(res.Degraded, "asset has no known addresses")
		return res
	}

	outcomes := workerpool.Collect(ctx, q.workers, res.QueriedAddresses,
		func(ctx context.Context, addr string) ([]model.AddressDelta, error) {
			return q.node.GetAddressDeltas(ctx, []string{addr}, asset.Name)
		},
	)

	var deltas []model.AddressDelta
	for _, o := range outcomes {
		if o.Err != nil {
			q.logger.Warn("fallback address query failed",
				zap.String("asset_id", assetID),
				zap.String("address", o.Item),
				zap.Error(o.Err),
			)
			res.Degraded = append(res.Degraded, fmt.Sprintf("node query for %s failed", o.Item))
			continue
		}
		for _, d := range o.Value {
			if d.AssetName != "" && d.AssetName != asset.Name {
				continue
			}
			deltas = append(deltas, d)
		}
	}

	res.Transfers = buildTransfers(q.coin, q.network, asset, deltas)
	return res
}

type deltaKey struct {
	txid     string
	index    uint32
	address  string
	satoshis int64
}

type txDeltas struct {
	incoming []model.AddressDelta
	outgoing []model.AddressDelta
}

func buildTransfers(coin model.Coin, network model.Network, asset model.Asset, deltas []model.AddressDelta) []model.AssetTransfer {
	byTx := make(map[string]*txDeltas)
	var order []string
	seen := make(map[deltaKey]struct{})
	for _, d := range deltas {
		key := deltaKey{txid: d.TxID, index: d.Index, address: d.Address, satoshis: d.Satoshis}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		g, ok := byTx[d.TxID]
		if !ok {
			g = &txDeltas{}
			byTx[d.TxID] = g
			order = append(order, d.TxID)
		}
		switch {
		case d.Satoshis > 0:
			g.incoming = append(g.incoming, d)
		case d.Satoshis < 0:
			g.outgoing = append(g.outgoing, d)
		}
	}

	var transfers []model.AssetTransfer
	for _, txid := range order {
		g := byTx[txid]
		sender := ""
		if len(g.outgoing) > 0 {
			sender = g.outgoing[0].Address
		}

		for _, d := range g.incoming {
			t := newTransfer(coin, network, asset, d)
			t.To = d.Address
			t.From = sender
			t.Amount = uint64(d.Satoshis)
			t.Type = model.TransferTransfer
			if sender == "" && txid == asset.AssetID {
				t.Type = model.TransferMint
			}
			transfers = append(transfers, t)
		}
		if len(g.incoming) > 0 {
			continue
		}
		for _, d := range g.outgoing {
			t := newTransfer(coin, network, asset, d)
			t.From = d.Address
			t.Amount = uint64(-d.Satoshis)
			t.Type = model.TransferTransfer
			transfers = append(transfers, t)
		}
	}

	sort.SliceStable(transfers, func(i, j int) bool {
		a, b := transfers[i], transfers[j]
		if a.BlockHeight != b.BlockHeight {
			return a.BlockHeight < b.BlockHeight
		}
		if a.TxIndex != b.TxIndex {
			return a.TxIndex < b.TxIndex
		}
		if a.TxID != b.TxID {
			return a.TxID < b.TxID
		}
		return a.VoutIndex < b.VoutIndex
	})
	return transfers
}

func newTransfer(coin model.Coin, network model.Network, asset model.Asset, d model.AddressDelta) model.AssetTransfer {
	return model.AssetTransfer{
		Coin:        coin,
		Network:     network,
		TxID:        d.TxID,
		VoutIndex:   d.Index,
		TxIndex:     d.BlockIndex,
		AssetID:     asset.AssetID,
		AssetName:   asset.Name,
		BlockHeight: d.Height,
	}
}

func uniqueAddresses(addrs []string) []string {
	seen := make(map[string]struct{}, len(addrs))
	out := make([]string, 0, len(addrs))
	for _, a := range addrs {
		if a == "" {
			continue
		}
		if _, ok := seen[a]; ok {
			continue
		}
		seen[a] = struct{}{}
		out = append(out, a)
	}
	return out
}
