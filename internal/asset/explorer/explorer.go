// Package explorer serves transfer history, falling back to the node when
// nothing is persisted for an asset.
package explorer

import (
	"context"
	"errors"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-assets/internal/asset/model"
	"go.uber.org/zap"
)

const (
	DefaultPage  = 1
	DefaultLimit = 25
	MaxLimit     = 100
)

var (
	ErrInvalidPage  = errors.New("page must be >= 1 and limit between 1 and 100")
	ErrInvalidAsset = errors.New("asset id is required")
)

// Transfer is one history entry as exposed to API consumers.
type Transfer struct {
	TxID        string             `json:"txid"`
	VoutIndex   uint32             `json:"vout"`
	TxIndex     uint32             `json:"txIndex"`
	AssetID     string             `json:"assetId"`
	AssetName   string             `json:"assetName"`
	From        string             `json:"from,omitempty"`
	To          string             `json:"to,omitempty"`
	Amount      uint64             `json:"amount"`
	Type        model.TransferType `json:"type"`
	BlockHeight uint64             `json:"blockHeight"`
	BlockTime   *time.Time         `json:"blockTime,omitempty"`
	DataSource  model.DataSource   `json:"dataSource"`
}

// Page is one page of an asset's history.
type Page struct {
	AssetID    string           `json:"assetId"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	Total      uint64           `json:"total"`
	DataSource model.DataSource `json:"dataSource"`
	Partial    bool             `json:"partial"`
	Degraded   []string         `json:"degraded,omitempty"`
	Transfers  []Transfer       `json:"transfers"`
}

type Service struct {
	store    Store
	fallback Fallback
	metrics  Metrics
	coin     model.Coin
	network  model.Network
	logger   *zap.Logger
}

func New(store Store, fb Fallback, metrics Metrics, coin model.Coin, network model.Network, logger *zap.Logger) (*Service, error) {
	if metrics == nil {
		return nil, errors.New("explorer metrics is required")
	}
	return &Service{
		store:    store,
		fallback: fb,
		metrics:  metrics,
		coin:     coin,
		network:  network,
		logger:   logger,
	}, nil
}

// GetTransfersForAsset returns persisted transfers, or a partial node
// reconstruction when none are persisted or storage fails. Only invalid
// arguments are errors.
func (s *Service) GetTransfersForAsset(ctx context.Context, assetID string, page, limit int) (Page, error) {
	if assetID == "" {
		return Page{}, ErrInvalidAsset
	}
	if page < 1 || limit < 1 || limit > MaxLimit {
		return Page{}, ErrInvalidPage
	}

	started := time.Now()
	result, err := s.persisted(ctx, assetID, page, limit)
	if err == nil && result.Total > 0 {
		s.metrics.ObserveQuery(model.DataSourcePersisted, false, started)
		return result, nil
	}
	if err != nil {
		s.logger.Warn("persisted transfer query failed, using node fallback",
			zap.String("asset_id", assetID),
			zap.Error(err),
		)
	}

	result = s.fromFallback(ctx, assetID, page, limit)
	if err != nil {
		result.Degraded = append(result.Degraded, "persisted history unavailable")
	}
	s.metrics.ObserveQuery(model.DataSourceBlockchainFallback, len(result.Degraded) > 0, started)
	return result, nil
}

func (s *Service) persisted(ctx context.Context, assetID string, page, limit int) (Page, error) {
	total, err := s.store.CountTransfersByAsset(ctx, s.coin, s.network, assetID)
	if err != nil {
		return Page{}, err
	}
	result := Page{
		AssetID:    assetID,
		Page:       page,
		Limit:      limit,
		Total:      total,
		DataSource: model.DataSourcePersisted,
		Transfers:  []Transfer{},
	}
	if total == 0 {
		return result, nil
	}

	offset, ok := pageOffset(page, limit, total)
	if !ok {
		return result, nil
	}
	transfers, err := s.store.FindTransfersByAsset(ctx, s.coin, s.network, assetID, offset, uint64(limit))
	if err != nil {
		return Page{}, err
	}
	result.Transfers = toTransfers(transfers, model.DataSourcePersisted)
	return result, nil
}

func (s *Service) fromFallback(ctx context.Context, assetID string, page, limit int) Page {
	fb := s.fallback.Lookup(ctx, assetID)
	all := toTransfers(fb.Transfers, model.DataSourceBlockchainFallback)

	result := Page{
		AssetID:    assetID,
		Page:       page,
		Limit:      limit,
		Total:      uint64(len(all)),
		DataSource: model.DataSourceBlockchainFallback,
		Partial:    true,
		Degraded:   fb.Degraded,
		Transfers:  []Transfer{},
	}

	offset, ok := pageOffset(page, limit, uint64(len(all)))
	if !ok {
		return result
	}
	end := offset + uint64(limit)
	if end > uint64(len(all)) {
		end = uint64(len(all))
	}
	result.Transfers = all[offset:end]
	return result
}

// pageOffset returns the first row of a page when it starts before total.
// Pages past the end report false without computing an overflowing offset.
func pageOffset(page, limit int, total uint64) (uint64, bool) {
	if total == 0 || page < 1 || limit < 1 {
		return 0, false
	}
	if uint64(page-1) > (total-1)/uint64(limit) {
		return 0, false
	}
	return uint64(page-1) * uint64(limit), true
}

func toTransfers(in []model.AssetTransfer, source model.DataSource) []Transfer {
	out := make([]Transfer, 0, len(in))
	for _, t := range in {
		tr := Transfer{
			TxID:        t.TxID,
			VoutIndex:   t.VoutIndex,
			TxIndex:     t.TxIndex,
			AssetID:     t.AssetID,
			AssetName:   t.AssetName,
			From:        t.From,
			To:          t.To,
			Amount:      t.Amount,
			Type:        t.Type,
			BlockHeight: t.BlockHeight,
			DataSource:  source,
		}
		if !t.BlockTime.IsZero() {
			bt := t.BlockTime.UTC()
			tr.BlockTime = &bt
		}
		out = append(out, tr)
	}
	return out
}
