package controller

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-assets/internal/asset/classifier"
	"github.com/goodnatureofminers/blockinsight7000-assets/internal/asset/model"
	"github.com/goodnatureofminers/blockinsight7000-assets/internal/asset/recorder"
	"github.com/goodnatureofminers/blockinsight7000-assets/pkg/safe"
	"go.uber.org/zap"
)

// BlockOutcome counts what happened to the asset outputs of one block.
type BlockOutcome struct {
	Inserted   int
	Duplicates int
	Malformed  int
	Unresolved int
}

type blockProcessor struct {
	node       Node
	classifier Classifier
	resolver   Resolver
	recorder   Recorder
	skips      SkipSink
	coin       model.Coin
	network    model.Network
	logger     *zap.Logger
}

// Process records every asset output of block in transaction order. Malformed
// and unresolved outputs are skipped; any other failure aborts the block.
func (p *blockProcessor) Process(ctx context.Context, block *model.Block) (BlockOutcome, error) {
	var outcome BlockOutcome
	senders := newSenderResolver(p.node, block)
	blockTime := time.Unix(block.Time, 0).UTC()

	for i, tx := range block.Tx {
		payloads := p.classifier.Classify(tx)
		if len(payloads) == 0 {
			continue
		}

		txIndex, err := transactionIndex(block.Height, i)
		if err != nil {
			return outcome, err
		}
		var (
			sender         string
			senderResolved bool
		)
		for _, payload := range payloads {
			identity, amount, err := p.resolve(ctx, tx.TxID, payload)
			if err != nil {
				if !model.IsSkippable(err) {
					return outcome, err
				}
				p.skip(ctx, block.Height, tx.TxID, payload, err, &outcome)
				continue
			}

			ev := recorder.Event{
				Identity:    identity,
				To:          payload.Destination,
				Amount:      amount,
				Type:        payload.Kind,
				TxID:        tx.TxID,
				VoutIndex:   payload.VoutIndex,
				TxIndex:     txIndex,
				BlockHeight: block.Height,
				BlockTime:   blockTime,
			}
			if payload.Kind != model.TransferMint {
				if !senderResolved {
					sender, err = senders.Resolve(ctx, tx)
					if err != nil {
						return outcome, fmt.Errorf("resolve sender of %s: %w", tx.TxID, err)
					}
					senderResolved = true
				}
				ev.From = sender
			}

			res, _, err := p.recorder.Record(ctx, ev)
			if err != nil {
				return outcome, err
			}
			if res == recorder.AlreadyExists {
				outcome.Duplicates++
			} else {
				outcome.Inserted++
			}
		}
	}
	return outcome, nil
}

func transactionIndex(height uint64, i int) (uint32, error) {
	idx, err := safe.Uint32(i)
	if err != nil {
		return 0, fmt.Errorf("block %d transaction index: %w", height, err)
	}
	return idx, nil
}

func (p *blockProcessor) resolve(ctx context.Context, txid string, payload classifier.RawPayload) (model.AssetIdentity, uint64, error) {
	if payload.Amount == nil {
		return model.AssetIdentity{}, 0, &model.MalformedPayloadError{
			TxID:      txid,
			VoutIndex: payload.VoutIndex,
			Field:     "amount",
			Reason:    "missing",
		}
	}
	amount, err := model.AssetAmountToBaseUnits(*payload.Amount)
	if err != nil {
		return model.AssetIdentity{}, 0, &model.MalformedPayloadError{
			TxID:      txid,
			VoutIndex: payload.VoutIndex,
			Field:     "amount",
			Reason:    err.Error(),
		}
	}

	identity, err := p.resolver.Resolve(ctx, txid, payload)
	if err != nil {
		return model.AssetIdentity{}, 0, err
	}
	return identity, amount, nil
}

func (p *blockProcessor) skip(ctx context.Context, height uint64, txid string, payload classifier.RawPayload, cause error, outcome *BlockOutcome) {
	reason := model.SkipUnresolved
	var malformed *model.MalformedPayloadError
	if errors.As(cause, &malformed) {
		reason = model.SkipMalformed
		outcome.Malformed++
	} else {
		outcome.Unresolved++
	}

	p.logger.Warn("asset output skipped",
		zap.String("txid", txid),
		zap.Uint32("vout", payload.VoutIndex),
		zap.Uint64("height", height),
		zap.String("reason", string(reason)),
		zap.String("raw_asset_id", payload.AssetID),
		zap.String("raw_name", payload.Name),
		zap.Error(cause),
	)

	if p.skips == nil {
		return
	}
	err := p.skips.Add(ctx, model.SkippedOutput{
		Coin:        p.coin,
		Network:     p.network,
		TxID:        txid,
		VoutIndex:   payload.VoutIndex,
		BlockHeight: height,
		Reason:      reason,
		RawAssetID:  payload.AssetID,
		RawName:     payload.Name,
		Detail:      cause.Error(),
	})
	if err != nil {
		p.logger.Error("record skipped output failed", zap.String("txid", txid), zap.Error(err))
	}
}
