// Package node is a thin RPC façade over an asset-capable UTXO node.
package node

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-assets/internal/asset/model"
)

const (
	opGetBlockCount    = "get_block_count"
	opGetBlockHash     = "get_block_hash"
	opGetBlock         = "get_block"
	opGetTransaction   = "get_raw_transaction"
	opGetAddressDeltas = "get_address_deltas"
)

// Client performs node queries with a bounded per-call timeout and records metrics.
// It does not cache or retry.
type Client struct {
	client     RPCClient
	rpcMetrics RPCMetrics
	timeout    time.Duration
}

// NewClient constructs an instrumented node client.
func NewClient(client RPCClient, rpcMetrics RPCMetrics, timeout time.Duration) *Client {
	return &Client{
		client:     client,
		rpcMetrics: rpcMetrics,
		timeout:    timeout,
	}
}

// BestHeight returns the height of the node's chain tip.
func (c *Client) BestHeight(ctx context.Context) (uint64, error) {
	var count int64
	if err := c.call(ctx, opGetBlockCount, "getblockcount", &count); err != nil {
		return 0, err
	}
	if count < 0 {
		return 0, &TransportError{Method: "getblockcount", Err: fmt.Errorf("negative block count %d", count)}
	}
	return uint64(count), nil
}

// GetBlockHash returns the hash of the active-chain block at height.
func (c *Client) GetBlockHash(ctx context.Context, height uint64) (string, error) {
	var hash string
	if err := c.call(ctx, opGetBlockHash, "getblockhash", &hash, height); err != nil {
		return "", err
	}
	if hash == "" {
		return "", fmt.Errorf("node getblockhash %d: %w", height, ErrNotFound)
	}
	return hash, nil
}

// GetBlockByHash returns the verbose block with decoded transactions.
func (c *Client) GetBlockByHash(ctx context.Context, hash string) (*model.Block, error) {
	var block model.Block
	if err := c.call(ctx, opGetBlock, "getblock", &block, hash, 2); err != nil {
		return nil, err
	}
	if err := validateBlock(&block); err != nil {
		return nil, &TransportError{Method: "getblock", Err: err}
	}
	return &block, nil
}

// GetBlockByHeight resolves the hash at height and fetches that block.
func (c *Client) GetBlockByHeight(ctx context.Context, height uint64) (*model.Block, error) {
	hash, err := c.GetBlockHash(ctx, height)
	if err != nil {
		return nil, err
	}
	block, err := c.GetBlockByHash(ctx, hash)
	if err != nil {
		return nil, err
	}
	if block.Height != height {
		return nil, &TransportError{
			Method: "getblock",
			Err:    fmt.Errorf("block %s reports height %d, requested %d", hash, block.Height, height),
		}
	}
	return block, nil
}

// GetTransaction returns a decoded transaction by id.
func (c *Client) GetTransaction(ctx context.Context, txid string) (*model.Transaction, error) {
	var tx model.Transaction
	if err := c.call(ctx, opGetTransaction, "getrawtransaction", &tx, txid, 1); err != nil {
		return nil, err
	}
	if tx.TxID == "" {
		return nil, &TransportError{Method: "getrawtransaction", Err: errors.New("response without txid")}
	}
	return &tx, nil
}

type addressDeltasRequest struct {
	Addresses []string `json:"addresses"`
	AssetName string   `json:"assetName,omitempty"`
}

// GetAddressDeltas queries the address index, optionally filtered by asset name.
func (c *Client) GetAddressDeltas(ctx context.Context, addresses []string, assetName string) ([]model.AddressDelta, error) {
	if len(addresses) == 0 {
		return nil, nil
	}
	var deltas []model.AddressDelta
	req := addressDeltasRequest{Addresses: addresses, AssetName: assetName}
	if err := c.call(ctx, opGetAddressDeltas, "getaddressdeltas", &deltas, req); err != nil {
		return nil, err
	}
	return deltas, nil
}

type rawResponse struct {
	result json.RawMessage
	err    error
}

func (c *Client) call(ctx context.Context, operation, method string, out any, params ...any) (err error) {
	started := time.Now()
	defer func() {
		c.rpcMetrics.Observe(operation, err, started)
	}()

	raw := make([]json.RawMessage, 0, len(params))
	for _, p := range params {
		encoded, marshalErr := json.Marshal(p)
		if marshalErr != nil {
			return fmt.Errorf("marshal %s params: %w", method, marshalErr)
		}
		raw = append(raw, encoded)
	}

	parent := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	done := make(chan rawResponse, 1)
	go func() {
		result, reqErr := c.client.RawRequest(method, raw)
		done <- rawResponse{result: result, err: reqErr}
	}()

	var resp rawResponse
	select {
	case <-ctx.Done():
		if parentErr := parent.Err(); parentErr != nil {
			return parentErr
		}
		return &TransportError{Method: method, Err: ErrTimeout}
	case resp = <-done:
	}

	if resp.err != nil {
		return classify(method, resp.err)
	}
	if len(resp.result) == 0 || string(resp.result) == "null" {
		return fmt.Errorf("node %s: %w", method, ErrNotFound)
	}
	if err = json.Unmarshal(resp.result, out); err != nil {
		return &TransportError{Method: method, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

func validateBlock(b *model.Block) error {
	if b.Hash == "" {
		return errors.New("block without hash")
	}
	for i, tx := range b.Tx {
		if tx.TxID == "" {
			return fmt.Errorf("block %s: transaction %d without txid", b.Hash, i)
		}
	}
	return nil
}
