package model

// Block is a verbose block as returned by the node (getblock with verbosity 2).
type Block struct {
	Hash              string        `json:"hash"`
	Height            uint64        `json:"height"`
	PreviousBlockHash string        `json:"previousblockhash"`
	Time              int64         `json:"time"`
	Tx                []Transaction `json:"tx"`
}

// Transaction is a decoded transaction with its inputs and outputs.
type Transaction struct {
	TxID      string `json:"txid"`
	Hash      string `json:"hash"`
	BlockHash string `json:"blockhash,omitempty"`
	Time      int64  `json:"time,omitempty"`
	Vin       []Vin  `json:"vin"`
	Vout      []Vout `json:"vout"`
}

// Vin is a transaction input. Address is populated by nodes running with the address index.
type Vin struct {
	TxID     string `json:"txid,omitempty"`
	Vout     uint32 `json:"vout"`
	Coinbase string `json:"coinbase,omitempty"`
	Address  string `json:"address,omitempty"`
}

// IsCoinbase reports whether the input spends no previous output.
func (v Vin) IsCoinbase() bool {
	return v.Coinbase != "" || v.TxID == ""
}

// Vout is a transaction output. Older nodes place the asset payload inside the
// script, newer ones next to it.
type Vout struct {
	Value        float64       `json:"value"`
	N            uint32        `json:"n"`
	ScriptPubKey ScriptPubKey  `json:"scriptPubKey"`
	Asset        *AssetPayload `json:"asset,omitempty"`
}

// ScriptPubKey is the decoded locking script of an output.
type ScriptPubKey struct {
	Asm       string        `json:"asm"`
	Hex       string        `json:"hex"`
	Type      string        `json:"type"`
	Address   string        `json:"address,omitempty"`
	Addresses []string      `json:"addresses,omitempty"`
	Asset     *AssetPayload `json:"asset,omitempty"`
}

// Destination returns the first address the script pays to.
func (s ScriptPubKey) Destination() string {
	if s.Address != "" {
		return s.Address
	}
	if len(s.Addresses) > 0 {
		return s.Addresses[0]
	}
	return ""
}

// AssetPayload is the raw asset metadata attached to an output. Every field is optional.
type AssetPayload struct {
	Name    string   `json:"name,omitempty"`
	AssetID string   `json:"asset_id,omitempty"`
	Amount  *float64 `json:"amount,omitempty"`
	Type    string   `json:"type,omitempty"`
}

// Empty reports whether the payload carries nothing usable.
func (p *AssetPayload) Empty() bool {
	return p == nil || (p.Name == "" && p.AssetID == "" && p.Amount == nil && p.Type == "")
}

// AddressDelta is one row of the node's address index.
type AddressDelta struct {
	AssetName  string `json:"assetName"`
	Satoshis   int64  `json:"satoshis"`
	TxID       string `json:"txid"`
	Index      uint32 `json:"index"`
	BlockIndex uint32 `json:"blockindex"`
	Height     uint64 `json:"height"`
	Address    string `json:"address"`
}
