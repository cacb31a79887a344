package model

import (
	"fmt"
	"time"

	"github.com/btcsuite/btcd/btcutil"
)

// Asset is the canonical registry entry of a custom asset.
type Asset struct {
	Coin            Coin
	Network         Network
	AssetID         string
	Name            string
	OwnerAddress    string
	CreatorAddress  string
	TotalSupply     uint64
	TransferCount   uint64
	CreatedAtHeight uint64
}

// AssetIdentity is a resolved (assetId, name) pair.
type AssetIdentity struct {
	AssetID string
	Name    string
}

// TransferType describes the kind of asset event.
type TransferType string

const (
	TransferMint     TransferType = "mint"
	TransferTransfer TransferType = "transfer"
	TransferBurn     TransferType = "burn"
)

// Valid reports whether t is a known transfer type.
func (t TransferType) Valid() bool {
	switch t {
	case TransferMint, TransferTransfer, TransferBurn:
		return true
	default:
		return false
	}
}

// Counted reports whether the event contributes to an asset's transfer count.
func (t TransferType) Counted() bool {
	return t == TransferTransfer || t == TransferBurn
}

// DataSource tells consumers whether a record is authoritative.
type DataSource string

const (
	DataSourcePersisted          DataSource = "persisted"
	DataSourceBlockchainFallback DataSource = "blockchain-fallback"
)

// AssetTransfer is one asset event, unique by (TxID, VoutIndex).
type AssetTransfer struct {
	Coin        Coin
	Network     Network
	TxID        string
	VoutIndex   uint32
	TxIndex     uint32 // position of the transaction within its block
	AssetID     string
	AssetName   string
	From        string
	To          string
	Amount      uint64
	Type        TransferType
	BlockHeight uint64
	BlockTime   time.Time
}

// AssetAmountToBaseUnits converts a decimal node amount into integer base units.
func AssetAmountToBaseUnits(value float64) (uint64, error) {
	amt, err := btcutil.NewAmount(value)
	if err != nil {
		return 0, err
	}
	if amt < 0 {
		return 0, fmt.Errorf("negative amount: %d", amt)
	}
	return uint64(amt), nil
}

// RegistryStats is the diagnostic summary of persisted state.
type RegistryStats struct {
	AssetCount    uint64
	TransferCount uint64
}
