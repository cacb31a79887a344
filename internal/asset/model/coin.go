package model

// Coin identifies an asset-capable UTXO chain.
type Coin string

// Network identifies the chain network.
type Network string

var (
	RVN Coin = "RVN"
	EVR Coin = "EVR"
)

var (
	Testnet Network = "testnet"
	Mainnet Network = "mainnet"
)
