package model

// ResyncMode selects what a resync deletes before rewinding the cursor.
type ResyncMode string

const (
	ResyncClearAll       ResyncMode = "clear-all"
	ResyncClearTransfers ResyncMode = "clear-transfers"
	ResyncFromOnly       ResyncMode = "from-only"
)

// Valid reports whether m is a known mode.
func (m ResyncMode) Valid() bool {
	switch m {
	case ResyncClearAll, ResyncClearTransfers, ResyncFromOnly:
		return true
	default:
		return false
	}
}

// ResyncRequest is an administrative rewind command. Reason is "operator" for
// commands and "reorg" for automatic rewinds.
type ResyncRequest struct {
	ID         string     `json:"id"`
	FromHeight uint64     `json:"fromHeight"`
	Mode       ResyncMode `json:"mode"`
	Reason     string     `json:"reason,omitempty"`
}

// SkipReason classifies why an asset output was not recorded.
type SkipReason string

const (
	SkipMalformed  SkipReason = "malformed"
	SkipUnresolved SkipReason = "unresolved"
)

// SkippedOutput is a reconciliation record for an asset output that was not recorded.
type SkippedOutput struct {
	Coin        Coin
	Network     Network
	TxID        string
	VoutIndex   uint32
	BlockHeight uint64
	Reason      SkipReason
	RawAssetID  string
	RawName     string
	Detail      string
}
