package model

import (
	"errors"
	"fmt"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// ErrCursorCorrupted is returned when the persisted cursor cannot be trusted.
var ErrCursorCorrupted = errors.New("sync cursor corrupted")

// SyncCursor is the persisted indexing progress of one coin/network.
// Height is the last fully processed block; zero means nothing was processed.
type SyncCursor struct {
	Height    uint64
	Hash      string
	UpdatedAt time.Time
}

// Validate checks that the cursor is internally consistent.
// An empty hash is allowed after a rewind or a configured start height.
func (c SyncCursor) Validate() error {
	if c.Hash == "" {
		return nil
	}
	if c.Height == 0 {
		return fmt.Errorf("%w: hash %q at height 0", ErrCursorCorrupted, c.Hash)
	}
	if len(c.Hash) != chainhash.MaxHashStringSize {
		return fmt.Errorf("%w: hash %q has length %d", ErrCursorCorrupted, c.Hash, len(c.Hash))
	}
	if _, err := chainhash.NewHashFromStr(c.Hash); err != nil {
		return fmt.Errorf("%w: %v", ErrCursorCorrupted, err)
	}
	return nil
}

// Next returns the height that should be fetched after the cursor.
func (c SyncCursor) Next() uint64 {
	return c.Height + 1
}
