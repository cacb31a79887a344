package model

import (
	"errors"
	"fmt"
)

// ErrAssetNotFound is returned by registry lookups that match nothing.
var ErrAssetNotFound = errors.New("asset not found")

// MalformedPayloadError reports an asset output whose payload cannot be interpreted.
type MalformedPayloadError struct {
	TxID      string
	VoutIndex uint32
	Field     string
	Reason    string
}

func (e *MalformedPayloadError) Error() string {
	return fmt.Sprintf("malformed asset payload %s:%d: %s: %s", e.TxID, e.VoutIndex, e.Field, e.Reason)
}

// UnresolvedIdentityError reports a payload that cannot be mapped to a registry asset.
type UnresolvedIdentityError struct {
	TxID        string
	VoutIndex   uint32
	RawAssetID  string
	RawName     string
	CanonicalID string
	MissingBoth bool
}

func (e *UnresolvedIdentityError) Error() string {
	if e.MissingBoth {
		return fmt.Sprintf("unresolved asset identity %s:%d: name and asset id absent", e.TxID, e.VoutIndex)
	}
	return fmt.Sprintf("unresolved asset identity %s:%d: raw id %q name %q not in registry", e.TxID, e.VoutIndex, e.RawAssetID, e.RawName)
}

// AdministrativeResyncError rejects a resync command without changing state.
type AdministrativeResyncError struct {
	Reason string
}

func (e *AdministrativeResyncError) Error() string {
	return "resync rejected: " + e.Reason
}

// IsSkippable reports whether err only affects a single output.
func IsSkippable(err error) bool {
	var malformed *MalformedPayloadError
	var unresolved *UnresolvedIdentityError
	return errors.As(err, &malformed) || errors.As(err, &unresolved)
}
