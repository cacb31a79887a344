package node

import (
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcjson"
)

var (
	// ErrNotFound is returned when the node does not know the requested object.
	ErrNotFound = errors.New("not found")
	// ErrTimeout is wrapped by TransportError when a call exceeds its deadline.
	ErrTimeout  = errors.New("rpc timeout")
)

// TransportError reports an unreachable node, a timeout or an undecodable response.
type TransportError struct {
	Method string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("node %s: %v", e.Method, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsTransport reports whether err is a retryable transport failure.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

func classify(method string, err error) error {
	var rpcErr *btcjson.RPCError
	if errors.As(err, &rpcErr) {
		switch rpcErr.Code {
		case btcjson.ErrRPCInvalidAddressOrKey, btcjson.ErrRPCInvalidParameter:
			return fmt.Errorf("node %s: %w: %s", method, ErrNotFound, rpcErr.Message)
		}
	}
	return &TransportError{Method: method, Err: err}
}
