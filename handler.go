package vesting

import (
	"encoding/json"
)

// Handler processes the messages of a single route, for example opening a
// stream or withdrawing vested tokens.
type Handler interface {
	Checker
	Deliverer
}

// Checker validates a transaction without committing its changes. The
// store passed to Check is discarded after the call.
type Checker interface {
	Check(ctx Context, store KVStore, tx Tx) (*CheckResult, error)
}

// Deliverer executes a transaction.
type Deliverer interface {
	Deliver(ctx Context, store KVStore, tx Tx) (*DeliverResult, error)
}

// Decorator runs around a handler, next is the handler it wraps.
type Decorator interface {
	Check(ctx Context, store KVStore, tx Tx, next Checker) (*CheckResult, error)
	Deliver(ctx Context, store KVStore, tx Tx, next Deliverer) (*DeliverResult, error)
}

// Registry binds handlers to message paths.
type Registry interface {
	Handle(path string, h Handler)
}

// CheckResult is returned by a successful Check. GasAllocated is the cost
// of processing the message.
type CheckResult struct {
	Data         []byte
	Log          string
	GasAllocated int64
}

// DeliverResult is returned by a successful Deliver. Data is the binary
// encoded, message specific response.
type DeliverResult struct {
	Data    []byte
	Log     string
	GasUsed int64
}

// Options is the application section of the genesis file. Every extension
// reads its own key.
type Options map[string]json.RawMessage

// ReadOptions decodes the value under key into obj. A missing key leaves
// obj unchanged.
func (o Options) ReadOptions(key string, obj interface{}) error {
	raw, ok := o[key]
	if !ok || len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, obj)
}

// Initializer loads the genesis state of an extension.
type Initializer interface {
	FromGenesis(Options, KVStore) error
}

// ChainInitializers returns an Initializer calling all given initializers
// in order. The first failure stops the chain.
func ChainInitializers(inits ...Initializer) Initializer {
	return initializers(inits)
}

type initializers []Initializer

func (all initializers) FromGenesis(opts Options, db KVStore) error {
	for _, init := range all {
		if err := init.FromGenesis(opts, db); err != nil {
			return err
		}
	}
	return nil
}
