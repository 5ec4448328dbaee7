package heirloom

import (
	"encoding/json"

	"github.com/iov-one/heirloom/errors"
)

// Handler processes the messages of one route, for example the creation
// of a will or the claim of a share.
type Handler interface {
	Checker
	Deliverer
}

// Checker runs a transaction against the mempool state. It only needs to
// prove the transaction is worth including in a block.
type Checker interface {
	Check(ctx Context, store KVStore, tx Tx) (*CheckResult, error)
}

// Deliverer runs a transaction of a block.
type Deliverer interface {
	Deliver(ctx Context, store KVStore, tx Tx) (*DeliverResult, error)
}

// Decorator runs around the next handler of a chain, for concerns shared
// by every message such as authentication or logging.
type Decorator interface {
	Check(ctx Context, store KVStore, tx Tx, next Checker) (*CheckResult, error)
	Deliver(ctx Context, store KVStore, tx Tx, next Deliverer) (*DeliverResult, error)
}

// Registry binds handlers to message routes. The route is read from the
// message, so it always matches the path the message reports.
type Registry interface {
	Handle(Msg, Handler)
}

// Options is the genesis app state, one raw JSON section per extension.
type Options map[string]json.RawMessage

// ReadOptions decodes the section key into obj. A missing section leaves
// obj untouched.
func (o Options) ReadOptions(key string, obj interface{}) error {
	raw := o[key]
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, obj); err != nil {
		return errors.Wrapf(errors.ErrInput, "cannot parse %q: %s", key, err)
	}
	return nil
}

// Initializer loads the genesis state of an extension.
type Initializer interface {
	FromGenesis(Options, KVStore) error
}

// ChainInitializers runs inits in order and stops at the first failure.
func ChainInitializers(inits ...Initializer) Initializer {
	return initializers(inits)
}

type initializers []Initializer

func (inits initializers) FromGenesis(opts Options, kv KVStore) error {
	for _, init := range inits {
		if err := init.FromGenesis(opts, kv); err != nil {
			return err
		}
	}
	return nil
}
