package utils

import (
	"github.com/iov-one/heirloom"
	"github.com/iov-one/heirloom/errors"
)

// Savepoint runs the rest of the stack on a cache of the store. The cache
// is written when the call succeeds and dropped when it fails, so a failed
// transaction leaves no partial state behind.
type Savepoint struct {
	onCheck   bool
	onDeliver bool
}

var _ heirloom.Decorator = Savepoint{}

// NewSavepoint creates a Savepoint that does nothing until enabled with
// OnCheck or OnDeliver.
func NewSavepoint() Savepoint {
	return Savepoint{}
}

// OnCheck enables the savepoint for CheckTx.
func (s Savepoint) OnCheck() Savepoint {
	s.onCheck = true
	return s
}

// OnDeliver enables the savepoint for DeliverTx.
func (s Savepoint) OnDeliver() Savepoint {
	s.onDeliver = true
	return s
}

// Check isolates next.Check when enabled for CheckTx.
func (s Savepoint) Check(ctx heirloom.Context, store heirloom.KVStore, tx heirloom.Tx, next heirloom.Checker) (*heirloom.CheckResult, error) {
	cache, done := savepoint(s.onCheck, store)
	res, err := next.Check(ctx, cache, tx)
	if err := done(err); err != nil {
		return nil, err
	}
	return res, nil
}

// Deliver isolates next.Deliver when enabled for DeliverTx.
func (s Savepoint) Deliver(ctx heirloom.Context, store heirloom.KVStore, tx heirloom.Tx, next heirloom.Deliverer) (*heirloom.DeliverResult, error) {
	cache, done := savepoint(s.onDeliver, store)
	res, err := next.Deliver(ctx, cache, tx)
	if err := done(err); err != nil {
		return nil, err
	}
	return res, nil
}

// savepoint returns the store to run the call on and a function settling
// the cache with the call result. Stores that cannot be cached are used
// directly.
func savepoint(enabled bool, store heirloom.KVStore) (heirloom.KVStore, func(error) error) {
	cstore, ok := store.(heirloom.CacheableKVStore)
	if !enabled || !ok {
		return store, func(err error) error { return err }
	}
	cache := cstore.CacheWrap()
	return cache, func(err error) error {
		if err != nil {
			cache.Discard()
			return err
		}
		if err := cache.Write(); err != nil {
			return errors.Wrap(err, "writing savepoint")
		}
		return nil
	}
}
