package app

import (
	"reflect"

	"github.com/iov-one/heirloom"
)

// Decorators is an ordered list of decorators waiting for the handler they
// wrap. The first decorator is the outermost one.
//
//   app.ChainDecorators(
//     utils.NewRecovery(),
//     sigs.NewDecorator(),
//     utils.NewSavepoint().OnDeliver(),
//   ).WithHandler(router)
type Decorators struct {
	chain []heirloom.Decorator
}

// ChainDecorators starts a chain. Nil decorators, including typed nil
// pointers, are skipped so optional ones can be passed as they are.
func ChainDecorators(chain ...heirloom.Decorator) Decorators {
	return Decorators{}.Chain(chain...)
}

// Chain returns a new chain with more decorators at the end.
func (d Decorators) Chain(chain ...heirloom.Decorator) Decorators {
	all := make([]heirloom.Decorator, 0, len(d.chain)+len(chain))
	all = append(all, d.chain...)
	for _, dec := range chain {
		if !isNil(dec) {
			all = append(all, dec)
		}
	}
	return Decorators{chain: all}
}

func isNil(d heirloom.Decorator) bool {
	if d == nil {
		return true
	}
	v := reflect.ValueOf(d)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

// WithHandler closes the chain with h.
func (d Decorators) WithHandler(h heirloom.Handler) heirloom.Handler {
	for i := len(d.chain) - 1; i >= 0; i-- {
		h = link{dec: d.chain[i], next: h}
	}
	return h
}

// link calls one decorator with the rest of the chain.
type link struct {
	dec  heirloom.Decorator
	next heirloom.Handler
}

var _ heirloom.Handler = link{}

func (l link) Check(ctx heirloom.Context, store heirloom.KVStore, tx heirloom.Tx) (*heirloom.CheckResult, error) {
	return l.dec.Check(ctx, store, tx, l.next)
}

func (l link) Deliver(ctx heirloom.Context, store heirloom.KVStore, tx heirloom.Tx) (*heirloom.DeliverResult, error) {
	return l.dec.Deliver(ctx, store, tx, l.next)
}
