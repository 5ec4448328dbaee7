package history

import (
	"github.com/iov-one/heirloom"
	"github.com/iov-one/heirloom/x"
)

// Decorator records every successful Deliver in the Store.
type Decorator struct {
	store *Store
	auth  x.Authenticator
	pos   *blockPos
}

// blockPos counts the events recorded in the current block. DeliverTx runs
// serially, so it needs no lock.
type blockPos struct {
	height int64
	next   int
}

func (p *blockPos) take(height int64) int {
	if p.height != height {
		p.height, p.next = height, 0
	}
	n := p.next
	p.next++
	return n
}

var _ heirloom.Decorator = Decorator{}

// NewDecorator returns a decorator writing into store. The main signer
// reported by auth is recorded as the event signer.
func NewDecorator(store *Store, auth x.Authenticator) Decorator {
	return Decorator{store: store, auth: auth, pos: &blockPos{}}
}

// Check just passes the request along
func (d Decorator) Check(ctx heirloom.Context, db heirloom.KVStore, tx heirloom.Tx, next heirloom.Checker) (*heirloom.CheckResult, error) {
	return next.Check(ctx, db, tx)
}

// Deliver records the result once the rest of the stack succeeded.
func (d Decorator) Deliver(ctx heirloom.Context, db heirloom.KVStore, tx heirloom.Tx, next heirloom.Deliverer) (*heirloom.DeliverResult, error) {
	res, err := next.Deliver(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	e := Event{
		Path: heirloom.GetPath(tx),
		Data: res.Data,
		Log:  res.Log,
	}
	e.Height, _ = heirloom.GetHeight(ctx)
	e.Pos = d.pos.take(e.Height)
	if now, err := heirloom.BlockTime(ctx); err == nil {
		e.Time = now.UTC()
	}
	if addr := x.MainSignerAddress(ctx, d.auth); addr != nil {
		e.Signer = addr.String()
	}
	if err := d.store.Record(&e); err != nil {
		heirloom.GetLogger(ctx).Error("cannot record history", "path", e.Path, "err", err)
	}
	return res, nil
}
