package utils

import (
	"github.com/iov-one/heirloom"
	"github.com/iov-one/heirloom/errors"
)

// Recovery converts a panic anywhere below it into an ErrPanic error, so a
// misbehaving transaction fails instead of stopping the node.
type Recovery struct{}

var _ heirloom.Decorator = Recovery{}

// NewRecovery creates a Recovery decorator
func NewRecovery() Recovery {
	return Recovery{}
}

// Check turns panics into normal errors
func (Recovery) Check(ctx heirloom.Context, store heirloom.KVStore, tx heirloom.Tx, next heirloom.Checker) (_ *heirloom.CheckResult, err error) {
	defer recovered(ctx, &err)
	return next.Check(ctx, store, tx)
}

// Deliver turns panics into normal errors
func (Recovery) Deliver(ctx heirloom.Context, store heirloom.KVStore, tx heirloom.Tx, next heirloom.Deliverer) (_ *heirloom.DeliverResult, err error) {
	defer recovered(ctx, &err)
	return next.Deliver(ctx, store, tx)
}

// recovered must be deferred directly, recover only works one frame below
// the deferred call.
func recovered(ctx heirloom.Context, err *error) {
	if r := recover(); r != nil {
		*err = errors.Wrapf(errors.ErrPanic, "%v", r)
		heirloom.GetLogger(ctx).Error("recovered from panic", "err", *err)
	}
}
