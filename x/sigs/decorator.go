/*
Package sigs verifies the signatures of a transaction and keeps a sequence
per signer, so a signed transaction cannot be replayed.
*/
package sigs

import (
	"github.com/iov-one/heirloom"
	"github.com/iov-one/heirloom/errors"
)

// signatureVerifyCost is the gas charged for every verified signature.
const signatureVerifyCost = 500

// Decorator puts the verified signers of a SignedTx in the context. A
// transaction that is not a SignedTx passes through untouched.
type Decorator struct {
	allowMissingSigs bool
}

var _ heirloom.Decorator = Decorator{}

// NewDecorator returns a Decorator that requires at least one signature.
func NewDecorator() Decorator {
	return Decorator{}
}

// AllowMissingSigs lets unsigned transactions through with no signers.
func (d Decorator) AllowMissingSigs() Decorator {
	d.allowMissingSigs = true
	return d
}

func (d Decorator) Check(ctx heirloom.Context, store heirloom.KVStore, tx heirloom.Tx, next heirloom.Checker) (*heirloom.CheckResult, error) {
	ctx, n, err := d.authenticate(ctx, store, tx)
	if err != nil {
		return nil, err
	}
	res, err := next.Check(ctx, store, tx)
	if err != nil {
		return nil, err
	}
	res.GasAllocated += int64(n * signatureVerifyCost)
	return res, nil
}

func (d Decorator) Deliver(ctx heirloom.Context, store heirloom.KVStore, tx heirloom.Tx, next heirloom.Deliverer) (*heirloom.DeliverResult, error) {
	ctx, _, err := d.authenticate(ctx, store, tx)
	if err != nil {
		return nil, err
	}
	return next.Deliver(ctx, store, tx)
}

// authenticate verifies the signatures, increments the sequences and
// returns the context carrying the signers together with their count.
func (d Decorator) authenticate(ctx heirloom.Context, store heirloom.KVStore, tx heirloom.Tx) (heirloom.Context, int, error) {
	stx, ok := tx.(SignedTx)
	if !ok {
		return ctx, 0, nil
	}
	signers, err := VerifyTxSignatures(store, stx, heirloom.GetChainID(ctx))
	if err != nil {
		return nil, 0, errors.Wrap(err, "cannot verify signatures")
	}
	if len(signers) == 0 && !d.allowMissingSigs {
		return nil, 0, errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	return withSigners(ctx, signers), len(signers), nil
}
