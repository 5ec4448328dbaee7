package sigs

import (
	"context"

	"github.com/iov-one/heirloom"
	"github.com/iov-one/heirloom/x"
)

type signersKey struct{}

// withSigners is private, only the Decorator may declare signers.
func withSigners(ctx heirloom.Context, signers []heirloom.Condition) heirloom.Context {
	return context.WithValue(ctx, signersKey{}, signers)
}

// Authenticate reads the signers verified by the Decorator.
type Authenticate struct{}

var _ x.Authenticator = Authenticate{}

// GetConditions returns the conditions of every verified signer, possibly
// none.
func (Authenticate) GetConditions(ctx heirloom.Context) []heirloom.Condition {
	signers, _ := ctx.Value(signersKey{}).([]heirloom.Condition)
	return signers
}

// HasAddress reports whether addr signed the current transaction.
func (a Authenticate) HasAddress(ctx heirloom.Context, addr heirloom.Address) bool {
	for _, c := range a.GetConditions(ctx) {
		if addr.Equals(c.Address()) {
			return true
		}
	}
	return false
}
