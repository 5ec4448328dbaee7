package x

import (
	"github.com/iov-one/heirloom"
)

// Authenticator tells a handler which conditions authorized the current
// transaction. Handlers receive one in their constructor instead of
// depending on x/sigs directly.
type Authenticator interface {
	GetConditions(heirloom.Context) []heirloom.Condition
	HasAddress(heirloom.Context, heirloom.Address) bool
}

// MultiAuth merges the conditions of several Authenticators, in order.
type MultiAuth []Authenticator

var _ Authenticator = MultiAuth{}

func ChainAuth(impls ...Authenticator) MultiAuth {
	return MultiAuth(impls)
}

func (m MultiAuth) GetConditions(ctx heirloom.Context) []heirloom.Condition {
	var all []heirloom.Condition
	for _, a := range m {
		all = append(all, a.GetConditions(ctx)...)
	}
	return all
}

func (m MultiAuth) HasAddress(ctx heirloom.Context, addr heirloom.Address) bool {
	for _, a := range m {
		if a.HasAddress(ctx, addr) {
			return true
		}
	}
	return false
}

// GetAddresses returns the address of every condition of auth.
func GetAddresses(ctx heirloom.Context, auth Authenticator) []heirloom.Address {
	conds := auth.GetConditions(ctx)
	addrs := make([]heirloom.Address, 0, len(conds))
	for _, c := range conds {
		addrs = append(addrs, c.Address())
	}
	return addrs
}

// MainSigner is the first condition, nil for an unsigned transaction.
func MainSigner(ctx heirloom.Context, auth Authenticator) heirloom.Condition {
	if conds := auth.GetConditions(ctx); len(conds) > 0 {
		return conds[0]
	}
	return nil
}

// MainSignerAddress is the address of MainSigner, nil for an unsigned
// transaction.
func MainSignerAddress(ctx heirloom.Context, auth Authenticator) heirloom.Address {
	if signer := MainSigner(ctx, auth); signer != nil {
		return signer.Address()
	}
	return nil
}
