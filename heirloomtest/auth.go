package heirloomtest

import (
	"context"

	"github.com/iov-one/heirloom"
)

// Auth authenticates a fixed set of conditions, Signer first.
type Auth struct {
	Signer  heirloom.Condition
	Signers []heirloom.Condition
}

func (a *Auth) GetConditions(heirloom.Context) []heirloom.Condition {
	if a.Signer == nil {
		return a.Signers
	}
	return append([]heirloom.Condition{a.Signer}, a.Signers...)
}

func (a *Auth) HasAddress(ctx heirloom.Context, addr heirloom.Address) bool {
	return signedBy(a.GetConditions(ctx), addr)
}

// CtxAuth authenticates the conditions stored in the context with
// SetConditions. Instances with different keys do not see each other.
type CtxAuth struct {
	Key string
}

type ctxAuthKey string

func (a *CtxAuth) SetConditions(ctx heirloom.Context, conds ...heirloom.Condition) heirloom.Context {
	return context.WithValue(ctx, ctxAuthKey(a.Key), conds)
}

func (a *CtxAuth) GetConditions(ctx heirloom.Context) []heirloom.Condition {
	conds, _ := ctx.Value(ctxAuthKey(a.Key)).([]heirloom.Condition)
	return conds
}

func (a *CtxAuth) HasAddress(ctx heirloom.Context, addr heirloom.Address) bool {
	return signedBy(a.GetConditions(ctx), addr)
}

func signedBy(conds []heirloom.Condition, addr heirloom.Address) bool {
	for _, c := range conds {
		if addr.Equals(c.Address()) {
			return true
		}
	}
	return false
}
