package x_test

import (
	"context"
	"testing"

	"github.com/iov-one/heirloom"
	"github.com/iov-one/heirloom/heirloomtest"
	"github.com/iov-one/heirloom/x"
	"github.com/stretchr/testify/assert"
)

func TestMultiAuth(t *testing.T) {
	a, b, c := heirloomtest.NewCondition(), heirloomtest.NewCondition(), heirloomtest.NewCondition()

	ctxAuth := &heirloomtest.CtxAuth{Key: "auth"}
	ctx := ctxAuth.SetConditions(context.Background(), b)
	auth := x.ChainAuth(&heirloomtest.Auth{Signer: a}, ctxAuth)

	conds := auth.GetConditions(ctx)
	assert.Equal(t, []heirloom.Condition{a, b}, conds)
	assert.True(t, auth.HasAddress(ctx, b.Address()))
	assert.False(t, auth.HasAddress(ctx, c.Address()))

	assert.Equal(t, []heirloom.Address{a.Address(), b.Address()}, x.GetAddresses(ctx, auth))
	assert.Equal(t, a, x.MainSigner(ctx, auth))
	assert.Equal(t, a.Address(), x.MainSignerAddress(ctx, auth))
}

func TestMainSignerEmpty(t *testing.T) {
	ctx := context.Background()
	auth := &heirloomtest.Auth{}
	assert.Nil(t, x.MainSigner(ctx, auth))
	assert.Nil(t, x.MainSignerAddress(ctx, auth))
}
