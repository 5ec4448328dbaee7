package heirloom

import (
	"testing"

	"github.com/iov-one/heirloom/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeliverOrError(t *testing.T) {
	res := &DeliverResult{Data: []byte{1, 2}, Log: "ok"}
	abciRes := DeliverOrError(res, nil, false)
	assert.Equal(t, uint32(0), abciRes.Code)
	assert.Equal(t, []byte{1, 2}, abciRes.Data)

	failed := DeliverOrError(nil, errors.Wrap(errors.ErrState, "will not created"), false)
	assert.Equal(t, uint32(10), failed.Code)
	assert.Equal(t, "cannot deliver tx: will not created: invalid state", failed.Log)

	parsed, err := ParseDeliverOrError(failed)
	assert.Nil(t, parsed)
	assert.True(t, errors.ErrState.Is(err))

	parsed, err = ParseDeliverOrError(abciRes)
	require.NoError(t, err)
	assert.Equal(t, "ok", parsed.Log)
}

func TestCheckOrError(t *testing.T) {
	ok := CheckOrError(&CheckResult{GasAllocated: 100, Log: "checked"}, nil, false)
	assert.Equal(t, int64(100), ok.GasWanted)
	assert.Equal(t, "checked", ok.Log)

	internal := CheckOrError(nil, errors.ErrUnauthorized, false)
	assert.Equal(t, uint32(2), internal.Code)
}
