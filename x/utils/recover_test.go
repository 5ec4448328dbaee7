package utils

import (
	"bytes"
	"context"
	"testing"

	"github.com/iov-one/heirloom"
	"github.com/iov-one/heirloom/errors"
	"github.com/iov-one/heirloom/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/log"
)

func TestRecoveryTurnsPanicIntoError(t *testing.T) {
	var buf bytes.Buffer
	ctx := heirloom.WithLogger(context.Background(), log.NewTMLogger(log.NewSyncWriter(&buf)))
	db := store.MemStore()

	require.Panics(t, func() { _, _ = panicHandler{}.Deliver(ctx, db, nil) })

	_, err := NewRecovery().Check(ctx, db, nil, panicHandler{})
	assert.True(t, errors.ErrPanic.Is(err))
	assert.Contains(t, err.Error(), "check panic")

	_, err = NewRecovery().Deliver(ctx, db, nil, panicHandler{})
	assert.True(t, errors.ErrPanic.Is(err))
	assert.Contains(t, buf.String(), "recovered from panic")
}

func TestRecoveryPassesResults(t *testing.T) {
	db := store.MemStore()
	h := writeHandler{key: []byte("k")}

	res, err := NewRecovery().Deliver(context.Background(), db, pathTx{}, h)
	require.NoError(t, err)
	assert.Equal(t, "delivered", res.Log)
}
