package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNonAtomicBatch(t *testing.T) {
	base := MemStore()
	b := NewNonAtomicBatch(base)
	require.NoError(t, b.Set([]byte("a"), []byte("1")))
	require.NoError(t, b.Set([]byte("b"), []byte("2")))
	require.NoError(t, b.Delete([]byte("a")))
	assert.Equal(t, 3, b.Len())

	has, err := base.Has([]byte("b"))
	require.NoError(t, err)
	assert.False(t, has)

	require.NoError(t, b.Write())
	assert.Equal(t, 0, b.Len())

	has, err = base.Has([]byte("a"))
	require.NoError(t, err)
	assert.False(t, has)
	got, err := base.Get([]byte("b"))
	require.NoError(t, err)
	assert.Equal(t, []byte("2"), got)

	require.NoError(t, b.Set([]byte("c"), []byte("3")))
	b.Reset()
	require.NoError(t, b.Write())
	has, err = base.Has([]byte("c"))
	require.NoError(t, err)
	assert.False(t, has)
}

func TestEmptyKVStore(t *testing.T) {
	var e EmptyKVStore
	require.NoError(t, e.Set([]byte("a"), []byte("1")))
	got, err := e.Get([]byte("a"))
	require.NoError(t, err)
	assert.Nil(t, got)
}
