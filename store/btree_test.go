package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheWrapWriteAndDiscard(t *testing.T) {
	base := MemStore()
	require.NoError(t, base.Set([]byte("will"), []byte("v1")))

	// discarded writes never reach the parent
	cache := base.CacheWrap()
	require.NoError(t, cache.Set([]byte("will"), []byte("v2")))
	require.NoError(t, cache.Set([]byte("wallet"), []byte("w")))
	val, err := cache.Get([]byte("will"))
	require.NoError(t, err)
	assert.Equal(t, []byte("v2"), val)
	cache.Discard()

	val, err = base.Get([]byte("will"))
	require.NoError(t, err)
	assert.Equal(t, []byte("v1"), val)
	has, err := base.Has([]byte("wallet"))
	require.NoError(t, err)
	assert.False(t, has)

	// written ones do
	cache = base.CacheWrap()
	require.NoError(t, cache.Delete([]byte("will")))
	require.NoError(t, cache.Set([]byte("wallet"), []byte("w")))
	has, err = cache.Has([]byte("will"))
	require.NoError(t, err)
	assert.False(t, has)
	require.NoError(t, cache.Write())

	val, err = base.Get([]byte("will"))
	require.NoError(t, err)
	assert.Nil(t, val)
	val, err = base.Get([]byte("wallet"))
	require.NoError(t, err)
	assert.Equal(t, []byte("w"), val)
}

func TestNestedCacheWrap(t *testing.T) {
	base := MemStore()
	outer := base.CacheWrap()
	inner := outer.CacheWrap()

	require.NoError(t, inner.Set([]byte("k"), []byte("inner")))
	got, err := outer.Get([]byte("k"))
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, inner.Write())
	got, err = outer.Get([]byte("k"))
	require.NoError(t, err)
	assert.Equal(t, []byte("inner"), got)

	got, err = base.Get([]byte("k"))
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, outer.Write())
	got, err = base.Get([]byte("k"))
	require.NoError(t, err)
	assert.Equal(t, []byte("inner"), got)
}

func TestBTreeCacheable(t *testing.T) {
	base := MemStore()
	c := BTreeCacheable{KVStore: base}
	wrap := c.CacheWrap()
	require.NoError(t, wrap.Set([]byte("a"), []byte("1")))
	require.NoError(t, wrap.Write())

	got, err := base.Get([]byte("a"))
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), got)
}
