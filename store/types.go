package store

import "github.com/iov-one/heirloom"

// Aliases of the root store interfaces, so code in this package reads
// naturally.
type (
	ReadOnlyKVStore  = heirloom.ReadOnlyKVStore
	SetDeleter       = heirloom.SetDeleter
	KVStore          = heirloom.KVStore
	Batch            = heirloom.Batch
	CacheableKVStore = heirloom.CacheableKVStore
	KVCacheWrap      = heirloom.KVCacheWrap
	CommitKVStore    = heirloom.CommitKVStore
	CommitID         = heirloom.CommitID
)
