package heirloom

// The store contract only covers single key reads and writes, nothing in
// the application iterates over ranges.

// ReadOnlyKVStore reads single keys. Get returns nil for a missing key.
type ReadOnlyKVStore interface {
	Get(key []byte) ([]byte, error)
	Has(key []byte) (bool, error)
}

// SetDeleter writes single keys. Implementations must not modify the
// given slices.
type SetDeleter interface {
	Set(key, value []byte) error
	Delete(key []byte) error
}

// KVStore is the store handed to handlers.
type KVStore interface {
	ReadOnlyKVStore
	SetDeleter
	NewBatch() Batch
}

// Batch collects writes and applies them on Write.
type Batch interface {
	SetDeleter
	Write() error
}

// CacheableKVStore can stack a cache on top of itself. Writes to the cache
// reach the store only when the cache is written.
type CacheableKVStore interface {
	KVStore
	CacheWrap() KVCacheWrap
}

// KVCacheWrap is a pending set of writes, readable as a store. Write moves
// them to the parent, Discard drops them.
type KVCacheWrap interface {
	CacheableKVStore
	Write() error
	Discard()
}

// CommitKVStore is the persistent root store. It is versioned, each Commit
// produces a new version whose hash becomes the app hash.
type CommitKVStore interface {
	// Get and Has read the last committed version.
	Get(key []byte) ([]byte, error)
	Has(key []byte) (bool, error)

	CacheWrap() KVCacheWrap
	Commit() (CommitID, error)

	// LoadLatestVersion loads the last complete version, which may be
	// older than the last commit attempt after a crash.
	LoadLatestVersion() error
	LatestVersion() (CommitID, error)
}

// CommitID identifies a committed version by height and root hash.
type CommitID struct {
	Version int64
	Hash    []byte
}
