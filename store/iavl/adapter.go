/*
Package iavl provides the committed, versioned store backing the chain
state. Every commit saves a new version of the iavl tree, whose root hash
is reported to tendermint as the app hash.
*/
package iavl

import (
	"github.com/iov-one/heirloom/errors"
	"github.com/iov-one/heirloom/store"
	"github.com/tendermint/iavl"
	dbm "github.com/tendermint/tendermint/libs/db"
)

// DefaultCacheSize is the number of tree nodes kept in memory.
const DefaultCacheSize = 10000

// CommitStore manages a iavl committed state
type CommitStore struct {
	tree *iavl.MutableTree
	db   dbm.DB
}

var _ store.CommitKVStore = CommitStore{}

// NewCommitStore creates a new store with disk backing
func NewCommitStore(path, name string) CommitStore {
	db := dbm.NewDB(name, dbm.GoLevelDBBackend, path)
	return NewCommitStoreFromDB(db)
}

// NewMemCommitStore keeps the whole tree in memory. State is lost on exit,
// which makes it only useful for tests.
func NewMemCommitStore() CommitStore {
	return NewCommitStoreFromDB(dbm.NewMemDB())
}

// NewCommitStoreFromDB builds a store over an already opened database.
func NewCommitStoreFromDB(db dbm.DB) CommitStore {
	tree := iavl.NewMutableTree(db, DefaultCacheSize)
	return CommitStore{tree: tree, db: db}
}

// Get returns the value at last committed state
// returns nil iff key doesn't exist. Panics on nil key.
func (s CommitStore) Get(key []byte) ([]byte, error) {
	_, val := s.tree.GetVersioned(key, s.tree.Version())
	return val, nil
}

// Has checks the last committed state for the key.
func (s CommitStore) Has(key []byte) (bool, error) {
	val, err := s.Get(key)
	return val != nil, err
}

// Commit the next version to disk, and returns info
func (s CommitStore) Commit() (store.CommitID, error) {
	hash, version, err := s.tree.SaveVersion()
	if err != nil {
		return store.CommitID{}, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return store.CommitID{
		Version: version,
		Hash:    hash,
	}, nil
}

// LoadLatestVersion loads the latest persisted version.
// If there was a crash during the last commit, it is guaranteed
// to return a stable state, even if older.
func (s CommitStore) LoadLatestVersion() error {
	if _, err := s.tree.Load(); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}

// LatestVersion returns info on the latest version saved to disk
func (s CommitStore) LatestVersion() (store.CommitID, error) {
	return store.CommitID{
		Version: s.tree.Version(),
		Hash:    s.tree.Hash(),
	}, nil
}

// CacheWrap gives us a savepoint to perform actions.
// Writes go to the working tree and become durable on Commit.
func (s CommitStore) CacheWrap() store.KVCacheWrap {
	w := workingTree{tree: s.tree}
	return store.NewBTreeCacheWrap(w, w.NewBatch(), nil)
}

// Close releases the database.
func (s CommitStore) Close() {
	s.db.Close()
}

// workingTree exposes the uncommitted iavl tree as a KVStore.
type workingTree struct {
	tree *iavl.MutableTree
}

var _ store.KVStore = workingTree{}

func (w workingTree) Get(key []byte) ([]byte, error) {
	_, val := w.tree.Get(key)
	return val, nil
}

func (w workingTree) Has(key []byte) (bool, error) {
	return w.tree.Has(key), nil
}

func (w workingTree) Set(key, value []byte) error {
	w.tree.Set(key, value)
	return nil
}

func (w workingTree) Delete(key []byte) error {
	w.tree.Remove(key)
	return nil
}

func (w workingTree) NewBatch() store.Batch {
	return store.NewNonAtomicBatch(w)
}
