package app

import (
	"encoding/binary"
	"time"

	"github.com/iov-one/heirloom"
	"github.com/iov-one/heirloom/errors"
)

// CommitStore keeps two caches over the committed state. DeliverTx writes
// to the deliver cache, which becomes the new state on Commit. CheckTx
// writes to the check cache, which is dropped on Commit.
type CommitStore struct {
	committed heirloom.CommitKVStore
	deliver   heirloom.KVCacheWrap
	check     heirloom.KVCacheWrap
}

// NewCommitStore loads the latest version of store. It panics when the
// state cannot be loaded, the node cannot run without it.
func NewCommitStore(store heirloom.CommitKVStore) *CommitStore {
	if err := store.LoadLatestVersion(); err != nil {
		panic(err)
	}
	cs := &CommitStore{committed: store}
	cs.resetCaches()
	return cs
}

func (cs *CommitStore) resetCaches() {
	cs.deliver = cs.committed.CacheWrap()
	cs.check = cs.committed.CacheWrap()
}

// CommitInfo returns the height and hash of the last commit.
func (cs *CommitStore) CommitInfo() (heirloom.CommitID, error) {
	return cs.committed.LatestVersion()
}

// Commit persists the deliver cache and starts fresh caches.
func (cs *CommitStore) Commit() (heirloom.CommitID, error) {
	if err := cs.deliver.Write(); err != nil {
		return heirloom.CommitID{}, errors.Wrap(err, "flush deliver cache")
	}
	cs.check.Discard()

	id, err := cs.committed.Commit()
	if err != nil {
		return id, err
	}
	cs.resetCaches()
	return id, nil
}

// CheckStore is the store used by CheckTx.
func (cs *CommitStore) CheckStore() heirloom.CacheableKVStore {
	return cs.check
}

// DeliverStore is the store used by DeliverTx and the block hooks.
func (cs *CommitStore) DeliverStore() heirloom.CacheableKVStore {
	return cs.deliver
}

// chainIDKey lives under the reserved "_hl:" prefix, no extension bucket
// may use it.
const chainIDKey = "_hl:chainID"

// mustLoadChainID returns the stored chain id, empty before genesis.
func mustLoadChainID(kv heirloom.ReadOnlyKVStore) string {
	raw, err := kv.Get([]byte(chainIDKey))
	if err != nil {
		panic(err)
	}
	return string(raw)
}

// saveChainID stores the chain id once. It fails for an invalid id and
// when an id is already stored.
func saveChainID(kv heirloom.KVStore, chainID string) error {
	if !heirloom.IsValidChainID(chainID) {
		return errors.Wrapf(errors.ErrInput, "chain id: %q", chainID)
	}
	key := []byte(chainIDKey)
	switch exists, err := kv.Has(key); {
	case err != nil:
		return errors.Wrap(err, "load chain id")
	case exists:
		return errors.Wrap(errors.ErrUnauthorized, "chain id is set at genesis only")
	}
	return errors.Wrap(kv.Set(key, []byte(chainID)), "save chain id")
}

// blockTimeKey holds the time of the last block, so queries answered after
// a restart and before the next block still see a time.
const blockTimeKey = "_hl:blockTime"

// loadBlockTime returns the stored block time. ok is false before the
// first block.
func loadBlockTime(kv heirloom.ReadOnlyKVStore) (t time.Time, ok bool, err error) {
	raw, err := kv.Get([]byte(blockTimeKey))
	if err != nil || raw == nil {
		return t, false, errors.Wrap(err, "load block time")
	}
	if len(raw) != 8 {
		return t, false, errors.Wrapf(errors.ErrState, "block time: %d bytes", len(raw))
	}
	nanos := int64(binary.BigEndian.Uint64(raw))
	return time.Unix(0, nanos).UTC(), true, nil
}

func saveBlockTime(kv heirloom.KVStore, t time.Time) error {
	raw := make([]byte, 8)
	binary.BigEndian.PutUint64(raw, uint64(t.UnixNano()))
	return errors.Wrap(kv.Set([]byte(blockTimeKey), raw), "save block time")
}
