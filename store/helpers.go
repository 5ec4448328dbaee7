package store

// EmptyKVStore holds nothing and ignores writes. It is the bottom layer of
// MemStore, where the caches above it keep all the data.
type EmptyKVStore struct{}

var _ KVStore = EmptyKVStore{}

func (EmptyKVStore) Get(key []byte) ([]byte, error) {
	return nil, nil
}

func (EmptyKVStore) Has(key []byte) (bool, error) {
	return false, nil
}

func (EmptyKVStore) Set(key, value []byte) error {
	return nil
}

func (EmptyKVStore) Delete(key []byte) error {
	return nil
}

func (e EmptyKVStore) NewBatch() Batch {
	return NewNonAtomicBatch(e)
}

// NonAtomicBatch replays the recorded writes one by one on Write. A failure
// halfway leaves the writes before it applied, so it must only back
// in-memory stores.
type NonAtomicBatch struct {
	out SetDeleter
	ops []op
}

var _ Batch = (*NonAtomicBatch)(nil)

// op is a set, or a delete when value is nil.
type op struct {
	key   []byte
	value []byte
}

func (o op) apply(out SetDeleter) error {
	if o.value == nil {
		return out.Delete(o.key)
	}
	return out.Set(o.key, o.value)
}

func NewNonAtomicBatch(out SetDeleter) *NonAtomicBatch {
	return &NonAtomicBatch{out: out}
}

// Set records a write. A nil value is stored as an empty one.
func (b *NonAtomicBatch) Set(key, value []byte) error {
	if value == nil {
		value = []byte{}
	}
	b.ops = append(b.ops, op{key: key, value: value})
	return nil
}

func (b *NonAtomicBatch) Delete(key []byte) error {
	b.ops = append(b.ops, op{key: key})
	return nil
}

// Write applies the recorded operations in order and empties the batch.
func (b *NonAtomicBatch) Write() error {
	for _, o := range b.ops {
		if err := o.apply(b.out); err != nil {
			return err
		}
	}
	b.Reset()
	return nil
}

// Reset drops the recorded operations.
func (b *NonAtomicBatch) Reset() {
	b.ops = nil
}

// Len is the number of recorded operations.
func (b *NonAtomicBatch) Len() int {
	return len(b.ops)
}
