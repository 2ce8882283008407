package vesting

// ReadOnlyKVStore gives read access to a key value store. Keys must not be
// nil.
type ReadOnlyKVStore interface {
	// Get returns nil when the key does not exist.
	Get(key []byte) ([]byte, error)
	Has(key []byte) (bool, error)

	// Iterator returns the keys in [start, end) in ascending order. A nil
	// start or end leaves that side of the range open. The range must not
	// be written to while the iterator is in use.
	Iterator(start, end []byte) (Iterator, error)

	// ReverseIterator is Iterator in descending order.
	ReverseIterator(start, end []byte) (Iterator, error)
}

// SetDeleter is the write access shared by stores and batches. Neither the
// key nor the value may be modified after the call.
type SetDeleter interface {
	Set(key, value []byte) error
	Delete(key []byte) error
}

// KVStore is implemented by every store.
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

// Iterator walks over a range of keys. Next returns ErrIteratorDone after
// the last key; any other error is a failure of the store:
//
//	it, err := db.Iterator(start, end)
//	...
//	defer it.Release()
//	for {
//		key, value, err := it.Next()
//		if errors.ErrIteratorDone.Is(err) {
//			break
//		} else if err != nil {
//			return err
//		}
//		...
//	}
type Iterator interface {
	Next() (key, value []byte, err error)
	Release()
}

// CacheableKVStore can stage writes in a cache on top of itself.
type CacheableKVStore interface {
	KVStore
	CacheWrap() KVCacheWrap
}

// KVCacheWrap reads through to its parent and keeps the writes until Write
// copies them to the parent or Discard drops them. A cache can be wrapped
// again.
type KVCacheWrap interface {
	CacheableKVStore
	Write() error
	Discard()
}

// CommitKVStore is the persistent root store. Writes go through a cache
// wrap and become durable on Commit.
type CommitKVStore interface {
	// Get reads the last committed state.
	Get(key []byte) ([]byte, error)
	CacheWrap() KVCacheWrap

	// Commit persists the working state as a new version.
	Commit() (CommitID, error)

	// LoadLatestVersion drops uncommitted changes and loads the last
	// version saved to disk.
	LoadLatestVersion() error
	LatestVersion() (CommitID, error)
}

// CommitID identifies a committed version by its number and merkle root.
type CommitID struct {
	Version int64
	Hash    []byte
}

// Model is a key value pair returned by an iterator.
type Model struct {
	Key   []byte
	Value []byte
}
