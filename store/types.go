package store

import weave "github.com/iov-one/vesting"

// Aliases of the root package store types, so that code working with
// stores needs a single import.
type (
	ReadOnlyKVStore  = weave.ReadOnlyKVStore
	SetDeleter       = weave.SetDeleter
	KVStore          = weave.KVStore
	Batch            = weave.Batch
	Iterator         = weave.Iterator
	CacheableKVStore = weave.CacheableKVStore
	KVCacheWrap      = weave.KVCacheWrap
	CommitKVStore    = weave.CommitKVStore
	CommitID         = weave.CommitID
	Model            = weave.Model
)

func Pair(key, value []byte) Model {
	return Model{Key: key, Value: value}
}
