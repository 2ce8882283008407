package iavl

import (
	"github.com/iov-one/vesting/store"
)

// ranger is the subset of the iavl tree used for range reads.
type ranger interface {
	IterateRange(start, end []byte, ascending bool, fn func(key []byte, value []byte) bool) (stopped bool)
}

// collectRange reads all pairs in [start, end) into memory. The returned
// iterator does not hold any reference to the tree, so the tree may be
// modified while iterating.
func collectRange(tree ranger, start, end []byte, ascending bool) *store.SliceIterator {
	var res []store.Model
	tree.IterateRange(start, end, ascending, func(key []byte, value []byte) bool {
		res = append(res, store.Pair(key, value))
		return false
	})
	return store.NewSliceIterator(res)
}
