package store

import (
	"bytes"

	"github.com/google/btree"
	"github.com/iov-one/vesting/errors"
)

///////////////////////////////////////////////////////
// From Items to Iterator

// collectBtree copies all items of the [start, end) range into a slice, in
// the requested order. The copy is taken synchronously, so the tree can be
// modified as soon as this function returns.
func collectBtree(bt *btree.BTree, start, end []byte, descending bool) []entry {
	var items []entry
	insert := func(item btree.Item) bool {
		items = append(items, item.(entry))
		return true
	}

	switch {
	case start == nil && end == nil:
		bt.Ascend(insert)
	case start == nil:
		bt.AscendLessThan(entry{key: end}, insert)
	case end == nil:
		bt.AscendGreaterOrEqual(entry{key: start}, insert)
	default:
		bt.AscendRange(entry{key: start}, entry{key: end}, insert)
	}

	if descending {
		for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
			items[i], items[j] = items[j], items[i]
		}
	}
	return items
}

// itemIter combines the cached btree items with the iterator of the parent
// store, taking into consideration overwrites and deletes.
type itemIter struct {
	items []entry
	idx   int

	// if we are iterating in a cache-wrap (and who isn't),
	// we need to combine this iterator with the parent
	parent     Iterator
	parentKey  []byte
	parentVal  []byte
	parentDone bool

	descending bool
}

var _ Iterator = (*itemIter)(nil)

func newItemIter(items []entry, parent Iterator, descending bool) (*itemIter, error) {
	iter := &itemIter{
		items:      items,
		parent:     parent,
		descending: descending,
	}
	if err := iter.advanceParent(); err != nil {
		parent.Release()
		return nil, err
	}
	return iter, nil
}

// Next returns the next combined entry, skipping all keys deleted in the
// cache.
func (i *itemIter) Next() (key, value []byte, err error) {
	for {
		hasOwn := i.idx < len(i.items)
		if !hasOwn && i.parentDone {
			return nil, nil, errors.Wrap(errors.ErrIteratorDone, "cache iterator")
		}

		if !hasOwn {
			key, value = i.parentKey, i.parentVal
			return key, value, i.advanceParent()
		}

		item := i.items[i.idx]
		if !i.parentDone {
			cmp := bytes.Compare(item.key, i.parentKey)
			if i.descending {
				cmp = -cmp
			}
			if cmp > 0 {
				key, value = i.parentKey, i.parentVal
				return key, value, i.advanceParent()
			}
			if cmp == 0 {
				// Cached value shadows the parent one.
				if err := i.advanceParent(); err != nil {
					return nil, nil, err
				}
			}
		}

		i.idx++
		if item.deleted {
			continue
		}
		return item.key, item.value, nil
	}
}

func (i *itemIter) advanceParent() error {
	if i.parentDone {
		return nil
	}
	key, value, err := i.parent.Next()
	if err != nil {
		if errors.ErrIteratorDone.Is(err) {
			i.parentDone = true
			i.parentKey, i.parentVal = nil, nil
			return nil
		}
		return err
	}
	i.parentKey, i.parentVal = key, value
	return nil
}

// Release releases the Iterator.
func (i *itemIter) Release() {
	i.parent.Release()
	i.items = nil
}
