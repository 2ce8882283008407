package orm

import (
	"bytes"

	weave "github.com/iov-one/vesting"
	"github.com/iov-one/vesting/errors"
)

// Indexer returns the secondary key of an object. A nil key leaves the
// object out of the index.
type Indexer func(Object) ([]byte, error)

// Index maps a secondary key to the primary keys of the objects that
// produce it. A unique index stores a single primary key, otherwise all of
// them are kept in one MultiRef, so an index entry must stay small.
type Index struct {
	name   string
	prefix []byte
	unique bool
	index  Indexer
}

func NewIndex(name string, indexer Indexer, unique bool) Index {
	return Index{
		name:   name,
		prefix: []byte("_i." + name + ":"),
		index:  indexer,
		unique: unique,
	}
}

// IndexKey returns the database key of the secondary key. The result never
// shares memory with key.
func (i Index) IndexKey(key []byte) []byte {
	out := make([]byte, 0, len(i.prefix)+len(key))
	out = append(out, i.prefix...)
	return append(out, key...)
}

// Update moves the primary key of an object between secondary keys. A nil
// prev inserts save, a nil save removes prev. The primary key of an object
// can never change.
func (i Index) Update(db weave.KVStore, prev, save Object) error {
	switch {
	case prev == nil && save == nil:
		return errors.Wrap(errors.ErrHuman, "nothing to index")
	case prev == nil:
		key, err := i.index(save)
		if err != nil || key == nil {
			return err
		}
		return i.insert(db, key, save.Key())
	case save == nil:
		key, err := i.index(prev)
		if err != nil || key == nil {
			return err
		}
		return i.remove(db, key, prev.Key())
	default:
		return i.move(db, prev, save)
	}
}

// GetAt returns a list of all pk at that index (may be nil), or an error
func (i Index) GetAt(db weave.ReadOnlyKVStore, index []byte) ([][]byte, error) {
	val, err := db.Get(i.IndexKey(index))
	if err != nil {
		return nil, errors.Wrap(err, "load index")
	}
	if val == nil {
		return nil, nil
	}
	if i.unique {
		return [][]byte{val}, nil
	}
	var data MultiRef
	if err := data.Unmarshal(val); err != nil {
		return nil, errors.Wrap(err, "unmarshal index value")
	}
	return data.GetRefs(), nil
}

func (i Index) move(db weave.KVStore, prev Object, save Object) error {
	if !bytes.Equal(prev.Key(), save.Key()) {
		return errors.Wrap(errors.ErrImmutable, "cannot modify the primary key of an object")
	}
	oldKey, err := i.index(prev)
	if err != nil {
		return err
	}
	newKey, err := i.index(save)
	if err != nil {
		return err
	}
	if bytes.Equal(oldKey, newKey) {
		return nil
	}
	if oldKey != nil {
		if err := i.remove(db, oldKey, prev.Key()); err != nil {
			return err
		}
	}
	if newKey == nil {
		return nil
	}
	return i.insert(db, newKey, save.Key())
}

func (i Index) insert(db weave.KVStore, key []byte, pk []byte) error {
	dbkey := i.IndexKey(key)
	cur, err := db.Get(dbkey)
	if err != nil {
		return err
	}

	if i.unique {
		if cur != nil {
			return errors.Wrapf(ErrUniqueConstraint, "index %s", i.name)
		}
		return db.Set(dbkey, pk)
	}

	var data MultiRef
	if cur != nil {
		if err := data.Unmarshal(cur); err != nil {
			return errors.Wrap(err, "unmarshal index value")
		}
	}
	if err := data.Add(pk); err != nil {
		return err
	}
	raw, err := data.Marshal()
	if err != nil {
		return errors.Wrap(err, "marshal index value")
	}
	return db.Set(dbkey, raw)
}

func (i Index) remove(db weave.KVStore, key []byte, pk []byte) error {
	dbkey := i.IndexKey(key)
	cur, err := db.Get(dbkey)
	if err != nil {
		return err
	}
	if cur == nil {
		return errors.Wrap(errors.ErrNotFound, "cannot remove index ref")
	}

	if i.unique {
		if !bytes.Equal(cur, pk) {
			return errors.Wrap(errors.ErrState, "index points to a different object")
		}
		return db.Delete(dbkey)
	}

	var data MultiRef
	if err := data.Unmarshal(cur); err != nil {
		return errors.Wrap(err, "unmarshal index value")
	}
	if err := data.Remove(pk); err != nil {
		return err
	}
	if len(data.Refs) == 0 {
		return db.Delete(dbkey)
	}
	raw, err := data.Marshal()
	if err != nil {
		return errors.Wrap(err, "marshal index value")
	}
	return db.Set(dbkey, raw)
}
