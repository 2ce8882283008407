package utils

import (
	weave "github.com/iov-one/vesting"
	"github.com/iov-one/vesting/errors"
)

// Savepoint runs the wrapped handler on a cache of the store and writes
// the cache only when the handler succeeds. It is disabled until
// OnCheck or OnDeliver is called.
type Savepoint struct {
	onCheck   bool
	onDeliver bool
}

var _ weave.Decorator = Savepoint{}

func NewSavepoint() Savepoint {
	return Savepoint{}
}

// OnCheck returns a copy of s that is active during CheckTx.
func (s Savepoint) OnCheck() Savepoint {
	s.onCheck = true
	return s
}

// OnDeliver returns a copy of s that is active during DeliverTx.
func (s Savepoint) OnDeliver() Savepoint {
	s.onDeliver = true
	return s
}

func (s Savepoint) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx, next weave.Checker) (*weave.CheckResult, error) {
	if !s.onCheck || !cacheable(db) {
		return next.Check(ctx, db, tx)
	}
	var res *weave.CheckResult
	err := Atomic(db, func(cache weave.KVStore) (err error) {
		res, err = next.Check(ctx, cache, tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s Savepoint) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx, next weave.Deliverer) (*weave.DeliverResult, error) {
	if !s.onDeliver || !cacheable(db) {
		return next.Deliver(ctx, db, tx)
	}
	var res *weave.DeliverResult
	err := Atomic(db, func(cache weave.KVStore) (err error) {
		res, err = next.Deliver(ctx, cache, tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func cacheable(db weave.KVStore) bool {
	_, ok := db.(weave.CacheableKVStore)
	return ok
}

// Atomic runs fn on a cache of db. The writes of fn reach db only when fn
// returns no error. db must be a weave.CacheableKVStore.
func Atomic(db weave.KVStore, fn func(weave.KVStore) error) error {
	cdb, ok := db.(weave.CacheableKVStore)
	if !ok {
		return errors.Wrapf(errors.ErrDatabase, "%T cannot be cache wrapped", db)
	}
	cache := cdb.CacheWrap()
	if err := fn(cache); err != nil {
		cache.Discard()
		return err
	}
	return errors.Wrap(cache.Write(), "write savepoint")
}
