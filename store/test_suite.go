package store

import (
	"bytes"
	"fmt"
	"math/rand"
	"sort"
	"testing"

	"github.com/iov-one/vesting/errors"
	"github.com/iov-one/vesting/weavetest/assert"
)

// TestSuite runs the same checks against any CacheableKVStore
// implementation. Every check starts from a fresh store returned by the
// constructor, so the in memory btree and the iavl adapter are held to the
// same behaviour.
type TestSuite struct {
	makeBase TestStoreConstructor
}

// TestStoreConstructor returns an empty store and a function releasing it.
type TestStoreConstructor func() (base CacheableKVStore, cleanup func())

func NewTestSuite(constructor TestStoreConstructor) *TestSuite {
	return &TestSuite{makeBase: constructor}
}

// GetSet checks that a write is visible only in the layer it was made in
// until that cache is written.
func (s *TestSuite) GetSet(t *testing.T) {
	base, cleanup := s.makeBase()
	defer cleanup()

	var (
		stream  = []byte("stream:0")
		wallet  = []byte("wallet:sender")
		custody = []byte("wallet:custody")
	)

	s.AssertGetHas(t, base, stream, nil, false)
	assert.Nil(t, base.Set(stream, []byte("created")))
	s.AssertGetHas(t, base, stream, []byte("created"), true)

	cache := base.CacheWrap()
	s.AssertGetHas(t, cache, stream, []byte("created"), true)
	assert.Nil(t, cache.Set(wallet, []byte("90")))
	s.AssertGetHas(t, cache, wallet, []byte("90"), true)
	s.AssertGetHas(t, base, wallet, nil, false)
	assert.Nil(t, cache.Write())
	s.AssertGetHas(t, base, wallet, []byte("90"), true)

	discarded := base.CacheWrap()
	assert.Nil(t, discarded.Set(custody, []byte("10")))
	s.AssertGetHas(t, discarded, custody, []byte("10"), true)
	discarded.Discard()
	s.AssertGetHas(t, base, custody, nil, false)

	removal := base.CacheWrap()
	assert.Nil(t, removal.Delete(stream))
	s.AssertGetHas(t, removal, stream, nil, false)
	s.AssertGetHas(t, removal, wallet, []byte("90"), true)
	s.AssertGetHas(t, base, stream, []byte("created"), true)
	assert.Nil(t, removal.Write())
	s.AssertGetHas(t, base, stream, nil, false)
	s.AssertGetHas(t, base, wallet, []byte("90"), true)
}

// CacheConflicts checks a cache that overwrites and deletes values of the
// layer below it.
func (s *TestSuite) CacheConflicts(t *testing.T) {
	cases := map[string]struct {
		parentOps []Op
		childOps  []Op
		// Nil value means the key must not exist.
		wantParent []Model
		wantChild  []Model
	}{
		"overwrite one, delete another, add a third": {
			parentOps:  []Op{SetOp(testKey(1), testValue(1)), SetOp(testKey(2), testValue(2))},
			childOps:   []Op{SetOp(testKey(1), testValue(11)), SetOp(testKey(3), testValue(7)), DelOp(testKey(2))},
			wantParent: []Model{Pair(testKey(1), testValue(1)), Pair(testKey(2), testValue(2)), Pair(testKey(3), nil)},
			wantChild:  []Model{Pair(testKey(1), testValue(11)), Pair(testKey(2), nil), Pair(testKey(3), testValue(7))},
		},
		"delete and set again": {
			parentOps:  []Op{SetOp(testKey(1), testValue(1))},
			childOps:   []Op{DelOp(testKey(1)), SetOp(testKey(1), testValue(2))},
			wantParent: []Model{Pair(testKey(1), testValue(1))},
			wantChild:  []Model{Pair(testKey(1), testValue(2))},
		},
		"set and delete in the same cache": {
			childOps:   []Op{SetOp(testKey(4), testValue(4)), DelOp(testKey(4))},
			wantParent: []Model{Pair(testKey(4), nil)},
			wantChild:  []Model{Pair(testKey(4), nil)},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			parent, cleanup := s.makeBase()
			defer cleanup()

			for _, op := range tc.parentOps {
				assert.Nil(t, op.Apply(parent))
			}
			child := parent.CacheWrap()
			for _, op := range tc.childOps {
				assert.Nil(t, op.Apply(child))
			}

			for _, m := range tc.wantParent {
				s.AssertGetHas(t, parent, m.Key, m.Value, m.Value != nil)
			}
			for _, m := range tc.wantChild {
				s.AssertGetHas(t, child, m.Key, m.Value, m.Value != nil)
			}

			assert.Nil(t, child.Write())
			for _, m := range tc.wantChild {
				s.AssertGetHas(t, parent, m.Key, m.Value, m.Value != nil)
			}
		})
	}
}

// FuzzIterator iterates over a cache holding a pseudo random set of
// writes, alone and on top of a populated parent.
func (s *TestSuite) FuzzIterator(t *testing.T) {
	r := rand.New(rand.NewSource(1300))
	perm := r.Perm(1000)
	gen := func(ids []int) []Model {
		res := make([]Model, len(ids))
		for i, id := range ids {
			val := make([]byte, 24)
			r.Read(val)
			res[i] = Pair(testKey(id), val)
		}
		return res
	}

	parentSet := gen(perm[:50])
	childSet := gen(perm[50:100])
	absent := gen(perm[100:120])
	// The child removes the first ten parent values.
	removed, kept := parentSet[:10], parentSet[10:]

	cases := map[string]iterCase{
		"child on top of an empty parent": {
			child:   append(setOps(childSet...), delOps(absent...)...),
			queries: rangeQueries(sortModels(childSet)),
		},
		"child on top of a populated parent": {
			parent:  setOps(parentSet...),
			child:   append(setOps(childSet...), delOps(append(absent, removed...)...)...),
			queries: rangeQueries(sortModels(append(append([]Model{}, kept...), childSet...))),
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			base, cleanup := s.makeBase()
			defer cleanup()
			tc.run(t, base)
		})
	}
}

// IteratorWithConflicts covers iteration over keys present in both layers.
func (s *TestSuite) IteratorWithConflicts(t *testing.T) {
	var (
		a  = Pair([]byte("stream:a"), []byte("1"))
		a2 = Pair([]byte("stream:a"), []byte("2"))
		b  = Pair([]byte("stream:b"), []byte("3"))
		b2 = Pair([]byte("stream:b"), []byte("4"))
		c  = Pair([]byte("stream:c"), []byte("5"))
		d  = Pair([]byte("stream:d"), []byte("6"))
	)
	abc := []Model{a, b, c}
	overwritten := []Model{a2, b2, c, d}

	cases := map[string]iterCase{
		"child only": {
			child: setOps(a, b, c),
			queries: []rangeQuery{
				{nil, nil, false, abc},
				{b.Key, c.Key, false, abc[1:2]},
				{nil, nil, true, reverse(abc)},
			},
		},
		"parent only": {
			parent: setOps(a, b, c),
			queries: []rangeQuery{
				{nil, nil, false, abc},
				{b.Key, c.Key, false, abc[1:2]},
				{nil, nil, true, reverse(abc)},
			},
		},
		"values split between layers": {
			parent: setOps(a, b),
			child:  setOps(c),
			queries: []rangeQuery{
				{nil, nil, false, abc},
				{b.Key, c.Key, false, abc[1:2]},
				{nil, nil, true, reverse(abc)},
			},
		},
		"child values hide parent values": {
			parent: setOps(a, b, c),
			child:  setOps(a2, b2, d),
			queries: []rangeQuery{
				{nil, nil, false, overwritten},
				{b.Key, d.Key, false, overwritten[1:3]},
				{nil, nil, true, reverse(overwritten)},
			},
		},
		"child deletes hide parent values": {
			parent: setOps(a, c, d),
			child:  delOps(a, b, d),
			queries: []rangeQuery{
				{nil, nil, false, []Model{c}},
				{nil, c.Key, false, nil},
				{nil, nil, true, []Model{c}},
			},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			base, cleanup := s.makeBase()
			defer cleanup()
			tc.run(t, base)
		})
	}
}

// AssertGetHas fails the test unless both Get and Has report the expected
// state of the key.
func (s *TestSuite) AssertGetHas(t testing.TB, kv ReadOnlyKVStore, key, val []byte, has bool) {
	t.Helper()
	got, err := kv.Get(key)
	assert.Nil(t, err)
	assert.Equal(t, val, got)
	exists, err := kv.Has(key)
	assert.Nil(t, err)
	assert.Equal(t, has, exists)
}

func testKey(n int) []byte {
	return []byte(fmt.Sprintf("key:%04d", n))
}

func testValue(n int) []byte {
	return []byte(fmt.Sprintf("value:%d", n))
}

// iterCase applies operations to a parent store and to a cache on top of
// it, then runs all queries against the cache.
type iterCase struct {
	parent  []Op
	child   []Op
	queries []rangeQuery
}

type rangeQuery struct {
	start   []byte
	end     []byte
	reverse bool
	want    []Model
}

func (tc iterCase) run(t testing.TB, base CacheableKVStore) {
	t.Helper()
	for _, op := range tc.parent {
		assert.Nil(t, op.Apply(base))
	}
	child := base.CacheWrap()
	for _, op := range tc.child {
		assert.Nil(t, op.Apply(child))
	}

	for _, q := range tc.queries {
		var (
			it  Iterator
			err error
		)
		if q.reverse {
			it, err = child.ReverseIterator(q.start, q.end)
		} else {
			it, err = child.Iterator(q.start, q.end)
		}
		assert.Nil(t, err)

		for i, want := range q.want {
			k, v, err := it.Next()
			assert.Nil(t, err)
			if !bytes.Equal(want.Key, k) {
				t.Fatalf("want key %d to be %q, got %q", i, want.Key, k)
			}
			assert.Equal(t, want.Value, v)
		}
		if _, _, err := it.Next(); !errors.ErrIteratorDone.Is(err) {
			t.Fatalf("want iterator to be done, got %+v", err)
		}
		it.Release()
	}
}

// rangeQueries returns queries over the whole set and over sub ranges of
// it, in both directions. Models must be sorted by key.
func rangeQueries(sorted []Model) []rangeQuery {
	lo, hi := len(sorted)/5, len(sorted)*3/5
	return []rangeQuery{
		{nil, nil, false, sorted},
		{sorted[lo].Key, nil, false, sorted[lo:]},
		{nil, sorted[hi].Key, false, sorted[:hi]},
		{sorted[lo].Key, sorted[hi].Key, false, sorted[lo:hi]},
		{nil, nil, true, reverse(sorted)},
		{sorted[lo].Key, nil, true, reverse(sorted[lo:])},
		{nil, sorted[hi].Key, true, reverse(sorted[:hi])},
		{sorted[lo].Key, sorted[hi].Key, true, reverse(sorted[lo:hi])},
	}
}

func reverse(models []Model) []Model {
	res := make([]Model, len(models))
	for i, m := range models {
		res[len(models)-1-i] = m
	}
	return res
}

func sortModels(models []Model) []Model {
	res := append([]Model(nil), models...)
	sort.Slice(res, func(i, j int) bool {
		return bytes.Compare(res[i].Key, res[j].Key) < 0
	})
	return res
}

func setOps(ms ...Model) []Op {
	ops := make([]Op, len(ms))
	for i, m := range ms {
		ops[i] = SetOp(m.Key, m.Value)
	}
	return ops
}

func delOps(ms ...Model) []Op {
	ops := make([]Op, len(ms))
	for i, m := range ms {
		ops[i] = DelOp(m.Key)
	}
	return ops
}
