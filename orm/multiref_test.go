package orm

import (
	"testing"

	"github.com/iov-one/vesting/errors"
	"github.com/iov-one/vesting/weavetest/assert"
)

func TestMultiRefSortedSet(t *testing.T) {
	m, err := NewMultiRef([]byte("c"), []byte("a"), []byte("b"))
	assert.Nil(t, err)
	assert.Equal(t, [][]byte{[]byte("a"), []byte("b"), []byte("c")}, m.GetRefs())

	assert.IsErr(t, errors.ErrDuplicate, m.Add([]byte("b")))
	assert.Nil(t, m.Remove([]byte("b")))
	assert.IsErr(t, errors.ErrNotFound, m.Remove([]byte("b")))
	assert.Equal(t, [][]byte{[]byte("a"), []byte("c")}, m.GetRefs())
}

func TestMultiRefSerialization(t *testing.T) {
	m, err := NewMultiRef([]byte{0, 0, 1}, []byte{7})
	assert.Nil(t, err)

	raw, err := m.Marshal()
	assert.Nil(t, err)

	var got MultiRef
	assert.Nil(t, got.Unmarshal(raw))
	assert.Equal(t, m.GetRefs(), got.GetRefs())

	var empty MultiRef
	assert.IsErr(t, errors.ErrEmpty, empty.Validate())
}
