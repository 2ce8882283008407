package orm

import (
	"encoding/binary"

	weave "github.com/iov-one/vesting"
	"github.com/iov-one/vesting/errors"
)

// Sequence maintains a counter, and generates a
// series of keys. Each key is greater than the last,
// both as an integer as well as bytes.Compare() on the encoded value.
type Sequence struct {
	id []byte
}

// NewSequence returns the counter stored under the key
//
//	_s.<bucket>:<name>
func NewSequence(bucket, name string) Sequence {
	id := "_s." + bucket + ":" + name
	return Sequence{
		id: []byte(id),
	}
}

// Next returns the current value of the sequence and increments the stored
// state. The first value returned by a new sequence is zero.
func (s Sequence) Next(db weave.KVStore) (uint64, []byte, error) {
	val, err := s.Current(db)
	if err != nil {
		return 0, nil, err
	}
	if val == ^uint64(0) {
		return 0, nil, errors.Wrap(errors.ErrOverflow, "sequence exhausted")
	}
	if err := db.Set(s.id, EncodeSequence(val+1)); err != nil {
		return 0, nil, errors.Wrap(err, "save sequence")
	}
	return val, EncodeSequence(val), nil
}

// Current returns the value that will be returned by the next call to Next.
// This method does not modify the sequence state.
func (s Sequence) Current(db weave.ReadOnlyKVStore) (uint64, error) {
	raw, err := db.Get(s.id)
	if err != nil {
		return 0, errors.Wrap(err, "load sequence")
	}
	return DecodeSequence(raw)
}

// DecodeSequence reads a value written by EncodeSequence. Missing value is
// decoded as zero.
func DecodeSequence(bz []byte) (uint64, error) {
	if bz == nil {
		return 0, nil
	}
	if len(bz) != 8 {
		return 0, errors.Wrapf(errors.ErrInput, "sequence value must be 8 bytes, got %d", len(bz))
	}
	return binary.BigEndian.Uint64(bz), nil
}

// EncodeSequence returns the 8 bytes big endian representation of the value.
func EncodeSequence(val uint64) []byte {
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, val)
	return bz
}
