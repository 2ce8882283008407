package orm

import (
	"github.com/iov-one/vesting/errors"
)

var _ Object = (*SimpleObj)(nil)

// SimpleObj is the Object implementation used by every bucket in this
// repository.
type SimpleObj struct {
	key   []byte
	value CloneableData
}

func NewSimpleObj(key []byte, value CloneableData) *SimpleObj {
	return &SimpleObj{key: key, value: value}
}

func (o SimpleObj) Key() []byte {
	return o.key
}

func (o *SimpleObj) SetKey(key []byte) {
	o.key = key
}

func (o SimpleObj) Value() CloneableData {
	return o.value
}

// Validate requires both the key and the value to be set and the value to
// be valid.
func (o SimpleObj) Validate() error {
	switch {
	case len(o.key) == 0:
		return errors.Wrap(errors.ErrEmpty, "key")
	case o.value == nil:
		return errors.Wrap(errors.ErrEmpty, "value")
	}
	return o.value.Validate()
}

func (o *SimpleObj) Clone() Object {
	var key []byte
	if len(o.key) > 0 {
		key = append(key, o.key...)
	}
	return &SimpleObj{key: key, value: o.value.Copy()}
}
