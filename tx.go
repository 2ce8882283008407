package vesting

import (
	"reflect"

	"github.com/iov-one/vesting/errors"
)

// Persistent is implemented by every value written to the store or sent
// over the wire. Unmarshal almost always needs a pointer receiver.
type Persistent interface {
	Marshal() ([]byte, error)
	Unmarshal([]byte) error
}

// Msg is a request for a state transition. It carries no authentication,
// signatures belong to the Tx that wraps it.
type Msg interface {
	Persistent

	// Path is used by the router to find the handler of the message. It
	// must match [0-9A-Za-z_\-/]+, see Registry.
	Path() string

	// Validate checks the message content without accessing the store.
	Validate() error
}

// Tx is a transaction as submitted by a client.
type Tx interface {
	Persistent
	GetMsg() (Msg, error)
}

// GetPath returns the path of the transaction message, or "(missing)" when
// the message cannot be read.
func GetPath(tx Tx) string {
	if msg, err := tx.GetMsg(); err == nil && msg != nil {
		return msg.Path()
	}
	return "(missing)"
}

// LoadMsg copies the transaction message into dest and validates it. dest
// must be a non nil pointer to a value of the message type.
func LoadMsg(tx Tx, dest interface{}) error {
	msg, err := tx.GetMsg()
	switch {
	case err != nil:
		return errors.Wrap(err, "get message")
	case msg == nil:
		return errors.Wrap(errors.ErrState, "nil message")
	}

	ptr := reflect.ValueOf(dest)
	if ptr.Kind() != reflect.Ptr || ptr.IsNil() {
		return errors.Wrapf(errors.ErrType, "want non nil pointer, got %T", dest)
	}
	target := ptr.Elem()
	if !target.CanSet() {
		return errors.Wrap(errors.ErrType, "destination is not addressable")
	}
	src := reflect.Indirect(reflect.ValueOf(msg))
	if src.Type() != target.Type() {
		return errors.Wrapf(errors.ErrType, "cannot load %T into %T", msg, dest)
	}
	target.Set(src)

	return errors.Wrap(msg.Validate(), "validate")
}
