package errors

import (
	"fmt"

	"github.com/pkg/errors"
)

// Codes shared by all extensions. Code 1 is reserved for errors that carry
// no code at all.
var (
	// ErrUnauthorized is returned when a required signature is missing.
	ErrUnauthorized = Register(2, "unauthorized")
	ErrNotFound     = Register(3, "not found")
	// ErrMsg is returned for a message that cannot be handled.
	ErrMsg = Register(4, "invalid message")
	// ErrModel is returned for an entity that cannot be persisted.
	ErrModel     = Register(5, "invalid model")
	ErrDuplicate = Register(6, "duplicate")
	// ErrHuman marks a code path that a correct program never reaches.
	ErrHuman     = Register(7, "coding error")
	ErrImmutable = Register(8, "cannot be modified")
	ErrEmpty     = Register(9, "value is empty")
	ErrState     = Register(10, "invalid state")
	ErrType      = Register(11, "invalid type")
	// ErrInsufficientAmount is returned when a balance cannot cover a
	// transfer.
	ErrInsufficientAmount = Register(12, "insufficient amount")
	ErrAmount             = Register(13, "invalid amount")
	ErrInput              = Register(14, "invalid input")
	ErrOverflow           = Register(15, "an operation cannot be completed due to value overflow")
	ErrDatabase           = Register(16, "database error")
	// ErrIteratorDone is returned by Next of an exhausted iterator.
	ErrIteratorDone = Register(17, "iterator done")
	// ErrPanic is the root of a recovered panic. Its details are never
	// shown to clients.
	ErrPanic = Register(111222, "panic")
)

var registered = map[uint32]*Error{
	1: nil,
}

// Register declares a new root error. It panics when the code is taken, so
// it must only be called during program initialization.
func Register(code uint32, description string) *Error {
	if prev, ok := registered[code]; ok {
		var desc string
		if prev != nil {
			desc = prev.desc
		}
		panic(fmt.Sprintf("error code %d is already registered: %q", code, desc))
	}
	e := &Error{code: code, desc: description}
	registered[code] = e
	return e
}

// Error is a root error. Every error returned at runtime wraps one of them.
type Error struct {
	code uint32
	desc string
}

func (e Error) Error() string    { return e.desc }
func (e Error) ABCICode() uint32 { return e.code }

// New is a shortcut for Wrap(e, description).
func (e *Error) New(description string) error {
	return Wrap(e, description)
}

func (e *Error) Newf(format string, args ...interface{}) error {
	return Wrap(e, fmt.Sprintf(format, args...))
}

// Is reports whether err is this root error or wraps it. A group created
// by Append matches when any of its errors does. A nil root matches only
// nil errors, including typed nil pointers.
func (e *Error) Is(err error) bool {
	if e == nil {
		return isNilErr(err)
	}
	for err != nil {
		if err == e {
			return true
		}
		switch x := err.(type) {
		case unpacker:
			for _, inner := range x.Unpack() {
				if e.Is(inner) {
					return true
				}
			}
			err = nil
		case causer:
			err = x.Cause()
		default:
			err = nil
		}
	}
	return false
}

// Wrap adds a description to err. The stack trace of the call is recorded
// unless err already carries one. Wrapping nil returns nil.
func Wrap(err error, description string) error {
	if err == nil {
		return nil
	}
	if stackTrace(err) == nil {
		err = errors.WithStack(err)
	}
	return &wrappedError{msg: description, parent: err}
}

func Wrapf(err error, format string, args ...interface{}) error {
	return Wrap(err, fmt.Sprintf(format, args...))
}

// WithType wraps err with the name of the type of obj.
func WithType(err error, obj interface{}) error {
	return Wrap(err, fmt.Sprintf("%T", obj))
}

// Recover must be deferred. It turns a panic into an ErrPanic assigned to
// err.
func Recover(err *error) {
	if r := recover(); r != nil {
		*err = Wrapf(ErrPanic, "%v", r)
	}
}

type wrappedError struct {
	msg    string
	parent error
}

func (e *wrappedError) Error() string {
	return e.msg + ": " + e.parent.Error()
}

func (e *wrappedError) Cause() error {
	return e.parent
}

type causer interface {
	Cause() error
}

// stackTrace returns the first stack trace found in the chain of err.
func stackTrace(err error) errors.StackTrace {
	type tracer interface {
		StackTrace() errors.StackTrace
	}
	for err != nil {
		if t, ok := err.(tracer); ok {
			return t.StackTrace()
		}
		c, ok := err.(causer)
		if !ok {
			return nil
		}
		err = c.Cause()
	}
	return nil
}
