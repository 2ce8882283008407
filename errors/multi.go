package errors

import (
	"fmt"
	"strings"
)

// Append clubs together all provided errors. Nil values are silently ignored.
//
// If no errors are provided or all are nil, nil is returned. When only one
// non-nil error is present, it is returned as it is.
func Append(errs ...error) error {
	var flat multiErr
	for _, e := range errs {
		if isNilErr(e) {
			continue
		}
		// Flatten nested groups so that the order is preserved and a
		// single level is kept.
		if m, ok := e.(multiErr); ok {
			flat = append(flat, m...)
			continue
		}
		flat = append(flat, e)
	}

	switch len(flat) {
	case 0:
		return nil
	case 1:
		return flat[0]
	default:
		return flat
	}
}

// multiErr is a default implementation of a grouped error.
type multiErr []error

var _ coder = multiErr(nil)
var _ unpacker = multiErr(nil)

func (me multiErr) Error() string {
	if len(me) == 1 {
		return me[0].Error()
	}
	points := make([]string, len(me))
	for i, err := range me {
		points[i] = fmt.Sprintf("* %s", err)
	}
	return fmt.Sprintf("%d errors occurred:\n\t%s", len(me), strings.Join(points, "\n\t"))
}

// ABCICode returns the error code of a first error consistent with fail-fast
// approach.
func (me multiErr) ABCICode() uint32 {
	if len(me) == 0 {
		return SuccessABCICode
	}
	return abciCode(me[0])
}

// Unpack returns all grouped errors.
func (me multiErr) Unpack() []error {
	return []error(me)
}

// unpacker is implemented by errors that group several other errors.
type unpacker interface {
	Unpack() []error
}
