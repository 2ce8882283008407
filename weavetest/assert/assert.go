// Package assert provides the few assertions used by the tests of this
// module. Every helper stops the test on the first failure.
package assert

import (
	"reflect"
	"testing"

	"github.com/iov-one/vesting/errors"
)

// Tester is the part of testing.TB the assertions need.
type Tester interface {
	Helper()
	Fatal(...interface{})
	Fatalf(string, ...interface{})
}

// Nil fails the test if given value is not nil. A typed nil pointer, map,
// slice or interface is nil as well.
func Nil(t Tester, value interface{}) {
	t.Helper()
	if !isNil(value) {
		// %+v prints the stack trace of errors carrying one.
		t.Fatalf("want a nil value, got %+v", value)
	}
}

func isNil(value interface{}) bool {
	if value == nil {
		return true
	}
	switch v := reflect.ValueOf(value); v.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Ptr, reflect.Slice:
		return v.IsNil()
	default:
		return false
	}
}

// Equal fails the test if two values are not deeply equal.
func Equal(t Tester, want, got interface{}) {
	t.Helper()
	if !reflect.DeepEqual(want, got) {
		t.Fatalf("values not equal \nwant %T %v\n got %T %v", want, want, got, got)
	}
}

// Panics fails the test unless calling fn panics.
func Panics(t Tester, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Fatal("panic expected")
		}
	}()
	fn()
}

// FieldError fails the test unless err holds exactly one error for the given
// field and that error is of the wanted kind. Use nil as want to ensure that
// there is no error for the field.
func FieldError(t testing.TB, err error, fieldName string, want *errors.Error) {
	t.Helper()

	errs := errors.FieldErrors(err, fieldName)
	for i, e := range errs {
		t.Logf("\t%s error %d: %q", fieldName, i+1, e)
	}
	switch {
	case want == nil && len(errs) != 0:
		t.Fatalf("want no %s error, got %d", fieldName, len(errs))
	case want == nil:
		return
	case len(errs) == 0:
		t.Fatalf("no %s error found", fieldName)
	case len(errs) > 1:
		t.Fatalf("want one %s error, got %d", fieldName, len(errs))
	case !want.Is(errs[0]):
		t.Fatalf("want %s error to be %q, got %q", fieldName, want, errs[0])
	}
}

// IsErr fails the test unless got is of the same kind as want. Errors that
// provide an Is method, like the ones registered in the errors package, match
// wrapped instances as well.
func IsErr(t testing.TB, want, got error) {
	t.Helper()

	if want == got {
		return
	}
	if w, ok := want.(interface{ Is(error) bool }); ok && w.Is(got) {
		return
	}
	t.Fatalf("want %q, got %+v", want, got)
}
