package errors

import (
	"fmt"

	"github.com/pkg/errors"
)

// Field returns an error describing a problem with the value of a single
// field or nil if err is nil. Use Go names for the field and dot notation for
// nested values, for example Timeframe.StopBlock.
func Field(fieldName string, err error, description string, args ...interface{}) error {
	if isNilErr(err) {
		return nil
	}
	if stackTrace(err) == nil {
		err = errors.WithStack(err)
	}
	if len(args) > 0 {
		description = fmt.Sprintf(description, args...)
	}
	return &fieldError{
		parent: err,
		field:  fieldName,
		desc:   description,
	}
}

// AppendField adds the field error, if any, to the given group of errors.
// A message validation can collect all broken fields with it:
//
//	var errs error
//	errs = AppendField(errs, "Recipient", m.Recipient.Validate())
//	errs = AppendField(errs, "Timeframe", m.Timeframe.Validate())
//	return errs
func AppendField(errorsOrNil error, fieldName string, fieldErrOrNil error) error {
	return Append(errorsOrNil, Field(fieldName, fieldErrOrNil, ""))
}

type fieldError struct {
	parent error
	field  string
	desc   string
}

func (err *fieldError) Error() string {
	if err.desc == "" {
		return fmt.Sprintf("field %q: %s", err.field, err.parent)
	}
	return fmt.Sprintf("field %q: %s: %s", err.field, err.desc, err.parent)
}

func (err *fieldError) Cause() error {
	return err.parent
}

func (err *fieldError) Field() string {
	return err.field
}

// FieldErrors returns all errors created for the given field name. The search
// stops at the outermost match, so errors nested in a matching field error
// are not returned.
func FieldErrors(err error, fieldName string) []error {
	if isNilErr(err) {
		return nil
	}
	if f, ok := err.(fielder); ok && f.Field() == fieldName {
		return []error{err}
	}
	switch e := err.(type) {
	case unpacker:
		var res []error
		for _, child := range e.Unpack() {
			res = append(res, FieldErrors(child, fieldName)...)
		}
		return res
	case causer:
		return FieldErrors(e.Cause(), fieldName)
	default:
		return nil
	}
}

type fielder interface {
	Field() string
}
