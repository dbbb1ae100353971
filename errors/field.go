package errors

import (
	"fmt"

	"github.com/pkg/errors"
)

// Field ties err to the attribute of a model or message it was found in.
// It returns nil for a nil err.
//
// Name the field the way the Go attribute is named, for example Threshold.
// Nested attributes use dot notation, for example Balances.0.Amount.
func Field(name string, err error, description string, args ...interface{}) error {
	if isNilErr(err) {
		return nil
	}
	if stackTrace(err) == nil {
		err = errors.WithStack(err)
	}
	if len(args) > 0 {
		description = fmt.Sprintf(description, args...)
	}
	return &fieldError{name: name, desc: description, err: err}
}

// AppendField adds a field error to errs. A nil fieldErr leaves errs as is,
// so validation can append every check result unconditionally.
func AppendField(errs error, name string, fieldErr error) error {
	return Append(errs, Field(name, fieldErr, ""))
}

type fieldError struct {
	name string
	desc string
	err  error
}

func (e *fieldError) Error() string {
	if e.desc == "" {
		return fmt.Sprintf("field %q: %s", e.name, e.err)
	}
	return fmt.Sprintf("field %q: %s: %s", e.name, e.desc, e.err)
}

func (e *fieldError) Cause() error {
	return e.err
}

// FieldErrors returns every error in the err tree that was created for
// the named field. A matching field error is returned whole, errors it
// wraps are not searched.
func FieldErrors(err error, name string) []error {
	var found []error
	visit(err, func(e error) bool {
		if f, ok := e.(*fieldError); ok && f.name == name {
			found = append(found, e)
			return false
		}
		return true
	})
	return found
}

// visit calls fn for err and every error it wraps or groups, depth first.
// When fn returns false the errors below are skipped.
func visit(err error, fn func(error) bool) {
	for !isNilErr(err) {
		if !fn(err) {
			return
		}
		switch e := err.(type) {
		case unpacker:
			for _, inner := range e.Unpack() {
				visit(inner, fn)
			}
			return
		case causer:
			err = e.Cause()
		default:
			return
		}
	}
}
