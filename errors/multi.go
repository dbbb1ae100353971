package errors

import (
	"fmt"
	"strings"
)

// Append clubs together all provided errors. Nil values are ignored.
//
// If no non-nil error is provided, nil is returned.
// If only one non-nil error is provided, that error is returned.
// Any multi error given is flattened into the result.
func Append(errs ...error) error {
	var res multiErr
	for _, e := range errs {
		if isNilErr(e) {
			continue
		}
		if m, ok := e.(multiErr); ok {
			res = append(res, m...)
			continue
		}
		res = append(res, e)
	}

	switch len(res) {
	case 0:
		return nil
	case 1:
		return res[0]
	default:
		return res
	}
}

// multiErr represents a group of errors. It is always created with at least
// two non-nil members.
type multiErr []error

func (m multiErr) Error() string {
	points := make([]string, len(m))
	for i, err := range m {
		points[i] = fmt.Sprintf("* %s", err)
	}
	return fmt.Sprintf("%d errors occurred:\n\t%s\n", len(m), strings.Join(points, "\n\t"))
}

// Unpack returns all errors grouped in this instance.
func (m multiErr) Unpack() []error {
	return m
}

// ABCICode returns the code of the first error, consistent with the fail fast
// behaviour of validation.
func (m multiErr) ABCICode() uint32 {
	return abciCode(m[0])
}

type unpacker interface {
	Unpack() []error
}
