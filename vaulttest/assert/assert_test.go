package assert

import (
	"fmt"
	"testing"

	"github.com/iov-one/vault/errors"
)

// recorder collects failures instead of stopping the test.
type recorder struct {
	failed bool
}

func (r *recorder) Helper()                       {}
func (r *recorder) Fatal(...interface{})          { r.failed = true }
func (r *recorder) Fatalf(string, ...interface{}) { r.failed = true }
func (r *recorder) Logf(string, ...interface{})   {}

func TestHelpers(t *testing.T) {
	var nilErr *errors.Error
	cases := map[string]struct {
		fn   func(Tester)
		fail bool
	}{
		"nil":                {fn: func(r Tester) { Nil(r, nil) }},
		"typed nil":          {fn: func(r Tester) { Nil(r, nilErr) }},
		"not nil":            {fn: func(r Tester) { Nil(r, 1) }, fail: true},
		"not nil ok":         {fn: func(r Tester) { NotNil(r, fmt.Errorf("x")) }},
		"equal":              {fn: func(r Tester) { Equal(r, []byte("a"), []byte("a")) }},
		"not equal":          {fn: func(r Tester) { Equal(r, 1, uint64(1)) }, fail: true},
		"panics":             {fn: func(r Tester) { Panics(r, func() { panic(1) }) }},
		"no panic":           {fn: func(r Tester) { Panics(r, func() {}) }, fail: true},
		"is err":             {fn: func(r Tester) { IsErr(r, errors.ErrNotFound, errors.Wrap(errors.ErrNotFound, "x")) }},
		"is other err":       {fn: func(r Tester) { IsErr(r, errors.ErrNotFound, errors.ErrState) }, fail: true},
		"field err":          {fn: func(r Tester) { FieldError(r, errors.Field("A", errors.ErrEmpty, ""), "A", errors.ErrEmpty) }},
		"field err missing":  {fn: func(r Tester) { FieldError(r, errors.Field("A", errors.ErrEmpty, ""), "B", errors.ErrEmpty) }, fail: true},
		"field err expected": {fn: func(r Tester) { FieldError(r, errors.Field("A", errors.ErrEmpty, ""), "A", nil) }, fail: true},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			r := &recorder{}
			tc.fn(r)
			if r.failed != tc.fail {
				t.Fatalf("want failure %v, got %v", tc.fail, r.failed)
			}
		})
	}
}
