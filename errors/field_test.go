package errors

import (
	"reflect"
	"testing"
)

func TestFieldErrors(t *testing.T) {
	// Declare errors upfront so that DeepEqual can be used for comparison.
	var (
		inputMembersErr = Field("Members", ErrInput, "duplicate")
		emptyMembersErr = Field("Members", ErrEmpty, "no members")
		zeroAmountErr   = Field("Amount", ErrAmount, "zero amount")
		balanceErr      = Field("Balances", Append(
			emptyMembersErr,
			Append(zeroAmountErr, ErrState),
		), "invalid balance")
	)

	cases := map[string]struct {
		Err   error
		Field string
		Want  []error
	}{
		"single field error": {
			Err:   inputMembersErr,
			Field: "Members",
			Want:  []error{inputMembersErr},
		},
		"two errors of the same field": {
			Err:   Append(inputMembersErr, emptyMembersErr),
			Field: "Members",
			Want:  []error{inputMembersErr, emptyMembersErr},
		},
		"field error grouping others is returned whole": {
			Err:   balanceErr,
			Field: "Balances",
			Want:  []error{balanceErr},
		},
		"match inside a group (Members)": {
			Err:   balanceErr,
			Field: "Members",
			Want:  []error{emptyMembersErr},
		},
		"match inside a nested group (Amount)": {
			Err:   balanceErr,
			Field: "Amount",
			Want:  []error{zeroAmountErr},
		},
		"nil error returns nothing": {
			Err:   nil,
			Field: "foo",
			Want:  nil,
		},
		"no matching field": {
			Err:   inputMembersErr,
			Field: "foo",
			Want:  nil,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got := FieldErrors(tc.Err, tc.Field)
			if !reflect.DeepEqual(tc.Want, got) {
				t.Fatalf("unexpected result: %v", got)
			}
		})
	}
}

func TestAppendFieldSkipsNil(t *testing.T) {
	var errs error
	errs = AppendField(errs, "Threshold", nil)
	if errs != nil {
		t.Fatalf("want nil, got %v", errs)
	}
	errs = AppendField(errs, "Threshold", ErrInput)
	if !ErrInput.Is(errs) {
		t.Fatalf("want input error, got %v", errs)
	}
}
