package errors

import (
	"errors"
	"fmt"
)

const (
	// SuccessABCICode is reported for a call that succeeded.
	SuccessABCICode = 0

	// Errors without a registered root share this code and a generic log.
	internalABCICode uint32 = 1
	internalABCILog         = "internal error"
)

// ABCIInfo returns the code and log reported to the caller of a rejected
// call. Errors without a registered root are reported as code 1, and
// outside of debug mode their message is replaced by "internal error".
func ABCIInfo(err error, debug bool) (uint32, string) {
	if isNilErr(err) {
		return SuccessABCICode, ""
	}
	code := abciCode(err)
	switch {
	case debug:
		return code, fmt.Sprintf("%+v", err)
	case code == internalABCICode:
		return code, internalABCILog
	default:
		return code, err.Error()
	}
}

type coder interface {
	ABCICode() uint32
}

// abciCode returns the code of the first registered error found in the err
// tree, or the internal code if there is none.
func abciCode(err error) uint32 {
	if isNilErr(err) {
		return SuccessABCICode
	}
	code := internalABCICode
	found := false
	visit(err, func(inner error) bool {
		if found {
			return false
		}
		if c, ok := inner.(coder); ok {
			code, found = c.ABCICode(), true
		}
		return !found
	})
	return code
}

// Redact hides errors that do not come from a registered root error, and
// every recovered panic, behind a generic internal error. Debug mode
// returns err unchanged.
func Redact(err error, debug bool) error {
	if debug {
		return err
	}
	if ErrPanic.Is(err) {
		return errors.New(internalABCILog)
	}
	if abciCode(err) == internalABCICode {
		return errors.New(internalABCILog)
	}
	return err
}
