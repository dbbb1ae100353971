/*
Package errors implements the error taxonomy shared by every vault extension.

Reuse the root errors declared in this package whenever possible and only
register a custom one when it is truly specific to an extension. Use
Register(code, description) for that, during program startup.

	ErrNotFound.New("account 7")
	errors.Wrap(err, "load motion")
	errors.Wrapf(errors.ErrInput, "threshold %d", n)

The first wrap attaches a stack trace. Print an error with %+v to see it.

Is tests the root cause of an error, walking the chain of Cause() calls, so
callers never compare error strings:

	if errors.ErrInsufficientFunds.Is(err) { ... }
*/
package errors
