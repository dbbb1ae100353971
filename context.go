package vault

import (
	"context"

	"github.com/tendermint/tendermint/libs/log"
)

// Context is just an alias for the standard implementation.
// We use functions to extend it to our domain
type Context = context.Context

type contextKey int // local to the vault module

const (
	contextKeyLogger contextKey = iota
	contextKeyCaller
)

var (
	// DefaultLogger is used for all context that have not
	// set anything themselves
	DefaultLogger = log.NewNopLogger()
)

// WithLogger sets the logger for this context
func WithLogger(ctx Context, logger log.Logger) Context {
	return context.WithValue(ctx, contextKeyLogger, logger)
}

// WithLogInfo accepts keyvalue pairs, and returns another
// context like this, after passing all the keyvals to the
// Logger
func WithLogInfo(ctx Context, keyvals ...interface{}) Context {
	logger := GetLogger(ctx).With(keyvals...)
	return WithLogger(ctx, logger)
}

// GetLogger returns the currently set logger, or
// DefaultLogger if none was set
func GetLogger(ctx Context) log.Logger {
	val, ok := ctx.Value(contextKeyLogger).(log.Logger)
	if !ok {
		return DefaultLogger
	}
	return val
}

// WithCaller attaches the address of the account that submitted the call.
// The ledger layer authenticates the caller before the call reaches a
// handler.
func WithCaller(ctx Context, caller Address) Context {
	return context.WithValue(ctx, contextKeyCaller, caller)
}

// GetCaller returns the address set by WithCaller.
func GetCaller(ctx Context) (Address, bool) {
	val, ok := ctx.Value(contextKeyCaller).(Address)
	if !ok || len(val) == 0 {
		return nil, false
	}
	return val, true
}
