package app

import (
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
)

// Result is the outcome of a delivered call, as reported to the caller.
type Result struct {
	Code   uint32              `json:"code"`
	Log    string              `json:"log,omitempty"`
	Data   []byte              `json:"data,omitempty"`
	Events []vault.EventRecord `json:"events,omitempty"`
}

// IsOK returns true if the call succeeded.
func (r Result) IsOK() bool {
	return r.Code == errors.SuccessABCICode
}

// DeliverOrError returns a Result for the call. Internal error details are
// only included in debug mode.
func DeliverOrError(res *vault.DeliverResult, err error, debug bool) Result {
	if err != nil {
		code, log := errors.ABCIInfo(err, debug)
		return Result{Code: code, Log: log}
	}
	out := Result{Data: res.Data, Log: res.Log}
	for _, e := range res.Events {
		out.Events = append(out.Events, vault.NewEventRecord(e))
	}
	return out
}
