package vaulttest

import (
	"github.com/iov-one/vault"
)

// Handler is a vault.Handler that returns configured results and counts
// how many times it was called.
// Optionally it writes a key/value pair to the store, which helps to test
// that failed calls leave no trace.
type Handler struct {
	checkCall   int
	CheckResult vault.CheckResult
	CheckErr    error

	deliverCall   int
	DeliverResult vault.DeliverResult
	DeliverErr    error

	// WriteKey and WriteValue are set in the store on every Deliver call,
	// before the result is returned.
	WriteKey   []byte
	WriteValue []byte
	// Panic if set is raised on Deliver.
	Panic interface{}
}

var _ vault.Handler = (*Handler)(nil)

// Check returns the configured check result.
func (h *Handler) Check(ctx vault.Context, db vault.KVStore, tx vault.Tx) (*vault.CheckResult, error) {
	h.checkCall++
	if h.CheckErr != nil {
		return nil, h.CheckErr
	}
	res := h.CheckResult
	return &res, nil
}

// Deliver writes the configured pair and returns the configured result.
func (h *Handler) Deliver(ctx vault.Context, db vault.KVStore, tx vault.Tx) (*vault.DeliverResult, error) {
	h.deliverCall++
	if h.WriteKey != nil {
		if err := db.Set(h.WriteKey, h.WriteValue); err != nil {
			return nil, err
		}
	}
	if h.Panic != nil {
		panic(h.Panic)
	}
	if h.DeliverErr != nil {
		return nil, h.DeliverErr
	}
	res := h.DeliverResult
	return &res, nil
}

// CheckCallCount returns how many times Check was called.
func (h *Handler) CheckCallCount() int {
	return h.checkCall
}

// DeliverCallCount returns how many times Deliver was called.
func (h *Handler) DeliverCallCount() int {
	return h.deliverCall
}

// CallCount returns how many times any method was called.
func (h *Handler) CallCount() int {
	return h.checkCall + h.deliverCall
}
