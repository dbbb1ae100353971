package vaulttest

import (
	"sync"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
)

// EventRecorder is a vault.EventEmitter that keeps every event it receives.
type EventRecorder struct {
	mu      sync.Mutex
	records []vault.EventRecord
}

var _ vault.EventEmitter = (*EventRecorder)(nil)

// Emit records the event.
func (r *EventRecorder) Emit(e vault.Event) {
	r.mu.Lock()
	r.records = append(r.records, vault.NewEventRecord(e))
	r.mu.Unlock()
}

// Records returns all events received so far, in order.
func (r *EventRecorder) Records() []vault.EventRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]vault.EventRecord(nil), r.records...)
}

// Names returns the names of all events received so far, in order.
func (r *EventRecorder) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, len(r.records))
	for i, rec := range r.records {
		names[i] = rec.Name
	}
	return names
}

// Reset drops all records.
func (r *EventRecorder) Reset() {
	r.mu.Lock()
	r.records = nil
	r.mu.Unlock()
}

// PayoutRecorder stands in for the ledger layer that delivers tokens to
// external addresses. It keeps the external balance of every recipient.
type PayoutRecorder struct {
	mu       sync.Mutex
	balances map[string]uint64
	// Err if set fails every payout.
	Err error
}

// Payout credits amount of token to the external address.
func (p *PayoutRecorder) Payout(token string, amount uint64, to vault.Address) error {
	if p.Err != nil {
		return p.Err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.balances == nil {
		p.balances = make(map[string]uint64)
	}
	key := to.String() + "/" + token
	if p.balances[key]+amount < amount {
		return errors.Wrap(errors.ErrOverflow, "external balance")
	}
	p.balances[key] += amount
	return nil
}

// Balance returns how much of token was paid out to the address.
func (p *PayoutRecorder) Balance(to vault.Address, token string) uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.balances[to.String()+"/"+token]
}
