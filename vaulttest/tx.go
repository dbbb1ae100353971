package vaulttest

import (
	"context"

	"github.com/iov-one/vault"
)

// Tx represents a vault transaction.
// Transaction represents a single message that is to be processed within this
// transaction.
type Tx struct {
	// Msg is the message that is to be processed by this transaction.
	Msg vault.Msg
	// Err if set is returned by any method call.
	Err error
}

var _ vault.Tx = (*Tx)(nil)

// GetMsg returns the message or the configured error.
func (tx *Tx) GetMsg() (vault.Msg, error) {
	return tx.Msg, tx.Err
}

// Msg represents a vault message that carries no data.
type Msg struct {
	// Path returned by the path method, consumed by the router.
	RoutePath string
	// Serialized represents the serialized form of this message.
	Serialized []byte
	// Err if set is returned by any method call.
	Err error
}

var _ vault.Msg = (*Msg)(nil)

// Path returns the route path.
func (m *Msg) Path() string {
	return m.RoutePath
}

// Unmarshal stores the raw data.
func (m *Msg) Unmarshal(b []byte) error {
	m.Serialized = b
	return m.Err
}

// Marshal returns the raw data.
func (m *Msg) Marshal() ([]byte, error) {
	return m.Serialized, m.Err
}

// Validate returns the configured error.
func (m *Msg) Validate() error {
	return m.Err
}

// CtxAs returns a context carrying given caller, as the ledger layer would
// set it for a signed call.
func CtxAs(caller vault.Address) vault.Context {
	return vault.WithCaller(context.Background(), caller)
}
