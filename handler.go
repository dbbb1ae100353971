package vault

import (
	"github.com/iov-one/vault/errors"
	"github.com/tendermint/tendermint/libs/common"
)

// Handler is a core engine that can process a few specific messages
// This could represent "create account", or "vote on a motion"
type Handler interface {
	Checker
	Deliverer
}

// Checker is a subset of Handler to verify the validity of a call
// without changing the state.
type Checker interface {
	Check(ctx Context, store KVStore, tx Tx) (*CheckResult, error)
}

// Deliverer is a subset of Handler to execute a call.
type Deliverer interface {
	Deliver(ctx Context, store KVStore, tx Tx) (*DeliverResult, error)
}

// Registry is an interface to register your handler,
// the setup side of a Router
type Registry interface {
	Handle(path string, h Handler)
}

// Marshaller is anything that can be represented in binary
type Marshaller interface {
	Marshal() ([]byte, error)
}

// Persistent supports Marshal and Unmarshal
//
// This is separated from Marshal, as this almost always requires
// a pointer, and functions that only need to marshal bytes can
// use the Marshaller interface to access non-pointers.
type Persistent interface {
	Marshaller
	Unmarshal([]byte) error
}

// Validater is any struct that can be validated.
// Not the same as a Validator, which votes on blocks.
type Validater interface {
	Validate() error
}

// Msg is a request to take an action (make a state transition). It is
// just the request, and must be validated by the Handlers. The caller
// identity travels in the context.
type Msg interface {
	Persistent
	Validater

	// Path returns the message path.
	// This is used by the Router to locate the proper Handler.
	// Msg should be created alongside the Handler that corresponds to them.
	//
	// Must be alphanumeric [0-9A-Za-z_\-/]+
	Path() string
}

// Tx represent the data sent from the ledger layer to the core.
type Tx interface {
	// GetMsg returns the action we wish to communicate
	GetMsg() (Msg, error)
}

// GetPath returns the path of the message, or (missing) if no message
func GetPath(tx Tx) string {
	msg, err := tx.GetMsg()
	if err == nil && msg != nil {
		return msg.Path()
	}
	return "(missing)"
}

// LoadMsg extracts the message represented by given transaction into given
// destination. Before returning message validation method is called.
func LoadMsg(tx Tx, destination interface{}) error {
	msg, err := tx.GetMsg()
	if err != nil {
		return errors.Wrap(err, "cannot get transaction message")
	}
	if msg == nil {
		return errors.Wrap(errors.ErrMsg, "no message")
	}
	if err := assign(destination, msg); err != nil {
		return err
	}
	if err := msg.Validate(); err != nil {
		return errors.Wrap(err, "invalid message")
	}
	return nil
}

// CheckResult captures any non-error info when validating a call.
type CheckResult struct {
	// Data is a machine-parseable return value, like an id
	Data []byte
	// Log is human-readable informational string
	Log string
}

// DeliverResult captures any non-error info when executing a call.
type DeliverResult struct {
	// Data is a machine-parseable return value, like an id
	Data []byte
	// Log is human-readable informational string
	Log string
	// Tags are used for indexing by the ledger layer
	Tags []common.KVPair
	// Events are handed to the EventEmitter, in order, once the call is
	// committed.
	Events []Event
}

// Emit appends events to the result.
func (d *DeliverResult) Emit(events ...Event) {
	d.Events = append(d.Events, events...)
}
