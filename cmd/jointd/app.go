package main

import (
	"encoding/json"
	"os"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/app"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/store/iavl"
	"github.com/iov-one/vault/x/jointaccount"
	"github.com/tendermint/tendermint/libs/log"
)

const dbName = "jointd"

// node bundles a ledger with the store it commits to.
type node struct {
	*app.Ledger
	store *iavl.CommitStore
}

// openNode loads the latest committed state found under home. External
// transfers are paid out to the log.
func openNode(logger log.Logger, home string, debug bool) (*node, error) {
	if err := os.MkdirAll(home, 0755); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	store, err := iavl.NewCommitStore(home, dbName)
	if err != nil {
		return nil, err
	}
	if err := store.LoadLatestVersion(); err != nil {
		store.Close()
		return nil, err
	}

	r := app.NewRouter()
	jointaccount.RegisterRoutes(r, logPayout(logger))
	qr := vault.NewQueryRouter()
	qr.RegisterAll(jointaccount.RegisterQuery)

	events := vault.EmitterFunc(func(e vault.Event) {
		logger.Debug("Event", "name", e.EventName())
	})
	l := app.NewLedger(store, r, qr).
		WithInit(&jointaccount.Initializer{}).
		WithEmitter(events).
		WithLogger(logger).
		WithDebug(debug)
	return &node{Ledger: l, store: store}, nil
}

func (n *node) Close() {
	n.store.Close()
}

// Version returns the latest committed version, zero for a fresh store.
func (n *node) Version() int64 {
	id, err := n.store.LatestVersion()
	if err != nil {
		return 0
	}
	return id.Version
}

func logPayout(logger log.Logger) jointaccount.Payout {
	return func(token string, amount uint64, to vault.Address) error {
		logger.Info("Payout", "token", token, "amount", amount, "to", to)
		return nil
	}
}

// call is a single message as listed in a calls file.
type call struct {
	Path   string          `json:"path"`
	Caller vault.Address   `json:"caller"`
	Msg    json.RawMessage `json:"msg"`
}

// tx carries a decoded call message to the ledger.
type tx struct {
	msg vault.Msg
}

var _ vault.Tx = tx{}

func (t tx) GetMsg() (vault.Msg, error) {
	return t.msg, nil
}

// messages lists every message the node accepts, with the defaults that
// apply to fields left out of a call. Unset destinations are null.
var messages = []func() vault.Msg{
	func() vault.Msg { return &jointaccount.CreateAccountMsg{} },
	func() vault.Msg { return &jointaccount.DepositMsg{} },
	func() vault.Msg {
		return &jointaccount.CreateTransferMotionMsg{DestinationAccountID: jointaccount.NullID}
	},
	func() vault.Msg { return &jointaccount.CreateAddMemberMotionMsg{} },
	func() vault.Msg { return &jointaccount.CreateRemoveMemberMotionMsg{} },
	func() vault.Msg { return &jointaccount.CreateChangeThresholdMotionMsg{} },
	func() vault.Msg { return &jointaccount.VoteMotionMsg{} },
	func() vault.Msg { return &jointaccount.CancelVoteMsg{} },
	func() vault.Msg { return &jointaccount.CancelMotionMsg{} },
	func() vault.Msg { return &jointaccount.ExecuteMotionMsg{} },
}

// decodeMsg returns the message registered under path, filled from raw.
func decodeMsg(path string, raw json.RawMessage) (vault.Msg, error) {
	for _, fn := range messages {
		msg := fn()
		if msg.Path() != path {
			continue
		}
		if len(raw) == 0 {
			return msg, nil
		}
		if err := json.Unmarshal(raw, msg); err != nil {
			return nil, errors.Wrapf(errors.ErrInput, "cannot decode %s: %s", path, err)
		}
		return msg, nil
	}
	return nil, errors.Wrap(app.ErrNoSuchPath, path)
}
