package app

import (
	"context"
	"testing"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/store/iavl"
	"github.com/iov-one/vault/vaulttest"
	"github.com/iov-one/vault/vaulttest/assert"
)

type namedEvent string

func (e namedEvent) EventName() string { return string(e) }

func (e namedEvent) EventFields() []vault.EventField {
	return []vault.EventField{{Name: "name", Value: string(e)}}
}

type initFunc func(vault.Options, vault.KVStore) error

func (f initFunc) FromGenesis(opts vault.Options, db vault.KVStore) error {
	return f(opts, db)
}

func newTestLedger(h vault.Handler) (*Ledger, *vaulttest.EventRecorder) {
	r := NewRouter()
	r.Handle("test/call", h)
	events := &vaulttest.EventRecorder{}
	l := NewLedger(iavl.MockCommitStore(), r, vault.NewQueryRouter()).WithEmitter(events)
	return l, events
}

func readKey(t *testing.T, l *Ledger, key []byte) []byte {
	t.Helper()
	var value []byte
	err := l.Read(func(db vault.ReadOnlyKVStore) error {
		var err error
		value, err = db.Get(key)
		return err
	})
	assert.Nil(t, err)
	return value
}

func TestLedgerDeliver(t *testing.T) {
	ctx := context.Background()
	caller := vaulttest.NewAddress()
	tx := &vaulttest.Tx{Msg: &vaulttest.Msg{RoutePath: "test/call"}}

	cases := map[string]struct {
		handler    *vaulttest.Handler
		wantErr    *errors.Error
		wantValue  []byte
		wantEvents []string
	}{
		"success writes and emits": {
			handler: &vaulttest.Handler{
				WriteKey:      []byte("k"),
				WriteValue:    []byte("v"),
				DeliverResult: vault.DeliverResult{Events: []vault.Event{namedEvent("a"), namedEvent("b")}},
			},
			wantValue:  []byte("v"),
			wantEvents: []string{"a", "b"},
		},
		"failure is rolled back": {
			handler: &vaulttest.Handler{
				WriteKey:      []byte("k"),
				WriteValue:    []byte("v"),
				DeliverErr:    errors.ErrState,
				DeliverResult: vault.DeliverResult{Events: []vault.Event{namedEvent("a")}},
			},
			wantErr:    errors.ErrState,
			wantEvents: []string{},
		},
		"panic is recovered and rolled back": {
			handler: &vaulttest.Handler{
				WriteKey:   []byte("k"),
				WriteValue: []byte("v"),
				Panic:      "boom",
			},
			wantErr:    errors.ErrPanic,
			wantEvents: []string{},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			l, events := newTestLedger(tc.handler)
			_, err := l.Deliver(ctx, caller, tx)
			if tc.wantErr != nil {
				assert.IsErr(t, tc.wantErr, err)
			} else {
				assert.Nil(t, err)
			}
			assert.Equal(t, tc.wantValue, readKey(t, l, []byte("k")))
			assert.Equal(t, tc.wantEvents, events.Names())
		})
	}
}

func TestLedgerCheckDoesNotWrite(t *testing.T) {
	h := &vaulttest.Handler{WriteKey: []byte("k"), WriteValue: []byte("v")}
	l, _ := newTestLedger(h)
	tx := &vaulttest.Tx{Msg: &vaulttest.Msg{RoutePath: "test/call"}}

	_, err := l.Check(context.Background(), vaulttest.NewAddress(), tx)
	assert.Nil(t, err)
	assert.Equal(t, 1, h.CheckCallCount())
	assert.Nil(t, readKey(t, l, []byte("k")))
}

func TestLedgerInitChainAndCommit(t *testing.T) {
	l, _ := newTestLedger(&vaulttest.Handler{})

	_, err := l.InitChain(vault.Options{})
	assert.IsErr(t, errors.ErrHuman, err)

	l.WithInit(initFunc(func(opts vault.Options, db vault.KVStore) error {
		return db.Set([]byte("genesis"), []byte("yes"))
	}))
	id, err := l.InitChain(vault.Options{})
	assert.Nil(t, err)
	assert.Equal(t, int64(1), id.Version)
	assert.Equal(t, []byte("yes"), readKey(t, l, []byte("genesis")))

	id, err = l.Commit()
	assert.Nil(t, err)
	assert.Equal(t, int64(2), id.Version)

	// failing genesis leaves nothing behind
	failing, _ := newTestLedger(&vaulttest.Handler{})
	failing.WithInit(initFunc(func(opts vault.Options, db vault.KVStore) error {
		if err := db.Set([]byte("genesis"), []byte("half")); err != nil {
			return err
		}
		return errors.ErrInput
	}))
	_, err = failing.InitChain(vault.Options{})
	assert.IsErr(t, errors.ErrInput, err)
	assert.Nil(t, readKey(t, failing, []byte("genesis")))
}

func TestDeliverOrError(t *testing.T) {
	res := DeliverOrError(nil, errors.Wrap(errors.ErrNotFound, "account"), false)
	assert.Equal(t, false, res.IsOK())
	assert.Equal(t, errors.ErrNotFound.ABCICode(), res.Code)

	res = DeliverOrError(&vault.DeliverResult{Events: []vault.Event{namedEvent("x")}}, nil, false)
	assert.Equal(t, true, res.IsOK())
	assert.Equal(t, 1, len(res.Events))
	v, ok := res.Events[0].Get("0")
	assert.Equal(t, true, ok)
	assert.Equal(t, "x", v)
}
