package jointaccount

import (
	"testing"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/store"
	"github.com/iov-one/vault/vaulttest"
	"github.com/iov-one/vault/vaulttest/assert"
)

var (
	alice   = vaulttest.SeededKey("alice").Address()
	bob     = vaulttest.SeededKey("bob").Address()
	charlie = vaulttest.SeededKey("charlie").Address()
	dave    = vaulttest.SeededKey("dave").Address()
)

const token = "TKN"

// harness drives a controller on an in memory store, collecting all
// emitted events and external payouts.
type harness struct {
	t       testing.TB
	db      vault.KVStore
	ctrl    *Controller
	payouts *vaulttest.PayoutRecorder
	events  []vault.Event
}

func newHarness(t testing.TB) *harness {
	payouts := &vaulttest.PayoutRecorder{}
	return &harness{
		t:       t,
		db:      store.MemStore(),
		ctrl:    NewController(payouts.Payout),
		payouts: payouts,
	}
}

func (h *harness) emit(events ...vault.Event) {
	h.events = append(h.events, events...)
}

func (h *harness) eventNames() []string {
	names := make([]string, len(h.events))
	for i, e := range h.events {
		names[i] = e.EventName()
	}
	return names
}

// createAccount must succeed.
func (h *harness) createAccount(msg CreateAccountMsg) uint64 {
	h.t.Helper()
	assert.Nil(h.t, msg.Validate())
	acct, err := h.ctrl.CreateAccount(h.db, alice, &msg, h.emit)
	assert.Nil(h.t, err)
	return acct.ID
}

func (h *harness) account(threshold uint32, members ...vault.Address) uint64 {
	h.t.Helper()
	return h.createAccount(CreateAccountMsg{Members: members, Threshold: threshold})
}

// deposit must succeed.
func (h *harness) deposit(accountID uint64, from vault.Address, amount uint64) {
	h.t.Helper()
	_, err := h.ctrl.Deposit(h.db, from, &DepositMsg{AccountID: accountID, Token: token, Amount: amount}, h.emit)
	assert.Nil(h.t, err)
}

func (h *harness) propose(m *Motion) (*Motion, error) {
	return h.ctrl.CreateMotion(h.db, m, h.emit)
}

func (h *harness) transfer(proposer vault.Address, accountID, amount uint64, to vault.Address, dest uint64) (*Motion, error) {
	m := newMotion(accountID, TransferMotion, proposer)
	m.Token = token
	m.Amount = amount
	if to != nil {
		m.To = to
	}
	m.DestinationAccountID = dest
	return h.propose(m)
}

func (h *harness) addMember(proposer vault.Address, accountID uint64, member vault.Address) (*Motion, error) {
	m := newMotion(accountID, AddMemberMotion, proposer)
	m.Member = member
	return h.propose(m)
}

func (h *harness) removeMember(proposer vault.Address, accountID uint64, member vault.Address) (*Motion, error) {
	m := newMotion(accountID, RemoveMemberMotion, proposer)
	m.Member = member
	return h.propose(m)
}

func (h *harness) changeThreshold(proposer vault.Address, accountID uint64, threshold uint32) (*Motion, error) {
	m := newMotion(accountID, ChangeThresholdMotion, proposer)
	m.Threshold = threshold
	return h.propose(m)
}

func (h *harness) vote(voter vault.Address, accountID, motionID uint64) error {
	_, err := h.ctrl.Vote(h.db, voter, accountID, motionID, h.emit)
	return err
}

// mustPropose fails the test if the motion was not created.
func (h *harness) mustPropose(m *Motion, err error) *Motion {
	h.t.Helper()
	assert.Nil(h.t, err)
	return m
}

func (h *harness) balance(accountID uint64) uint64 {
	h.t.Helper()
	b, err := NewQuerier(h.db).BalanceOf(accountID, token)
	assert.Nil(h.t, err)
	return b
}

func (h *harness) motion(accountID, motionID uint64) *Motion {
	h.t.Helper()
	m, err := NewQuerier(h.db).Motion(accountID, motionID)
	assert.Nil(h.t, err)
	return m
}

func (h *harness) members(accountID uint64) []vault.Address {
	h.t.Helper()
	members, err := NewQuerier(h.db).GetMembers(accountID)
	assert.Nil(h.t, err)
	return members
}
