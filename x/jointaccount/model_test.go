package jointaccount

import (
	"math"
	"testing"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/vaulttest/assert"
)

func TestAccountValidate(t *testing.T) {
	cases := map[string]struct {
		acct      Account
		wantField string
		wantErr   *errors.Error
	}{
		"valid": {
			acct: Account{Members: []vault.Address{alice, bob}, Threshold: 2},
		},
		"no members": {
			acct:      Account{Threshold: 1},
			wantField: "Members",
			wantErr:   errors.ErrInput,
		},
		"duplicate member": {
			acct:      Account{Members: []vault.Address{alice, alice}, Threshold: 1},
			wantField: "Members",
			wantErr:   errors.ErrInput,
		},
		"threshold zero": {
			acct:      Account{Members: []vault.Address{alice}},
			wantField: "Threshold",
			wantErr:   errors.ErrInput,
		},
		"threshold above members": {
			acct:      Account{Members: []vault.Address{alice}, Threshold: 2},
			wantField: "Threshold",
			wantErr:   errors.ErrInput,
		},
		"unsorted balances": {
			acct: Account{
				Members:   []vault.Address{alice},
				Threshold: 1,
				Balances:  []*Balance{{Token: "XYZ", Amount: 1}, {Token: "ABC", Amount: 1}},
			},
			wantField: "Balances",
			wantErr:   errors.ErrInput,
		},
		"zero balance": {
			acct: Account{
				Members:   []vault.Address{alice},
				Threshold: 1,
				Balances:  []*Balance{{Token: "ABC"}},
			},
			wantField: "Balances",
			wantErr:   errors.ErrAmount,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := tc.acct.Validate()
			if tc.wantErr == nil {
				assert.Nil(t, err)
				return
			}
			assert.FieldError(t, err, tc.wantField, tc.wantErr)
		})
	}
}

func TestAccountBalances(t *testing.T) {
	acct := &Account{Members: []vault.Address{alice}, Threshold: 1}

	assert.Nil(t, acct.Credit("XYZ", 10))
	assert.Nil(t, acct.Credit("ABC", 5))
	assert.Nil(t, acct.Credit("XYZ", 1))
	assert.Equal(t, uint64(11), acct.BalanceOf("XYZ"))
	assert.Equal(t, uint64(0), acct.BalanceOf("NOP"))
	assert.Equal(t, "ABC", acct.Balances[0].Token)
	assert.Nil(t, acct.Validate())

	assert.IsErr(t, errors.ErrOverflow, acct.Credit("XYZ", math.MaxUint64))
	assert.IsErr(t, errors.ErrAmount, acct.Credit("XYZ", 0))
	assert.IsErr(t, errors.ErrInsufficientFunds, acct.Debit("XYZ", 12))
	assert.IsErr(t, errors.ErrInsufficientFunds, acct.Debit("NOP", 1))

	assert.Nil(t, acct.Debit("ABC", 5))
	assert.Equal(t, 1, len(acct.Balances))
	assert.Nil(t, acct.Validate())

	cpy := acct.Copy().(*Account)
	assert.Nil(t, cpy.Debit("XYZ", 11))
	assert.Equal(t, uint64(11), acct.BalanceOf("XYZ"))
}

func TestAccountCodec(t *testing.T) {
	acct := &Account{
		ID:                7,
		Members:           []vault.Address{alice, bob},
		Threshold:         2,
		MemberOnlyDeposit: true,
		Balances:          []*Balance{{Token: "ABC", Amount: 3}},
	}
	raw, err := acct.Marshal()
	assert.Nil(t, err)
	var got Account
	assert.Nil(t, got.Unmarshal(raw))
	assert.Equal(t, acct, &got)
}

func TestMotionValidate(t *testing.T) {
	transfer := func() *Motion {
		m := newMotion(0, TransferMotion, alice)
		m.Token = token
		m.Amount = 10
		m.To = charlie
		return m
	}

	cases := map[string]struct {
		motion    func() *Motion
		wantField string
		wantErr   *errors.Error
	}{
		"external transfer": {
			motion: transfer,
		},
		"internal transfer": {
			motion: func() *Motion {
				m := transfer()
				m.To = vault.NullAddress
				m.DestinationAccountID = 3
				return m
			},
		},
		"two destinations": {
			motion: func() *Motion {
				m := transfer()
				m.DestinationAccountID = 3
				return m
			},
			wantField: "To",
			wantErr:   errors.ErrInput,
		},
		"null amount": {
			motion: func() *Motion {
				m := transfer()
				m.Amount = NullID
				return m
			},
			wantField: "Amount",
			wantErr:   errors.ErrInput,
		},
		"add member": {
			motion: func() *Motion {
				m := newMotion(0, AddMemberMotion, alice)
				m.Member = bob
				return m
			},
		},
		"remove null member": {
			motion: func() *Motion {
				return newMotion(0, RemoveMemberMotion, alice)
			},
			wantField: "Member",
			wantErr:   errors.ErrInput,
		},
		"threshold with transfer payload": {
			motion: func() *Motion {
				m := newMotion(0, ChangeThresholdMotion, alice)
				m.Threshold = 2
				m.Amount = 5
				return m
			},
			wantField: "Token",
			wantErr:   errors.ErrInput,
		},
		"unset threshold": {
			motion: func() *Motion {
				return newMotion(0, ChangeThresholdMotion, alice)
			},
			wantField: "Threshold",
			wantErr:   errors.ErrInput,
		},
		"duplicate vote": {
			motion: func() *Motion {
				m := transfer()
				m.Votes = []vault.Address{alice, alice}
				return m
			},
			wantField: "Votes",
			wantErr:   errors.ErrDuplicate,
		},
		"unknown type": {
			motion: func() *Motion {
				return newMotion(0, MotionType(9), alice)
			},
			wantField: "Type",
			wantErr:   errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := tc.motion().Validate()
			if tc.wantErr == nil {
				assert.Nil(t, err)
				return
			}
			assert.FieldError(t, err, tc.wantField, tc.wantErr)
		})
	}
}

func TestMotionVotes(t *testing.T) {
	m := newMotion(0, AddMemberMotion, alice)
	m.Member = dave

	assert.Nil(t, m.addVote(alice))
	assert.IsErr(t, errors.ErrDuplicate, m.addVote(alice))
	assert.Nil(t, m.addVote(bob))
	assert.Equal(t, true, m.HasVoted(bob))
	assert.Equal(t, true, m.removeVote(bob))
	assert.Equal(t, false, m.removeVote(bob))
	assert.Equal(t, false, m.HasVoted(bob))

	cpy := m.Copy().(*Motion)
	assert.Nil(t, cpy.addVote(charlie))
	assert.Equal(t, 1, len(m.Votes))
	assert.Equal(t, dave, cpy.Recipient())
}

func TestMotionTypeString(t *testing.T) {
	assert.Equal(t, "change_threshold", ChangeThresholdMotion.String())
	assert.Equal(t, "MotionType(7)", MotionType(7).String())
	assert.Equal(t, "cancelled", MotionStatusCancelled.String())
}
