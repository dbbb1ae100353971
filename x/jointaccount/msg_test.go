package jointaccount

import (
	"testing"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/vaulttest/assert"
)

func TestMsgValidate(t *testing.T) {
	cases := map[string]struct {
		msg       vault.Msg
		wantField string
		wantErr   *errors.Error
	}{
		"valid account": {
			msg: &CreateAccountMsg{Members: []vault.Address{alice, bob}, Threshold: 1},
		},
		"account without members": {
			msg:       &CreateAccountMsg{Threshold: 1},
			wantField: "Members",
			wantErr:   errors.ErrInput,
		},
		"account with duplicate members": {
			msg:       &CreateAccountMsg{Members: []vault.Address{alice, bob, alice}, Threshold: 1},
			wantField: "Members",
			wantErr:   errors.ErrInput,
		},
		"account with invalid member": {
			msg:       &CreateAccountMsg{Members: []vault.Address{alice, vault.Address("short")}, Threshold: 1},
			wantField: "Members",
			wantErr:   errors.ErrInput,
		},
		"account threshold too high": {
			msg:       &CreateAccountMsg{Members: []vault.Address{alice}, Threshold: 2},
			wantField: "Threshold",
			wantErr:   errors.ErrInput,
		},
		"valid deposit": {
			msg: &DepositMsg{Token: "TKN", Amount: 1},
		},
		"deposit of nothing": {
			msg:       &DepositMsg{Token: "TKN"},
			wantField: "Amount",
			wantErr:   errors.ErrInput,
		},
		"deposit of invalid token": {
			msg:       &DepositMsg{Token: "tkn", Amount: 1},
			wantField: "Token",
			wantErr:   errors.ErrInput,
		},
		"external transfer": {
			msg: &CreateTransferMotionMsg{Token: "TKN", Amount: 1, To: charlie, DestinationAccountID: NullID},
		},
		"internal transfer": {
			msg: &CreateTransferMotionMsg{Token: "TKN", Amount: 1, DestinationAccountID: 4},
		},
		"internal transfer with null address": {
			msg: &CreateTransferMotionMsg{Token: "TKN", Amount: 1, To: vault.NullAddress, DestinationAccountID: 4},
		},
		"transfer to both": {
			msg:       &CreateTransferMotionMsg{Token: "TKN", Amount: 1, To: charlie, DestinationAccountID: 4},
			wantField: "To",
			wantErr:   errors.ErrInput,
		},
		"transfer to neither": {
			msg:       &CreateTransferMotionMsg{Token: "TKN", Amount: 1, DestinationAccountID: NullID},
			wantField: "To",
			wantErr:   errors.ErrInput,
		},
		"transfer of nothing": {
			msg:       &CreateTransferMotionMsg{Token: "TKN", To: charlie, DestinationAccountID: NullID},
			wantField: "Amount",
			wantErr:   errors.ErrInput,
		},
		"add member": {
			msg: &CreateAddMemberMotionMsg{Member: charlie},
		},
		"add null member": {
			msg:       &CreateAddMemberMotionMsg{Member: vault.NullAddress},
			wantField: "Member",
			wantErr:   errors.ErrInput,
		},
		"remove missing member": {
			msg:       &CreateRemoveMemberMotionMsg{},
			wantField: "Member",
			wantErr:   errors.ErrInput,
		},
		"threshold zero": {
			msg:       &CreateChangeThresholdMotionMsg{},
			wantField: "Threshold",
			wantErr:   errors.ErrInput,
		},
		"threshold": {
			msg: &CreateChangeThresholdMotionMsg{Threshold: 3},
		},
		"vote": {
			msg: &VoteMotionMsg{AccountID: 1, MotionID: 2},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := tc.msg.Validate()
			if tc.wantErr == nil {
				assert.Nil(t, err)
				return
			}
			assert.FieldError(t, err, tc.wantField, tc.wantErr)
		})
	}
}

func TestMotionRefCodec(t *testing.T) {
	msg := &CancelMotionMsg{AccountID: 3, MotionID: NullID}
	raw, err := msg.Marshal()
	assert.Nil(t, err)

	var vote VoteMotionMsg
	assert.Nil(t, vote.Unmarshal(raw))
	assert.Equal(t, VoteMotionMsg{AccountID: 3, MotionID: NullID}, vote)
	assert.Equal(t, "jointaccount/vote_motion", vote.Path())
}
