package jointaccount

import (
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
)

const (
	pathCreateAccountMsg               = "jointaccount/create_account"
	pathDepositMsg                     = "jointaccount/deposit"
	pathCreateTransferMotionMsg        = "jointaccount/create_transfer_motion"
	pathCreateAddMemberMotionMsg       = "jointaccount/create_add_member_motion"
	pathCreateRemoveMemberMotionMsg    = "jointaccount/create_remove_member_motion"
	pathCreateChangeThresholdMotionMsg = "jointaccount/create_change_threshold_motion"
	pathVoteMotionMsg                  = "jointaccount/vote_motion"
	pathCancelVoteMsg                  = "jointaccount/cancel_vote"
	pathCancelMotionMsg                = "jointaccount/cancel_motion"
	pathExecuteMotionMsg               = "jointaccount/execute_motion"
)

var (
	_ vault.Msg = (*CreateAccountMsg)(nil)
	_ vault.Msg = (*DepositMsg)(nil)
	_ vault.Msg = (*CreateTransferMotionMsg)(nil)
	_ vault.Msg = (*CreateAddMemberMotionMsg)(nil)
	_ vault.Msg = (*CreateRemoveMemberMotionMsg)(nil)
	_ vault.Msg = (*CreateChangeThresholdMotionMsg)(nil)
	_ vault.Msg = (*VoteMotionMsg)(nil)
	_ vault.Msg = (*CancelVoteMsg)(nil)
	_ vault.Msg = (*CancelMotionMsg)(nil)
	_ vault.Msg = (*ExecuteMotionMsg)(nil)
)

// Path fulfills vault.Msg interface to allow routing
func (CreateAccountMsg) Path() string {
	return pathCreateAccountMsg
}

// Validate makes sure the members form a set and the threshold can be met.
func (m *CreateAccountMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Members", validateMembers(m.Members))
	if n := uint32(len(m.Members)); m.Threshold == 0 || m.Threshold > n {
		errs = errors.AppendField(errs, "Threshold",
			errors.Wrapf(errors.ErrInput, "threshold %d out of range [1, %d]", m.Threshold, n))
	}
	return errs
}

// Path fulfills vault.Msg interface to allow routing
func (DepositMsg) Path() string {
	return pathDepositMsg
}

func (m *DepositMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Token", ValidateToken(m.Token))
	if m.Amount == 0 {
		errs = errors.AppendField(errs, "Amount", errors.Wrap(errors.ErrInput, "zero amount"))
	}
	return errs
}

// Path fulfills vault.Msg interface to allow routing
func (CreateTransferMotionMsg) Path() string {
	return pathCreateTransferMotionMsg
}

// Validate requires a positive amount and exactly one destination. An
// empty To and the NullAddress both mean no external recipient.
func (m *CreateTransferMotionMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Token", ValidateToken(m.Token))
	if m.Amount == 0 || m.Amount == NullID {
		errs = errors.AppendField(errs, "Amount", errors.Wrapf(errors.ErrInput, "invalid amount %d", m.Amount))
	}
	external := !isNullAddress(m.To)
	internal := m.DestinationAccountID != NullID
	switch {
	case external && internal:
		errs = errors.AppendField(errs, "To", errors.Wrap(errors.ErrInput, "both external and internal destination"))
	case !external && !internal:
		errs = errors.AppendField(errs, "To", errors.Wrap(errors.ErrInput, "no destination"))
	case external:
		errs = errors.AppendField(errs, "To", m.To.Validate())
	}
	return errs
}

// Path fulfills vault.Msg interface to allow routing
func (CreateAddMemberMotionMsg) Path() string {
	return pathCreateAddMemberMotionMsg
}

func (m *CreateAddMemberMotionMsg) Validate() error {
	return errors.Field("Member", validateTarget(m.Member), "invalid member")
}

// Path fulfills vault.Msg interface to allow routing
func (CreateRemoveMemberMotionMsg) Path() string {
	return pathCreateRemoveMemberMotionMsg
}

func (m *CreateRemoveMemberMotionMsg) Validate() error {
	return errors.Field("Member", validateTarget(m.Member), "invalid member")
}

func validateTarget(a vault.Address) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if a.IsNull() {
		return errors.Wrap(errors.ErrInput, "null address")
	}
	return nil
}

// Path fulfills vault.Msg interface to allow routing
func (CreateChangeThresholdMotionMsg) Path() string {
	return pathCreateChangeThresholdMotionMsg
}

// Validate only rejects a zero threshold, the upper bound depends on the
// account.
func (m *CreateChangeThresholdMotionMsg) Validate() error {
	if m.Threshold == 0 || m.Threshold == NullThreshold {
		return errors.Field("Threshold", errors.ErrInput, "invalid threshold %d", m.Threshold)
	}
	return nil
}

// Path fulfills vault.Msg interface to allow routing
func (VoteMotionMsg) Path() string {
	return pathVoteMotionMsg
}

// Validate accepts any reference, a missing motion is reported by the
// handler.
func (m *VoteMotionMsg) Validate() error {
	return nil
}

// Path fulfills vault.Msg interface to allow routing
func (CancelVoteMsg) Path() string {
	return pathCancelVoteMsg
}

func (m *CancelVoteMsg) Validate() error {
	return nil
}

// Path fulfills vault.Msg interface to allow routing
func (CancelMotionMsg) Path() string {
	return pathCancelMotionMsg
}

func (m *CancelMotionMsg) Validate() error {
	return nil
}

// Path fulfills vault.Msg interface to allow routing
func (ExecuteMotionMsg) Path() string {
	return pathExecuteMotionMsg
}

func (m *ExecuteMotionMsg) Validate() error {
	return nil
}
