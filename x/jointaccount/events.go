package jointaccount

import (
	"strconv"

	"github.com/iov-one/vault"
)

var (
	_ vault.Event = AccountCreated{}
	_ vault.Event = Deposited{}
	_ vault.Event = MotionCreated{}
	_ vault.Event = Voted{}
	_ vault.Event = MotionCancelled{}
	_ vault.Event = TransferExecuted{}
	_ vault.Event = MemberAdded{}
	_ vault.Event = MemberRemoved{}
	_ vault.Event = ThresholdChanged{}
)

func u64(v uint64) string { return strconv.FormatUint(v, 10) }
func u32(v uint32) string { return strconv.FormatUint(uint64(v), 10) }

// addr renders an unset address as the NullAddress.
func addr(a vault.Address) string {
	if len(a) == 0 {
		return vault.NullAddress.String()
	}
	return a.String()
}

type AccountCreated struct {
	AccountID uint64
	Creator   vault.Address
}

func (AccountCreated) EventName() string { return "AccountCreated" }

func (e AccountCreated) EventFields() []vault.EventField {
	return []vault.EventField{
		{Name: "accountId", Value: u64(e.AccountID)},
		{Name: "creator", Value: addr(e.Creator)},
	}
}

type Deposited struct {
	AccountID uint64
	Token     string
	From      vault.Address
	Amount    uint64
}

func (Deposited) EventName() string { return "Deposited" }

func (e Deposited) EventFields() []vault.EventField {
	return []vault.EventField{
		{Name: "accountId", Value: u64(e.AccountID)},
		{Name: "tokenId", Value: e.Token},
		{Name: "from", Value: addr(e.From)},
		{Name: "amount", Value: u64(e.Amount)},
	}
}

// MotionCreated carries the whole payload, fields a motion type does not
// use hold their null value.
type MotionCreated struct {
	AccountID          uint64
	MotionID           uint64
	MotionType         MotionType
	Proposer           vault.Address
	Token              string
	Amount             uint64
	To                 vault.Address
	DestinationAccount uint64
	Threshold          uint32
}

func newMotionCreated(m *Motion) MotionCreated {
	return MotionCreated{
		AccountID:          m.AccountID,
		MotionID:           m.MotionID,
		MotionType:         m.Type,
		Proposer:           m.Proposer,
		Token:              m.Token,
		Amount:             m.Amount,
		To:                 m.Recipient(),
		DestinationAccount: m.DestinationAccountID,
		Threshold:          m.Threshold,
	}
}

func (MotionCreated) EventName() string { return "MotionCreated" }

func (e MotionCreated) EventFields() []vault.EventField {
	return []vault.EventField{
		{Name: "accountId", Value: u64(e.AccountID)},
		{Name: "motionId", Value: u64(e.MotionID)},
		{Name: "motionType", Value: strconv.Itoa(int(e.MotionType))},
		{Name: "proposer", Value: addr(e.Proposer)},
		{Name: "tokenId", Value: e.Token},
		{Name: "transferAmount", Value: u64(e.Amount)},
		{Name: "to", Value: addr(e.To)},
		{Name: "destinationAccount", Value: u64(e.DestinationAccount)},
		{Name: "threshold", Value: u32(e.Threshold)},
	}
}

// Voted is raised for a new approval (Vote true) and for a withdrawn one.
type Voted struct {
	AccountID uint64
	MotionID  uint64
	Voter     vault.Address
	Vote      bool
}

func (Voted) EventName() string { return "Voted" }

func (e Voted) EventFields() []vault.EventField {
	vote := "0"
	if e.Vote {
		vote = "1"
	}
	return []vault.EventField{
		{Name: "accountId", Value: u64(e.AccountID)},
		{Name: "motionId", Value: u64(e.MotionID)},
		{Name: "voter", Value: addr(e.Voter)},
		{Name: "vote", Value: vote},
	}
}

type MotionCancelled struct {
	AccountID uint64
	MotionID  uint64
}

func (MotionCancelled) EventName() string { return "MotionCancelled" }

func (e MotionCancelled) EventFields() []vault.EventField {
	return []vault.EventField{
		{Name: "accountId", Value: u64(e.AccountID)},
		{Name: "motionId", Value: u64(e.MotionID)},
	}
}

type TransferExecuted struct {
	AccountID          uint64
	MotionID           uint64
	Token              string
	To                 vault.Address
	DestinationAccount uint64
	Amount             uint64
}

func (TransferExecuted) EventName() string { return "TransferExecuted" }

func (e TransferExecuted) EventFields() []vault.EventField {
	return []vault.EventField{
		{Name: "accountId", Value: u64(e.AccountID)},
		{Name: "motionId", Value: u64(e.MotionID)},
		{Name: "tokenId", Value: e.Token},
		{Name: "to", Value: addr(e.To)},
		{Name: "destinationAccount", Value: u64(e.DestinationAccount)},
		{Name: "amount", Value: u64(e.Amount)},
	}
}

type MemberAdded struct {
	AccountID uint64
	MotionID  uint64
	Member    vault.Address
}

func (MemberAdded) EventName() string { return "MemberAdded" }

func (e MemberAdded) EventFields() []vault.EventField {
	return memberFields(e.AccountID, e.MotionID, e.Member)
}

type MemberRemoved struct {
	AccountID uint64
	MotionID  uint64
	Member    vault.Address
}

func (MemberRemoved) EventName() string { return "MemberRemoved" }

func (e MemberRemoved) EventFields() []vault.EventField {
	return memberFields(e.AccountID, e.MotionID, e.Member)
}

func memberFields(accountID, motionID uint64, member vault.Address) []vault.EventField {
	return []vault.EventField{
		{Name: "accountId", Value: u64(accountID)},
		{Name: "motionId", Value: u64(motionID)},
		{Name: "member", Value: addr(member)},
	}
}

type ThresholdChanged struct {
	AccountID uint64
	MotionID  uint64
	Threshold uint32
}

func (ThresholdChanged) EventName() string { return "ThresholdChanged" }

func (e ThresholdChanged) EventFields() []vault.EventField {
	return []vault.EventField{
		{Name: "accountId", Value: u64(e.AccountID)},
		{Name: "motionId", Value: u64(e.MotionID)},
		{Name: "threshold", Value: u32(e.Threshold)},
	}
}
