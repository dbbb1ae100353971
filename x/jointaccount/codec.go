package jointaccount

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/vault"
)

// The types below mirror codec.proto. Every type has a wire twin that
// shares its memory layout but not its methods, so that the reflection
// based protobuf codec never calls back into our own Marshal.

// Balance is the amount of a single token held by an account.
type Balance struct {
	Token  string `protobuf:"bytes,1,opt,name=token,proto3" json:"token,omitempty"`
	Amount uint64 `protobuf:"varint,2,opt,name=amount,proto3" json:"amount,omitempty"`
}

type balanceWire Balance

func (m *balanceWire) Reset()         { *m = balanceWire{} }
func (m *balanceWire) String() string { return proto.CompactTextString(m) }
func (*balanceWire) ProtoMessage()    {}

func (m *Balance) Marshal() ([]byte, error) { return proto.Marshal((*balanceWire)(m)) }
func (m *Balance) Unmarshal(bz []byte) error { return proto.Unmarshal(bz, (*balanceWire)(m)) }

// Account is a joint vault governed by its members.
type Account struct {
	ID                uint64          `protobuf:"varint,1,opt,name=id,proto3" json:"id"`
	Members           []vault.Address `protobuf:"bytes,2,rep,name=members,proto3" json:"members"`
	Threshold         uint32          `protobuf:"varint,3,opt,name=threshold,proto3" json:"threshold"`
	IsStatic          bool            `protobuf:"varint,4,opt,name=is_static,json=isStatic,proto3" json:"is_static"`
	MemberOnlyDeposit bool            `protobuf:"varint,5,opt,name=member_only_deposit,json=memberOnlyDeposit,proto3" json:"member_only_deposit"`
	// Balances is sorted by token and never holds a zero amount.
	Balances []*Balance `protobuf:"bytes,6,rep,name=balances,proto3" json:"balances,omitempty"`
}

type accountWire Account

func (m *accountWire) Reset()         { *m = accountWire{} }
func (m *accountWire) String() string { return proto.CompactTextString(m) }
func (*accountWire) ProtoMessage()    {}

func (m *Account) Marshal() ([]byte, error) { return proto.Marshal((*accountWire)(m)) }
func (m *Account) Unmarshal(bz []byte) error { return proto.Unmarshal(bz, (*accountWire)(m)) }

// Motion is a proposed change of an account, waiting for approval.
//
// Payload fields that do not apply to the motion type hold the null
// sentinel of their type.
type Motion struct {
	AccountID uint64          `protobuf:"varint,1,opt,name=account_id,json=accountId,proto3" json:"account_id"`
	MotionID  uint64          `protobuf:"varint,2,opt,name=motion_id,json=motionId,proto3" json:"motion_id"`
	Type      MotionType      `protobuf:"varint,3,opt,name=type,proto3" json:"type"`
	Proposer  vault.Address   `protobuf:"bytes,4,opt,name=proposer,proto3" json:"proposer"`
	Votes     []vault.Address `protobuf:"bytes,5,rep,name=votes,proto3" json:"votes"`
	Status    MotionStatus    `protobuf:"varint,6,opt,name=status,proto3" json:"status"`
	// Transfer payload.
	Token                string        `protobuf:"bytes,7,opt,name=token,proto3" json:"token"`
	Amount               uint64        `protobuf:"varint,8,opt,name=amount,proto3" json:"amount"`
	To                   vault.Address `protobuf:"bytes,9,opt,name=to,proto3" json:"to"`
	DestinationAccountID uint64        `protobuf:"varint,10,opt,name=destination_account_id,json=destinationAccountId,proto3" json:"destination_account_id"`
	// Membership payload.
	Member vault.Address `protobuf:"bytes,11,opt,name=member,proto3" json:"member"`
	// Threshold payload.
	Threshold uint32 `protobuf:"varint,12,opt,name=threshold,proto3" json:"threshold"`
}

type motionWire Motion

func (m *motionWire) Reset()         { *m = motionWire{} }
func (m *motionWire) String() string { return proto.CompactTextString(m) }
func (*motionWire) ProtoMessage()    {}

func (m *Motion) Marshal() ([]byte, error) { return proto.Marshal((*motionWire)(m)) }
func (m *Motion) Unmarshal(bz []byte) error { return proto.Unmarshal(bz, (*motionWire)(m)) }

// Configuration is the package configuration, set at genesis.
type Configuration struct {
	// MaxMembers limits the size of every account. Zero means no limit.
	MaxMembers uint32 `protobuf:"varint,1,opt,name=max_members,json=maxMembers,proto3" json:"max_members"`
}

type configurationWire Configuration

func (m *configurationWire) Reset()         { *m = configurationWire{} }
func (m *configurationWire) String() string { return proto.CompactTextString(m) }
func (*configurationWire) ProtoMessage()    {}

func (m *Configuration) Marshal() ([]byte, error) { return proto.Marshal((*configurationWire)(m)) }
func (m *Configuration) Unmarshal(bz []byte) error {
	return proto.Unmarshal(bz, (*configurationWire)(m))
}

// CreateAccountMsg opens a new joint account. The caller does not have to
// be one of the members.
type CreateAccountMsg struct {
	Members           []vault.Address `protobuf:"bytes,1,rep,name=members,proto3" json:"members"`
	Threshold         uint32          `protobuf:"varint,2,opt,name=threshold,proto3" json:"threshold"`
	IsStatic          bool            `protobuf:"varint,3,opt,name=is_static,json=isStatic,proto3" json:"is_static"`
	MemberOnlyDeposit bool            `protobuf:"varint,4,opt,name=member_only_deposit,json=memberOnlyDeposit,proto3" json:"member_only_deposit"`
}

type createAccountMsgWire CreateAccountMsg

func (m *createAccountMsgWire) Reset()         { *m = createAccountMsgWire{} }
func (m *createAccountMsgWire) String() string { return proto.CompactTextString(m) }
func (*createAccountMsgWire) ProtoMessage()    {}

func (m *CreateAccountMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*createAccountMsgWire)(m))
}
func (m *CreateAccountMsg) Unmarshal(bz []byte) error {
	return proto.Unmarshal(bz, (*createAccountMsgWire)(m))
}

// DepositMsg credits tokens delivered by the caller to an account.
type DepositMsg struct {
	AccountID uint64 `protobuf:"varint,1,opt,name=account_id,json=accountId,proto3" json:"account_id"`
	Token     string `protobuf:"bytes,2,opt,name=token,proto3" json:"token"`
	Amount    uint64 `protobuf:"varint,3,opt,name=amount,proto3" json:"amount"`
}

type depositMsgWire DepositMsg

func (m *depositMsgWire) Reset()         { *m = depositMsgWire{} }
func (m *depositMsgWire) String() string { return proto.CompactTextString(m) }
func (*depositMsgWire) ProtoMessage()    {}

func (m *DepositMsg) Marshal() ([]byte, error) { return proto.Marshal((*depositMsgWire)(m)) }
func (m *DepositMsg) Unmarshal(bz []byte) error { return proto.Unmarshal(bz, (*depositMsgWire)(m)) }

// CreateTransferMotionMsg proposes to move funds out of an account, either
// to an external address or to another joint account.
type CreateTransferMotionMsg struct {
	AccountID            uint64        `protobuf:"varint,1,opt,name=account_id,json=accountId,proto3" json:"account_id"`
	Token                string        `protobuf:"bytes,2,opt,name=token,proto3" json:"token"`
	Amount               uint64        `protobuf:"varint,3,opt,name=amount,proto3" json:"amount"`
	To                   vault.Address `protobuf:"bytes,4,opt,name=to,proto3" json:"to,omitempty"`
	DestinationAccountID uint64        `protobuf:"varint,5,opt,name=destination_account_id,json=destinationAccountId,proto3" json:"destination_account_id"`
}

type createTransferMotionMsgWire CreateTransferMotionMsg

func (m *createTransferMotionMsgWire) Reset()         { *m = createTransferMotionMsgWire{} }
func (m *createTransferMotionMsgWire) String() string { return proto.CompactTextString(m) }
func (*createTransferMotionMsgWire) ProtoMessage()    {}

func (m *CreateTransferMotionMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*createTransferMotionMsgWire)(m))
}
func (m *CreateTransferMotionMsg) Unmarshal(bz []byte) error {
	return proto.Unmarshal(bz, (*createTransferMotionMsgWire)(m))
}

// CreateAddMemberMotionMsg proposes to add a member to an account.
type CreateAddMemberMotionMsg struct {
	AccountID uint64        `protobuf:"varint,1,opt,name=account_id,json=accountId,proto3" json:"account_id"`
	Member    vault.Address `protobuf:"bytes,2,opt,name=member,proto3" json:"member"`
}

type createAddMemberMotionMsgWire CreateAddMemberMotionMsg

func (m *createAddMemberMotionMsgWire) Reset()         { *m = createAddMemberMotionMsgWire{} }
func (m *createAddMemberMotionMsgWire) String() string { return proto.CompactTextString(m) }
func (*createAddMemberMotionMsgWire) ProtoMessage()    {}

func (m *CreateAddMemberMotionMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*createAddMemberMotionMsgWire)(m))
}
func (m *CreateAddMemberMotionMsg) Unmarshal(bz []byte) error {
	return proto.Unmarshal(bz, (*createAddMemberMotionMsgWire)(m))
}

// CreateRemoveMemberMotionMsg proposes to remove a member from an account.
type CreateRemoveMemberMotionMsg struct {
	AccountID uint64        `protobuf:"varint,1,opt,name=account_id,json=accountId,proto3" json:"account_id"`
	Member    vault.Address `protobuf:"bytes,2,opt,name=member,proto3" json:"member"`
}

type createRemoveMemberMotionMsgWire CreateRemoveMemberMotionMsg

func (m *createRemoveMemberMotionMsgWire) Reset()         { *m = createRemoveMemberMotionMsgWire{} }
func (m *createRemoveMemberMotionMsgWire) String() string { return proto.CompactTextString(m) }
func (*createRemoveMemberMotionMsgWire) ProtoMessage()    {}

func (m *CreateRemoveMemberMotionMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*createRemoveMemberMotionMsgWire)(m))
}
func (m *CreateRemoveMemberMotionMsg) Unmarshal(bz []byte) error {
	return proto.Unmarshal(bz, (*createRemoveMemberMotionMsgWire)(m))
}

// CreateChangeThresholdMotionMsg proposes a new approval threshold.
type CreateChangeThresholdMotionMsg struct {
	AccountID uint64 `protobuf:"varint,1,opt,name=account_id,json=accountId,proto3" json:"account_id"`
	Threshold uint32 `protobuf:"varint,2,opt,name=threshold,proto3" json:"threshold"`
}

type createChangeThresholdMotionMsgWire CreateChangeThresholdMotionMsg

func (m *createChangeThresholdMotionMsgWire) Reset() {
	*m = createChangeThresholdMotionMsgWire{}
}
func (m *createChangeThresholdMotionMsgWire) String() string { return proto.CompactTextString(m) }
func (*createChangeThresholdMotionMsgWire) ProtoMessage()    {}

func (m *CreateChangeThresholdMotionMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*createChangeThresholdMotionMsgWire)(m))
}
func (m *CreateChangeThresholdMotionMsg) Unmarshal(bz []byte) error {
	return proto.Unmarshal(bz, (*createChangeThresholdMotionMsgWire)(m))
}

// MotionRef addresses a single motion. It is the body of all messages
// that act on an existing motion.
type MotionRef struct {
	AccountID uint64 `protobuf:"varint,1,opt,name=account_id,json=accountId,proto3" json:"account_id"`
	MotionID  uint64 `protobuf:"varint,2,opt,name=motion_id,json=motionId,proto3" json:"motion_id"`
}

type motionRefWire MotionRef

func (m *motionRefWire) Reset()         { *m = motionRefWire{} }
func (m *motionRefWire) String() string { return proto.CompactTextString(m) }
func (*motionRefWire) ProtoMessage()    {}

func (m *MotionRef) marshal() ([]byte, error) { return proto.Marshal((*motionRefWire)(m)) }
func (m *MotionRef) unmarshal(bz []byte) error { return proto.Unmarshal(bz, (*motionRefWire)(m)) }

// VoteMotionMsg approves a motion.
type VoteMotionMsg MotionRef

func (m *VoteMotionMsg) Marshal() ([]byte, error) { return (*MotionRef)(m).marshal() }
func (m *VoteMotionMsg) Unmarshal(bz []byte) error { return (*MotionRef)(m).unmarshal(bz) }

// CancelVoteMsg withdraws an approval.
type CancelVoteMsg MotionRef

func (m *CancelVoteMsg) Marshal() ([]byte, error) { return (*MotionRef)(m).marshal() }
func (m *CancelVoteMsg) Unmarshal(bz []byte) error { return (*MotionRef)(m).unmarshal(bz) }

// CancelMotionMsg withdraws a motion. Only the proposer may do this.
type CancelMotionMsg MotionRef

func (m *CancelMotionMsg) Marshal() ([]byte, error) { return (*MotionRef)(m).marshal() }
func (m *CancelMotionMsg) Unmarshal(bz []byte) error { return (*MotionRef)(m).unmarshal(bz) }

// ExecuteMotionMsg asks for a motion with enough votes to be executed,
// for example after the threshold was lowered.
type ExecuteMotionMsg MotionRef

func (m *ExecuteMotionMsg) Marshal() ([]byte, error) { return (*MotionRef)(m).marshal() }
func (m *ExecuteMotionMsg) Unmarshal(bz []byte) error { return (*MotionRef)(m).unmarshal(bz) }
