package jointaccount

import (
	"math"
	"regexp"
	"sort"
	"strconv"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/orm"
)

// Null sentinels fill the payload fields a motion type does not use.
const (
	NullID        uint64 = math.MaxUint64
	NullThreshold uint32 = math.MaxUint32
	NullToken            = ""
)

var isToken = regexp.MustCompile(`^[A-Z][A-Z0-9]{2,5}$`).MatchString

// ValidateToken returns an error if the token is not a valid ticker.
func ValidateToken(token string) error {
	if !isToken(token) {
		return errors.Wrapf(errors.ErrInput, "invalid token %q", token)
	}
	return nil
}

// isNullAddress is true for an unset address as well as the NullAddress
// sentinel.
func isNullAddress(a vault.Address) bool {
	return len(a) == 0 || a.IsNull()
}

// MotionType tells what a motion changes once executed.
type MotionType int32

const (
	TransferMotion        MotionType = 0
	AddMemberMotion       MotionType = 1
	RemoveMemberMotion    MotionType = 2
	ChangeThresholdMotion MotionType = 3
)

var motionTypeNames = map[MotionType]string{
	TransferMotion:        "transfer",
	AddMemberMotion:       "add_member",
	RemoveMemberMotion:    "remove_member",
	ChangeThresholdMotion: "change_threshold",
}

func (t MotionType) String() string {
	if n, ok := motionTypeNames[t]; ok {
		return n
	}
	return "MotionType(" + strconv.Itoa(int(t)) + ")"
}

// Validate returns an error for unknown types.
func (t MotionType) Validate() error {
	if _, ok := motionTypeNames[t]; !ok {
		return errors.Wrapf(errors.ErrInput, "unknown motion type %d", t)
	}
	return nil
}

// MembershipChange is true for the motion types a static account rejects.
func (t MotionType) MembershipChange() bool {
	return t != TransferMotion
}

// MotionStatus is the lifecycle state of a motion. Executed and Cancelled
// are terminal.
type MotionStatus int32

const (
	MotionStatusInvalid   MotionStatus = 0
	MotionStatusActive    MotionStatus = 1
	MotionStatusExecuted  MotionStatus = 2
	MotionStatusCancelled MotionStatus = 3
)

func (s MotionStatus) String() string {
	switch s {
	case MotionStatusActive:
		return "active"
	case MotionStatusExecuted:
		return "executed"
	case MotionStatusCancelled:
		return "cancelled"
	default:
		return "invalid"
	}
}

var _ orm.CloneableData = (*Account)(nil)

// Validate ensures the account holds its invariants.
func (m *Account) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Members", validateMembers(m.Members))
	if n := uint32(len(m.Members)); m.Threshold == 0 || m.Threshold > n {
		errs = errors.AppendField(errs, "Threshold",
			errors.Wrapf(errors.ErrInput, "threshold %d out of range [1, %d]", m.Threshold, n))
	}
	var prev string
	for i, b := range m.Balances {
		switch {
		case b == nil:
			errs = errors.AppendField(errs, "Balances", errors.Wrap(errors.ErrEmpty, "nil balance"))
		case ValidateToken(b.Token) != nil:
			errs = errors.AppendField(errs, "Balances", ValidateToken(b.Token))
		case b.Amount == 0:
			errs = errors.AppendField(errs, "Balances", errors.Wrapf(errors.ErrAmount, "zero %s balance", b.Token))
		case i > 0 && b.Token <= prev:
			errs = errors.AppendField(errs, "Balances", errors.Wrap(errors.ErrInput, "balances not sorted"))
		default:
			prev = b.Token
		}
	}
	return errs
}

// validateMembers requires a non empty set of valid, unique addresses.
func validateMembers(members []vault.Address) error {
	if len(members) == 0 {
		return errors.Wrap(errors.ErrInput, "no members")
	}
	seen := make(map[string]struct{}, len(members))
	for _, a := range members {
		if err := a.Validate(); err != nil {
			return err
		}
		if a.IsNull() {
			return errors.Wrap(errors.ErrInput, "null address cannot be a member")
		}
		k := string(a)
		if _, ok := seen[k]; ok {
			return errors.Wrapf(errors.ErrInput, "duplicate member %s", a)
		}
		seen[k] = struct{}{}
	}
	return nil
}

// Copy returns a deep copy of the account.
func (m *Account) Copy() orm.CloneableData {
	balances := make([]*Balance, len(m.Balances))
	for i, b := range m.Balances {
		cpy := *b
		balances[i] = &cpy
	}
	return &Account{
		ID:                m.ID,
		Members:           cloneAddresses(m.Members),
		Threshold:         m.Threshold,
		IsStatic:          m.IsStatic,
		MemberOnlyDeposit: m.MemberOnlyDeposit,
		Balances:          balances,
	}
}

// IsMember returns true if the address is a current member.
func (m *Account) IsMember(a vault.Address) bool {
	return indexOf(m.Members, a) >= 0
}

// BalanceOf returns the amount of token held, zero if none.
func (m *Account) BalanceOf(token string) uint64 {
	i, ok := m.findBalance(token)
	if !ok {
		return 0
	}
	return m.Balances[i].Amount
}

func (m *Account) findBalance(token string) (int, bool) {
	i := sort.Search(len(m.Balances), func(i int) bool {
		return m.Balances[i].Token >= token
	})
	return i, i < len(m.Balances) && m.Balances[i].Token == token
}

// Credit adds amount to the token balance.
func (m *Account) Credit(token string, amount uint64) error {
	if amount == 0 {
		return errors.Wrap(errors.ErrAmount, "zero amount")
	}
	i, ok := m.findBalance(token)
	if ok {
		b := m.Balances[i]
		if b.Amount+amount < b.Amount {
			return errors.Wrapf(errors.ErrOverflow, "%s balance", token)
		}
		b.Amount += amount
		return nil
	}
	m.Balances = append(m.Balances, nil)
	copy(m.Balances[i+1:], m.Balances[i:])
	m.Balances[i] = &Balance{Token: token, Amount: amount}
	return nil
}

// Debit subtracts amount from the token balance. An emptied balance is
// dropped.
func (m *Account) Debit(token string, amount uint64) error {
	i, ok := m.findBalance(token)
	if !ok || m.Balances[i].Amount < amount {
		return errors.Wrapf(errors.ErrInsufficientFunds, "%s balance %d, need %d",
			token, m.BalanceOf(token), amount)
	}
	m.Balances[i].Amount -= amount
	if m.Balances[i].Amount == 0 {
		m.Balances = append(m.Balances[:i], m.Balances[i+1:]...)
	}
	return nil
}

func (m *Account) addMember(a vault.Address) error {
	if m.IsMember(a) {
		return errors.Wrapf(errors.ErrDuplicate, "%s is a member", a)
	}
	m.Members = append(m.Members, a.Clone())
	return nil
}

func (m *Account) removeMember(a vault.Address) error {
	i := indexOf(m.Members, a)
	if i < 0 {
		return errors.Wrapf(errors.ErrState, "%s is not a member", a)
	}
	m.Members = append(m.Members[:i], m.Members[i+1:]...)
	return nil
}

var _ orm.CloneableData = (*Motion)(nil)

// Validate checks the motion fields and that the payload matches the type.
func (m *Motion) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Type", m.Type.Validate())
	errs = errors.AppendField(errs, "Proposer", m.Proposer.Validate())
	switch m.Status {
	case MotionStatusActive, MotionStatusExecuted, MotionStatusCancelled:
	default:
		errs = errors.AppendField(errs, "Status", errors.Wrapf(errors.ErrState, "status %d", m.Status))
	}
	seen := make(map[string]struct{}, len(m.Votes))
	for _, v := range m.Votes {
		if _, ok := seen[string(v)]; ok {
			errs = errors.AppendField(errs, "Votes", errors.Wrapf(errors.ErrDuplicate, "vote of %s", v))
		}
		seen[string(v)] = struct{}{}
	}
	return errors.Append(errs, m.validatePayload())
}

func (m *Motion) validatePayload() error {
	var errs error
	transfer := m.Type == TransferMotion
	membership := m.Type == AddMemberMotion || m.Type == RemoveMemberMotion
	threshold := m.Type == ChangeThresholdMotion

	if transfer {
		errs = errors.AppendField(errs, "Token", ValidateToken(m.Token))
		if m.Amount == 0 || m.Amount == NullID {
			errs = errors.AppendField(errs, "Amount", errors.Wrapf(errors.ErrInput, "invalid amount %d", m.Amount))
		}
		if isNullAddress(m.To) == (m.DestinationAccountID == NullID) {
			errs = errors.AppendField(errs, "To", errors.Wrap(errors.ErrInput, "exactly one destination required"))
		} else if !isNullAddress(m.To) {
			errs = errors.AppendField(errs, "To", m.To.Validate())
		}
	} else {
		if m.Token != NullToken || m.Amount != NullID || !isNullAddress(m.To) || m.DestinationAccountID != NullID {
			errs = errors.AppendField(errs, "Token", errors.Wrap(errors.ErrInput, "transfer payload on a non transfer motion"))
		}
	}

	if membership {
		if err := m.Member.Validate(); err != nil {
			errs = errors.AppendField(errs, "Member", err)
		} else if m.Member.IsNull() {
			errs = errors.AppendField(errs, "Member", errors.Wrap(errors.ErrInput, "null member"))
		}
	} else if !isNullAddress(m.Member) {
		errs = errors.AppendField(errs, "Member", errors.Wrap(errors.ErrInput, "member on a non membership motion"))
	}

	if threshold {
		if m.Threshold == 0 || m.Threshold == NullThreshold {
			errs = errors.AppendField(errs, "Threshold", errors.Wrap(errors.ErrInput, "invalid threshold"))
		}
	} else if m.Threshold != NullThreshold {
		errs = errors.AppendField(errs, "Threshold", errors.Wrap(errors.ErrInput, "threshold on a non threshold motion"))
	}
	return errs
}

// Copy returns a deep copy of the motion.
func (m *Motion) Copy() orm.CloneableData {
	cpy := *m
	cpy.Proposer = m.Proposer.Clone()
	cpy.Votes = cloneAddresses(m.Votes)
	cpy.To = m.To.Clone()
	cpy.Member = m.Member.Clone()
	return &cpy
}

// Active is true until the motion was executed or cancelled.
func (m *Motion) Active() bool {
	return m.Status == MotionStatusActive
}

// HasVoted returns true if the address approved this motion.
func (m *Motion) HasVoted(a vault.Address) bool {
	return indexOf(m.Votes, a) >= 0
}

func (m *Motion) addVote(a vault.Address) error {
	if m.HasVoted(a) {
		return errors.Wrapf(errors.ErrDuplicate, "%s already voted", a)
	}
	m.Votes = append(m.Votes, a.Clone())
	return nil
}

func (m *Motion) removeVote(a vault.Address) bool {
	i := indexOf(m.Votes, a)
	if i < 0 {
		return false
	}
	m.Votes = append(m.Votes[:i], m.Votes[i+1:]...)
	return true
}

// Recipient is the address a motion points at: the external recipient of
// a transfer or the member of a membership change. NullAddress otherwise.
func (m *Motion) Recipient() vault.Address {
	switch {
	case m.Type == TransferMotion && !isNullAddress(m.To):
		return m.To
	case m.Type == AddMemberMotion, m.Type == RemoveMemberMotion:
		return m.Member
	}
	return vault.NullAddress
}

// newMotion returns an active motion with all payload fields set to null.
func newMotion(accountID uint64, t MotionType, proposer vault.Address) *Motion {
	return &Motion{
		AccountID:            accountID,
		Type:                 t,
		Proposer:             proposer.Clone(),
		Status:               MotionStatusActive,
		Token:                NullToken,
		Amount:               NullID,
		To:                   vault.NullAddress.Clone(),
		DestinationAccountID: NullID,
		Member:               vault.NullAddress.Clone(),
		Threshold:            NullThreshold,
	}
}

var _ orm.CloneableData = (*Configuration)(nil)

// Validate accepts any limit, zero disables it.
func (c *Configuration) Validate() error {
	return nil
}

// Copy returns a copy of the configuration.
func (c *Configuration) Copy() orm.CloneableData {
	cpy := *c
	return &cpy
}

func indexOf(list []vault.Address, a vault.Address) int {
	for i, x := range list {
		if x.Equals(a) {
			return i
		}
	}
	return -1
}

func cloneAddresses(list []vault.Address) []vault.Address {
	if list == nil {
		return nil
	}
	out := make([]vault.Address, len(list))
	for i, a := range list {
		out[i] = a.Clone()
	}
	return out
}
