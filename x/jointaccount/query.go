package jointaccount

import (
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
)

// Querier answers read only questions about accounts and motions. Field
// accessors fail with ErrNotFound for a missing account or motion, the
// boolean questions answer false instead.
type Querier struct {
	db       vault.ReadOnlyKVStore
	accounts AccountBucket
	motions  MotionBucket
}

// NewQuerier returns a querier reading from db.
func NewQuerier(db vault.ReadOnlyKVStore) *Querier {
	return &Querier{
		db:       db,
		accounts: NewAccountBucket(),
		motions:  NewMotionBucket(),
	}
}

// AccountExists returns true if the account was created.
func (q *Querier) AccountExists(accountID uint64) (bool, error) {
	return q.accounts.Exists(q.db, accountID)
}

// Account returns the whole account record.
func (q *Querier) Account(accountID uint64) (*Account, error) {
	return q.accounts.GetAccount(q.db, accountID)
}

func (q *Querier) IsStatic(accountID uint64) (bool, error) {
	acct, err := q.Account(accountID)
	if err != nil {
		return false, err
	}
	return acct.IsStatic, nil
}

func (q *Querier) IsMemberOnlyDeposit(accountID uint64) (bool, error) {
	acct, err := q.Account(accountID)
	if err != nil {
		return false, err
	}
	return acct.MemberOnlyDeposit, nil
}

// GetMembers returns the current members, in the order they joined.
func (q *Querier) GetMembers(accountID uint64) ([]vault.Address, error) {
	acct, err := q.Account(accountID)
	if err != nil {
		return nil, err
	}
	return acct.Members, nil
}

func (q *Querier) ApprovalThreshold(accountID uint64) (uint32, error) {
	acct, err := q.Account(accountID)
	if err != nil {
		return 0, err
	}
	return acct.Threshold, nil
}

func (q *Querier) BalanceOf(accountID uint64, token string) (uint64, error) {
	acct, err := q.Account(accountID)
	if err != nil {
		return 0, err
	}
	return acct.BalanceOf(token), nil
}

// IsMember is false for a missing account.
func (q *Querier) IsMember(accountID uint64, addr vault.Address) (bool, error) {
	acct, err := q.Account(accountID)
	switch {
	case errors.ErrNotFound.Is(err):
		return false, nil
	case err != nil:
		return false, err
	}
	return acct.IsMember(addr), nil
}

// AccountsOf returns the accounts the address is a member of.
func (q *Querier) AccountsOf(addr vault.Address) ([]*Account, error) {
	return q.accounts.AccountsOf(q.db, addr)
}

// AccountCount returns how many accounts exist. Ids are 0 to count-1.
func (q *Querier) AccountCount() (uint64, error) {
	return q.accounts.Count(q.db)
}

func (q *Querier) MotionExists(accountID, motionID uint64) (bool, error) {
	return q.motions.Exists(q.db, accountID, motionID)
}

// MotionCount returns how many motions the account has. Ids are 0 to
// count-1.
func (q *Querier) MotionCount(accountID uint64) (uint64, error) {
	return q.motions.Count(q.db, accountID)
}

// Motion returns the whole motion record.
func (q *Querier) Motion(accountID, motionID uint64) (*Motion, error) {
	return q.motions.GetMotion(q.db, accountID, motionID)
}

func (q *Querier) MotionType(accountID, motionID uint64) (MotionType, error) {
	m, err := q.Motion(accountID, motionID)
	if err != nil {
		return 0, err
	}
	return m.Type, nil
}

// TokenID is NullToken for non transfer motions.
func (q *Querier) TokenID(accountID, motionID uint64) (string, error) {
	m, err := q.Motion(accountID, motionID)
	if err != nil {
		return NullToken, err
	}
	return m.Token, nil
}

// TransferAmount is NullID for non transfer motions.
func (q *Querier) TransferAmount(accountID, motionID uint64) (uint64, error) {
	m, err := q.Motion(accountID, motionID)
	if err != nil {
		return NullID, err
	}
	return m.Amount, nil
}

// To returns the external recipient of a transfer or the member of a
// membership motion, NullAddress otherwise.
func (q *Querier) To(accountID, motionID uint64) (vault.Address, error) {
	m, err := q.Motion(accountID, motionID)
	if err != nil {
		return nil, err
	}
	return m.Recipient(), nil
}

// DestinationAccount is NullID unless the motion is an internal transfer.
func (q *Querier) DestinationAccount(accountID, motionID uint64) (uint64, error) {
	m, err := q.Motion(accountID, motionID)
	if err != nil {
		return NullID, err
	}
	return m.DestinationAccountID, nil
}

// Threshold is NullThreshold unless the motion changes the threshold.
func (q *Querier) Threshold(accountID, motionID uint64) (uint32, error) {
	m, err := q.Motion(accountID, motionID)
	if err != nil {
		return NullThreshold, err
	}
	return m.Threshold, nil
}

func (q *Querier) Proposer(accountID, motionID uint64) (vault.Address, error) {
	m, err := q.Motion(accountID, motionID)
	if err != nil {
		return nil, err
	}
	return m.Proposer, nil
}

func (q *Querier) VoteCount(accountID, motionID uint64) (int, error) {
	m, err := q.Motion(accountID, motionID)
	if err != nil {
		return 0, err
	}
	return len(m.Votes), nil
}

func (q *Querier) Active(accountID, motionID uint64) (bool, error) {
	m, err := q.Motion(accountID, motionID)
	if err != nil {
		return false, err
	}
	return m.Active(), nil
}

// Voted is false for a missing motion.
func (q *Querier) Voted(accountID, motionID uint64, addr vault.Address) (bool, error) {
	m, err := q.Motion(accountID, motionID)
	switch {
	case errors.ErrNotFound.Is(err):
		return false, nil
	case err != nil:
		return false, err
	}
	return m.HasVoted(addr), nil
}
