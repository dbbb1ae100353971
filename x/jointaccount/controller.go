package jointaccount

import (
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/gconf"
)

const packageName = "jointaccount"

// Payout hands tokens leaving a joint account to the ledger layer, which
// delivers them to an external address. Returning an error aborts the
// whole call.
type Payout func(token string, amount uint64, to vault.Address) error

// NopPayout accepts every payout. Use it when the ledger layer settles
// external transfers on its own, from the TransferExecuted events.
func NopPayout(string, uint64, vault.Address) error {
	return nil
}

// emitFunc collects the events raised by an operation.
type emitFunc func(...vault.Event)

func discard(...vault.Event) {}

// Controller implements all state transitions of joint accounts and their
// motions. Every method works on the store it is given. Callers must run
// it on a cache and discard the cache when an error is returned, as
// failures may leave partial writes behind.
type Controller struct {
	accounts AccountBucket
	motions  MotionBucket
	payout   Payout
}

// NewController returns a controller that sends external transfers to
// payout.
func NewController(payout Payout) *Controller {
	if payout == nil {
		payout = NopPayout
	}
	return &Controller{
		accounts: NewAccountBucket(),
		motions:  NewMotionBucket(),
		payout:   payout,
	}
}

// dryRun returns a controller that does not pay out, for checks.
func (c *Controller) dryRun() *Controller {
	cpy := *c
	cpy.payout = NopPayout
	return &cpy
}

// config returns the package configuration, or the default one if none
// was set at genesis.
func (c *Controller) config(db vault.ReadOnlyKVStore) (*Configuration, error) {
	var conf Configuration
	err := gconf.Load(db, packageName, &conf)
	switch {
	case err == nil:
		return &conf, nil
	case errors.ErrNotFound.Is(err):
		return &Configuration{}, nil
	default:
		return nil, errors.Wrap(err, "load configuration")
	}
}

// CreateAccount stores a new account and returns it with its id set.
func (c *Controller) CreateAccount(db vault.KVStore, creator vault.Address, msg *CreateAccountMsg, emit emitFunc) (*Account, error) {
	conf, err := c.config(db)
	if err != nil {
		return nil, err
	}
	if conf.MaxMembers > 0 && uint32(len(msg.Members)) > conf.MaxMembers {
		return nil, errors.Wrapf(errors.ErrInput, "%d members, at most %d allowed", len(msg.Members), conf.MaxMembers)
	}
	acct := &Account{
		Members:           cloneAddresses(msg.Members),
		Threshold:         msg.Threshold,
		IsStatic:          msg.IsStatic,
		MemberOnlyDeposit: msg.MemberOnlyDeposit,
	}
	if err := c.accounts.Create(db, acct); err != nil {
		return nil, errors.Wrap(err, "cannot store account")
	}
	emit(AccountCreated{AccountID: acct.ID, Creator: creator})
	return acct, nil
}

// Deposit credits tokens sent by from to the account. A rejected deposit
// must be refunded by the ledger layer.
func (c *Controller) Deposit(db vault.KVStore, from vault.Address, msg *DepositMsg, emit emitFunc) (*Account, error) {
	acct, err := c.accounts.GetAccount(db, msg.AccountID)
	if err != nil {
		return nil, err
	}
	if acct.MemberOnlyDeposit && !acct.IsMember(from) {
		return nil, errors.Wrapf(errors.ErrUnauthorized, "account %d accepts deposits from members only", acct.ID)
	}
	if err := msg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid message")
	}
	if err := acct.Credit(msg.Token, msg.Amount); err != nil {
		return nil, err
	}
	if err := c.accounts.Update(db, acct); err != nil {
		return nil, errors.Wrap(err, "cannot store account")
	}
	emit(Deposited{AccountID: acct.ID, Token: msg.Token, From: from, Amount: msg.Amount})
	return acct, nil
}

// CreateMotion validates and stores a new motion on behalf of the
// proposer. The proposer approves it right away, which executes the motion
// if the account threshold is one.
//
// The motion payload must be set, its id, votes and status are assigned
// here.
func (c *Controller) CreateMotion(db vault.KVStore, m *Motion, emit emitFunc) (*Motion, error) {
	acct, err := c.accounts.GetAccount(db, m.AccountID)
	if err != nil {
		return nil, err
	}
	if !acct.IsMember(m.Proposer) {
		return nil, errors.Wrapf(errors.ErrUnauthorized, "%s is not a member of account %d", m.Proposer, acct.ID)
	}
	if m.Type.MembershipChange() && acct.IsStatic {
		return nil, errors.Wrapf(errors.ErrState, "account %d is static", acct.ID)
	}
	if err := m.validatePayload(); err != nil {
		return nil, errors.Wrap(err, "invalid motion")
	}
	if err := c.creationPreconditions(db, acct, m); err != nil {
		return nil, err
	}
	m.Status = MotionStatusActive
	m.Votes = []vault.Address{m.Proposer.Clone()}
	if err := c.motions.Create(db, m); err != nil {
		return nil, errors.Wrap(err, "cannot store motion")
	}
	emit(newMotionCreated(m), Voted{AccountID: m.AccountID, MotionID: m.MotionID, Voter: m.Proposer, Vote: true})
	if err := c.tryExecute(db, acct, m, emit); err != nil {
		return nil, err
	}
	return m, nil
}

// Vote records the approval of a member and executes the motion once it
// has enough votes.
func (c *Controller) Vote(db vault.KVStore, voter vault.Address, accountID, motionID uint64, emit emitFunc) (*Motion, error) {
	acct, m, err := c.loadActive(db, accountID, motionID)
	if err != nil {
		return nil, err
	}
	if !acct.IsMember(voter) {
		return nil, errors.Wrapf(errors.ErrUnauthorized, "%s is not a member of account %d", voter, accountID)
	}
	if err := m.addVote(voter); err != nil {
		return nil, err
	}
	if err := c.motions.Update(db, m); err != nil {
		return nil, errors.Wrap(err, "cannot store motion")
	}
	emit(Voted{AccountID: accountID, MotionID: motionID, Voter: voter, Vote: true})
	if err := c.tryExecute(db, acct, m, emit); err != nil {
		return nil, err
	}
	return m, nil
}

// CancelVote withdraws an approval. It never executes the motion.
func (c *Controller) CancelVote(db vault.KVStore, voter vault.Address, accountID, motionID uint64, emit emitFunc) (*Motion, error) {
	_, m, err := c.loadActive(db, accountID, motionID)
	if err != nil {
		return nil, err
	}
	if !m.removeVote(voter) {
		return nil, errors.Wrapf(errors.ErrUnauthorized, "%s did not vote", voter)
	}
	if err := c.motions.Update(db, m); err != nil {
		return nil, errors.Wrap(err, "cannot store motion")
	}
	emit(Voted{AccountID: accountID, MotionID: motionID, Voter: voter, Vote: false})
	return m, nil
}

// CancelMotion withdraws an active motion. Only its proposer may do so.
func (c *Controller) CancelMotion(db vault.KVStore, caller vault.Address, accountID, motionID uint64, emit emitFunc) (*Motion, error) {
	_, m, err := c.loadActive(db, accountID, motionID)
	if err != nil {
		return nil, err
	}
	if !m.Proposer.Equals(caller) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "only the proposer can cancel a motion")
	}
	m.Status = MotionStatusCancelled
	if err := c.motions.Update(db, m); err != nil {
		return nil, errors.Wrap(err, "cannot store motion")
	}
	emit(MotionCancelled{AccountID: accountID, MotionID: motionID})
	return m, nil
}

// ExecuteMotion executes an active motion that already has enough votes.
// This is needed when the threshold was lowered after the last vote.
func (c *Controller) ExecuteMotion(db vault.KVStore, caller vault.Address, accountID, motionID uint64, emit emitFunc) (*Motion, error) {
	acct, m, err := c.loadActive(db, accountID, motionID)
	if err != nil {
		return nil, err
	}
	if !acct.IsMember(caller) {
		return nil, errors.Wrapf(errors.ErrUnauthorized, "%s is not a member of account %d", caller, accountID)
	}
	if uint32(len(m.Votes)) < acct.Threshold {
		return nil, errors.Wrapf(errors.ErrState, "%d of %d votes", len(m.Votes), acct.Threshold)
	}
	if err := c.tryExecute(db, acct, m, emit); err != nil {
		return nil, err
	}
	return m, nil
}

// loadActive returns an active motion with its account.
func (c *Controller) loadActive(db vault.ReadOnlyKVStore, accountID, motionID uint64) (*Account, *Motion, error) {
	m, err := c.motions.GetMotion(db, accountID, motionID)
	if err != nil {
		return nil, nil, err
	}
	if !m.Active() {
		return nil, nil, errors.Wrapf(errors.ErrState, "motion is %s", m.Status)
	}
	acct, err := c.accounts.GetAccount(db, accountID)
	if err != nil {
		return nil, nil, errors.Wrap(err, "motion account")
	}
	return acct, m, nil
}

// tryExecute applies the motion if it has enough votes. All preconditions
// are checked again, as the state may have changed since the motion was
// created. A failing check fails the whole call.
func (c *Controller) tryExecute(db vault.KVStore, acct *Account, m *Motion, emit emitFunc) error {
	if uint32(len(m.Votes)) < acct.Threshold {
		return nil
	}
	if err := c.executionPreconditions(db, acct, m); err != nil {
		return errors.Wrapf(err, "cannot execute motion %d", m.MotionID)
	}
	if err := c.apply(db, acct, m, emit); err != nil {
		return errors.Wrapf(err, "cannot execute motion %d", m.MotionID)
	}
	m.Status = MotionStatusExecuted
	if err := c.motions.Update(db, m); err != nil {
		return errors.Wrap(err, "cannot store motion")
	}
	if err := c.accounts.Update(db, acct); err != nil {
		return errors.Wrap(err, "cannot store account")
	}
	return nil
}

// apply changes acct according to the motion. The caller stores acct.
func (c *Controller) apply(db vault.KVStore, acct *Account, m *Motion, emit emitFunc) error {
	switch m.Type {
	case TransferMotion:
		if err := acct.Debit(m.Token, m.Amount); err != nil {
			return err
		}
		if m.DestinationAccountID != NullID {
			dst, err := c.accounts.GetAccount(db, m.DestinationAccountID)
			if err != nil {
				return err
			}
			if err := dst.Credit(m.Token, m.Amount); err != nil {
				return err
			}
			if err := c.accounts.Update(db, dst); err != nil {
				return errors.Wrap(err, "cannot store destination account")
			}
		} else if err := c.payout(m.Token, m.Amount, m.To); err != nil {
			return errors.Wrap(err, "payout")
		}
		emit(TransferExecuted{
			AccountID:          m.AccountID,
			MotionID:           m.MotionID,
			Token:              m.Token,
			To:                 m.To,
			DestinationAccount: m.DestinationAccountID,
			Amount:             m.Amount,
		})
	case AddMemberMotion:
		if err := acct.addMember(m.Member); err != nil {
			return err
		}
		emit(MemberAdded{AccountID: m.AccountID, MotionID: m.MotionID, Member: m.Member})
	case RemoveMemberMotion:
		if err := acct.removeMember(m.Member); err != nil {
			return err
		}
		if err := c.purgeVotes(db, m, m.Member); err != nil {
			return err
		}
		emit(MemberRemoved{AccountID: m.AccountID, MotionID: m.MotionID, Member: m.Member})
	case ChangeThresholdMotion:
		acct.Threshold = m.Threshold
		emit(ThresholdChanged{AccountID: m.AccountID, MotionID: m.MotionID, Threshold: m.Threshold})
	default:
		return errors.Wrapf(errors.ErrHuman, "unknown motion type %d", m.Type)
	}
	return nil
}

// purgeVotes drops the votes of a removed member from all other active
// motions of the account.
func (c *Controller) purgeVotes(db vault.KVStore, executed *Motion, member vault.Address) error {
	active, err := c.motions.ActiveMotions(db, executed.AccountID)
	if err != nil {
		return errors.Wrap(err, "active motions")
	}
	for _, m := range active {
		if m.MotionID == executed.MotionID || !m.removeVote(member) {
			continue
		}
		if err := c.motions.Update(db, m); err != nil {
			return errors.Wrap(err, "cannot store motion")
		}
	}
	return nil
}

// phase tells at which point of a motion life the preconditions are
// checked. Some violations are reported differently at creation, where
// they are bad input, than at execution, where the state has changed.
type phase int

const (
	creation phase = iota
	execution
)

func (p phase) pick(atCreation, atExecution *errors.Error) *errors.Error {
	if p == creation {
		return atCreation
	}
	return atExecution
}

// creationPreconditions is checked before a motion is stored, once the
// proposer is known to be a member.
func (c *Controller) creationPreconditions(db vault.ReadOnlyKVStore, acct *Account, m *Motion) error {
	if m.Type == TransferMotion && m.DestinationAccountID == acct.ID {
		return errors.Wrap(errors.ErrInput, "destination is the source account")
	}
	return c.checkPreconditions(db, acct, m, creation)
}

// executionPreconditions is checked right before a motion is applied.
func (c *Controller) executionPreconditions(db vault.ReadOnlyKVStore, acct *Account, m *Motion) error {
	return c.checkPreconditions(db, acct, m, execution)
}

func (c *Controller) checkPreconditions(db vault.ReadOnlyKVStore, acct *Account, m *Motion, p phase) error {
	if m.Type.MembershipChange() && acct.IsStatic {
		return errors.Wrapf(errors.ErrState, "account %d is static", acct.ID)
	}

	switch m.Type {
	case TransferMotion:
		if have := acct.BalanceOf(m.Token); have < m.Amount {
			return errors.Wrapf(errors.ErrInsufficientFunds, "%s balance %d, need %d", m.Token, have, m.Amount)
		}
		if m.DestinationAccountID == NullID {
			return nil
		}
		dst, err := c.accounts.GetAccount(db, m.DestinationAccountID)
		if err != nil {
			return errors.Wrap(err, "destination account")
		}
		if dst.MemberOnlyDeposit && !dst.IsMember(m.Proposer) {
			return errors.Wrapf(errors.ErrUnauthorized, "proposer is not a member of destination account %d", dst.ID)
		}
	case AddMemberMotion:
		if acct.IsMember(m.Member) {
			return errors.Wrapf(errors.ErrDuplicate, "%s is a member", m.Member)
		}
		conf, err := c.config(db)
		if err != nil {
			return err
		}
		if conf.MaxMembers > 0 && uint32(len(acct.Members)) >= conf.MaxMembers {
			return errors.Wrapf(errors.ErrState, "account has the maximum of %d members", conf.MaxMembers)
		}
	case RemoveMemberMotion:
		if !acct.IsMember(m.Member) {
			return errors.Wrapf(p.pick(errors.ErrNotFound, errors.ErrState), "%s is not a member", m.Member)
		}
		if p == execution && uint32(len(acct.Members))-1 < acct.Threshold {
			return errors.Wrapf(errors.ErrState, "%d members left, threshold is %d", len(acct.Members)-1, acct.Threshold)
		}
	case ChangeThresholdMotion:
		if n := uint32(len(acct.Members)); m.Threshold == 0 || m.Threshold > n {
			return errors.Wrapf(p.pick(errors.ErrInput, errors.ErrState), "threshold %d out of range [1, %d]", m.Threshold, n)
		}
	default:
		return errors.Wrapf(errors.ErrHuman, "unknown motion type %d", m.Type)
	}
	return nil
}
