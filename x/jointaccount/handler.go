package jointaccount

import (
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/orm"
	"github.com/tendermint/tendermint/libs/common"
)

const (
	tagAction  = "action"
	tagAccount = "account"
	tagMotion  = "motion"
)

// RegisterQuery registers account and motion buckets for querying.
func RegisterQuery(qr vault.QueryRouter) {
	NewAccountBucket().Register("accounts", qr)
	NewMotionBucket().Register("motions", qr)
}

// RegisterRoutes registers handlers for joint account message processing.
// External transfers are handed to payout once executed.
func RegisterRoutes(r vault.Registry, payout Payout) {
	ctrl := NewController(payout)
	r.Handle(pathCreateAccountMsg, CreateAccountHandler{ctrl: ctrl})
	r.Handle(pathDepositMsg, DepositHandler{ctrl: ctrl})
	motions := CreateMotionHandler{ctrl: ctrl}
	r.Handle(pathCreateTransferMotionMsg, motions)
	r.Handle(pathCreateAddMemberMotionMsg, motions)
	r.Handle(pathCreateRemoveMemberMotionMsg, motions)
	r.Handle(pathCreateChangeThresholdMotionMsg, motions)
	votes := MotionHandler{ctrl: ctrl}
	r.Handle(pathVoteMotionMsg, votes)
	r.Handle(pathCancelVoteMsg, votes)
	r.Handle(pathCancelMotionMsg, votes)
	r.Handle(pathExecuteMotionMsg, votes)
}

func caller(ctx vault.Context) (vault.Address, error) {
	addr, ok := vault.GetCaller(ctx)
	if !ok || addr.Validate() != nil {
		return nil, errors.Wrap(errors.ErrUnauthorized, "no caller")
	}
	return addr, nil
}

// getMsg returns the message of tx without validating it. Handlers that
// check the account first validate the payload afterwards, so that a
// missing account or a non member is reported before bad input.
func getMsg(tx vault.Tx) (vault.Msg, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "cannot get transaction message")
	}
	if msg == nil {
		return nil, errors.Wrap(errors.ErrMsg, "no message")
	}
	return msg, nil
}

func tags(action string, accountID uint64) []common.KVPair {
	return []common.KVPair{
		{Key: []byte(tagAction), Value: []byte(action)},
		{Key: []byte(tagAccount), Value: orm.EncodeSequence(accountID)},
	}
}

func motionTags(action string, m *Motion) []common.KVPair {
	return append(tags(action, m.AccountID),
		common.KVPair{Key: []byte(tagMotion), Value: orm.EncodeSequence(m.MotionID)})
}

// CreateAccountHandler opens joint accounts.
type CreateAccountHandler struct {
	ctrl *Controller
}

var _ vault.Handler = CreateAccountHandler{}

func (h CreateAccountHandler) Check(ctx vault.Context, db vault.KVStore, tx vault.Tx) (*vault.CheckResult, error) {
	acct, err := h.run(ctx, db, tx, h.ctrl.dryRun(), discard)
	if err != nil {
		return nil, err
	}
	return &vault.CheckResult{Data: orm.EncodeSequence(acct.ID)}, nil
}

func (h CreateAccountHandler) Deliver(ctx vault.Context, db vault.KVStore, tx vault.Tx) (*vault.DeliverResult, error) {
	res := &vault.DeliverResult{}
	acct, err := h.run(ctx, db, tx, h.ctrl, res.Emit)
	if err != nil {
		return nil, err
	}
	res.Data = orm.EncodeSequence(acct.ID)
	res.Tags = tags("create_account", acct.ID)
	return res, nil
}

func (h CreateAccountHandler) run(ctx vault.Context, db vault.KVStore, tx vault.Tx, ctrl *Controller, emit emitFunc) (*Account, error) {
	var msg CreateAccountMsg
	if err := vault.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	creator, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	return ctrl.CreateAccount(db, creator, &msg, emit)
}

// DepositHandler credits tokens delivered by the ledger layer. The caller
// is the sender of the tokens.
type DepositHandler struct {
	ctrl *Controller
}

var _ vault.Handler = DepositHandler{}

func (h DepositHandler) Check(ctx vault.Context, db vault.KVStore, tx vault.Tx) (*vault.CheckResult, error) {
	if _, err := h.run(ctx, db, tx, discard); err != nil {
		return nil, err
	}
	return &vault.CheckResult{}, nil
}

func (h DepositHandler) Deliver(ctx vault.Context, db vault.KVStore, tx vault.Tx) (*vault.DeliverResult, error) {
	res := &vault.DeliverResult{}
	acct, err := h.run(ctx, db, tx, res.Emit)
	if err != nil {
		return nil, err
	}
	res.Tags = tags("deposit", acct.ID)
	return res, nil
}

func (h DepositHandler) run(ctx vault.Context, db vault.KVStore, tx vault.Tx, emit emitFunc) (*Account, error) {
	from, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	raw, err := getMsg(tx)
	if err != nil {
		return nil, err
	}
	msg, ok := raw.(*DepositMsg)
	if !ok {
		return nil, errors.WithType(errors.ErrMsg, raw)
	}
	return h.ctrl.Deposit(db, from, msg, emit)
}

// CreateMotionHandler handles all four kinds of motion proposals.
type CreateMotionHandler struct {
	ctrl *Controller
}

var _ vault.Handler = CreateMotionHandler{}

func (h CreateMotionHandler) Check(ctx vault.Context, db vault.KVStore, tx vault.Tx) (*vault.CheckResult, error) {
	m, err := h.run(ctx, db, tx, h.ctrl.dryRun(), discard)
	if err != nil {
		return nil, err
	}
	return &vault.CheckResult{Data: orm.EncodeSequence(m.MotionID)}, nil
}

func (h CreateMotionHandler) Deliver(ctx vault.Context, db vault.KVStore, tx vault.Tx) (*vault.DeliverResult, error) {
	res := &vault.DeliverResult{}
	m, err := h.run(ctx, db, tx, h.ctrl, res.Emit)
	if err != nil {
		return nil, err
	}
	res.Data = orm.EncodeSequence(m.MotionID)
	res.Tags = motionTags("create_motion", m)
	if !m.Active() {
		vault.GetLogger(ctx).Debug("motion executed on creation", "account", m.AccountID, "motion", m.MotionID)
	}
	return res, nil
}

func (h CreateMotionHandler) run(ctx vault.Context, db vault.KVStore, tx vault.Tx, ctrl *Controller, emit emitFunc) (*Motion, error) {
	proposer, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	m, err := motionFromTx(tx, proposer)
	if err != nil {
		return nil, err
	}
	return ctrl.CreateMotion(db, m, emit)
}

// motionFromTx builds an unsaved motion from a motion proposal message.
// The payload is validated by the controller.
func motionFromTx(tx vault.Tx, proposer vault.Address) (*Motion, error) {
	msg, err := getMsg(tx)
	if err != nil {
		return nil, err
	}

	var m *Motion
	switch msg := msg.(type) {
	case *CreateTransferMotionMsg:
		m = newMotion(msg.AccountID, TransferMotion, proposer)
		m.Token = msg.Token
		m.Amount = msg.Amount
		if !isNullAddress(msg.To) {
			m.To = msg.To.Clone()
		}
		m.DestinationAccountID = msg.DestinationAccountID
	case *CreateAddMemberMotionMsg:
		m = newMotion(msg.AccountID, AddMemberMotion, proposer)
		m.Member = msg.Member.Clone()
	case *CreateRemoveMemberMotionMsg:
		m = newMotion(msg.AccountID, RemoveMemberMotion, proposer)
		m.Member = msg.Member.Clone()
	case *CreateChangeThresholdMotionMsg:
		m = newMotion(msg.AccountID, ChangeThresholdMotion, proposer)
		m.Threshold = msg.Threshold
	default:
		return nil, errors.WithType(errors.ErrMsg, msg)
	}
	return m, nil
}

// MotionHandler handles votes, vote and motion cancellations and explicit
// execution requests.
type MotionHandler struct {
	ctrl *Controller
}

var _ vault.Handler = MotionHandler{}

func (h MotionHandler) Check(ctx vault.Context, db vault.KVStore, tx vault.Tx) (*vault.CheckResult, error) {
	if _, _, err := h.run(ctx, db, tx, h.ctrl.dryRun(), discard); err != nil {
		return nil, err
	}
	return &vault.CheckResult{}, nil
}

func (h MotionHandler) Deliver(ctx vault.Context, db vault.KVStore, tx vault.Tx) (*vault.DeliverResult, error) {
	res := &vault.DeliverResult{}
	action, m, err := h.run(ctx, db, tx, h.ctrl, res.Emit)
	if err != nil {
		return nil, err
	}
	res.Tags = motionTags(action, m)
	if m.Status == MotionStatusExecuted && action != "cancel_vote" {
		vault.GetLogger(ctx).Debug("motion executed", "account", m.AccountID, "motion", m.MotionID)
	}
	return res, nil
}

func (h MotionHandler) run(ctx vault.Context, db vault.KVStore, tx vault.Tx, ctrl *Controller, emit emitFunc) (string, *Motion, error) {
	addr, err := caller(ctx)
	if err != nil {
		return "", nil, err
	}
	msg, err := getMsg(tx)
	if err != nil {
		return "", nil, err
	}

	var m *Motion
	var action string
	switch msg := msg.(type) {
	case *VoteMotionMsg:
		action = "vote_motion"
		m, err = ctrl.Vote(db, addr, msg.AccountID, msg.MotionID, emit)
	case *CancelVoteMsg:
		action = "cancel_vote"
		m, err = ctrl.CancelVote(db, addr, msg.AccountID, msg.MotionID, emit)
	case *CancelMotionMsg:
		action = "cancel_motion"
		m, err = ctrl.CancelMotion(db, addr, msg.AccountID, msg.MotionID, emit)
	case *ExecuteMotionMsg:
		action = "execute_motion"
		m, err = ctrl.ExecuteMotion(db, addr, msg.AccountID, msg.MotionID, emit)
	default:
		return "", nil, errors.WithType(errors.ErrMsg, msg)
	}
	return action, m, err
}
