package jointaccount

import (
	"encoding/hex"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/orm"
)

const (
	accountIDSequence = "id"
	indexNameMember   = "member"
)

// AccountBucket is the persistent bucket for Account objects. Accounts are
// keyed by their id and indexed by every member.
type AccountBucket struct {
	orm.Bucket
}

// NewAccountBucket returns a bucket for managing accounts.
func NewAccountBucket() AccountBucket {
	b := orm.NewBucket("acct", orm.NewSimpleObj(nil, &Account{})).
		WithMultiKeyIndex(indexNameMember, memberIndexer, false)
	return AccountBucket{Bucket: b}
}

func memberIndexer(obj orm.Object) ([][]byte, error) {
	acct, err := asAccount(obj)
	if err != nil {
		return nil, err
	}
	keys := make([][]byte, len(acct.Members))
	for i, m := range acct.Members {
		keys[i] = m.Clone()
	}
	return keys, nil
}

func asAccount(obj orm.Object) (*Account, error) {
	if obj == nil || obj.Value() == nil {
		return nil, errors.Wrap(errors.ErrNotFound, "account")
	}
	acct, ok := obj.Value().(*Account)
	if !ok {
		return nil, errors.Wrapf(errors.ErrModel, "invalid type: %T", obj.Value())
	}
	return acct, nil
}

// Create assigns the next account id and stores the account.
func (b AccountBucket) Create(db vault.KVStore, acct *Account) error {
	id, err := b.Sequence(accountIDSequence).NextID(db)
	if err != nil {
		return errors.Wrap(err, "account id")
	}
	acct.ID = id
	return b.Save(db, orm.NewSimpleObj(orm.EncodeSequence(id), acct))
}

// Update stores an existing account.
func (b AccountBucket) Update(db vault.KVStore, acct *Account) error {
	return b.Save(db, orm.NewSimpleObj(orm.EncodeSequence(acct.ID), acct))
}

// GetAccount loads an account. It fails with ErrNotFound if there is no
// account with that id.
func (b AccountBucket) GetAccount(db vault.ReadOnlyKVStore, id uint64) (*Account, error) {
	obj, err := b.Get(db, orm.EncodeSequence(id))
	if err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "account %d", id)
	}
	return asAccount(obj)
}

// Exists returns true if an account with that id was created.
func (b AccountBucket) Exists(db vault.ReadOnlyKVStore, id uint64) (bool, error) {
	return b.Has(db, orm.EncodeSequence(id))
}

// Count returns how many accounts were created.
func (b AccountBucket) Count(db vault.ReadOnlyKVStore) (uint64, error) {
	return b.Sequence(accountIDSequence).Count(db)
}

// AccountsOf returns all accounts the address is a member of, ordered by
// id.
func (b AccountBucket) AccountsOf(db vault.ReadOnlyKVStore, member vault.Address) ([]*Account, error) {
	objs, err := b.GetIndexed(db, indexNameMember, member)
	if err != nil {
		return nil, err
	}
	accts := make([]*Account, 0, len(objs))
	for _, obj := range objs {
		acct, err := asAccount(obj)
		if err != nil {
			return nil, err
		}
		accts = append(accts, acct)
	}
	return accts, nil
}

// MotionBucket is the persistent bucket for Motion objects. A motion key is
// the account id followed by the motion id, so all motions of an account
// share a prefix.
type MotionBucket struct {
	orm.Bucket
}

// NewMotionBucket returns a bucket for managing motions.
func NewMotionBucket() MotionBucket {
	return MotionBucket{
		Bucket: orm.NewBucket("motion", orm.NewSimpleObj(nil, &Motion{})),
	}
}

// motionKey is 8 bytes account id and 8 bytes motion id, big endian.
func motionKey(accountID, motionID uint64) []byte {
	return append(orm.EncodeSequence(accountID), orm.EncodeSequence(motionID)...)
}

func asMotion(obj orm.Object) (*Motion, error) {
	if obj == nil || obj.Value() == nil {
		return nil, errors.Wrap(errors.ErrNotFound, "motion")
	}
	m, ok := obj.Value().(*Motion)
	if !ok {
		return nil, errors.Wrapf(errors.ErrModel, "invalid type: %T", obj.Value())
	}
	return m, nil
}

// sequence returns the motion id counter of an account.
func (b MotionBucket) sequence(accountID uint64) orm.Sequence {
	return b.Sequence(hex.EncodeToString(orm.EncodeSequence(accountID)))
}

// Create assigns the next motion id of the account and stores the motion.
func (b MotionBucket) Create(db vault.KVStore, m *Motion) error {
	id, err := b.sequence(m.AccountID).NextID(db)
	if err != nil {
		return errors.Wrap(err, "motion id")
	}
	m.MotionID = id
	return b.Update(db, m)
}

// Update stores an existing motion.
func (b MotionBucket) Update(db vault.KVStore, m *Motion) error {
	return b.Save(db, orm.NewSimpleObj(motionKey(m.AccountID, m.MotionID), m))
}

// GetMotion loads a motion. It fails with ErrNotFound if there is no such
// motion.
func (b MotionBucket) GetMotion(db vault.ReadOnlyKVStore, accountID, motionID uint64) (*Motion, error) {
	obj, err := b.Get(db, motionKey(accountID, motionID))
	if err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "motion %d of account %d", motionID, accountID)
	}
	return asMotion(obj)
}

// Exists returns true if the motion was created.
func (b MotionBucket) Exists(db vault.ReadOnlyKVStore, accountID, motionID uint64) (bool, error) {
	return b.Has(db, motionKey(accountID, motionID))
}

// Count returns how many motions were created for the account.
func (b MotionBucket) Count(db vault.ReadOnlyKVStore, accountID uint64) (uint64, error) {
	return b.sequence(accountID).Count(db)
}

// ActiveMotions returns all active motions of the account, ordered by id.
func (b MotionBucket) ActiveMotions(db vault.ReadOnlyKVStore, accountID uint64) ([]*Motion, error) {
	objs, err := b.PrefixScan(db, orm.EncodeSequence(accountID))
	if err != nil {
		return nil, err
	}
	var res []*Motion
	for _, obj := range objs {
		m, err := asMotion(obj)
		if err != nil {
			return nil, err
		}
		if m.Active() {
			res = append(res, m)
		}
	}
	return res, nil
}
