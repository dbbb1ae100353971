package jointaccount

import (
	"fmt"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/gconf"
)

// Initializer fulfils the Initializer interface to load data from the genesis
// file
type Initializer struct{}

var _ vault.Initializer = (*Initializer)(nil)

// FromGenesis stores the package configuration found under
// conf.jointaccount and creates the accounts listed under jointaccount.
// Genesis accounts get ids in the order they are listed.
func (*Initializer) FromGenesis(opts vault.Options, db vault.KVStore) error {
	var conf Configuration
	switch err := gconf.InitConfig(db, opts, packageName, &conf); {
	case errors.ErrNotFound.Is(err):
		// Defaults apply.
	case err != nil:
		return errors.Wrap(err, "init config")
	}

	var genesis struct {
		Accounts []struct {
			Members           []vault.Address `json:"members"`
			Threshold         uint32          `json:"threshold"`
			IsStatic          bool            `json:"is_static"`
			MemberOnlyDeposit bool            `json:"member_only_deposit"`
			Balances          []Balance       `json:"balances"`
		} `json:"accounts"`
	}
	if err := opts.ReadOptions(packageName, &genesis); err != nil {
		return err
	}

	ctrl := NewController(NopPayout)
	for i, a := range genesis.Accounts {
		msg := CreateAccountMsg{
			Members:           a.Members,
			Threshold:         a.Threshold,
			IsStatic:          a.IsStatic,
			MemberOnlyDeposit: a.MemberOnlyDeposit,
		}
		if err := msg.Validate(); err != nil {
			return errors.Wrap(err, fmt.Sprintf("account #%d is invalid", i))
		}
		acct, err := ctrl.CreateAccount(db, nil, &msg, discard)
		if err != nil {
			return errors.Wrap(err, fmt.Sprintf("account #%d", i))
		}
		for _, b := range a.Balances {
			if err := ValidateToken(b.Token); err != nil {
				return errors.Wrap(err, fmt.Sprintf("account #%d balance", i))
			}
			if err := acct.Credit(b.Token, b.Amount); err != nil {
				return errors.Wrap(err, fmt.Sprintf("account #%d balance", i))
			}
		}
		if err := ctrl.accounts.Update(db, acct); err != nil {
			return err
		}
	}
	return nil
}
