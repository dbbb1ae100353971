package main

import (
	"context"
	"encoding/json"
	"io"
	"io/ioutil"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/app"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/x/jointaccount"
	"github.com/tendermint/tendermint/libs/log"
)

// InitCmd loads a genesis file into a fresh state under home. The genesis
// file defaults to home/genesis.json.
func InitCmd(logger log.Logger, home string, args []string) error {
	file := filepath.Join(home, "genesis.json")
	if len(args) > 0 {
		file = args[0]
	}
	raw, err := ioutil.ReadFile(file)
	if err != nil {
		return errors.Wrapf(errors.ErrInput, "cannot read genesis: %s", err)
	}
	var opts vault.Options
	if err := json.Unmarshal(raw, &opts); err != nil {
		return errors.Wrapf(errors.ErrInput, "cannot parse genesis: %s", err)
	}

	n, err := openNode(logger, home, false)
	if err != nil {
		return err
	}
	defer n.Close()

	if v := n.Version(); v != 0 {
		return errors.Wrapf(errors.ErrState, "already initialized at version %d", v)
	}
	_, err = n.InitChain(opts)
	return err
}

// appliedCall is printed for every delivered call.
type appliedCall struct {
	Path   string        `json:"path"`
	Caller vault.Address `json:"caller"`
	app.Result
}

// ApplyCmd delivers every call listed in the given file, in order, and
// commits the outcome as a single new version. A failed call does not stop
// the following ones. Each result is written to out as a line of JSON.
func ApplyCmd(out io.Writer, logger log.Logger, home string, debug bool, args []string) error {
	if len(args) != 1 {
		return errors.Wrap(errors.ErrInput, "usage: apply calls.json")
	}
	raw, err := ioutil.ReadFile(args[0])
	if err != nil {
		return errors.Wrapf(errors.ErrInput, "cannot read calls: %s", err)
	}
	var calls []call
	if err := json.Unmarshal(raw, &calls); err != nil {
		return errors.Wrapf(errors.ErrInput, "cannot parse calls: %s", err)
	}

	n, err := openNode(logger, home, debug)
	if err != nil {
		return err
	}
	defer n.Close()

	if n.Version() == 0 {
		return errors.Wrap(errors.ErrState, "not initialized, run init first")
	}

	enc := json.NewEncoder(out)
	for _, c := range calls {
		res := appliedCall{Path: c.Path, Caller: c.Caller}
		msg, err := decodeMsg(c.Path, c.Msg)
		if err != nil {
			res.Result = app.DeliverOrError(nil, err, n.Debug())
		} else {
			dres, err := n.Deliver(context.Background(), c.Caller, tx{msg: msg})
			res.Result = app.DeliverOrError(dres, err, n.Debug())
		}
		if err := enc.Encode(res); err != nil {
			return errors.Wrap(err, "cannot write result")
		}
	}
	_, err = n.Commit()
	return err
}

// queries maps a query name to the reader printing its result. Arguments
// are account ids, motion ids, addresses and tokens, as named in usage.
var queries = map[string]struct {
	usage string
	run   func(q *jointaccount.Querier, args []string) (interface{}, error)
}{
	"account": {
		usage: "account ACCOUNT_ID",
		run: func(q *jointaccount.Querier, args []string) (interface{}, error) {
			id, err := parseID(args[0])
			if err != nil {
				return nil, err
			}
			return q.Account(id)
		},
	},
	"accounts": {
		usage: "accounts ADDRESS",
		run: func(q *jointaccount.Querier, args []string) (interface{}, error) {
			addr, err := vault.ParseAddress(args[0])
			if err != nil {
				return nil, err
			}
			return q.AccountsOf(addr)
		},
	},
	"count": {
		usage: "count",
		run: func(q *jointaccount.Querier, args []string) (interface{}, error) {
			return q.AccountCount()
		},
	},
	"balance": {
		usage: "balance ACCOUNT_ID TOKEN",
		run: func(q *jointaccount.Querier, args []string) (interface{}, error) {
			id, err := parseID(args[0])
			if err != nil {
				return nil, err
			}
			return q.BalanceOf(id, args[1])
		},
	},
	"motion": {
		usage: "motion ACCOUNT_ID MOTION_ID",
		run: func(q *jointaccount.Querier, args []string) (interface{}, error) {
			acct, err := parseID(args[0])
			if err != nil {
				return nil, err
			}
			id, err := parseID(args[1])
			if err != nil {
				return nil, err
			}
			return q.Motion(acct, id)
		},
	},
	"motions": {
		usage: "motions ACCOUNT_ID",
		run: func(q *jointaccount.Querier, args []string) (interface{}, error) {
			acct, err := parseID(args[0])
			if err != nil {
				return nil, err
			}
			count, err := q.MotionCount(acct)
			if err != nil {
				return nil, err
			}
			motions := make([]*jointaccount.Motion, 0, count)
			for id := uint64(0); id < count; id++ {
				m, err := q.Motion(acct, id)
				if err != nil {
					return nil, err
				}
				motions = append(motions, m)
			}
			return motions, nil
		},
	},
	"voted": {
		usage: "voted ACCOUNT_ID MOTION_ID ADDRESS",
		run: func(q *jointaccount.Querier, args []string) (interface{}, error) {
			acct, err := parseID(args[0])
			if err != nil {
				return nil, err
			}
			id, err := parseID(args[1])
			if err != nil {
				return nil, err
			}
			addr, err := vault.ParseAddress(args[2])
			if err != nil {
				return nil, err
			}
			return q.Voted(acct, id, addr)
		},
	},
}

// QueryCmd reads the committed state and writes the result to out as JSON.
func QueryCmd(out io.Writer, logger log.Logger, home string, args []string) error {
	if len(args) == 0 {
		return errors.Wrap(errors.ErrInput, "missing query name")
	}
	query, ok := queries[args[0]]
	if !ok {
		return errors.Wrapf(errors.ErrInput, "unknown query %q", args[0])
	}
	args = args[1:]
	if want := len(strings.Fields(query.usage)) - 1; len(args) != want {
		return errors.Wrapf(errors.ErrInput, "usage: query %s", query.usage)
	}

	n, err := openNode(logger, home, false)
	if err != nil {
		return err
	}
	defer n.Close()

	var res interface{}
	err = n.Read(func(db vault.ReadOnlyKVStore) error {
		var err error
		res, err = query.run(jointaccount.NewQuerier(db), args)
		return err
	})
	if err != nil {
		return err
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

func parseID(s string) (uint64, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(errors.ErrInput, "invalid id %q", s)
	}
	return id, nil
}
