package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/vaulttest"
	"github.com/iov-one/vault/vaulttest/assert"
	"github.com/tendermint/tendermint/libs/log"
)

func TestInitApplyQuery(t *testing.T) {
	home, err := ioutil.TempDir("", "jointd")
	assert.Nil(t, err)
	defer os.RemoveAll(home)

	addrs := vaulttest.Addresses("alice", "bob", "charlie")
	alice, bob, charlie := addrs[0], addrs[1], addrs[2]
	logger := log.NewNopLogger()

	genesis := fmt.Sprintf(`{"jointaccount": {"accounts": [
		{"members": ["%s", "%s"], "threshold": 2, "balances": [{"token": "TKN", "amount": 100}]}
	]}}`, alice, bob)
	writeFile(t, filepath.Join(home, "genesis.json"), genesis)
	assert.Nil(t, InitCmd(logger, home, nil))
	assert.IsErr(t, errors.ErrState, InitCmd(logger, home, nil))

	calls := fmt.Sprintf(`[
		{"path": "jointaccount/create_transfer_motion", "caller": "%[1]s",
		 "msg": {"account_id": 0, "token": "TKN", "amount": 40, "to": "%[3]s"}},
		{"path": "jointaccount/vote_motion", "caller": "%[3]s", "msg": {"account_id": 0, "motion_id": 0}},
		{"path": "jointaccount/vote_motion", "caller": "%[2]s", "msg": {"account_id": 0, "motion_id": 0}},
		{"path": "jointaccount/no_such_call", "caller": "%[1]s"}
	]`, alice, bob, charlie)
	callsFile := filepath.Join(home, "calls.json")
	writeFile(t, callsFile, calls)

	var out bytes.Buffer
	assert.Nil(t, ApplyCmd(&out, logger, home, false, []string{callsFile}))

	var results []appliedCall
	scanner := bufio.NewScanner(&out)
	for scanner.Scan() {
		var res appliedCall
		assert.Nil(t, json.Unmarshal(scanner.Bytes(), &res))
		results = append(results, res)
	}
	assert.Equal(t, 4, len(results))
	assert.Equal(t, true, results[0].IsOK())
	assert.Equal(t, 2, len(results[0].Events))
	assert.Equal(t, false, results[1].IsOK())
	assert.Equal(t, errors.ErrUnauthorized.ABCICode(), results[1].Code)
	assert.Equal(t, true, results[2].IsOK())
	assert.Equal(t, "TransferExecuted", results[2].Events[1].Name)
	assert.Equal(t, false, results[3].IsOK())

	out.Reset()
	assert.Nil(t, QueryCmd(&out, logger, home, []string{"balance", "0", "TKN"}))
	assert.Equal(t, "60\n", out.String())

	out.Reset()
	assert.Nil(t, QueryCmd(&out, logger, home, []string{"voted", "0", "0", bob.String()}))
	assert.Equal(t, "true\n", out.String())

	assert.IsErr(t, errors.ErrInput, QueryCmd(&out, logger, home, []string{"balance", "0"}))
	assert.IsErr(t, errors.ErrInput, QueryCmd(&out, logger, home, []string{"nope"}))
}

func TestApplyRequiresInit(t *testing.T) {
	home, err := ioutil.TempDir("", "jointd")
	assert.Nil(t, err)
	defer os.RemoveAll(home)

	callsFile := filepath.Join(home, "calls.json")
	writeFile(t, callsFile, `[]`)
	err = ApplyCmd(ioutil.Discard, log.NewNopLogger(), home, false, []string{callsFile})
	assert.IsErr(t, errors.ErrState, err)
}

func TestDecodeMsgDefaults(t *testing.T) {
	msg, err := decodeMsg("jointaccount/create_transfer_motion", json.RawMessage(`{"account_id": 2}`))
	assert.Nil(t, err)
	assert.Equal(t, "jointaccount/create_transfer_motion", msg.Path())
	// no destination given at all
	assert.IsErr(t, errors.ErrInput, msg.Validate())

	_, err = decodeMsg("jointaccount/deposit", json.RawMessage(`{"amount": "x"}`))
	assert.IsErr(t, errors.ErrInput, err)
}

func writeFile(t testing.TB, path, content string) {
	t.Helper()
	if err := ioutil.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("cannot write %s: %s", path, err)
	}
}
