package app

import (
	"context"
	"testing"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/store"
	"github.com/iov-one/vault/vaulttest"
	"github.com/iov-one/vault/vaulttest/assert"
)

func TestRouter(t *testing.T) {
	r := NewRouter()

	good := &vaulttest.Handler{}
	bad := &vaulttest.Handler{DeliverErr: errors.ErrState, CheckErr: errors.ErrState}
	r.Handle("test/good", good)
	r.Handle("test/bad", bad)

	// make sure invalid registrations panic
	assert.Panics(t, func() { r.Handle("test/good", good) })
	assert.Panics(t, func() { r.Handle("l:7", good) })

	ctx := context.Background()
	db := store.MemStore()
	txFor := func(path string) vault.Tx {
		return &vaulttest.Tx{Msg: &vaulttest.Msg{RoutePath: path}}
	}

	_, err := r.Check(ctx, db, txFor("test/good"))
	assert.Nil(t, err)
	_, err = r.Deliver(ctx, db, txFor("test/good"))
	assert.Nil(t, err)
	assert.Equal(t, 2, good.CallCount())

	_, err = r.Deliver(ctx, db, txFor("test/bad"))
	assert.IsErr(t, errors.ErrState, err)
	assert.Equal(t, 1, bad.DeliverCallCount())

	_, err = r.Deliver(ctx, db, txFor("test/missing"))
	assert.IsErr(t, ErrNoSuchPath, err)
	_, err = r.Check(ctx, db, txFor("test/missing"))
	assert.IsErr(t, ErrNoSuchPath, err)
	assert.Equal(t, 2, good.CallCount())

	// broken transactions never reach a handler
	_, err = r.Deliver(ctx, db, &vaulttest.Tx{Err: errors.ErrMsg})
	assert.IsErr(t, errors.ErrMsg, err)
}
