package vault

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tendermint/tendermint/libs/log"
)

func TestContext(t *testing.T) {
	bg := context.Background()

	// try logger with default
	newLogger := log.NewTMLogger(os.Stdout)
	ctx := WithLogger(bg, newLogger)
	assert.Equal(t, DefaultLogger, GetLogger(bg))
	assert.Equal(t, newLogger, GetLogger(ctx))

	// changing the info modifies the logger only
	ctx2 := WithLogInfo(ctx, "foo", "bar")
	assert.NotEqual(t, GetLogger(ctx), GetLogger(ctx2))

	// caller is unset until the ledger layer sets it
	_, ok := GetCaller(ctx2)
	assert.False(t, ok)
	_, ok = GetCaller(WithCaller(ctx2, Address{}))
	assert.False(t, ok)

	caller := NewCondition("sigs", "ed25519", []byte("pk")).Address()
	got, ok := GetCaller(WithCaller(ctx2, caller))
	assert.True(t, ok)
	assert.Equal(t, caller, got)
}
