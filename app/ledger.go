package app

import (
	"sync"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
	"github.com/tendermint/tendermint/libs/log"
)

// Ledger processes calls one at a time. Every call runs against a cache wrap
// of the committed store, that is written only if the handler succeeds. Any
// failure, panics included, leaves the state untouched.
//
// Events of a call are handed to the emitter only after its changes were
// written.
type Ledger struct {
	mu sync.Mutex

	store       vault.CommitKVStore
	handler     vault.Handler
	queryRouter vault.QueryRouter
	initializer vault.Initializer
	emitter     vault.EventEmitter
	logger      log.Logger
	debug       bool
}

// NewLedger returns a ledger operating on given store.
func NewLedger(store vault.CommitKVStore, handler vault.Handler, queryRouter vault.QueryRouter) *Ledger {
	return &Ledger{
		store:       store,
		handler:     handler,
		queryRouter: queryRouter,
		emitter:     vault.NopEmitter{},
		logger:      log.NewNopLogger(),
	}
}

// WithInit is used to set the genesis initializer.
func (l *Ledger) WithInit(init vault.Initializer) *Ledger {
	l.initializer = init
	return l
}

// WithEmitter sets the collaborator receiving committed events.
func (l *Ledger) WithEmitter(e vault.EventEmitter) *Ledger {
	l.emitter = e
	return l
}

// WithLogger sets the logger for all calls.
func (l *Ledger) WithLogger(logger log.Logger) *Ledger {
	l.logger = logger
	return l
}

// WithDebug exposes internal error details in results.
func (l *Ledger) WithDebug(debug bool) *Ledger {
	l.debug = debug
	return l
}

// Debug returns true if internal error details are exposed.
func (l *Ledger) Debug() bool {
	return l.debug
}

// InitChain loads the genesis state and commits it as the first version.
func (l *Ledger) InitChain(opts vault.Options) (vault.CommitID, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.initializer == nil {
		return vault.CommitID{}, errors.Wrap(errors.ErrHuman, "no initializer")
	}
	cache := l.store.CacheWrap()
	if err := l.initializer.FromGenesis(opts, cache); err != nil {
		cache.Discard()
		return vault.CommitID{}, errors.Wrap(err, "genesis")
	}
	if err := cache.Write(); err != nil {
		return vault.CommitID{}, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	id, err := l.store.Commit()
	if err != nil {
		return id, err
	}
	l.logger.Info("Genesis loaded", "version", id.Version)
	return id, nil
}

// Check validates the call against the current state. Nothing is written.
func (l *Ledger) Check(ctx vault.Context, caller vault.Address, tx vault.Tx) (res *vault.CheckResult, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	path := vault.GetPath(tx)
	ctx = l.callContext(ctx, "check", path, caller)
	cache := l.store.CacheWrap()
	defer cache.Discard()
	defer errors.Recover(&err)
	return l.handler.Check(ctx, cache, tx)
}

// Deliver executes the call as a single atomic transaction.
func (l *Ledger) Deliver(ctx vault.Context, caller vault.Address, tx vault.Tx) (*vault.DeliverResult, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	path := vault.GetPath(tx)
	ctx = l.callContext(ctx, "deliver", path, caller)
	logger := vault.GetLogger(ctx)

	cache := l.store.CacheWrap()
	res, err := l.deliver(ctx, cache, tx)
	if err != nil {
		cache.Discard()
		callFailed(path)
		logger.Debug("Call rejected", "err", err)
		return nil, err
	}
	if err := cache.Write(); err != nil {
		callFailed(path)
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}

	for _, e := range res.Events {
		l.emitter.Emit(e)
	}
	callDelivered(path, len(res.Events))
	logger.Info("Call delivered", "events", len(res.Events))
	return res, nil
}

func (l *Ledger) deliver(ctx vault.Context, db vault.KVStore, tx vault.Tx) (res *vault.DeliverResult, err error) {
	defer errors.Recover(&err)
	res, err = l.handler.Deliver(ctx, db, tx)
	if err == nil && res == nil {
		res = &vault.DeliverResult{}
	}
	return res, err
}

func (l *Ledger) callContext(ctx vault.Context, call, path string, caller vault.Address) vault.Context {
	ctx = vault.WithLogger(ctx, l.logger)
	ctx = vault.WithLogInfo(ctx, "call", call, "path", path, "caller", caller)
	return vault.WithCaller(ctx, caller)
}

// Commit persists all delivered calls as a new version.
func (l *Ledger) Commit() (vault.CommitID, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	id, err := l.store.Commit()
	if err != nil {
		return id, err
	}
	l.logger.Debug("Commit", "version", id.Version, "hash", id.Hash)
	return id, nil
}

// Query runs the query handler registered for path.
func (l *Ledger) Query(path, mod string, data []byte) ([]vault.Model, error) {
	h := l.queryRouter.Handler(path)
	if h == nil {
		return nil, errors.Wrap(ErrNoSuchPath, path)
	}
	var res []vault.Model
	err := l.Read(func(db vault.ReadOnlyKVStore) error {
		var err error
		res, err = h.Query(db, mod, data)
		return err
	})
	return res, err
}

// Read gives fn a read only view of the current state. Calls are blocked
// until fn returns.
func (l *Ledger) Read(fn func(db vault.ReadOnlyKVStore) error) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	cache := l.store.CacheWrap()
	defer cache.Discard()
	return fn(cache)
}
