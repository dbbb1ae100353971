package store

import (
	"bytes"

	"github.com/google/btree"
)

const (
	// DefaultFreeListSize is the number of released btree nodes kept for
	// reuse by nested caches.
	DefaultFreeListSize = btree.DefaultFreeListSize

	// degree of every cache tree
	degree = 2
)

// BTreeCacheable gives any KVStore a btree backed CacheWrap.
type BTreeCacheable struct {
	KVStore
}

var _ CacheableKVStore = BTreeCacheable{}

// CacheWrap starts a scratch pad over the store. Nothing reaches the
// store until Write is called.
func (b BTreeCacheable) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(b.KVStore, b.NewBatch(), nil)
}

// MemStore returns an in memory store without persistence. Every call
// and test that needs a throwaway state starts from one.
func MemStore() CacheableKVStore {
	e := EmptyKVStore{}
	return NewBTreeCacheWrap(e, e.NewBatch(), nil)
}

// BTreeCacheWrap records all writes in a btree, on top of a read only
// view of the store it wraps. Reads see the pending writes first.
//
// A call runs against one of these. Write hands the pending changes to
// the batch in a single step, Discard drops them.
type BTreeCacheWrap struct {
	pending *btree.BTree
	free    *btree.FreeList
	back    ReadOnlyKVStore
	batch   Batch
}

var _ KVCacheWrap = BTreeCacheWrap{}

// NewBTreeCacheWrap wraps kv. All writes go to batch once the cache is
// written, kv is only read from.
//
// free may be nil. Pass the list of an outer cache to share released
// nodes between nested caches.
func NewBTreeCacheWrap(kv ReadOnlyKVStore, batch Batch, free *btree.FreeList) BTreeCacheWrap {
	if free == nil {
		free = btree.NewFreeList(DefaultFreeListSize)
	}
	return BTreeCacheWrap{
		pending: btree.NewWithFreeList(degree, free),
		free:    free,
		back:    kv,
		batch:   batch,
	}
}

// CacheWrap nests another cache, written into this one.
func (b BTreeCacheWrap) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(b, b.NewBatch(), b.free)
}

// NewBatch returns a batch writing into this cache.
func (b BTreeCacheWrap) NewBatch() Batch {
	return NewNonAtomicBatch(b)
}

// Write flushes the pending changes to the batch and empties the cache.
func (b BTreeCacheWrap) Write() error {
	err := b.batch.Write()
	b.Discard()
	return err
}

// Discard drops all pending changes.
func (b BTreeCacheWrap) Discard() {
	b.pending.Clear(true)
	if r, ok := b.batch.(resetter); ok {
		r.Reset()
	}
}

type resetter interface {
	Reset()
}

func (b BTreeCacheWrap) Set(key, value []byte) error {
	b.pending.ReplaceOrInsert(entry{key: key, value: value})
	return b.batch.Set(key, value)
}

// Delete records a tombstone, so that the value of the wrapped store is
// hidden as well.
func (b BTreeCacheWrap) Delete(key []byte) error {
	b.pending.ReplaceOrInsert(entry{key: key, deleted: true})
	return b.batch.Delete(key)
}

// lookup returns the pending entry for key, if there is one.
func (b BTreeCacheWrap) lookup(key []byte) (entry, bool) {
	item := b.pending.Get(entry{key: key})
	if item == nil {
		return entry{}, false
	}
	return item.(entry), true
}

func (b BTreeCacheWrap) Get(key []byte) ([]byte, error) {
	if e, ok := b.lookup(key); ok {
		return e.Value(), nil
	}
	return b.back.Get(key)
}

func (b BTreeCacheWrap) Has(key []byte) (bool, error) {
	if e, ok := b.lookup(key); ok {
		return !e.deleted, nil
	}
	return b.back.Has(key)
}

// Iterator walks [start, end) in ascending order, merging pending
// changes with the wrapped store.
func (b BTreeCacheWrap) Iterator(start, end []byte) (Iterator, error) {
	parent, err := b.back.Iterator(start, end)
	if err != nil {
		return nil, err
	}
	return newCacheIter(collect(b.pending, start, end, true), parent, true)
}

// ReverseIterator walks [start, end) in descending order, merging pending
// changes with the wrapped store.
func (b BTreeCacheWrap) ReverseIterator(start, end []byte) (Iterator, error) {
	parent, err := b.back.ReverseIterator(start, end)
	if err != nil {
		return nil, err
	}
	return newCacheIter(collect(b.pending, start, end, false), parent, false)
}

// entry is a pending change: a new value or a tombstone.
type entry struct {
	key     []byte
	value   []byte
	deleted bool
}

var _ btree.Item = entry{}

// Less orders entries by key.
func (e entry) Less(than btree.Item) bool {
	return bytes.Compare(e.key, than.(entry).key) < 0
}

// Value is nil for a tombstone.
func (e entry) Value() []byte {
	if e.deleted {
		return nil
	}
	return e.value
}
