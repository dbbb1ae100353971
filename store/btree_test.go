package store

import (
	"bytes"
	"crypto/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getHas(t *testing.T, kv ReadOnlyKVStore, key, want []byte) {
	t.Helper()
	got, err := kv.Get(key)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	has, err := kv.Has(key)
	require.NoError(t, err)
	assert.Equal(t, want != nil, has)
}

// TestBTreeCacheGetSet does basic sanity checks on our cache
func TestBTreeCacheGetSet(t *testing.T) {
	// devnull is a black hole... just to keep our types proper
	devnull := BTreeCacheable{EmptyKVStore{}}
	base := devnull.CacheWrap()

	k, v := []byte("french"), []byte("fry")
	getHas(t, base, k, nil)
	require.NoError(t, base.Set(k, v))
	getHas(t, base, k, v)

	// writing more data is only visible in the cache
	cache := base.CacheWrap()
	getHas(t, cache, k, v)
	k2, v2 := []byte("LA"), []byte("Dodgers")
	require.NoError(t, cache.Set(k2, v2))
	getHas(t, cache, k2, v2)
	getHas(t, base, k2, nil)

	require.NoError(t, cache.Write())
	getHas(t, base, k2, v2)

	// a discarded cache never reaches the base
	k3, v3 := []byte("Bayern"), []byte("Munich")
	c2 := base.CacheWrap()
	require.NoError(t, c2.Set(k3, v3))
	require.NoError(t, c2.Delete(k))
	getHas(t, c2, k, nil)
	c2.Discard()
	getHas(t, base, k, v)
	getHas(t, base, k3, nil)

	// and a delete that is written
	c3 := base.CacheWrap()
	require.NoError(t, c3.Delete(k))
	require.NoError(t, c3.Write())
	getHas(t, base, k, nil)
	getHas(t, base, k2, v2)

	require.NoError(t, base.Write())
	getHas(t, devnull, k2, nil)
}

func TestBTreeCacheIterator(t *testing.T) {
	ms := randModels(8, 12, 20)
	sorted := sortModels(ms)
	a, b, c, d, e := sorted[0], sorted[1], sorted[2], sorted[3], sorted[4]
	b2 := Pair(b.Key, []byte("overwritten"))

	cases := map[string]struct {
		parent   []Op
		child    []Op
		start    []byte
		end      []byte
		reverse  bool
		expected []Model
	}{
		"empty": {},
		"child only": {
			child:    ops(SetOp(c.Key, c.Value), SetOp(a.Key, a.Value)),
			expected: []Model{a, c},
		},
		"merge parent and child": {
			parent:   ops(SetOp(a.Key, a.Value), SetOp(d.Key, d.Value)),
			child:    ops(SetOp(c.Key, c.Value), SetOp(b.Key, b.Value)),
			expected: []Model{a, b, c, d},
		},
		"merge reverse": {
			parent:   ops(SetOp(a.Key, a.Value), SetOp(d.Key, d.Value)),
			child:    ops(SetOp(c.Key, c.Value), SetOp(b.Key, b.Value)),
			reverse:  true,
			expected: []Model{d, c, b, a},
		},
		"overwrite and delete": {
			parent:   ops(SetOp(a.Key, a.Value), SetOp(b.Key, b.Value), SetOp(c.Key, c.Value)),
			child:    ops(SetOp(b.Key, b2.Value), DelOp(a.Key), DelOp(c.Key), DelOp(e.Key)),
			expected: []Model{b2},
		},
		"bounded range": {
			parent:   ops(SetOp(a.Key, a.Value), SetOp(c.Key, c.Value), SetOp(e.Key, e.Value)),
			child:    ops(SetOp(b.Key, b.Value), SetOp(d.Key, d.Value)),
			start:    b.Key,
			end:      e.Key,
			expected: []Model{b, c, d},
		},
		"bounded range reverse": {
			parent:   ops(SetOp(a.Key, a.Value), SetOp(c.Key, c.Value), SetOp(e.Key, e.Value)),
			child:    ops(SetOp(b.Key, b.Value), SetOp(d.Key, d.Value)),
			start:    b.Key,
			end:      e.Key,
			reverse:  true,
			expected: []Model{d, c, b},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			parent := MemStore()
			for _, op := range tc.parent {
				require.NoError(t, op.Apply(parent))
			}
			child := parent.CacheWrap()
			for _, op := range tc.child {
				require.NoError(t, op.Apply(child))
			}

			var iter Iterator
			var err error
			if tc.reverse {
				iter, err = child.ReverseIterator(tc.start, tc.end)
			} else {
				iter, err = child.Iterator(tc.start, tc.end)
			}
			require.NoError(t, err)
			defer iter.Close()

			var got []Model
			for ; iter.Valid(); require.NoError(t, iter.Next()) {
				got = append(got, Pair(iter.Key(), iter.Value()))
			}
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestNonAtomicBatch(t *testing.T) {
	base := MemStore()
	batch := base.NewBatch().(*NonAtomicBatch)

	require.NoError(t, batch.Set([]byte("a"), []byte("1")))
	require.NoError(t, batch.Delete([]byte("a")))
	require.NoError(t, batch.Set([]byte("b"), []byte("2")))
	assert.Len(t, batch.ShowOps(), 3)
	getHas(t, base, []byte("b"), nil)

	require.NoError(t, batch.Write())
	assert.Len(t, batch.ShowOps(), 0)
	getHas(t, base, []byte("a"), nil)
	getHas(t, base, []byte("b"), []byte("2"))
}

func ops(o ...Op) []Op {
	return o
}

func randModels(count, keySize, valueSize int) []Model {
	models := make([]Model, count)
	for i := range models {
		models[i].Key = make([]byte, keySize)
		rand.Read(models[i].Key)
		models[i].Value = make([]byte, valueSize)
		rand.Read(models[i].Value)
	}
	return models
}

func sortModels(models []Model) []Model {
	res := make([]Model, len(models))
	copy(res, models)
	sort.Slice(res, func(i, j int) bool {
		return bytes.Compare(res[i].Key, res[j].Key) < 0
	})
	return res
}
