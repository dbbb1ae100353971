package iavl

import (
	"bytes"
	"crypto/rand"
	"io/ioutil"
	"os"
	"sort"
	"testing"

	"github.com/iov-one/vault/store"
	"github.com/iov-one/vault/vaulttest/assert"
)

type Model = store.Model
type Op = store.Op

func makeCommitStore(t testing.TB) (*CommitStore, string, func()) {
	t.Helper()
	tmpDir, err := ioutil.TempDir("", "iavl-adapter-")
	assert.Nil(t, err)
	commit, err := NewCommitStore(tmpDir, "base")
	assert.Nil(t, err)
	cleanup := func() { os.RemoveAll(tmpDir) }
	return commit, tmpDir, cleanup
}

func assertGetHas(t testing.TB, kv store.ReadOnlyKVStore, key, val []byte, has bool) {
	t.Helper()
	got, err := kv.Get(key)
	assert.Nil(t, err)
	assert.Equal(t, val, got)
	exists, err := kv.Has(key)
	assert.Nil(t, err)
	assert.Equal(t, has, exists)
}

func TestCacheGetSet(t *testing.T) {
	commit := MockCommitStore()
	base := commit.Adapter()

	k, v := []byte("french"), []byte("fry")
	assertGetHas(t, base, k, nil, false)
	assert.Nil(t, base.Set(k, v))
	assertGetHas(t, base, k, v, true)

	cache := base.CacheWrap()
	assertGetHas(t, cache, k, v, true)

	// writing more data is only visible in the cache
	k2, v2 := []byte("LA"), []byte("Dodgers")
	assert.Nil(t, cache.Set(k2, v2))
	assertGetHas(t, cache, k2, v2, true)
	assertGetHas(t, base, k2, nil, false)

	assert.Nil(t, cache.Write())
	assertGetHas(t, base, k2, v2, true)

	// a discarded cache leaves no trace
	k3, v3 := []byte("Bayern"), []byte("Munich")
	c2 := base.CacheWrap()
	assert.Nil(t, c2.Set(k3, v3))
	assert.Nil(t, c2.Delete(k))
	c2.Discard()
	assertGetHas(t, base, k, v, true)
	assertGetHas(t, base, k3, nil, false)
}

func TestCommitPersists(t *testing.T) {
	ks := randKeys(4, 16)
	vs := randKeys(4, 40)

	commit, dir, cleanup := makeCommitStore(t)
	defer cleanup()
	defer commit.Close()

	id, err := commit.LatestVersion()
	assert.Nil(t, err)
	assert.Equal(t, int64(0), id.Version)
	if len(id.Hash) != 0 {
		t.Fatal("hash is not empty")
	}

	cache := commit.CacheWrap()
	for _, op := range []Op{store.SetOp(ks[0], vs[0]), store.SetOp(ks[1], vs[1])} {
		assert.Nil(t, op.Apply(cache))
	}
	assert.Nil(t, cache.Write())
	first, err := commit.Commit()
	assert.Nil(t, err)
	assert.Equal(t, int64(1), first.Version)
	if len(first.Hash) == 0 {
		t.Fatal("hash is empty")
	}

	cache = commit.CacheWrap()
	assert.Nil(t, cache.Delete(ks[0]))
	assert.Nil(t, cache.Set(ks[2], vs[2]))
	assert.Nil(t, cache.Write())
	second, err := commit.Commit()
	assert.Nil(t, err)
	assert.Equal(t, int64(2), second.Version)
	if bytes.Equal(first.Hash, second.Hash) {
		t.Fatal("hash did not change")
	}

	// reopen from disk
	commit.Close()
	reopened, err := NewCommitStore(dir, "base")
	assert.Nil(t, err)
	defer reopened.Close()
	assert.Nil(t, reopened.LoadLatestVersion())
	id, err = reopened.LatestVersion()
	assert.Nil(t, err)
	assert.Equal(t, second, id)

	assertGetHas(t, reopened.Adapter(), ks[0], nil, false)
	assertGetHas(t, reopened.Adapter(), ks[1], vs[1], true)
	assertGetHas(t, reopened.Adapter(), ks[2], vs[2], true)
}

func TestCacheIterator(t *testing.T) {
	ms := randModels(6, 20, 100)
	a, a2, b, b2, c, d := ms[0], ms[1], ms[2], ms[3], ms[4], ms[5]
	a2.Key = a.Key
	b2.Key = b.Key

	expect0 := sortModels([]Model{a, b, c})
	expect1 := sortModels([]Model{a2, b2, c, d})

	cases := map[string]struct {
		pre      []Op
		child    []Op
		reverse  bool
		expected []Model
	}{
		"child only": {
			child:    makeSetOps(a, b, c),
			expected: expect0,
		},
		"parent only, reversed": {
			pre:      makeSetOps(a, b, c),
			reverse:  true,
			expected: reverse(expect0),
		},
		"child overwrites parent": {
			pre:      makeSetOps(a, b, c),
			child:    makeSetOps(a2, b2, d),
			expected: expect1,
		},
		"child deletes hide parent": {
			pre:      makeSetOps(a, c, d),
			child:    makeDelOps(a, b, d),
			expected: []Model{c},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			base := MockCommitStore().Adapter()
			for _, op := range tc.pre {
				assert.Nil(t, op.Apply(base))
			}
			child := base.CacheWrap()
			for _, op := range tc.child {
				assert.Nil(t, op.Apply(child))
			}

			var iter store.Iterator
			var err error
			if tc.reverse {
				iter, err = child.ReverseIterator(nil, nil)
			} else {
				iter, err = child.Iterator(nil, nil)
			}
			assert.Nil(t, err)
			defer iter.Close()
			for _, want := range tc.expected {
				assert.Equal(t, true, iter.Valid())
				assert.Equal(t, want.Key, iter.Key())
				assert.Equal(t, want.Value, iter.Value())
				assert.Nil(t, iter.Next())
			}
			if iter.Valid() {
				t.Fatal("iterator is expected to not be valid")
			}
		})
	}
}

func randBytes(length int) []byte {
	res := make([]byte, length)
	rand.Read(res)
	return res
}

// randKeys returns a slice of count keys, all of a given size
func randKeys(count, size int) [][]byte {
	res := make([][]byte, count)
	for i := 0; i < count; i++ {
		res[i] = randBytes(size)
	}
	return res
}

// randModels produces a random set of models
func randModels(count, keySize, valueSize int) []Model {
	models := make([]Model, count)
	for i := 0; i < count; i++ {
		models[i].Key = randBytes(keySize)
		models[i].Value = randBytes(valueSize)
	}
	return models
}

// reverse returns a copy of the slice with elements in reverse order
func reverse(models []Model) []Model {
	max := len(models)
	res := make([]Model, max)
	for i := 0; i < max; i++ {
		res[i] = models[max-1-i]
	}
	return res
}

// sortModels returns a copy of the models sorted by key
func sortModels(models []Model) []Model {
	res := make([]Model, len(models))
	copy(res, models)
	sort.Slice(res, func(i, j int) bool {
		return bytes.Compare(res[i].Key, res[j].Key) < 0
	})
	return res
}

func makeSetOps(ms ...Model) []Op {
	res := make([]Op, len(ms))
	for i, m := range ms {
		res[i] = store.SetOp(m.Key, m.Value)
	}
	return res
}

func makeDelOps(ms ...Model) []Op {
	res := make([]Op, len(ms))
	for i, m := range ms {
		res[i] = store.DelOp(m.Key)
	}
	return res
}
