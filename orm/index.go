package orm

import (
	"bytes"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
)

// Index is a secondary index that references bucket entities by a value
// computed from them.
type Index interface {
	vault.QueryHandler

	// Name returns the name of this index.
	Name() string

	// Update updates the index. It should be called when any of the bucket
	// entities has changed in the store.
	//
	// prev == nil means insert
	// save == nil means delete
	// both == nil is error
	// if both != nil and prev.Key() != save.Key() this is an error
	Update(db vault.KVStore, prev Object, save Object) error

	// Keys returns all entity keys that were indexed under given value,
	// sorted.
	Keys(db vault.ReadOnlyKVStore, value []byte) ([][]byte, error)
}

const compactIdxPrefix = "_i."

// Indexer calculates the secondary index key for a given object
type Indexer func(Object) ([]byte, error)

// MultiKeyIndexer calculates the secondary index keys for a given object
type MultiKeyIndexer func(Object) ([][]byte, error)

// compactIndex stores all entity keys indexed under one value as a single
// MultiRef. This fits small collections, like the accounts of one member.
//
// With unique set the value holds exactly one primary key.
type compactIndex struct {
	name   string
	id     []byte
	unique bool
	index  MultiKeyIndexer
	refKey func([]byte) []byte
}

var _ Index = compactIndex{}

// NewMultiKeyIndex constructs an index with multi key indexer.
// Indexer calculates the index for an object
// unique enforces a unique constraint on the index
// refKey calculates the absolute dbkey for a ref
func NewMultiKeyIndex(name string, indexer MultiKeyIndexer, unique bool, refKey func([]byte) []byte) Index {
	return compactIndex{
		name:   name,
		id:     append([]byte(compactIdxPrefix), []byte(name+":")...),
		index:  indexer,
		unique: unique,
		refKey: refKey,
	}
}

func asMultiKeyIndexer(indexer Indexer) MultiKeyIndexer {
	return func(obj Object) ([][]byte, error) {
		key, err := indexer(obj)
		switch {
		case err != nil:
			return nil, err
		case key == nil:
			return nil, nil
		}
		return [][]byte{key}, nil
	}
}

func (i compactIndex) Name() string {
	return i.name
}

// indexKey is the full key we store in the db, including prefix
// We copy into a new array rather than use append, as we don't
// want consecutive calls to overwrite the same byte array.
func (i compactIndex) indexKey(key []byte) []byte {
	l := len(i.id)
	out := make([]byte, l+len(key))
	copy(out, i.id)
	copy(out[l:], key)
	return out
}

// Update handles updating the reference to the object in
// the secondary index.
func (i compactIndex) Update(db vault.KVStore, prev Object, save Object) error {
	type s struct{ a, b bool }
	sw := s{prev == nil, save == nil}
	switch sw {
	case s{true, true}:
		return errors.Wrap(errors.ErrHuman, "update requires at least one non-nil object")
	case s{true, false}:
		keys, err := i.index(save)
		if err != nil {
			return err
		}
		for _, key := range keys {
			if err := i.insert(db, key, save.Key()); err != nil {
				return err
			}
		}
		return nil
	case s{false, true}:
		keys, err := i.index(prev)
		if err != nil {
			return err
		}
		for _, key := range keys {
			if err := i.remove(db, key, prev.Key()); err != nil {
				return err
			}
		}
		return nil
	default:
		return i.move(db, prev, save)
	}
}

// move removes the references that are gone and adds the new ones,
// leaving values both objects are indexed under untouched.
func (i compactIndex) move(db vault.KVStore, prev Object, save Object) error {
	if !bytes.Equal(prev.Key(), save.Key()) {
		return errors.Wrap(errors.ErrHuman, "cannot modify the primary key of an object")
	}
	oldKeys, err := i.index(prev)
	if err != nil {
		return err
	}
	newKeys, err := i.index(save)
	if err != nil {
		return err
	}
	pk := save.Key()
	for _, k := range oldKeys {
		if !contains(newKeys, k) {
			if err := i.remove(db, k, pk); err != nil {
				return err
			}
		}
	}
	for _, k := range newKeys {
		if !contains(oldKeys, k) {
			if err := i.insert(db, k, pk); err != nil {
				return err
			}
		}
	}
	return nil
}

func contains(set [][]byte, key []byte) bool {
	for _, s := range set {
		if bytes.Equal(s, key) {
			return true
		}
	}
	return false
}

func (i compactIndex) insert(db vault.KVStore, key []byte, pk []byte) error {
	dbkey := i.indexKey(key)
	cur, err := db.Get(dbkey)
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}

	var bz []byte
	if i.unique {
		if cur != nil {
			return errors.Wrapf(ErrUniqueConstraint, "index %s", i.name)
		}
		bz = pk
	} else {
		var refs MultiRef
		if err := refs.Unmarshal(cur); err != nil {
			return errors.Wrap(errors.ErrModel, err.Error())
		}
		if err := refs.Add(pk); err != nil {
			return err
		}
		if bz, err = refs.Marshal(); err != nil {
			return errors.Wrap(errors.ErrModel, err.Error())
		}
	}
	if err := db.Set(dbkey, bz); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}

func (i compactIndex) remove(db vault.KVStore, key []byte, pk []byte) error {
	dbkey := i.indexKey(key)
	cur, err := db.Get(dbkey)
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	if cur == nil {
		return errors.Wrap(errors.ErrNotFound, "cannot remove index that does not exist")
	}

	if i.unique {
		if !bytes.Equal(cur, pk) {
			return errors.Wrap(errors.ErrNotFound, "index has a different reference")
		}
		return deleteKey(db, dbkey)
	}

	var refs MultiRef
	if err := refs.Unmarshal(cur); err != nil {
		return errors.Wrap(errors.ErrModel, err.Error())
	}
	if err := refs.Remove(pk); err != nil {
		return err
	}
	if len(refs.Refs) == 0 {
		return deleteKey(db, dbkey)
	}
	bz, err := refs.Marshal()
	if err != nil {
		return errors.Wrap(errors.ErrModel, err.Error())
	}
	if err := db.Set(dbkey, bz); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}

func deleteKey(db vault.KVStore, key []byte) error {
	if err := db.Delete(key); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}

// Keys returns a list of all entity keys that were indexed under given value.
func (i compactIndex) Keys(db vault.ReadOnlyKVStore, value []byte) ([][]byte, error) {
	bz, err := db.Get(i.indexKey(value))
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return i.refs(bz)
}

func (i compactIndex) refs(bz []byte) ([][]byte, error) {
	if bz == nil {
		return nil, nil
	}
	if i.unique {
		return [][]byte{bz}, nil
	}
	var refs MultiRef
	if err := refs.Unmarshal(bz); err != nil {
		return nil, errors.Wrap(errors.ErrModel, err.Error())
	}
	return refs.Refs, nil
}

// Query handles queries from the QueryRouter
func (i compactIndex) Query(db vault.ReadOnlyKVStore, mod string, data []byte) ([]vault.Model, error) {
	switch mod {
	case vault.KeyQueryMod:
		refs, err := i.Keys(db, data)
		if err != nil {
			return nil, err
		}
		return i.loadRefs(db, refs)
	case vault.PrefixQueryMod:
		found, err := queryPrefix(db, i.indexKey(data))
		if err != nil {
			return nil, err
		}
		var all [][]byte
		for _, m := range found {
			refs, err := i.refs(m.Value)
			if err != nil {
				return nil, err
			}
			all = append(all, refs...)
		}
		return i.loadRefs(db, all)
	default:
		return nil, errors.Wrapf(errors.ErrInput, "unknown mod: %s", mod)
	}
}

func (i compactIndex) loadRefs(db vault.ReadOnlyKVStore, refs [][]byte) ([]vault.Model, error) {
	if len(refs) == 0 {
		return nil, nil
	}
	res := make([]vault.Model, 0, len(refs))
	for _, ref := range refs {
		key := i.refKey(ref)
		value, err := db.Get(key)
		if err != nil {
			return nil, errors.Wrap(errors.ErrDatabase, err.Error())
		}
		res = append(res, vault.Pair(key, value))
	}
	return res, nil
}
