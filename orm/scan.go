package orm

import (
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
)

// PrefixScan returns all objects whose key starts with prefix, in key
// order. Returned objects carry their bucket local key.
func (b Bucket) PrefixScan(db vault.ReadOnlyKVStore, prefix []byte) ([]Object, error) {
	itr, err := db.Iterator(prefixRange(b.DBKey(prefix)))
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	models, err := ConsumeIterator(itr)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	objs := make([]Object, 0, len(models))
	for _, m := range models {
		obj, err := b.Parse(m.Key[len(b.prefix):], m.Value)
		if err != nil {
			return nil, err
		}
		objs = append(objs, obj)
	}
	return objs, nil
}
