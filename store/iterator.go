package store

import (
	"bytes"

	"github.com/google/btree"
)

// collect returns all cached items within [start, end), in the requested
// order. A nil start or end leaves that side of the range open.
func collect(bt *btree.BTree, start, end []byte, ascending bool) []entry {
	var items []entry
	add := func(item btree.Item) bool {
		e := item.(entry)
		if end != nil && bytes.Compare(e.key, end) >= 0 {
			return false
		}
		items = append(items, e)
		return true
	}
	if start == nil {
		bt.Ascend(add)
	} else {
		bt.AscendGreaterOrEqual(entry{key: start}, add)
	}

	if !ascending {
		for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
			items[i], items[j] = items[j], items[i]
		}
	}
	return items
}

// source marks where the current item comes from
type source int32

const (
	us source = iota
	parent
	both
	none
)

// cacheIter combines the cached items of a BTreeCacheWrap with the
// iterator of the store it wraps, taking overwrites and deletes into
// account.
type cacheIter struct {
	items     []entry
	idx       int
	parent    Iterator
	ascending bool
}

var _ Iterator = (*cacheIter)(nil)

func newCacheIter(items []entry, parentIter Iterator, ascending bool) (*cacheIter, error) {
	iter := &cacheIter{
		items:     items,
		parent:    parentIter,
		ascending: ascending,
	}
	if err := iter.skipAllDeleted(); err != nil {
		iter.Close()
		return nil, err
	}
	return iter, nil
}

// Valid implements Iterator and returns true iff it can be read
func (i *cacheIter) Valid() bool {
	return i.usValid() || i.parentValid()
}

// Next moves the iterator to the next sequential key in the database, as
// defined by order of iteration.
//
// If Valid returns false, this method will panic.
func (i *cacheIter) Next() error {
	switch i.firstKey() {
	case us:
		i.idx++
	case both:
		i.idx++
		if err := i.parent.Next(); err != nil {
			return err
		}
	case parent:
		if err := i.parent.Next(); err != nil {
			return err
		}
	default:
		panic("Advanced past the end!")
	}
	return i.skipAllDeleted()
}

// Key returns the key of the cursor.
func (i *cacheIter) Key() (key []byte) {
	switch i.firstKey() {
	case us, both:
		return i.current().key
	case parent:
		return i.parent.Key()
	default:
		panic("Advanced past the end!")
	}
}

// Value returns the value of the cursor.
func (i *cacheIter) Value() (value []byte) {
	switch i.firstKey() {
	case us, both:
		return i.current().value
	case parent:
		return i.parent.Value()
	default:
		panic("Advanced past the end!")
	}
}

// Close releases the Iterator.
func (i *cacheIter) Close() {
	i.parent.Close()
	i.items = nil
}

// skipAllDeleted jumps over every deleted entry at the cursor, together
// with the parent value it shadows.
func (i *cacheIter) skipAllDeleted() error {
	for {
		src := i.firstKey()
		if src != us && src != both {
			return nil
		}
		if !i.current().deleted {
			return nil
		}
		i.idx++
		if src == both {
			if err := i.parent.Next(); err != nil {
				return err
			}
		}
	}
}

// firstKey selects the iterator with the key that comes first in iteration
// order, if any
func (i *cacheIter) firstKey() source {
	if !i.parentValid() {
		if !i.usValid() {
			return none
		}
		return us
	} else if !i.usValid() {
		return parent
	}

	cmp := bytes.Compare(i.parent.Key(), i.current().key)
	if !i.ascending {
		cmp = -cmp
	}
	switch {
	case cmp < 0:
		return parent
	case cmp > 0:
		return us
	default:
		return both
	}
}

func (i *cacheIter) current() entry {
	return i.items[i.idx]
}

func (i *cacheIter) usValid() bool {
	return i.idx < len(i.items)
}

// makes sure the parent is non-nil before checking if it is valid
func (i *cacheIter) parentValid() bool {
	return (i.parent != nil) && i.parent.Valid()
}
