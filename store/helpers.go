package store

// SliceIterator walks a slice of models that is already in iteration
// order.
type SliceIterator struct {
	rest []Model
}

var _ Iterator = (*SliceIterator)(nil)

func NewSliceIterator(data []Model) *SliceIterator {
	return &SliceIterator{rest: data}
}

func (s *SliceIterator) Valid() bool {
	return len(s.rest) > 0
}

// Next panics when the iterator is not Valid.
func (s *SliceIterator) Next() error {
	s.head()
	s.rest = s.rest[1:]
	return nil
}

func (s *SliceIterator) Key() []byte {
	return s.head().Key
}

func (s *SliceIterator) Value() []byte {
	return s.head().Value
}

func (s *SliceIterator) Close() {
	s.rest = nil
}

func (s *SliceIterator) head() Model {
	if len(s.rest) == 0 {
		panic("iterator exhausted")
	}
	return s.rest[0]
}

// EmptyKVStore holds nothing and drops all writes. MemStore caches on top
// of it.
type EmptyKVStore struct{}

var _ KVStore = EmptyKVStore{}

func (EmptyKVStore) Get(key []byte) ([]byte, error) { return nil, nil }
func (EmptyKVStore) Has(key []byte) (bool, error)   { return false, nil }
func (EmptyKVStore) Set(key, value []byte) error    { return nil }
func (EmptyKVStore) Delete(key []byte) error        { return nil }

func (EmptyKVStore) Iterator(start, end []byte) (Iterator, error) {
	return NewSliceIterator(nil), nil
}

func (EmptyKVStore) ReverseIterator(start, end []byte) (Iterator, error) {
	return NewSliceIterator(nil), nil
}

func (e EmptyKVStore) NewBatch() Batch {
	return NewNonAtomicBatch(e)
}

// Op is a single pending write, either a new value or a delete.
type Op struct {
	key    []byte
	value  []byte
	delete bool
}

// Apply performs the write on out.
func (o Op) Apply(out SetDeleter) error {
	if o.delete {
		return out.Delete(o.key)
	}
	return out.Set(o.key, o.value)
}

func SetOp(key, value []byte) Op {
	return Op{key: key, value: value}
}

func DelOp(key []byte) Op {
	return Op{key: key, delete: true}
}

// NonAtomicBatch queues writes and replays them on Write, in order. A
// failed write leaves the queue untouched but the store partially
// written, so it only serves stores that cannot fail, like caches.
type NonAtomicBatch struct {
	out SetDeleter
	ops []Op
}

var _ Batch = (*NonAtomicBatch)(nil)

func NewNonAtomicBatch(out SetDeleter) *NonAtomicBatch {
	return &NonAtomicBatch{out: out}
}

func (b *NonAtomicBatch) Set(key, value []byte) error {
	b.ops = append(b.ops, SetOp(key, value))
	return nil
}

func (b *NonAtomicBatch) Delete(key []byte) error {
	b.ops = append(b.ops, DelOp(key))
	return nil
}

func (b *NonAtomicBatch) Write() error {
	for _, op := range b.ops {
		if err := op.Apply(b.out); err != nil {
			return err
		}
	}
	b.Reset()
	return nil
}

// Reset drops all queued writes.
func (b *NonAtomicBatch) Reset() {
	b.ops = nil
}

// ShowOps returns the queued writes, in order.
func (b *NonAtomicBatch) ShowOps() []Op {
	return b.ops
}
