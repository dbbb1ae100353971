package orm

import (
	"encoding/binary"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
)

// Sequence maintains a counter and hands out identifiers. The first
// identifier is zero and every following one is greater by one.
type Sequence struct {
	id []byte
}

// NewSequence returns a sequence counter. Sequence is using following pattern
// to construct a key:
//    _s.<bucket>:<name>
func NewSequence(bucket, name string) Sequence {
	id := "_s." + bucket + ":" + name
	return Sequence{
		id: []byte(id),
	}
}

// NextID returns the next free identifier and advances the sequence.
func (s Sequence) NextID(db vault.KVStore) (uint64, error) {
	val, err := s.Count(db)
	if err != nil {
		return 0, err
	}
	if err := db.Set(s.id, EncodeSequence(val+1)); err != nil {
		return 0, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return val, nil
}

// Count returns how many identifiers were handed out. This method does not
// modify the sequence state.
func (s Sequence) Count(db vault.ReadOnlyKVStore) (uint64, error) {
	raw, err := db.Get(s.id)
	if err != nil {
		return 0, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return DecodeSequence(raw), nil
}

// DecodeSequence reads a big endian uint64, nil is zero.
func DecodeSequence(bz []byte) uint64 {
	if bz == nil {
		return 0
	}
	return binary.BigEndian.Uint64(bz)
}

// EncodeSequence writes val as 8 bytes big endian, which keeps the byte
// order equal to the numeric order.
func EncodeSequence(val uint64) []byte {
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, val)
	return bz
}

// ValidateSequence returns an error if this is not an 8-byte
// sequence value
func ValidateSequence(id []byte) error {
	if len(id) == 0 {
		return errors.Wrap(errors.ErrEmpty, "sequence missing")
	}
	if len(id) != 8 {
		return errors.Wrap(errors.ErrInput, "sequence is invalid length (expect 8 bytes)")
	}
	return nil
}
