package orm

import (
	"bytes"
	"sort"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/vault/errors"
)

// MultiRef contains a sorted set of references to other objects
type MultiRef struct {
	Refs [][]byte `protobuf:"bytes,1,rep,name=refs,proto3" json:"refs,omitempty"`
}

var _ CloneableData = (*MultiRef)(nil)

// multiRefWire shares the layout of MultiRef without its method set, so
// that the reflection based codec does not call back into Marshal.
type multiRefWire MultiRef

func (m *multiRefWire) Reset()         { *m = multiRefWire{} }
func (m *multiRefWire) String() string { return proto.CompactTextString(m) }
func (*multiRefWire) ProtoMessage()    {}

// Marshal encodes the set
func (m *MultiRef) Marshal() ([]byte, error) {
	return proto.Marshal((*multiRefWire)(m))
}

// Unmarshal decodes the set
func (m *MultiRef) Unmarshal(bz []byte) error {
	return proto.Unmarshal(bz, (*multiRefWire)(m))
}

// MultiRefFromBytes creates a MultiRef with any number of initial elements
func MultiRefFromBytes(refs ...[]byte) (*MultiRef, error) {
	m := new(MultiRef)
	for _, r := range refs {
		if err := m.Add(r); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Validate just returns an error if any ref is empty
func (m *MultiRef) Validate() error {
	for _, r := range m.Refs {
		if len(r) == 0 {
			return errors.Wrap(errors.ErrEmpty, "ref")
		}
	}
	return nil
}

// Copy does a shallow copy of the slice of refs and creates a new MultiRef
func (m *MultiRef) Copy() CloneableData {
	cpy := make([][]byte, len(m.Refs))
	copy(cpy, m.Refs)
	return &MultiRef{Refs: cpy}
}

// Add inserts this reference in the multiref, sorted by order.
// Returns an error if already there
func (m *MultiRef) Add(ref []byte) error {
	i, found := m.findRef(ref)
	if found {
		return errors.Wrap(errors.ErrDuplicate, "cannot add a ref twice")
	}
	// append to end
	if i == len(m.Refs) {
		m.Refs = append(m.Refs, ref)
		return nil
	}
	// or insert in the middle
	m.Refs = append(m.Refs, nil)
	copy(m.Refs[i+1:], m.Refs[i:])
	m.Refs[i] = ref
	return nil
}

// Remove removes this reference from the multiref.
// Returns an error if already there
func (m *MultiRef) Remove(ref []byte) error {
	i, found := m.findRef(ref)
	if !found {
		return errors.Wrap(errors.ErrNotFound, "cannot remove non-existent ref")
	}
	m.Refs = append(m.Refs[:i], m.Refs[i+1:]...)
	return nil
}

// findRef returns the position of ref in the sorted set, or where it
// should be inserted.
func (m *MultiRef) findRef(ref []byte) (int, bool) {
	i := sort.Search(len(m.Refs), func(i int) bool {
		return bytes.Compare(m.Refs[i], ref) >= 0
	})
	return i, i < len(m.Refs) && bytes.Equal(m.Refs[i], ref)
}
