package vault

import (
	"reflect"

	"github.com/iov-one/vault/errors"
)

// assign sets the value of src into dst. Destination must be a pointer to
// the same type as src or to the type src points to.
func assign(dst, src interface{}) error {
	dv := reflect.ValueOf(dst)
	if dv.Kind() != reflect.Ptr || dv.IsNil() {
		return errors.Wrap(errors.ErrHuman, "destination must be a non nil pointer")
	}
	sv := reflect.ValueOf(src)
	if sv.Type() == dv.Type() {
		sv = sv.Elem()
	}
	if !sv.Type().AssignableTo(dv.Elem().Type()) {
		return errors.Wrapf(errors.ErrType, "cannot load %T into %T", src, dst)
	}
	dv.Elem().Set(sv)
	return nil
}
