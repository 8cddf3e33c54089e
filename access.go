package fieldref

import (
	"reflect"

	"github.com/wippyai/fieldref/errors"
)

// Pointer returns a typed pointer to the field. T must be the declared type
// and the reference must not be const.
func Pointer[T any](r Ref) (*T, error) {
	if err := checkType[T](r); err != nil {
		return nil, err
	}
	if r.qual.IsConst() {
		return nil, errors.ReadOnly(r.path(), r.typ.String())
	}
	return (*T)(r.ptr), nil
}

// Load reads the field as T.
func Load[T any](r Ref) (T, error) {
	var zero T
	if err := checkType[T](r); err != nil {
		return zero, err
	}
	if r.qual.IsVolatile() {
		if v, ok := r.atomicLoad(); ok {
			return v.Interface().(T), nil
		}
	}
	return *(*T)(r.ptr), nil
}

// Store writes v to the field.
func Store[T any](r Ref, v T) error {
	if err := checkType[T](r); err != nil {
		return err
	}
	if r.qual.IsConst() {
		return errors.ReadOnly(r.path(), r.typ.String())
	}
	if r.qual.IsVolatile() && r.atomicStore(reflect.ValueOf(&v).Elem()) {
		return nil
	}
	*(*T)(r.ptr) = v
	return nil
}

func checkType[T any](r Ref) error {
	if want := reflect.TypeFor[T](); want != r.typ {
		return errors.TypeMismatch(errors.PhaseAccess, r.path(), want.String(), r.typ.String())
	}
	return nil
}
