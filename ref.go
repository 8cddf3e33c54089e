package fieldref

import (
	"bytes"
	"reflect"
	"strconv"
	"sync/atomic"
	"unsafe"

	"github.com/wippyai/fieldref/errors"
	"github.com/wippyai/fieldref/layout"
)

// Ref is a typed view of one field of one instance. It owns no storage.
type Ref struct {
	typ    reflect.Type
	ptr    unsafe.Pointer
	offset uintptr
	index  int
	qual   Qualifier
}

// NewRef binds a reference to the value of type t at ptr.
// ptr must address a live value of type t for as long as the Ref is used.
func NewRef(ptr unsafe.Pointer, t reflect.Type, index int, offset uintptr, q Qualifier) Ref {
	return Ref{typ: t, ptr: ptr, offset: offset, index: index, qual: q}
}

// Index is the field position within its enclosing aggregate.
func (r Ref) Index() int { return r.index }

// Offset is the byte offset of the field within its enclosing aggregate.
func (r Ref) Offset() uintptr { return r.offset }

// Type is the declared type of the field.
func (r Ref) Type() reflect.Type { return r.typ }

func (r Ref) Qualifier() Qualifier { return r.qual }

// Addr returns the raw field address.
func (r Ref) Addr() unsafe.Pointer { return r.ptr }

// Value returns the field as a reflect.Value. For non-const references it is
// addressable and settable; for const references it is a read-only copy.
func (r Ref) Value() reflect.Value {
	v := reflect.NewAt(r.typ, r.ptr).Elem()
	if r.qual.IsConst() {
		return v.Convert(r.typ)
	}
	return v
}

// Interface returns a copy of the current field value.
func (r Ref) Interface() any {
	if r.qual.IsVolatile() {
		if v, ok := r.atomicLoad(); ok {
			return v.Interface()
		}
	}
	return reflect.NewAt(r.typ, r.ptr).Elem().Interface()
}

// Bytes returns a copy of the field's bytes.
func (r Ref) Bytes() []byte {
	return bytes.Clone(unsafe.Slice((*byte)(r.ptr), r.typ.Size()))
}

// Set assigns v to the field.
func (r Ref) Set(v any) error {
	if r.qual.IsConst() {
		return errors.ReadOnly(r.path(), r.typ.String())
	}
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		if !nilable(r.typ) {
			return errors.TypeMismatch(errors.PhaseAccess, r.path(), "nil", r.typ.String())
		}
		rv = reflect.Zero(r.typ)
	}
	if !rv.Type().AssignableTo(r.typ) {
		return errors.TypeMismatch(errors.PhaseAccess, r.path(), rv.Type().String(), r.typ.String())
	}
	if r.qual.IsVolatile() && r.atomicStore(rv) {
		return nil
	}
	reflect.NewAt(r.typ, r.ptr).Elem().Set(rv)
	return nil
}

func (r Ref) String() string {
	return "ref[" + strconv.Itoa(r.index) + "]@" + strconv.FormatUint(uint64(r.offset), 10) + " " + r.qual.String() + " " + r.typ.String()
}

func (r Ref) path() []string {
	return []string{strconv.Itoa(r.index)}
}

func nilable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return true
	}
	return false
}

// atomicWidth reports the access width usable for atomic operations on the
// field, or 0 when the field must be accessed non-atomically.
func (r Ref) atomicWidth() uintptr {
	if !layout.KindOf(r.typ).IsScalar() {
		return 0
	}
	size := r.typ.Size()
	if (size != 4 && size != 8) || uintptr(r.ptr)%size != 0 {
		return 0
	}
	return size
}

func (r Ref) atomicLoad() (reflect.Value, bool) {
	width := r.atomicWidth()
	if width == 0 {
		return reflect.Value{}, false
	}
	out := reflect.New(r.typ)
	if width == 4 {
		*(*uint32)(out.UnsafePointer()) = atomic.LoadUint32((*uint32)(r.ptr))
	} else {
		*(*uint64)(out.UnsafePointer()) = atomic.LoadUint64((*uint64)(r.ptr))
	}
	return out.Elem(), true
}

func (r Ref) atomicStore(v reflect.Value) bool {
	width := r.atomicWidth()
	if width == 0 {
		return false
	}
	tmp := reflect.New(r.typ)
	tmp.Elem().Set(v)
	if width == 4 {
		atomic.StoreUint32((*uint32)(r.ptr), *(*uint32)(tmp.UnsafePointer()))
	} else {
		atomic.StoreUint64((*uint64)(r.ptr), *(*uint64)(tmp.UnsafePointer()))
	}
	return true
}
