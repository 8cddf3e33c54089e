package resolver

import (
	"reflect"
	"unsafe"

	"github.com/wippyai/fieldref"
)

// Instance is a qualified view of one aggregate value.
type Instance struct {
	typ  reflect.Type
	ptr  unsafe.Pointer
	qual fieldref.Qualifier
}

// At views the value of type t at ptr.
func At(ptr unsafe.Pointer, t reflect.Type, q fieldref.Qualifier) Instance {
	return Instance{typ: t, ptr: ptr, qual: q}
}

func Of[T any](p *T) Instance {
	return At(unsafe.Pointer(p), reflect.TypeFor[T](), fieldref.Mutable)
}

func ConstOf[T any](p *T) Instance {
	return At(unsafe.Pointer(p), reflect.TypeFor[T](), fieldref.Const)
}

func VolatileOf[T any](p *T) Instance {
	return At(unsafe.Pointer(p), reflect.TypeFor[T](), fieldref.Volatile)
}

func ConstVolatileOf[T any](p *T) Instance {
	return At(unsafe.Pointer(p), reflect.TypeFor[T](), fieldref.ConstVolatile)
}

func (i Instance) Type() reflect.Type { return i.typ }

func (i Instance) Pointer() unsafe.Pointer { return i.ptr }

func (i Instance) Qualifier() fieldref.Qualifier { return i.qual }

func (i Instance) IsNil() bool { return i.ptr == nil }

// Field views the member of type t at offset, keeping the qualifier.
func (i Instance) Field(offset uintptr, t reflect.Type) Instance {
	return Instance{typ: t, ptr: unsafe.Add(i.ptr, offset), qual: i.qual}
}

// WithQualifier returns the same instance under qualifier q.
func (i Instance) WithQualifier(q fieldref.Qualifier) Instance {
	i.qual = q
	return i
}
