package memview

import (
	"reflect"
	"unsafe"

	"github.com/tetratelabs/wazero/api"

	"github.com/wippyai/fieldref"
	"github.com/wippyai/fieldref/errors"
	"github.com/wippyai/fieldref/resolver"
)

// View maps guest addresses to instances of one bound struct type.
type View struct {
	mem api.Memory
	res *resolver.Resolver
	err error
}

// New returns a view of res over mem. Linear memory is not scanned by the
// garbage collector, so types holding Go pointers are refused by At.
func New(mem api.Memory, res *resolver.Resolver) *View {
	v := &View{mem: mem, res: res}
	if path, ok := pointerPath(res.Type(), nil); ok {
		v.err = errors.New(errors.PhaseView, errors.KindUnsupported).
			Path(path...).
			GoType(res.Type().String()).
			Detail("type holds Go pointers and cannot live in linear memory").
			Build()
	}
	return v
}

// pointerPath reports the first field path of t that holds a Go pointer.
func pointerPath(t reflect.Type, path []string) ([]string, bool) {
	switch t.Kind() {
	case reflect.Ptr, reflect.UnsafePointer, reflect.String, reflect.Slice,
		reflect.Map, reflect.Interface, reflect.Func, reflect.Chan:
		return path, true
	case reflect.Array:
		if t.Len() == 0 {
			return nil, false
		}
		return pointerPath(t.Elem(), append(path, "[]"))
	case reflect.Struct:
		for i := range t.NumField() {
			if p, ok := pointerPath(t.Field(i).Type, append(path[:len(path):len(path)], t.Field(i).Name)); ok {
				return p, true
			}
		}
	}
	return nil, false
}

// Resolver returns the resolver the view places.
func (v *View) Resolver() *resolver.Resolver { return v.res }

// At returns an instance of the bound type at guest address ptr.
func (v *View) At(ptr uint32, q fieldref.Qualifier) (resolver.Instance, error) {
	if v.err != nil {
		return resolver.Instance{}, v.err
	}
	t := v.res.Type()
	size := uint32(t.Size())
	align := uint32(t.Align())

	if size == 0 {
		return resolver.Instance{}, errors.New(errors.PhaseView, errors.KindUnsupported).
			GoType(t.String()).
			Detail("zero-sized type has no guest address").
			Build()
	}
	if ptr%align != 0 {
		return resolver.Instance{}, errors.New(errors.PhaseView, errors.KindMisaligned).
			GoType(t.String()).
			Detail("guest address %#x not aligned to %d", ptr, align).
			Value(ptr).
			Build()
	}

	buf, ok := v.mem.Read(ptr, size)
	if !ok {
		return resolver.Instance{}, errors.New(errors.PhaseView, errors.KindOutOfBounds).
			GoType(t.String()).
			Detail("[%#x, %#x) exceeds memory size %d", ptr, uint64(ptr)+uint64(size), v.mem.Size()).
			Value(ptr).
			Build()
	}

	base := unsafe.Pointer(unsafe.SliceData(buf))
	if uintptr(base)%uintptr(align) != 0 {
		return resolver.Instance{}, errors.New(errors.PhaseView, errors.KindMisaligned).
			GoType(t.String()).
			Detail("host address %p not aligned to %d", base, align).
			Build()
	}

	return resolver.At(base, t, q), nil
}

// Get returns field idx of the value at ptr.
func (v *View) Get(ptr uint32, idx int, q fieldref.Qualifier) (fieldref.Ref, error) {
	inst, err := v.At(ptr, q)
	if err != nil {
		return fieldref.Ref{}, err
	}
	if idx < 0 || idx >= v.res.NumFields() {
		return fieldref.Ref{}, errors.OutOfBounds(errors.PhaseView, nil, idx, v.res.NumFields())
	}
	return v.res.Get(inst, idx), nil
}
