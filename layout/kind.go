package layout

import (
	"reflect"
	"unsafe"
)

type Kind uint8

const (
	KindOpaque Kind = iota
	KindBool
	KindU8
	KindS8
	KindU16
	KindS16
	KindU32
	KindS32
	KindU64
	KindS64
	KindF32
	KindF64
	KindChar
	KindUintptr
	KindPointer
	KindString
	KindSlice
	KindInterface
	KindArray
	KindStruct
	KindBytes
)

var kindNames = [...]string{
	KindOpaque:    "opaque",
	KindBool:      "bool",
	KindU8:        "u8",
	KindS8:        "s8",
	KindU16:       "u16",
	KindS16:       "s16",
	KindU32:       "u32",
	KindS32:       "s32",
	KindU64:       "u64",
	KindS64:       "s64",
	KindF32:       "f32",
	KindF64:       "f64",
	KindChar:      "char",
	KindUintptr:   "uintptr",
	KindPointer:   "ptr",
	KindString:    "string",
	KindSlice:     "slice",
	KindInterface: "interface",
	KindArray:     "array",
	KindStruct:    "struct",
	KindBytes:     "bytes",
}

// Host types for kinds whose layout is fixed by the platform.
var kindTypes = [...]reflect.Type{
	KindBool:      reflect.TypeFor[bool](),
	KindU8:        reflect.TypeFor[uint8](),
	KindS8:        reflect.TypeFor[int8](),
	KindU16:       reflect.TypeFor[uint16](),
	KindS16:       reflect.TypeFor[int16](),
	KindU32:       reflect.TypeFor[uint32](),
	KindS32:       reflect.TypeFor[int32](),
	KindU64:       reflect.TypeFor[uint64](),
	KindS64:       reflect.TypeFor[int64](),
	KindF32:       reflect.TypeFor[float32](),
	KindF64:       reflect.TypeFor[float64](),
	KindChar:      reflect.TypeFor[rune](),
	KindUintptr:   reflect.TypeFor[uintptr](),
	KindPointer:   reflect.TypeFor[unsafe.Pointer](),
	KindString:    reflect.TypeFor[string](),
	KindSlice:     reflect.TypeFor[[]byte](),
	KindInterface: reflect.TypeFor[any](),
	KindBytes:     nil,
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// IsScalar reports whether values of the kind hold no pointers.
func (k Kind) IsScalar() bool {
	return k >= KindBool && k <= KindUintptr
}

// ParseKind resolves a kind by its String form.
func ParseKind(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return Kind(k), true
		}
	}
	return KindOpaque, false
}

// HostType returns the Go type backing k, or nil when k has no fixed layout.
func (k Kind) HostType() reflect.Type {
	if int(k) < len(kindTypes) {
		return kindTypes[k]
	}
	return nil
}

// KindOf classifies a Go type.
func KindOf(t reflect.Type) Kind {
	switch t.Kind() {
	case reflect.Bool:
		return KindBool
	case reflect.Uint8:
		return KindU8
	case reflect.Int8:
		return KindS8
	case reflect.Uint16:
		return KindU16
	case reflect.Int16:
		return KindS16
	case reflect.Uint32:
		return KindU32
	case reflect.Int32:
		return KindS32
	case reflect.Uint64:
		return KindU64
	case reflect.Int64:
		return KindS64
	case reflect.Int:
		if t.Size() == 8 {
			return KindS64
		}
		return KindS32
	case reflect.Uint:
		if t.Size() == 8 {
			return KindU64
		}
		return KindU32
	case reflect.Float32:
		return KindF32
	case reflect.Float64:
		return KindF64
	case reflect.Uintptr:
		return KindUintptr
	case reflect.Ptr, reflect.UnsafePointer, reflect.Map, reflect.Chan, reflect.Func:
		return KindPointer
	case reflect.String:
		return KindString
	case reflect.Slice:
		return KindSlice
	case reflect.Interface:
		return KindInterface
	case reflect.Array:
		return KindArray
	case reflect.Struct:
		return KindStruct
	default:
		return KindOpaque
	}
}
