package layout

import (
	"fmt"
	"math/bits"
	"reflect"
	"strings"

	"github.com/wippyai/fieldref/errors"
)

// Descriptor is the structural description of one field.
// Type may be nil for layout-only signatures.
type Descriptor struct {
	Type  reflect.Type
	Size  uintptr
	Align uintptr
	Kind  Kind
}

// ForType describes a field of type t.
func ForType(t reflect.Type) Descriptor {
	return Descriptor{
		Type:  t,
		Size:  t.Size(),
		Align: uintptr(t.Align()),
		Kind:  KindOf(t),
	}
}

// ForKind describes a field of a fixed-layout kind on the host platform.
func ForKind(k Kind) (Descriptor, bool) {
	t := k.HostType()
	if t == nil {
		return Descriptor{}, false
	}
	d := ForType(t)
	d.Kind = k
	return d, true
}

// MustKind is ForKind for kinds known to have a host type.
func MustKind(k Kind) Descriptor {
	d, ok := ForKind(k)
	if !ok {
		panic("layout: kind " + k.String() + " has no host type")
	}
	return d
}

// Bytes describes an opaque field of explicit size and alignment.
func Bytes(size, align uintptr) Descriptor {
	return Descriptor{Size: size, Align: align, Kind: KindBytes}
}

// Validate checks the descriptor is internally consistent.
func (d Descriptor) Validate() error {
	if d.Align == 0 || bits.OnesCount64(uint64(d.Align)) != 1 {
		return errors.New(errors.PhaseBind, errors.KindInvalidSignature).
			Detail("alignment %d is not a power of two", d.Align).
			Value(d.Align).
			Build()
	}
	if d.Size%d.Align != 0 {
		return errors.New(errors.PhaseBind, errors.KindInvalidSignature).
			Detail("size %d is not a multiple of alignment %d", d.Size, d.Align).
			Build()
	}
	if d.Type != nil && (d.Type.Size() != d.Size || uintptr(d.Type.Align()) != d.Align) {
		return errors.New(errors.PhaseBind, errors.KindTypeMismatch).
			GoType(d.Type.String()).
			Detail("declared size/align %d/%d, descriptor %d/%d", d.Type.Size(), d.Type.Align(), d.Size, d.Align).
			Build()
	}
	return nil
}

func (d Descriptor) String() string {
	name := d.Kind.String()
	if d.Type != nil {
		name = d.Type.String()
	}
	return fmt.Sprintf("%s(%d/%d)", name, d.Size, d.Align)
}

// Signature is the ordered list of field descriptors of an aggregate.
type Signature []Descriptor

// Of builds a signature from declared field types.
func Of(types ...reflect.Type) Signature {
	sig := make(Signature, len(types))
	for i, t := range types {
		sig[i] = ForType(t)
	}
	return sig
}

// Equal reports whether both signatures describe the same fields.
func (s Signature) Equal(o Signature) bool {
	if len(s) != len(o) {
		return false
	}
	for i := range s {
		if s[i] != o[i] {
			return false
		}
	}
	return true
}

func (s Signature) String() string {
	parts := make([]string, len(s))
	for i, d := range s {
		parts[i] = d.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
