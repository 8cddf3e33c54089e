package resolver

import (
	"reflect"
	"strconv"
	"unsafe"

	"go.uber.org/zap"

	"github.com/wippyai/fieldref"
	"github.com/wippyai/fieldref/errors"
	"github.com/wippyai/fieldref/layout"
)

// Resolver is bound to one (struct type, layout signature) pair.
// It is immutable and safe for concurrent use.
type Resolver struct {
	typ     reflect.Type
	sig     layout.Signature
	offsets []uintptr
}

// New binds a resolver. Every failure is permanent for the pair.
func New(t reflect.Type, sig layout.Signature) (*Resolver, error) {
	if err := checkTarget(t); err != nil {
		return nil, err
	}

	for i, d := range sig {
		if d.Type == nil {
			return nil, errors.New(errors.PhaseBind, errors.KindInvalidSignature).
				Path(strconv.Itoa(i)).
				GoType(t.String()).
				Detail("descriptor has no declared type").
				Build()
		}
	}

	info, err := Measure(sig)
	if err != nil {
		if e, ok := err.(*errors.Error); ok && e.GoType == "" {
			e.GoType = t.String()
		}
		return nil, err
	}

	if info.Size != t.Size() {
		return nil, errors.New(errors.PhaseBind, errors.KindSizeMismatch).
			GoType(t.String()).
			Detail("member sequence does not indicate correct size for struct type: %d != %d", info.Size, t.Size()).
			Build()
	}
	if info.Align != uintptr(t.Align()) {
		return nil, errors.New(errors.PhaseBind, errors.KindAlignMismatch).
			GoType(t.String()).
			Detail("member sequence does not indicate correct alignment for struct type: %d != %d", info.Align, t.Align()).
			Build()
	}

	Logger().Debug("resolver bound",
		zap.Stringer("type", t),
		zap.Int("fields", len(sig)),
		zap.Uintptr("size", info.Size),
	)

	return &Resolver{
		typ:     t,
		sig:     append(layout.Signature(nil), sig...),
		offsets: info.Offsets,
	}, nil
}

func checkTarget(t reflect.Type) error {
	if t == nil {
		return errors.NilPointer(errors.PhaseBind, nil, "<nil>")
	}
	switch t.Kind() {
	case reflect.Struct:
		return nil
	case reflect.Ptr, reflect.UnsafePointer, reflect.Interface:
		return errors.New(errors.PhaseBind, errors.KindQualified).
			GoType(t.String()).
			Detail("reference must be stripped from the aggregate type before binding").
			Build()
	default:
		return errors.New(errors.PhaseBind, errors.KindUnsupported).
			GoType(t.String()).
			Detail("aggregate must be a struct, got %s", t.Kind()).
			Build()
	}
}

func (r *Resolver) Type() reflect.Type { return r.typ }

func (r *Resolver) NumFields() int { return len(r.offsets) }

// Signature returns a copy of the bound signature.
func (r *Resolver) Signature() layout.Signature {
	return append(layout.Signature(nil), r.sig...)
}

// Offset returns the byte offset of field idx.
func (r *Resolver) Offset(idx int) uintptr { return r.offsets[idx] }

// Offsets returns a copy of the offset table.
func (r *Resolver) Offsets() []uintptr {
	return append([]uintptr(nil), r.offsets...)
}

// Get returns a reference to field idx of inst, qualified like inst.
// It panics when idx is out of range or inst is of another type.
func (r *Resolver) Get(inst Instance, idx int) fieldref.Ref {
	if inst.typ != r.typ {
		panic(errors.New(errors.PhaseAccess, errors.KindTypeMismatch).
			GoType(typeName(inst.typ)).
			Detail("resolver is bound to %s", r.typ).
			Build())
	}
	off := r.offsets[idx]
	return fieldref.NewRef(unsafe.Add(inst.ptr, off), r.sig[idx].Type, idx, off, inst.qual)
}

// Getter exposes Get as a field source accessor whose elements are all leaves.
func (r *Resolver) Getter() fieldref.Getter[Instance] {
	return fieldref.GetterFunc[Instance](func(inst Instance, idx int) fieldref.Element {
		return fieldref.Leaf(r.Get(inst, idx))
	})
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}
