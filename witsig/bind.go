package witsig

import (
	"reflect"
	"sync"

	"go.bytecodealliance.org/wit"

	"github.com/wippyai/fieldref/errors"
	"github.com/wippyai/fieldref/layout"
	"github.com/wippyai/fieldref/resolver"
)

var defaultCalculator = sync.OnceValue(NewCalculator)

// Bind binds goType to the layout of the WIT record or tuple witType.
func Bind(goType reflect.Type, witType wit.Type) (*resolver.Resolver, error) {
	return defaultCalculator().Bind(goType, witType)
}

// Signature pairs the i-th member of witType with the i-th field of goType.
// Sizes and alignments come from the Canonical ABI, declared types from Go.
func (c *Calculator) Signature(goType reflect.Type, witType wit.Type) (layout.Signature, Info, error) {
	members, err := membersOf(witType)
	if err != nil {
		return nil, Info{}, err
	}
	if goType == nil || goType.Kind() != reflect.Struct {
		return nil, Info{}, errors.New(errors.PhaseBind, errors.KindUnsupported).
			GoType(typeName(goType)).
			Detail("WIT record must mirror a Go struct").
			Build()
	}
	if goType.NumField() != len(members) {
		return nil, Info{}, errors.New(errors.PhaseBind, errors.KindInvalidSignature).
			GoType(goType.String()).
			Detail("%d fields for %d WIT members", goType.NumField(), len(members)).
			Build()
	}

	sig := make(layout.Signature, len(members))
	for i, m := range members {
		abi := c.Calculate(m)
		ft := goType.Field(i).Type
		sig[i] = layout.Descriptor{
			Type:  ft,
			Size:  uintptr(abi.Size),
			Align: uintptr(abi.Align),
			Kind:  layout.KindOf(ft),
		}
	}
	return sig, c.Calculate(witType), nil
}

// Bind returns a resolver for goType laid out as witType.
func (c *Calculator) Bind(goType reflect.Type, witType wit.Type) (*resolver.Resolver, error) {
	sig, info, err := c.Signature(goType, witType)
	if err != nil {
		return nil, err
	}
	res, err := resolver.New(goType, sig)
	if err != nil {
		return nil, err
	}
	for i, off := range res.Offsets() {
		if uint32(off) != info.Offsets[i] {
			return nil, errors.New(errors.PhaseBind, errors.KindAlignMismatch).
				Path(goType.Field(i).Name).
				GoType(goType.String()).
				Detail("Go offset %d, canonical ABI offset %d", off, info.Offsets[i]).
				Build()
		}
	}
	return res, nil
}

func membersOf(t wit.Type) ([]wit.Type, error) {
	td, ok := t.(*wit.TypeDef)
	if !ok {
		return nil, errors.Unsupported(errors.PhaseBind, "WIT type is not a record or tuple")
	}
	switch kind := td.Kind.(type) {
	case *wit.Record:
		out := make([]wit.Type, len(kind.Fields))
		for i, f := range kind.Fields {
			out[i] = f.Type
		}
		return out, nil
	case *wit.Tuple:
		return kind.Types, nil
	case wit.Type:
		return membersOf(kind)
	default:
		return nil, errors.Unsupported(errors.PhaseBind, "WIT type definition is not a record or tuple")
	}
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}
