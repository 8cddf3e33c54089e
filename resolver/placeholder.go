package resolver

import (
	"reflect"
	"strconv"

	"github.com/wippyai/fieldref/errors"
	"github.com/wippyai/fieldref/layout"
)

var (
	byteType = reflect.TypeFor[byte]()

	// Candidate element types for the zero-length alignment array of a member.
	alignTypes = []reflect.Type{
		reflect.TypeFor[uint8](),
		reflect.TypeFor[uint16](),
		reflect.TypeFor[uint32](),
		reflect.TypeFor[uint64](),
	}
)

func alignType(align uintptr) (reflect.Type, bool) {
	for _, t := range alignTypes {
		if uintptr(t.Align()) == align {
			return t, true
		}
	}
	return nil, false
}

// storage returns a trivially constructible type of exactly d.Size bytes
// aligned to d.Align.
func storage(d layout.Descriptor, idx int) (reflect.Type, error) {
	if err := d.Validate(); err != nil {
		if e, ok := err.(*errors.Error); ok {
			e.Path = []string{strconv.Itoa(idx)}
		}
		return nil, err
	}
	at, ok := alignType(d.Align)
	if !ok {
		return nil, errors.New(errors.PhaseBind, errors.KindUnsupported).
			Path(strconv.Itoa(idx)).
			Detail("no host type has alignment %d", d.Align).
			Value(d.Align).
			Build()
	}
	return reflect.StructOf([]reflect.StructField{
		{Name: "A", Type: reflect.ArrayOf(0, at)},
		{Name: "B", Type: reflect.ArrayOf(int(d.Size), byteType)},
	}), nil
}

// placeholder synthesizes the layout-compatible structure for sig.
func placeholder(sig layout.Signature) (reflect.Type, error) {
	fields := make([]reflect.StructField, len(sig))
	total := uintptr(0)
	for i, d := range sig {
		if d.Size > layout.MaxSize || d.Align > layout.MaxSize {
			return nil, tooLarge(i, d.Size)
		}
		end := layout.AlignTo(total, d.Align)
		if end > layout.MaxSize-d.Size {
			return nil, tooLarge(i, end+d.Size)
		}
		total = end + d.Size

		st, err := storage(d, i)
		if err != nil {
			return nil, err
		}
		fields[i] = reflect.StructField{Name: "F" + strconv.Itoa(i), Type: st}
	}
	return reflect.StructOf(fields), nil
}

func tooLarge(idx int, size uintptr) error {
	return errors.New(errors.PhaseBind, errors.KindInvalidSignature).
		Path(strconv.Itoa(idx)).
		Detail("layout reaches %d bytes, limit is %d", size, layout.MaxSize).
		Value(size).
		Build()
}

// measure takes member addresses on one transient placeholder value.
func measure(pt reflect.Type) []uintptr {
	p := reflect.New(pt)
	base := p.Pointer()
	elem := p.Elem()

	offsets := make([]uintptr, pt.NumField())
	for i := range offsets {
		offsets[i] = elem.Field(i).Addr().Pointer() - base
	}
	return offsets
}

// Measure lays out sig on a placeholder structure. It needs no real type, so
// it also serves layout-only signatures whose descriptors have no Type.
func Measure(sig layout.Signature) (layout.Info, error) {
	pt, err := placeholder(sig)
	if err != nil {
		return layout.Info{}, err
	}
	return layout.Info{
		Offsets: measure(pt),
		Size:    pt.Size(),
		Align:   uintptr(pt.Align()),
	}, nil
}
