package structref

import (
	"cmp"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/wippyai/fieldref"
	"github.com/wippyai/fieldref/errors"
)

// Equal reports whether both sequences have the same length, the same
// declared types and deeply equal values.
func Equal(a, b fieldref.Flat) bool {
	if a.Len() != b.Len() {
		return false
	}
	for i := range a.Len() {
		ra, rb := a.At(i), b.At(i)
		if ra.Type() != rb.Type() {
			return false
		}
		if !reflect.DeepEqual(ra.Interface(), rb.Interface()) {
			return false
		}
	}
	return true
}

// Compare orders two sequences lexicographically. A proper prefix orders
// first. Fields must be of matching ordered kinds.
func Compare(a, b fieldref.Flat) (int, error) {
	n := min(a.Len(), b.Len())
	for i := range n {
		c, err := compareRef(a.At(i), b.At(i))
		if err != nil {
			return 0, err
		}
		if c != 0 {
			return c, nil
		}
	}
	return cmp.Compare(a.Len(), b.Len()), nil
}

func compareRef(a, b fieldref.Ref) (int, error) {
	if a.Type() != b.Type() {
		return 0, errors.TypeMismatch(errors.PhaseAccess, []string{strconv.Itoa(a.Index())}, b.Type().String(), a.Type().String())
	}
	va, vb := reflect.ValueOf(a.Interface()), reflect.ValueOf(b.Interface())
	switch va.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return cmp.Compare(va.Int(), vb.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return cmp.Compare(va.Uint(), vb.Uint()), nil
	case reflect.Float32, reflect.Float64:
		return cmp.Compare(va.Float(), vb.Float()), nil
	case reflect.String:
		return strings.Compare(va.String(), vb.String()), nil
	case reflect.Bool:
		switch {
		case va.Bool() == vb.Bool():
			return 0, nil
		case vb.Bool():
			return -1, nil
		default:
			return 1, nil
		}
	default:
		return 0, errors.New(errors.PhaseAccess, errors.KindUnsupported).
			Path(strconv.Itoa(a.Index())).
			GoType(a.Type().String()).
			Detail("values of kind %s are not ordered", a.Type().Kind()).
			Build()
	}
}

// Format renders the sequence values as {v0, v1, ...}.
func Format(f fieldref.Flat) string {
	var b strings.Builder
	b.WriteByte('{')
	for i, r := range f.All() {
		if i > 0 {
			b.WriteString(", ")
		}
		v := r.Interface()
		if s, ok := v.(string); ok {
			b.WriteString(strconv.Quote(s))
		} else {
			fmt.Fprint(&b, v)
		}
	}
	b.WriteByte('}')
	return b.String()
}
