package discover

import (
	"reflect"
	"sync"

	"go.uber.org/zap"

	"github.com/wippyai/fieldref/errors"
	"github.com/wippyai/fieldref/layout"
)

// Field is one declared field of a struct.
type Field struct {
	// Nested is the shape of an expandable field, nil for leaves.
	Nested     *Shape
	Name       string
	Descriptor layout.Descriptor
	Index      int
	Expandable bool
}

// Shape is the discovered field list of a struct type, in declaration order.
type Shape struct {
	Type   reflect.Type
	Fields []Field
}

func (s *Shape) NumFields() int { return len(s.Fields) }

// Signature returns the layout signature of the shape's direct fields.
func (s *Shape) Signature() layout.Signature {
	sig := make(layout.Signature, len(s.Fields))
	for i, f := range s.Fields {
		sig[i] = f.Descriptor
	}
	return sig
}

// LeafCount counts leaf fields, descending into expandable fields.
func (s *Shape) LeafCount() int {
	n := 0
	for _, f := range s.Fields {
		if f.Expandable {
			n += f.Nested.LeafCount()
		} else {
			n++
		}
	}
	return n
}

type options struct {
	allowUnexported bool
	expandNested    bool
}

// Option configures a Discoverer.
type Option func(*options)

// WithUnexported accepts structs with unexported fields.
func WithUnexported(allow bool) Option {
	return func(o *options) { o.allowUnexported = allow }
}

// WithExpandNested controls whether nested struct fields are expanded.
func WithExpandNested(expand bool) Option {
	return func(o *options) { o.expandNested = expand }
}

// Discoverer caches shapes per type. Safe for concurrent use.
type Discoverer struct {
	cache sync.Map // reflect.Type -> *Shape
	opts  options
}

func New(opts ...Option) *Discoverer {
	d := &Discoverer{opts: options{expandNested: true}}
	for _, o := range opts {
		o(&d.opts)
	}
	return d
}

// Discover returns the shape of t.
func (d *Discoverer) Discover(t reflect.Type) (*Shape, error) {
	if t == nil {
		return nil, errors.NilPointer(errors.PhaseDiscover, nil, "<nil>")
	}
	if cached, ok := d.cache.Load(t); ok {
		return cached.(*Shape), nil
	}

	s, err := d.discover(t)
	if err != nil {
		Logger().Debug("discovery rejected type", zap.Stringer("type", t), zap.Error(err))
		return nil, err
	}

	actual, _ := d.cache.LoadOrStore(t, s)
	return actual.(*Shape), nil
}

func (d *Discoverer) discover(t reflect.Type) (*Shape, error) {
	switch t.Kind() {
	case reflect.Struct:
	case reflect.Ptr, reflect.UnsafePointer, reflect.Interface:
		return nil, errors.New(errors.PhaseDiscover, errors.KindQualified).
			GoType(t.String()).
			Detail("pass the struct, not a reference to it").
			Build()
	default:
		return nil, errors.New(errors.PhaseDiscover, errors.KindUnsupported).
			GoType(t.String()).
			Detail("aggregate must be a struct, got %s", t.Kind()).
			Build()
	}

	fields := make([]Field, t.NumField())
	for i := range fields {
		sf := t.Field(i)

		if sf.Anonymous && sf.Type.Kind() == reflect.Interface {
			return nil, errors.New(errors.PhaseDiscover, errors.KindPolymorphic).
				Path(sf.Name).
				GoType(t.String()).
				Detail("embedded interface %s", sf.Type).
				Build()
		}
		if !sf.IsExported() && sf.Name != "_" && !d.opts.allowUnexported {
			return nil, errors.New(errors.PhaseDiscover, errors.KindUnexported).
				Path(sf.Name).
				GoType(t.String()).
				Detail("field is not exported").
				Build()
		}

		f := Field{
			Name:       sf.Name,
			Index:      i,
			Descriptor: layout.ForType(sf.Type),
		}
		if d.opts.expandNested && sf.Type.Kind() == reflect.Struct && sf.Name != "_" {
			if nested, err := d.Discover(sf.Type); err == nil {
				f.Nested = nested
				f.Expandable = true
			}
		}
		fields[i] = f
	}

	return &Shape{Type: t, Fields: fields}, nil
}
