package structref

import (
	"reflect"
	"sync"

	"go.uber.org/zap"

	"github.com/wippyai/fieldref"
	"github.com/wippyai/fieldref/assemble"
	"github.com/wippyai/fieldref/discover"
	"github.com/wippyai/fieldref/errors"
	"github.com/wippyai/fieldref/resolver"
)

// Reflector binds struct types once and flattens their instances.
// Safe for concurrent use.
type Reflector struct {
	disc     *discover.Discoverer
	cache    *resolver.Cache
	bindings sync.Map // reflect.Type -> *binding
}

// Option configures a Reflector.
type Option func(*Reflector)

// WithDiscoverer sets the discovery facility.
func WithDiscoverer(d *discover.Discoverer) Option {
	return func(r *Reflector) { r.disc = d }
}

// WithCache shares a resolver cache between reflectors.
func WithCache(c *resolver.Cache) Option {
	return func(r *Reflector) { r.cache = c }
}

func New(opts ...Option) *Reflector {
	r := &Reflector{}
	for _, o := range opts {
		o(r)
	}
	if r.disc == nil {
		r.disc = discover.New()
	}
	if r.cache == nil {
		r.cache = resolver.NewCache()
	}
	return r
}

var defaultReflector = sync.OnceValue(func() *Reflector { return New() })

// Default returns the shared reflector used by the package functions.
func Default() *Reflector {
	return defaultReflector()
}

// binding is a struct type bound to its resolver, with bindings for each
// expandable field. It is the field source accessor for raw instances.
type binding struct {
	shape  *discover.Shape
	res    *resolver.Resolver
	nested []*binding
}

func (b *binding) Get(inst resolver.Instance, i int) fieldref.Element {
	if nb := b.nested[i]; nb != nil {
		return fieldref.Nest(nb.tuple(inst.Field(b.res.Offset(i), nb.shape.Type)))
	}
	return fieldref.Leaf(b.res.Get(inst, i))
}

func (b *binding) tuple(inst resolver.Instance) fieldref.Tuple {
	elems := make([]fieldref.Element, b.res.NumFields())
	for i := range elems {
		elems[i] = b.Get(inst, i)
	}
	return fieldref.NewTuple(elems...)
}

func (r *Reflector) bind(t reflect.Type) (*binding, error) {
	if cached, ok := r.bindings.Load(t); ok {
		return cached.(*binding), nil
	}

	shape, err := r.disc.Discover(t)
	if err != nil {
		return nil, err
	}
	b, err := r.bindShape(shape)
	if err != nil {
		return nil, err
	}

	Logger().Debug("aggregate bound",
		zap.Stringer("type", t),
		zap.Int("fields", shape.NumFields()),
		zap.Int("leaves", shape.LeafCount()),
	)
	actual, _ := r.bindings.LoadOrStore(t, b)
	return actual.(*binding), nil
}

func (r *Reflector) bindShape(shape *discover.Shape) (*binding, error) {
	res, err := r.cache.Resolve(shape.Type, shape.Signature())
	if err != nil {
		return nil, err
	}
	b := &binding{shape: shape, res: res, nested: make([]*binding, shape.NumFields())}
	for i, f := range shape.Fields {
		if !f.Expandable {
			continue
		}
		nb, err := r.bindShape(f.Nested)
		if err != nil {
			return nil, err
		}
		b.nested[i] = nb
	}
	return b, nil
}

// Tie flattens inst into its leaf references.
func (r *Reflector) Tie(inst resolver.Instance) (fieldref.Flat, error) {
	if inst.IsNil() {
		return fieldref.Flat{}, errors.NilPointer(errors.PhaseAccess, nil, typeName(inst.Type()))
	}
	b, err := r.bind(inst.Type())
	if err != nil {
		return fieldref.Flat{}, err
	}
	return assemble.Flatten[resolver.Instance](inst, b, 0, b.res.NumFields()), nil
}

// Tuple returns the nested reference sequence of inst without flattening.
func (r *Reflector) Tuple(inst resolver.Instance) (fieldref.Tuple, error) {
	if inst.IsNil() {
		return fieldref.Tuple{}, errors.NilPointer(errors.PhaseAccess, nil, typeName(inst.Type()))
	}
	b, err := r.bind(inst.Type())
	if err != nil {
		return fieldref.Tuple{}, err
	}
	return b.tuple(inst), nil
}

// LeafCount returns the number of references Tie produces for t.
func (r *Reflector) LeafCount(t reflect.Type) (int, error) {
	b, err := r.bind(t)
	if err != nil {
		return 0, err
	}
	return b.shape.LeafCount(), nil
}

// Tie flattens *p into mutable references.
func Tie[T any](p *T) (fieldref.Flat, error) {
	return Default().Tie(resolver.Of(p))
}

// TieConst flattens *p into const references.
func TieConst[T any](p *T) (fieldref.Flat, error) {
	return Default().Tie(resolver.ConstOf(p))
}

// LeafCount returns the number of references Tie produces for T.
func LeafCount[T any]() (int, error) {
	return Default().LeafCount(reflect.TypeFor[T]())
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}
