package fieldref

import "iter"

// Element is one entry of a reference sequence: either a leaf reference or a
// nested sequence.
type Element struct {
	nested   Tuple
	ref      Ref
	isNested bool
}

func Leaf(r Ref) Element { return Element{ref: r} }

func Nest(t Tuple) Element { return Element{nested: t, isNested: true} }

func (e Element) IsNested() bool { return e.isNested }

// Ref returns the leaf reference. Only meaningful when !IsNested().
func (e Element) Ref() Ref { return e.ref }

// Tuple returns the nested sequence. Only meaningful when IsNested().
func (e Element) Tuple() Tuple { return e.nested }

// Tuple is an ordered reference sequence whose elements may themselves be
// reference sequences.
type Tuple struct {
	elems []Element
}

// NewTuple retains elems; callers must not modify the slice afterwards.
func NewTuple(elems ...Element) Tuple {
	return Tuple{elems: elems}
}

func (t Tuple) Len() int { return len(t.elems) }

func (t Tuple) At(i int) Element { return t.elems[i] }

// Leaves counts the leaf references reachable from t.
func (t Tuple) Leaves() int {
	n := 0
	for _, e := range t.elems {
		if e.isNested {
			n += e.nested.Leaves()
		} else {
			n++
		}
	}
	return n
}

// Flat is a fixed-length ordered sequence of leaf references.
type Flat struct {
	refs []Ref
}

// NewFlat retains refs; callers must not modify the slice afterwards.
func NewFlat(refs ...Ref) Flat {
	return Flat{refs: refs}
}

func (f Flat) Len() int { return len(f.refs) }

func (f Flat) At(i int) Ref { return f.refs[i] }

// All iterates over the references in order.
func (f Flat) All() iter.Seq2[int, Ref] {
	return func(yield func(int, Ref) bool) {
		for i, r := range f.refs {
			if !yield(i, r) {
				return
			}
		}
	}
}

// Refs returns a copy of the references.
func (f Flat) Refs() []Ref {
	out := make([]Ref, len(f.refs))
	copy(out, f.refs)
	return out
}

// Tuple views f as a sequence of leaves.
func (f Flat) Tuple() Tuple {
	elems := make([]Element, len(f.refs))
	for i, r := range f.refs {
		elems[i] = Leaf(r)
	}
	return Tuple{elems: elems}
}

// Getter fetches element index of a field source.
type Getter[S any] interface {
	Get(src S, index int) Element
}

// GetterFunc adapts a function to Getter.
type GetterFunc[S any] func(src S, index int) Element

func (f GetterFunc[S]) Get(src S, index int) Element { return f(src, index) }
