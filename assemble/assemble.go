package assemble

import "github.com/wippyai/fieldref"

// Positional is the getter over an already-built reference sequence.
type Positional struct{}

func (Positional) Get(t fieldref.Tuple, index int) fieldref.Element {
	return t.At(index)
}

// Flatten produces the flat leaf sequence for elements [begin, begin+size) of
// src. The caller derives size from the source's own length.
func Flatten[S any](src S, g fieldref.Getter[S], begin, size int) fieldref.Flat {
	if begin < 0 || size < 0 {
		panic("assemble: negative range passed to Flatten")
	}
	switch size {
	case 0:
		return fieldref.Flat{}
	case 1:
		e := g.Get(src, begin)
		if e.IsNested() {
			return FlattenTuple(e.Tuple())
		}
		return fieldref.NewFlat(e.Ref())
	}

	half := size / 2
	return Concat(
		Flatten(src, g, begin, half),
		Flatten(src, g, begin+half, size-half),
	)
}

// FlattenTuple flattens every element of t.
func FlattenTuple(t fieldref.Tuple) fieldref.Flat {
	return Flatten[fieldref.Tuple](t, Positional{}, 0, t.Len())
}

// Concat returns a new sequence holding all of a followed by all of b.
// The references are shared views; no field data is copied.
func Concat(a, b fieldref.Flat) fieldref.Flat {
	la, lb := a.Len(), b.Len()
	if lb == 0 {
		return a
	}
	if la == 0 {
		return b
	}

	refs := make([]fieldref.Ref, la+lb)
	for i := range la {
		refs[i] = a.At(i)
	}
	for i := range lb {
		refs[la+i] = b.At(i)
	}
	return fieldref.NewFlat(refs...)
}
