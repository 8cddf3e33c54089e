// Package witsig derives layout signatures from WIT types.
//
// The Canonical ABI lays records and tuples out like a C struct: members
// in order, each at the next multiple of its alignment, the total rounded
// up to the largest member alignment. A Go struct whose fields mirror a
// WIT record member by member therefore shares its memory layout with the
// guest representation, and a resolver bound through Bind addresses guest
// values directly.
//
// # Layout Rules
//
//   - Primitives: size equals alignment (u8=1, u32=4, u64=8, etc.)
//   - Records and tuples: members laid out sequentially with padding
//   - Variants, options, results: discriminant followed by the largest payload
//   - Lists and strings: (pointer, length) pair of u32
//
// # Usage
//
//	type point struct{ X, Y int32 }
//	res, err := witsig.Bind(reflect.TypeFor[point](), pointRecord)
package witsig
