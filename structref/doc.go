// Package structref ties struct values to flat reference sequences.
//
// It wires discovery, the layout-offset resolver and the flat-reference
// assembler together:
//
//	p := Pair{Key: "a", Val: Point{X: 1, Y: 2}}
//	refs, err := structref.Tie(&p)   // [Key, Val.X, Val.Y]
//
// Nested structs that pass discovery are expanded depth-first. References
// point into the original value; nothing is copied.
//
// Equal, Compare and Format consume flat sequences and know nothing about
// names or nesting.
package structref
