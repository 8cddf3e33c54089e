// Package assemble flattens nested reference sequences into one flat
// sequence of leaf references.
//
// # Algorithm
//
// Flatten works on a contiguous index range [begin, begin+size) of a field
// source, reached through a fieldref.Getter:
//
//	size == 0   empty sequence
//	size == 1   fetch the element; a nested Tuple is flattened over its
//	            full length, a leaf becomes a one-element sequence
//	size  > 1   flatten [begin, begin+size/2) and [begin+size/2, begin+size)
//	            independently, then Concat left and right
//
// The midpoint split keeps recursion depth logarithmic in the number of
// elements at each nesting level. The split carries no meaning of its own:
// the result is the depth-first, left-to-right leaf order of the source.
package assemble
