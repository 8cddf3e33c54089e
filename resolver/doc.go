// Package resolver maps (aggregate type, layout signature, field index) to a
// byte offset and then to a typed field reference.
//
// # Placeholder Structure
//
// For a signature of N descriptors the resolver synthesizes, with
// reflect.StructOf, a placeholder struct whose i-th member is an opaque byte
// buffer with exactly the size and alignment of descriptor i:
//
//	struct {
//		F0 struct{ A [0]uint8;  B [1]byte }
//		F1 struct{ A [0]uint32; B [4]byte }
//		F2 struct{ A [0]uint8;  B [1]byte }
//	}
//
// The placeholder is laid out by the same rules as the real struct, so member
// offsets measured on one transient placeholder value are the field offsets of
// every instance of the real type. The placeholder is discarded once the
// offsets are measured; only the offset table is kept.
//
// # Binding
//
// New fails permanently when the placeholder's size or alignment differs from
// the real type, when a descriptor disagrees with its declared type, or when
// the target is a pointer or interface rather than a struct. After a
// successful bind every lookup is total over valid indices.
//
// # Instances
//
// An Instance is an address plus a type plus a Qualifier. References produced
// from it carry the same qualifier. Nothing is copied or allocated: a Ref
// points into the original instance.
package resolver
