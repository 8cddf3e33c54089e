// Package layout describes the structural shape of aggregates.
//
// A Descriptor records the size, alignment and declared Go type of one field.
// An ordered list of descriptors is a Signature: the layout signature of an
// aggregate, supplied by a discovery facility in declaration order.
//
// # Layout Rules
//
// Calculate applies the host platform rules to a signature:
//   - each field starts at the next multiple of its alignment
//   - the aggregate alignment is the largest field alignment
//   - a trailing zero-size field is followed by one byte of padding
//   - the total size is rounded up to the aggregate alignment
//
// These are the rules the Go compiler uses for struct types. The resolver
// package measures offsets on a synthesized placeholder instead of trusting
// this arithmetic; Calculate serves as an independent cross-check.
//
// # Usage
//
//	sig := layout.Signature{layout.MustKind(layout.KindU8), layout.MustKind(layout.KindU32)}
//	info := layout.Calculate(sig)
//	// info.Size == 8, info.Offsets == [0 4]
package layout
