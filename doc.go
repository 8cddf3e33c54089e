// Package fieldref provides structural field references over plain Go structs.
//
// Given an instance of a struct whose layout is opaque to generic code, the
// library produces a flat, ordered sequence of typed references, one per leaf
// field in declaration order, without the type being annotated, registered or
// modified.
//
// # Architecture Overview
//
//	fieldref/        Root package: Ref, Qualifier, Element, Tuple, Flat, Getter
//	├── layout/      Field descriptors, layout signatures, platform layout rules
//	├── resolver/    Layout-offset resolver built on a placeholder structure
//	├── assemble/    Balanced flattening of nested reference sequences
//	├── discover/    Reflection-based field shape discovery
//	├── structref/   High-level Tie API and sequence consumers
//	├── witsig/      Layout signatures from WIT records (Canonical ABI)
//	├── memview/     Instances placed in WASM linear memory
//	├── errors/      Structured error types
//	└── cmd/fieldref/ Layout explorer CLI (TOML layouts, watch mode, TUI)
//
// # Quick Start
//
//	type Header struct {
//		Tag   uint8
//		Len   uint32
//		Flags uint8
//	}
//
//	h := Header{Tag: 1, Len: 64}
//	refs, err := structref.Tie(&h)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fieldref.Store(refs.At(1), uint32(128)) // h.Len == 128
//
// # Offsets
//
// Field offsets are never read from struct tags or field names. The resolver
// synthesizes a placeholder struct whose members are byte buffers with the
// size and alignment of each declared field, measures member addresses on it,
// and applies the measured offsets to real instances. A signature that does
// not match the real type is rejected when the resolver is built.
//
// # Qualifiers
//
// A reference carries the qualifier of the instance it was taken from.
// Const references reject writes; volatile references use atomic loads and
// stores for naturally aligned 4- and 8-byte scalar fields.
//
// # Thread Safety
//
// References add no synchronization. Distinct fields never overlap, so
// concurrent access to different fields is as safe as the instance allows.
package fieldref
