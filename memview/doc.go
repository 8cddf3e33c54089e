// Package memview places resolver instances over WebAssembly linear memory.
//
// A resolver bound to a Go struct that mirrors a guest record (see witsig)
// can address guest values in place:
//
//	view := memview.New(mod.Memory(), res)
//	inst, err := view.At(ptr, fieldref.Mutable)
//	res.Get(inst, 1).Set(uint32(7))
//
// Instances alias the memory's backing buffer. They are invalidated by
// memory.grow, which may move the buffer.
package memview
