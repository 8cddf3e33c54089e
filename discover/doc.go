// Package discover determines the field shape of a Go struct type: how many
// fields it has, the layout descriptor and declared type of each, and which
// fields are themselves expandable aggregates.
//
// Discovery is where structural preconditions are enforced. By default it
// rejects:
//   - pointer types (the reference must be stripped first)
//   - non-struct types
//   - embedded interfaces, which carry polymorphic state
//   - unexported fields, unless WithUnexported(true) is given
//
// Blank (_) fields are explicit padding and are always accepted as leaves.
// A nested struct field is expandable when expansion is enabled and the
// nested struct passes discovery itself; otherwise it is a leaf.
package discover
