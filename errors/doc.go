// Package errors provides structured error types for the fieldref library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type carries the field path, the Go type involved and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseBind, errors.KindSizeMismatch).
//		GoType("main.Header").
//		Detail("placeholder size %d, struct size %d", 8, 12).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.TypeMismatch(errors.PhaseAccess, path, "int32", "uint8")
//	err := errors.OutOfBounds(errors.PhaseView, path, 70000, 65536)
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
