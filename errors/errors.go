package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseBind     Phase = "bind"     // resolver construction for a (type, signature) pair
	PhaseDiscover Phase = "discover" // field shape discovery
	PhaseAccess   Phase = "access"   // reads and writes through references
	PhaseView     Phase = "view"     // instances placed in guest memory
	PhaseConfig   Phase = "config"   // layout description files
)

// Kind categorizes the error
type Kind string

const (
	KindTypeMismatch     Kind = "type_mismatch"
	KindSizeMismatch     Kind = "size_mismatch"
	KindAlignMismatch    Kind = "align_mismatch"
	KindQualified        Kind = "qualified"
	KindInvalidSignature Kind = "invalid_signature"
	KindUnsupported      Kind = "unsupported"
	KindUnexported       Kind = "unexported"
	KindPolymorphic      Kind = "polymorphic"
	KindReadOnly         Kind = "read_only"
	KindOutOfBounds      Kind = "out_of_bounds"
	KindMisaligned       Kind = "misaligned"
	KindNilPointer       Kind = "nil_pointer"
	KindInvalidInput     Kind = "invalid_input"
	KindNotFound         Kind = "not_found"
)

// Error is the structured error type used throughout the module
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	GoType string
	Detail string
	Path   []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.GoType != "" {
		b.WriteString(": Go type ")
		b.WriteString(e.GoType)
	}

	if e.Detail != "" {
		if e.GoType != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the field path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// GoType sets the Go type name
func (b *Builder) GoType(t string) *Builder {
	b.err.GoType = t
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// TypeMismatch creates a type mismatch error
func TypeMismatch(phase Phase, path []string, goType, want string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindTypeMismatch,
		Path:   path,
		GoType: goType,
		Detail: "expected " + want,
	}
}

// ReadOnly creates an error for a write through a const reference
func ReadOnly(path []string, goType string) *Error {
	return &Error{
		Phase:  PhaseAccess,
		Kind:   KindReadOnly,
		Path:   path,
		GoType: goType,
		Detail: "reference is const",
	}
}

// Unsupported creates an unsupported operation error
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: what,
	}
}

// OutOfBounds creates an out of bounds error
func OutOfBounds(phase Phase, path []string, index, length int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfBounds,
		Path:   path,
		Detail: fmt.Sprintf("index %d out of bounds (length %d)", index, length),
		Value:  index,
	}
}

// NilPointer creates a nil pointer error
func NilPointer(phase Phase, path []string, goType string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNilPointer,
		Path:   path,
		GoType: goType,
		Detail: "nil pointer",
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
