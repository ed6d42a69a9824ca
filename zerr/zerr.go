// Package zerr defines the typed, path-qualified error kinds surfaced by
// the compiler. None of these are recovered internally. Validation,
// placeholder substitution, layout and element compilation report their
// failures with these kinds; model.Parse decode errors and built-in macro
// resolution errors are returned as plain wrapped errors.
package zerr

import "fmt"

// Kind is a short machine-readable error classification, as described by
// spec.md §7. The service layer maps Kind to an HTTP status at its own
// boundary; the core never consults this mapping.
type Kind string

const (
	KindSchema         Kind = "schema"
	KindInvariant      Kind = "invariant"
	KindMissingVar     Kind = "missing_variable"
	KindFormat         Kind = "format"
	KindLayout         Kind = "layout"
	KindUnsupported    Kind = "unsupported"
	KindInternal       Kind = "internal"
)

// Error is the common shape for every error kind the compiler produces.
// Path is a node or field path such as "layout/children/1"; Error renders
// it as "layout/children/1: leaf must contain exactly one element".
type Error struct {
	Kind    Kind
	Path    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Message)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func newf(kind Kind, path, format string, a ...any) *Error {
	return &Error{Kind: kind, Path: path, Message: fmt.Sprintf(format, a...)}
}

func Schema(path, format string, a ...any) *Error {
	return newf(KindSchema, path, format, a...)
}

func Invariant(path, format string, a ...any) *Error {
	return newf(KindInvariant, path, format, a...)
}

func Format(path, format string, a ...any) *Error {
	return newf(KindFormat, path, format, a...)
}

func Layout(path, format string, a ...any) *Error {
	return newf(KindLayout, path, format, a...)
}

func Unsupported(path, format string, a ...any) *Error {
	return newf(KindUnsupported, path, format, a...)
}

// MissingVariableError is raised by the binder under the "error" missing
// variables policy. It carries the unresolved placeholder name separately
// from Path so callers can report both without parsing the message.
type MissingVariableError struct {
	Name string
	Path string
}

func (e *MissingVariableError) Error() string {
	return fmt.Sprintf("%s: missing variable %q", e.Path, e.Name)
}

func (e *MissingVariableError) Kind() Kind { return KindMissingVar }

// Wrap folds a lower-level error into an internal-kind Error, for
// collaborator boundaries outside the pure core. The counter and draft
// stores in this module do not call it; they return plain wrapped errors.
func Wrap(path string, err error) *Error {
	return &Error{Kind: KindInternal, Path: path, Message: err.Error(), Err: err}
}
