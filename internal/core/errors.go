package core

import (
	"errors"
	"fmt"
)

// ErrorKind classifies adapter failures into the shared taxonomy. Every
// engine-specific error is normalized to one of these at the adapter
// boundary; the controller never sees raw engine errors.
type ErrorKind int

const (
	// ParseError: the workload bytes were malformed or rejected during Load.
	// Non-fatal; the iteration records correct=false and the loop continues.
	ParseError ErrorKind = iota

	// RuntimeError: a fault was raised while executing the workload.
	// Non-fatal.
	RuntimeError

	// UnexpectedResultType: Execute returned successfully but the value is
	// not the engine's boolean representation. Non-fatal warning.
	UnexpectedResultType

	// AllocationFailure: the adapter could not allocate its runtime state
	// during Init. Fatal to the whole run.
	AllocationFailure
)

func (k ErrorKind) String() string {
	switch k {
	case ParseError:
		return "parse error"
	case RuntimeError:
		return "runtime error"
	case UnexpectedResultType:
		return "unexpected result type"
	case AllocationFailure:
		return "allocation failure"
	default:
		return fmt.Sprintf("error kind %d", int(k))
	}
}

// Error is a classified adapter failure. It wraps the engine's diagnostic
// so callers can still unwrap the original error chain.
type Error struct {
	Kind ErrorKind
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// NewError wraps err with the given kind.
func NewError(kind ErrorKind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}

// Errorf builds a classified error from a format string.
func Errorf(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Err: fmt.Errorf(format, args...)}
}

// KindOf extracts the ErrorKind from an error chain. The second return is
// false when the chain contains no classified error.
func KindOf(err error) (ErrorKind, bool) {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind, true
	}
	return 0, false
}

// IsFatal reports whether err must abort the whole benchmark run.
// Only AllocationFailure is fatal; everything else is handled inside the
// iteration boundary.
func IsFatal(err error) bool {
	kind, ok := KindOf(err)
	return ok && kind == AllocationFailure
}
