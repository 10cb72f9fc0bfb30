// Package ipperr defines the typed error kinds shared by every layer of the
// projection engine, tagging each error with a Kind a caller can switch on.
package ipperr

import "fmt"

// Kind classifies an error raised by the engine.
type Kind string

const (
	// MalformedInput marks truncated binary input, unexpected trailing
	// bytes, or a genome-size line with no tab stop.
	MalformedInput Kind = "MalformedInput"
	// IoError marks a file open/read failure.
	IoError Kind = "IoError"
	// UnknownName marks a chromosome or species lookup miss.
	UnknownName Kind = "UnknownName"
	// Internal marks an invariant violation. These should never trigger on
	// well-formed inputs and indicate a bug.
	Internal Kind = "Internal"
)

// Error wraps a cause with the Kind of failure it represents.
type Error struct {
	Kind  Kind
	cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Kind, e.cause)
}

func (e *Error) Unwrap() error {
	return e.cause
}

func newError(kind Kind, context string, err error) error {
	return &Error{kind, fmt.Errorf("%s: %w", context, err)}
}

// NewMalformedInput returns a MalformedInput error wrapping err with context.
func NewMalformedInput(context string, err error) error {
	return newError(MalformedInput, context, err)
}

// NewIoError returns an IoError wrapping err with context.
func NewIoError(context string, err error) error {
	return newError(IoError, context, err)
}

// NewUnknownName returns an UnknownName error wrapping err with context.
func NewUnknownName(context string, err error) error {
	return newError(UnknownName, context, err)
}

// NewInternal returns an Internal error wrapping err with context.
func NewInternal(context string, err error) error {
	return newError(Internal, context, err)
}

// Is reports whether err is an *Error of the given kind.
func Is(err error, kind Kind) bool {
	e, ok := err.(*Error)
	return ok && e.Kind == kind
}
