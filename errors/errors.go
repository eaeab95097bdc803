package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in the boundary the error occurred
type Phase string

const (
	PhaseParse    Phase = "parse"    // expression text parsing
	PhaseEval     Phase = "eval"     // kernel evaluation
	PhaseAccess   Phase = "access"   // typed payload extraction
	PhaseDispatch Phase = "dispatch" // name -> function resolution
	PhaseInit     Phase = "init"     // kernel initialization
	PhaseLoad     Phase = "load"     // help database loading
	PhaseExport   Phase = "export"   // heap-export handle operations
)

// Kind categorizes the error
type Kind string

const (
	KindParse         Kind = "parse_error"
	KindEvaluation    Kind = "evaluation_error"
	KindTypeMismatch  Kind = "type_mismatch"
	KindOutOfRange    Kind = "index_out_of_range"
	KindUnavailable   Kind = "library_unavailable"
	KindInvalidInput  Kind = "invalid_input"
	KindNotFound      Kind = "not_found"
	KindInvalidHandle Kind = "invalid_handle"
)

// categories maps a Kind to the user-visible category label prefixed to
// every message that crosses the boundary.
var categories = map[Kind]string{
	KindParse:         "ParseError",
	KindEvaluation:    "EvaluationError",
	KindTypeMismatch:  "TypeMismatchError",
	KindOutOfRange:    "IndexOutOfRangeError",
	KindUnavailable:   "LibraryUnavailableError",
	KindInvalidInput:  "InvalidInputError",
	KindNotFound:      "NotFoundError",
	KindInvalidHandle: "InvalidHandleError",
}

// Error is the structured error type used throughout the bridge.
// Detail carries the kernel's diagnostic text verbatim; the boundary never
// invents message text of its own beyond the category label.
type Error struct {
	Cause    error
	Phase    Phase
	Kind     Kind
	Expected string // expected value kind, for type mismatches
	Actual   string // actual value kind, for type mismatches
	Detail   string
}

// Category returns the taxonomy label for the error's Kind.
func (e *Error) Category() string {
	if c, ok := categories[e.Kind]; ok {
		return c
	}
	return string(e.Kind)
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteString(e.Category())
	b.WriteString(" [")
	b.WriteString(string(e.Phase))
	b.WriteByte(']')

	if e.Expected != "" || e.Actual != "" {
		b.WriteString(": expected ")
		b.WriteString(e.Expected)
		b.WriteString(", got ")
		b.WriteString(e.Actual)
	}

	if e.Detail != "" {
		b.WriteString(": ")
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
		if t.Phase != "" && e.Phase != t.Phase {
			return false
		}
		return e.Kind == t.Kind
	}
	return false
}

// Sentinels for errors.Is matching by kind alone.
var (
	ErrParse        = &Error{Kind: KindParse}
	ErrEvaluation   = &Error{Kind: KindEvaluation}
	ErrTypeMismatch = &Error{Kind: KindTypeMismatch}
	ErrOutOfRange   = &Error{Kind: KindOutOfRange}
	ErrUnavailable  = &Error{Kind: KindUnavailable}
	ErrNotFound     = &Error{Kind: KindNotFound}
)

// Convenience constructors for common boundary failures

// ParseFailed wraps a kernel parse diagnostic.
func ParseFailed(detail string, cause error) *Error {
	return &Error{Phase: PhaseParse, Kind: KindParse, Detail: detail, Cause: cause}
}

// EvalFailed wraps a kernel evaluation diagnostic.
func EvalFailed(detail string, cause error) *Error {
	return &Error{Phase: PhaseEval, Kind: KindEvaluation, Detail: detail, Cause: cause}
}

// TypeMismatch reports a typed accessor called on the wrong value kind.
func TypeMismatch(expected, actual string) *Error {
	return &Error{Phase: PhaseAccess, Kind: KindTypeMismatch, Expected: expected, Actual: actual}
}

// OutOfBounds reports a vector index outside [0, length).
func OutOfBounds(index, length int) *Error {
	return &Error{
		Phase:  PhaseAccess,
		Kind:   KindOutOfRange,
		Detail: fmt.Sprintf("index %d out of bounds (length %d)", index, length),
	}
}

// NotFound reports a missing named entity.
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// Unavailable reports that kernel initialization did not complete.
func Unavailable(detail string) *Error {
	return &Error{Phase: PhaseInit, Kind: KindUnavailable, Detail: detail}
}

// InvalidInput reports malformed caller input detected before the kernel.
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{Phase: phase, Kind: KindInvalidInput, Detail: detail}
}

// InvalidHandle reports an export-table reference that is unknown or
// already freed.
func InvalidHandle(ref uint64) *Error {
	return &Error{
		Phase:  PhaseExport,
		Kind:   KindInvalidHandle,
		Detail: fmt.Sprintf("handle %#x is not live", ref),
	}
}

// Load reports a help database loading failure.
func Load(detail string, cause error) *Error {
	return &Error{Phase: PhaseLoad, Kind: KindInvalidInput, Detail: detail, Cause: cause}
}

// Wrap wraps an existing error with phase and kind context.
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{Phase: phase, Kind: kind, Detail: detail, Cause: cause}
}
