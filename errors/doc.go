// Package errors provides structured error types for the giacbridge library.
//
// Errors are categorized by Phase (where in the boundary the error occurred)
// and Kind (error category). The Kind maps to the user-visible taxonomy
// label (ParseError, EvaluationError, TypeMismatchError,
// IndexOutOfRangeError, LibraryUnavailableError) that prefixes every
// message; the kernel's own diagnostic text passes through verbatim as
// Detail or Cause.
//
// Use the convenience constructors for common patterns:
//
//	err := errors.TypeMismatch("integer", "symbolic")
//	err := errors.OutOfBounds(10, 5)
//	err := errors.EvalFailed(diag, cause)
//
// All errors implement the standard error interface and support
// errors.Is/As; the exported sentinels (ErrParse, ErrTypeMismatch, ...)
// match by Kind regardless of Phase.
package errors
