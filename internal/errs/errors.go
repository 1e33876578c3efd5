// Package errs provides the unified error type used across all of DatView.
//
// Every subsystem (database driver, exporter, session) wraps its native
// errors into *errs.Error before returning them to callers. Callers use
// the Is* predicates to handle errors without importing driver-specific
// packages.
//
// Usage:
//
//	// In the driver — wrap native errors:
//	return errs.Wrap(errs.ErrKindTableRead, "full-table scan failed", sqlErr)
//
//	// In the presentation layer — check error kind:
//	if errs.IsInvalidDatabase(err) {
//	    fmt.Fprintln(os.Stderr, "not a database file:", err)
//	}
package errs

import (
	"errors"
	"fmt"
)

// ErrKind categorises an error without exposing engine-specific codes.
// The driver maps its native errors to one of these kinds, giving callers
// a single consistent API.
type ErrKind int

const (
	ErrKindUnknown         ErrKind = iota
	ErrKindInvalidDatabase         // file missing, not a database, or catalog enumeration failed
	ErrKindTableRead               // a cataloged table could not be fully read
	ErrKindIO                      // export destination could not be created or written
	ErrKindTimeout                 // context deadline / cancellation
	ErrKindInvalidInput            // bad arguments from the caller
)

func (k ErrKind) String() string {
	switch k {
	case ErrKindInvalidDatabase:
		return "invalid_database"
	case ErrKindTableRead:
		return "table_read"
	case ErrKindIO:
		return "io"
	case ErrKindTimeout:
		return "timeout"
	case ErrKindInvalidInput:
		return "invalid_input"
	default:
		return "unknown"
	}
}

// Error is the single error type returned by all DatView subsystems.
// The driver and exporter produce it; callers inspect it via the Is*
// predicates below.
type Error struct {
	Kind    ErrKind
	Message string
	Cause   error // original driver-level error, preserved for logging
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

// Unwrap allows errors.Is / errors.As to traverse the cause chain.
func (e *Error) Unwrap() error {
	return e.Cause
}

// --- Constructors ---

// New creates an *Error with the given kind and message and no cause.
func New(kind ErrKind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// Wrap creates an *Error with the given kind, message, and an underlying cause.
func Wrap(kind ErrKind, msg string, cause error) *Error {
	return &Error{Kind: kind, Message: msg, Cause: cause}
}

// --- Predicates ---

// IsInvalidDatabase reports whether err means the source file is not a
// valid, openable database or its catalog could not be enumerated.
func IsInvalidDatabase(err error) bool {
	return kindOf(err) == ErrKindInvalidDatabase
}

// IsTableRead reports whether err means a specific table could not be
// fully read after the catalog claimed it exists.
func IsTableRead(err error) bool {
	return kindOf(err) == ErrKindTableRead
}

// IsIO reports whether err is a failure to create or write an output file.
func IsIO(err error) bool {
	return kindOf(err) == ErrKindIO
}

// IsTimeout reports whether err was caused by a deadline or context cancellation.
func IsTimeout(err error) bool {
	return kindOf(err) == ErrKindTimeout
}

// IsInvalidInput reports whether err was caused by bad input from the caller.
func IsInvalidInput(err error) bool {
	return kindOf(err) == ErrKindInvalidInput
}

// kindOf extracts the ErrKind from any error in the chain.
func kindOf(err error) ErrKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ErrKindUnknown
}
