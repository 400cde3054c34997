// Package errors provides the typed failures reported by the timer and store.
package errors

import (
	"errors"
	"fmt"
)

// Kind represents the category of a failure.
type Kind string

const (
	// KindInvalidArgument indicates a missing or empty identifier.
	KindInvalidArgument Kind = "invalid_argument"
	// KindNotFound indicates a load of a record that does not exist.
	KindNotFound Kind = "not_found"
	// KindCorruptData indicates a persisted record that cannot be parsed.
	KindCorruptData Kind = "corrupt_data"
	// KindInvariantViolation indicates a caller programming error, such as
	// starting a second auto-save schedule.
	KindInvariantViolation Kind = "invariant_violation"
)

// Sentinels for errors.Is. They match any *Error of the same kind.
var (
	ErrInvalidArgument    = &Error{Kind: KindInvalidArgument}
	ErrNotFound           = &Error{Kind: KindNotFound}
	ErrCorruptData        = &Error{Kind: KindCorruptData}
	ErrInvariantViolation = &Error{Kind: KindInvariantViolation}
)

// Error represents a structured error with kind, message, and context.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
	Context map[string]any
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Message == "" {
		return string(e.Kind)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is the sentinel of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Message == "" && t.Cause == nil && t.Kind == e.Kind
}

// WithContext adds context fields to the error (chainable).
func (e *Error) WithContext(key string, value any) *Error {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

// InvalidArgument creates a new invalid-argument error.
func InvalidArgument(message string) *Error {
	return &Error{
		Kind:    KindInvalidArgument,
		Message: message,
		Context: make(map[string]any),
	}
}

// NotFound creates a new not-found error.
func NotFound(message string) *Error {
	return &Error{
		Kind:    KindNotFound,
		Message: message,
		Context: make(map[string]any),
	}
}

// CorruptData creates a new corrupt-data error wrapping the parse failure.
func CorruptData(message string, cause error) *Error {
	return &Error{
		Kind:    KindCorruptData,
		Message: message,
		Cause:   cause,
		Context: make(map[string]any),
	}
}

// InvariantViolation creates a new invariant-violation error.
func InvariantViolation(message string) *Error {
	return &Error{
		Kind:    KindInvariantViolation,
		Message: message,
		Context: make(map[string]any),
	}
}

// KindOf returns the kind of the first *Error in err's chain, or "" if none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
