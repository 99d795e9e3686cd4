// Package errors provides structured error types for texatlas.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the library, CLI and TUI
//   - Machine-readable error codes for programmatic handling
//   - User-friendly status messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Codes fall into two groups. Recoverable conditions (EMPTY_INPUT,
// CANVAS_TOO_LARGE, PACKING_EXHAUSTED, INVALID_*) are reported to the user
// as a status message. Contract violations in buffer region operations
// (OUT_OF_BOUNDS, SIZE_MISMATCH) are programming defects.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeCanvasTooLarge, "size %dx%d exceeds %d", w, h, max)
//	if errors.Is(err, errors.ErrCodeCanvasTooLarge) {
//	    // ask the user to adjust columns or padding
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeFileNotFound, origErr, "open %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Recoverable build conditions
	ErrCodeEmptyInput       Code = "EMPTY_INPUT"
	ErrCodeCanvasTooLarge   Code = "CANVAS_TOO_LARGE"
	ErrCodePackingExhausted Code = "PACKING_EXHAUSTED"

	// Buffer contract violations
	ErrCodeOutOfBounds  Code = "OUT_OF_BOUNDS"
	ErrCodeSizeMismatch Code = "SIZE_MISMATCH"

	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidPath   Code = "INVALID_PATH"

	// Resource errors
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// IsDefect reports whether err is a buffer contract violation. These indicate
// a bug in the caller, never bad user input.
func IsDefect(err error) bool {
	switch GetCode(err) {
	case ErrCodeOutOfBounds, ErrCodeSizeMismatch:
		return true
	}
	return false
}
