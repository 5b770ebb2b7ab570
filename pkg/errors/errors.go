// Package errors provides structured error types for labelsheet.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI and the build pipeline
//   - Machine-readable error codes for skipped-record reports
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input or configuration validation failures
//   - ENCODING_ERROR: A payload cannot be turned into a code raster
//   - LAYOUT_OVERFLOW: The configured label can never fit on a page
//   - INTERNAL_*: Unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeEncoding, "payload %q contains non-ASCII characters", id)
//	if errors.Is(err, errors.ErrCodeEncoding) {
//	    // skip the record
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeEncoding, origErr, "encode %s", id)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidRecord Code = "INVALID_RECORD"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidPath   Code = "INVALID_PATH"

	// Label production errors
	ErrCodeEncoding       Code = "ENCODING_ERROR"
	ErrCodeLayoutOverflow Code = "LAYOUT_OVERFLOW"
	ErrCodeSealed         Code = "DOCUMENT_SEALED"

	// Resource errors
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"
	ErrCodeNetwork      Code = "NETWORK_ERROR"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
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

// coder is implemented by error types that carry a fixed code, such as
// [LayoutOverflowError].
type coder interface {
	Code() Code
}

// codeOf returns the code carried by err itself, without unwrapping.
func codeOf(err error) (Code, bool) {
	switch e := err.(type) {
	case *Error:
		return e.Code, true
	case coder:
		return e.Code(), true
	}
	return "", false
}

// walk calls fn with each coded error in the chain of err, outermost
// first, until fn returns true.
func walk(err error, fn func(Code) bool) bool {
	if err == nil {
		return false
	}
	if c, ok := codeOf(err); ok && fn(c) {
		return true
	}
	switch u := err.(type) {
	case interface{ Unwrap() error }:
		return walk(u.Unwrap(), fn)
	case interface{ Unwrap() []error }:
		for _, e := range u.Unwrap() {
			if walk(e, fn) {
				return true
			}
		}
	}
	return false
}

// Is reports whether err has the given error code.
// It walks the whole chain, so an ENCODING_ERROR wrapped by another
// coded error is still found.
func Is(err error, code Code) bool {
	return walk(err, func(c Code) bool { return c == code })
}

// GetCode extracts the outermost error code from an error, if available.
// Returns empty string if no error in the chain carries a code.
func GetCode(err error) Code {
	var code Code
	walk(err, func(c Code) bool {
		code = c
		return true
	})
	return code
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

// Encoding is shorthand for an ENCODING_ERROR.
func Encoding(format string, args ...any) *Error {
	return New(ErrCodeEncoding, format, args...)
}

// LayoutOverflowError reports a label that is taller than the usable
// height of an empty column. No placement can succeed in that case.
type LayoutOverflowError struct {
	LabelHeight  float64
	Usable       float64
	MinClearance float64
}

// Error implements the error interface.
func (e *LayoutOverflowError) Error() string {
	return fmt.Sprintf("label height %.2f exceeds usable column height %.2f (clearance %.2f)",
		e.LabelHeight, e.Usable, e.MinClearance)
}

// Code returns the error code for this error type.
func (e *LayoutOverflowError) Code() Code {
	return ErrCodeLayoutOverflow
}

// IsLayoutOverflow reports whether err is or wraps a LayoutOverflowError.
func IsLayoutOverflow(err error) bool {
	var e *LayoutOverflowError
	return errors.As(err, &e) || Is(err, ErrCodeLayoutOverflow)
}
