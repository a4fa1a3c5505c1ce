// Package errors provides structured error types for umlkit.
//
// This package defines error codes and types that enable:
//   - Distinct, inspectable failures for parsing and decoding diagram documents
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages in the CLI
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Codes are grouped by the layer that raises them:
//   - MALFORMED_JSON, UNSUPPORTED_JSON_TYPE: the JSON value codec
//   - UNKNOWN_*, DANGLING_*, DUPLICATE_*, CONTAINMENT_*, INVALID_*: the diagram codec and model
//   - FILE_NOT_FOUND, INTERNAL_ERROR: plumbing around the core
//
// # Usage
//
//	err := errors.New(errors.ErrCodeUnknownNodeType, "unknown node type %q", tag)
//	if errors.Is(err, errors.ErrCodeUnknownNodeType) {
//	    // Handle decode error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeMalformedJSON, synErr, "parse document")
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// JSON value codec errors
	ErrCodeMalformedJSON       Code = "MALFORMED_JSON"
	ErrCodeUnsupportedJSONType Code = "UNSUPPORTED_JSON_TYPE"

	// Diagram decode errors
	ErrCodeUnknownNodeType       Code = "UNKNOWN_NODE_TYPE"
	ErrCodeUnknownEdgeType       Code = "UNKNOWN_EDGE_TYPE"
	ErrCodeDanglingEdgeReference Code = "DANGLING_EDGE_REFERENCE"
	ErrCodeDuplicateNodeID       Code = "DUPLICATE_NODE_ID"
	ErrCodeContainmentCycle      Code = "CONTAINMENT_CYCLE"

	// Structural validation errors
	ErrCodeInvalidInput       Code = "INVALID_INPUT"
	ErrCodeInvalidFormat      Code = "INVALID_FORMAT"
	ErrCodeInvalidProperty    Code = "INVALID_PROPERTY"
	ErrCodeInvalidContainment Code = "INVALID_CONTAINMENT"
	ErrCodeInvalidPath        Code = "INVALID_PATH"

	// Resource errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

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

// Is reports whether err has the given error code.
// It walks the whole error chain, so a code attached by an inner layer is
// still found after outer layers wrapped it with a different code.
func Is(err error, code Code) bool {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return false
		}
		if e.Code == code {
			return true
		}
		err = e.Cause
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
		if e.Cause != nil {
			return fmt.Sprintf("%s: %s", e.Message, UserMessage(e.Cause))
		}
		return e.Message
	}
	return err.Error()
}
