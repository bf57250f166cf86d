package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown        ErrorCode = "UNKNOWN"
	ErrInternal       ErrorCode = "INTERNAL"
	ErrInvalidInput   ErrorCode = "INVALID_INPUT"
	ErrNotFound       ErrorCode = "NOT_FOUND"
	ErrNotImplemented ErrorCode = "NOT_IMPLEMENTED"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// Preference document errors
	ErrDocumentLoad  ErrorCode = "DOCUMENT_LOAD"
	ErrDocumentParse ErrorCode = "DOCUMENT_PARSE"
	ErrDocumentValue ErrorCode = "DOCUMENT_VALUE"

	// Defaults store errors
	ErrDefaultsRead  ErrorCode = "DEFAULTS_READ"
	ErrDefaultsWrite ErrorCode = "DEFAULTS_WRITE"

	// Process control errors
	ErrProcessKill ErrorCode = "PROCESS_KILL"

	// Handler (default apps) errors
	ErrHandlerRead ErrorCode = "HANDLER_READ"
	ErrHandlerSet  ErrorCode = "HANDLER_SET"

	// File flag errors
	ErrFlagRead  ErrorCode = "FLAG_READ"
	ErrFlagWrite ErrorCode = "FLAG_WRITE"

	// FileSystem errors
	ErrFileNotFound ErrorCode = "FILE_NOT_FOUND"
	ErrFileAccess   ErrorCode = "FILE_ACCESS"
)

// MacprefsError represents a structured error with code and details
type MacprefsError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *MacprefsError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *MacprefsError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *MacprefsError) Is(target error) bool {
	var targetErr *MacprefsError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new MacprefsError with the given code and message
func New(code ErrorCode, message string) *MacprefsError {
	return &MacprefsError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new MacprefsError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *MacprefsError {
	return &MacprefsError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a MacprefsError
func Wrap(err error, code ErrorCode, message string) *MacprefsError {
	if err == nil {
		return nil
	}
	return &MacprefsError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *MacprefsError {
	if err == nil {
		return nil
	}
	return &MacprefsError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *MacprefsError) WithDetail(key string, value interface{}) *MacprefsError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *MacprefsError) WithDetails(details map[string]interface{}) *MacprefsError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var prefsErr *MacprefsError
	if errors.As(err, &prefsErr) {
		return prefsErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a MacprefsError
func GetErrorCode(err error) ErrorCode {
	var prefsErr *MacprefsError
	if errors.As(err, &prefsErr) {
		return prefsErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a MacprefsError
func GetErrorDetails(err error) map[string]interface{} {
	var prefsErr *MacprefsError
	if errors.As(err, &prefsErr) {
		return prefsErr.Details
	}
	return nil
}
