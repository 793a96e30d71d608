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
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrNotFound     ErrorCode = "NOT_FOUND"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"
	ErrConfigWrite ErrorCode = "CONFIG_WRITE"

	// Package descriptor errors
	ErrDescriptorRead  ErrorCode = "DESCRIPTOR_READ"
	ErrDescriptorParse ErrorCode = "DESCRIPTOR_PARSE"

	// Build engine errors
	ErrEngineSetup ErrorCode = "ENGINE_SETUP"
	ErrEngineBuild ErrorCode = "ENGINE_BUILD"

	// Dev server errors
	ErrServerListen ErrorCode = "SERVER_LISTEN"

	// Export errors
	ErrExportFormat ErrorCode = "EXPORT_FORMAT"
)

// PackwiseError represents a structured error with code and details
type PackwiseError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *PackwiseError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *PackwiseError) Unwrap() error {
	return e.Wrapped
}

// Is matches any PackwiseError carrying the same code
func (e *PackwiseError) Is(target error) bool {
	var targetErr *PackwiseError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new PackwiseError with the given code and message
func New(code ErrorCode, message string) *PackwiseError {
	return &PackwiseError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new PackwiseError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *PackwiseError {
	return &PackwiseError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a PackwiseError
func Wrap(err error, code ErrorCode, message string) *PackwiseError {
	if err == nil {
		return nil
	}
	return &PackwiseError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *PackwiseError {
	if err == nil {
		return nil
	}
	return &PackwiseError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *PackwiseError) WithDetail(key string, value interface{}) *PackwiseError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var pwErr *PackwiseError
	if errors.As(err, &pwErr) {
		return pwErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a PackwiseError
func GetErrorCode(err error) ErrorCode {
	var pwErr *PackwiseError
	if errors.As(err, &pwErr) {
		return pwErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a PackwiseError
func GetErrorDetails(err error) map[string]interface{} {
	var pwErr *PackwiseError
	if errors.As(err, &pwErr) {
		return pwErr.Details
	}
	return nil
}
