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
	ErrUnknown       ErrorCode = "UNKNOWN"
	ErrInternal      ErrorCode = "INTERNAL"
	ErrInvalidInput  ErrorCode = "INVALID_INPUT"
	ErrNotFound      ErrorCode = "NOT_FOUND"
	ErrAlreadyExists ErrorCode = "ALREADY_EXISTS"

	// Target registry errors
	ErrDuplicateTarget ErrorCode = "DUPLICATE_TARGET"
	ErrUnknownTarget   ErrorCode = "UNKNOWN_TARGET"

	// Content conflicts between generation passes
	ErrContentConflict   ErrorCode = "CONTENT_CONFLICT"
	ErrOverwriteConflict ErrorCode = "OVERWRITE_CONFLICT"

	// Synchronization errors
	ErrInvalidPath     ErrorCode = "INVALID_PATH"
	ErrSharedCleanRoot ErrorCode = "SHARED_CLEAN_ROOT"
	ErrDrift           ErrorCode = "DRIFT"

	// FileSystem errors
	ErrDirCreate  ErrorCode = "DIR_CREATE"
	ErrFileRead   ErrorCode = "FILE_READ"
	ErrFileWrite  ErrorCode = "FILE_WRITE"
	ErrFileRemove ErrorCode = "FILE_REMOVE"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// Generation document errors
	ErrManifestParse ErrorCode = "MANIFEST_PARSE"
)

// GenoutError represents a structured error with code and details
type GenoutError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *GenoutError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *GenoutError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *GenoutError) Is(target error) bool {
	var targetErr *GenoutError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new GenoutError with the given code and message
func New(code ErrorCode, message string) *GenoutError {
	return &GenoutError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new GenoutError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *GenoutError {
	return &GenoutError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a GenoutError
func Wrap(err error, code ErrorCode, message string) *GenoutError {
	if err == nil {
		return nil
	}
	return &GenoutError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *GenoutError {
	if err == nil {
		return nil
	}
	return &GenoutError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *GenoutError) WithDetail(key string, value interface{}) *GenoutError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *GenoutError) WithDetails(details map[string]interface{}) *GenoutError {
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
	var genErr *GenoutError
	if errors.As(err, &genErr) {
		return genErr.Code == code
	}
	return false
}

// IsConflict reports whether err is a content or overwrite conflict between
// two generation passes.
func IsConflict(err error) bool {
	return IsErrorCode(err, ErrContentConflict) || IsErrorCode(err, ErrOverwriteConflict)
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a GenoutError
func GetErrorCode(err error) ErrorCode {
	var genErr *GenoutError
	if errors.As(err, &genErr) {
		return genErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a GenoutError
func GetErrorDetails(err error) map[string]interface{} {
	var genErr *GenoutError
	if errors.As(err, &genErr) {
		return genErr.Details
	}
	return nil
}
