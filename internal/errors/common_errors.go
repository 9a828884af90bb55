package errors

import (
	"errors"
	"fmt"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrTypeFormat     ErrorType = "FORMAT"
	ErrTypeParsing    ErrorType = "PARSING"
	ErrTypeStorage    ErrorType = "STORAGE"
	ErrTypeValidation ErrorType = "VALIDATION"
	ErrTypeConfig     ErrorType = "CONFIG"
)

// AppError represents an application-specific error
type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap allows errors.Is and errors.As to work with AppError
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewAppError creates a new application error
func NewAppError(errType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// NewFormatMismatch creates an error for a file whose layout does not match
// the declared schema. Fatal for that file only; other producers continue.
func NewFormatMismatch(message string, cause error) *AppError {
	return NewAppError(ErrTypeFormat, message, cause)
}

// NewParseError creates an error for a field that cannot be parsed.
// Recoverable; the offending line is skipped with a diagnostic.
func NewParseError(message string, cause error) *AppError {
	return NewAppError(ErrTypeParsing, message, cause)
}

// NewSinkError creates an error for a failed report write. Fatal to the run.
func NewSinkError(message string, cause error) *AppError {
	return NewAppError(ErrTypeStorage, message, cause)
}

// NewValidationError creates an error for rejected input
func NewValidationError(message string, cause error) *AppError {
	return NewAppError(ErrTypeValidation, message, cause)
}

// NewConfigError creates a configuration-related error
func NewConfigError(message string, cause error) *AppError {
	return NewAppError(ErrTypeConfig, message, cause)
}

// isType reports whether err carries an AppError of the given type in its chain
func isType(err error, errType ErrorType) bool {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return false
	}
	return appErr.Type == errType
}

// IsFormatMismatch reports whether err is a file-format mismatch
func IsFormatMismatch(err error) bool {
	return isType(err, ErrTypeFormat)
}

// IsParseError reports whether err is a per-line parse failure
func IsParseError(err error) bool {
	return isType(err, ErrTypeParsing)
}

// IsSinkError reports whether err is a report-sink failure
func IsSinkError(err error) bool {
	return isType(err, ErrTypeStorage)
}
