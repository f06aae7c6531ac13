package errors

import (
	"errors"
	"fmt"
)

const (
	CodeClockOutBeforeClockIn = "CLOCK_OUT_BEFORE_CLOCK_IN"
	CodeClockActivity         = "CLOCK_ACTIVITY"
)

// Sentinels for errors.Is checks against the domain error kinds.
var (
	ErrClockOutBeforeClockIn = &AppError{Type: ErrorTypeInvalidInterval, Code: CodeClockOutBeforeClockIn}
	ErrClockActivity         = &AppError{Type: ErrorTypeInvalidActivityTransition, Code: CodeClockActivity}
)

// newError builds an AppError with an empty context
func newError(errorType ErrorType, code string, cause error, format string, args ...interface{}) *AppError {
	return &AppError{
		Type:    errorType,
		Message: fmt.Sprintf(format, args...),
		Code:    code,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// NewValidationError creates a new validation error
func NewValidationError(message string, cause error) *AppError {
	return newError(ErrorTypeValidation, "VALIDATION_FAILED", cause, "%s", message)
}

// NewNotFoundError reports a missing project or time interval
func NewNotFoundError(resource string, identifier string) *AppError {
	return newError(ErrorTypeNotFound, "NOT_FOUND", nil, "%s not found: %s", resource, identifier).
		WithContext("resource", resource).
		WithContext("identifier", identifier)
}

// NewDatabaseError creates a new database error
func NewDatabaseError(operation string, cause error) *AppError {
	return newError(ErrorTypeDatabase, "DATABASE_ERROR", cause, "database operation failed: %s", operation).
		WithContext("operation", operation)
}

// NewInvalidInputError reports a command argument that cannot be used, e.g.
// an --at value that is not a clock time
func NewInvalidInputError(field string, value interface{}, reason string) *AppError {
	return newError(ErrorTypeInvalidInput, "INVALID_INPUT", nil, "invalid input for %s: %s", field, reason).
		WithContext("field", field).
		WithContext("value", value).
		WithContext("reason", reason)
}

// NewTimeoutError reports a storage operation cut short by its context
func NewTimeoutError(operation string, cause error) *AppError {
	return newError(ErrorTypeTimeout, "TIMEOUT", cause, "operation timed out: %s", operation).
		WithContext("operation", operation)
}

// NewConflictError creates an error for a resource that already exists
func NewConflictError(resource string, identifier string) *AppError {
	return newError(ErrorTypeConflict, "CONFLICT", nil, "%s already exists: %s", resource, identifier).
		WithContext("resource", resource).
		WithContext("identifier", identifier)
}

// NewClockOutBeforeClockInError reports an interval whose stop instant
// precedes its start instant. Both instants are milliseconds since the epoch.
func NewClockOutBeforeClockInError(start, stop int64) *AppError {
	return newError(ErrorTypeInvalidInterval, CodeClockOutBeforeClockIn, nil,
		"clock out (%d) occurs before clock in (%d)", stop, start).
		WithContext("start", start).
		WithContext("stop", stop)
}

// NewClockActivityError reports a clock activity change that is not allowed
// in the current state, e.g. registering an active interval.
func NewClockActivityError(message string) *AppError {
	return newError(ErrorTypeInvalidActivityTransition, CodeClockActivity, nil, "%s", message)
}

// WrapError wraps an existing error with additional context
func WrapError(err error, errorType ErrorType, message string) *AppError {
	return newError(errorType, errorType.String(), err, "%s", message)
}

// IsAppError checks if the error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// AsAppError converts an error to an AppError if possible
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsErrorType checks if the error is of the specified type
func IsErrorType(err error, errorType ErrorType) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.IsType(errorType)
	}
	return false
}

// IsDomainError reports whether err carries one of the time interval domain kinds.
func IsDomainError(err error) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Type.IsDomain()
	}
	return false
}

// GetUserMessage returns a user-friendly error message
func GetUserMessage(err error) string {
	if appErr, ok := AsAppError(err); ok {
		switch appErr.Type {
		case ErrorTypeValidation, ErrorTypeNotFound, ErrorTypeInvalidInput, ErrorTypeConflict:
			return appErr.Message
		case ErrorTypeInvalidInterval:
			return "Clock out must not occur before clock in."
		case ErrorTypeInvalidActivityTransition:
			return appErr.Message
		case ErrorTypeDatabase:
			return "A database error occurred. Please try again."
		case ErrorTypeTimeout:
			return "The operation timed out. Please try again."
		default:
			return "An unexpected error occurred. Please try again."
		}
	}
	return err.Error()
}

// GetErrorCode returns the error code for the error
func GetErrorCode(err error) string {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code
	}
	return "UNKNOWN_ERROR"
}

// ShouldLogError determines if an error should be logged based on its type
func ShouldLogError(err error) bool {
	if appErr, ok := AsAppError(err); ok {
		switch appErr.Type {
		case ErrorTypeValidation, ErrorTypeNotFound, ErrorTypeInvalidInput, ErrorTypeConflict,
			ErrorTypeInvalidInterval, ErrorTypeInvalidActivityTransition:
			return false // user errors
		default:
			return true
		}
	}
	return true
}
