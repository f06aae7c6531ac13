package errors

import (
	"fmt"
	"sort"

	"github.com/rs/zerolog"
)

// ErrorType represents the category of error
type ErrorType int

const (
	ErrorTypeValidation ErrorType = iota
	ErrorTypeNotFound
	ErrorTypeDatabase
	ErrorTypeInvalidInput
	ErrorTypeTimeout
	ErrorTypeConflict
	// ErrorTypeInvalidInterval is raised when a clock out precedes its clock in.
	ErrorTypeInvalidInterval
	// ErrorTypeInvalidActivityTransition is raised when the clock activity of
	// an interval or project does not allow the requested change.
	ErrorTypeInvalidActivityTransition
)

var errorTypeNames = map[ErrorType]string{
	ErrorTypeValidation:                "validation",
	ErrorTypeNotFound:                  "not_found",
	ErrorTypeDatabase:                  "database",
	ErrorTypeInvalidInput:              "invalid_input",
	ErrorTypeTimeout:                   "timeout",
	ErrorTypeConflict:                  "conflict",
	ErrorTypeInvalidInterval:           "invalid_interval",
	ErrorTypeInvalidActivityTransition: "invalid_activity_transition",
}

// String returns the string representation of the error type
func (et ErrorType) String() string {
	if name, ok := errorTypeNames[et]; ok {
		return name
	}
	return "unknown"
}

// IsDomain reports whether the type belongs to the time interval domain rules.
func (et ErrorType) IsDomain() bool {
	return et == ErrorTypeInvalidInterval || et == ErrorTypeInvalidActivityTransition
}

// AppError represents a structured application error
type AppError struct {
	Type    ErrorType
	Message string
	Code    string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error for error unwrapping
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is matches another AppError with the same type and code, which lets the
// package sentinels be used with errors.Is.
func (e *AppError) Is(target error) bool {
	if appErr, ok := target.(*AppError); ok {
		return e.Type == appErr.Type && e.Code == appErr.Code
	}
	return false
}

// IsType checks if this error is of the specified type
func (e *AppError) IsType(errorType ErrorType) bool {
	return e.Type == errorType
}

// WithContext adds context information to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// GetContext retrieves context information from the error
func (e *AppError) GetContext(key string) (interface{}, bool) {
	if e.Context == nil {
		return nil, false
	}
	value, exists := e.Context[key]
	return value, exists
}

// MarshalZerologObject writes the type, code and context of the error as
// log fields, context keys in sorted order
func (e *AppError) MarshalZerologObject(ev *zerolog.Event) {
	ev.Str("type", e.Type.String()).Str("code", e.Code)

	keys := make([]string, 0, len(e.Context))
	for key := range e.Context {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		ev.Interface(key, e.Context[key])
	}
}
