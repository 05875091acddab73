package errors

import "fmt"

// ErrorCode represents a jot error code.
type ErrorCode string

const (
	ErrValidation ErrorCode = "VALIDATION" // 400
	ErrNotFound   ErrorCode = "NOT_FOUND"  // 404
	ErrFormat     ErrorCode = "FORMAT"     // 422
	ErrInternal   ErrorCode = "INTERNAL"   // 500
)

// StoreError represents a structured error with code, status, and details.
type StoreError struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewValidation creates a 400 error for malformed or missing required input.
func NewValidation(msg string) *StoreError {
	return &StoreError{
		Code:    ErrValidation,
		Status:  400,
		Message: msg,
	}
}

// NewNotFound creates a 404 error for an identifier that does not resolve.
func NewNotFound(identifier string) *StoreError {
	return &StoreError{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("not found: %s", identifier),
		Details: map[string]any{"identifier": identifier},
	}
}

// NewFormat creates a 422 error for a structurally invalid import dataset.
// The import is aborted atomically; details carry the offending records.
func NewFormat(msg string, details map[string]any) *StoreError {
	return &StoreError{
		Code:    ErrFormat,
		Status:  422,
		Message: msg,
		Details: details,
	}
}

// NewInternal creates a 500 error for unexpected internal errors.
func NewInternal(err error) *StoreError {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &StoreError{
		Code:    ErrInternal,
		Status:  500,
		Message: msg,
	}
}

// Is checks if an error is a StoreError with the given code.
func Is(err error, code ErrorCode) bool {
	if sErr, ok := err.(*StoreError); ok {
		return sErr.Code == code
	}
	return false
}
