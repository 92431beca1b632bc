package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Common application errors
var (
	ErrEmptyName  = NewValidationError("name", "name is required")
	ErrEmptyEmail = NewValidationError("email", "email is required")
	ErrMissingID  = NewValidationError("id", "user id is required")
)

// ValidationError represents a client-side validation failure with field-level details
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed: %s - %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// APIError represents a non-success HTTP status returned by the users API
type APIError struct {
	Method     string
	URL        string
	StatusCode int
	Status     string
	Message    string
}

// NewAPIError creates a new API error
func NewAPIError(method, url string, statusCode int, status, message string) *APIError {
	return &APIError{
		Method:     method,
		URL:        url,
		StatusCode: statusCode,
		Status:     status,
		Message:    message,
	}
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("HTTP error %d: %s", e.StatusCode, e.Message)
}

// NotFound reports whether the API answered 404
func (e *APIError) NotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// TransportError represents a failure to reach the API at all
type TransportError struct {
	Method string
	URL    string
	Err    error
}

// NewTransportError creates a new transport error
func NewTransportError(method, url string, err error) *TransportError {
	return &TransportError{
		Method: method,
		URL:    url,
		Err:    err,
	}
}

// Error implements the error interface
func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

// Unwrap returns the wrapped error
func (e *TransportError) Unwrap() error {
	return e.Err
}

// DecodeError represents a success response whose body could not be decoded
type DecodeError struct {
	URL string
	Err error
}

// NewDecodeError creates a new decode error
func NewDecodeError(url string, err error) *DecodeError {
	return &DecodeError{
		URL: url,
		Err: err,
	}
}

// Error implements the error interface
func (e *DecodeError) Error() string {
	return fmt.Sprintf("malformed response from %s: %v", e.URL, e.Err)
}

// Unwrap returns the wrapped error
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// UserMessage returns the text shown to the operator for err
func UserMessage(err error) string {
	var (
		validationErr *ValidationError
		apiErr        *APIError
		transportErr  *TransportError
		decodeErr     *DecodeError
	)

	switch {
	case err == nil:
		return ""
	case errors.As(err, &validationErr):
		return validationErr.Message
	case errors.As(err, &apiErr):
		return apiErr.Error()
	case errors.As(err, &transportErr):
		return fmt.Sprintf("network error: %v", transportErr.Err)
	case errors.As(err, &decodeErr):
		return decodeErr.Error()
	default:
		return err.Error()
	}
}
