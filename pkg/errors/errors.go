package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error taxonomy for calls made against the backend. Every failure the
// client surfaces falls into one of these classes.

var (
	// ErrNetwork indicates the request never completed
	ErrNetwork = errors.New("network failure")

	// ErrServer indicates the backend answered with a non-2xx status
	ErrServer = errors.New("server error")

	// ErrValidation indicates required input was missing or malformed before sending
	ErrValidation = errors.New("validation failed")

	// ErrConflict indicates the backend rejected a duplicate (409)
	ErrConflict = errors.New("conflict")

	// ErrNotFound indicates the backend could not find the resource (404)
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized indicates the backend rejected the credentials (401/403)
	ErrUnauthorized = errors.New("unauthorized")
)

const genericMessage = "An unexpected error occurred. Please try again."

// ServerError is a non-2xx backend response carrying its message payload.
// It matches ErrServer and, depending on status, one of the narrower sentinels.
type ServerError struct {
	StatusCode int
	Message    string
	Operation  string
}

func (e *ServerError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: backend returned status %d", e.Operation, e.StatusCode)
	}
	return fmt.Sprintf("%s: backend returned status %d: %s", e.Operation, e.StatusCode, e.Message)
}

// Is lets errors.Is match the status-derived sentinels.
func (e *ServerError) Is(target error) bool {
	switch target {
	case ErrServer:
		return true
	case ErrConflict:
		return e.StatusCode == http.StatusConflict
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
	}
	return false
}

// NetworkError wraps a transport failure for the given operation
func NetworkError(operation string, cause error) error {
	return fmt.Errorf("%s: %w: %w", operation, ErrNetwork, cause)
}

// FieldError is a client-side validation failure on a single input field
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return e.Field + " " + e.Reason
}

// Is makes every FieldError match ErrValidation.
func (e *FieldError) Is(target error) bool {
	return target == ErrValidation
}

// InvalidInputError creates a validation error with context
func InvalidInputError(field, reason string) error {
	return &FieldError{Field: field, Reason: reason}
}

// Is checks if an error matches a target error (works with wrapped errors)
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target any) bool {
	return errors.As(err, target)
}

// UserMessage converts an error into the inline message shown to the user.
// Backend messages are passed through; everything else gets a generic text.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var serverErr *ServerError
	if errors.As(err, &serverErr) && serverErr.Message != "" {
		return serverErr.Message
	}

	switch {
	case errors.Is(err, ErrNetwork):
		return "Could not reach the server. Please check your connection and try again."
	case errors.Is(err, ErrValidation):
		var fieldErr *FieldError
		if errors.As(err, &fieldErr) {
			return fieldErr.Error()
		}
		return "Please fill in all required fields."
	case errors.Is(err, ErrConflict):
		return "This was already done. Refresh to see the latest state."
	case errors.Is(err, ErrUnauthorized):
		return "You are not allowed to do that. Please log in again."
	default:
		return genericMessage
	}
}
