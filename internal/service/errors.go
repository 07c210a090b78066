package service

import (
	"errors"
	"fmt"

	"github.com/phrazzld/copyforge-api/internal/store"
)

// Common service errors - sentinel errors used across service implementations.
// The API layer maps them to HTTP status codes.
var (
	// ErrProjectNotFound indicates that the project does not exist.
	// API layer should map this to HTTP 404 Not Found.
	ErrProjectNotFound = errors.New("project not found")

	// ErrProjectNotOwned indicates the project belongs to another user.
	// API layer should map this to HTTP 403 Forbidden.
	ErrProjectNotOwned = errors.New("project is owned by another user")

	// ErrInvalidProject indicates the requested project data is invalid.
	// API layer should map this to HTTP 400 Bad Request.
	ErrInvalidProject = errors.New("invalid project")
)

// ServiceError wraps unexpected failures with the operation that hit them.
type ServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError maps known store errors onto service sentinels and wraps
// everything else. Sentinels are returned unwrapped.
func NewServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, ErrProjectNotFound), errors.Is(err, store.ErrProjectNotFound):
		return ErrProjectNotFound
	case errors.Is(err, ErrProjectNotOwned):
		return ErrProjectNotOwned
	case errors.Is(err, ErrInvalidProject):
		return err
	case errors.Is(err, store.ErrInvalidEntity):
		return fmt.Errorf("%w: %w", ErrInvalidProject, err)
	}

	return &ServiceError{Operation: operation, Message: message, Err: err}
}
