package service

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the verb and practice services, always wrapped
// in a ServiceError naming the failing operation. Store errors never leave
// the service layer; domain validation errors pass through unchanged.
var (
	// ErrVerbNotFound indicates the requested infinitive is not in the collection.
	// API layer should map this to HTTP 404 Not Found.
	ErrVerbNotFound = errors.New("verb not found")

	// ErrVerbExists indicates a verb with the same infinitive is already stored.
	// API layer should map this to HTTP 409 Conflict.
	ErrVerbExists = errors.New("verb already exists")
)

// ServiceError wraps an error with the service and operation that produced it.
type ServiceError struct {
	Service string
	Op      string
	Err     error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s service %s operation failed: %v", e.Service, e.Op, e.Err)
	}
	return fmt.Sprintf("%s service %s operation failed", e.Service, e.Op)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError creates a new ServiceError.
func NewServiceError(service, op string, err error) error {
	return &ServiceError{
		Service: service,
		Op:      op,
		Err:     err,
	}
}
