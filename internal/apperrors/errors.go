package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates that the acting user lacks the role required for the operation.
var ErrForbidden = errors.New("forbidden")

// ErrUnauthorized indicates missing or invalid authentication.
var ErrUnauthorized = errors.New("unauthorized")

// ErrConflict indicates that the operation conflicts with the current state of
// the resource (e.g. removing a team's last admin, deleting a category that
// still has transactions).
var ErrConflict = errors.New("conflict")

// ErrInvalidHierarchy indicates a category nesting or type-inheritance rule violation.
var ErrInvalidHierarchy = errors.New("invalid hierarchy")

// ErrPreconditionFailed indicates the aggregate is in the wrong lifecycle state
// for the operation (e.g. permanent delete of a team that was never soft-deleted).
var ErrPreconditionFailed = errors.New("precondition failed")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// AppError wraps an underlying error with a status-like code and a message
// suitable for logging. It unwraps to its cause, which for the constructors
// below is one of the sentinels, so callers can use errors.Is against the taxonomy.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a generic AppError wrapping an underlying cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that matches ErrNotFound.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}

// NewValidationFailedError creates an AppError that matches ErrValidation.
func NewValidationFailedError(message string) *AppError {
	return &AppError{Code: 400, Message: message, Err: ErrValidation}
}

// NewForbiddenError creates an AppError that matches ErrForbidden. The message
// carries the human-readable denial reason.
func NewForbiddenError(message string) *AppError {
	return &AppError{Code: 403, Message: message, Err: ErrForbidden}
}

// NewConflictError creates an AppError that matches ErrConflict.
func NewConflictError(message string) *AppError {
	return &AppError{Code: 409, Message: message, Err: ErrConflict}
}

// NewInvalidHierarchyError creates an AppError that matches ErrInvalidHierarchy.
func NewInvalidHierarchyError(message string) *AppError {
	return &AppError{Code: 422, Message: message, Err: ErrInvalidHierarchy}
}

// NewPreconditionFailedError creates an AppError that matches ErrPreconditionFailed.
func NewPreconditionFailedError(message string) *AppError {
	return &AppError{Code: 412, Message: message, Err: ErrPreconditionFailed}
}
