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

// ErrForbidden indicates that the user is not allowed to perform the requested action.
var ErrForbidden = errors.New("forbidden")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrRefreshTokenExpired indicates the stored refresh token is past its expiry.
var ErrRefreshTokenExpired = errors.New("refresh token expired")

// ErrConflict indicates the resource is in a state that does not allow the requested change.
var ErrConflict = errors.New("conflict with current resource state")

// ErrInvalidAction indicates a workflow action that is not permitted from the
// entry's current status.
var ErrInvalidAction = errors.New("invalid operation")

// ErrPeriodLocked indicates the entry's date falls inside a closed fiscal period.
var ErrPeriodLocked = errors.New("fiscal period is locked")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// AppError wraps a lower-level error with an HTTP-ish status code and a message
// suitable for logging. Repositories use it to surface persistence failures
// without leaking driver details to callers.
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

// NewAppError creates a new AppError wrapping the given cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates a not-found AppError that also matches ErrNotFound
// via errors.Is.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}

// NewConflictError creates an AppError for duplicate resources that matches
// ErrDuplicate via errors.Is.
func NewConflictError(message string) *AppError {
	return &AppError{Code: 409, Message: message, Err: ErrDuplicate}
}

// NewValidationFailedError creates an AppError for invalid input that matches
// ErrValidation via errors.Is.
func NewValidationFailedError(message string) *AppError {
	return &AppError{Code: 400, Message: message, Err: ErrValidation}
}
