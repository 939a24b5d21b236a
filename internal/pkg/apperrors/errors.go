package apperrors

import (
	"errors"
	"fmt"
)

// Common errors
var (
	// Resource errors
	ErrResourceNotFound = errors.New("resource not found")
	ErrConflict         = errors.New("conflict")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenNotFound      = errors.New("token not found")
	ErrTokenRevoked       = errors.New("token revoked")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")

	// Infrastructure errors
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// User errors
var (
	ErrUserNotFound          = errors.New("user not found")
	ErrUsernameAlreadyExists = errors.New("username already exists")
)

// Role and relationship errors
var (
	ErrRoleAlreadySet         = errors.New("role already set")
	ErrTutorNotFound          = errors.New("tutor not found")
	ErrStudentNotFound        = errors.New("student not found")
	ErrRelationshipNotFound   = errors.New("relationship not found")
	ErrConversationNotAllowed = errors.New("conversation not allowed")

	// A registered role whose entry row is gone is an authorization
	// failure, same as calling with the wrong role.
	ErrRoleEntryMissing = fmt.Errorf("%w: role entry missing", ErrPermissionDenied)
)

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Field   string
}

// Error implements the error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap
func (e *CustomError) Unwrap() error {
	return e.Err
}

// WithField attaches the offending field name to the error
func (e *CustomError) WithField(field string) *CustomError {
	e.Field = field
	return e
}

// NewResourceNotFoundError creates an error for a missing resource
func NewResourceNotFoundError(message string) *CustomError {
	return &CustomError{Err: ErrResourceNotFound, Message: message}
}

// NewForbiddenError creates an error for a denied operation
func NewForbiddenError(message string) *CustomError {
	return &CustomError{Err: ErrPermissionDenied, Message: message}
}

// NewValidationError creates an error for malformed input
func NewValidationError(message string) *CustomError {
	return &CustomError{Err: ErrValidationFailed, Message: message}
}

// NewConflictError creates an error for a uniqueness violation that
// was not pre-empted by get-or-create logic
func NewConflictError(message string) *CustomError {
	return &CustomError{Err: ErrConflict, Message: message}
}

// NewBadRequestError creates an error for an unprocessable request
func NewBadRequestError(message string) *CustomError {
	return &CustomError{Err: ErrBadRequest, Message: message}
}
