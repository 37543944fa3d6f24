// Package errors defines the typed failures raised by the domain and use case layers.
// Mapping a Kind to a transport status is the delivery layer's job.
package errors

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies an application error.
type Kind int

const (
	KindUnexpected Kind = iota
	KindValidation
	KindInvalidCredentials
	KindUnauthenticated
	KindAlreadyExists
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindInvalidCredentials:
		return "invalid_credentials"
	case KindUnauthenticated:
		return "unauthenticated"
	case KindAlreadyExists:
		return "already_exists"
	case KindNotFound:
		return "not_found"
	default:
		return "unexpected"
	}
}

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	Kind() Kind        // Failure classification
	ErrorCode() string // Business error code
	Message() string   // User-facing message
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	kind      Kind
	errorCode string
	message   string
}

// NewBaseError creates a new base error
func NewBaseError(kind Kind, errorCode, message string) *BaseError {
	return &BaseError{
		kind:      kind,
		errorCode: errorCode,
		message:   message,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// Is matches any BaseError carrying the same error code, so errors built with
// WithMessage still satisfy errors.Is against the predefined value.
func (e *BaseError) Is(target error) bool {
	t, ok := target.(*BaseError)
	if !ok {
		return false
	}

	return e.errorCode == t.errorCode
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// WithMessage returns a copy of the error with a different user-facing message.
func (e *BaseError) WithMessage(message string) *BaseError {
	return &BaseError{
		kind:      e.kind,
		errorCode: e.errorCode,
		message:   message,
	}
}

// Kind returns the failure classification
func (e *BaseError) Kind() Kind {
	return e.kind
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-facing message
func (e *BaseError) Message() string {
	return e.message
}

// Predefined error types
var (
	ErrValidationFailed = NewBaseError(
		KindValidation,
		"VALIDATION_FAILED",
		"Validation error",
	)

	ErrMalformedBody = NewBaseError(
		KindValidation,
		"MALFORMED_BODY",
		"Malformed request body",
	)

	ErrPasswordTooLong = NewBaseError(
		KindValidation,
		"PASSWORD_TOO_LONG",
		"Password is too long",
	)

	// Email not found and password mismatch share this value so callers cannot tell them apart.
	ErrInvalidCredentials = NewBaseError(
		KindInvalidCredentials,
		"INVALID_CREDENTIALS",
		"Invalid email/password",
	)

	ErrMissingToken = NewBaseError(
		KindUnauthenticated,
		"MISSING_TOKEN",
		"Authorization header is missing or malformed",
	)

	ErrInvalidToken = NewBaseError(
		KindUnauthenticated,
		"INVALID_TOKEN",
		"Invalid or expired token",
	)

	ErrAlreadyExists = NewBaseError(
		KindAlreadyExists,
		"ALREADY_EXISTS",
		"Entity already exists",
	)

	ErrNotFound = NewBaseError(
		KindNotFound,
		"NOT_FOUND",
		"Entity not found",
	)

	ErrPasswordHashFailed = NewBaseError(
		KindUnexpected,
		"PASSWORD_HASH_FAILED",
		"Password processing failed",
	)

	ErrTokenIssueFailed = NewBaseError(
		KindUnexpected,
		"TOKEN_ISSUE_FAILED",
		"Token generation failed",
	)

	ErrInternalError = NewBaseError(
		KindUnexpected,
		"INTERNAL_ERROR",
		"Internal server error",
	)
)

// NewAlreadyExists reports a duplicate unique key, e.g. "User already exists with email: a@b.c".
func NewAlreadyExists(entity, field string, value any) *BaseError {
	return ErrAlreadyExists.WithMessage(fmt.Sprintf("%s already exists with %s: %v", entity, field, value))
}

// NewNotFound reports a missing entity, e.g. "User not found with id: 7".
func NewNotFound(entity, field string, value any) *BaseError {
	return ErrNotFound.WithMessage(fmt.Sprintf("%s not found with %s: %v", entity, field, value))
}

// DatabaseExecuteError represents a storage failure that is not a business rule violation.
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, e.details).Error()
}

// Unwrap exposes the driver error.
func (e *DatabaseExecuteError) Unwrap() error {
	return e.err
}

// Kind returns the failure classification
func (e *DatabaseExecuteError) Kind() Kind {
	return KindUnexpected
}

// ErrorCode returns the business error code
func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

// Message returns the user-facing message
func (e *DatabaseExecuteError) Message() string {
	return "Database execution failed"
}
