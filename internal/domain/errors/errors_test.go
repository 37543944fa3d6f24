package errors

import (
	stderrors "errors"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAlreadyExists_Message(t *testing.T) {
	err := NewAlreadyExists("User", "email", "ana@x.com")

	assert.Equal(t, "User already exists with email: ana@x.com", err.Message())
	assert.Equal(t, KindAlreadyExists, err.Kind())
	assert.True(t, errors.Is(errors.Wrap(err, "register"), ErrAlreadyExists))
	assert.False(t, errors.Is(err, ErrNotFound))
}

func TestNewNotFound_Message(t *testing.T) {
	err := NewNotFound("User", "id", int64(7))

	assert.Equal(t, "User not found with id: 7", err.Error())
	assert.Equal(t, KindNotFound, err.Kind())
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestAppError_SurvivesWrapping(t *testing.T) {
	wrapped := errors.Wrap(ErrInvalidCredentials.WrapMessage("login failed"), "handler")

	var appErr AppError
	require.True(t, errors.As(wrapped, &appErr))
	assert.Equal(t, KindInvalidCredentials, appErr.Kind())
	assert.Equal(t, "Invalid email/password", appErr.Message())
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("registerRequest", []FieldError{
		{Object: "registerRequest", Field: "name", RejectedValue: "", Message: "must not be blank"},
		{Object: "registerRequest", Field: "email", RejectedValue: "nope", Message: "must be a well-formed email address"},
	})

	assert.True(t, errors.Is(err, ErrValidationFailed))
	assert.Equal(t, KindValidation, err.Kind())
	assert.Len(t, err.Fields(), 2)
	assert.Contains(t, err.Error(), "name must not be blank")

	var appErr AppError
	require.True(t, errors.As(errors.WithStack(err), &appErr))
	assert.Equal(t, "VALIDATION_FAILED", appErr.ErrorCode())
}

func TestDatabaseExecuteError_Unwraps(t *testing.T) {
	cause := stderrors.New("connection reset")
	err := NewDatabaseExecuteError(cause, "failed to create user")

	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, KindUnexpected, err.Kind())
	assert.Equal(t, "failed to create user: connection reset", err.Error())
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "already_exists", KindAlreadyExists.String())
	assert.Equal(t, "unexpected", Kind(99).String())
}
