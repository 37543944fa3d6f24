package middleware

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"authn/internal/delivery/http/response"
	domainerrors "authn/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func handleError(t *testing.T, method string, err error) (*httptest.ResponseRecorder, response.APIError) {
	t.Helper()

	mw := NewErrorMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil)))
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(method, "/api/v1/auth/login", nil), rec)

	mw.HandleHTTPError(err, c)

	var body response.APIError
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	}

	return rec, body
}

func TestStatusForKind(t *testing.T) {
	tests := []struct {
		kind domainerrors.Kind
		want int
	}{
		{kind: domainerrors.KindValidation, want: http.StatusBadRequest},
		{kind: domainerrors.KindInvalidCredentials, want: http.StatusUnauthorized},
		{kind: domainerrors.KindUnauthenticated, want: http.StatusUnauthorized},
		{kind: domainerrors.KindAlreadyExists, want: http.StatusConflict},
		{kind: domainerrors.KindNotFound, want: http.StatusNotFound},
		{kind: domainerrors.KindUnexpected, want: http.StatusInternalServerError},
		{kind: domainerrors.Kind(42), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, StatusForKind(tt.kind))
		})
	}
}

func TestHandleHTTPError_AppErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "already exists",
			err:        errors.Wrap(domainerrors.NewAlreadyExists("User", "email", "ana@x.com"), "register"),
			wantStatus: http.StatusConflict,
			wantMsg:    "User already exists with email: ana@x.com",
		},
		{
			name:       "invalid credentials",
			err:        domainerrors.ErrInvalidCredentials.WrapMessage("password mismatch"),
			wantStatus: http.StatusUnauthorized,
			wantMsg:    "Invalid email/password",
		},
		{
			name:       "not found",
			err:        domainerrors.NewNotFound("User", "id", 9),
			wantStatus: http.StatusNotFound,
			wantMsg:    "User not found with id: 9",
		},
		{
			name:       "malformed body",
			err:        domainerrors.ErrMalformedBody.WrapMessage("unexpected EOF"),
			wantStatus: http.StatusBadRequest,
			wantMsg:    "Malformed request body",
		},
		{
			name:       "database failure is hidden",
			err:        domainerrors.NewDatabaseExecuteError(errors.New("password=hunter2 rejected"), "failed to create user"),
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "Internal server error",
		},
		{
			name:       "plain error",
			err:        errors.New("nil pointer somewhere"),
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "Internal server error",
		},
		{
			name:       "echo not found",
			err:        echo.ErrNotFound,
			wantStatus: http.StatusNotFound,
			wantMsg:    "Not Found",
		},
		{
			name:       "echo body limit",
			err:        echo.ErrStatusRequestEntityTooLarge,
			wantStatus: http.StatusRequestEntityTooLarge,
			wantMsg:    "Request Entity Too Large",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, body := handleError(t, http.MethodPost, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantStatus, body.Status)
			assert.Equal(t, tt.wantMsg, body.Message)
			assert.Empty(t, body.Errors)
			assert.NotContains(t, rec.Body.String(), "hunter2")
		})
	}
}

func TestHandleHTTPError_ValidationEnvelope(t *testing.T) {
	err := domainerrors.NewValidationError("registerRequest", []domainerrors.FieldError{
		{Object: "registerRequest", Field: "email", RejectedValue: "nope", Message: "must be a well-formed email address"},
	})

	rec, body := handleError(t, http.MethodPost, errors.WithStack(err))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Validation error", body.Message)
	require.Len(t, body.Errors, 1)
	assert.Equal(t, response.FieldErrorDTO{
		Object: "registerRequest", Field: "email", RejectedValue: "nope", Message: "must be a well-formed email address",
	}, body.Errors[0])
}

func TestHandleHTTPError_HeadHasNoBody(t *testing.T) {
	rec, _ := handleError(t, http.MethodHead, domainerrors.ErrInvalidToken)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Zero(t, rec.Body.Len())
}

func TestHandleHTTPError_CommittedResponseUntouched(t *testing.T) {
	mw := NewErrorMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil)))
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	require.NoError(t, c.String(http.StatusOK, "done"))

	mw.HandleHTTPError(errors.New("late"), c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "done", rec.Body.String())
}
