// Package response writes the bodies of the HTTP API.
package response

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// APIError is the body of every failed request.
type APIError struct {
	Status  int             `json:"status"`  // HTTP status code
	Message string          `json:"message"` // User-facing message
	Errors  []FieldErrorDTO `json:"errors,omitempty"`
}

// FieldErrorDTO describes one rejected request field.
type FieldErrorDTO struct {
	Object        string `json:"object"`
	Field         string `json:"field"`
	RejectedValue any    `json:"rejectedValue"`
	Message       string `json:"message"`
}

// Error writes an APIError. HEAD requests get the status only.
func Error(c echo.Context, status int, message string, fieldErrors []FieldErrorDTO) error {
	if c.Request().Method == http.MethodHead {
		return c.NoContent(status)
	}
	if message == "" {
		message = http.StatusText(status)
	}

	return c.JSON(status, APIError{
		Status:  status,
		Message: message,
		Errors:  fieldErrors,
	})
}

// Empty writes a 200 with no body.
func Empty(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

// Token writes the raw token as text/plain.
func Token(c echo.Context, token string) error {
	return c.String(http.StatusOK, token)
}

// JSON writes data as a 200 JSON body.
func JSON(c echo.Context, data any) error {
	return c.JSON(http.StatusOK, data)
}
