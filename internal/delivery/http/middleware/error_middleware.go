package middleware

import (
	"fmt"
	"log/slog"
	"net/http"

	deliverycontext "authn/internal/delivery/context"
	"authn/internal/delivery/http/response"
	domainerrors "authn/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// statusByKind is the only place an error kind becomes an HTTP status.
var statusByKind = map[domainerrors.Kind]int{
	domainerrors.KindValidation:         http.StatusBadRequest,
	domainerrors.KindInvalidCredentials: http.StatusUnauthorized,
	domainerrors.KindUnauthenticated:    http.StatusUnauthorized,
	domainerrors.KindAlreadyExists:      http.StatusConflict,
	domainerrors.KindNotFound:           http.StatusNotFound,
	domainerrors.KindUnexpected:         http.StatusInternalServerError,
}

// StatusForKind maps an error kind to its HTTP status; unknown kinds are 500.
func StatusForKind(kind domainerrors.Kind) int {
	if status, ok := statusByKind[kind]; ok {
		return status
	}

	return http.StatusInternalServerError
}

// ErrorMiddleware error handling middleware
type ErrorMiddleware struct {
	logger *slog.Logger
}

// NewErrorMiddleware creates a new error handling middleware
func NewErrorMiddleware(logger *slog.Logger) *ErrorMiddleware {
	return &ErrorMiddleware{
		logger: logger,
	}
}

// HandleHTTPError handles errors as Echo's HTTPErrorHandler
func (m *ErrorMiddleware) HandleHTTPError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	if writeErr := m.respond(err, c); writeErr != nil {
		m.log(c).Error("Failed to write error response", slog.Any("error", writeErr))
	}
}

func (m *ErrorMiddleware) respond(err error, c echo.Context) error {
	var validationErr *domainerrors.ValidationError
	if errors.As(err, &validationErr) {
		return response.Error(c, http.StatusBadRequest, validationErr.Message(), toFieldErrorDTOs(validationErr.Fields()))
	}

	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		status := StatusForKind(appErr.Kind())
		if status >= http.StatusInternalServerError {
			return m.internalError(err, c)
		}

		return response.Error(c, status, appErr.Message(), nil)
	}

	// Routing, body limit and bind failures raised by echo itself keep their status.
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		if httpErr.Code >= http.StatusInternalServerError {
			return m.internalError(err, c)
		}

		return response.Error(c, httpErr.Code, fmt.Sprint(httpErr.Message), nil)
	}

	return m.internalError(err, c)
}

// internalError logs the cause and answers with a generic message.
func (m *ErrorMiddleware) internalError(err error, c echo.Context) error {
	m.log(c).Error("Unhandled error",
		slog.String("error", err.Error()),
		slog.String("path", c.Request().URL.Path),
		slog.String("method", c.Request().Method),
	)

	return response.Error(c, http.StatusInternalServerError, domainerrors.ErrInternalError.Message(), nil)
}

func (m *ErrorMiddleware) log(c echo.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(c.Request().Context(), m.logger)
}

func toFieldErrorDTOs(fields []domainerrors.FieldError) []response.FieldErrorDTO {
	if len(fields) == 0 {
		return nil
	}

	dtos := make([]response.FieldErrorDTO, 0, len(fields))
	for _, f := range fields {
		dtos = append(dtos, response.FieldErrorDTO{
			Object:        f.Object,
			Field:         f.Field,
			RejectedValue: f.RejectedValue,
			Message:       f.Message,
		})
	}

	return dtos
}
