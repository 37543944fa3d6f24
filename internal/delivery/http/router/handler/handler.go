// Package handler contains the HTTP handlers for the application.
package handler

import (
	"net/http"

	domainerrors "authn/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// HealthCheck reports liveness.
func HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// bindAndValidate decodes the JSON body into req and runs the registered validator.
// Undecodable bodies become ErrMalformedBody; an unsupported media type keeps echo's 415.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) && httpErr.Code == http.StatusUnsupportedMediaType {
			return errors.WithStack(err)
		}

		return domainerrors.ErrMalformedBody.WrapMessage(err.Error())
	}

	return errors.WithStack(c.Validate(req))
}
