package middleware

import (
	"strings"

	deliverycontext "authn/internal/delivery/context"
	domainerrors "authn/internal/domain/errors"
	"authn/internal/domain/service"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

const bearerScheme = "Bearer"

// AuthMiddleware validates bearer tokens issued by the login flow.
type AuthMiddleware struct {
	tokenSvc service.TokenService
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc}
}

// Authenticate rejects requests without a valid token and exposes the subject via deliverycontext.GetUserID.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		tokenString, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
		if !ok {
			return domainerrors.ErrMissingToken.WrapMessage("authenticate")
		}

		claims, err := m.tokenSvc.Validate(tokenString)
		if err != nil {
			return errors.WithStack(err)
		}
		if claims.UserID <= 0 {
			return domainerrors.ErrInvalidToken.WrapMessage("token has no user id")
		}

		deliverycontext.SetUserID(c, claims.UserID)

		return next(c)
	}
}

// bearerToken extracts the credentials of an "Authorization: Bearer <token>" header.
// The scheme is matched case-insensitively.
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, bearerScheme) {
		return "", false
	}

	token = strings.TrimSpace(token)

	return token, token != ""
}
