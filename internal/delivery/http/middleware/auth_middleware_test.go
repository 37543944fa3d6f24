package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	deliverycontext "authn/internal/delivery/context"
	domainerrors "authn/internal/domain/errors"
	"authn/internal/domain/service"
	mockSvc "authn/internal/mocks/service"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runAuthenticate(t *testing.T, tokenSvc service.TokenService, header string) (echo.Context, bool, error) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	c := e.NewContext(req, httptest.NewRecorder())

	called := false
	err := NewAuthMiddleware(tokenSvc).Authenticate(func(echo.Context) error {
		called = true

		return nil
	})(c)

	return c, called, err
}

func TestAuthenticate_ValidToken(t *testing.T) {
	tokenSvc := mockSvc.NewMockTokenService(t)
	tokenSvc.EXPECT().Validate("good.token").Return(&service.Claims{UserID: 7, Email: "ana@x.com"}, nil)

	c, called, err := runAuthenticate(t, tokenSvc, "bearer good.token")
	require.NoError(t, err)
	assert.True(t, called)

	userID, ok := deliverycontext.GetUserID(c)
	assert.True(t, ok)
	assert.Equal(t, int64(7), userID)
}

func TestAuthenticate_MissingOrMalformedHeader(t *testing.T) {
	for _, header := range []string{"", "Bearer", "Bearer   ", "Basic abc", "token-without-scheme"} {
		t.Run(header, func(t *testing.T) {
			_, called, err := runAuthenticate(t, mockSvc.NewMockTokenService(t), header)

			assert.False(t, called)
			assert.True(t, errors.Is(err, domainerrors.ErrMissingToken))
		})
	}
}

func TestAuthenticate_InvalidToken(t *testing.T) {
	tokenSvc := mockSvc.NewMockTokenService(t)
	tokenSvc.EXPECT().Validate("expired").Return(nil, errors.Wrap(domainerrors.ErrInvalidToken, "token is expired"))

	_, called, err := runAuthenticate(t, tokenSvc, "Bearer expired")

	assert.False(t, called)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidToken))
}

func TestAuthenticate_TokenWithoutSubject(t *testing.T) {
	tokenSvc := mockSvc.NewMockTokenService(t)
	tokenSvc.EXPECT().Validate("anon").Return(&service.Claims{}, nil)

	_, called, err := runAuthenticate(t, tokenSvc, "Bearer anon")

	assert.False(t, called)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidToken))
}
