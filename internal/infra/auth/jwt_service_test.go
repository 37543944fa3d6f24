package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"authn/config"
	"authn/internal/domain/entity"
	domainerrors "authn/internal/domain/errors"
)

const testSecret = "test_access_secret_key_very_long_for_testing"

func newTestJWTConfig(secret string) *config.Config {
	return &config.Config{
		SecretKey: config.SecretKeyConfig{Access: secret},
		Auth: &config.AuthConfig{
			TokenTTL: 15 * time.Minute,
			Issuer:   "authn-test",
		},
	}
}

func newTestJWTService(t *testing.T) *jwtService {
	t.Helper()

	svc, err := NewJWTService(newTestJWTConfig(testSecret))
	require.NoError(t, err)

	js, ok := svc.(*jwtService)
	require.True(t, ok)

	return js
}

func TestJWTService_IssueAndValidate(t *testing.T) {
	svc := newTestJWTService(t)
	user := &entity.User{ID: 42, Email: "ana@x.com"}

	token, err := svc.Issue(user)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, 2, strings.Count(token, "."))

	claims, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "ana@x.com", claims.Email)
	assert.Equal(t, "42", claims.Subject)
	assert.Equal(t, "authn-test", claims.Issuer)
	assert.NotEmpty(t, claims.ID)
	require.NotNil(t, claims.ExpiresAt)
	require.NotNil(t, claims.IssuedAt)
	assert.Equal(t, 15*time.Minute, claims.ExpiresAt.Sub(claims.IssuedAt.Time))
}

func TestJWTService_TokensAreDistinctPerCall(t *testing.T) {
	svc := newTestJWTService(t)
	user := &entity.User{ID: 1, Email: "a@b.c"}

	first, err := svc.Issue(user)
	require.NoError(t, err)
	second, err := svc.Issue(user)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestJWTService_Expired(t *testing.T) {
	svc := newTestJWTService(t)
	issuedAt := time.Now().Add(-time.Hour)
	svc.now = func() time.Time { return issuedAt }

	token, err := svc.Issue(&entity.User{ID: 1})
	require.NoError(t, err)

	svc.now = time.Now
	claims, err := svc.Validate(token)
	require.Error(t, err)
	assert.Nil(t, claims)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidToken))
}

func TestJWTService_RejectsForeignSignatures(t *testing.T) {
	svc := newTestJWTService(t)

	other, err := NewJWTService(newTestJWTConfig("another_secret_key_that_is_long_enough!!"))
	require.NoError(t, err)
	foreign, err := other.Issue(&entity.User{ID: 1})
	require.NoError(t, err)

	_, err = svc.Validate(foreign)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidToken))
}

func TestJWTService_RejectsWrongIssuer(t *testing.T) {
	svc := newTestJWTService(t)

	cfg := newTestJWTConfig(testSecret)
	cfg.Auth.Issuer = "someone-else"
	other, err := NewJWTService(cfg)
	require.NoError(t, err)
	token, err := other.Issue(&entity.User{ID: 1})
	require.NoError(t, err)

	_, err = svc.Validate(token)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidToken))
}

func TestJWTService_RejectsUnexpectedAlgorithms(t *testing.T) {
	svc := newTestJWTService(t)

	claims := jwt.MapClaims{
		"uid": 1,
		"sub": "1",
		"iss": "authn-test",
		"exp": time.Now().Add(time.Minute).Unix(),
	}

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	_, err = svc.Validate(hs512)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidToken))

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = svc.Validate(none)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidToken))
}

func TestJWTService_RejectsGarbage(t *testing.T) {
	svc := newTestJWTService(t)

	for _, token := range []string{"", "clearly-not-a-jwt-token-format", "a.b.c"} {
		claims, err := svc.Validate(token)
		assert.Error(t, err)
		assert.Nil(t, claims)
	}
}

func TestJWTService_ShortSecret(t *testing.T) {
	svc, err := NewJWTService(newTestJWTConfig("short"))
	require.Error(t, err)
	assert.Nil(t, svc)
	assert.Contains(t, err.Error(), "jwt access secret must be at least")
}

func TestJWTService_DefaultTTL(t *testing.T) {
	svc, err := NewJWTService(&config.Config{SecretKey: config.SecretKeyConfig{Access: testSecret}})
	require.NoError(t, err)

	js, ok := svc.(*jwtService)
	require.True(t, ok)
	assert.Equal(t, time.Hour, js.ttl)
	assert.Empty(t, js.issuer)
}
