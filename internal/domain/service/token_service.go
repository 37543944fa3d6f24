package service

import (
	"github.com/golang-jwt/jwt/v5"

	"authn/internal/domain/entity"
)

// Claims defines the custom claims for the bearer tokens.
type Claims struct {
	UserID int64  `json:"uid"`
	Email  string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// TokenService issues and validates stateless bearer tokens.
type TokenService interface {
	// Issue creates a signed token carrying the user's identity, issue time and expiry.
	Issue(user *entity.User) (string, error)

	// Validate checks signature, algorithm, issuer and expiry and returns the claims.
	Validate(tokenString string) (*Claims, error)
}
