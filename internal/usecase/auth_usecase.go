// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new user.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Email    string
	Password string
}

// --- Output DTOs ---

// LoginOutput carries the signed bearer token issued on a successful login.
type LoginOutput struct {
	Token string
}

// AuthUsecase defines the registration and login operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type AuthUsecase interface {
	// Register stores a new user. It returns nothing on success; the caller must log in to obtain a token.
	Register(ctx context.Context, input *RegisterInput) error
	// Login verifies the credentials and issues a token.
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)
}
