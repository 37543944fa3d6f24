// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"authn/internal/domain/entity"
)

// ErrUserNotFound is a domain-specific error returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// UserRepository defines the operations the auth flow needs from user persistence.
// Implementations own the email uniqueness invariant: Create must fail with a
// domain AlreadyExists error when the email is taken, even under concurrent calls.
type UserRepository interface {
	// ExistsByEmail reports whether a user with the given email is stored. It never mutates state.
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// FindByEmail retrieves a single user by their email address.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByID retrieves a single user by their store-assigned ID.
	FindByID(ctx context.Context, id int64) (*entity.User, error)

	// Create persists a new user and fills in its ID and timestamps.
	Create(ctx context.Context, user *entity.User) error
}
