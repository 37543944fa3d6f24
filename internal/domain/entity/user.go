// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import "time"

// User is an account that can authenticate against the service.
// PasswordHash never holds the plaintext password.
type User struct {
	ID           int64     // Assigned by the user store on creation.
	Name         string    // Display name.
	Email        string    // Login identifier, unique across the store.
	PasswordHash string    // Digest produced by the configured PasswordHasher.
	CreatedAt    time.Time // Timestamp of when this account was created.
	UpdatedAt    time.Time // Timestamp of the last modification to this account.
}
