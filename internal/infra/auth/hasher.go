package auth

import (
	"github.com/pkg/errors"

	"authn/config"
	"authn/internal/domain/service"
)

// NewPasswordHasher builds the PasswordHasher selected by auth.hasher.
func NewPasswordHasher(cfg *config.Config) (service.PasswordHasher, error) {
	if cfg.Auth == nil {
		return NewBcryptHasher(), nil
	}

	switch cfg.Auth.Hasher {
	case "", config.HasherBcrypt:
		return NewBcryptHasherWithCost(cfg.Auth.BcryptCost), nil
	case config.HasherArgon2id:
		return NewArgon2Hasher(cfg.Auth.Argon2), nil
	default:
		return nil, errors.Errorf("unknown password hasher %q", cfg.Auth.Hasher)
	}
}
