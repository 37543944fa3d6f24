package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"authn/config"
)

func TestNewPasswordHasher(t *testing.T) {
	tests := []struct {
		name    string
		auth    *config.AuthConfig
		want    any
		wantErr bool
	}{
		{name: "nil auth config", auth: nil, want: &bcryptHasher{}},
		{name: "empty selects bcrypt", auth: &config.AuthConfig{BcryptCost: 5}, want: &bcryptHasher{}},
		{name: "bcrypt", auth: &config.AuthConfig{Hasher: config.HasherBcrypt, BcryptCost: 5}, want: &bcryptHasher{}},
		{name: "argon2id", auth: &config.AuthConfig{Hasher: config.HasherArgon2id}, want: &argon2Hasher{}},
		{name: "unknown", auth: &config.AuthConfig{Hasher: "md5"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hasher, err := NewPasswordHasher(&config.Config{Auth: tt.auth})
			if tt.wantErr {
				require.Error(t, err)
				assert.Nil(t, hasher)

				return
			}

			require.NoError(t, err)
			assert.IsType(t, tt.want, hasher)
		})
	}
}
