package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/crypto/argon2"

	"authn/config"
	"authn/internal/domain/service"
)

const argon2idPrefix = "argon2id"

// DefaultArgon2Params are the argon2id cost factors used when none are configured.
var DefaultArgon2Params = config.Argon2Config{
	Memory:      64 * 1024,
	Iterations:  3,
	Parallelism: 2,
	SaltLength:  16,
	KeyLength:   32,
}

// argon2Hasher implements PasswordHasher with argon2id and PHC-formatted digests:
// $argon2id$v=19$m=65536,t=3,p=2$<salt>$<hash>
type argon2Hasher struct {
	params config.Argon2Config
}

// NewArgon2Hasher returns an argon2id PasswordHasher. Zero-valued params take the defaults.
func NewArgon2Hasher(params *config.Argon2Config) service.PasswordHasher {
	p := DefaultArgon2Params
	if params != nil {
		if params.Memory > 0 {
			p.Memory = params.Memory
		}
		if params.Iterations > 0 {
			p.Iterations = params.Iterations
		}
		if params.Parallelism > 0 {
			p.Parallelism = params.Parallelism
		}
		if params.SaltLength > 0 {
			p.SaltLength = params.SaltLength
		}
		if params.KeyLength > 0 {
			p.KeyLength = params.KeyLength
		}
	}

	return &argon2Hasher{params: p}
}

func (h *argon2Hasher) Hash(password string) (string, error) {
	salt := make([]byte, h.params.SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", errors.Wrap(err, "crypto/rand")
	}

	key := argon2.IDKey([]byte(password), salt, h.params.Iterations, h.params.Memory, h.params.Parallelism, h.params.KeyLength)

	return fmt.Sprintf(
		"$%s$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2idPrefix,
		argon2.Version,
		h.params.Memory, h.params.Iterations, h.params.Parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

func (h *argon2Hasher) Check(password, encodedHash string) bool {
	p, salt, key, err := decodeArgon2Hash(encodedHash)
	if err != nil {
		return false
	}

	other := argon2.IDKey([]byte(password), salt, p.Iterations, p.Memory, p.Parallelism, p.KeyLength)

	return subtle.ConstantTimeCompare(key, other) == 1
}

func decodeArgon2Hash(encodedHash string) (*config.Argon2Config, []byte, []byte, error) {
	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != argon2idPrefix {
		return nil, nil, nil, errors.New("not an argon2id hash")
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return nil, nil, nil, errors.Wrap(err, "parse version")
	}
	if version != argon2.Version {
		return nil, nil, nil, errors.Errorf("incompatible argon2 version %d", version)
	}

	p := &config.Argon2Config{}
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.Memory, &p.Iterations, &p.Parallelism); err != nil {
		return nil, nil, nil, errors.Wrap(err, "parse params")
	}
	if p.Memory == 0 || p.Iterations == 0 || p.Parallelism == 0 {
		return nil, nil, nil, errors.New("zero argon2 params")
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return nil, nil, nil, errors.Wrap(err, "decode salt")
	}

	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return nil, nil, nil, errors.Wrap(err, "decode key")
	}
	if len(key) == 0 {
		return nil, nil, nil, errors.New("empty argon2 key")
	}
	p.KeyLength = uint32(len(key))
	p.SaltLength = uint32(len(salt))

	return p, salt, key, nil
}
