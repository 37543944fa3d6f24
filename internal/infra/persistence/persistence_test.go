package persistence

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"authn/config"
	"authn/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
)

func newParams(t *testing.T, storage config.StorageConfig) (Params, *fxtest.Lifecycle) {
	t.Helper()

	lc := fxtest.NewLifecycle(t)
	cfg := &config.Config{Storage: storage}

	return Params{
		Lifecycle: lc,
		Config:    cfg,
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}, lc
}

func TestNewUserRepository_Memory(t *testing.T) {
	params, _ := newParams(t, config.StorageConfig{Driver: config.StorageDriverMemory})

	repo, err := NewUserRepository(params)
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), &entity.User{Name: "Ana", Email: "ana@x.com", PasswordHash: "h"}))
}

func TestNewUserRepository_SQLite(t *testing.T) {
	params, lc := newParams(t, config.StorageConfig{
		Driver:     config.StorageDriverSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "authn.db"),
		Migrate:    true,
	})

	repo, err := NewUserRepository(params)
	require.NoError(t, err)

	lc.RequireStart()
	exists, err := repo.ExistsByEmail(context.Background(), "ana@x.com")
	require.NoError(t, err)
	assert.False(t, exists)
	lc.RequireStop()
}

func TestNewUserRepository_PostgresWithoutConfig(t *testing.T) {
	params, _ := newParams(t, config.StorageConfig{Driver: config.StorageDriverPostgres})

	_, err := NewUserRepository(params)
	require.Error(t, err)
}

func TestNewUserRepository_UnknownDriver(t *testing.T) {
	params, _ := newParams(t, config.StorageConfig{Driver: "redis"})

	_, err := NewUserRepository(params)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown storage driver: "redis"`)
}
