// Package persistence selects the user store backend named by the storage config.
package persistence

import (
	"context"
	"log/slog"

	"authn/config"
	"authn/internal/domain/lifecycle"
	"authn/internal/domain/repository"
	logs "authn/internal/infra/log"
	"authn/internal/infra/persistence/memory"
	"authn/internal/infra/persistence/postgres"
	"authn/internal/infra/persistence/sqlite"

	"github.com/pkg/errors"
	"github.com/pressly/goose/v3"
	"go.uber.org/fx"
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// NewUserRepository opens the configured backend and registers its shutdown hook.
func NewUserRepository(params Params) (repository.UserRepository, error) {
	driver := params.Config.Storage.Driver
	params.Logger.Info("Opening user store", slog.String("driver", driver))
	goose.SetLogger(logs.NewGooseLogger(params.Logger))

	switch driver {
	case config.StorageDriverMemory:
		return memory.NewUserRepository(), nil

	case config.StorageDriverSQLite:
		ctx, cancel := context.WithTimeout(context.Background(), lifecycle.DefaultTimeout)
		defer cancel()

		store, err := sqlite.Open(ctx, params.Config.Storage.SQLitePath, params.Config.Storage.Migrate)
		if err != nil {
			return nil, errors.Wrap(err, "failed to open SQLite user store")
		}
		params.Append(fx.Hook{
			OnStop: func(_ context.Context) error {
				return store.Close()
			},
		})

		return store, nil

	case config.StorageDriverPostgres:
		db, err := postgres.New(postgres.Params{
			Lifecycle: params.Lifecycle,
			Config:    params.Config,
			Logger:    params.Logger,
		})
		if err != nil {
			return nil, err
		}

		return postgres.NewUserRepository(db), nil

	default:
		return nil, errors.Errorf("unknown storage driver: %q", driver)
	}
}
