package sqlite

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"

	"authn/internal/domain/entity"
	domainerrors "authn/internal/domain/errors"
	"authn/internal/domain/repository"
)

const (
	existsByEmailQuery = `SELECT EXISTS (SELECT 1 FROM users WHERE email = ?)`
	selectUserColumns  = `SELECT id, name, email, password_hash, created_at, updated_at FROM users`
	insertUserQuery    = `INSERT INTO users (name, email, password_hash, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`
)

var _ repository.UserRepository = (*Store)(nil)

func (s *Store) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	if err := s.db.QueryRowContext(ctx, existsByEmailQuery, email).Scan(&exists); err != nil {
		return false, domainerrors.NewDatabaseExecuteError(err, "failed to check user email")
	}

	return exists, nil
}

func (s *Store) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return s.findOne(ctx, selectUserColumns+` WHERE email = ?`, email)
}

func (s *Store) FindByID(ctx context.Context, id int64) (*entity.User, error) {
	return s.findOne(ctx, selectUserColumns+` WHERE id = ?`, id)
}

// Create relies on the users_email_key unique index for atomic check-and-insert.
func (s *Store) Create(ctx context.Context, user *entity.User) error {
	now := s.now().UTC()

	res, err := s.db.ExecContext(ctx, insertUserQuery, user.Name, user.Email, user.PasswordHash, toMillis(now), toMillis(now))
	if err != nil {
		if isUniqueViolation(err) {
			return domainerrors.NewAlreadyExists("User", "email", user.Email)
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create user")
	}

	id, err := res.LastInsertId()
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to read user id")
	}

	user.ID = id
	user.CreatedAt = fromMillis(toMillis(now))
	user.UpdatedAt = user.CreatedAt

	return nil
}

func (s *Store) findOne(ctx context.Context, query string, arg any) (*entity.User, error) {
	var (
		user      entity.User
		createdAt int64
		updatedAt int64
	)

	err := s.db.QueryRowContext(ctx, query, arg).Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrUserNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find user")
	}

	user.CreatedAt = fromMillis(createdAt)
	user.UpdatedAt = fromMillis(updatedAt)

	return &user, nil
}
