// Package memory provides a process-local user store. It is used for local runs and tests.
package memory

import (
	"context"
	"sync"
	"time"

	"authn/internal/domain/entity"
	domainerrors "authn/internal/domain/errors"
	"authn/internal/domain/repository"
)

type userRepository struct {
	mu        sync.RWMutex
	nextID    int64
	byID      map[int64]entity.User
	idByEmail map[string]int64
	now       func() time.Time
}

// NewUserRepository returns an empty in-memory UserRepository.
func NewUserRepository() repository.UserRepository {
	return &userRepository{
		byID:      make(map[int64]entity.User),
		idByEmail: make(map[string]int64),
		now:       time.Now,
	}
}

func (repo *userRepository) ExistsByEmail(_ context.Context, email string) (bool, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	_, ok := repo.idByEmail[email]

	return ok, nil
}

func (repo *userRepository) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	id, ok := repo.idByEmail[email]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	user := repo.byID[id]

	return &user, nil
}

func (repo *userRepository) FindByID(_ context.Context, id int64) (*entity.User, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	user, ok := repo.byID[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}

	return &user, nil
}

// Create checks and inserts under one write lock.
func (repo *userRepository) Create(_ context.Context, user *entity.User) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if _, taken := repo.idByEmail[user.Email]; taken {
		return domainerrors.NewAlreadyExists("User", "email", user.Email)
	}

	repo.nextID++
	now := repo.now().UTC()
	user.ID = repo.nextID
	user.CreatedAt = now
	user.UpdatedAt = now

	repo.byID[user.ID] = *user
	repo.idByEmail[user.Email] = user.ID

	return nil
}
