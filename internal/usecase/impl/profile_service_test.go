package impl

import (
	"context"
	"testing"

	"authn/internal/domain/entity"
	domainerrors "authn/internal/domain/errors"
	"authn/internal/domain/repository"
	mockRepo "authn/internal/mocks/repository"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileService_GetProfile(t *testing.T) {
	userRepo := mockRepo.NewMockUserRepository(t)
	svc := NewProfileService(ProfileServiceParams{UserRepo: userRepo, Logger: newDiscardLogger()})
	ctx := context.Background()
	user := &entity.User{ID: 3, Name: "Ana", Email: "ana@x.com"}

	userRepo.EXPECT().FindByID(ctx, int64(3)).Return(user, nil)

	got, err := svc.GetProfile(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, user, got)
}

func TestProfileService_GetProfile_NotFound(t *testing.T) {
	userRepo := mockRepo.NewMockUserRepository(t)
	svc := NewProfileService(ProfileServiceParams{UserRepo: userRepo, Logger: newDiscardLogger()})
	ctx := context.Background()

	userRepo.EXPECT().FindByID(ctx, int64(99)).Return(nil, repository.ErrUserNotFound)

	_, err := svc.GetProfile(ctx, 99)

	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, domainerrors.KindNotFound, appErr.Kind())
	assert.Equal(t, "User not found with id: 99", appErr.Message())
}

func TestProfileService_GetProfile_StoreFailure(t *testing.T) {
	userRepo := mockRepo.NewMockUserRepository(t)
	svc := NewProfileService(ProfileServiceParams{UserRepo: userRepo, Logger: newDiscardLogger()})
	ctx := context.Background()

	userRepo.EXPECT().FindByID(ctx, int64(1)).Return(nil, errors.New("io"))

	_, err := svc.GetProfile(ctx, 1)
	require.Error(t, err)
	assert.False(t, errors.Is(err, domainerrors.ErrNotFound))
}
