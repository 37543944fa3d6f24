package usecase

import (
	"context"

	"authn/internal/domain/entity"
)

// ProfileUsecase defines read access to the authenticated user's own record.
type ProfileUsecase interface {
	GetProfile(ctx context.Context, userID int64) (*entity.User, error)
}
