package impl

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	domainerrors "authn/internal/domain/errors"
	"authn/internal/infra/auth"
	"authn/internal/infra/persistence/memory"
	mockSvc "authn/internal/mocks/service"
	"authn/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

func TestAuthService_ConcurrentRegistrationSameEmail(t *testing.T) {
	svc := NewAuthService(AuthServiceParams{
		UserRepo:     memory.NewUserRepository(),
		Hasher:       auth.NewBcryptHasherWithCost(bcrypt.MinCost),
		TokenService: mockSvc.NewMockTokenService(t),
		Logger:       newDiscardLogger(),
	})

	const workers = 20
	var (
		wg        sync.WaitGroup
		successes atomic.Int32
		conflicts atomic.Int32
		others    atomic.Int32
	)

	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()

			err := svc.Register(context.Background(), &usecase.RegisterInput{
				Name:     fmt.Sprintf("racer-%d", i),
				Email:    "race@x.com",
				Password: "secret",
			})
			switch {
			case err == nil:
				successes.Add(1)
			case errors.Is(err, domainerrors.ErrAlreadyExists):
				conflicts.Add(1)
			default:
				others.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), successes.Load())
	assert.Equal(t, int32(workers-1), conflicts.Load())
	assert.Zero(t, others.Load())
}
