// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	deliverycontext "authn/internal/delivery/context"
	"authn/internal/domain/entity"
	domainerrors "authn/internal/domain/errors"
	"authn/internal/domain/repository"
	"authn/internal/domain/service"
	"authn/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// dummyPassword is hashed once and checked against on unknown emails so the
// miss path costs roughly the same as a wrong password.
const dummyPassword = "authn-timing-equalizer"

// authService implements the AuthUsecase interface.
type authService struct {
	userRepo     repository.UserRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	logger       *slog.Logger

	dummyOnce   sync.Once
	dummyDigest string
}

// AuthServiceParams holds dependencies for AuthService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	UserRepo     repository.UserRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Logger       *slog.Logger
}

// NewAuthService is the constructor for authService. It receives all dependencies as interfaces.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return &authService{
		userRepo:     params.UserRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register validates the input, enforces email uniqueness and stores the hashed credentials.
func (srv *authService) Register(ctx context.Context, input *usecase.RegisterInput) error {
	if err := validateRegisterInput(input); err != nil {
		return err
	}

	srv.log(ctx).Info("Starting registration", slog.String("email", input.Email))

	exists, err := srv.userRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return errors.Wrap(err, "failed to check email")
	}
	if exists {
		srv.log(ctx).Info("Registration rejected, email taken", slog.String("email", input.Email))

		return domainerrors.NewAlreadyExists("User", "email", input.Email)
	}

	hash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		var appErr domainerrors.AppError
		if errors.As(err, &appErr) && appErr.Kind() == domainerrors.KindValidation {
			return errors.WithStack(err)
		}

		return domainerrors.ErrPasswordHashFailed.WrapMessage(err.Error())
	}

	user := &entity.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
	}

	// A concurrent registration may win between ExistsByEmail and Create; the store reports it as AlreadyExists.
	if err := srv.userRepo.Create(ctx, user); err != nil {
		return errors.Wrap(err, "failed to create user")
	}

	srv.log(ctx).Info("User registered", slog.Int64("userID", user.ID))

	return nil
}

// Login verifies the credentials and issues a bearer token.
// Unknown email and wrong password produce the same InvalidCredentials error.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	if err := validateLoginInput(input); err != nil {
		return nil, err
	}

	user, err := srv.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.equalizeTiming(input.Password)
			srv.log(ctx).Info("Login rejected", slog.String("reason", "unknown email"))

			return nil, domainerrors.ErrInvalidCredentials.WrapMessage("user not found")
		}

		return nil, errors.Wrap(err, "failed to find user")
	}

	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		srv.log(ctx).Info("Login rejected", slog.String("reason", "password mismatch"), slog.Int64("userID", user.ID))

		return nil, domainerrors.ErrInvalidCredentials.WrapMessage("password mismatch")
	}

	token, err := srv.tokenService.Issue(user)
	if err != nil {
		return nil, domainerrors.ErrTokenIssueFailed.WrapMessage(err.Error())
	}

	srv.log(ctx).Info("User logged in", slog.Int64("userID", user.ID))

	return &usecase.LoginOutput{Token: token}, nil
}

func (srv *authService) equalizeTiming(password string) {
	srv.dummyOnce.Do(func() {
		digest, err := srv.hasher.Hash(dummyPassword)
		if err != nil {
			srv.logger.Warn("Failed to prepare dummy digest", slog.Any("error", err))

			return
		}
		srv.dummyDigest = digest
	})

	if srv.dummyDigest != "" {
		srv.hasher.Check(password, srv.dummyDigest)
	}
}

func validateRegisterInput(input *usecase.RegisterInput) error {
	if input == nil {
		return domainerrors.NewValidationError("registerInput", nil)
	}

	var fields []domainerrors.FieldError
	fields = appendIfBlank(fields, "registerInput", "name", input.Name)
	fields = appendIfBlank(fields, "registerInput", "email", input.Email)
	fields = appendIfBlank(fields, "registerInput", "password", input.Password)
	if len(fields) > 0 {
		return domainerrors.NewValidationError("registerInput", fields)
	}

	return nil
}

func validateLoginInput(input *usecase.LoginInput) error {
	if input == nil {
		return domainerrors.NewValidationError("loginInput", nil)
	}

	var fields []domainerrors.FieldError
	fields = appendIfBlank(fields, "loginInput", "email", input.Email)
	fields = appendIfBlank(fields, "loginInput", "password", input.Password)
	if len(fields) > 0 {
		return domainerrors.NewValidationError("loginInput", fields)
	}

	return nil
}

func appendIfBlank(fields []domainerrors.FieldError, object, field, value string) []domainerrors.FieldError {
	if strings.TrimSpace(value) != "" {
		return fields
	}

	var rejected any = value
	if field == "password" {
		rejected = nil
	}

	return append(fields, domainerrors.FieldError{
		Object:        object,
		Field:         field,
		RejectedValue: rejected,
		Message:       "must not be blank",
	})
}
