// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"time"

	"pulse/config"
	deliverycontext "pulse/internal/delivery/context"
	"pulse/internal/domain/entity"
	domainerrors "pulse/internal/domain/errors"
	"pulse/internal/domain/repository"
	"pulse/internal/domain/service"
	"pulse/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const subscriptionPeriod = 30 * 24 * time.Hour

// userService implements the UserUsecase interface.
type userService struct {
	userRepo         repository.UserRepository
	notificationRepo repository.NotificationRepository
	tokenService     service.TokenService
	verificationCode string
	logger           *slog.Logger
}

// UserServiceParams holds dependencies for UserService, injected by Fx.
type UserServiceParams struct {
	fx.In

	UserRepo         repository.UserRepository
	NotificationRepo repository.NotificationRepository
	TokenService     service.TokenService
	Config           *config.Config
	Logger           *slog.Logger
}

// NewUserService is the constructor for userService. It receives all dependencies as interfaces.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		userRepo:         params.UserRepo,
		notificationRepo: params.NotificationRepo,
		tokenService:     params.TokenService,
		verificationCode: params.Config.Auth.VerificationCode,
		logger:           params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// VerifyPhone checks the verification code, resolving or creating the account
// for the phone number. There is no SMS provider behind this flow; the code
// is a fixed demo value from configuration.
func (srv *userService) VerifyPhone(ctx context.Context, input usecase.VerifyPhoneInput) (*usecase.VerifyPhoneOutput, error) {
	if input.Code != srv.verificationCode {
		return nil, domainerrors.ErrInvalidVerificationCode
	}

	isNew := false
	user, err := srv.userRepo.FindByPhone(ctx, input.Phone)
	switch {
	case errors.Is(err, repository.ErrUserNotFound):
		now := time.Now()
		user = &entity.User{
			ID:        uuid.New(),
			Phone:     input.Phone,
			Tier:      entity.TierFree,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := srv.userRepo.Create(ctx, user); err != nil {
			return nil, errors.Wrap(err, "create skeleton user")
		}
		isNew = true
		srv.log(ctx).Info("new account created from phone verification", slog.String("user_id", user.ID.String()))
	case err != nil:
		return nil, errors.Wrap(err, "find user by phone")
	}

	token, err := srv.tokenService.GenerateAccessToken(user.ID)
	if err != nil {
		return nil, errors.Wrap(err, "generate access token")
	}

	return &usecase.VerifyPhoneOutput{
		User:        user,
		AccessToken: token,
		IsNewUser:   isNew,
	}, nil
}

// CompleteProfile fills in the profile of a freshly verified account.
func (srv *userService) CompleteProfile(ctx context.Context, input usecase.CompleteProfileInput) (*entity.User, error) {
	user, err := srv.findUser(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	user.Name = input.Name
	user.Age = input.Age
	user.Gender = input.Gender
	user.Interests = input.Interests
	user.AvatarURL = input.AvatarURL
	user.ProfileComplete = true
	user.UpdatedAt = time.Now()

	if err := srv.userRepo.Update(ctx, user); err != nil {
		return nil, errors.Wrap(err, "update user profile")
	}

	return user, nil
}

// GetProfile returns the user's full profile.
func (srv *userService) GetProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	return srv.findUser(ctx, userID)
}

// UpdateSubscription switches the user's paid tier. Paid tiers get an expiry
// 30 days out; dropping back to free clears it.
func (srv *userService) UpdateSubscription(ctx context.Context, input usecase.UpdateSubscriptionInput) (*entity.User, error) {
	if !input.Tier.Valid() {
		return nil, domainerrors.ErrInvalidTier
	}

	user, err := srv.findUser(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user.Tier = input.Tier
	if input.Tier == entity.TierFree {
		user.TierExpiresAt = nil
	} else {
		expiry := now.Add(subscriptionPeriod)
		user.TierExpiresAt = &expiry
	}
	user.UpdatedAt = now

	if err := srv.userRepo.Update(ctx, user); err != nil {
		return nil, errors.Wrap(err, "update user tier")
	}

	notification := &entity.Notification{
		ID:        uuid.New(),
		UserID:    user.ID,
		Title:     "Subscription updated",
		Message:   "Your plan is now " + string(input.Tier) + ".",
		Type:      entity.NotificationSubscription,
		CreatedAt: now,
	}
	if err := srv.notificationRepo.Create(ctx, notification); err != nil {
		// The tier change already happened; a lost notification is not
		// worth failing the request over.
		srv.log(ctx).Warn("subscription notification not created", slog.Any("error", err))
	}

	return user, nil
}

func (srv *userService) findUser(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, domainerrors.ErrUserNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "find user")
	}

	return user, nil
}
