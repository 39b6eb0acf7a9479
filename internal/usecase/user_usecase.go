// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"pulse/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// VerifyPhoneInput defines the data required for the phone-verification login.
type VerifyPhoneInput struct {
	Phone string
	Code  string
}

// CompleteProfileInput defines the data of the profile-setup step.
type CompleteProfileInput struct {
	UserID    uuid.UUID
	Name      string
	Age       int
	Gender    entity.Gender
	Interests []string
	AvatarURL string
}

// UpdateSubscriptionInput defines a tier change request.
type UpdateSubscriptionInput struct {
	UserID uuid.UUID
	Tier   entity.SubscriptionTier
}

// --- Output DTOs ---

// VerifyPhoneOutput returns the resolved account and its access token.
type VerifyPhoneOutput struct {
	User        *entity.User
	AccessToken string
	IsNewUser   bool
}

// UserUsecase defines the interface for user-related business operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type UserUsecase interface {
	// VerifyPhone checks the verification code and logs the phone number in,
	// creating a skeleton account on first contact.
	VerifyPhone(ctx context.Context, input VerifyPhoneInput) (*VerifyPhoneOutput, error)

	// CompleteProfile fills in the profile of a freshly verified account.
	CompleteProfile(ctx context.Context, input CompleteProfileInput) (*entity.User, error)

	// GetProfile returns the user's full profile.
	GetProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error)

	// UpdateSubscription switches the user's paid tier and stamps a new
	// expiry 30 days out.
	UpdateSubscription(ctx context.Context, input UpdateSubscriptionInput) (*entity.User, error)
}
