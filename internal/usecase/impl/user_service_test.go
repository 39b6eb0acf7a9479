package impl

import (
	"context"
	"testing"
	"time"

	"pulse/internal/domain/entity"
	domainerrors "pulse/internal/domain/errors"
	"pulse/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_VerifyPhone_WrongCode(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.users.VerifyPhone(context.Background(), usecase.VerifyPhoneInput{
		Phone: "+905551112233", Code: "9999",
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidVerificationCode)
	assert.Nil(t, out)
}

func TestUserService_VerifyPhone_CreatesSkeletonOnFirstContact(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.users.VerifyPhone(context.Background(), usecase.VerifyPhoneInput{
		Phone: "+905551112233", Code: "1234",
	})
	require.NoError(t, err)
	assert.True(t, out.IsNewUser)
	assert.NotEmpty(t, out.AccessToken)
	assert.Equal(t, "+905551112233", out.User.Phone)
	assert.Equal(t, entity.TierFree, out.User.Tier)
	assert.False(t, out.User.ProfileComplete)
}

func TestUserService_VerifyPhone_ResolvesExistingAccount(t *testing.T) {
	env := newTestEnv(t)

	first, err := env.users.VerifyPhone(context.Background(), usecase.VerifyPhoneInput{
		Phone: "+905551112233", Code: "1234",
	})
	require.NoError(t, err)

	second, err := env.users.VerifyPhone(context.Background(), usecase.VerifyPhoneInput{
		Phone: "+905551112233", Code: "1234",
	})
	require.NoError(t, err)
	assert.False(t, second.IsNewUser)
	assert.Equal(t, first.User.ID, second.User.ID)
}

func TestUserService_CompleteProfile(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	out, err := env.users.VerifyPhone(ctx, usecase.VerifyPhoneInput{Phone: "+905551112233", Code: "1234"})
	require.NoError(t, err)

	user, err := env.users.CompleteProfile(ctx, usecase.CompleteProfileInput{
		UserID:    out.User.ID,
		Name:      "Ayse",
		Age:       25,
		Gender:    entity.GenderFemale,
		Interests: []string{"techno", "art"},
	})
	require.NoError(t, err)
	assert.True(t, user.ProfileComplete)
	assert.Equal(t, "Ayse", user.Name)

	stored, err := env.users.GetProfile(ctx, out.User.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"techno", "art"}, stored.Interests)
}

func TestUserService_CompleteProfile_UnknownUser(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.users.CompleteProfile(context.Background(), usecase.CompleteProfileInput{
		UserID: uuid.New(), Name: "Ghost",
	})
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}

func TestUserService_UpdateSubscription_PaidTierGetsExpiryAndNotification(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.addUser(t, "Kerem", entity.GenderMale)

	updated, err := env.users.UpdateSubscription(ctx, usecase.UpdateSubscriptionInput{
		UserID: user.ID, Tier: entity.TierPremium,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.TierPremium, updated.Tier)
	require.NotNil(t, updated.TierExpiresAt)
	assert.WithinDuration(t, time.Now().Add(30*24*time.Hour), *updated.TierExpiresAt, time.Minute)

	notifications, err := env.notifications.ListForUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, entity.NotificationSubscription, notifications[0].Type)
}

func TestUserService_UpdateSubscription_BackToFreeClearsExpiry(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.addUser(t, "Kerem", entity.GenderMale)

	_, err := env.users.UpdateSubscription(ctx, usecase.UpdateSubscriptionInput{UserID: user.ID, Tier: entity.TierElite})
	require.NoError(t, err)

	updated, err := env.users.UpdateSubscription(ctx, usecase.UpdateSubscriptionInput{UserID: user.ID, Tier: entity.TierFree})
	require.NoError(t, err)
	assert.Nil(t, updated.TierExpiresAt)
}

func TestUserService_UpdateSubscription_InvalidTier(t *testing.T) {
	env := newTestEnv(t)
	user := env.addUser(t, "Kerem", entity.GenderMale)

	_, err := env.users.UpdateSubscription(context.Background(), usecase.UpdateSubscriptionInput{
		UserID: user.ID, Tier: entity.SubscriptionTier("platinum"),
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidTier)
}
