package impl

import (
	"context"
	"testing"
	"time"

	"pulse/config"
	"pulse/internal/domain/entity"
	domainerrors "pulse/internal/domain/errors"
	"pulse/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchService_Candidates_ExcludesSelfAndHistory(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	venue := env.addVenue(t, "Klein")
	me := env.addUser(t, "Ayse", entity.GenderFemale, "techno", "art")
	fresh := env.addUser(t, "Kerem", entity.GenderMale, "Techno", "football")
	seen := env.addUser(t, "Can", entity.GenderMale, "house")
	env.checkInBoth(t, venue.ID, me, fresh, seen)

	// Declining someone removes them from the deck for good.
	_, err := env.matches.Swipe(ctx, usecase.SwipeInput{
		UserID: me.ID, TargetID: seen.ID, VenueID: venue.ID, Like: false,
	})
	require.NoError(t, err)

	candidates, err := env.matches.Candidates(ctx, me.ID, venue.ID)
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, fresh.ID, candidates[0].User.UserID)
	assert.Equal(t, []string{"techno"}, candidates[0].CommonInterests)
}

func TestMatchService_Candidates_MockDistanceAnnotates(t *testing.T) {
	env := newTestEnv(t, func(cfg *config.Config) {
		cfg.Demo.MockDistance = true
	})
	ctx := context.Background()
	venue := env.addVenue(t, "Klein")
	me := env.addUser(t, "Ayse", entity.GenderFemale)
	other := env.addUser(t, "Kerem", entity.GenderMale)
	env.checkInBoth(t, venue.ID, me, other)

	candidates, err := env.matches.Candidates(ctx, me.ID, venue.ID)
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.GreaterOrEqual(t, candidates[0].DistanceKm, 5.0)
	assert.LessOrEqual(t, candidates[0].DistanceKm, 55.0)
}

func TestMatchService_Swipe_Self(t *testing.T) {
	env := newTestEnv(t)
	user := env.addUser(t, "Ayse", entity.GenderFemale)
	venue := env.addVenue(t, "Klein")

	_, err := env.matches.Swipe(context.Background(), usecase.SwipeInput{
		UserID: user.ID, TargetID: user.ID, VenueID: venue.ID, Like: true,
	})
	assert.ErrorIs(t, err, domainerrors.ErrSelfSwipe)
}

func TestMatchService_Swipe_FirstLikeStaysPending(t *testing.T) {
	env := newTestEnv(t)
	venue := env.addVenue(t, "Klein")
	a := env.addUser(t, "Ayse", entity.GenderFemale)
	b := env.addUser(t, "Kerem", entity.GenderMale)

	out, err := env.matches.Swipe(context.Background(), usecase.SwipeInput{
		UserID: a.ID, TargetID: b.ID, VenueID: venue.ID, Like: true,
	})
	require.NoError(t, err)
	assert.False(t, out.IsMatch)
	assert.Nil(t, out.ChatID)
	assert.Equal(t, entity.MatchPending, out.Match.Status)
}

func TestMatchService_Swipe_MutualLikeCompletesMatch(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	venue := env.addVenue(t, "Klein")
	a := env.addUser(t, "Ayse", entity.GenderFemale)
	b := env.addUser(t, "Kerem", entity.GenderMale)

	_, err := env.matches.Swipe(ctx, usecase.SwipeInput{UserID: a.ID, TargetID: b.ID, VenueID: venue.ID, Like: true})
	require.NoError(t, err)

	out, err := env.matches.Swipe(ctx, usecase.SwipeInput{UserID: b.ID, TargetID: a.ID, VenueID: venue.ID, Like: true})
	require.NoError(t, err)
	assert.True(t, out.IsMatch)
	require.NotNil(t, out.ChatID)

	// Both records flipped to matched.
	for _, userID := range []uuid.UUID{a.ID, b.ID} {
		records, err := env.matches.MatchesForUser(ctx, userID)
		require.NoError(t, err)
		require.Len(t, records, 2)
		for _, m := range records {
			assert.Equal(t, entity.MatchMatched, m.Status)
		}
	}

	// Exactly one chat between the pair.
	chatsA, err := env.chats.ChatsForUser(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, chatsA, 1)
	assert.Equal(t, *out.ChatID, chatsA[0].Chat.ID)

	// Both sides got a social notification.
	for _, userID := range []uuid.UUID{a.ID, b.ID} {
		notifications, err := env.notifications.ListForUser(ctx, userID)
		require.NoError(t, err)
		require.Len(t, notifications, 1)
		assert.Equal(t, entity.NotificationSocial, notifications[0].Type)
	}

	assert.Contains(t, env.publisher.kinds(), entity.ActivityMatchCompleted)
}

func TestMatchService_Swipe_DeclineNeverMatches(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	venue := env.addVenue(t, "Klein")
	a := env.addUser(t, "Ayse", entity.GenderFemale)
	b := env.addUser(t, "Kerem", entity.GenderMale)

	_, err := env.matches.Swipe(ctx, usecase.SwipeInput{UserID: a.ID, TargetID: b.ID, VenueID: venue.ID, Like: true})
	require.NoError(t, err)

	out, err := env.matches.Swipe(ctx, usecase.SwipeInput{UserID: b.ID, TargetID: a.ID, VenueID: venue.ID, Like: false})
	require.NoError(t, err)
	assert.False(t, out.IsMatch)
	assert.Nil(t, out.ChatID)
	assert.Equal(t, entity.MatchDeclined, out.Match.Status)

	chats, err := env.chats.ChatsForUser(ctx, a.ID)
	require.NoError(t, err)
	assert.Empty(t, chats)
}

func TestMatchService_Swipe_RepeatReturnsExistingOutcome(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	venue := env.addVenue(t, "Klein")
	a := env.addUser(t, "Ayse", entity.GenderFemale)
	b := env.addUser(t, "Kerem", entity.GenderMale)

	_, err := env.matches.Swipe(ctx, usecase.SwipeInput{UserID: a.ID, TargetID: b.ID, VenueID: venue.ID, Like: true})
	require.NoError(t, err)
	first, err := env.matches.Swipe(ctx, usecase.SwipeInput{UserID: b.ID, TargetID: a.ID, VenueID: venue.ID, Like: true})
	require.NoError(t, err)

	repeat, err := env.matches.Swipe(ctx, usecase.SwipeInput{UserID: b.ID, TargetID: a.ID, VenueID: venue.ID, Like: true})
	require.NoError(t, err)
	assert.True(t, repeat.IsMatch)
	assert.Equal(t, first.Match.ID, repeat.Match.ID)
	require.NotNil(t, repeat.ChatID)
	assert.Equal(t, *first.ChatID, *repeat.ChatID)

	// No duplicate chat or notification from the repeat.
	chats, err := env.chats.ChatsForUser(ctx, b.ID)
	require.NoError(t, err)
	assert.Len(t, chats, 1)
	notifications, err := env.notifications.ListForUser(ctx, b.ID)
	require.NoError(t, err)
	assert.Len(t, notifications, 1)
}

func TestMatchService_Swipe_ExpiredPairCanReswipeAndMatch(t *testing.T) {
	env := newTestEnv(t, func(cfg *config.Config) {
		cfg.Match.PendingTTL = time.Hour
	})
	ctx := context.Background()
	venue := env.addVenue(t, "Klein")
	a := env.addUser(t, "Ayse", entity.GenderFemale)
	b := env.addUser(t, "Kerem", entity.GenderMale)
	env.checkInBoth(t, venue.ID, a, b)

	stale := &entity.Match{
		ID:        uuid.New(),
		UserID:    a.ID,
		TargetID:  b.ID,
		VenueID:   venue.ID,
		Status:    entity.MatchPending,
		CreatedAt: time.Now().Add(-2 * time.Hour),
	}
	_, _, _, err := env.matchRepo.RecordSwipe(ctx, stale)
	require.NoError(t, err)

	swept, err := env.matches.ExpireStalePending(ctx, time.Now())
	require.NoError(t, err)
	require.Equal(t, 1, swept)

	// The expired like no longer hides the pair from each other.
	candidates, err := env.matches.Candidates(ctx, a.ID, venue.ID)
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, b.ID, candidates[0].User.UserID)
	candidates, err = env.matches.Candidates(ctx, b.ID, venue.ID)
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, a.ID, candidates[0].User.UserID)

	// Re-swiping restarts the pair instead of echoing the expired record.
	out, err := env.matches.Swipe(ctx, usecase.SwipeInput{
		UserID: a.ID, TargetID: b.ID, VenueID: venue.ID, Like: true,
	})
	require.NoError(t, err)
	assert.False(t, out.IsMatch)
	assert.Equal(t, entity.MatchPending, out.Match.Status)

	out, err = env.matches.Swipe(ctx, usecase.SwipeInput{
		UserID: b.ID, TargetID: a.ID, VenueID: venue.ID, Like: true,
	})
	require.NoError(t, err)
	assert.True(t, out.IsMatch)
	require.NotNil(t, out.ChatID)
}

func TestMatchService_ExpireStalePending_DisabledByDefault(t *testing.T) {
	env := newTestEnv(t)

	swept, err := env.matches.ExpireStalePending(context.Background(), time.Now())
	require.NoError(t, err)
	assert.Zero(t, swept)
}

func TestMatchService_ExpireStalePending_SweepsOldPending(t *testing.T) {
	env := newTestEnv(t, func(cfg *config.Config) {
		cfg.Match.PendingTTL = time.Hour
	})
	ctx := context.Background()

	stale := &entity.Match{
		ID:        uuid.New(),
		UserID:    uuid.New(),
		TargetID:  uuid.New(),
		VenueID:   uuid.New(),
		Status:    entity.MatchPending,
		CreatedAt: time.Now().Add(-2 * time.Hour),
	}
	_, _, _, err := env.matchRepo.RecordSwipe(ctx, stale)
	require.NoError(t, err)

	swept, err := env.matches.ExpireStalePending(ctx, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 1, swept)

	record, err := env.matchRepo.FindByID(ctx, stale.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.MatchExpired, record.Status)
}
