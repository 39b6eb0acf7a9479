package memory

import (
	"context"
	"testing"
	"time"

	"pulse/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSwipe(userID, targetID, venueID uuid.UUID, status entity.MatchStatus) *entity.Match {
	return &entity.Match{
		ID:        uuid.New(),
		UserID:    userID,
		TargetID:  targetID,
		VenueID:   venueID,
		Status:    status,
		CreatedAt: time.Now(),
	}
}

func TestMatchRepository_RecordSwipe_FirstSwipeStaysPending(t *testing.T) {
	repo := NewMatchRepository()
	ctx := context.Background()

	stored, reciprocal, reused, err := repo.RecordSwipe(ctx, newSwipe(uuid.New(), uuid.New(), uuid.New(), entity.MatchPending))
	require.NoError(t, err)
	assert.False(t, reused)
	assert.Nil(t, reciprocal)
	assert.Equal(t, entity.MatchPending, stored.Status)
	assert.Nil(t, stored.MatchedAt)
}

func TestMatchRepository_RecordSwipe_MutualPendingCompletesBoth(t *testing.T) {
	repo := NewMatchRepository()
	ctx := context.Background()
	alice, bob, venue := uuid.New(), uuid.New(), uuid.New()

	_, _, _, err := repo.RecordSwipe(ctx, newSwipe(alice, bob, venue, entity.MatchPending))
	require.NoError(t, err)

	stored, reciprocal, reused, err := repo.RecordSwipe(ctx, newSwipe(bob, alice, venue, entity.MatchPending))
	require.NoError(t, err)
	assert.False(t, reused)
	require.NotNil(t, reciprocal)

	assert.Equal(t, entity.MatchMatched, stored.Status)
	assert.Equal(t, entity.MatchMatched, reciprocal.Status)
	require.NotNil(t, stored.MatchedAt)
	require.NotNil(t, reciprocal.MatchedAt)
	assert.Equal(t, *stored.MatchedAt, *reciprocal.MatchedAt)
	assert.Equal(t, alice, reciprocal.UserID)
}

func TestMatchRepository_RecordSwipe_RepeatSwipeReturnsExisting(t *testing.T) {
	repo := NewMatchRepository()
	ctx := context.Background()
	alice, bob, venue := uuid.New(), uuid.New(), uuid.New()

	first, _, _, err := repo.RecordSwipe(ctx, newSwipe(alice, bob, venue, entity.MatchPending))
	require.NoError(t, err)

	second, reciprocal, reused, err := repo.RecordSwipe(ctx, newSwipe(alice, bob, venue, entity.MatchPending))
	require.NoError(t, err)
	assert.True(t, reused)
	assert.Nil(t, reciprocal)
	assert.Equal(t, first.ID, second.ID)

	matches, err := repo.ListForUser(ctx, alice)
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}

func TestMatchRepository_RecordSwipe_ReswipeAfterExpiryRestartsPair(t *testing.T) {
	repo := NewMatchRepository()
	ctx := context.Background()
	alice, bob, venue := uuid.New(), uuid.New(), uuid.New()

	stale := newSwipe(alice, bob, venue, entity.MatchPending)
	stale.CreatedAt = time.Now().Add(-2 * time.Hour)
	_, _, _, err := repo.RecordSwipe(ctx, stale)
	require.NoError(t, err)

	swept, err := repo.ExpirePendingBefore(ctx, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	require.Equal(t, 1, swept)

	// The new like replaces the expired state instead of echoing it.
	second, reciprocal, reused, err := repo.RecordSwipe(ctx, newSwipe(alice, bob, venue, entity.MatchPending))
	require.NoError(t, err)
	assert.False(t, reused)
	assert.Nil(t, reciprocal)
	assert.Equal(t, entity.MatchPending, second.Status)
	assert.Equal(t, stale.ID, second.ID)

	// And the restarted pair can still complete.
	stored, reciprocal, _, err := repo.RecordSwipe(ctx, newSwipe(bob, alice, venue, entity.MatchPending))
	require.NoError(t, err)
	require.NotNil(t, reciprocal)
	assert.Equal(t, entity.MatchMatched, stored.Status)
	assert.Equal(t, entity.MatchMatched, reciprocal.Status)
}

func TestMatchRepository_RecordSwipe_DeclineDoesNotComplete(t *testing.T) {
	repo := NewMatchRepository()
	ctx := context.Background()
	alice, bob, venue := uuid.New(), uuid.New(), uuid.New()

	_, _, _, err := repo.RecordSwipe(ctx, newSwipe(alice, bob, venue, entity.MatchPending))
	require.NoError(t, err)

	stored, reciprocal, _, err := repo.RecordSwipe(ctx, newSwipe(bob, alice, venue, entity.MatchDeclined))
	require.NoError(t, err)
	assert.Nil(t, reciprocal)
	assert.Equal(t, entity.MatchDeclined, stored.Status)

	// Alice's record is untouched.
	between, err := repo.FindBetween(ctx, alice, bob)
	require.NoError(t, err)
	require.Len(t, between, 2)
	for _, m := range between {
		if m.UserID == alice {
			assert.Equal(t, entity.MatchPending, m.Status)
		}
	}
}

func TestMatchRepository_RecordSwipe_DifferentVenueIsSeparateRecord(t *testing.T) {
	repo := NewMatchRepository()
	ctx := context.Background()
	alice, bob := uuid.New(), uuid.New()

	_, _, reused, err := repo.RecordSwipe(ctx, newSwipe(alice, bob, uuid.New(), entity.MatchPending))
	require.NoError(t, err)
	assert.False(t, reused)

	_, _, reused, err = repo.RecordSwipe(ctx, newSwipe(alice, bob, uuid.New(), entity.MatchPending))
	require.NoError(t, err)
	assert.False(t, reused)

	between, err := repo.FindBetween(ctx, alice, bob)
	require.NoError(t, err)
	assert.Len(t, between, 2)
}

func TestMatchRepository_ExpirePendingBefore(t *testing.T) {
	repo := NewMatchRepository()
	ctx := context.Background()

	stale := newSwipe(uuid.New(), uuid.New(), uuid.New(), entity.MatchPending)
	stale.CreatedAt = time.Now().Add(-2 * time.Hour)
	_, _, _, err := repo.RecordSwipe(ctx, stale)
	require.NoError(t, err)

	fresh := newSwipe(uuid.New(), uuid.New(), uuid.New(), entity.MatchPending)
	_, _, _, err = repo.RecordSwipe(ctx, fresh)
	require.NoError(t, err)

	swept, err := repo.ExpirePendingBefore(ctx, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, swept)

	expired, err := repo.FindByID(ctx, stale.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.MatchExpired, expired.Status)

	kept, err := repo.FindByID(ctx, fresh.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.MatchPending, kept.Status)
}
