package memory

import (
	"context"
	"testing"
	"time"

	"pulse/internal/domain/entity"
	"pulse/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCheckin(userID, venueID uuid.UUID) *entity.Checkin {
	return &entity.Checkin{
		ID:          uuid.New(),
		UserID:      userID,
		VenueID:     venueID,
		CheckedInAt: time.Now(),
		Visible:     true,
	}
}

func TestCheckinRepository_Open_SecondOpenReusesFirst(t *testing.T) {
	repo := NewCheckinRepository()
	ctx := context.Background()
	userID, venueID := uuid.New(), uuid.New()

	first, reused, err := repo.Open(ctx, newCheckin(userID, venueID))
	require.NoError(t, err)
	assert.False(t, reused)

	second, reused, err := repo.Open(ctx, newCheckin(userID, venueID))
	require.NoError(t, err)
	assert.True(t, reused)
	assert.Equal(t, first.ID, second.ID)

	active, err := repo.ActiveByVenue(ctx, venueID)
	require.NoError(t, err)
	assert.Len(t, active, 1)
}

func TestCheckinRepository_Close_StampsCheckoutAndFreesPair(t *testing.T) {
	repo := NewCheckinRepository()
	ctx := context.Background()
	userID, venueID := uuid.New(), uuid.New()

	opened, _, err := repo.Open(ctx, newCheckin(userID, venueID))
	require.NoError(t, err)

	closedAt := time.Now()
	closed, err := repo.Close(ctx, userID, venueID, closedAt)
	require.NoError(t, err)
	require.NotNil(t, closed)
	assert.Equal(t, opened.ID, closed.ID)
	require.NotNil(t, closed.CheckedOutAt)
	assert.WithinDuration(t, closedAt, *closed.CheckedOutAt, time.Second)

	// The pair is free again: a new open creates a fresh record.
	reopened, reused, err := repo.Open(ctx, newCheckin(userID, venueID))
	require.NoError(t, err)
	assert.False(t, reused)
	assert.NotEqual(t, opened.ID, reopened.ID)
}

func TestCheckinRepository_Close_NoOpenCheckinIsNoOp(t *testing.T) {
	repo := NewCheckinRepository()

	closed, err := repo.Close(context.Background(), uuid.New(), uuid.New(), time.Now())
	require.NoError(t, err)
	assert.Nil(t, closed)
}

func TestCheckinRepository_FindOpen(t *testing.T) {
	repo := NewCheckinRepository()
	ctx := context.Background()
	userID, venueID := uuid.New(), uuid.New()

	_, err := repo.FindOpen(ctx, userID, venueID)
	assert.ErrorIs(t, err, repository.ErrCheckinNotFound)

	opened, _, err := repo.Open(ctx, newCheckin(userID, venueID))
	require.NoError(t, err)

	found, err := repo.FindOpen(ctx, userID, venueID)
	require.NoError(t, err)
	assert.Equal(t, opened.ID, found.ID)
}

func TestCheckinRepository_ActiveByVenue_ExcludesClosed(t *testing.T) {
	repo := NewCheckinRepository()
	ctx := context.Background()
	venueID := uuid.New()
	stayer, leaver := uuid.New(), uuid.New()

	_, _, err := repo.Open(ctx, newCheckin(stayer, venueID))
	require.NoError(t, err)
	_, _, err = repo.Open(ctx, newCheckin(leaver, venueID))
	require.NoError(t, err)

	_, err = repo.Close(ctx, leaver, venueID, time.Now())
	require.NoError(t, err)

	active, err := repo.ActiveByVenue(ctx, venueID)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, stayer, active[0].UserID)
}

func TestCheckinRepository_ByVenueSince_IncludesClosedRecords(t *testing.T) {
	repo := NewCheckinRepository()
	ctx := context.Background()
	venueID := uuid.New()

	old := newCheckin(uuid.New(), venueID)
	old.CheckedInAt = time.Now().Add(-48 * time.Hour)
	_, _, err := repo.Open(ctx, old)
	require.NoError(t, err)

	recent := newCheckin(uuid.New(), venueID)
	_, _, err = repo.Open(ctx, recent)
	require.NoError(t, err)
	_, err = repo.Close(ctx, recent.UserID, venueID, time.Now())
	require.NoError(t, err)

	since, err := repo.ByVenueSince(ctx, venueID, time.Now().Add(-24*time.Hour))
	require.NoError(t, err)
	require.Len(t, since, 1)
	assert.Equal(t, recent.UserID, since[0].UserID)
}
