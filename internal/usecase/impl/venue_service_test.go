package impl

import (
	"context"
	"testing"
	"time"

	"pulse/config"
	"pulse/internal/domain/constants"
	"pulse/internal/domain/entity"
	domainerrors "pulse/internal/domain/errors"
	"pulse/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVenueService_ListVenues_FiltersAndActiveOnly(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	kadikoy := env.addVenue(t, "Arkaoda")
	kadikoy.District = "Kadikoy"
	require.NoError(t, env.venueRepo.Update(ctx, kadikoy))

	env.addVenue(t, "Klein")

	hidden := env.addVenue(t, "Gone")
	hidden.IsActive = false
	require.NoError(t, env.venueRepo.Update(ctx, hidden))

	all, err := env.venues.ListVenues(ctx, usecase.ListVenuesOptions{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	filtered, err := env.venues.ListVenues(ctx, usecase.ListVenuesOptions{District: "kadikoy"})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "Arkaoda", filtered[0].Name)
}

func TestVenueService_ListVenues_NearSortsByDistance(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	far := env.addVenue(t, "Far")
	far.Latitude, far.Longitude = 41.10, 29.10
	require.NoError(t, env.venueRepo.Update(ctx, far))

	near := env.addVenue(t, "Near")
	near.Latitude, near.Longitude = 41.01, 28.98
	require.NoError(t, env.venueRepo.Update(ctx, near))

	results, err := env.venues.ListVenues(ctx, usecase.ListVenuesOptions{
		Near: &usecase.GeoPoint{Latitude: 41.0, Longitude: 28.97},
	})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "Near", results[0].Name)
	assert.Less(t, results[0].DistanceKm, results[1].DistanceKm)
	assert.Greater(t, results[0].DistanceKm, 0.0)
}

func TestVenueService_GetVenue_RealCrowdStats(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	venue := env.addVenue(t, "Klein")

	env.checkInBoth(t, venue.ID,
		env.addUser(t, "Kerem", entity.GenderMale),
		env.addUser(t, "Can", entity.GenderMale),
		env.addUser(t, "Ayse", entity.GenderFemale),
	)

	got, err := env.venues.GetVenue(ctx, venue.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Stats.CurrentVisitors)
	assert.Equal(t, constants.CrowdLow, got.Stats.Density)
	assert.Equal(t, 66, got.Stats.MalePercent)
	assert.Equal(t, 34, got.Stats.FemalePercent)
}

func TestVenueService_GetVenue_EmptyVenueReportsEvenSplit(t *testing.T) {
	env := newTestEnv(t)

	venue := env.addVenue(t, "Klein")
	got, err := env.venues.GetVenue(context.Background(), venue.ID)
	require.NoError(t, err)
	assert.Zero(t, got.Stats.CurrentVisitors)
	assert.Equal(t, 50, got.Stats.MalePercent)
	assert.Equal(t, 50, got.Stats.FemalePercent)
}

func TestVenueService_GetVenue_Unknown(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.venues.GetVenue(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domainerrors.ErrVenueNotFound)
}

func TestVenueService_GetVenue_MockStats(t *testing.T) {
	env := newTestEnv(t, func(cfg *config.Config) {
		cfg.Demo.MockStats = true
	})

	venue := env.addVenue(t, "Klein")
	got, err := env.venues.GetVenue(context.Background(), venue.ID)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, got.Stats.CurrentVisitors, 50)
	assert.LessOrEqual(t, got.Stats.CurrentVisitors, 350)
	assert.Equal(t, 100, got.Stats.MalePercent+got.Stats.FemalePercent)
}

func TestVenueService_Density_Thresholds(t *testing.T) {
	env := newTestEnv(t)
	srv := env.venues.(*venueService)

	assert.Equal(t, constants.CrowdLow, srv.density(50))
	assert.Equal(t, constants.CrowdMedium, srv.density(51))
	assert.Equal(t, constants.CrowdMedium, srv.density(150))
	assert.Equal(t, constants.CrowdHigh, srv.density(151))
}

func TestVenueService_Analytics(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	venue := env.addVenue(t, "Klein")
	stayer := env.addUser(t, "Ayse", entity.GenderFemale)
	leaver := env.addUser(t, "Kerem", entity.GenderMale)

	// One finished one-hour visit and one still running.
	opened, _, err := env.checkinRepo.Open(ctx, &entity.Checkin{
		ID: uuid.New(), UserID: leaver.ID, VenueID: venue.ID,
		CheckedInAt: time.Now().Add(-time.Hour), Visible: true,
	})
	require.NoError(t, err)
	_, err = env.checkinRepo.Close(ctx, opened.UserID, venue.ID, time.Now())
	require.NoError(t, err)
	env.checkInBoth(t, venue.ID, stayer)

	require.NoError(t, env.activityRepo.Append(ctx, &entity.VenueActivity{
		ID: uuid.New(), VenueID: venue.ID, Kind: entity.ActivityCheckinCreated,
		ActorID: stayer.ID, OccurredAt: time.Now(),
	}))

	analytics, err := env.venues.Analytics(ctx, venue.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, analytics.TodayVisits)
	assert.Equal(t, 2, analytics.UniqueVisitors)
	assert.Equal(t, 1, analytics.CurrentCount)
	assert.NotEmpty(t, analytics.PeakHour)
	assert.InDelta(t, 60, analytics.AvgStayMinutes, 2)
	require.Len(t, analytics.RecentActivity, 1)
	assert.Equal(t, entity.ActivityCheckinCreated, analytics.RecentActivity[0].Kind)
}

func TestVenueService_CheckinQR_ReturnsPNG(t *testing.T) {
	env := newTestEnv(t)
	venue := env.addVenue(t, "Klein")

	png, err := env.venues.CheckinQR(context.Background(), venue.ID)
	require.NoError(t, err)
	require.NotEmpty(t, png)
	assert.Equal(t, []byte{0x89, 0x50, 0x4E, 0x47}, png[:4])
}

func TestVenueService_CreateAndUpdateVenue(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	created, err := env.venues.CreateVenue(ctx, usecase.CreateVenueInput{
		Name: "Babylon", District: "Sisli", Type: "live music", PriceTier: 2,
	})
	require.NoError(t, err)
	assert.True(t, created.IsActive)

	newName := "Babylon Bomonti"
	inactive := false
	updated, err := env.venues.UpdateVenue(ctx, created.ID, usecase.UpdateVenueInput{
		Name: &newName, IsActive: &inactive,
	})
	require.NoError(t, err)
	assert.Equal(t, "Babylon Bomonti", updated.Name)
	assert.False(t, updated.IsActive)
	// Untouched fields survive.
	assert.Equal(t, "Sisli", updated.District)
}

func TestVenueService_CreateEvent_NotifiesActiveGuests(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	venue := env.addVenue(t, "Klein")
	guest := env.addUser(t, "Ayse", entity.GenderFemale)
	absent := env.addUser(t, "Kerem", entity.GenderMale)
	env.checkInBoth(t, venue.ID, guest)

	event, err := env.venues.CreateEvent(ctx, usecase.CreateEventInput{
		VenueID: venue.ID, Title: "Detroit Night", Description: "Guest DJ", Date: time.Now().AddDate(0, 0, 1),
	})
	require.NoError(t, err)
	assert.True(t, event.IsActive)

	guestNotifications, err := env.notifications.ListForUser(ctx, guest.ID)
	require.NoError(t, err)
	require.Len(t, guestNotifications, 1)
	assert.Equal(t, entity.NotificationEvent, guestNotifications[0].Type)

	absentNotifications, err := env.notifications.ListForUser(ctx, absent.ID)
	require.NoError(t, err)
	assert.Empty(t, absentNotifications)

	assert.Contains(t, env.publisher.kinds(), entity.ActivityEventCreated)

	events, err := env.venues.Events(ctx, venue.ID)
	require.NoError(t, err)
	assert.Len(t, events, 1)
}

func TestVenueService_CreateMenuItem(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	venue := env.addVenue(t, "Klein")

	item, err := env.venues.CreateMenuItem(ctx, usecase.CreateMenuItemInput{
		VenueID: venue.ID, Name: "Gin Basil Smash", Category: "cocktails", Price: 520,
	})
	require.NoError(t, err)
	assert.True(t, item.Available)

	menu, err := env.venues.Menu(ctx, venue.ID)
	require.NoError(t, err)
	require.Len(t, menu, 1)
	assert.Equal(t, "Gin Basil Smash", menu[0].Name)
}
