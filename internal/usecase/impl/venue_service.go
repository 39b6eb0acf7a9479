package impl

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"pulse/config"
	deliverycontext "pulse/internal/delivery/context"
	"pulse/internal/domain/constants"
	"pulse/internal/domain/entity"
	domainerrors "pulse/internal/domain/errors"
	"pulse/internal/domain/repository"
	"pulse/internal/domain/service"
	"pulse/internal/usecase"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const recentActivityLimit = 20

// venueService implements the VenueUsecase interface.
type venueService struct {
	venueRepo        repository.VenueRepository
	userRepo         repository.UserRepository
	checkinRepo      repository.CheckinRepository
	eventRepo        repository.EventRepository
	menuRepo         repository.MenuRepository
	activityRepo     repository.ActivityRepository
	notificationRepo repository.NotificationRepository
	qrService        service.QRCodeService
	demoProvider     service.DemoProvider
	publisher        service.EventPublisher
	crowdCfg         *config.CrowdStatsConfig
	mockStats        bool
	logger           *slog.Logger
}

// VenueServiceParams holds dependencies for VenueService, injected by Fx.
type VenueServiceParams struct {
	fx.In

	VenueRepo        repository.VenueRepository
	UserRepo         repository.UserRepository
	CheckinRepo      repository.CheckinRepository
	EventRepo        repository.EventRepository
	MenuRepo         repository.MenuRepository
	ActivityRepo     repository.ActivityRepository
	NotificationRepo repository.NotificationRepository
	QRService        service.QRCodeService
	DemoProvider     service.DemoProvider
	Publisher        service.EventPublisher
	Config           *config.Config
	Logger           *slog.Logger
}

// NewVenueService is the constructor for venueService.
func NewVenueService(params VenueServiceParams) usecase.VenueUsecase {
	return &venueService{
		venueRepo:        params.VenueRepo,
		userRepo:         params.UserRepo,
		checkinRepo:      params.CheckinRepo,
		eventRepo:        params.EventRepo,
		menuRepo:         params.MenuRepo,
		activityRepo:     params.ActivityRepo,
		notificationRepo: params.NotificationRepo,
		qrService:        params.QRService,
		demoProvider:     params.DemoProvider,
		publisher:        params.Publisher,
		crowdCfg:         params.Config.CrowdStats,
		mockStats:        params.Config.Demo.MockStats,
		logger:           params.Logger,
	}
}

func (srv *venueService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListVenues returns active venues with live stats, optionally filtered by
// district/type and distance-sorted around the caller.
func (srv *venueService) ListVenues(ctx context.Context, opts usecase.ListVenuesOptions) ([]*usecase.VenueWithStats, error) {
	venues, err := srv.venueRepo.List(ctx, repository.VenueFilter{
		District:   opts.District,
		Type:       opts.Type,
		ActiveOnly: true,
	})
	if err != nil {
		return nil, errors.Wrap(err, "list venues")
	}

	now := time.Now()
	results := make([]*usecase.VenueWithStats, 0, len(venues))
	for _, venue := range venues {
		stats, err := srv.crowdStats(ctx, venue.ID)
		if err != nil {
			return nil, err
		}

		decorated := &usecase.VenueWithStats{
			Venue:  venue,
			Stats:  stats,
			IsOpen: venue.OpenAt(now),
		}
		if opts.Near != nil {
			from := orb.Point{opts.Near.Longitude, opts.Near.Latitude}
			to := orb.Point{venue.Longitude, venue.Latitude}
			decorated.DistanceKm = geo.DistanceHaversine(from, to) / 1000
		}
		results = append(results, decorated)
	}

	if opts.Near != nil {
		sort.SliceStable(results, func(i, j int) bool {
			return results[i].DistanceKm < results[j].DistanceKm
		})
	}

	return results, nil
}

// GetVenue returns one venue with live stats.
func (srv *venueService) GetVenue(ctx context.Context, id uuid.UUID) (*usecase.VenueWithStats, error) {
	venue, err := srv.findVenue(ctx, id)
	if err != nil {
		return nil, err
	}

	stats, err := srv.crowdStats(ctx, venue.ID)
	if err != nil {
		return nil, err
	}

	return &usecase.VenueWithStats{
		Venue:  venue,
		Stats:  stats,
		IsOpen: venue.OpenAt(time.Now()),
	}, nil
}

// Events returns the venue's events in date order.
func (srv *venueService) Events(ctx context.Context, venueID uuid.UUID) ([]*entity.Event, error) {
	if _, err := srv.findVenue(ctx, venueID); err != nil {
		return nil, err
	}

	return srv.eventRepo.ListByVenue(ctx, venueID)
}

// Menu returns the venue's menu items.
func (srv *venueService) Menu(ctx context.Context, venueID uuid.UUID) ([]*entity.MenuItem, error) {
	if _, err := srv.findVenue(ctx, venueID); err != nil {
		return nil, err
	}

	return srv.menuRepo.ListByVenue(ctx, venueID)
}

// Analytics builds the owner-facing daily dashboard from today's checkin
// records and the venue activity log.
func (srv *venueService) Analytics(ctx context.Context, venueID uuid.UUID) (*usecase.VenueAnalytics, error) {
	if _, err := srv.findVenue(ctx, venueID); err != nil {
		return nil, err
	}

	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	todays, err := srv.checkinRepo.ByVenueSince(ctx, venueID, startOfDay)
	if err != nil {
		return nil, errors.Wrap(err, "list today's checkins")
	}

	analytics := &usecase.VenueAnalytics{TodayVisits: len(todays)}

	uniques := make(map[uuid.UUID]struct{})
	visitsByHour := make(map[int]int)
	var staySum time.Duration
	var stayCount int
	var openIDs []uuid.UUID
	for _, c := range todays {
		uniques[c.UserID] = struct{}{}
		visitsByHour[c.CheckedInAt.Hour()]++
		if c.Open() {
			openIDs = append(openIDs, c.UserID)
		} else {
			staySum += c.CheckedOutAt.Sub(c.CheckedInAt)
			stayCount++
		}
	}
	analytics.UniqueVisitors = len(uniques)
	analytics.CurrentCount = len(openIDs)

	peakHour, peakVisits := -1, 0
	for hour, visits := range visitsByHour {
		if visits > peakVisits || (visits == peakVisits && hour < peakHour) {
			peakHour, peakVisits = hour, visits
		}
	}
	if peakHour >= 0 {
		analytics.PeakHour = fmt.Sprintf("%02d:00", peakHour)
	}
	if stayCount > 0 {
		analytics.AvgStayMinutes = int(staySum.Minutes()) / stayCount
	}

	openUsers, err := srv.userRepo.FindByIDs(ctx, openIDs)
	if err != nil {
		return nil, errors.Wrap(err, "resolve current guests")
	}
	analytics.MalePercent, analytics.FemalePercent = genderSplit(openUsers)

	recent, err := srv.activityRepo.RecentByVenue(ctx, venueID, recentActivityLimit)
	if err != nil {
		return nil, errors.Wrap(err, "list recent activity")
	}
	analytics.RecentActivity = recent

	return analytics, nil
}

// CheckinQR renders the venue's check-in QR code as a PNG.
func (srv *venueService) CheckinQR(ctx context.Context, venueID uuid.UUID) ([]byte, error) {
	if _, err := srv.findVenue(ctx, venueID); err != nil {
		return nil, err
	}

	png, err := srv.qrService.GenerateCheckinQR(venueID)
	if err != nil {
		return nil, errors.Wrap(err, "generate checkin QR")
	}

	return png, nil
}

// CreateVenue registers a new venue.
func (srv *venueService) CreateVenue(ctx context.Context, input usecase.CreateVenueInput) (*entity.Venue, error) {
	now := time.Now()
	venue := &entity.Venue{
		ID:          uuid.New(),
		Name:        input.Name,
		Address:     input.Address,
		District:    input.District,
		Latitude:    input.Latitude,
		Longitude:   input.Longitude,
		ImageURL:    input.ImageURL,
		Type:        input.Type,
		PriceTier:   input.PriceTier,
		MusicGenres: input.MusicGenres,
		Features:    input.Features,
		Hours:       input.Hours,
		IsActive:    true,
		OwnerID:     input.OwnerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := srv.venueRepo.Create(ctx, venue); err != nil {
		return nil, errors.Wrap(err, "create venue")
	}
	srv.log(ctx).Info("venue created", slog.String("venue_id", venue.ID.String()), slog.String("name", venue.Name))

	return venue, nil
}

// UpdateVenue applies a partial update.
func (srv *venueService) UpdateVenue(ctx context.Context, id uuid.UUID, input usecase.UpdateVenueInput) (*entity.Venue, error) {
	venue, err := srv.findVenue(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		venue.Name = *input.Name
	}
	if input.Address != nil {
		venue.Address = *input.Address
	}
	if input.District != nil {
		venue.District = *input.District
	}
	if input.ImageURL != nil {
		venue.ImageURL = *input.ImageURL
	}
	if input.Type != nil {
		venue.Type = *input.Type
	}
	if input.PriceTier != nil {
		venue.PriceTier = *input.PriceTier
	}
	if input.MusicGenres != nil {
		venue.MusicGenres = input.MusicGenres
	}
	if input.Features != nil {
		venue.Features = input.Features
	}
	if input.Hours != nil {
		venue.Hours = input.Hours
	}
	if input.IsActive != nil {
		venue.IsActive = *input.IsActive
	}
	venue.UpdatedAt = time.Now()

	if err := srv.venueRepo.Update(ctx, venue); err != nil {
		return nil, errors.Wrap(err, "update venue")
	}

	return venue, nil
}

// CreateEvent announces an event and notifies the venue's active guests.
func (srv *venueService) CreateEvent(ctx context.Context, input usecase.CreateEventInput) (*entity.Event, error) {
	venue, err := srv.findVenue(ctx, input.VenueID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	event := &entity.Event{
		ID:          uuid.New(),
		VenueID:     input.VenueID,
		Title:       input.Title,
		Description: input.Description,
		Date:        input.Date,
		StartTime:   input.StartTime,
		EndTime:     input.EndTime,
		ImageURL:    input.ImageURL,
		IsActive:    true,
		CreatedAt:   now,
	}

	if err := srv.eventRepo.Create(ctx, event); err != nil {
		return nil, errors.Wrap(err, "create event")
	}

	// Everyone currently at the venue hears about it first.
	active, err := srv.checkinRepo.ActiveByVenue(ctx, input.VenueID)
	if err != nil {
		return nil, errors.Wrap(err, "list active checkins")
	}
	for _, c := range active {
		notification := &entity.Notification{
			ID:        uuid.New(),
			UserID:    c.UserID,
			Title:     venue.Name + ": " + input.Title,
			Message:   input.Description,
			Type:      entity.NotificationEvent,
			CreatedAt: now,
		}
		if err := srv.notificationRepo.Create(ctx, notification); err != nil {
			srv.log(ctx).Warn("event notification not created",
				slog.String("user_id", c.UserID.String()),
				slog.Any("error", err),
			)
		}
	}

	domainEvent := &service.DomainEvent{
		RequestID:  deliverycontext.GetRequestIDFromContext(ctx),
		Kind:       entity.ActivityEventCreated,
		VenueID:    input.VenueID,
		ActorID:    venue.OwnerID,
		OccurredAt: now,
	}
	if err := srv.publisher.PublishDomainEvent(ctx, domainEvent); err != nil {
		srv.log(ctx).Warn("event activity not published", slog.Any("error", err))
	}

	return event, nil
}

// CreateMenuItem adds a menu entry.
func (srv *venueService) CreateMenuItem(ctx context.Context, input usecase.CreateMenuItemInput) (*entity.MenuItem, error) {
	if _, err := srv.findVenue(ctx, input.VenueID); err != nil {
		return nil, err
	}

	item := &entity.MenuItem{
		ID:          uuid.New(),
		VenueID:     input.VenueID,
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Category:    input.Category,
		Available:   true,
		CreatedAt:   time.Now(),
	}

	if err := srv.menuRepo.Create(ctx, item); err != nil {
		return nil, errors.Wrap(err, "create menu item")
	}

	return item, nil
}

// crowdStats computes the live crowd snapshot of a venue. In mock-stats demo
// mode the numbers come from the demo provider instead of real aggregation.
func (srv *venueService) crowdStats(ctx context.Context, venueID uuid.UUID) (usecase.CrowdStats, error) {
	if srv.mockStats {
		male, female := srv.demoProvider.GenderSplit()
		visitors := srv.demoProvider.VisitorCount()

		return usecase.CrowdStats{
			CurrentVisitors: visitors,
			Density:         srv.density(visitors),
			MalePercent:     male,
			FemalePercent:   female,
		}, nil
	}

	active, err := srv.checkinRepo.ActiveByVenue(ctx, venueID)
	if err != nil {
		return usecase.CrowdStats{}, errors.Wrap(err, "list active checkins")
	}

	ids := make([]uuid.UUID, 0, len(active))
	for _, c := range active {
		ids = append(ids, c.UserID)
	}
	users, err := srv.userRepo.FindByIDs(ctx, ids)
	if err != nil {
		return usecase.CrowdStats{}, errors.Wrap(err, "resolve guests")
	}

	male, female := genderSplit(users)

	return usecase.CrowdStats{
		CurrentVisitors: len(active),
		Density:         srv.density(len(active)),
		MalePercent:     male,
		FemalePercent:   female,
	}, nil
}

func (srv *venueService) density(visitors int) string {
	switch {
	case visitors > srv.crowdCfg.HighThreshold:
		return constants.CrowdHigh
	case visitors > srv.crowdCfg.MediumThreshold:
		return constants.CrowdMedium
	default:
		return constants.CrowdLow
	}
}

// genderSplit computes the binary gender ratio of a crowd. Guests who report
// neither male nor female are excluded from the denominator; an empty
// denominator reads as an even split.
func genderSplit(users []*entity.User) (malePct, femalePct int) {
	males, females := 0, 0
	for _, u := range users {
		switch u.Gender {
		case entity.GenderMale:
			males++
		case entity.GenderFemale:
			females++
		}
	}

	total := males + females
	if total == 0 {
		return 50, 50
	}

	malePct = males * 100 / total

	return malePct, 100 - malePct
}

func (srv *venueService) findVenue(ctx context.Context, id uuid.UUID) (*entity.Venue, error) {
	venue, err := srv.venueRepo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrVenueNotFound) {
		return nil, domainerrors.ErrVenueNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "find venue")
	}

	return venue, nil
}
