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

// checkinService implements the CheckinUsecase interface.
type checkinService struct {
	userRepo       repository.UserRepository
	venueRepo      repository.VenueRepository
	checkinRepo    repository.CheckinRepository
	qrService      service.QRCodeService
	demoProvider   service.DemoProvider
	publisher      service.EventPublisher
	fillerPresence bool
	logger         *slog.Logger
}

// CheckinServiceParams holds dependencies for CheckinService, injected by Fx.
type CheckinServiceParams struct {
	fx.In

	UserRepo     repository.UserRepository
	VenueRepo    repository.VenueRepository
	CheckinRepo  repository.CheckinRepository
	QRService    service.QRCodeService
	DemoProvider service.DemoProvider
	Publisher    service.EventPublisher
	Config       *config.Config
	Logger       *slog.Logger
}

// NewCheckinService is the constructor for checkinService.
func NewCheckinService(params CheckinServiceParams) usecase.CheckinUsecase {
	return &checkinService{
		userRepo:       params.UserRepo,
		venueRepo:      params.VenueRepo,
		checkinRepo:    params.CheckinRepo,
		qrService:      params.QRService,
		demoProvider:   params.DemoProvider,
		publisher:      params.Publisher,
		fillerPresence: params.Config.Demo.FillerPresence,
		logger:         params.Logger,
	}
}

func (srv *checkinService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CheckIn records the user's presence at a venue. A second check-in without a
// checkout in between returns the original open record unchanged.
func (srv *checkinService) CheckIn(ctx context.Context, input usecase.CheckInInput) (*entity.Checkin, error) {
	if _, err := srv.userRepo.FindByID(ctx, input.UserID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "find user")
	}

	venue, err := srv.venueRepo.FindByID(ctx, input.VenueID)
	if err != nil {
		if errors.Is(err, repository.ErrVenueNotFound) {
			return nil, domainerrors.ErrVenueNotFound
		}

		return nil, errors.Wrap(err, "find venue")
	}
	if !venue.IsActive {
		return nil, domainerrors.ErrVenueInactive
	}

	checkin := &entity.Checkin{
		ID:          uuid.New(),
		UserID:      input.UserID,
		VenueID:     input.VenueID,
		CheckedInAt: time.Now(),
		Visible:     input.Visible,
	}

	stored, reused, err := srv.checkinRepo.Open(ctx, checkin)
	if err != nil {
		return nil, errors.Wrap(err, "open checkin")
	}

	if !reused {
		srv.publish(ctx, entity.ActivityCheckinCreated, input.VenueID, input.UserID)
	}

	return stored, nil
}

// CheckInByQR resolves the venue from a scanned QR payload and checks in.
func (srv *checkinService) CheckInByQR(ctx context.Context, input usecase.CheckInByQRInput) (*entity.Checkin, error) {
	venueID, err := srv.qrService.ParseCheckinQR(input.QRData)
	if err != nil {
		return nil, domainerrors.ErrInvalidQRCode.WrapMessage(err.Error())
	}

	return srv.CheckIn(ctx, usecase.CheckInInput{
		UserID:  input.UserID,
		VenueID: venueID,
		Visible: input.Visible,
	})
}

// CheckOut closes the user's open checkin. Nothing open means nothing to do.
func (srv *checkinService) CheckOut(ctx context.Context, userID, venueID uuid.UUID) error {
	closed, err := srv.checkinRepo.Close(ctx, userID, venueID, time.Now())
	if err != nil {
		return errors.Wrap(err, "close checkin")
	}

	if closed != nil {
		srv.publish(ctx, entity.ActivityCheckinClosed, venueID, userID)
	}

	return nil
}

// PeopleIn returns the venue's visible active guests joined to their
// profiles. Demo filler guests are appended when the flag is on.
func (srv *checkinService) PeopleIn(ctx context.Context, venueID uuid.UUID) ([]*usecase.UserInVenue, error) {
	if _, err := srv.venueRepo.FindByID(ctx, venueID); err != nil {
		if errors.Is(err, repository.ErrVenueNotFound) {
			return nil, domainerrors.ErrVenueNotFound
		}

		return nil, errors.Wrap(err, "find venue")
	}

	active, err := srv.checkinRepo.ActiveByVenue(ctx, venueID)
	if err != nil {
		return nil, errors.Wrap(err, "list active checkins")
	}

	checkedInAt := make(map[uuid.UUID]time.Time, len(active))
	ids := make([]uuid.UUID, 0, len(active))
	for _, c := range active {
		if !c.Visible {
			continue
		}
		ids = append(ids, c.UserID)
		checkedInAt[c.UserID] = c.CheckedInAt
	}

	users, err := srv.userRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, errors.Wrap(err, "resolve checked-in users")
	}

	people := make([]*usecase.UserInVenue, 0, len(users))
	for _, u := range users {
		people = append(people, &usecase.UserInVenue{
			UserID:      u.ID,
			Name:        u.Name,
			Age:         u.Age,
			Gender:      string(u.Gender),
			Interests:   u.Interests,
			AvatarURL:   u.AvatarURL,
			CheckedInAt: checkedInAt[u.ID],
		})
	}

	if srv.fillerPresence {
		for _, g := range srv.demoProvider.FillerGuests(venueID) {
			people = append(people, &usecase.UserInVenue{
				UserID:      g.UserID,
				Name:        g.Name,
				Age:         g.Age,
				Gender:      g.Gender,
				Interests:   g.Interests,
				AvatarURL:   g.AvatarURL,
				Profession:  g.Profession,
				University:  g.University,
				CheckedInAt: time.Now(),
			})
		}
	}

	return people, nil
}

// publish emits a venue activity event. Publishing is best-effort; a failure
// is logged and the user-facing operation still succeeds.
func (srv *checkinService) publish(ctx context.Context, kind string, venueID, actorID uuid.UUID) {
	event := &service.DomainEvent{
		RequestID:  deliverycontext.GetRequestIDFromContext(ctx),
		Kind:       kind,
		VenueID:    venueID,
		ActorID:    actorID,
		OccurredAt: time.Now(),
	}
	if err := srv.publisher.PublishDomainEvent(ctx, event); err != nil {
		srv.log(ctx).Warn("domain event not published",
			slog.String("kind", kind),
			slog.Any("error", err),
		)
	}
}
