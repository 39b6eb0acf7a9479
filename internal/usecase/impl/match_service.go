package impl

import (
	"context"
	"log/slog"
	"strings"
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

// matchService implements the MatchUsecase interface.
type matchService struct {
	userRepo         repository.UserRepository
	venueRepo        repository.VenueRepository
	matchRepo        repository.MatchRepository
	chatRepo         repository.ChatRepository
	notificationRepo repository.NotificationRepository
	checkinUsecase   usecase.CheckinUsecase
	demoProvider     service.DemoProvider
	publisher        service.EventPublisher
	mockDistance     bool
	pendingTTL       time.Duration
	logger           *slog.Logger
}

// MatchServiceParams holds dependencies for MatchService, injected by Fx.
type MatchServiceParams struct {
	fx.In

	UserRepo         repository.UserRepository
	VenueRepo        repository.VenueRepository
	MatchRepo        repository.MatchRepository
	ChatRepo         repository.ChatRepository
	NotificationRepo repository.NotificationRepository
	CheckinUsecase   usecase.CheckinUsecase
	DemoProvider     service.DemoProvider
	Publisher        service.EventPublisher
	Config           *config.Config
	Logger           *slog.Logger
}

// NewMatchService is the constructor for matchService.
func NewMatchService(params MatchServiceParams) usecase.MatchUsecase {
	return &matchService{
		userRepo:         params.UserRepo,
		venueRepo:        params.VenueRepo,
		matchRepo:        params.MatchRepo,
		chatRepo:         params.ChatRepo,
		notificationRepo: params.NotificationRepo,
		checkinUsecase:   params.CheckinUsecase,
		demoProvider:     params.DemoProvider,
		publisher:        params.Publisher,
		mockDistance:     params.Config.Demo.MockDistance,
		pendingTTL:       params.Config.Match.PendingTTL,
		logger:           params.Logger,
	}
}

func (srv *matchService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Candidates returns the venue's visible guests the user has no live match
// history with, annotated with shared interests and (in demo mode) a distance.
func (srv *matchService) Candidates(ctx context.Context, userID, venueID uuid.UUID) ([]*usecase.Candidate, error) {
	requester, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "find requester")
	}

	people, err := srv.checkinUsecase.PeopleIn(ctx, venueID)
	if err != nil {
		return nil, err
	}

	candidates := make([]*usecase.Candidate, 0, len(people))
	for _, person := range people {
		if person.UserID == userID {
			continue
		}

		// A live record between the pair takes the person out of the deck.
		// Expired swipes do not count; the pair starts over.
		history, err := srv.matchRepo.FindBetween(ctx, userID, person.UserID)
		if err != nil {
			return nil, errors.Wrap(err, "check match history")
		}
		if hasLiveHistory(history) {
			continue
		}

		candidate := &usecase.Candidate{
			User:            person,
			CommonInterests: commonInterests(requester.Interests, person.Interests),
		}
		if srv.mockDistance {
			candidate.DistanceKm = srv.demoProvider.DistanceKm()
		}
		candidates = append(candidates, candidate)
	}

	return candidates, nil
}

// Swipe records a like or decline. A like meeting the reverse pending like
// completes the match, opens the chat and notifies both users.
func (srv *matchService) Swipe(ctx context.Context, input usecase.SwipeInput) (*usecase.SwipeOutput, error) {
	if input.UserID == input.TargetID {
		return nil, domainerrors.ErrSelfSwipe
	}

	if _, err := srv.userRepo.FindByID(ctx, input.UserID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "find swiper")
	}
	if _, err := srv.userRepo.FindByID(ctx, input.TargetID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "find target")
	}
	if _, err := srv.venueRepo.FindByID(ctx, input.VenueID); err != nil {
		if errors.Is(err, repository.ErrVenueNotFound) {
			return nil, domainerrors.ErrVenueNotFound
		}

		return nil, errors.Wrap(err, "find venue")
	}

	status := entity.MatchPending
	if !input.Like {
		status = entity.MatchDeclined
	}

	match := &entity.Match{
		ID:        uuid.New(),
		UserID:    input.UserID,
		TargetID:  input.TargetID,
		VenueID:   input.VenueID,
		Status:    status,
		CreatedAt: time.Now(),
	}

	stored, reciprocal, reused, err := srv.matchRepo.RecordSwipe(ctx, match)
	if err != nil {
		return nil, errors.Wrap(err, "record swipe")
	}

	output := &usecase.SwipeOutput{
		Match:   stored,
		IsMatch: stored.Status == entity.MatchMatched,
	}

	if reused {
		if output.IsMatch {
			if chatID := srv.findChatForPair(ctx, stored); chatID != nil {
				output.ChatID = chatID
			}
		}

		return output, nil
	}

	if reciprocal != nil {
		chatID, err := srv.completeMatch(ctx, stored, reciprocal)
		if err != nil {
			return nil, err
		}
		output.ChatID = chatID
	}

	return output, nil
}

// completeMatch opens the pair's chat and notifies both sides. The chat is
// keyed on the completing swipe record; a concurrent completion losing the
// race falls back to the chat the winner created.
func (srv *matchService) completeMatch(ctx context.Context, stored, reciprocal *entity.Match) (*uuid.UUID, error) {
	now := time.Now()
	chat := &entity.Chat{
		ID:        uuid.New(),
		MatchID:   stored.ID,
		UserA:     stored.UserID,
		UserB:     stored.TargetID,
		CreatedAt: now,
	}

	err := srv.chatRepo.Create(ctx, chat)
	if errors.Is(err, repository.ErrChatExists) {
		existing, findErr := srv.chatRepo.FindByMatch(ctx, stored.ID)
		if findErr != nil {
			return nil, errors.Wrap(findErr, "find existing chat")
		}
		chat = existing
	} else if err != nil {
		return nil, errors.Wrap(err, "create chat")
	}

	for _, userID := range []uuid.UUID{stored.UserID, stored.TargetID} {
		notification := &entity.Notification{
			ID:        uuid.New(),
			UserID:    userID,
			Title:     "It's a match!",
			Message:   "You liked each other. Say hi in your new chat.",
			Type:      entity.NotificationSocial,
			CreatedAt: now,
		}
		if err := srv.notificationRepo.Create(ctx, notification); err != nil {
			srv.log(ctx).Warn("match notification not created",
				slog.String("user_id", userID.String()),
				slog.Any("error", err),
			)
		}
	}

	event := &service.DomainEvent{
		RequestID:  deliverycontext.GetRequestIDFromContext(ctx),
		Kind:       entity.ActivityMatchCompleted,
		VenueID:    stored.VenueID,
		ActorID:    stored.UserID,
		OccurredAt: now,
	}
	if err := srv.publisher.PublishDomainEvent(ctx, event); err != nil {
		srv.log(ctx).Warn("match activity not published", slog.Any("error", err))
	}

	srv.log(ctx).Info("match completed",
		slog.String("match_id", stored.ID.String()),
		slog.String("reciprocal_id", reciprocal.ID.String()),
		slog.String("chat_id", chat.ID.String()),
	)

	chatID := chat.ID

	return &chatID, nil
}

// findChatForPair locates the chat of a completed match, trying both swipe
// records of the pair since either may have keyed the chat.
func (srv *matchService) findChatForPair(ctx context.Context, stored *entity.Match) *uuid.UUID {
	if chat, err := srv.chatRepo.FindByMatch(ctx, stored.ID); err == nil {
		id := chat.ID

		return &id
	}

	history, err := srv.matchRepo.FindBetween(ctx, stored.UserID, stored.TargetID)
	if err != nil {
		return nil
	}
	for _, m := range history {
		if m.ID == stored.ID {
			continue
		}
		if chat, err := srv.chatRepo.FindByMatch(ctx, m.ID); err == nil {
			id := chat.ID

			return &id
		}
	}

	return nil
}

// MatchesForUser returns every match record the user is part of.
func (srv *matchService) MatchesForUser(ctx context.Context, userID uuid.UUID) ([]*entity.Match, error) {
	if _, err := srv.userRepo.FindByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "find user")
	}

	return srv.matchRepo.ListForUser(ctx, userID)
}

// ExpireStalePending sweeps pending swipes older than the configured TTL.
func (srv *matchService) ExpireStalePending(ctx context.Context, now time.Time) (int, error) {
	if srv.pendingTTL <= 0 {
		return 0, nil
	}

	swept, err := srv.matchRepo.ExpirePendingBefore(ctx, now.Add(-srv.pendingTTL))
	if err != nil {
		return 0, errors.Wrap(err, "expire pending matches")
	}
	if swept > 0 {
		srv.log(ctx).Info("stale pending swipes expired", slog.Int("count", swept))
	}

	return swept, nil
}

// hasLiveHistory reports whether any record between a pair is still
// actionable, meaning anything but expired.
func hasLiveHistory(history []*entity.Match) bool {
	for _, m := range history {
		if m.Status != entity.MatchExpired {
			return true
		}
	}

	return false
}

// commonInterests intersects two interest lists case-insensitively, keeping
// the order of the first list.
func commonInterests(mine, theirs []string) []string {
	theirSet := make(map[string]struct{}, len(theirs))
	for _, interest := range theirs {
		theirSet[strings.ToLower(interest)] = struct{}{}
	}

	common := make([]string, 0)
	for _, interest := range mine {
		if _, ok := theirSet[strings.ToLower(interest)]; ok {
			common = append(common, interest)
		}
	}

	return common
}
