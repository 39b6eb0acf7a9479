package impl

import (
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"pulse/config"
	"pulse/internal/domain/entity"
	"pulse/internal/domain/repository"
	"pulse/internal/domain/service"
	"pulse/internal/infra/auth"
	"pulse/internal/infra/demo"
	"pulse/internal/infra/persistence/memory"
	"pulse/internal/infra/qrcode"
	"pulse/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// capturePublisher records published events for assertions.
type capturePublisher struct {
	mu     sync.Mutex
	events []*service.DomainEvent
}

func (p *capturePublisher) PublishDomainEvent(_ context.Context, event *service.DomainEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)

	return nil
}

func (p *capturePublisher) Close() error { return nil }

func (p *capturePublisher) kinds() []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	kinds := make([]string, 0, len(p.events))
	for _, e := range p.events {
		kinds = append(kinds, e.Kind)
	}

	return kinds
}

// testEnv wires every service against real in-memory stores.
type testEnv struct {
	cfg *config.Config

	userRepo         repository.UserRepository
	venueRepo        repository.VenueRepository
	checkinRepo      repository.CheckinRepository
	matchRepo        repository.MatchRepository
	chatRepo         repository.ChatRepository
	messageRepo      repository.MessageRepository
	notificationRepo repository.NotificationRepository
	eventRepo        repository.EventRepository
	menuRepo         repository.MenuRepository
	activityRepo     repository.ActivityRepository

	publisher *capturePublisher

	users         usecase.UserUsecase
	venues        usecase.VenueUsecase
	checkins      usecase.CheckinUsecase
	matches       usecase.MatchUsecase
	chats         usecase.ChatUsecase
	notifications usecase.NotificationUsecase
}

func testEnvConfig() *config.Config {
	cfg := &config.Config{
		Auth:       &config.AuthConfig{VerificationCode: "1234", AccessTokenTTL: time.Hour},
		Demo:       &config.DemoConfig{RandSeed: 1},
		CrowdStats: &config.CrowdStatsConfig{MediumThreshold: 50, HighThreshold: 150},
		Match:      &config.MatchConfig{SweepInterval: time.Minute},
		QRCode:     &config.QRCodeConfig{Size: 256, ErrorCorrectionLevel: "M"},
	}
	cfg.SecretKey.Access = "test_secret_key_long_enough_for_hmac"

	return cfg
}

func newTestEnv(t *testing.T, mutate ...func(*config.Config)) *testEnv {
	t.Helper()

	cfg := testEnvConfig()
	for _, fn := range mutate {
		fn(cfg)
	}

	logger := slog.New(slog.DiscardHandler)
	tokenSvc, err := auth.NewJWTService(cfg)
	require.NoError(t, err)
	qrSvc := qrcode.NewQRCodeService(cfg.QRCode.Size, cfg.QRCode.ErrorCorrectionLevel)
	demoProvider := demo.NewProvider(cfg)
	publisher := &capturePublisher{}

	env := &testEnv{
		cfg:              cfg,
		userRepo:         memory.NewUserRepository(),
		venueRepo:        memory.NewVenueRepository(),
		checkinRepo:      memory.NewCheckinRepository(),
		matchRepo:        memory.NewMatchRepository(),
		chatRepo:         memory.NewChatRepository(),
		messageRepo:      memory.NewMessageRepository(),
		notificationRepo: memory.NewNotificationRepository(),
		eventRepo:        memory.NewEventRepository(),
		menuRepo:         memory.NewMenuRepository(),
		activityRepo:     memory.NewActivityRepository(),
		publisher:        publisher,
	}

	env.users = NewUserService(UserServiceParams{
		UserRepo:         env.userRepo,
		NotificationRepo: env.notificationRepo,
		TokenService:     tokenSvc,
		Config:           cfg,
		Logger:           logger,
	})
	env.checkins = NewCheckinService(CheckinServiceParams{
		UserRepo:     env.userRepo,
		VenueRepo:    env.venueRepo,
		CheckinRepo:  env.checkinRepo,
		QRService:    qrSvc,
		DemoProvider: demoProvider,
		Publisher:    publisher,
		Config:       cfg,
		Logger:       logger,
	})
	env.venues = NewVenueService(VenueServiceParams{
		VenueRepo:        env.venueRepo,
		UserRepo:         env.userRepo,
		CheckinRepo:      env.checkinRepo,
		EventRepo:        env.eventRepo,
		MenuRepo:         env.menuRepo,
		ActivityRepo:     env.activityRepo,
		NotificationRepo: env.notificationRepo,
		QRService:        qrSvc,
		DemoProvider:     demoProvider,
		Publisher:        publisher,
		Config:           cfg,
		Logger:           logger,
	})
	env.matches = NewMatchService(MatchServiceParams{
		UserRepo:         env.userRepo,
		VenueRepo:        env.venueRepo,
		MatchRepo:        env.matchRepo,
		ChatRepo:         env.chatRepo,
		NotificationRepo: env.notificationRepo,
		CheckinUsecase:   env.checkins,
		DemoProvider:     demoProvider,
		Publisher:        publisher,
		Config:           cfg,
		Logger:           logger,
	})
	env.chats = NewChatService(ChatServiceParams{
		ChatRepo:    env.chatRepo,
		MessageRepo: env.messageRepo,
		UserRepo:    env.userRepo,
		Logger:      logger,
	})
	env.notifications = NewNotificationService(NotificationServiceParams{
		NotificationRepo: env.notificationRepo,
		UserRepo:         env.userRepo,
		CheckinRepo:      env.checkinRepo,
		Logger:           logger,
	})

	return env
}

func (env *testEnv) addUser(t *testing.T, name string, gender entity.Gender, interests ...string) *entity.User {
	t.Helper()

	now := time.Now()
	user := &entity.User{
		ID:              uuid.New(),
		Phone:           "+90555" + uuid.NewString()[:7],
		Name:            name,
		Age:             25,
		Gender:          gender,
		Interests:       interests,
		Tier:            entity.TierFree,
		ProfileComplete: true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	require.NoError(t, env.userRepo.Create(context.Background(), user))

	return user
}

func (env *testEnv) addVenue(t *testing.T, name string) *entity.Venue {
	t.Helper()

	now := time.Now()
	venue := &entity.Venue{
		ID:        uuid.New(),
		Name:      name,
		District:  "Beyoglu",
		Type:      "bar",
		PriceTier: 2,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, env.venueRepo.Create(context.Background(), venue))

	return venue
}

func (env *testEnv) checkInBoth(t *testing.T, venueID uuid.UUID, users ...*entity.User) {
	t.Helper()

	for _, u := range users {
		_, err := env.checkins.CheckIn(context.Background(), usecase.CheckInInput{
			UserID: u.ID, VenueID: venueID, Visible: true,
		})
		require.NoError(t, err)
	}
}
