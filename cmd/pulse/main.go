package main

import (
	"context"
	"log/slog"
	"os"

	"pulse/config"
	"pulse/internal/delivery"
	"pulse/internal/delivery/api"
	apihandler "pulse/internal/delivery/api/router/handler"
	"pulse/internal/delivery/http"
	"pulse/internal/delivery/http/middleware"
	"pulse/internal/delivery/http/router/handler"
	"pulse/internal/delivery/worker"
	workerhandler "pulse/internal/delivery/worker/handler"
	"pulse/internal/domain/repository"
	"pulse/internal/domain/service"
	"pulse/internal/infra/auth"
	"pulse/internal/infra/demo"
	logs "pulse/internal/infra/log"
	"pulse/internal/infra/persistence/memory"
	"pulse/internal/infra/pubsub"
	"pulse/internal/infra/qrcode"
	"pulse/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			seedDemoData,
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			memory.NewUserRepository,
			memory.NewVenueRepository,
			memory.NewCheckinRepository,
			memory.NewMatchRepository,
			memory.NewChatRepository,
			memory.NewMessageRepository,
			memory.NewNotificationRepository,
			memory.NewEventRepository,
			memory.NewMenuRepository,
			memory.NewActivityRepository,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewJWTService,
			demo.NewProvider,
			newQRCodeService,
		),
		pubsub.Module,
	)
}

// newQRCodeService creates a QR code service with dependency injection
func newQRCodeService(cfg *config.Config) service.QRCodeService {
	if cfg.QRCode == nil {
		// Use default values if not configured
		return qrcode.NewQRCodeService(256, "M")
	}

	return qrcode.NewQRCodeService(cfg.QRCode.Size, cfg.QRCode.ErrorCorrectionLevel)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewUserService,
			impl.NewVenueService,
			impl.NewCheckinService,
			impl.NewMatchService,
			impl.NewChatService,
			impl.NewNotificationService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewUserHandler,
			handler.NewVenueHandler,
			handler.NewCheckinHandler,
			handler.NewMatchHandler,
			handler.NewChatHandler,
			handler.NewNotificationHandler,
			apihandler.NewVenueAdminHandler,
			apihandler.NewBroadcastHandler,
			workerhandler.NewPushHandler,
			worker.NewSweeper,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
			fx.Annotate(
				api.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
			fx.Annotate(
				worker.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

type seedParams struct {
	fx.In

	Ctx           context.Context
	Cfg           *config.Config
	Logger        *slog.Logger
	Users         repository.UserRepository
	Venues        repository.VenueRepository
	Events        repository.EventRepository
	Menus         repository.MenuRepository
	Checkins      repository.CheckinRepository
	Notifications repository.NotificationRepository
}

// seedDemoData loads the curated demo dataset when demo.seed is on.
func seedDemoData(params seedParams) error {
	if params.Cfg.Demo == nil || !params.Cfg.Demo.Seed {
		return nil
	}

	return memory.Seed(params.Ctx, memory.SeedStores{
		Users:         params.Users,
		Venues:        params.Venues,
		Events:        params.Events,
		Menus:         params.Menus,
		Checkins:      params.Checkins,
		Notifications: params.Notifications,
	}, params.Logger)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
