package worker

import (
	"context"
	"log/slog"
	"time"

	"pulse/config"
	"pulse/internal/usecase"

	"go.uber.org/fx"
)

// Sweeper periodically expires pending swipes older than the configured TTL.
// It only runs when a pending TTL is configured.
type Sweeper struct {
	cfg     *config.Config
	logger  *slog.Logger
	matchUC usecase.MatchUsecase

	cancel context.CancelFunc
	done   chan struct{}
}

// SweeperParams holds dependencies for the Sweeper.
type SweeperParams struct {
	fx.In
	fx.Lifecycle

	Cfg     *config.Config
	Logger  *slog.Logger
	MatchUC usecase.MatchUsecase
}

// NewSweeper creates the match-expiry sweeper and hooks it into the fx
// lifecycle.
func NewSweeper(params SweeperParams) *Sweeper {
	s := &Sweeper{
		cfg:     params.Cfg,
		logger:  params.Logger,
		matchUC: params.MatchUC,
		done:    make(chan struct{}),
	}

	params.Append(fx.Hook{
		OnStart: s.start,
		OnStop:  s.stop,
	})

	return s
}

func (s *Sweeper) start(ctx context.Context) error {
	if s.cfg.Match == nil || s.cfg.Match.PendingTTL <= 0 || !s.cfg.Worker.Enabled {
		s.logger.Info("[Worker] Match-expiry sweeper disabled")
		close(s.done)

		return nil
	}

	interval := s.cfg.Match.SweepInterval
	if interval <= 0 {
		interval = time.Minute
	}

	runCtx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	go s.run(runCtx, interval)

	s.logger.Info("[Worker] Match-expiry sweeper started",
		slog.Duration("interval", interval),
		slog.Duration("pending_ttl", s.cfg.Match.PendingTTL),
	)

	return nil
}

func (s *Sweeper) run(ctx context.Context, interval time.Duration) {
	defer close(s.done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			swept, err := s.matchUC.ExpireStalePending(ctx, now)
			if err != nil {
				s.logger.Error("[Worker] Match-expiry sweep failed", slog.Any("error", err))

				continue
			}
			if swept > 0 {
				s.logger.Info("[Worker] Expired stale pending swipes", slog.Int("count", swept))
			}
		}
	}
}

func (s *Sweeper) stop(ctx context.Context) error {
	if s.cancel != nil {
		s.cancel()
	}

	select {
	case <-s.done:
	case <-ctx.Done():
	}

	return nil
}
