// Package scheduler runs the periodic maintenance jobs of the API process.
package scheduler

import (
	"context"
	"log/slog"

	"storefront/config"
	"storefront/internal/delivery"
	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/lifecycle"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	"go.uber.org/fx"
)

const (
	defaultExpireIntentsSpec = "@every 5m"
	defaultPurgeTokensSpec   = "@hourly"
)

// SchedulerParams holds dependencies for the maintenance scheduler, injected by Fx.
type SchedulerParams struct {
	fx.In

	Lc            fx.Lifecycle
	Cfg           *config.Config
	Logger        *slog.Logger
	MaintenanceUC usecase.MaintenanceUsecase
}

type scheduler struct {
	cron          *cron.Cron
	maintenanceUC usecase.MaintenanceUsecase
	logger        *slog.Logger
	enabled       bool
	done          chan struct{}
}

// NewScheduler registers the sweeper jobs. An invalid cron spec fails startup.
func NewScheduler(params SchedulerParams) (delivery.Delivery, error) {
	cronLogger := newCronLogger(params.Logger)
	s := &scheduler{
		cron: cron.New(
			cron.WithLogger(cronLogger),
			cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
		),
		maintenanceUC: params.MaintenanceUC,
		logger:        params.Logger,
		enabled:       params.Cfg.Sweeper != nil && params.Cfg.Sweeper.Enabled,
		done:          make(chan struct{}),
	}

	if !s.enabled {
		return s, nil
	}

	expireSpec, purgeSpec := defaultExpireIntentsSpec, defaultPurgeTokensSpec
	if spec := params.Cfg.Sweeper.ExpireIntentsAt; spec != "" {
		expireSpec = spec
	}
	if spec := params.Cfg.Sweeper.PurgeTokensAt; spec != "" {
		purgeSpec = spec
	}

	if _, err := s.cron.AddFunc(expireSpec, s.job("expire_payment_intents", params.MaintenanceUC.ExpireStaleIntents)); err != nil {
		return nil, errors.Wrapf(err, "invalid sweeper spec %q", expireSpec)
	}
	if _, err := s.cron.AddFunc(purgeSpec, s.job("purge_tokens", params.MaintenanceUC.PurgeTokens)); err != nil {
		return nil, errors.Wrapf(err, "invalid sweeper spec %q", purgeSpec)
	}

	params.Lc.Append(fx.Hook{
		OnStop: s.stop,
	})

	return s, nil
}

// job wraps a maintenance call with a timeout and a run-scoped logger.
func (s *scheduler) job(name string, run func(context.Context) (int64, error)) func() {
	return func() {
		runID := uuid.NewString()
		logger := s.logger.With(slog.String("job", name), slog.String("request_id", runID))

		ctx, cancel := context.WithTimeout(context.Background(), lifecycle.DefaultTimeout)
		defer cancel()
		ctx = deliverycontext.WithRequestID(ctx, runID)
		ctx = deliverycontext.WithLogger(ctx, logger)

		affected, err := run(ctx)
		if err != nil {
			logger.Error("[Scheduler] Job failed", slog.Any("error", err))

			return
		}
		logger.Debug("[Scheduler] Job finished", slog.Int64("affected", affected))
	}
}

// Serve starts the cron loop and blocks until the scheduler is stopped.
func (s *scheduler) Serve(ctx context.Context) error {
	if !s.enabled {
		s.logger.Info("Sweeper disabled, scheduler not started")

		return nil
	}

	s.logger.Info("Starting maintenance scheduler", slog.Int("jobs", len(s.cron.Entries())))
	s.cron.Start()

	select {
	case <-ctx.Done():
	case <-s.done:
	}

	return nil
}

func (s *scheduler) stop(ctx context.Context) error {
	s.logger.Info("Stopping maintenance scheduler")
	close(s.done)

	// Wait for running jobs to finish.
	select {
	case <-s.cron.Stop().Done():
		return nil
	case <-ctx.Done():
		return errors.WithStack(ctx.Err())
	}
}
