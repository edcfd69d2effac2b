package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/repository"
	"storefront/internal/usecase"
)

// Used or expired one-time tokens are kept this long for audit.
const userTokenRetention = 7 * 24 * time.Hour

type maintenanceService struct {
	intentRepo       repository.PaymentIntentRepository
	refreshTokenRepo repository.RefreshTokenRepository
	userTokenRepo    repository.UserTokenRepository
	logger           *slog.Logger
	now              func() time.Time
}

// NewMaintenanceService creates the periodic clean-up use case.
func NewMaintenanceService(
	intentRepo repository.PaymentIntentRepository,
	refreshTokenRepo repository.RefreshTokenRepository,
	userTokenRepo repository.UserTokenRepository,
	logger *slog.Logger,
) usecase.MaintenanceUsecase {
	return &maintenanceService{
		intentRepo:       intentRepo,
		refreshTokenRepo: refreshTokenRepo,
		userTokenRepo:    userTokenRepo,
		logger:           logger,
		now:              time.Now,
	}
}

func (s *maintenanceService) ExpireStaleIntents(ctx context.Context) (int64, error) {
	expired, err := s.intentRepo.ExpireStale(ctx, s.now())
	if err != nil {
		return 0, dataError(err, "failed to expire payment intents")
	}

	if expired > 0 {
		deliverycontext.GetLoggerOrDefault(ctx, s.logger).Info("Expired stale payment intents", slog.Int64("count", expired))
	}

	return expired, nil
}

func (s *maintenanceService) PurgeTokens(ctx context.Context) (int64, error) {
	now := s.now()

	refresh, err := s.refreshTokenRepo.DeleteExpiredRefreshTokens(ctx, now)
	if err != nil {
		return 0, dataError(err, "failed to purge refresh tokens")
	}

	oneTime, err := s.userTokenRepo.DeleteStale(ctx, now.Add(-userTokenRetention))
	if err != nil {
		return refresh, dataError(err, "failed to purge user tokens")
	}

	deliverycontext.GetLoggerOrDefault(ctx, s.logger).Info("Purged tokens",
		slog.Int64("refreshTokens", refresh),
		slog.Int64("userTokens", oneTime),
	)

	return refresh + oneTime, nil
}
