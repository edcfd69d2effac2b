package usecase

import "context"

// MaintenanceUsecase holds the periodic clean-up jobs run by the scheduler.
type MaintenanceUsecase interface {
	// ExpireStaleIntents closes PENDING payment intents past their expiry.
	ExpireStaleIntents(ctx context.Context) (int64, error)

	// PurgeTokens deletes expired refresh tokens and spent one-time tokens.
	PurgeTokens(ctx context.Context) (int64, error)
}
