package usecase

import (
	"context"

	"storefront/internal/domain/entity"
)

const (
	DefaultStatsDays = 30
	MaxStatsDays     = 365
	// RevenueMonths is the trailing window of the monthly revenue series.
	RevenueMonths = 6
)

type StatsUsecase interface {
	// GetDashboardStats computes the dashboard over the trailing days (DefaultStatsDays when <= 0).
	GetDashboardStats(ctx context.Context, days int) (*entity.DashboardStats, error)
}
