package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"
	"storefront/internal/usecase"

	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"golang.org/x/sync/errgroup"
)

type statsService struct {
	statsRepo   repository.StatsRepository
	userRepo    repository.UserRepository
	productRepo repository.ProductRepository
	logger      *slog.Logger
	now         func() time.Time
}

// StatsServiceParams holds dependencies for StatsService, injected by Fx.
type StatsServiceParams struct {
	fx.In

	StatsRepo   repository.StatsRepository
	UserRepo    repository.UserRepository
	ProductRepo repository.ProductRepository
	Logger      *slog.Logger
}

// NewStatsService creates the dashboard use case.
func NewStatsService(params StatsServiceParams) usecase.StatsUsecase {
	return &statsService{
		statsRepo:   params.StatsRepo,
		userRepo:    params.UserRepo,
		productRepo: params.ProductRepo,
		logger:      params.Logger,
		now:         time.Now,
	}
}

func (s *statsService) GetDashboardStats(ctx context.Context, days int) (*entity.DashboardStats, error) {
	if days <= 0 {
		days = usecase.DefaultStatsDays
	}
	days = min(days, usecase.MaxStatsDays)

	now := s.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	dailySince := today.AddDate(0, 0, -(days - 1))
	monthlySince := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(usecase.RevenueMonths - 1), 0)

	stats := &entity.DashboardStats{GeneratedAt: now}
	var (
		byStatus map[entity.OrderStatus]int64
		daily    []entity.DailyOrderCount
		monthly  map[string]entity.MonthlyRevenue
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		stats.TotalRevenue, stats.TotalOrders, err = s.statsRepo.RevenueTotals(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		byStatus, err = s.statsRepo.CountOrdersByStatus(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		daily, err = s.statsRepo.DailyOrderCounts(gctx, dailySince)
		return err
	})
	g.Go(func() error {
		var err error
		monthly, err = s.statsRepo.MonthlyRevenue(gctx, monthlySince)
		return err
	})
	g.Go(func() error {
		var err error
		stats.TotalUsers, err = s.userRepo.Count(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		stats.TotalProducts, err = s.productRepo.Count(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		stats.LowStockProducts, err = s.productRepo.CountLowStock(gctx, entity.LowStockThreshold)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, dataError(err, "failed to compute stats")
	}

	stats.OrderStatusStats = make(map[entity.OrderStatus]int64, len(entity.OrderStatuses))
	for _, status := range entity.OrderStatuses {
		stats.OrderStatusStats[status] = byStatus[status]
	}
	stats.FulfillmentStats = entity.FulfillmentStats{
		Pending:   byStatus[entity.OrderStatusPending],
		Confirmed: byStatus[entity.OrderStatusConfirmed],
		InTransit: byStatus[entity.OrderStatusInTransit],
		Completed: byStatus[entity.OrderStatusCompleted],
		Rejected:  byStatus[entity.OrderStatusRejected],
	}
	stats.OrdersPerDay = fillDailySeries(daily, dailySince, days)
	stats.MonthlyRevenueData = fillMonthlySeries(monthly, monthlySince, usecase.RevenueMonths)

	deliverycontext.GetLoggerOrDefault(ctx, s.logger).Debug("Dashboard stats computed", slog.Int("days", days))

	return stats, nil
}

// fillDailySeries returns one entry per day starting at since, with zero for days without orders.
func fillDailySeries(counts []entity.DailyOrderCount, since time.Time, days int) []entity.DailyOrderCount {
	byDay := make(map[string]int64, len(counts))
	for _, c := range counts {
		byDay[c.Date] = c.Orders
	}

	series := make([]entity.DailyOrderCount, 0, days)
	for i := range days {
		key := entity.DayKey(since.AddDate(0, 0, i))
		series = append(series, entity.DailyOrderCount{Date: key, Orders: byDay[key]})
	}

	return series
}

// fillMonthlySeries keys months YYYY-MM starting at since, with zero revenue for empty months.
func fillMonthlySeries(revenue map[string]entity.MonthlyRevenue, since time.Time, months int) map[string]entity.MonthlyRevenue {
	series := make(map[string]entity.MonthlyRevenue, months)
	for i := range months {
		key := entity.MonthKey(since.AddDate(0, i, 0))
		if r, ok := revenue[key]; ok {
			series[key] = r
			continue
		}
		series[key] = entity.MonthlyRevenue{Revenue: decimal.Zero}
	}

	return series
}
