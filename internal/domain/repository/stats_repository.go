package repository

import (
	"context"
	"time"

	"storefront/internal/domain/entity"

	"github.com/shopspring/decimal"
)

// StatsRepository runs the aggregate queries behind the admin dashboard.
type StatsRepository interface {
	// RevenueTotals returns revenue over paid orders and the count of all orders.
	RevenueTotals(ctx context.Context) (revenue decimal.Decimal, orders int64, err error)

	CountOrdersByStatus(ctx context.Context) (map[entity.OrderStatus]int64, error)

	// DailyOrderCounts returns per-day order counts since the given instant (days without orders are omitted).
	DailyOrderCounts(ctx context.Context, since time.Time) ([]entity.DailyOrderCount, error)

	// MonthlyRevenue returns paid revenue and order counts keyed YYYY-MM since the given instant.
	MonthlyRevenue(ctx context.Context, since time.Time) (map[string]entity.MonthlyRevenue, error)
}
