package postgres

import (
	"context"
	"time"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"
	"storefront/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type statsRepository struct {
	db *gorm.DB
}

// NewStatsRepository is the constructor for statsRepository.
func NewStatsRepository(db *gorm.DB) repository.StatsRepository {
	return &statsRepository{db: db}
}

// RevenueTotals returns revenue over paid orders and the count of all orders.
func (repo *statsRepository) RevenueTotals(ctx context.Context) (decimal.Decimal, int64, error) {
	var row struct {
		Revenue decimal.Decimal
		Orders  int64
	}

	if err := repo.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(total_amount) FILTER (WHERE payment_status = ?), 0) AS revenue,
		       COUNT(*) AS orders
		FROM orders`, string(entity.PaymentStatusPaid)).
		Scan(&row).Error; err != nil {
		return decimal.Zero, 0, errors.Wrap(err, "failed to aggregate revenue")
	}

	return row.Revenue, row.Orders, nil
}

// CountOrdersByStatus returns a count for every status, including zero counts.
func (repo *statsRepository) CountOrdersByStatus(ctx context.Context) (map[entity.OrderStatus]int64, error) {
	var rows []struct {
		Status string
		Count  int64
	}

	if err := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "failed to count orders by status")
	}

	counts := make(map[entity.OrderStatus]int64, len(entity.OrderStatuses))
	for _, status := range entity.OrderStatuses {
		counts[status] = 0
	}
	for _, row := range rows {
		counts[entity.OrderStatus(row.Status)] = row.Count
	}

	return counts, nil
}

// DailyOrderCounts returns per-day order counts (UTC) since the given instant.
func (repo *statsRepository) DailyOrderCounts(ctx context.Context, since time.Time) ([]entity.DailyOrderCount, error) {
	var rows []entity.DailyOrderCount

	if err := repo.db.WithContext(ctx).Raw(`
		SELECT TO_CHAR(DATE_TRUNC('day', created_at AT TIME ZONE 'UTC'), 'YYYY-MM-DD') AS date,
		       COUNT(*) AS orders
		FROM orders
		WHERE created_at >= ?
		GROUP BY 1
		ORDER BY 1`, since).
		Scan(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "failed to count orders per day")
	}

	return rows, nil
}

// MonthlyRevenue returns paid revenue and order counts keyed YYYY-MM since the given instant.
func (repo *statsRepository) MonthlyRevenue(ctx context.Context, since time.Time) (map[string]entity.MonthlyRevenue, error) {
	var rows []struct {
		Month   string
		Revenue decimal.Decimal
		Orders  int64
	}

	if err := repo.db.WithContext(ctx).Raw(`
		SELECT TO_CHAR(DATE_TRUNC('month', created_at AT TIME ZONE 'UTC'), 'YYYY-MM') AS month,
		       COALESCE(SUM(total_amount), 0) AS revenue,
		       COUNT(*) AS orders
		FROM orders
		WHERE payment_status = ? AND created_at >= ?
		GROUP BY 1
		ORDER BY 1`, string(entity.PaymentStatusPaid), since).
		Scan(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "failed to aggregate monthly revenue")
	}

	revenue := make(map[string]entity.MonthlyRevenue, len(rows))
	for _, row := range rows {
		revenue[row.Month] = entity.MonthlyRevenue{Revenue: row.Revenue, Orders: row.Orders}
	}

	return revenue, nil
}
