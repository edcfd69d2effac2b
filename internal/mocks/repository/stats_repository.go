package repository

import (
	"context"
	"testing"
	"time"

	"storefront/internal/domain/entity"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type MockStatsRepository struct {
	mock.Mock
}

func NewMockStatsRepository(t *testing.T) *MockStatsRepository {
	m := &MockStatsRepository{}
	register(t, &m.Mock)

	return m
}

func (m *MockStatsRepository) RevenueTotals(ctx context.Context) (decimal.Decimal, int64, error) {
	args := m.Called(ctx)

	return value[decimal.Decimal](args, 0), value[int64](args, 1), args.Error(2)
}

func (m *MockStatsRepository) CountOrdersByStatus(ctx context.Context) (map[entity.OrderStatus]int64, error) {
	args := m.Called(ctx)

	return value[map[entity.OrderStatus]int64](args, 0), args.Error(1)
}

func (m *MockStatsRepository) DailyOrderCounts(ctx context.Context, since time.Time) ([]entity.DailyOrderCount, error) {
	args := m.Called(ctx, since)

	return value[[]entity.DailyOrderCount](args, 0), args.Error(1)
}

func (m *MockStatsRepository) MonthlyRevenue(ctx context.Context, since time.Time) (map[string]entity.MonthlyRevenue, error) {
	args := m.Called(ctx, since)

	return value[map[string]entity.MonthlyRevenue](args, 0), args.Error(1)
}
