package repository

import (
	"context"
	"testing"
	"time"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct {
	mock.Mock
}

func NewMockOrderRepository(t *testing.T) *MockOrderRepository {
	m := &MockOrderRepository{}
	register(t, &m.Mock)

	return m
}

func (m *MockOrderRepository) Create(ctx context.Context, order *entity.Order) error {
	return m.Called(ctx, order).Error(0)
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	args := m.Called(ctx, id)

	return value[*entity.Order](args, 0), args.Error(1)
}

func (m *MockOrderRepository) FindByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*entity.Order, error) {
	args := m.Called(ctx, gatewayOrderID)

	return value[*entity.Order](args, 0), args.Error(1)
}

func (m *MockOrderRepository) List(ctx context.Context, filter entity.OrderFilter) ([]*entity.Order, int64, error) {
	args := m.Called(ctx, filter)

	return value[[]*entity.Order](args, 0), value[int64](args, 1), args.Error(2)
}

func (m *MockOrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, change entity.OrderStatusChange) error {
	return m.Called(ctx, id, change).Error(0)
}

type MockPaymentIntentRepository struct {
	mock.Mock
}

func NewMockPaymentIntentRepository(t *testing.T) *MockPaymentIntentRepository {
	m := &MockPaymentIntentRepository{}
	register(t, &m.Mock)

	return m
}

func (m *MockPaymentIntentRepository) Create(ctx context.Context, intent *entity.PaymentIntent) error {
	return m.Called(ctx, intent).Error(0)
}

func (m *MockPaymentIntentRepository) FindByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*entity.PaymentIntent, error) {
	args := m.Called(ctx, gatewayOrderID)

	return value[*entity.PaymentIntent](args, 0), args.Error(1)
}

func (m *MockPaymentIntentRepository) MarkVerified(ctx context.Context, id uuid.UUID, orderID uuid.UUID) error {
	return m.Called(ctx, id, orderID).Error(0)
}

func (m *MockPaymentIntentRepository) MarkFailed(ctx context.Context, id uuid.UUID, reason string) error {
	return m.Called(ctx, id, reason).Error(0)
}

func (m *MockPaymentIntentRepository) ExpireStale(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)

	return value[int64](args, 0), args.Error(1)
}
