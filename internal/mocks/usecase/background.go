package usecase

import (
	"context"
	"testing"

	"storefront/internal/domain/service"
	"storefront/internal/usecase"

	"github.com/stretchr/testify/mock"
)

type MockOrderNotificationUsecase struct {
	mock.Mock
}

func NewMockOrderNotificationUsecase(t *testing.T) *MockOrderNotificationUsecase {
	m := &MockOrderNotificationUsecase{}
	register(t, &m.Mock)

	return m
}

func (m *MockOrderNotificationUsecase) HandleOrderEvent(ctx context.Context, event *service.OrderEvent) (*usecase.NotificationResult, error) {
	args := m.Called(ctx, event)

	return value[*usecase.NotificationResult](args, 0), args.Error(1)
}

type MockMaintenanceUsecase struct {
	mock.Mock
}

func NewMockMaintenanceUsecase(t *testing.T) *MockMaintenanceUsecase {
	m := &MockMaintenanceUsecase{}
	register(t, &m.Mock)

	return m
}

func (m *MockMaintenanceUsecase) ExpireStaleIntents(ctx context.Context) (int64, error) {
	args := m.Called(ctx)

	return value[int64](args, 0), args.Error(1)
}

func (m *MockMaintenanceUsecase) PurgeTokens(ctx context.Context) (int64, error) {
	args := m.Called(ctx)

	return value[int64](args, 0), args.Error(1)
}
