package repository

import (
	"context"
	"testing"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockCartRepository struct {
	mock.Mock
}

func NewMockCartRepository(t *testing.T) *MockCartRepository {
	m := &MockCartRepository{}
	register(t, &m.Mock)

	return m
}

func (m *MockCartRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.CartItem, error) {
	args := m.Called(ctx, userID)

	return value[[]*entity.CartItem](args, 0), args.Error(1)
}

func (m *MockCartRepository) FindItem(ctx context.Context, userID, itemID uuid.UUID) (*entity.CartItem, error) {
	args := m.Called(ctx, userID, itemID)

	return value[*entity.CartItem](args, 0), args.Error(1)
}

func (m *MockCartRepository) FindByProduct(ctx context.Context, userID, productID uuid.UUID) (*entity.CartItem, error) {
	args := m.Called(ctx, userID, productID)

	return value[*entity.CartItem](args, 0), args.Error(1)
}

func (m *MockCartRepository) AddQuantity(ctx context.Context, userID, productID uuid.UUID, qty int) error {
	return m.Called(ctx, userID, productID, qty).Error(0)
}

func (m *MockCartRepository) SetQuantity(ctx context.Context, userID, itemID uuid.UUID, qty int) error {
	return m.Called(ctx, userID, itemID, qty).Error(0)
}

func (m *MockCartRepository) DeleteItem(ctx context.Context, userID, itemID uuid.UUID) error {
	return m.Called(ctx, userID, itemID).Error(0)
}

func (m *MockCartRepository) ClearByUser(ctx context.Context, userID uuid.UUID) error {
	return m.Called(ctx, userID).Error(0)
}
