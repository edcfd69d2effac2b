package repository

import (
	"context"
	"testing"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockReviewRepository struct {
	mock.Mock
}

func NewMockReviewRepository(t *testing.T) *MockReviewRepository {
	m := &MockReviewRepository{}
	register(t, &m.Mock)

	return m
}

func (m *MockReviewRepository) Create(ctx context.Context, review *entity.Review) error {
	return m.Called(ctx, review).Error(0)
}

func (m *MockReviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error) {
	args := m.Called(ctx, id)

	return value[*entity.Review](args, 0), args.Error(1)
}

func (m *MockReviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockReviewRepository) ListByProduct(ctx context.Context, productID uuid.UUID, page entity.Pagination) ([]*entity.Review, int64, error) {
	args := m.Called(ctx, productID, page)

	return value[[]*entity.Review](args, 0), value[int64](args, 1), args.Error(2)
}

func (m *MockReviewRepository) ListAll(ctx context.Context, page entity.Pagination) ([]*entity.Review, int64, error) {
	args := m.Called(ctx, page)

	return value[[]*entity.Review](args, 0), value[int64](args, 1), args.Error(2)
}
