package repository

import (
	"context"
	"testing"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockSaleBannerRepository struct {
	mock.Mock
}

func NewMockSaleBannerRepository(t *testing.T) *MockSaleBannerRepository {
	m := &MockSaleBannerRepository{}
	register(t, &m.Mock)

	return m
}

func (m *MockSaleBannerRepository) List(ctx context.Context, activeOnly bool) ([]*entity.SaleBanner, error) {
	args := m.Called(ctx, activeOnly)

	return value[[]*entity.SaleBanner](args, 0), args.Error(1)
}

func (m *MockSaleBannerRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.SaleBanner, error) {
	args := m.Called(ctx, id)

	return value[*entity.SaleBanner](args, 0), args.Error(1)
}

func (m *MockSaleBannerRepository) Create(ctx context.Context, banner *entity.SaleBanner) error {
	return m.Called(ctx, banner).Error(0)
}

func (m *MockSaleBannerRepository) Update(ctx context.Context, banner *entity.SaleBanner) error {
	return m.Called(ctx, banner).Error(0)
}

func (m *MockSaleBannerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockGalleryImageRepository struct {
	mock.Mock
}

func NewMockGalleryImageRepository(t *testing.T) *MockGalleryImageRepository {
	m := &MockGalleryImageRepository{}
	register(t, &m.Mock)

	return m
}

func (m *MockGalleryImageRepository) List(ctx context.Context, activeOnly bool) ([]*entity.GalleryImage, error) {
	args := m.Called(ctx, activeOnly)

	return value[[]*entity.GalleryImage](args, 0), args.Error(1)
}

func (m *MockGalleryImageRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.GalleryImage, error) {
	args := m.Called(ctx, id)

	return value[*entity.GalleryImage](args, 0), args.Error(1)
}

func (m *MockGalleryImageRepository) Create(ctx context.Context, image *entity.GalleryImage) error {
	return m.Called(ctx, image).Error(0)
}

func (m *MockGalleryImageRepository) Update(ctx context.Context, image *entity.GalleryImage) error {
	return m.Called(ctx, image).Error(0)
}

func (m *MockGalleryImageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockHeroImageRepository struct {
	mock.Mock
}

func NewMockHeroImageRepository(t *testing.T) *MockHeroImageRepository {
	m := &MockHeroImageRepository{}
	register(t, &m.Mock)

	return m
}

func (m *MockHeroImageRepository) List(ctx context.Context, activeOnly bool) ([]*entity.HeroImage, error) {
	args := m.Called(ctx, activeOnly)

	return value[[]*entity.HeroImage](args, 0), args.Error(1)
}

func (m *MockHeroImageRepository) ReplaceAll(ctx context.Context, images []*entity.HeroImage) error {
	return m.Called(ctx, images).Error(0)
}
