package repository

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var (
	ErrBannerNotFound       = errors.New("sale banner not found")
	ErrGalleryImageNotFound = errors.New("gallery image not found")
)

// SaleBannerRepository persists promotional banners.
type SaleBannerRepository interface {
	// List returns banners by display order; activeOnly also applies the date window at query time.
	List(ctx context.Context, activeOnly bool) ([]*entity.SaleBanner, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.SaleBanner, error)
	Create(ctx context.Context, banner *entity.SaleBanner) error
	Update(ctx context.Context, banner *entity.SaleBanner) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// GalleryImageRepository persists gallery images.
type GalleryImageRepository interface {
	List(ctx context.Context, activeOnly bool) ([]*entity.GalleryImage, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.GalleryImage, error)
	Create(ctx context.Context, image *entity.GalleryImage) error
	Update(ctx context.Context, image *entity.GalleryImage) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// HeroImageRepository persists the home carousel.
type HeroImageRepository interface {
	List(ctx context.Context, activeOnly bool) ([]*entity.HeroImage, error)

	// ReplaceAll deletes the current set and inserts images. Callers run it inside a transaction.
	ReplaceAll(ctx context.Context, images []*entity.HeroImage) error
}
