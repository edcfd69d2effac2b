package usecase

import (
	"context"
	"time"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

type BannerInput struct {
	Title        string
	Subtitle     string
	Description  string
	DiscountText string
	ImageURL     string
	LinkURL      string
	DisplayOrder int
	IsActive     bool
	StartsAt     *time.Time
	EndsAt       *time.Time
}

type GalleryImageInput struct {
	Title        string
	ImageURL     string
	AltText      string
	DisplayOrder int
	IsActive     bool
}

type HeroImageInput struct {
	ImageURL     string
	AltText      string
	DisplayOrder int
	IsActive     bool
}

// ContentUsecase manages the merchandising content of the storefront.
type ContentUsecase interface {
	// ListLiveBanners returns active banners whose window contains now.
	ListLiveBanners(ctx context.Context) ([]*entity.SaleBanner, error)
	ListBanners(ctx context.Context) ([]*entity.SaleBanner, error)
	CreateBanner(ctx context.Context, input BannerInput) (*entity.SaleBanner, error)
	UpdateBanner(ctx context.Context, bannerID uuid.UUID, input BannerInput) (*entity.SaleBanner, error)
	SetBannerActive(ctx context.Context, bannerID uuid.UUID, active bool) (*entity.SaleBanner, error)
	DeleteBanner(ctx context.Context, bannerID uuid.UUID) error

	ListGalleryImages(ctx context.Context, activeOnly bool) ([]*entity.GalleryImage, error)
	CreateGalleryImage(ctx context.Context, input GalleryImageInput) (*entity.GalleryImage, error)
	UpdateGalleryImage(ctx context.Context, imageID uuid.UUID, input GalleryImageInput) (*entity.GalleryImage, error)
	DeleteGalleryImage(ctx context.Context, imageID uuid.UUID) error

	ListHeroImages(ctx context.Context, activeOnly bool) ([]*entity.HeroImage, error)

	// ReplaceHeroImages swaps the whole carousel in one transaction.
	ReplaceHeroImages(ctx context.Context, inputs []HeroImageInput) ([]*entity.HeroImage, error)
}
