package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type contentService struct {
	txManager   repository.TransactionManager
	bannerRepo  repository.SaleBannerRepository
	galleryRepo repository.GalleryImageRepository
	heroRepo    repository.HeroImageRepository
	logger      *slog.Logger
	now         func() time.Time
}

// ContentServiceParams holds dependencies for ContentService, injected by Fx.
type ContentServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	BannerRepo  repository.SaleBannerRepository
	GalleryRepo repository.GalleryImageRepository
	HeroRepo    repository.HeroImageRepository
	Logger      *slog.Logger
}

// NewContentService creates the merchandising content use case.
func NewContentService(params ContentServiceParams) usecase.ContentUsecase {
	return &contentService{
		txManager:   params.TxManager,
		bannerRepo:  params.BannerRepo,
		galleryRepo: params.GalleryRepo,
		heroRepo:    params.HeroRepo,
		logger:      params.Logger,
		now:         time.Now,
	}
}

func (s *contentService) ListLiveBanners(ctx context.Context) ([]*entity.SaleBanner, error) {
	banners, err := s.bannerRepo.List(ctx, true)
	if err != nil {
		return nil, dataError(err, "failed to fetch sale banners")
	}

	now := s.now()
	live := make([]*entity.SaleBanner, 0, len(banners))
	for _, banner := range banners {
		if banner.IsLive(now) {
			live = append(live, banner)
		}
	}

	return live, nil
}

func (s *contentService) ListBanners(ctx context.Context) ([]*entity.SaleBanner, error) {
	banners, err := s.bannerRepo.List(ctx, false)
	if err != nil {
		return nil, dataError(err, "failed to fetch sale banners")
	}
	if banners == nil {
		banners = []*entity.SaleBanner{}
	}

	return banners, nil
}

func (s *contentService) CreateBanner(ctx context.Context, input usecase.BannerInput) (*entity.SaleBanner, error) {
	if err := validateBanner(input); err != nil {
		return nil, err
	}

	now := s.now()
	banner := &entity.SaleBanner{ID: uuid.New(), CreatedAt: now}
	applyBannerInput(banner, input, now)

	if err := s.bannerRepo.Create(ctx, banner); err != nil {
		return nil, dataError(err, "failed to create sale banner")
	}

	return banner, nil
}

func (s *contentService) UpdateBanner(ctx context.Context, bannerID uuid.UUID, input usecase.BannerInput) (*entity.SaleBanner, error) {
	if err := validateBanner(input); err != nil {
		return nil, err
	}

	banner, err := s.findBanner(ctx, bannerID)
	if err != nil {
		return nil, err
	}

	applyBannerInput(banner, input, s.now())
	if err := s.bannerRepo.Update(ctx, banner); err != nil {
		return nil, bannerError(err, "failed to update sale banner")
	}

	return banner, nil
}

func (s *contentService) SetBannerActive(ctx context.Context, bannerID uuid.UUID, active bool) (*entity.SaleBanner, error) {
	banner, err := s.findBanner(ctx, bannerID)
	if err != nil {
		return nil, err
	}

	banner.IsActive = active
	banner.UpdatedAt = s.now()
	if err := s.bannerRepo.Update(ctx, banner); err != nil {
		return nil, bannerError(err, "failed to update sale banner")
	}

	return banner, nil
}

func (s *contentService) DeleteBanner(ctx context.Context, bannerID uuid.UUID) error {
	if err := s.bannerRepo.Delete(ctx, bannerID); err != nil {
		return bannerError(err, "failed to delete sale banner")
	}

	return nil
}

func (s *contentService) findBanner(ctx context.Context, bannerID uuid.UUID) (*entity.SaleBanner, error) {
	banner, err := s.bannerRepo.FindByID(ctx, bannerID)
	if err != nil {
		return nil, bannerError(err, "failed to fetch sale banner")
	}

	return banner, nil
}

func (s *contentService) ListGalleryImages(ctx context.Context, activeOnly bool) ([]*entity.GalleryImage, error) {
	images, err := s.galleryRepo.List(ctx, activeOnly)
	if err != nil {
		return nil, dataError(err, "failed to fetch gallery images")
	}
	if images == nil {
		images = []*entity.GalleryImage{}
	}

	return images, nil
}

func (s *contentService) CreateGalleryImage(ctx context.Context, input usecase.GalleryImageInput) (*entity.GalleryImage, error) {
	if strings.TrimSpace(input.ImageURL) == "" {
		return nil, invalidInput("Image URL is required")
	}

	now := s.now()
	image := &entity.GalleryImage{ID: uuid.New(), CreatedAt: now}
	applyGalleryInput(image, input, now)

	if err := s.galleryRepo.Create(ctx, image); err != nil {
		return nil, dataError(err, "failed to create gallery image")
	}

	return image, nil
}

func (s *contentService) UpdateGalleryImage(ctx context.Context, imageID uuid.UUID, input usecase.GalleryImageInput) (*entity.GalleryImage, error) {
	if strings.TrimSpace(input.ImageURL) == "" {
		return nil, invalidInput("Image URL is required")
	}

	image, err := s.galleryRepo.FindByID(ctx, imageID)
	if err != nil {
		return nil, galleryError(err, "failed to fetch gallery image")
	}

	applyGalleryInput(image, input, s.now())
	if err := s.galleryRepo.Update(ctx, image); err != nil {
		return nil, galleryError(err, "failed to update gallery image")
	}

	return image, nil
}

func (s *contentService) DeleteGalleryImage(ctx context.Context, imageID uuid.UUID) error {
	if err := s.galleryRepo.Delete(ctx, imageID); err != nil {
		return galleryError(err, "failed to delete gallery image")
	}

	return nil
}

func (s *contentService) ListHeroImages(ctx context.Context, activeOnly bool) ([]*entity.HeroImage, error) {
	images, err := s.heroRepo.List(ctx, activeOnly)
	if err != nil {
		return nil, dataError(err, "failed to fetch hero images")
	}
	if images == nil {
		images = []*entity.HeroImage{}
	}

	return images, nil
}

func (s *contentService) ReplaceHeroImages(ctx context.Context, inputs []usecase.HeroImageInput) ([]*entity.HeroImage, error) {
	now := s.now()
	images := make([]*entity.HeroImage, 0, len(inputs))
	for i, input := range inputs {
		url := strings.TrimSpace(input.ImageURL)
		if url == "" {
			return nil, invalidInput("Every hero image needs an image URL")
		}

		order := input.DisplayOrder
		if order == 0 {
			order = i + 1
		}
		images = append(images, &entity.HeroImage{
			ID:           uuid.New(),
			ImageURL:     url,
			AltText:      strings.TrimSpace(input.AltText),
			DisplayOrder: order,
			IsActive:     input.IsActive,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
	}

	err := s.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		if err := repos.HeroImageRepo().ReplaceAll(ctx, images); err != nil {
			return dataError(err, "failed to replace hero images")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	deliverycontext.GetLoggerOrDefault(ctx, s.logger).Info("Hero images replaced", slog.Int("count", len(images)))

	return images, nil
}

func validateBanner(input usecase.BannerInput) error {
	if strings.TrimSpace(input.Title) == "" {
		return invalidInput("Banner title is required")
	}
	if input.StartsAt != nil && input.EndsAt != nil && !input.EndsAt.After(*input.StartsAt) {
		return invalidInput("Banner must end after it starts")
	}

	return nil
}

func applyBannerInput(banner *entity.SaleBanner, input usecase.BannerInput, now time.Time) {
	banner.Title = strings.TrimSpace(input.Title)
	banner.Subtitle = strings.TrimSpace(input.Subtitle)
	banner.Description = strings.TrimSpace(input.Description)
	banner.DiscountText = strings.TrimSpace(input.DiscountText)
	banner.ImageURL = strings.TrimSpace(input.ImageURL)
	banner.LinkURL = strings.TrimSpace(input.LinkURL)
	banner.DisplayOrder = input.DisplayOrder
	banner.IsActive = input.IsActive
	banner.StartsAt = input.StartsAt
	banner.EndsAt = input.EndsAt
	banner.UpdatedAt = now
}

func applyGalleryInput(image *entity.GalleryImage, input usecase.GalleryImageInput, now time.Time) {
	image.Title = strings.TrimSpace(input.Title)
	image.ImageURL = strings.TrimSpace(input.ImageURL)
	image.AltText = strings.TrimSpace(input.AltText)
	image.DisplayOrder = input.DisplayOrder
	image.IsActive = input.IsActive
	image.UpdatedAt = now
}

func bannerError(err error, action string) error {
	if errors.Is(err, repository.ErrBannerNotFound) {
		return errors.Wrap(domainerrors.ErrBannerNotFound, "banner not found")
	}

	return dataError(err, action)
}

func galleryError(err error, action string) error {
	if errors.Is(err, repository.ErrGalleryImageNotFound) {
		return errors.Wrap(domainerrors.ErrGalleryImageNotFound, "gallery image not found")
	}

	return dataError(err, action)
}
