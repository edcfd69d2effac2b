package postgres

import (
	"context"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// liveBannerSQL matches active banners inside their date window.
const liveBannerSQL = "is_active AND (starts_at IS NULL OR starts_at <= NOW()) AND (ends_at IS NULL OR ends_at > NOW())"

// --- Sale banners ---

type saleBannerRepository struct {
	db *gorm.DB
}

// NewSaleBannerRepository is the constructor for saleBannerRepository.
func NewSaleBannerRepository(db *gorm.DB) repository.SaleBannerRepository {
	return &saleBannerRepository{db: db}
}

func (repo *saleBannerRepository) List(ctx context.Context, activeOnly bool) ([]*entity.SaleBanner, error) {
	query := repo.db.WithContext(ctx)
	if activeOnly {
		query = query.Where(liveBannerSQL)
	}

	var bannerModels []*model.SaleBannerModel
	if err := query.Order("display_order ASC, created_at DESC").Find(&bannerModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list sale banners")
	}

	banners := make([]*entity.SaleBanner, 0, len(bannerModels))
	for _, bannerM := range bannerModels {
		banners = append(banners, toSaleBannerDomain(bannerM))
	}

	return banners, nil
}

func (repo *saleBannerRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.SaleBanner, error) {
	var bannerM model.SaleBannerModel

	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&bannerM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrBannerNotFound
		}

		return nil, errors.Wrap(err, "failed to find sale banner")
	}

	return toSaleBannerDomain(&bannerM), nil
}

func (repo *saleBannerRepository) Create(ctx context.Context, banner *entity.SaleBanner) error {
	bannerM := fromSaleBannerDomain(banner)

	if err := repo.db.WithContext(ctx).Create(bannerM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to create sale banner")
	}

	banner.ID = bannerM.ID
	banner.CreatedAt = bannerM.CreatedAt
	banner.UpdatedAt = bannerM.UpdatedAt

	return nil
}

func (repo *saleBannerRepository) Update(ctx context.Context, banner *entity.SaleBanner) error {
	result := repo.db.WithContext(ctx).
		Model(&model.SaleBannerModel{}).
		Where("id = ?", banner.ID).
		Updates(map[string]any{
			"title":         banner.Title,
			"subtitle":      banner.Subtitle,
			"description":   banner.Description,
			"discount_text": banner.DiscountText,
			"image_url":     banner.ImageURL,
			"link_url":      banner.LinkURL,
			"display_order": banner.DisplayOrder,
			"is_active":     banner.IsActive,
			"starts_at":     banner.StartsAt,
			"ends_at":       banner.EndsAt,
		})

	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update sale banner")
	}

	if result.RowsAffected == 0 {
		return repository.ErrBannerNotFound
	}

	return nil
}

func (repo *saleBannerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Where("id = ?", id).Delete(&model.SaleBannerModel{})
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete sale banner")
	}

	if result.RowsAffected == 0 {
		return repository.ErrBannerNotFound
	}

	return nil
}

// --- Gallery images ---

type galleryImageRepository struct {
	db *gorm.DB
}

// NewGalleryImageRepository is the constructor for galleryImageRepository.
func NewGalleryImageRepository(db *gorm.DB) repository.GalleryImageRepository {
	return &galleryImageRepository{db: db}
}

func (repo *galleryImageRepository) List(ctx context.Context, activeOnly bool) ([]*entity.GalleryImage, error) {
	query := repo.db.WithContext(ctx)
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var imageModels []*model.GalleryImageModel
	if err := query.Order("display_order ASC, created_at DESC").Find(&imageModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list gallery images")
	}

	images := make([]*entity.GalleryImage, 0, len(imageModels))
	for _, imageM := range imageModels {
		images = append(images, toGalleryImageDomain(imageM))
	}

	return images, nil
}

func (repo *galleryImageRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.GalleryImage, error) {
	var imageM model.GalleryImageModel

	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&imageM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrGalleryImageNotFound
		}

		return nil, errors.Wrap(err, "failed to find gallery image")
	}

	return toGalleryImageDomain(&imageM), nil
}

func (repo *galleryImageRepository) Create(ctx context.Context, image *entity.GalleryImage) error {
	imageM := &model.GalleryImageModel{
		ID:           image.ID,
		Title:        image.Title,
		ImageURL:     image.ImageURL,
		AltText:      image.AltText,
		DisplayOrder: image.DisplayOrder,
		IsActive:     image.IsActive,
	}

	if err := repo.db.WithContext(ctx).Create(imageM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to create gallery image")
	}

	image.ID = imageM.ID
	image.CreatedAt = imageM.CreatedAt
	image.UpdatedAt = imageM.UpdatedAt

	return nil
}

func (repo *galleryImageRepository) Update(ctx context.Context, image *entity.GalleryImage) error {
	result := repo.db.WithContext(ctx).
		Model(&model.GalleryImageModel{}).
		Where("id = ?", image.ID).
		Updates(map[string]any{
			"title":         image.Title,
			"image_url":     image.ImageURL,
			"alt_text":      image.AltText,
			"display_order": image.DisplayOrder,
			"is_active":     image.IsActive,
		})

	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update gallery image")
	}

	if result.RowsAffected == 0 {
		return repository.ErrGalleryImageNotFound
	}

	return nil
}

func (repo *galleryImageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Where("id = ?", id).Delete(&model.GalleryImageModel{})
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete gallery image")
	}

	if result.RowsAffected == 0 {
		return repository.ErrGalleryImageNotFound
	}

	return nil
}

// --- Hero images ---

type heroImageRepository struct {
	db *gorm.DB
}

// NewHeroImageRepository is the constructor for heroImageRepository.
func NewHeroImageRepository(db *gorm.DB) repository.HeroImageRepository {
	return &heroImageRepository{db: db}
}

func (repo *heroImageRepository) List(ctx context.Context, activeOnly bool) ([]*entity.HeroImage, error) {
	query := repo.db.WithContext(ctx)
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var imageModels []*model.HeroImageModel
	if err := query.Order("display_order ASC, created_at ASC").Find(&imageModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list hero images")
	}

	images := make([]*entity.HeroImage, 0, len(imageModels))
	for _, imageM := range imageModels {
		images = append(images, toHeroImageDomain(imageM))
	}

	return images, nil
}

// ReplaceAll deletes the current set and inserts images.
func (repo *heroImageRepository) ReplaceAll(ctx context.Context, images []*entity.HeroImage) error {
	db := repo.db.WithContext(ctx)

	if err := db.Where("1 = 1").Delete(&model.HeroImageModel{}).Error; err != nil {
		return errors.Wrap(err, "failed to clear hero images")
	}

	if len(images) == 0 {
		return nil
	}

	imageModels := make([]*model.HeroImageModel, 0, len(images))
	for _, image := range images {
		imageModels = append(imageModels, &model.HeroImageModel{
			ImageURL:     image.ImageURL,
			AltText:      image.AltText,
			DisplayOrder: image.DisplayOrder,
			IsActive:     image.IsActive,
		})
	}

	if err := db.Create(&imageModels).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to save hero images")
	}

	for i, imageM := range imageModels {
		images[i].ID = imageM.ID
		images[i].CreatedAt = imageM.CreatedAt
		images[i].UpdatedAt = imageM.UpdatedAt
	}

	return nil
}

// --- Mapper Functions ---

func toSaleBannerDomain(data *model.SaleBannerModel) *entity.SaleBanner {
	if data == nil {
		return nil
	}

	return &entity.SaleBanner{
		ID:           data.ID,
		Title:        data.Title,
		Subtitle:     data.Subtitle,
		Description:  data.Description,
		DiscountText: data.DiscountText,
		ImageURL:     data.ImageURL,
		LinkURL:      data.LinkURL,
		DisplayOrder: data.DisplayOrder,
		IsActive:     data.IsActive,
		StartsAt:     data.StartsAt,
		EndsAt:       data.EndsAt,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}

func fromSaleBannerDomain(data *entity.SaleBanner) *model.SaleBannerModel {
	if data == nil {
		return nil
	}

	return &model.SaleBannerModel{
		ID:           data.ID,
		Title:        data.Title,
		Subtitle:     data.Subtitle,
		Description:  data.Description,
		DiscountText: data.DiscountText,
		ImageURL:     data.ImageURL,
		LinkURL:      data.LinkURL,
		DisplayOrder: data.DisplayOrder,
		IsActive:     data.IsActive,
		StartsAt:     data.StartsAt,
		EndsAt:       data.EndsAt,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}

func toGalleryImageDomain(data *model.GalleryImageModel) *entity.GalleryImage {
	if data == nil {
		return nil
	}

	return &entity.GalleryImage{
		ID:           data.ID,
		Title:        data.Title,
		ImageURL:     data.ImageURL,
		AltText:      data.AltText,
		DisplayOrder: data.DisplayOrder,
		IsActive:     data.IsActive,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}

func toHeroImageDomain(data *model.HeroImageModel) *entity.HeroImage {
	if data == nil {
		return nil
	}

	return &entity.HeroImage{
		ID:           data.ID,
		ImageURL:     data.ImageURL,
		AltText:      data.AltText,
		DisplayOrder: data.DisplayOrder,
		IsActive:     data.IsActive,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}
