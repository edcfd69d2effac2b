package handler

import (
	"log/slog"
	"time"

	"storefront/internal/delivery/api/response"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// ContentHandlerParams holds dependencies for ContentHandler, injected by Fx.
type ContentHandlerParams struct {
	fx.In

	ContentUC usecase.ContentUsecase
	Logger    *slog.Logger
}

// ContentHandler serves sale banners, the gallery and the hero carousel.
type ContentHandler struct {
	contentUC usecase.ContentUsecase
	logger    *slog.Logger
}

// NewContentHandler is the constructor for ContentHandler.
func NewContentHandler(params ContentHandlerParams) *ContentHandler {
	return &ContentHandler{
		contentUC: params.ContentUC,
		logger:    params.Logger,
	}
}

// BannerRequest is the editable state of a sale banner.
type BannerRequest struct {
	Title        string     `json:"title" validate:"required,max=200"`
	Subtitle     string     `json:"subtitle" validate:"max=200"`
	Description  string     `json:"description" validate:"max=2000"`
	DiscountText string     `json:"discount_text" validate:"max=100"`
	ImageURL     string     `json:"image_url" validate:"max=1000"`
	LinkURL      string     `json:"link_url" validate:"max=1000"`
	DisplayOrder int        `json:"display_order" validate:"gte=0"`
	IsActive     *bool      `json:"is_active"`
	StartsAt     *time.Time `json:"starts_at"`
	EndsAt       *time.Time `json:"ends_at"`
}

func (r *BannerRequest) input() usecase.BannerInput {
	return usecase.BannerInput{
		Title:        r.Title,
		Subtitle:     r.Subtitle,
		Description:  r.Description,
		DiscountText: r.DiscountText,
		ImageURL:     r.ImageURL,
		LinkURL:      r.LinkURL,
		DisplayOrder: r.DisplayOrder,
		IsActive:     activeOrDefault(r.IsActive),
		StartsAt:     r.StartsAt,
		EndsAt:       r.EndsAt,
	}
}

// BannerActiveRequest toggles a banner.
type BannerActiveRequest struct {
	IsActive bool `json:"is_active"`
}

// GalleryImageRequest is the editable state of a gallery image.
type GalleryImageRequest struct {
	Title        string `json:"title" validate:"max=200"`
	ImageURL     string `json:"image_url" validate:"required,max=1000"`
	AltText      string `json:"alt_text" validate:"max=300"`
	DisplayOrder int    `json:"display_order" validate:"gte=0"`
	IsActive     *bool  `json:"is_active"`
}

func (r *GalleryImageRequest) input() usecase.GalleryImageInput {
	return usecase.GalleryImageInput{
		Title:        r.Title,
		ImageURL:     r.ImageURL,
		AltText:      r.AltText,
		DisplayOrder: r.DisplayOrder,
		IsActive:     activeOrDefault(r.IsActive),
	}
}

// HeroImageRequest is one slide of the hero carousel.
type HeroImageRequest struct {
	ImageURL     string `json:"image_url" validate:"required,max=1000"`
	AltText      string `json:"alt_text" validate:"max=300"`
	DisplayOrder int    `json:"display_order" validate:"gte=0"`
	IsActive     *bool  `json:"is_active"`
}

// ReplaceHeroImagesRequest replaces the whole carousel.
type ReplaceHeroImagesRequest struct {
	Images []HeroImageRequest `json:"images" validate:"max=20,dive"`
}

func activeOrDefault(v *bool) bool {
	if v == nil {
		return true
	}

	return *v
}

// ListLiveBanners is the public banner strip.
func (h *ContentHandler) ListLiveBanners(c echo.Context) error {
	banners, err := h.contentUC.ListLiveBanners(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, banners)
}

func (h *ContentHandler) ListBanners(c echo.Context) error {
	banners, err := h.contentUC.ListBanners(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, banners)
}

func (h *ContentHandler) CreateBanner(c echo.Context) error {
	var req BannerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	banner, err := h.contentUC.CreateBanner(c.Request().Context(), req.input())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Created(c, banner)
}

func (h *ContentHandler) UpdateBanner(c echo.Context) error {
	bannerID, err := paramID(c, "id", "banner")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req BannerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	banner, err := h.contentUC.UpdateBanner(c.Request().Context(), bannerID, req.input())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, banner)
}

func (h *ContentHandler) SetBannerActive(c echo.Context) error {
	bannerID, err := paramID(c, "id", "banner")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req BannerActiveRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	banner, err := h.contentUC.SetBannerActive(c.Request().Context(), bannerID, req.IsActive)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, banner)
}

func (h *ContentHandler) DeleteBanner(c echo.Context) error {
	bannerID, err := paramID(c, "id", "banner")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	if err := h.contentUC.DeleteBanner(c.Request().Context(), bannerID); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Message(c, "Banner deleted")
}

// ListGalleryImages returns active images; the admin variant returns all of them.
func (h *ContentHandler) ListGalleryImages(c echo.Context) error {
	return h.listGallery(c, true)
}

func (h *ContentHandler) AdminListGalleryImages(c echo.Context) error {
	return h.listGallery(c, false)
}

func (h *ContentHandler) listGallery(c echo.Context, activeOnly bool) error {
	images, err := h.contentUC.ListGalleryImages(c.Request().Context(), activeOnly)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, images)
}

func (h *ContentHandler) CreateGalleryImage(c echo.Context) error {
	var req GalleryImageRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	image, err := h.contentUC.CreateGalleryImage(c.Request().Context(), req.input())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Created(c, image)
}

func (h *ContentHandler) UpdateGalleryImage(c echo.Context) error {
	imageID, err := paramID(c, "id", "gallery image")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req GalleryImageRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	image, err := h.contentUC.UpdateGalleryImage(c.Request().Context(), imageID, req.input())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, image)
}

func (h *ContentHandler) DeleteGalleryImage(c echo.Context) error {
	imageID, err := paramID(c, "id", "gallery image")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	if err := h.contentUC.DeleteGalleryImage(c.Request().Context(), imageID); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Message(c, "Gallery image deleted")
}

func (h *ContentHandler) ListHeroImages(c echo.Context) error {
	return h.listHero(c, true)
}

func (h *ContentHandler) AdminListHeroImages(c echo.Context) error {
	return h.listHero(c, false)
}

func (h *ContentHandler) listHero(c echo.Context, activeOnly bool) error {
	images, err := h.contentUC.ListHeroImages(c.Request().Context(), activeOnly)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, images)
}

func (h *ContentHandler) ReplaceHeroImages(c echo.Context) error {
	var req ReplaceHeroImagesRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	inputs := make([]usecase.HeroImageInput, 0, len(req.Images))
	for _, img := range req.Images {
		inputs = append(inputs, usecase.HeroImageInput{
			ImageURL:     img.ImageURL,
			AltText:      img.AltText,
			DisplayOrder: img.DisplayOrder,
			IsActive:     activeOrDefault(img.IsActive),
		})
	}

	images, err := h.contentUC.ReplaceHeroImages(c.Request().Context(), inputs)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, images)
}
