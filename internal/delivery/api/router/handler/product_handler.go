package handler

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"storefront/internal/delivery/api/response"
	"storefront/internal/domain/entity"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

// ProductHandlerParams holds dependencies for ProductHandler, injected by Fx.
type ProductHandlerParams struct {
	fx.In

	ProductUC usecase.ProductUsecase
	Logger    *slog.Logger
}

// ProductHandler serves the catalog and the admin product desk.
type ProductHandler struct {
	productUC usecase.ProductUsecase
	logger    *slog.Logger
	now       func() time.Time
}

// NewProductHandler is the constructor for ProductHandler.
func NewProductHandler(params ProductHandlerParams) *ProductHandler {
	return &ProductHandler{
		productUC: params.ProductUC,
		logger:    params.Logger,
		now:       time.Now,
	}
}

// ProductRequest is the full editable state of a product.
type ProductRequest struct {
	Name        string          `json:"name" validate:"required,max=200"`
	Description string          `json:"description" validate:"max=5000"`
	Category    string          `json:"category" validate:"required,max=100"`
	Capacity    string          `json:"capacity" validate:"max=50"`
	Material    string          `json:"material" validate:"max=100"`
	ImageURL    string          `json:"image_url" validate:"max=1000"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock" validate:"gte=0"`
	IsFeatured  bool            `json:"is_featured"`
	IsNew       bool            `json:"is_new"`
	IsActive    *bool           `json:"is_active"`
}

func (r *ProductRequest) input() usecase.ProductInput {
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}

	return usecase.ProductInput{
		Name:        strings.TrimSpace(r.Name),
		Description: r.Description,
		Category:    strings.TrimSpace(r.Category),
		Capacity:    r.Capacity,
		Material:    r.Material,
		ImageURL:    r.ImageURL,
		Price:       r.Price,
		Stock:       r.Stock,
		IsFeatured:  r.IsFeatured,
		IsNew:       r.IsNew,
		IsActive:    active,
	}
}

// FeaturedRequest toggles the featured flag.
type FeaturedRequest struct {
	IsFeatured bool `json:"is_featured"`
}

// NewArrivalRequest toggles the new-arrival flag.
type NewArrivalRequest struct {
	IsNew bool `json:"is_new"`
}

// SaleRequest turns a product's sale on or off.
type SaleRequest struct {
	OnSale       bool             `json:"on_sale"`
	SalePrice    *decimal.Decimal `json:"sale_price"`
	SaleStartsAt *time.Time       `json:"sale_starts_at"`
	SaleEndsAt   *time.Time       `json:"sale_ends_at"`
}

// ListProducts is the public catalog.
func (h *ProductHandler) ListProducts(c echo.Context) error {
	filter, err := productFilter(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	products, err := h.productUC.ListProducts(c.Request().Context(), filter)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, products)
}

// GetProduct returns one active product.
func (h *ProductHandler) GetProduct(c echo.Context) error {
	productID, err := paramID(c, "id", "product")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	product, err := h.productUC.GetProduct(c.Request().Context(), productID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, product)
}

// Categories lists the distinct categories of active products.
func (h *ProductHandler) Categories(c echo.Context) error {
	categories, err := h.productUC.Categories(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, categories)
}

// AdminListProducts includes inactive products.
func (h *ProductHandler) AdminListProducts(c echo.Context) error {
	filter, err := productFilter(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	products, err := h.productUC.AdminListProducts(c.Request().Context(), filter)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, products)
}

func (h *ProductHandler) CreateProduct(c echo.Context) error {
	var req ProductRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	product, err := h.productUC.CreateProduct(c.Request().Context(), req.input())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Created(c, product)
}

func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	productID, err := paramID(c, "id", "product")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req ProductRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	product, err := h.productUC.UpdateProduct(c.Request().Context(), productID, req.input())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, product)
}

func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	productID, err := paramID(c, "id", "product")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	if err := h.productUC.DeleteProduct(c.Request().Context(), productID); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Message(c, "Product deleted")
}

func (h *ProductHandler) SetFeatured(c echo.Context) error {
	productID, err := paramID(c, "id", "product")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req FeaturedRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	product, err := h.productUC.SetFeatured(c.Request().Context(), productID, req.IsFeatured)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, product)
}

func (h *ProductHandler) SetNew(c echo.Context) error {
	productID, err := paramID(c, "id", "product")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req NewArrivalRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	product, err := h.productUC.SetNew(c.Request().Context(), productID, req.IsNew)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, product)
}

func (h *ProductHandler) SetSale(c echo.Context) error {
	productID, err := paramID(c, "id", "product")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req SaleRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	product, err := h.productUC.SetSale(c.Request().Context(), productID, usecase.SaleInput{
		OnSale:       req.OnSale,
		SalePrice:    req.SalePrice,
		SaleStartsAt: req.SaleStartsAt,
		SaleEndsAt:   req.SaleEndsAt,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, product)
}

// ExportProducts downloads the catalog as an xlsx workbook.
func (h *ProductHandler) ExportProducts(c echo.Context) error {
	var buf bytes.Buffer
	if err := h.productUC.ExportProducts(c.Request().Context(), &buf); err != nil {
		return response.HandleAppError(c, err)
	}

	filename := fmt.Sprintf("products-%s.xlsx", h.now().Format("20060102"))
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))

	return c.Blob(http.StatusOK, xlsxContentType, buf.Bytes())
}

// productFilter reads search, category, flags, sort and paging from the query string.
func productFilter(c echo.Context) (entity.ProductFilter, error) {
	page, err := pagination(c)
	if err != nil {
		return entity.ProductFilter{}, err
	}

	filter := entity.ProductFilter{
		Search:     strings.TrimSpace(c.QueryParam("search")),
		Category:   strings.TrimSpace(c.QueryParam("category")),
		Sort:       entity.ProductSort(c.QueryParam("sort")),
		Pagination: page,
	}
	if strings.EqualFold(filter.Category, "all") {
		filter.Category = ""
	}

	if filter.Featured, err = optionalBool(c, "featured"); err != nil {
		return entity.ProductFilter{}, err
	}
	if filter.New, err = optionalBool(c, "new"); err != nil {
		return entity.ProductFilter{}, err
	}
	if filter.OnSale, err = optionalBool(c, "on_sale"); err != nil {
		return entity.ProductFilter{}, err
	}

	return filter, nil
}
