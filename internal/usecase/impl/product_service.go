package impl

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"time"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type productService struct {
	productRepo repository.ProductRepository
	exporter    service.SpreadsheetExporter
	logger      *slog.Logger
	now         func() time.Time
}

// NewProductService creates the catalog use case.
func NewProductService(productRepo repository.ProductRepository, exporter service.SpreadsheetExporter, logger *slog.Logger) usecase.ProductUsecase {
	return &productService{
		productRepo: productRepo,
		exporter:    exporter,
		logger:      logger,
		now:         time.Now,
	}
}

func (s *productService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, s.logger)
}

func (s *productService) ListProducts(ctx context.Context, filter entity.ProductFilter) (*entity.Page[*entity.Product], error) {
	filter.IncludeInactive = false

	return s.list(ctx, filter)
}

func (s *productService) AdminListProducts(ctx context.Context, filter entity.ProductFilter) (*entity.Page[*entity.Product], error) {
	filter.IncludeInactive = true

	return s.list(ctx, filter)
}

func (s *productService) list(ctx context.Context, filter entity.ProductFilter) (*entity.Page[*entity.Product], error) {
	filter.Pagination = filter.Pagination.Normalize()
	filter.Search = strings.TrimSpace(filter.Search)
	filter.Category = strings.TrimSpace(filter.Category)

	switch filter.Sort {
	case entity.ProductSortFeatured, entity.ProductSortPriceAsc, entity.ProductSortPriceDesc,
		entity.ProductSortRating, entity.ProductSortNewest:
	default:
		filter.Sort = entity.ProductSortFeatured
	}

	products, total, err := s.productRepo.List(ctx, filter)
	if err != nil {
		return nil, dataError(err, "failed to fetch products")
	}

	return entity.NewPage(products, total, filter.Pagination), nil
}

// GetProduct hides inactive products from the storefront.
func (s *productService) GetProduct(ctx context.Context, productID uuid.UUID) (*entity.Product, error) {
	product, err := s.findProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !product.IsActive {
		return nil, errors.Wrap(domainerrors.ErrProductNotFound, "product is inactive")
	}

	return product, nil
}

func (s *productService) Categories(ctx context.Context) ([]string, error) {
	categories, err := s.productRepo.Categories(ctx)
	if err != nil {
		return nil, dataError(err, "failed to fetch categories")
	}
	if categories == nil {
		categories = []string{}
	}

	return categories, nil
}

func (s *productService) CreateProduct(ctx context.Context, input usecase.ProductInput) (*entity.Product, error) {
	if err := validateProductInput(input); err != nil {
		return nil, err
	}

	now := s.now()
	product := &entity.Product{ID: uuid.New(), CreatedAt: now}
	applyProductInput(product, input, now)

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, dataError(err, "failed to create product")
	}
	s.log(ctx).Info("Product created", slog.Any("productID", product.ID), slog.String("name", product.Name))

	return product, nil
}

func (s *productService) UpdateProduct(ctx context.Context, productID uuid.UUID, input usecase.ProductInput) (*entity.Product, error) {
	if err := validateProductInput(input); err != nil {
		return nil, err
	}

	product, err := s.findProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	applyProductInput(product, input, s.now())
	if product.OnSale && product.SalePrice != nil && !product.SalePrice.LessThan(product.Price) {
		return nil, errors.Wrap(domainerrors.ErrInvalidSale, "price is at or below the current sale price")
	}

	return s.save(ctx, product, "failed to update product")
}

func (s *productService) DeleteProduct(ctx context.Context, productID uuid.UUID) error {
	if err := s.productRepo.SoftDelete(ctx, productID); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return errors.Wrap(domainerrors.ErrProductNotFound, "product not found")
		}

		return dataError(err, "failed to delete product")
	}
	s.log(ctx).Info("Product deleted", slog.Any("productID", productID))

	return nil
}

func (s *productService) SetFeatured(ctx context.Context, productID uuid.UUID, featured bool) (*entity.Product, error) {
	product, err := s.findProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	product.IsFeatured = featured
	product.UpdatedAt = s.now()

	return s.save(ctx, product, "failed to update product")
}

func (s *productService) SetNew(ctx context.Context, productID uuid.UUID, isNew bool) (*entity.Product, error) {
	product, err := s.findProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	product.IsNew = isNew
	product.UpdatedAt = s.now()

	return s.save(ctx, product, "failed to update product")
}

func (s *productService) SetSale(ctx context.Context, productID uuid.UUID, input usecase.SaleInput) (*entity.Product, error) {
	product, err := s.findProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	if !input.OnSale {
		product.OnSale = false
		product.SalePrice = nil
		product.SaleStartsAt = nil
		product.SaleEndsAt = nil
	} else {
		if input.SalePrice == nil || !input.SalePrice.IsPositive() || !input.SalePrice.LessThan(product.Price) {
			return nil, errors.Wrap(domainerrors.ErrInvalidSale, "sale price must be positive and below price")
		}
		if input.SaleStartsAt != nil && input.SaleEndsAt != nil && !input.SaleEndsAt.After(*input.SaleStartsAt) {
			return nil, errors.Wrap(domainerrors.ErrInvalidSale, "sale ends before it starts")
		}

		price := *input.SalePrice
		product.OnSale = true
		product.SalePrice = &price
		product.SaleStartsAt = input.SaleStartsAt
		product.SaleEndsAt = input.SaleEndsAt
	}
	product.UpdatedAt = s.now()

	return s.save(ctx, product, "failed to update product sale")
}

func (s *productService) ExportProducts(ctx context.Context, w io.Writer) error {
	products, err := s.productRepo.ListAll(ctx)
	if err != nil {
		return dataError(err, "failed to export products")
	}

	if err := s.exporter.ExportProducts(w, products); err != nil {
		return errors.Wrap(domainerrors.ErrInternalError, err.Error())
	}
	s.log(ctx).Info("Products exported", slog.Int("count", len(products)))

	return nil
}

func (s *productService) findProduct(ctx context.Context, productID uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, errors.Wrap(domainerrors.ErrProductNotFound, "product not found")
		}

		return nil, dataError(err, "failed to fetch product")
	}

	return product, nil
}

func (s *productService) save(ctx context.Context, product *entity.Product, action string) (*entity.Product, error) {
	if err := s.productRepo.Update(ctx, product); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, errors.Wrap(domainerrors.ErrProductNotFound, "product not found")
		}

		return nil, dataError(err, action)
	}

	return product, nil
}

func validateProductInput(input usecase.ProductInput) error {
	switch {
	case strings.TrimSpace(input.Name) == "":
		return invalidInput("Product name is required")
	case strings.TrimSpace(input.Category) == "":
		return invalidInput("Category is required")
	case !input.Price.IsPositive():
		return invalidInput("Price must be greater than zero")
	case input.Stock < 0:
		return invalidInput("Stock cannot be negative")
	}

	return nil
}

func applyProductInput(product *entity.Product, input usecase.ProductInput, now time.Time) {
	product.Name = strings.TrimSpace(input.Name)
	product.Description = strings.TrimSpace(input.Description)
	product.Category = strings.TrimSpace(input.Category)
	product.Capacity = strings.TrimSpace(input.Capacity)
	product.Material = strings.TrimSpace(input.Material)
	product.ImageURL = strings.TrimSpace(input.ImageURL)
	product.Price = input.Price
	product.Stock = input.Stock
	product.IsFeatured = input.IsFeatured
	product.IsNew = input.IsNew
	product.IsActive = input.IsActive
	product.UpdatedAt = now
}
