package postgres

import (
	"context"
	"strings"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// saleActiveSQL is true while a product's sale price applies.
const saleActiveSQL = "(on_sale AND sale_price IS NOT NULL" +
	" AND (sale_starts_at IS NULL OR sale_starts_at <= NOW())" +
	" AND (sale_ends_at IS NULL OR sale_ends_at > NOW()))"

const effectivePriceSQL = "CASE WHEN " + saleActiveSQL + " THEN sale_price ELSE price END"

// productRepository implements the repository.ProductRepository interface.
type productRepository struct {
	db *gorm.DB
}

// NewProductRepository is the constructor for productRepository.
func NewProductRepository(db *gorm.DB) repository.ProductRepository {
	return &productRepository{
		db: db,
	}
}

// FindByID retrieves a non-deleted product.
func (repo *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var productM model.ProductModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&productM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to find product by ID")
	}

	return toProductDomain(&productM), nil
}

// List returns one page of products matching filter.
func (repo *productRepository) List(ctx context.Context, filter entity.ProductFilter) ([]*entity.Product, int64, error) {
	page := filter.Pagination.Normalize()
	query := repo.db.WithContext(ctx).Model(&model.ProductModel{})

	if !filter.IncludeInactive {
		query = query.Where("is_active = ?", true)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + search + "%"
		query = query.Where("name ILIKE ? OR description ILIKE ?", pattern, pattern)
	}
	if category := strings.TrimSpace(filter.Category); category != "" {
		query = query.Where("LOWER(category) = LOWER(?)", category)
	}
	if filter.Featured != nil {
		query = query.Where("is_featured = ?", *filter.Featured)
	}
	if filter.New != nil {
		query = query.Where("is_new = ?", *filter.New)
	}
	if filter.OnSale != nil {
		if *filter.OnSale {
			query = query.Where(saleActiveSQL)
		} else {
			query = query.Where("NOT " + saleActiveSQL)
		}
	}

	// Share the filters between the count and the page query.
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to count products")
	}

	var productModels []*model.ProductModel
	if err := query.
		Order(productOrder(filter.Sort)).
		Limit(page.Limit).
		Offset(page.Offset()).
		Find(&productModels).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to list products")
	}

	return toProductDomains(productModels), total, nil
}

func productOrder(sort entity.ProductSort) string {
	switch sort {
	case entity.ProductSortPriceAsc:
		return effectivePriceSQL + " ASC, id"
	case entity.ProductSortPriceDesc:
		return effectivePriceSQL + " DESC, id"
	case entity.ProductSortRating:
		return "rating DESC, review_count DESC, id"
	case entity.ProductSortNewest:
		return "created_at DESC, id"
	default:
		return "is_featured DESC, created_at DESC, id"
	}
}

// ListAll returns every non-deleted product ordered by name.
func (repo *productRepository) ListAll(ctx context.Context) ([]*entity.Product, error) {
	var productModels []*model.ProductModel

	if err := repo.db.WithContext(ctx).
		Order("name ASC").
		Find(&productModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list all products")
	}

	return toProductDomains(productModels), nil
}

// Categories returns the distinct categories of active products.
func (repo *productRepository) Categories(ctx context.Context) ([]string, error) {
	var categories []string

	if err := repo.db.WithContext(ctx).
		Model(&model.ProductModel{}).
		Where("is_active = ?", true).
		Distinct("category").
		Order("category").
		Pluck("category", &categories).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list categories")
	}

	return categories, nil
}

// Create persists a new product.
func (repo *productRepository) Create(ctx context.Context, product *entity.Product) error {
	productM := fromProductDomain(product)

	if err := repo.db.WithContext(ctx).Create(productM).Error; err != nil {
		if isCheckConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("product violates a catalog constraint")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create product")
	}

	product.ID = productM.ID
	product.CreatedAt = productM.CreatedAt
	product.UpdatedAt = productM.UpdatedAt

	return nil
}

// Update writes every editable column, including cleared sale fields.
func (repo *productRepository) Update(ctx context.Context, product *entity.Product) error {
	productM := fromProductDomain(product)

	result := repo.db.WithContext(ctx).
		Model(&model.ProductModel{}).
		Where("id = ?", product.ID).
		Updates(map[string]any{
			"name":           productM.Name,
			"description":    productM.Description,
			"category":       productM.Category,
			"capacity":       productM.Capacity,
			"material":       productM.Material,
			"image_url":      productM.ImageURL,
			"price":          productM.Price,
			"sale_price":     productM.SalePrice,
			"sale_starts_at": productM.SaleStartsAt,
			"sale_ends_at":   productM.SaleEndsAt,
			"on_sale":        productM.OnSale,
			"is_featured":    productM.IsFeatured,
			"is_new":         productM.IsNew,
			"is_active":      productM.IsActive,
			"stock":          productM.Stock,
		})

	if result.Error != nil {
		if isCheckConstraintViolation(result.Error) {
			return domainerrors.ErrValidationFailed.WrapMessage("product violates a catalog constraint")
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update product")
	}

	if result.RowsAffected == 0 {
		return repository.ErrProductNotFound
	}

	return nil
}

// SoftDelete hides the product. Order items keep their copied name and price.
func (repo *productRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.ProductModel{})

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete product")
	}

	if result.RowsAffected == 0 {
		return repository.ErrProductNotFound
	}

	return nil
}

// DecrementStock subtracts qty in a single conditional UPDATE so concurrent
// checkouts can never drive stock negative.
func (repo *productRepository) DecrementStock(ctx context.Context, id uuid.UUID, qty int) error {
	result := repo.db.WithContext(ctx).
		Model(&model.ProductModel{}).
		Where("id = ? AND stock >= ?", id, qty).
		UpdateColumn("stock", gorm.Expr("stock - ?", qty))

	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to reserve stock")
	}

	if result.RowsAffected == 0 {
		return repository.ErrInsufficientStock
	}

	return nil
}

// RecomputeRating rewrites rating and review_count from the reviews table.
func (repo *productRepository) RecomputeRating(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Exec(`
		UPDATE products SET
			rating = COALESCE((SELECT ROUND(AVG(r.rating)::numeric, 2) FROM reviews r WHERE r.product_id = products.id), 0),
			review_count = (SELECT COUNT(*) FROM reviews r WHERE r.product_id = products.id),
			updated_at = NOW()
		WHERE id = ?`, id)

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to recompute product rating")
	}

	if result.RowsAffected == 0 {
		return repository.ErrProductNotFound
	}

	return nil
}

// Count returns the number of non-deleted products.
func (repo *productRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := repo.db.WithContext(ctx).Model(&model.ProductModel{}).Count(&total).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count products")
	}

	return total, nil
}

// CountLowStock counts active products whose stock is at or below threshold.
func (repo *productRepository) CountLowStock(ctx context.Context, threshold int) (int64, error) {
	var total int64
	if err := repo.db.WithContext(ctx).
		Model(&model.ProductModel{}).
		Where("is_active = ? AND stock <= ?", true, threshold).
		Count(&total).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count low stock products")
	}

	return total, nil
}

// --- Mapper Functions ---

func toProductDomains(data []*model.ProductModel) []*entity.Product {
	products := make([]*entity.Product, 0, len(data))
	for _, productM := range data {
		products = append(products, toProductDomain(productM))
	}

	return products
}

// toProductDomain converts a GORM ProductModel to a domain Product entity.
func toProductDomain(data *model.ProductModel) *entity.Product {
	if data == nil {
		return nil
	}

	return &entity.Product{
		ID:           data.ID,
		Name:         data.Name,
		Description:  data.Description,
		Category:     data.Category,
		Capacity:     data.Capacity,
		Material:     data.Material,
		ImageURL:     data.ImageURL,
		Price:        data.Price,
		SalePrice:    data.SalePrice,
		SaleStartsAt: data.SaleStartsAt,
		SaleEndsAt:   data.SaleEndsAt,
		OnSale:       data.OnSale,
		IsFeatured:   data.IsFeatured,
		IsNew:        data.IsNew,
		IsActive:     data.IsActive && !data.DeletedAt.Valid,
		Stock:        data.Stock,
		Rating:       data.Rating,
		ReviewCount:  data.ReviewCount,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}

// fromProductDomain converts a domain Product entity to a GORM ProductModel.
func fromProductDomain(data *entity.Product) *model.ProductModel {
	if data == nil {
		return nil
	}

	return &model.ProductModel{
		ID:           data.ID,
		Name:         data.Name,
		Description:  data.Description,
		Category:     data.Category,
		Capacity:     data.Capacity,
		Material:     data.Material,
		ImageURL:     data.ImageURL,
		Price:        data.Price,
		SalePrice:    data.SalePrice,
		SaleStartsAt: data.SaleStartsAt,
		SaleEndsAt:   data.SaleEndsAt,
		OnSale:       data.OnSale,
		IsFeatured:   data.IsFeatured,
		IsNew:        data.IsNew,
		IsActive:     data.IsActive,
		Stock:        data.Stock,
		Rating:       data.Rating,
		ReviewCount:  data.ReviewCount,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}
