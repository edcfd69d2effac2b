package repository

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var (
	// ErrProductNotFound is returned when a product is missing or soft-deleted.
	ErrProductNotFound = errors.New("product not found")
	// ErrInsufficientStock is returned when a conditional stock decrement matches no row.
	ErrInsufficientStock = errors.New("insufficient stock")
)

// ProductRepository persists the catalog.
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)

	// List returns one page of products matching filter.
	List(ctx context.Context, filter entity.ProductFilter) ([]*entity.Product, int64, error)

	// ListAll returns every non-deleted product ordered by name.
	ListAll(ctx context.Context) ([]*entity.Product, error)

	// Categories returns the distinct categories of active products.
	Categories(ctx context.Context) ([]string, error)

	Create(ctx context.Context, product *entity.Product) error
	Update(ctx context.Context, product *entity.Product) error
	SoftDelete(ctx context.Context, id uuid.UUID) error

	// DecrementStock subtracts qty only while stock >= qty.
	DecrementStock(ctx context.Context, id uuid.UUID, qty int) error

	// RecomputeRating rewrites rating and review_count from the reviews table in one statement.
	RecomputeRating(ctx context.Context, id uuid.UUID) error

	Count(ctx context.Context) (int64, error)
	CountLowStock(ctx context.Context, threshold int) (int64, error)
}
