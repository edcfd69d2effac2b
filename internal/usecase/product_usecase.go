package usecase

import (
	"context"
	"io"
	"time"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductInput is the full editable state of a product.
type ProductInput struct {
	Name        string
	Description string
	Category    string
	Capacity    string
	Material    string
	ImageURL    string
	Price       decimal.Decimal
	Stock       int
	IsFeatured  bool
	IsNew       bool
	IsActive    bool
}

// SaleInput turns a product's sale on or off.
type SaleInput struct {
	OnSale       bool
	SalePrice    *decimal.Decimal
	SaleStartsAt *time.Time
	SaleEndsAt   *time.Time
}

// ProductUsecase serves the public catalog and the admin product desk.
type ProductUsecase interface {
	// ListProducts returns active products only.
	ListProducts(ctx context.Context, filter entity.ProductFilter) (*entity.Page[*entity.Product], error)
	GetProduct(ctx context.Context, productID uuid.UUID) (*entity.Product, error)
	Categories(ctx context.Context) ([]string, error)

	// AdminListProducts includes inactive products.
	AdminListProducts(ctx context.Context, filter entity.ProductFilter) (*entity.Page[*entity.Product], error)
	CreateProduct(ctx context.Context, input ProductInput) (*entity.Product, error)
	UpdateProduct(ctx context.Context, productID uuid.UUID, input ProductInput) (*entity.Product, error)
	DeleteProduct(ctx context.Context, productID uuid.UUID) error
	SetFeatured(ctx context.Context, productID uuid.UUID, featured bool) (*entity.Product, error)
	SetNew(ctx context.Context, productID uuid.UUID, isNew bool) (*entity.Product, error)
	SetSale(ctx context.Context, productID uuid.UUID, input SaleInput) (*entity.Product, error)
	ExportProducts(ctx context.Context, w io.Writer) error
}
