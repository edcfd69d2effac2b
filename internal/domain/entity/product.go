package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LowStockThreshold is the stock level at or below which a product is reported as running low.
const LowStockThreshold = 5

// Product is a sellable catalog item.
type Product struct {
	ID           uuid.UUID        `json:"id"`
	Name         string           `json:"name"`
	Description  string           `json:"description"`
	Category     string           `json:"category"`
	Capacity     string           `json:"capacity,omitempty"`
	Material     string           `json:"material,omitempty"`
	ImageURL     string           `json:"image_url"`
	Price        decimal.Decimal  `json:"price"`
	SalePrice    *decimal.Decimal `json:"sale_price,omitempty"`
	SaleStartsAt *time.Time       `json:"sale_starts_at,omitempty"`
	SaleEndsAt   *time.Time       `json:"sale_ends_at,omitempty"`
	OnSale       bool             `json:"on_sale"`
	IsFeatured   bool             `json:"is_featured"`
	IsNew        bool             `json:"is_new"`
	IsActive     bool             `json:"is_active"`
	Stock        int              `json:"stock"`
	Rating       float64          `json:"rating"`
	ReviewCount  int              `json:"review_count"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// SaleActive reports whether the sale price applies at now. A missing bound
// leaves that side of the window open.
func (p *Product) SaleActive(now time.Time) bool {
	if !p.OnSale || p.SalePrice == nil {
		return false
	}
	if p.SaleStartsAt != nil && now.Before(*p.SaleStartsAt) {
		return false
	}
	if p.SaleEndsAt != nil && !now.Before(*p.SaleEndsAt) {
		return false
	}

	return true
}

// EffectivePrice is the unit price a customer pays at now.
func (p *Product) EffectivePrice(now time.Time) decimal.Decimal {
	if p.SaleActive(now) {
		return *p.SalePrice
	}

	return p.Price
}

// InStock reports whether at least one unit can be sold.
func (p *Product) InStock() bool {
	return p.Stock > 0
}

// Purchasable reports whether qty units can be added to a cart.
func (p *Product) Purchasable(qty int) bool {
	return p.IsActive && qty > 0 && qty <= p.Stock
}

// ProductSort enumerates catalog orderings.
type ProductSort string

const (
	ProductSortFeatured  ProductSort = "featured"
	ProductSortPriceAsc  ProductSort = "price_asc"
	ProductSortPriceDesc ProductSort = "price_desc"
	ProductSortRating    ProductSort = "rating"
	ProductSortNewest    ProductSort = "newest"
)

// ProductFilter narrows a catalog listing. Nil flags are ignored.
type ProductFilter struct {
	Search          string
	Category        string
	Featured        *bool
	New             *bool
	OnSale          *bool
	IncludeInactive bool
	Sort            ProductSort
	Pagination
}
