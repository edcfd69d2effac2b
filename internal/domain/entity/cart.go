package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartItem is one (product, quantity) line of a user's server-side cart.
// (UserID, ProductID) is unique.
type CartItem struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	ProductID uuid.UUID
	Quantity  int
	Product   *Product // Loaded alongside the item when listing a cart.
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CartLine is a priced cart row as shown to the customer.
type CartLine struct {
	ID        uuid.UUID       `json:"id"`
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	ImageURL  string          `json:"image_url"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"line_total"`
	Stock     int             `json:"stock"`
	Available bool            `json:"available"`
}

// Cart is the full priced cart returned by every cart operation.
type Cart struct {
	Items     []*CartLine     `json:"cart_items"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	ItemCount int             `json:"item_count"`
	Currency  string          `json:"currency"`
}

// NewCart prices items at their effective price at now. Items whose product
// is missing or inactive are listed as unavailable and excluded from the subtotal.
func NewCart(items []*CartItem, currency string, now time.Time) *Cart {
	cart := &Cart{
		Items:    make([]*CartLine, 0, len(items)),
		Subtotal: decimal.Zero,
		Currency: currency,
	}

	for _, item := range items {
		line := &CartLine{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: decimal.Zero,
			LineTotal: decimal.Zero,
		}

		if p := item.Product; p != nil {
			line.Name = p.Name
			line.ImageURL = p.ImageURL
			line.Stock = p.Stock
			line.Available = p.IsActive && item.Quantity <= p.Stock
			line.UnitPrice = p.EffectivePrice(now)
			line.LineTotal = line.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		}

		if line.Available {
			cart.Subtotal = cart.Subtotal.Add(line.LineTotal)
		}
		cart.ItemCount += item.Quantity
		cart.Items = append(cart.Items, line)
	}

	return cart
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}
