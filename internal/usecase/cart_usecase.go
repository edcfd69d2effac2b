package usecase

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// CartUsecase manages the server-side cart. Every mutation returns the full priced cart.
type CartUsecase interface {
	GetCart(ctx context.Context, userID uuid.UUID) (*entity.Cart, error)

	// AddItem adds qty units, merging with an existing line for the same product.
	AddItem(ctx context.Context, userID, productID uuid.UUID, qty int) (*entity.Cart, error)

	// UpdateItem sets the quantity of a line; qty <= 0 removes it.
	UpdateItem(ctx context.Context, userID, itemID uuid.UUID, qty int) (*entity.Cart, error)

	RemoveItem(ctx context.Context, userID, itemID uuid.UUID) (*entity.Cart, error)
	ClearCart(ctx context.Context, userID uuid.UUID) (*entity.Cart, error)
}
