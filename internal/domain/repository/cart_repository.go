package repository

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ErrCartItemNotFound is returned when a cart line does not exist for the user.
var ErrCartItemNotFound = errors.New("cart item not found")

// CartRepository persists cart lines. Every method is scoped by user.
type CartRepository interface {
	// FindByUser returns the user's lines with their products loaded, oldest first.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.CartItem, error)

	// FindItem returns one of the user's lines.
	FindItem(ctx context.Context, userID, itemID uuid.UUID) (*entity.CartItem, error)

	// FindByProduct returns the user's line for productID.
	FindByProduct(ctx context.Context, userID, productID uuid.UUID) (*entity.CartItem, error)

	// AddQuantity inserts the line or increments its quantity in one statement.
	AddQuantity(ctx context.Context, userID, productID uuid.UUID, qty int) error

	// SetQuantity overwrites the quantity of one of the user's lines.
	SetQuantity(ctx context.Context, userID, itemID uuid.UUID, qty int) error

	DeleteItem(ctx context.Context, userID, itemID uuid.UUID) error
	ClearByUser(ctx context.Context, userID uuid.UUID) error
}
