package repository

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var (
	// ErrOrderNotFound is returned when an order is not found.
	ErrOrderNotFound = errors.New("order not found")
	// ErrDuplicateGatewayOrder is returned when an order already exists for a gateway order id.
	ErrDuplicateGatewayOrder = errors.New("order already exists for gateway order")
)

// OrderRepository persists orders and their immutable items.
type OrderRepository interface {
	// Create inserts the order and all of its items.
	Create(ctx context.Context, order *entity.Order) error

	// FindByID loads the order with items and customer.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)

	FindByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*entity.Order, error)

	// List returns a page of orders, newest first, with items and customer.
	List(ctx context.Context, filter entity.OrderFilter) ([]*entity.Order, int64, error)

	// UpdateStatus applies an admin status change.
	UpdateStatus(ctx context.Context, id uuid.UUID, change entity.OrderStatusChange) error
}
