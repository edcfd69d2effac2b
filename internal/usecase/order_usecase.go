package usecase

import (
	"context"
	"io"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// Viewer identifies who is reading an order.
type Viewer struct {
	UserID  uuid.UUID
	IsAdmin bool
}

// UpdateOrderStatusInput is an admin status change as received from the API.
type UpdateOrderStatusInput struct {
	Status         string
	TrackingNumber *string
	Notes          *string
}

// OrderUsecase covers the customer order history and the admin order desk.
type OrderUsecase interface {
	ListUserOrders(ctx context.Context, userID uuid.UUID, page entity.Pagination) (*entity.Page[*entity.Order], error)

	// GetOrder returns the order when viewer owns it or is an admin.
	GetOrder(ctx context.Context, viewer Viewer, orderID uuid.UUID) (*entity.Order, error)

	// ReceiptQR renders the receipt QR of an order visible to viewer.
	ReceiptQR(ctx context.Context, viewer Viewer, orderID uuid.UUID) ([]byte, error)

	ListOrders(ctx context.Context, status string, page entity.Pagination) (*entity.Page[*entity.Order], error)
	UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, input UpdateOrderStatusInput) (*entity.Order, error)

	// LookupByReceipt resolves a scanned receipt QR payload to its order.
	LookupByReceipt(ctx context.Context, qrData string) (*entity.Order, error)

	// ExportOrders writes every order matching status as a spreadsheet.
	ExportOrders(ctx context.Context, w io.Writer, status string) error
}
