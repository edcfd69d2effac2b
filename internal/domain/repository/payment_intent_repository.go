package repository

import (
	"context"
	"time"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var (
	// ErrPaymentIntentNotFound is returned when no intent matches.
	ErrPaymentIntentNotFound = errors.New("payment intent not found")
	// ErrPaymentIntentStateChanged is returned when a conditional transition
	// finds the intent already VERIFIED or FAILED.
	ErrPaymentIntentStateChanged = errors.New("payment intent is already settled")
)

// PaymentIntentRepository persists checkout attempts.
type PaymentIntentRepository interface {
	Create(ctx context.Context, intent *entity.PaymentIntent) error
	FindByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*entity.PaymentIntent, error)

	// MarkVerified moves a PENDING or EXPIRED intent to VERIFIED and links the order.
	MarkVerified(ctx context.Context, id uuid.UUID, orderID uuid.UUID) error

	// MarkFailed moves a PENDING or EXPIRED intent to FAILED.
	MarkFailed(ctx context.Context, id uuid.UUID, reason string) error

	// ExpireStale moves PENDING intents whose expires_at is before now to EXPIRED.
	ExpireStale(ctx context.Context, now time.Time) (int64, error)
}
