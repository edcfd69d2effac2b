package usecase

import (
	"context"

	"storefront/internal/domain/service"
)

// NotificationResult summarises the fan-out of one order event.
type NotificationResult struct {
	EmailSent     bool
	PushSent      int
	PushFailed    int
	InvalidTokens int
}

// OrderNotificationUsecase turns order events into customer notifications.
type OrderNotificationUsecase interface {
	// HandleOrderEvent emails the customer and pushes to their active devices.
	// Devices with invalid tokens are removed.
	HandleOrderEvent(ctx context.Context, event *service.OrderEvent) (*NotificationResult, error)
}
