package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/constants"
	"storefront/internal/domain/entity"
	"storefront/internal/domain/service"

	"github.com/google/uuid"
)

const (
	EventOrderCreated       = constants.EventOrderCreated
	EventOrderStatusChanged = constants.EventOrderStatusChanged
)

func newOrderEvent(ctx context.Context, eventType string, order *entity.Order, previous entity.OrderStatus, now time.Time) *service.OrderEvent {
	return &service.OrderEvent{
		RequestID:      deliverycontext.GetRequestIDFromContext(ctx),
		EventID:        uuid.NewString(),
		Type:           eventType,
		OrderID:        order.ID.String(),
		UserID:         order.UserID.String(),
		Status:         string(order.Status),
		PreviousStatus: string(previous),
		PaymentStatus:  string(order.PaymentStatus),
		TrackingNumber: order.TrackingNumber,
		TotalAmount:    order.TotalAmount.StringFixed(2),
		Currency:       order.Currency,
		OccurredAt:     now,
	}
}

// orderNotifier publishes order events to the queue and the admin live feed.
// Publishing happens after commit, so failures are logged and never undo the change.
type orderNotifier struct {
	publisher service.EventPublisher
	feed      service.OrderFeed
}

func (n orderNotifier) notify(ctx context.Context, logger *slog.Logger, event *service.OrderEvent) {
	if n.publisher != nil {
		if err := n.publisher.PublishOrderEvent(ctx, event); err != nil {
			logger.Error("Failed to publish order event",
				slog.String("type", event.Type),
				slog.String("orderID", event.OrderID),
				slog.Any("error", err),
			)
		}
	}

	if n.feed != nil {
		n.feed.Publish(event)
	}
}
