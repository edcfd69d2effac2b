// Package realtime fans order events out to connected admin dashboards.
package realtime

import (
	"log/slog"
	"sync"

	"storefront/internal/domain/service"
)

const subscriberBuffer = 16

// Hub is an in-process OrderFeed. Slow subscribers drop events instead of
// blocking publishers.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[chan *service.OrderEvent]struct{}
	logger      *slog.Logger
}

// NewHub creates an empty hub
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		subscribers: make(map[chan *service.OrderEvent]struct{}),
		logger:      logger,
	}
}

// NewOrderFeed exposes the hub as a service.OrderFeed
func NewOrderFeed(logger *slog.Logger) service.OrderFeed {
	return NewHub(logger)
}

func (h *Hub) Publish(event *service.OrderEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for ch := range h.subscribers {
		select {
		case ch <- event:
		default:
			h.logger.Warn("[OrderFeed] Subscriber is lagging, dropping event",
				slog.String("order_id", event.OrderID),
				slog.String("type", event.Type),
			)
		}
	}
}

func (h *Hub) Subscribe() (<-chan *service.OrderEvent, func()) {
	ch := make(chan *service.OrderEvent, subscriberBuffer)

	h.mu.Lock()
	h.subscribers[ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subscribers, ch)
			h.mu.Unlock()
			close(ch)
		})
	}

	return ch, cancel
}

// SubscriberCount returns the number of live subscriptions.
func (h *Hub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.subscribers)
}
