package realtime

import (
	"io"
	"log/slog"
	"sync"
	"testing"

	"storefront/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHub() *Hub {
	return NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestHub_PublishSubscribe(t *testing.T) {
	hub := newTestHub()

	first, cancelFirst := hub.Subscribe()
	second, cancelSecond := hub.Subscribe()
	defer cancelSecond()
	assert.Equal(t, 2, hub.SubscriberCount())

	event := &service.OrderEvent{OrderID: "o-1", Type: "order.created"}
	hub.Publish(event)

	assert.Same(t, event, <-first)
	assert.Same(t, event, <-second)

	cancelFirst()
	cancelFirst()
	_, open := <-first
	assert.False(t, open)
	assert.Equal(t, 1, hub.SubscriberCount())
}

func TestHub_SlowSubscriberDoesNotBlock(t *testing.T) {
	hub := newTestHub()
	events, cancel := hub.Subscribe()
	defer cancel()

	for i := 0; i < subscriberBuffer+5; i++ {
		hub.Publish(&service.OrderEvent{OrderID: "o"})
	}

	assert.Len(t, events, subscriberBuffer)
}

func TestHub_ConcurrentPublishAndCancel(t *testing.T) {
	hub := newTestHub()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		_, cancel := hub.Subscribe()
		wg.Add(2)
		go func() {
			defer wg.Done()
			hub.Publish(&service.OrderEvent{OrderID: "o"})
		}()
		go func() {
			defer wg.Done()
			cancel()
		}()
	}
	wg.Wait()

	require.Equal(t, 0, hub.SubscriberCount())
}
