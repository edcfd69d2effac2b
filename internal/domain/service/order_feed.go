package service

// OrderFeed fans order events out to connected admin dashboards.
type OrderFeed interface {
	// Publish delivers the event to every current subscriber without blocking.
	Publish(event *OrderEvent)

	// Subscribe registers a listener. The channel is closed after cancel is called.
	Subscribe() (events <-chan *OrderEvent, cancel func())
}
