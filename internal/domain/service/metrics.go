package service

// BusinessMetrics records domain counters.
type BusinessMetrics interface {
	// CheckoutStarted counts created payment intents.
	CheckoutStarted(provider string)

	// PaymentVerified counts verification outcomes: "success", "signature_mismatch", "stock", "error".
	PaymentVerified(provider, outcome string)

	// OrderStatusChanged counts admin status transitions by target status.
	OrderStatusChanged(status string)
}
