// Package constants holds string identifiers shared across layers.
package constants

const (
	EnvDevelop    = "develop"
	EnvStaging    = "staging"
	EnvProduction = "production"
)

// Pub/Sub providers
const (
	PubSubProviderLocal  = "local"
	PubSubProviderGoogle = "google"
)

// Payment gateway providers
const (
	PaymentProviderRazorpay = "razorpay"
	PaymentProviderStripe   = "stripe"
	PaymentProviderFake     = "fake"
)

// Event types published on the order topic
const (
	EventOrderCreated       = "order.created"
	EventOrderStatusChanged = "order.status_changed"
)
