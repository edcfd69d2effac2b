package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_BusinessCounters(t *testing.T) {
	m := New()

	m.CheckoutStarted("razorpay")
	m.CheckoutStarted("razorpay")
	m.PaymentVerified("razorpay", "success")
	m.PaymentVerified("razorpay", "signature_mismatch")
	m.OrderStatusChanged("in_transit")

	assert.InDelta(t, 2, testutil.ToFloat64(m.checkoutStarted.WithLabelValues("razorpay")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.paymentVerified.WithLabelValues("razorpay", "success")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.paymentVerified.WithLabelValues("razorpay", "signature_mismatch")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.orderStatusChanged.WithLabelValues("in_transit")), 0)
}

func TestMetrics_RequestStarted(t *testing.T) {
	m := New()

	done := m.RequestStarted()
	assert.InDelta(t, 1, testutil.ToFloat64(m.httpInFlight), 0)

	done(http.MethodGet, "/products/:id", http.StatusOK)
	assert.InDelta(t, 0, testutil.ToFloat64(m.httpInFlight), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.httpRequests.WithLabelValues(http.MethodGet, "/products/:id", "200")), 0)
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.CheckoutStarted("fake")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `storefront_checkout_intents_created_total{provider="fake"} 1`)
}
