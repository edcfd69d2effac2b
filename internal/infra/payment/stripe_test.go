package payment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront/config"
	"storefront/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStripeTestGateway(t *testing.T, handler http.HandlerFunc) service.PaymentGateway {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	gateway, err := NewStripeGateway(&config.PaymentConfig{
		KeyID:      "pk_test",
		KeySecret:  "sk_test",
		BaseURL:    server.URL,
		SuccessURL: "https://shop.example/checkout/success",
		CancelURL:  "https://shop.example/cart",
	})
	require.NoError(t, err)

	return gateway
}

func TestStripeGateway_VerifyPayment(t *testing.T) {
	tests := []struct {
		name      string
		sessionID string
		session   string
		paymentID string
		wantErr   error
	}{
		{
			name:      "paid with matching intent",
			session:   `{"id":"cs_test_1","object":"checkout.session","payment_status":"paid","payment_intent":"pi_1"}`,
			paymentID: "pi_1",
		},
		{
			name:    "paid without payment id",
			session: `{"id":"cs_test_1","object":"checkout.session","payment_status":"paid","payment_intent":"pi_1"}`,
		},
		{
			name:      "paid with other intent",
			session:   `{"id":"cs_test_1","object":"checkout.session","payment_status":"paid","payment_intent":"pi_1"}`,
			paymentID: "pi_2",
			wantErr:   service.ErrSignatureMismatch,
		},
		{
			name:    "unpaid is still settling",
			session: `{"id":"cs_test_1","object":"checkout.session","payment_status":"unpaid"}`,
			wantErr: service.ErrPaymentNotCompleted,
		},
		{
			name:      "missing session id",
			sessionID: "-",
			paymentID: "pi_1",
			wantErr:   service.ErrIncompleteConfirmation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gateway := newStripeTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/v1/checkout/sessions/cs_test_1", r.URL.Path)
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(tt.session))
			})

			sessionID := "cs_test_1"
			if tt.sessionID == "-" {
				sessionID = ""
			}

			err := gateway.VerifyPayment(context.Background(), &service.PaymentConfirmation{
				GatewayOrderID: sessionID,
				PaymentID:      tt.paymentID,
			})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)

				return
			}
			assert.NoError(t, err)
		})
	}
}
