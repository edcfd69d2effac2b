package payment

import (
	"context"
	"net/url"

	"storefront/config"
	"storefront/internal/domain/constants"
	"storefront/internal/domain/entity"
	"storefront/internal/domain/service"
)

const fakeDefaultSecret = "fake-gateway-secret"

// fakeGateway is a local gateway for development and tests. Order ids are
// derived from the receipt and signatures use the same HMAC scheme as Razorpay.
type fakeGateway struct {
	keyID     string
	keySecret string
	baseURL   string
}

// NewFakeGateway creates a deterministic in-process gateway
func NewFakeGateway(cfg *config.PaymentConfig) service.PaymentGateway {
	secret := cfg.KeySecret
	if secret == "" {
		secret = fakeDefaultSecret
	}

	keyID := cfg.KeyID
	if keyID == "" {
		keyID = "fake_key"
	}

	return &fakeGateway{keyID: keyID, keySecret: secret, baseURL: cfg.BaseURL}
}

func (g *fakeGateway) Provider() string {
	return constants.PaymentProviderFake
}

func (g *fakeGateway) PublicKey() string {
	return g.keyID
}

func (g *fakeGateway) CreateOrder(_ context.Context, req *service.CreatePaymentOrderRequest) (*service.PaymentOrder, error) {
	order := &service.PaymentOrder{
		GatewayOrderID: "order_fake_" + req.Receipt,
		AmountMinor:    entity.ToMinorUnits(req.Amount),
		Currency:       req.Currency,
	}
	if g.baseURL != "" {
		order.CheckoutURL = g.baseURL + "?order_id=" + url.QueryEscape(order.GatewayOrderID)
	}

	return order, nil
}

func (g *fakeGateway) VerifyPayment(_ context.Context, confirmation *service.PaymentConfirmation) error {
	if err := requireSigned(confirmation); err != nil {
		return err
	}
	if !VerifySignature(g.keySecret, confirmation.GatewayOrderID, confirmation.PaymentID, confirmation.Signature) {
		return service.ErrSignatureMismatch
	}

	return nil
}
