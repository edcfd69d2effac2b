package payment

import (
	"context"
	"strings"

	"storefront/config"
	"storefront/internal/domain/constants"
	"storefront/internal/domain/entity"
	"storefront/internal/domain/service"

	"github.com/pkg/errors"
	"github.com/stripe/stripe-go/v80"
	"github.com/stripe/stripe-go/v80/client"
)

type stripeGateway struct {
	api        *client.API
	publicKey  string
	successURL string
	cancelURL  string
}

// NewStripeGateway creates a gateway backed by Stripe Checkout Sessions.
// KeyID holds the publishable key and KeySecret the secret key.
func NewStripeGateway(cfg *config.PaymentConfig) (service.PaymentGateway, error) {
	if cfg.KeySecret == "" {
		return nil, errors.New("stripe secret key is required")
	}
	if cfg.SuccessURL == "" || cfg.CancelURL == "" {
		return nil, errors.New("stripe success and cancel URLs are required")
	}

	var backends *stripe.Backends
	if cfg.BaseURL != "" {
		backendConfig := &stripe.BackendConfig{URL: stripe.String(strings.TrimRight(cfg.BaseURL, "/"))}
		backend := stripe.GetBackendWithConfig(stripe.APIBackend, backendConfig)
		backends = &stripe.Backends{API: backend, Connect: backend, Uploads: backend}
	}

	api := &client.API{}
	api.Init(cfg.KeySecret, backends)

	return &stripeGateway{
		api:        api,
		publicKey:  cfg.KeyID,
		successURL: cfg.SuccessURL,
		cancelURL:  cfg.CancelURL,
	}, nil
}

func (g *stripeGateway) Provider() string {
	return constants.PaymentProviderStripe
}

func (g *stripeGateway) PublicKey() string {
	return g.publicKey
}

// CreateOrder opens a hosted Checkout Session priced from the intent snapshot.
func (g *stripeGateway) CreateOrder(ctx context.Context, req *service.CreatePaymentOrderRequest) (*service.PaymentOrder, error) {
	currency := strings.ToLower(req.Currency)

	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(req.Items))
	for _, item := range req.Items {
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripe.String(currency),
				UnitAmount: stripe.Int64(entity.ToMinorUnits(item.UnitPrice)),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(item.Name),
				},
			},
			Quantity: stripe.Int64(int64(item.Quantity)),
		})
	}

	params := &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems:         lineItems,
		ClientReferenceID: stripe.String(req.Receipt),
		SuccessURL:        stripe.String(g.successURL),
		CancelURL:         stripe.String(g.cancelURL),
	}
	if req.CustomerEmail != "" {
		params.CustomerEmail = stripe.String(req.CustomerEmail)
	}
	params.Context = ctx
	params.AddMetadata("intent_id", req.Receipt)

	session, err := g.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create stripe checkout session")
	}

	return &service.PaymentOrder{
		GatewayOrderID: session.ID,
		AmountMinor:    session.AmountTotal,
		Currency:       strings.ToUpper(string(session.Currency)),
		CheckoutURL:    session.URL,
	}, nil
}

// VerifyPayment retrieves the session and requires it to be paid. Only the
// session id is needed; a payment id, when supplied, must match the session's
// payment intent. Stripe does not sign client confirmations.
func (g *stripeGateway) VerifyPayment(ctx context.Context, confirmation *service.PaymentConfirmation) error {
	if confirmation.GatewayOrderID == "" {
		return errors.Wrap(service.ErrIncompleteConfirmation, "checkout session id is required")
	}

	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx

	session, err := g.api.CheckoutSessions.Get(confirmation.GatewayOrderID, params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) && stripeErr.HTTPStatusCode == 404 {
			return service.ErrSignatureMismatch
		}

		return errors.Wrap(err, "failed to retrieve stripe checkout session")
	}

	switch session.PaymentStatus {
	case stripe.CheckoutSessionPaymentStatusPaid, stripe.CheckoutSessionPaymentStatusNoPaymentRequired:
	default:
		// Unpaid sessions may still complete, e.g. bank debits settle later.
		return errors.Wrapf(service.ErrPaymentNotCompleted, "checkout session is %s", session.PaymentStatus)
	}

	if confirmation.PaymentID != "" {
		if session.PaymentIntent == nil || session.PaymentIntent.ID != confirmation.PaymentID {
			return service.ErrSignatureMismatch
		}
	}

	return nil
}
