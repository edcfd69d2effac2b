package service

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

var (
	// ErrSignatureMismatch is returned by VerifyPayment when the callback was
	// not signed by the gateway or does not belong to the given order.
	ErrSignatureMismatch = errors.New("payment signature mismatch")

	// ErrIncompleteConfirmation means the client left out a field this
	// gateway needs to verify the payment.
	ErrIncompleteConfirmation = errors.New("payment confirmation is incomplete")

	// ErrPaymentNotCompleted means the gateway knows the order but has not
	// captured the money yet, e.g. an async payment method still settling.
	ErrPaymentNotCompleted = errors.New("payment not completed yet")
)

// CreatePaymentOrderRequest asks the gateway to open a payable order.
type CreatePaymentOrderRequest struct {
	Receipt       string // Our intent ID, echoed back by the gateway.
	Amount        decimal.Decimal
	Currency      string
	Items         []entity.IntentItem
	CustomerEmail string
}

// PaymentOrder is the gateway's view of a payable order.
type PaymentOrder struct {
	GatewayOrderID string
	AmountMinor    int64
	Currency       string
	CheckoutURL    string // Set by hosted-checkout providers.
}

// PaymentConfirmation is what the client reports after paying. Which fields
// are required depends on the gateway: Razorpay signs order and payment ids,
// hosted checkouts only need the session id.
type PaymentConfirmation struct {
	GatewayOrderID string
	PaymentID      string
	Signature      string
}

// PaymentGateway abstracts the third-party payment provider.
type PaymentGateway interface {
	// Provider names the gateway, e.g. "razorpay".
	Provider() string

	// PublicKey is the key id the client SDK needs to open checkout.
	PublicKey() string

	CreateOrder(ctx context.Context, req *CreatePaymentOrderRequest) (*PaymentOrder, error)

	// VerifyPayment checks that the confirmation is authentic and paid. It
	// returns ErrIncompleteConfirmation when required fields are missing,
	// ErrPaymentNotCompleted while the payment is still settling and
	// ErrSignatureMismatch for forged or mismatched payloads.
	VerifyPayment(ctx context.Context, confirmation *PaymentConfirmation) error
}
