package usecase

import (
	"context"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ShippingDetails is the structured address form of the checkout page.
type ShippingDetails struct {
	FullName string
	Email    string
	Phone    string
	Address  string
	City     string
	State    string
	Pincode  string
}

// CheckoutItem is a cart line as the client believes it to be.
type CheckoutItem struct {
	ProductID uuid.UUID
	Quantity  int
}

// CreatePaymentOrderInput starts a checkout. Amount and Items are optional
// client-side expectations checked against the persisted cart. Either
// ShippingAddress or Shipping must be given.
type CreatePaymentOrderInput struct {
	Amount          *decimal.Decimal
	Items           []CheckoutItem
	ShippingAddress string
	Shipping        *ShippingDetails
}

// PaymentOrderOutput is what the client needs to open the gateway checkout.
type PaymentOrderOutput struct {
	OrderID     string          // Gateway order id.
	Amount      decimal.Decimal // Major units.
	AmountMinor int64
	Currency    string
	KeyID       string
	Provider    string
	CheckoutURL string
}

// VerifyPaymentOutput is the result of a confirmed payment.
type VerifyPaymentOutput struct {
	Order *entity.Order
	// AlreadyVerified is set when the intent had been confirmed by an earlier call.
	AlreadyVerified bool
}

// CheckoutUsecase runs the two-phase payment flow: create a gateway order for
// the current cart, then turn a verified gateway confirmation into an order.
type CheckoutUsecase interface {
	CreatePaymentOrder(ctx context.Context, userID uuid.UUID, input *CreatePaymentOrderInput) (*PaymentOrderOutput, error)
	VerifyPayment(ctx context.Context, userID uuid.UUID, confirmation *service.PaymentConfirmation) (*VerifyPaymentOutput, error)
}
