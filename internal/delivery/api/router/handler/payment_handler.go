package handler

import (
	"log/slog"
	"net/http"

	"storefront/internal/delivery/api/response"
	"storefront/internal/domain/entity"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

// PaymentHandlerParams holds dependencies for PaymentHandler, injected by Fx.
type PaymentHandlerParams struct {
	fx.In

	CheckoutUC usecase.CheckoutUsecase
	Logger     *slog.Logger
}

// PaymentHandler runs the two-step checkout against the payment gateway.
type PaymentHandler struct {
	checkoutUC usecase.CheckoutUsecase
	logger     *slog.Logger
}

// NewPaymentHandler is the constructor for PaymentHandler.
func NewPaymentHandler(params PaymentHandlerParams) *PaymentHandler {
	return &PaymentHandler{
		checkoutUC: params.CheckoutUC,
		logger:     params.Logger,
	}
}

// ShippingRequest is the structured address form.
type ShippingRequest struct {
	FullName string `json:"full_name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required,mobile10"`
	Address  string `json:"address" validate:"required,max=500"`
	City     string `json:"city" validate:"required,max=100"`
	State    string `json:"state" validate:"required,max=100"`
	Pincode  string `json:"pincode" validate:"required,pincode"`
}

// CheckoutItemRequest is a cart line as the client sees it. Price is informational only.
type CheckoutItemRequest struct {
	ProductID uuid.UUID        `json:"product_id" validate:"required"`
	Quantity  int              `json:"quantity" validate:"gte=1"`
	Price     *decimal.Decimal `json:"price,omitempty"`
}

// CreatePaymentOrderRequest starts a checkout for the current cart.
type CreatePaymentOrderRequest struct {
	Amount          *decimal.Decimal      `json:"amount"`
	Items           []CheckoutItemRequest `json:"items" validate:"omitempty,dive"`
	ShippingAddress string                `json:"shipping_address" validate:"max=1000"`
	Shipping        *ShippingRequest      `json:"shipping" validate:"omitempty"`
}

// PaymentOrderResponse is what the checkout widget needs. Amount is in minor
// units (paise) as the gateway SDK expects it.
type PaymentOrderResponse struct {
	OrderID       string          `json:"order_id"`
	Amount        int64           `json:"amount"`
	AmountDisplay decimal.Decimal `json:"amount_display"`
	Currency      string          `json:"currency"`
	KeyID         string          `json:"key_id"`
	Provider      string          `json:"provider"`
	CheckoutURL   string          `json:"checkout_url,omitempty"`
}

// VerifyPaymentRequest is the gateway callback payload. The razorpay_* names
// are what the Razorpay widget hands back; the generic names work for any provider.
type VerifyPaymentRequest struct {
	RazorpayOrderID   string `json:"razorpay_order_id"`
	RazorpayPaymentID string `json:"razorpay_payment_id"`
	RazorpaySignature string `json:"razorpay_signature"`
	GatewayOrderID    string `json:"gateway_order_id"`
	PaymentID         string `json:"payment_id"`
	Signature         string `json:"signature"`
}

func (r *VerifyPaymentRequest) confirmation() *service.PaymentConfirmation {
	return &service.PaymentConfirmation{
		GatewayOrderID: firstNonEmpty(r.RazorpayOrderID, r.GatewayOrderID),
		PaymentID:      firstNonEmpty(r.RazorpayPaymentID, r.PaymentID),
		Signature:      firstNonEmpty(r.RazorpaySignature, r.Signature),
	}
}

// VerifyPaymentResponse reports the created order.
type VerifyPaymentResponse struct {
	Success         bool          `json:"success"`
	AlreadyVerified bool          `json:"already_verified"`
	Order           *entity.Order `json:"order"`
}

// CreateOrder opens a gateway order for the caller's cart.
func (h *PaymentHandler) CreateOrder(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req CreatePaymentOrderRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	input := &usecase.CreatePaymentOrderInput{
		Amount:          req.Amount,
		ShippingAddress: req.ShippingAddress,
	}
	for _, item := range req.Items {
		input.Items = append(input.Items, usecase.CheckoutItem{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	if s := req.Shipping; s != nil {
		input.Shipping = &usecase.ShippingDetails{
			FullName: s.FullName,
			Email:    s.Email,
			Phone:    s.Phone,
			Address:  s.Address,
			City:     s.City,
			State:    s.State,
			Pincode:  s.Pincode,
		}
	}

	output, err := h.checkoutUC.CreatePaymentOrder(c.Request().Context(), userID, input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, &PaymentOrderResponse{
		OrderID:       output.OrderID,
		Amount:        output.AmountMinor,
		AmountDisplay: output.Amount,
		Currency:      output.Currency,
		KeyID:         output.KeyID,
		Provider:      output.Provider,
		CheckoutURL:   output.CheckoutURL,
	})
}

// VerifyPayment turns a signed gateway confirmation into an order.
func (h *PaymentHandler) VerifyPayment(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req VerifyPaymentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	output, err := h.checkoutUC.VerifyPayment(c.Request().Context(), userID, req.confirmation())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	status := http.StatusCreated
	if output.AlreadyVerified {
		status = http.StatusOK
	}

	return response.Success(c, status, &VerifyPaymentResponse{
		Success:         true,
		AlreadyVerified: output.AlreadyVerified,
		Order:           output.Order,
	})
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}

	return ""
}
