package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentIntentStatus tracks a checkout attempt at the payment gateway.
type PaymentIntentStatus string

const (
	PaymentIntentPending  PaymentIntentStatus = "PENDING"
	PaymentIntentVerified PaymentIntentStatus = "VERIFIED"
	PaymentIntentFailed   PaymentIntentStatus = "FAILED"
	PaymentIntentExpired  PaymentIntentStatus = "EXPIRED"
)

// IntentItem is the priced snapshot of a cart line taken when the intent is created.
type IntentItem struct {
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// PaymentIntent is a server-side record of a gateway order awaiting payment.
// Orders are only created from a verified intent, never from client-supplied prices.
type PaymentIntent struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	Provider        string
	GatewayOrderID  string
	Amount          decimal.Decimal
	Currency        string
	ShippingAddress string
	Items           []IntentItem
	Status          PaymentIntentStatus
	FailureReason   string
	OrderID         *uuid.UUID
	ExpiresAt       time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsOpen reports whether the intent is pending and inside its payment window.
func (pi *PaymentIntent) IsOpen(now time.Time) bool {
	return pi.Status == PaymentIntentPending && now.Before(pi.ExpiresAt)
}

// Settleable reports whether a gateway confirmation may still turn the intent
// into an order. Expired intents stay settleable.
func (pi *PaymentIntent) Settleable() bool {
	return pi.Status == PaymentIntentPending || pi.Status == PaymentIntentExpired
}

// SumIntentItems totals a snapshot.
func SumIntentItems(items []IntentItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	return total
}

// ToMinorUnits converts an amount to the smallest currency unit (paise, cents).
func ToMinorUnits(amount decimal.Decimal) int64 {
	return amount.Shift(2).Round(0).IntPart()
}

// FromMinorUnits is the inverse of ToMinorUnits.
func FromMinorUnits(minor int64) decimal.Decimal {
	return decimal.New(minor, -2)
}
