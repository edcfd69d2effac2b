package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentIntentItem is the JSON shape of a snapshot line in payment_intents.items.
type PaymentIntentItem struct {
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// PaymentIntentModel mirrors the 'payment_intents' table.
type PaymentIntentModel struct {
	ID              uuid.UUID           `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	UserID          uuid.UUID           `gorm:"type:uuid;not null;index"`
	Provider        string              `gorm:"type:varchar(20);not null"`
	GatewayOrderID  string              `gorm:"type:varchar(255);unique;not null"`
	Amount          decimal.Decimal     `gorm:"type:numeric(12,2);not null"`
	Currency        string              `gorm:"type:varchar(3);not null"`
	ShippingAddress string              `gorm:"type:text;not null"`
	Items           []PaymentIntentItem `gorm:"type:jsonb;serializer:json;not null"`
	Status          string              `gorm:"type:varchar(20);not null;default:PENDING;index"`
	FailureReason   string              `gorm:"type:text"`
	OrderID         *uuid.UUID          `gorm:"type:uuid"`
	ExpiresAt       time.Time           `gorm:"not null"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName explicitly sets the table name for GORM.
func (PaymentIntentModel) TableName() string {
	return "payment_intents"
}
