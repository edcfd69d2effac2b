package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	MinReviewRating = 1
	MaxReviewRating = 5
)

// Review is a rating left by a customer for a product bought in a completed order.
// (UserID, ProductID, OrderID) is unique.
type Review struct {
	ID           uuid.UUID `json:"id"`
	UserID       uuid.UUID `json:"user_id"`
	ProductID    uuid.UUID `json:"product_id"`
	OrderID      uuid.UUID `json:"order_id"`
	Rating       int       `json:"rating"`
	Comment      string    `json:"comment,omitempty"`
	ReviewerName string    `json:"reviewer_name,omitempty"`
	ProductName  string    `json:"product_name,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
