package entity

import (
	"time"

	"github.com/google/uuid"
)

// SaleBanner is a promotional banner shown on the storefront while active and in window.
type SaleBanner struct {
	ID           uuid.UUID  `json:"id"`
	Title        string     `json:"title"`
	Subtitle     string     `json:"subtitle,omitempty"`
	Description  string     `json:"description,omitempty"`
	DiscountText string     `json:"discount_text,omitempty"`
	ImageURL     string     `json:"image_url,omitempty"`
	LinkURL      string     `json:"link_url,omitempty"`
	DisplayOrder int        `json:"display_order"`
	IsActive     bool       `json:"is_active"`
	StartsAt     *time.Time `json:"starts_at,omitempty"`
	EndsAt       *time.Time `json:"ends_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// IsLive reports whether the banner should be shown at now.
func (b *SaleBanner) IsLive(now time.Time) bool {
	if !b.IsActive {
		return false
	}
	if b.StartsAt != nil && now.Before(*b.StartsAt) {
		return false
	}
	if b.EndsAt != nil && !now.Before(*b.EndsAt) {
		return false
	}

	return true
}

// GalleryImage is an image in the public gallery.
type GalleryImage struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title,omitempty"`
	ImageURL     string    `json:"image_url"`
	AltText      string    `json:"alt_text,omitempty"`
	DisplayOrder int       `json:"display_order"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// HeroImage is a slide of the home page carousel. The set is replaced as a whole.
type HeroImage struct {
	ID           uuid.UUID `json:"id"`
	ImageURL     string    `json:"image_url"`
	AltText      string    `json:"alt_text,omitempty"`
	DisplayOrder int       `json:"display_order"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
