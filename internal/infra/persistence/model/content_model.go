package model

import (
	"time"

	"github.com/google/uuid"
)

// SaleBannerModel mirrors the 'sale_banners' table.
type SaleBannerModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Title        string    `gorm:"type:varchar(200);not null"`
	Subtitle     string    `gorm:"type:varchar(200)"`
	Description  string    `gorm:"type:text"`
	DiscountText string    `gorm:"type:varchar(100)"`
	ImageURL     string    `gorm:"type:text"`
	LinkURL      string    `gorm:"type:text"`
	DisplayOrder int       `gorm:"not null;default:0"`
	IsActive     bool      `gorm:"not null;default:true"`
	StartsAt     *time.Time
	EndsAt       *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (SaleBannerModel) TableName() string {
	return "sale_banners"
}

// GalleryImageModel mirrors the 'gallery_images' table.
type GalleryImageModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Title        string    `gorm:"type:varchar(200)"`
	ImageURL     string    `gorm:"type:text;not null"`
	AltText      string    `gorm:"type:varchar(255)"`
	DisplayOrder int       `gorm:"not null;default:0"`
	IsActive     bool      `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (GalleryImageModel) TableName() string {
	return "gallery_images"
}

// HeroImageModel mirrors the 'hero_images' table.
type HeroImageModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	ImageURL     string    `gorm:"type:text;not null"`
	AltText      string    `gorm:"type:varchar(255)"`
	DisplayOrder int       `gorm:"not null;default:0"`
	IsActive     bool      `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (HeroImageModel) TableName() string {
	return "hero_images"
}
