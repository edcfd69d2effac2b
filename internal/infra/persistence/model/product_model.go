package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProductModel mirrors the 'products' table.
type ProductModel struct {
	ID           uuid.UUID        `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Name         string           `gorm:"type:varchar(200);not null"`
	Description  string           `gorm:"type:text"`
	Category     string           `gorm:"type:varchar(100);not null;index"`
	Capacity     string           `gorm:"type:varchar(50)"`
	Material     string           `gorm:"type:varchar(100)"`
	ImageURL     string           `gorm:"type:text"`
	Price        decimal.Decimal  `gorm:"type:numeric(12,2);not null"`
	SalePrice    *decimal.Decimal `gorm:"type:numeric(12,2)"`
	SaleStartsAt *time.Time
	SaleEndsAt   *time.Time
	OnSale       bool    `gorm:"not null;default:false"`
	IsFeatured   bool    `gorm:"not null;default:false"`
	IsNew        bool    `gorm:"not null;default:false"`
	IsActive     bool    `gorm:"not null;default:true"`
	Stock        int     `gorm:"not null;default:0"`
	Rating       float64 `gorm:"type:numeric(3,2);not null;default:0"`
	ReviewCount  int     `gorm:"not null;default:0"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

// TableName explicitly sets the table name for GORM.
func (ProductModel) TableName() string {
	return "products"
}
