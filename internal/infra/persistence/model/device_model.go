package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserDeviceModel is a push target for order updates. A shopper has at most
// one live row per DeviceID; re-registering the same device swaps its token.
type UserDeviceModel struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_user_devices_user_device_live,where:deleted_at IS NULL"`
	// DeviceID is chosen by the client app and is stable across token rotations.
	DeviceID  string `gorm:"type:varchar(255);not null;uniqueIndex:idx_user_devices_user_device_live,where:deleted_at IS NULL"`
	FCMToken  string `gorm:"type:text;not null"`
	Platform  string `gorm:"type:varchar(16);not null"`
	IsActive  bool   `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (UserDeviceModel) TableName() string { return "user_devices" }
