package usecase

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// RegisterDeviceInput is a push token reported by the storefront app.
type RegisterDeviceInput struct {
	FCMToken string
	DeviceID string
	Platform string
}

// DeviceUsecase manages where a customer's order notifications are pushed.
type DeviceUsecase interface {
	// RegisterDevice is idempotent per DeviceID: re-registering refreshes the token.
	RegisterDevice(ctx context.Context, userID uuid.UUID, input *RegisterDeviceInput) (*entity.UserDevice, error)

	UpdateFCMToken(ctx context.Context, userID uuid.UUID, deviceID uuid.UUID, fcmToken string) error

	GetUserDevices(ctx context.Context, userID uuid.UUID) ([]*entity.UserDevice, error)

	// DeactivateDevice stops pushes to the device; it must belong to userID.
	DeactivateDevice(ctx context.Context, userID, deviceID uuid.UUID) error
}
