package repository

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ErrDeviceNotFound is returned when no live device matches.
var ErrDeviceNotFound = errors.New("device not found")

// DeviceRepository stores the push targets for order notifications.
type DeviceRepository interface {
	// UpsertDevice inserts the device, or refreshes the token, platform and
	// active flag of the customer's live row with the same DeviceID. The
	// stored ID and timestamps are written back to device.
	UpsertDevice(ctx context.Context, device *entity.UserDevice) error

	FindDeviceByID(ctx context.Context, id uuid.UUID) (*entity.UserDevice, error)

	// FindActiveDevicesByUser lists the devices a notification fans out to.
	FindActiveDevicesByUser(ctx context.Context, userID uuid.UUID) ([]*entity.UserDevice, error)

	UpdateFCMToken(ctx context.Context, deviceID uuid.UUID, fcmToken string) error

	// DeleteDevice soft deletes one device.
	DeleteDevice(ctx context.Context, id uuid.UUID) error

	// DeleteDevicesByUser soft deletes every device of a customer, used when
	// an admin removes the account.
	DeleteDevicesByUser(ctx context.Context, userID uuid.UUID) error
}
