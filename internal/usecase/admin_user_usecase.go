package usecase

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// AdminUserUsecase is the back-office view of customer accounts.
type AdminUserUsecase interface {
	ListUsers(ctx context.Context, search string, page entity.Pagination) (*entity.Page[*entity.User], error)

	// DeleteUser soft-deletes a customer and drops their cart, sessions and devices.
	// Admin accounts cannot be deleted.
	DeleteUser(ctx context.Context, actorID, userID uuid.UUID) error
}
