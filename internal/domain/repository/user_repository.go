// Package repository declares the storage contracts the use cases depend on.
// Each implementation translates its driver's not-found and unique-violation
// errors into the sentinels declared here.
package repository

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var (
	ErrUserNotFound = errors.New("user not found")
	// ErrDuplicateEmail covers live accounts only; a soft-deleted email can register again.
	ErrDuplicateEmail = errors.New("email already registered")
)

// UserRepository stores shopper and admin accounts. Lookups skip soft-deleted rows.
type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	// FindByEmail expects email already trimmed and lower-cased.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	Create(ctx context.Context, user *entity.User) error
	Update(ctx context.Context, user *entity.User) error

	// List backs the admin user table; search matches name or email.
	List(ctx context.Context, search string, page entity.Pagination) ([]*entity.User, int64, error)
	// SoftDelete keeps the row so past orders still resolve their customer.
	SoftDelete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}
