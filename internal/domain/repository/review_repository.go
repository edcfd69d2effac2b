package repository

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var (
	ErrReviewNotFound = errors.New("review not found")
	// ErrDuplicateReview is returned when (user, product, order) was already reviewed.
	ErrDuplicateReview = errors.New("review already exists")
)

type ReviewRepository interface {
	Create(ctx context.Context, review *entity.Review) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListByProduct(ctx context.Context, productID uuid.UUID, page entity.Pagination) ([]*entity.Review, int64, error)
	ListAll(ctx context.Context, page entity.Pagination) ([]*entity.Review, int64, error)
}
