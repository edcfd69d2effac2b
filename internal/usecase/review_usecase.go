package usecase

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// SubmitReviewInput is a customer review of a product from a completed order.
type SubmitReviewInput struct {
	ProductID uuid.UUID
	OrderID   uuid.UUID
	Rating    int
	Comment   string
}

type ReviewUsecase interface {
	SubmitReview(ctx context.Context, userID uuid.UUID, input SubmitReviewInput) (*entity.Review, error)
	ListProductReviews(ctx context.Context, productID uuid.UUID, page entity.Pagination) (*entity.Page[*entity.Review], error)
	ListAllReviews(ctx context.Context, page entity.Pagination) (*entity.Page[*entity.Review], error)

	// DeleteReview removes a review and recomputes the product's rating.
	DeleteReview(ctx context.Context, reviewID uuid.UUID) error
}
