package impl

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const maxReviewCommentLength = 2000

type reviewService struct {
	txManager   repository.TransactionManager
	reviewRepo  repository.ReviewRepository
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	logger      *slog.Logger
	now         func() time.Time
}

// NewReviewService creates the review use case.
func NewReviewService(
	txManager repository.TransactionManager,
	reviewRepo repository.ReviewRepository,
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	logger *slog.Logger,
) usecase.ReviewUsecase {
	return &reviewService{
		txManager:   txManager,
		reviewRepo:  reviewRepo,
		orderRepo:   orderRepo,
		productRepo: productRepo,
		logger:      logger,
		now:         time.Now,
	}
}

func (s *reviewService) SubmitReview(ctx context.Context, userID uuid.UUID, input usecase.SubmitReviewInput) (*entity.Review, error) {
	if input.Rating < entity.MinReviewRating || input.Rating > entity.MaxReviewRating {
		return nil, invalidInput(fmt.Sprintf("Rating must be between %d and %d", entity.MinReviewRating, entity.MaxReviewRating))
	}
	comment := strings.TrimSpace(input.Comment)
	if utf8.RuneCountInString(comment) > maxReviewCommentLength {
		return nil, invalidInput(fmt.Sprintf("Comment must be at most %d characters", maxReviewCommentLength))
	}

	order, err := s.orderRepo.FindByID(ctx, input.OrderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, errors.Wrap(domainerrors.ErrOrderNotFound, "order not found")
		}

		return nil, dataError(err, "failed to submit review")
	}
	if order.UserID != userID {
		return nil, errors.Wrap(domainerrors.ErrOrderNotFound, "order belongs to another user")
	}
	if order.Status != entity.OrderStatusCompleted {
		return nil, errors.Wrapf(domainerrors.ErrOrderNotReviewable, "order is %s", order.Status)
	}
	if !order.ContainsProduct(input.ProductID) {
		return nil, errors.Wrap(domainerrors.ErrProductNotInOrder, "product not in order")
	}

	review := &entity.Review{
		ID:        uuid.New(),
		UserID:    userID,
		ProductID: input.ProductID,
		OrderID:   input.OrderID,
		Rating:    input.Rating,
		Comment:   comment,
		CreatedAt: s.now(),
	}

	err = s.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		if err := repos.ReviewRepo().Create(ctx, review); err != nil {
			if errors.Is(err, repository.ErrDuplicateReview) {
				return errors.Wrap(domainerrors.ErrReviewAlreadyExists, "duplicate review")
			}

			return dataError(err, "failed to submit review")
		}

		if err := repos.ProductRepo().RecomputeRating(ctx, review.ProductID); err != nil {
			return dataError(err, "failed to update product rating")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	deliverycontext.GetLoggerOrDefault(ctx, s.logger).Info("Review submitted",
		slog.Any("reviewID", review.ID),
		slog.Any("productID", review.ProductID),
		slog.Int("rating", review.Rating),
	)

	return review, nil
}

func (s *reviewService) ListProductReviews(ctx context.Context, productID uuid.UUID, page entity.Pagination) (*entity.Page[*entity.Review], error) {
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, errors.Wrap(domainerrors.ErrProductNotFound, "product not found")
		}

		return nil, dataError(err, "failed to fetch reviews")
	}

	page = page.Normalize()
	reviews, total, err := s.reviewRepo.ListByProduct(ctx, productID, page)
	if err != nil {
		return nil, dataError(err, "failed to fetch reviews")
	}

	return entity.NewPage(reviews, total, page), nil
}

func (s *reviewService) ListAllReviews(ctx context.Context, page entity.Pagination) (*entity.Page[*entity.Review], error) {
	page = page.Normalize()
	reviews, total, err := s.reviewRepo.ListAll(ctx, page)
	if err != nil {
		return nil, dataError(err, "failed to fetch reviews")
	}

	return entity.NewPage(reviews, total, page), nil
}

func (s *reviewService) DeleteReview(ctx context.Context, reviewID uuid.UUID) error {
	return s.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		review, err := repos.ReviewRepo().FindByID(ctx, reviewID)
		if err != nil {
			if errors.Is(err, repository.ErrReviewNotFound) {
				return errors.Wrap(domainerrors.ErrReviewNotFound, "review not found")
			}

			return dataError(err, "failed to delete review")
		}

		if err := repos.ReviewRepo().Delete(ctx, reviewID); err != nil {
			return dataError(err, "failed to delete review")
		}

		if err := repos.ProductRepo().RecomputeRating(ctx, review.ProductID); err != nil {
			return dataError(err, "failed to update product rating")
		}

		return nil
	})
}
