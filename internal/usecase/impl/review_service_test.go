package impl

import (
	"context"
	"testing"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	mockRepo "storefront/internal/mocks/repository"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type reviewFixtures struct {
	service usecase.ReviewUsecase
	repos   *mockRepo.MockRepositoryFactory
	tx      *mockRepo.MockTransactionManager
}

func createTestReviewService(t *testing.T) reviewFixtures {
	repos, tx := newTestRepos(t)
	svc := NewReviewService(tx, repos.Reviews, repos.Orders, repos.Products, newDiscardLogger()).(*reviewService)
	svc.now = fixedNow

	return reviewFixtures{service: svc, repos: repos, tx: tx}
}

func completedOrderWith(userID, productID uuid.UUID) *entity.Order {
	order := newOrder(userID, entity.OrderStatusCompleted)
	order.Items = []*entity.OrderItem{{ID: uuid.New(), OrderID: order.ID, ProductID: productID, Quantity: 1, PriceAtPurchase: money("1000")}}

	return order
}

func TestReviewService_SubmitReview_Success(t *testing.T) {
	fx := createTestReviewService(t)
	ctx := context.Background()
	userID, productID := uuid.New(), uuid.New()
	order := completedOrderWith(userID, productID)

	fx.repos.Orders.On("FindByID", ctx, order.ID).Return(order, nil)
	fx.repos.Reviews.On("Create", ctx, mock.MatchedBy(func(r *entity.Review) bool {
		return r.Rating == 4 && r.Comment == "Keeps water cold" && r.CreatedAt.Equal(testNow)
	})).Return(nil)
	fx.repos.Products.On("RecomputeRating", ctx, productID).Return(nil)

	review, err := fx.service.SubmitReview(ctx, userID, usecase.SubmitReviewInput{
		ProductID: productID,
		OrderID:   order.ID,
		Rating:    4,
		Comment:   "  Keeps water cold ",
	})
	require.NoError(t, err)
	assert.Equal(t, userID, review.UserID)
	assert.Equal(t, 1, fx.tx.Executions)
}

func TestReviewService_SubmitReview_Rejections(t *testing.T) {
	userID, productID := uuid.New(), uuid.New()

	tests := []struct {
		name    string
		order   func() *entity.Order
		rating  int
		wantErr error
	}{
		{
			name:    "rating out of range",
			rating:  6,
			wantErr: domainerrors.ErrValidationFailed,
		},
		{
			name:    "order of another user",
			order:   func() *entity.Order { return completedOrderWith(uuid.New(), productID) },
			rating:  5,
			wantErr: domainerrors.ErrOrderNotFound,
		},
		{
			name: "order not completed",
			order: func() *entity.Order {
				o := completedOrderWith(userID, productID)
				o.Status = entity.OrderStatusInTransit
				return o
			},
			rating:  5,
			wantErr: domainerrors.ErrOrderNotReviewable,
		},
		{
			name:    "product not in order",
			order:   func() *entity.Order { return completedOrderWith(userID, uuid.New()) },
			rating:  5,
			wantErr: domainerrors.ErrProductNotInOrder,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := createTestReviewService(t)
			orderID := uuid.New()
			if tt.order != nil {
				order := tt.order()
				orderID = order.ID
				fx.repos.Orders.On("FindByID", mock.Anything, orderID).Return(order, nil)
			}

			_, err := fx.service.SubmitReview(context.Background(), userID, usecase.SubmitReviewInput{
				ProductID: productID,
				OrderID:   orderID,
				Rating:    tt.rating,
			})
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, 0, fx.tx.Executions)
		})
	}
}

func TestReviewService_SubmitReview_Duplicate(t *testing.T) {
	fx := createTestReviewService(t)
	ctx := context.Background()
	userID, productID := uuid.New(), uuid.New()
	order := completedOrderWith(userID, productID)

	fx.repos.Orders.On("FindByID", ctx, order.ID).Return(order, nil)
	fx.repos.Reviews.On("Create", ctx, mock.Anything).Return(repository.ErrDuplicateReview)

	_, err := fx.service.SubmitReview(ctx, userID, usecase.SubmitReviewInput{ProductID: productID, OrderID: order.ID, Rating: 5})
	assert.ErrorIs(t, err, domainerrors.ErrReviewAlreadyExists)
	fx.repos.Products.AssertNotCalled(t, "RecomputeRating", mock.Anything, mock.Anything)
}

func TestReviewService_DeleteReview_RecomputesRating(t *testing.T) {
	fx := createTestReviewService(t)
	ctx := context.Background()
	review := &entity.Review{ID: uuid.New(), ProductID: uuid.New()}

	fx.repos.Reviews.On("FindByID", ctx, review.ID).Return(review, nil)
	fx.repos.Reviews.On("Delete", ctx, review.ID).Return(nil)
	fx.repos.Products.On("RecomputeRating", ctx, review.ProductID).Return(nil)

	require.NoError(t, fx.service.DeleteReview(ctx, review.ID))
}

func TestReviewService_DeleteReview_NotFound(t *testing.T) {
	fx := createTestReviewService(t)
	id := uuid.New()

	fx.repos.Reviews.On("FindByID", mock.Anything, id).Return(nil, repository.ErrReviewNotFound)

	assert.ErrorIs(t, fx.service.DeleteReview(context.Background(), id), domainerrors.ErrReviewNotFound)
}

func TestReviewService_ListProductReviews_UnknownProduct(t *testing.T) {
	fx := createTestReviewService(t)
	id := uuid.New()

	fx.repos.Products.On("FindByID", mock.Anything, id).Return(nil, repository.ErrProductNotFound)

	_, err := fx.service.ListProductReviews(context.Background(), id, entity.Pagination{})
	assert.ErrorIs(t, err, domainerrors.ErrProductNotFound)
}
