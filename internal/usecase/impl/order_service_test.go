package impl

import (
	"bytes"
	"context"
	"testing"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	mockRepo "storefront/internal/mocks/repository"
	mockService "storefront/internal/mocks/service"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type orderFixtures struct {
	service   usecase.OrderUsecase
	orders    *mockRepo.MockOrderRepository
	qr        *mockService.MockQRCodeService
	exporter  *mockService.MockSpreadsheetExporter
	metrics   *mockService.MockBusinessMetrics
	publisher *mockService.MockEventPublisher
	feed      *mockService.MockOrderFeed
}

func createTestOrderService(t *testing.T) orderFixtures {
	fx := orderFixtures{
		orders:    mockRepo.NewMockOrderRepository(t),
		qr:        mockService.NewMockQRCodeService(t),
		exporter:  mockService.NewMockSpreadsheetExporter(t),
		metrics:   mockService.NewMockBusinessMetrics(t),
		publisher: mockService.NewMockEventPublisher(t),
		feed:      mockService.NewMockOrderFeed(t),
	}

	svc := NewOrderService(OrderServiceParams{
		OrderRepo: fx.orders,
		QRService: fx.qr,
		Exporter:  fx.exporter,
		Metrics:   fx.metrics,
		Publisher: fx.publisher,
		Feed:      fx.feed,
		Logger:    newDiscardLogger(),
	}).(*orderService)
	svc.now = fixedNow
	fx.service = svc

	return fx
}

func newOrder(userID uuid.UUID, status entity.OrderStatus) *entity.Order {
	return &entity.Order{
		ID:            uuid.New(),
		UserID:        userID,
		TotalAmount:   money("2500"),
		Currency:      "INR",
		Status:        status,
		PaymentStatus: entity.PaymentStatusPaid,
	}
}

func TestOrderService_UpdateOrderStatus_InTransitNeedsTracking(t *testing.T) {
	fx := createTestOrderService(t)
	ctx := context.Background()
	orderID := uuid.New()

	for _, tracking := range []*string{nil, strPtr(""), strPtr("   ")} {
		_, err := fx.service.UpdateOrderStatus(ctx, orderID, usecase.UpdateOrderStatusInput{
			Status:         "in_transit",
			TrackingNumber: tracking,
		})
		assert.ErrorIs(t, err, domainerrors.ErrTrackingNumberRequired)
	}

	fx.orders.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestOrderService_UpdateOrderStatus_UnknownStatus(t *testing.T) {
	fx := createTestOrderService(t)

	_, err := fx.service.UpdateOrderStatus(context.Background(), uuid.New(), usecase.UpdateOrderStatusInput{Status: "shipped"})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidOrderStatus)
}

func TestOrderService_UpdateOrderStatus_Success(t *testing.T) {
	fx := createTestOrderService(t)
	ctx := context.Background()
	before := newOrder(uuid.New(), entity.OrderStatusConfirmed)
	after := *before
	after.Status = entity.OrderStatusInTransit
	after.TrackingNumber = "AWB123"

	fx.orders.On("FindByID", ctx, before.ID).Return(before, nil).Once()
	fx.orders.On("UpdateStatus", ctx, before.ID, mock.MatchedBy(func(change entity.OrderStatusChange) bool {
		return change.Status == entity.OrderStatusInTransit && *change.TrackingNumber == "AWB123" && change.Notes == nil
	})).Return(nil)
	fx.orders.On("FindByID", ctx, before.ID).Return(&after, nil).Once()
	fx.metrics.On("OrderStatusChanged", "in_transit").Return()
	fx.publisher.On("PublishOrderEvent", ctx, mock.MatchedBy(func(event *service.OrderEvent) bool {
		return event.Type == EventOrderStatusChanged &&
			event.Status == "in_transit" &&
			event.PreviousStatus == "confirmed" &&
			event.TrackingNumber == "AWB123" &&
			event.OccurredAt.Equal(testNow)
	})).Return(errors.New("queue unavailable"))
	fx.feed.On("Publish", mock.Anything).Return()

	order, err := fx.service.UpdateOrderStatus(ctx, before.ID, usecase.UpdateOrderStatusInput{
		Status:         "in_transit",
		TrackingNumber: strPtr(" AWB123 "),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusInTransit, order.Status)
}

func TestOrderService_GetOrder_Visibility(t *testing.T) {
	ownerID := uuid.New()
	order := newOrder(ownerID, entity.OrderStatusPending)

	t.Run("owner", func(t *testing.T) {
		fx := createTestOrderService(t)
		fx.orders.On("FindByID", mock.Anything, order.ID).Return(order, nil)

		got, err := fx.service.GetOrder(context.Background(), usecase.Viewer{UserID: ownerID}, order.ID)
		require.NoError(t, err)
		assert.Same(t, order, got)
	})

	t.Run("other customer", func(t *testing.T) {
		fx := createTestOrderService(t)
		fx.orders.On("FindByID", mock.Anything, order.ID).Return(order, nil)

		_, err := fx.service.GetOrder(context.Background(), usecase.Viewer{UserID: uuid.New()}, order.ID)
		assert.ErrorIs(t, err, domainerrors.ErrOrderNotFound)
	})

	t.Run("admin", func(t *testing.T) {
		fx := createTestOrderService(t)
		fx.orders.On("FindByID", mock.Anything, order.ID).Return(order, nil)

		got, err := fx.service.GetOrder(context.Background(), usecase.Viewer{UserID: uuid.New(), IsAdmin: true}, order.ID)
		require.NoError(t, err)
		assert.Same(t, order, got)
	})

	t.Run("missing", func(t *testing.T) {
		fx := createTestOrderService(t)
		fx.orders.On("FindByID", mock.Anything, order.ID).Return(nil, repository.ErrOrderNotFound)

		_, err := fx.service.GetOrder(context.Background(), usecase.Viewer{UserID: ownerID}, order.ID)
		assert.ErrorIs(t, err, domainerrors.ErrOrderNotFound)
	})
}

func TestOrderService_ListUserOrders_ScopesToUser(t *testing.T) {
	fx := createTestOrderService(t)
	ctx := context.Background()
	userID := uuid.New()
	orders := []*entity.Order{newOrder(userID, entity.OrderStatusPending)}

	fx.orders.On("List", ctx, mock.MatchedBy(func(filter entity.OrderFilter) bool {
		return filter.UserID != nil && *filter.UserID == userID && filter.Page == 1 && filter.Limit == entity.DefaultPageSize
	})).Return(orders, int64(1), nil)

	page, err := fx.service.ListUserOrders(ctx, userID, entity.Pagination{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)
	assert.Len(t, page.Items, 1)
}

func TestOrderService_ListOrders_RejectsUnknownStatus(t *testing.T) {
	fx := createTestOrderService(t)

	_, err := fx.service.ListOrders(context.Background(), "lost", entity.Pagination{})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidOrderStatus)
}

func TestOrderService_LookupByReceipt(t *testing.T) {
	order := newOrder(uuid.New(), entity.OrderStatusConfirmed)

	t.Run("valid", func(t *testing.T) {
		fx := createTestOrderService(t)
		fx.qr.On("ParseReceiptQR", "payload").Return(order.ID, nil)
		fx.orders.On("FindByID", mock.Anything, order.ID).Return(order, nil)

		got, err := fx.service.LookupByReceipt(context.Background(), "payload")
		require.NoError(t, err)
		assert.Same(t, order, got)
	})

	t.Run("garbage", func(t *testing.T) {
		fx := createTestOrderService(t)
		fx.qr.On("ParseReceiptQR", "garbage").Return(uuid.Nil, errors.New("invalid QR code"))

		_, err := fx.service.LookupByReceipt(context.Background(), "garbage")
		assert.ErrorIs(t, err, domainerrors.ErrInvalidReceipt)
	})
}

func TestOrderService_ExportOrders_ReadsAllPages(t *testing.T) {
	fx := createTestOrderService(t)
	ctx := context.Background()

	first := make([]*entity.Order, entity.MaxPageSize)
	for i := range first {
		first[i] = newOrder(uuid.New(), entity.OrderStatusCompleted)
	}
	second := []*entity.Order{newOrder(uuid.New(), entity.OrderStatusCompleted)}
	total := int64(len(first) + len(second))

	fx.orders.On("List", ctx, mock.MatchedBy(func(f entity.OrderFilter) bool { return f.Page == 1 && f.Status == entity.OrderStatusCompleted })).
		Return(first, total, nil)
	fx.orders.On("List", ctx, mock.MatchedBy(func(f entity.OrderFilter) bool { return f.Page == 2 })).
		Return(second, total, nil)
	fx.exporter.On("ExportOrders", mock.Anything, mock.MatchedBy(func(orders []*entity.Order) bool {
		return int64(len(orders)) == total
	})).Return(nil)

	var buf bytes.Buffer
	require.NoError(t, fx.service.ExportOrders(ctx, &buf, "completed"))
}
