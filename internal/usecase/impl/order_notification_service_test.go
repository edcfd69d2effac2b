package impl

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	mockRepo "storefront/internal/mocks/repository"
	mockSvc "storefront/internal/mocks/service"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func createTestOrderNotificationService(t *testing.T) (
	usecase.OrderNotificationUsecase,
	*mockRepo.MockUserRepository,
	*mockRepo.MockDeviceRepository,
	*mockSvc.MockMailer,
	*mockSvc.MockPushNotifier,
) {
	userRepo := mockRepo.NewMockUserRepository(t)
	deviceRepo := mockRepo.NewMockDeviceRepository(t)
	mailer := mockSvc.NewMockMailer(t)
	pusher := mockSvc.NewMockPushNotifier(t)

	svc := NewOrderNotificationService(OrderNotificationServiceParams{
		UserRepo:   userRepo,
		DeviceRepo: deviceRepo,
		Mailer:     mailer,
		Pusher:     pusher,
		Config:     newTestConfig(0),
		Logger:     newDiscardLogger(),
	})

	return svc, userRepo, deviceRepo, mailer, pusher
}

func shippedEvent(userID uuid.UUID) *service.OrderEvent {
	return &service.OrderEvent{
		EventID:        uuid.NewString(),
		Type:           EventOrderStatusChanged,
		OrderID:        "3f2a9c1e-0000-4000-8000-000000000000",
		UserID:         userID.String(),
		Status:         "in_transit",
		PreviousStatus: "confirmed",
		TrackingNumber: "AWB123",
		TotalAmount:    "2500.00",
		Currency:       "INR",
		OccurredAt:     testNow,
	}
}

func TestOrderNotificationService_HandleOrderEvent_Success(t *testing.T) {
	svc, userRepo, deviceRepo, mailer, pusher := createTestOrderNotificationService(t)
	ctx := context.Background()
	user := &entity.User{ID: uuid.New(), Name: "Jane", Email: "jane@example.com"}
	event := shippedEvent(user.ID)

	good := &entity.UserDevice{ID: uuid.New(), UserID: user.ID, FCMToken: "good-token"}
	stale := &entity.UserDevice{ID: uuid.New(), UserID: user.ID, FCMToken: "stale-token"}

	userRepo.On("FindByID", ctx, user.ID).Return(user, nil)
	mailer.On("Send", ctx, mock.MatchedBy(func(msg *service.MailMessage) bool {
		return msg.To == "jane@example.com" &&
			msg.Subject == "Order #3F2A9C1E shipped" &&
			strings.Contains(msg.Body, "AWB123") &&
			strings.Contains(msg.Body, "https://shop.example.com/orders/"+event.OrderID)
	})).Return(nil)
	deviceRepo.On("FindActiveDevicesByUser", ctx, user.ID).Return([]*entity.UserDevice{good, stale}, nil)
	pusher.On("Push", ctx, []string{"good-token", "stale-token"}, &service.PushMessage{
		Title: "Order #3F2A9C1E shipped",
		Body:  "Your order is on its way. Tracking number: AWB123",
		Data:  map[string]string{"type": EventOrderStatusChanged, "order_id": event.OrderID, "status": "in_transit", "tracking_number": "AWB123"},
	}).Return(&service.PushReport{Sent: 1, Failed: 1, InvalidTokens: []string{"stale-token"}}, nil)
	deviceRepo.On("DeleteDevice", ctx, stale.ID).Return(nil)

	result, err := svc.HandleOrderEvent(ctx, event)
	require.NoError(t, err)
	assert.True(t, result.EmailSent)
	assert.Equal(t, 1, result.PushSent)
	assert.Equal(t, 1, result.PushFailed)
	assert.Equal(t, 1, result.InvalidTokens)
}

func TestOrderNotificationService_HandleOrderEvent_BatchesTokens(t *testing.T) {
	svc, userRepo, deviceRepo, mailer, pusher := createTestOrderNotificationService(t)
	ctx := context.Background()
	user := &entity.User{ID: uuid.New(), Email: "jane@example.com"}

	devices := make([]*entity.UserDevice, 0, pushBatchSize+1)
	for i := range pushBatchSize + 1 {
		devices = append(devices, &entity.UserDevice{ID: uuid.New(), UserID: user.ID, FCMToken: fmt.Sprintf("token-%d", i)})
	}

	userRepo.On("FindByID", ctx, user.ID).Return(user, nil)
	mailer.On("Send", ctx, mock.Anything).Return(errors.New("smtp down"))
	deviceRepo.On("FindActiveDevicesByUser", ctx, user.ID).Return(devices, nil)
	pusher.On("Push", ctx, mock.MatchedBy(func(tokens []string) bool { return len(tokens) == pushBatchSize }), mock.Anything).
		Return(&service.PushReport{Sent: pushBatchSize}, nil).Once()
	pusher.On("Push", ctx, mock.MatchedBy(func(tokens []string) bool { return len(tokens) == 1 }), mock.Anything).
		Return(nil, errors.New("fcm unavailable")).Once()

	result, err := svc.HandleOrderEvent(ctx, shippedEvent(user.ID))
	require.NoError(t, err)
	assert.False(t, result.EmailSent)
	assert.Equal(t, pushBatchSize, result.PushSent)
	assert.Equal(t, 1, result.PushFailed)
}

func TestOrderNotificationService_HandleOrderEvent_DeletedCustomer(t *testing.T) {
	svc, userRepo, _, _, _ := createTestOrderNotificationService(t)
	userID := uuid.New()

	userRepo.On("FindByID", mock.Anything, userID).Return(nil, repository.ErrUserNotFound)

	result, err := svc.HandleOrderEvent(context.Background(), shippedEvent(userID))
	require.NoError(t, err)
	assert.False(t, result.EmailSent)
}

func TestOrderNotificationService_HandleOrderEvent_RetryableFailure(t *testing.T) {
	svc, userRepo, _, _, _ := createTestOrderNotificationService(t)
	userID := uuid.New()

	userRepo.On("FindByID", mock.Anything, userID).Return(nil, errors.New("connection refused"))

	_, err := svc.HandleOrderEvent(context.Background(), shippedEvent(userID))
	assert.Error(t, err)
}

func TestOrderEventMessage(t *testing.T) {
	created := &service.OrderEvent{Type: EventOrderCreated, OrderID: "abcdef12-3456", Currency: "INR", TotalAmount: "2500.00"}
	title, body := orderEventMessage(created)
	assert.Equal(t, "Order #ABCDEF12 placed", title)
	assert.Contains(t, body, "INR 2500.00")

	rejected := &service.OrderEvent{Type: EventOrderStatusChanged, OrderID: "abcdef12-3456", Status: "rejected"}
	title, _ = orderEventMessage(rejected)
	assert.Equal(t, "Order #ABCDEF12 cancelled", title)
}
