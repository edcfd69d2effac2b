package impl

import (
	"context"
	"strings"
	"testing"
	"time"

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

type checkoutFixtures struct {
	service   *checkoutService
	repos     *mockRepo.MockRepositoryFactory
	tx        *mockRepo.MockTransactionManager
	gateway   *mockService.MockPaymentGateway
	locker    *mockService.MockLocker
	metrics   *mockService.MockBusinessMetrics
	publisher *mockService.MockEventPublisher
	feed      *mockService.MockOrderFeed
}

func createTestCheckoutService(t *testing.T) checkoutFixtures {
	repos, tx := newTestRepos(t)
	fx := checkoutFixtures{
		repos:     repos,
		tx:        tx,
		gateway:   mockService.NewMockPaymentGateway(t),
		locker:    mockService.NewMockLocker(t),
		metrics:   mockService.NewMockBusinessMetrics(t),
		publisher: mockService.NewMockEventPublisher(t),
		feed:      mockService.NewMockOrderFeed(t),
	}

	svc := NewCheckoutService(CheckoutServiceParams{
		TxManager:  tx,
		CartRepo:   repos.Carts,
		IntentRepo: repos.Intents,
		OrderRepo:  repos.Orders,
		Gateway:    fx.gateway,
		Locker:     fx.locker,
		Metrics:    fx.metrics,
		Publisher:  fx.publisher,
		Feed:       fx.feed,
		Config:     newTestConfig(0),
		Logger:     newDiscardLogger(),
	}).(*checkoutService)
	svc.now = fixedNow
	fx.service = svc

	fx.gateway.On("Provider").Return("fake").Maybe()

	return fx
}

func (fx checkoutFixtures) expectLock(userID uuid.UUID) {
	fx.locker.On("Acquire", mock.Anything, "checkout:"+userID.String()).Return(nil, nil)
}

// scenarioCart is product A (1000) x2 and product B (500) x1.
func scenarioCart(userID uuid.UUID) (a, b *entity.Product, lines []*entity.CartItem) {
	a = newProduct("Copper Bottle", "1000", 10)
	b = newProduct("Steel Tumbler", "500", 10)
	lines = []*entity.CartItem{
		{ID: uuid.New(), UserID: userID, ProductID: a.ID, Quantity: 2, Product: a},
		{ID: uuid.New(), UserID: userID, ProductID: b.ID, Quantity: 1, Product: b},
	}

	return a, b, lines
}

func pendingIntent(userID uuid.UUID, a, b *entity.Product) *entity.PaymentIntent {
	return &entity.PaymentIntent{
		ID:              uuid.New(),
		UserID:          userID,
		Provider:        "fake",
		GatewayOrderID:  "order_fake_1",
		Amount:          money("2500"),
		Currency:        "INR",
		ShippingAddress: "221B Baker Street",
		Items: []entity.IntentItem{
			{ProductID: a.ID, Name: a.Name, Quantity: 2, UnitPrice: money("1000")},
			{ProductID: b.ID, Name: b.Name, Quantity: 1, UnitPrice: money("500")},
		},
		Status:    entity.PaymentIntentPending,
		ExpiresAt: testNow.Add(10 * time.Minute),
	}
}

func confirmationFor(intent *entity.PaymentIntent) *service.PaymentConfirmation {
	return &service.PaymentConfirmation{
		GatewayOrderID: intent.GatewayOrderID,
		PaymentID:      "pay_fake_1",
		Signature:      "sig",
	}
}

func TestCheckoutService_CreatePaymentOrder_Success(t *testing.T) {
	fx := createTestCheckoutService(t)
	ctx := context.Background()
	userID := uuid.New()
	_, _, lines := scenarioCart(userID)

	fx.expectLock(userID)
	fx.repos.Carts.On("FindByUser", ctx, userID).Return(lines, nil)
	fx.gateway.On("CreateOrder", ctx, mock.MatchedBy(func(req *service.CreatePaymentOrderRequest) bool {
		return req.Amount.Equal(money("2500")) && req.Currency == "INR" && req.Receipt != "" && len(req.Items) == 2
	})).Return(&service.PaymentOrder{GatewayOrderID: "order_fake_1", AmountMinor: 250000, Currency: "INR"}, nil)
	fx.gateway.On("PublicKey").Return("key_test")
	fx.repos.Intents.On("Create", ctx, mock.MatchedBy(func(intent *entity.PaymentIntent) bool {
		return intent.Status == entity.PaymentIntentPending &&
			intent.GatewayOrderID == "order_fake_1" &&
			intent.Amount.Equal(money("2500")) &&
			intent.ExpiresAt.Equal(testNow.Add(30*time.Minute)) &&
			intent.Items[0].UnitPrice.Equal(money("1000")) &&
			intent.Items[1].UnitPrice.Equal(money("500"))
	})).Return(nil)
	fx.metrics.On("CheckoutStarted", "fake").Return()

	amount := money("2500")
	out, err := fx.service.CreatePaymentOrder(ctx, userID, &usecase.CreatePaymentOrderInput{
		Amount:          &amount,
		ShippingAddress: "221B Baker Street",
	})
	require.NoError(t, err)
	assert.Equal(t, "order_fake_1", out.OrderID)
	assert.Equal(t, int64(250000), out.AmountMinor)
	assert.True(t, money("2500").Equal(out.Amount))
	assert.Equal(t, "key_test", out.KeyID)
	assert.Equal(t, "fake", out.Provider)
}

func TestCheckoutService_CreatePaymentOrder_StructuredShipping(t *testing.T) {
	fx := createTestCheckoutService(t)
	ctx := context.Background()
	userID := uuid.New()
	_, _, lines := scenarioCart(userID)

	fx.expectLock(userID)
	fx.repos.Carts.On("FindByUser", ctx, userID).Return(lines, nil)
	fx.gateway.On("CreateOrder", ctx, mock.MatchedBy(func(req *service.CreatePaymentOrderRequest) bool {
		return req.CustomerEmail == "jane@example.com"
	})).Return(&service.PaymentOrder{GatewayOrderID: "order_fake_2"}, nil)
	fx.gateway.On("PublicKey").Return("key_test")

	var stored *entity.PaymentIntent
	fx.repos.Intents.On("Create", ctx, mock.Anything).
		Run(func(args mock.Arguments) { stored = args.Get(1).(*entity.PaymentIntent) }).
		Return(nil)
	fx.metrics.On("CheckoutStarted", "fake").Return()

	out, err := fx.service.CreatePaymentOrder(ctx, userID, &usecase.CreatePaymentOrderInput{
		Shipping: &usecase.ShippingDetails{
			FullName: "Jane Doe",
			Email:    "Jane@Example.com",
			Phone:    "9876543210",
			Address:  "12 MG Road",
			City:     "Pune",
			State:    "MH",
			Pincode:  "411001",
		},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(250000), out.AmountMinor)

	require.NotNil(t, stored)
	assert.Equal(t, "Jane Doe\n12 MG Road\nPune, MH - 411001\nPhone: 9876543210\nEmail: jane@example.com", stored.ShippingAddress)
}

func TestCheckoutService_CreatePaymentOrder_Rejections(t *testing.T) {
	userID := uuid.New()

	t.Run("missing address", func(t *testing.T) {
		fx := createTestCheckoutService(t)

		_, err := fx.service.CreatePaymentOrder(context.Background(), userID, &usecase.CreatePaymentOrderInput{})
		assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
	})

	t.Run("bad pincode", func(t *testing.T) {
		fx := createTestCheckoutService(t)

		_, err := fx.service.CreatePaymentOrder(context.Background(), userID, &usecase.CreatePaymentOrderInput{
			Shipping: &usecase.ShippingDetails{
				FullName: "Jane Doe", Email: "jane@example.com", Phone: "9876543210",
				Address: "12 MG Road", City: "Pune", State: "MH", Pincode: "4110",
			},
		})
		require.ErrorIs(t, err, domainerrors.ErrValidationFailed)

		var appErr domainerrors.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, "Pincode must be 6 digits", appErr.Message())
	})

	t.Run("checkout already running", func(t *testing.T) {
		fx := createTestCheckoutService(t)
		fx.locker.On("Acquire", mock.Anything, "checkout:"+userID.String()).Return(nil, service.ErrLockHeld)

		_, err := fx.service.CreatePaymentOrder(context.Background(), userID, &usecase.CreatePaymentOrderInput{ShippingAddress: "addr"})
		assert.ErrorIs(t, err, domainerrors.ErrCheckoutInProgress)
	})

	t.Run("empty cart", func(t *testing.T) {
		fx := createTestCheckoutService(t)
		fx.expectLock(userID)
		fx.repos.Carts.On("FindByUser", mock.Anything, userID).Return([]*entity.CartItem{}, nil)

		_, err := fx.service.CreatePaymentOrder(context.Background(), userID, &usecase.CreatePaymentOrderInput{ShippingAddress: "addr"})
		assert.ErrorIs(t, err, domainerrors.ErrCartEmpty)
	})

	t.Run("amount mismatch", func(t *testing.T) {
		fx := createTestCheckoutService(t)
		_, _, lines := scenarioCart(userID)
		fx.expectLock(userID)
		fx.repos.Carts.On("FindByUser", mock.Anything, userID).Return(lines, nil)

		tampered := money("1")
		_, err := fx.service.CreatePaymentOrder(context.Background(), userID, &usecase.CreatePaymentOrderInput{
			Amount:          &tampered,
			ShippingAddress: "addr",
		})
		assert.ErrorIs(t, err, domainerrors.ErrAmountMismatch)
	})

	t.Run("client items differ", func(t *testing.T) {
		fx := createTestCheckoutService(t)
		a, _, lines := scenarioCart(userID)
		fx.expectLock(userID)
		fx.repos.Carts.On("FindByUser", mock.Anything, userID).Return(lines, nil)

		_, err := fx.service.CreatePaymentOrder(context.Background(), userID, &usecase.CreatePaymentOrderInput{
			Items:           []usecase.CheckoutItem{{ProductID: a.ID, Quantity: 2}},
			ShippingAddress: "addr",
		})
		assert.ErrorIs(t, err, domainerrors.ErrCartChanged)
	})

	t.Run("line above stock", func(t *testing.T) {
		fx := createTestCheckoutService(t)
		a, _, lines := scenarioCart(userID)
		a.Stock = 1
		fx.expectLock(userID)
		fx.repos.Carts.On("FindByUser", mock.Anything, userID).Return(lines, nil)

		_, err := fx.service.CreatePaymentOrder(context.Background(), userID, &usecase.CreatePaymentOrderInput{ShippingAddress: "addr"})
		assert.ErrorIs(t, err, domainerrors.ErrInsufficientStock)
	})

	t.Run("gateway down", func(t *testing.T) {
		fx := createTestCheckoutService(t)
		_, _, lines := scenarioCart(userID)
		fx.expectLock(userID)
		fx.repos.Carts.On("FindByUser", mock.Anything, userID).Return(lines, nil)
		fx.gateway.On("CreateOrder", mock.Anything, mock.Anything).Return(nil, errors.New("502 from gateway"))

		_, err := fx.service.CreatePaymentOrder(context.Background(), userID, &usecase.CreatePaymentOrderInput{ShippingAddress: "addr"})
		assert.ErrorIs(t, err, domainerrors.ErrPaymentGateway)
	})
}

func TestCheckoutService_VerifyPayment_CreatesOrderFromSnapshot(t *testing.T) {
	fx := createTestCheckoutService(t)
	ctx := context.Background()
	userID := uuid.New()
	a, b, _ := scenarioCart(userID)
	intent := pendingIntent(userID, a, b)
	confirmation := confirmationFor(intent)

	// prices changed after the intent was created; the order keeps the snapshot
	a.Price = money("1200")

	fx.expectLock(userID)
	fx.repos.Intents.On("FindByGatewayOrderID", ctx, "order_fake_1").Return(intent, nil)
	fx.gateway.On("VerifyPayment", ctx, confirmation).Return(nil)
	fx.repos.Products.On("DecrementStock", ctx, a.ID, 2).Return(nil)
	fx.repos.Products.On("DecrementStock", ctx, b.ID, 1).Return(nil)

	var created *entity.Order
	fx.repos.Orders.On("Create", ctx, mock.Anything).
		Run(func(args mock.Arguments) { created = args.Get(1).(*entity.Order) }).
		Return(nil)
	fx.repos.Intents.On("MarkVerified", ctx, intent.ID, mock.AnythingOfType("uuid.UUID")).Return(nil)
	fx.repos.Carts.On("ClearByUser", ctx, userID).Return(nil)
	fx.metrics.On("PaymentVerified", "fake", "success").Return()
	fx.publisher.On("PublishOrderEvent", ctx, mock.MatchedBy(func(event *service.OrderEvent) bool {
		return event.Type == EventOrderCreated && event.Status == "pending" && event.TotalAmount == "2500.00"
	})).Return(nil)
	fx.feed.On("Publish", mock.Anything).Return()

	out, err := fx.service.VerifyPayment(ctx, userID, confirmation)
	require.NoError(t, err)
	assert.False(t, out.AlreadyVerified)
	assert.Equal(t, 1, fx.tx.Executions)

	order := out.Order
	require.Same(t, created, order)
	assert.True(t, money("2500").Equal(order.TotalAmount))
	assert.True(t, entity.SumOrderItems(order.Items).Equal(order.TotalAmount))
	assert.Equal(t, entity.OrderStatusPending, order.Status)
	assert.Equal(t, entity.PaymentStatusPaid, order.PaymentStatus)
	assert.Equal(t, "pay_fake_1", order.PaymentID)
	require.Len(t, order.Items, 2)
	assert.True(t, money("1000").Equal(order.Items[0].PriceAtPurchase))
	assert.True(t, money("500").Equal(order.Items[1].PriceAtPurchase))
	assert.Equal(t, order.ID, order.Items[0].OrderID)
}

func TestCheckoutService_VerifyPayment_TamperedSignature(t *testing.T) {
	fx := createTestCheckoutService(t)
	ctx := context.Background()
	userID := uuid.New()
	a, b, _ := scenarioCart(userID)
	intent := pendingIntent(userID, a, b)
	confirmation := confirmationFor(intent)
	confirmation.Signature = "forged"

	fx.expectLock(userID)
	fx.repos.Intents.On("FindByGatewayOrderID", ctx, "order_fake_1").Return(intent, nil)
	fx.gateway.On("VerifyPayment", ctx, confirmation).Return(service.ErrSignatureMismatch)
	fx.repos.Intents.On("MarkFailed", ctx, intent.ID, "signature mismatch").Return(nil)
	fx.metrics.On("PaymentVerified", "fake", "signature_mismatch").Return()

	out, err := fx.service.VerifyPayment(ctx, userID, confirmation)
	require.Error(t, err)
	assert.Nil(t, out)
	assert.ErrorIs(t, err, domainerrors.ErrPaymentVerificationFailed)
	assert.Equal(t, 0, fx.tx.Executions)

	fx.repos.Orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	fx.repos.Carts.AssertNotCalled(t, "ClearByUser", mock.Anything, mock.Anything)
}

func TestCheckoutService_VerifyPayment_IsIdempotent(t *testing.T) {
	fx := createTestCheckoutService(t)
	ctx := context.Background()
	userID := uuid.New()
	a, b, _ := scenarioCart(userID)
	intent := pendingIntent(userID, a, b)
	intent.Status = entity.PaymentIntentVerified
	existing := &entity.Order{ID: uuid.New(), UserID: userID, GatewayOrderID: intent.GatewayOrderID}

	fx.expectLock(userID)
	fx.repos.Intents.On("FindByGatewayOrderID", ctx, "order_fake_1").Return(intent, nil)
	fx.repos.Orders.On("FindByGatewayOrderID", ctx, "order_fake_1").Return(existing, nil)

	out, err := fx.service.VerifyPayment(ctx, userID, confirmationFor(intent))
	require.NoError(t, err)
	assert.True(t, out.AlreadyVerified)
	assert.Same(t, existing, out.Order)
	assert.Equal(t, 0, fx.tx.Executions)
	fx.gateway.AssertNotCalled(t, "VerifyPayment", mock.Anything, mock.Anything)
}

func TestCheckoutService_VerifyPayment_StockExhausted(t *testing.T) {
	fx := createTestCheckoutService(t)
	ctx := context.Background()
	userID := uuid.New()
	a, b, _ := scenarioCart(userID)
	intent := pendingIntent(userID, a, b)
	confirmation := confirmationFor(intent)

	fx.expectLock(userID)
	fx.repos.Intents.On("FindByGatewayOrderID", ctx, "order_fake_1").Return(intent, nil)
	fx.gateway.On("VerifyPayment", ctx, confirmation).Return(nil)
	fx.repos.Products.On("DecrementStock", ctx, a.ID, 2).Return(nil)
	fx.repos.Products.On("DecrementStock", ctx, b.ID, 1).Return(repository.ErrInsufficientStock)
	fx.repos.Intents.On("MarkFailed", ctx, intent.ID, "insufficient stock").Return(nil)
	fx.metrics.On("PaymentVerified", "fake", "stock").Return()

	_, err := fx.service.VerifyPayment(ctx, userID, confirmation)
	require.ErrorIs(t, err, domainerrors.ErrInsufficientStock)

	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.True(t, strings.HasPrefix(appErr.Message(), "Steel Tumbler sold out"))

	fx.repos.Orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	fx.repos.Carts.AssertNotCalled(t, "ClearByUser", mock.Anything, mock.Anything)
}

func TestCheckoutService_VerifyPayment_LostRaceReturnsWinner(t *testing.T) {
	fx := createTestCheckoutService(t)
	ctx := context.Background()
	userID := uuid.New()
	a, b, _ := scenarioCart(userID)
	intent := pendingIntent(userID, a, b)
	confirmation := confirmationFor(intent)
	winner := &entity.Order{ID: uuid.New(), UserID: userID, GatewayOrderID: intent.GatewayOrderID}

	fx.expectLock(userID)
	fx.repos.Intents.On("FindByGatewayOrderID", ctx, "order_fake_1").Return(intent, nil)
	fx.gateway.On("VerifyPayment", ctx, confirmation).Return(nil)
	fx.repos.Products.On("DecrementStock", ctx, mock.Anything, mock.Anything).Return(nil)
	fx.repos.Orders.On("Create", ctx, mock.Anything).Return(nil)
	fx.repos.Intents.On("MarkVerified", ctx, intent.ID, mock.Anything).Return(repository.ErrPaymentIntentStateChanged)
	fx.repos.Orders.On("FindByGatewayOrderID", ctx, "order_fake_1").Return(winner, nil)

	out, err := fx.service.VerifyPayment(ctx, userID, confirmation)
	require.NoError(t, err)
	assert.True(t, out.AlreadyVerified)
	assert.Same(t, winner, out.Order)
	fx.publisher.AssertNotCalled(t, "PublishOrderEvent", mock.Anything, mock.Anything)
}

func TestCheckoutService_VerifyPayment_Rejections(t *testing.T) {
	userID := uuid.New()

	t.Run("incomplete confirmation", func(t *testing.T) {
		fx := createTestCheckoutService(t)

		_, err := fx.service.VerifyPayment(context.Background(), userID, &service.PaymentConfirmation{PaymentID: "pay_1"})
		assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
	})

	t.Run("fields the gateway needs are missing", func(t *testing.T) {
		fx := createTestCheckoutService(t)
		a, b, _ := scenarioCart(userID)
		intent := pendingIntent(userID, a, b)
		confirmation := &service.PaymentConfirmation{GatewayOrderID: intent.GatewayOrderID}
		fx.expectLock(userID)
		fx.repos.Intents.On("FindByGatewayOrderID", mock.Anything, intent.GatewayOrderID).Return(intent, nil)
		fx.gateway.On("VerifyPayment", mock.Anything, confirmation).
			Return(errors.Wrap(service.ErrIncompleteConfirmation, "signature is required"))

		_, err := fx.service.VerifyPayment(context.Background(), userID, confirmation)
		assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
		fx.repos.Intents.AssertNotCalled(t, "MarkFailed", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown intent", func(t *testing.T) {
		fx := createTestCheckoutService(t)
		fx.expectLock(userID)
		fx.repos.Intents.On("FindByGatewayOrderID", mock.Anything, "order_missing").Return(nil, repository.ErrPaymentIntentNotFound)

		_, err := fx.service.VerifyPayment(context.Background(), userID, &service.PaymentConfirmation{
			GatewayOrderID: "order_missing", PaymentID: "pay", Signature: "sig",
		})
		assert.ErrorIs(t, err, domainerrors.ErrPaymentIntentNotFound)
	})

	t.Run("intent of another user", func(t *testing.T) {
		fx := createTestCheckoutService(t)
		a, b, _ := scenarioCart(userID)
		intent := pendingIntent(uuid.New(), a, b)
		fx.expectLock(userID)
		fx.repos.Intents.On("FindByGatewayOrderID", mock.Anything, intent.GatewayOrderID).Return(intent, nil)

		_, err := fx.service.VerifyPayment(context.Background(), userID, confirmationFor(intent))
		assert.ErrorIs(t, err, domainerrors.ErrPaymentIntentNotFound)
	})

	t.Run("failed intent", func(t *testing.T) {
		fx := createTestCheckoutService(t)
		a, b, _ := scenarioCart(userID)
		intent := pendingIntent(userID, a, b)
		intent.Status = entity.PaymentIntentFailed
		fx.expectLock(userID)
		fx.repos.Intents.On("FindByGatewayOrderID", mock.Anything, intent.GatewayOrderID).Return(intent, nil)

		_, err := fx.service.VerifyPayment(context.Background(), userID, confirmationFor(intent))
		assert.ErrorIs(t, err, domainerrors.ErrPaymentIntentClosed)
	})
}

func TestCheckoutService_VerifyPayment_SettlesExpiredIntent(t *testing.T) {
	tests := []struct {
		name   string
		expire func(intent *entity.PaymentIntent)
	}{
		{
			name:   "pending past its deadline",
			expire: func(intent *entity.PaymentIntent) { intent.ExpiresAt = testNow.Add(-time.Second) },
		},
		{
			name: "expired by the sweeper",
			expire: func(intent *entity.PaymentIntent) {
				intent.ExpiresAt = testNow.Add(-time.Hour)
				intent.Status = entity.PaymentIntentExpired
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := createTestCheckoutService(t)
			ctx := context.Background()
			userID := uuid.New()
			a, b, _ := scenarioCart(userID)
			intent := pendingIntent(userID, a, b)
			tt.expire(intent)
			confirmation := confirmationFor(intent)

			fx.expectLock(userID)
			fx.repos.Intents.On("FindByGatewayOrderID", ctx, "order_fake_1").Return(intent, nil)
			fx.gateway.On("VerifyPayment", ctx, confirmation).Return(nil)
			fx.repos.Products.On("DecrementStock", ctx, a.ID, 2).Return(nil)
			fx.repos.Products.On("DecrementStock", ctx, b.ID, 1).Return(nil)
			fx.repos.Orders.On("Create", ctx, mock.Anything).Return(nil)
			fx.repos.Intents.On("MarkVerified", ctx, intent.ID, mock.AnythingOfType("uuid.UUID")).Return(nil)
			fx.repos.Carts.On("ClearByUser", ctx, userID).Return(nil)
			fx.metrics.On("PaymentVerified", "fake", "success").Return()
			fx.publisher.On("PublishOrderEvent", ctx, mock.Anything).Return(nil)
			fx.feed.On("Publish", mock.Anything).Return()

			out, err := fx.service.VerifyPayment(ctx, userID, confirmation)
			require.NoError(t, err)
			assert.False(t, out.AlreadyVerified)
			assert.True(t, money("2500").Equal(out.Order.TotalAmount))
			fx.gateway.AssertNumberOfCalls(t, "VerifyPayment", 1)
		})
	}
}

func TestCheckoutService_VerifyPayment_ExpiredIntentOutOfStock(t *testing.T) {
	fx := createTestCheckoutService(t)
	ctx := context.Background()
	userID := uuid.New()
	a, b, _ := scenarioCart(userID)
	intent := pendingIntent(userID, a, b)
	intent.Status = entity.PaymentIntentExpired
	confirmation := confirmationFor(intent)

	fx.expectLock(userID)
	fx.repos.Intents.On("FindByGatewayOrderID", ctx, "order_fake_1").Return(intent, nil)
	fx.gateway.On("VerifyPayment", ctx, confirmation).Return(nil)
	fx.repos.Products.On("DecrementStock", ctx, a.ID, 2).Return(repository.ErrInsufficientStock)
	fx.repos.Intents.On("MarkFailed", ctx, intent.ID, "insufficient stock").Return(nil)
	fx.metrics.On("PaymentVerified", "fake", "stock").Return()

	_, err := fx.service.VerifyPayment(ctx, userID, confirmation)
	require.ErrorIs(t, err, domainerrors.ErrInsufficientStock)
	assert.NotErrorIs(t, err, domainerrors.ErrPaymentIntentClosed)

	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Contains(t, appErr.Message(), "contact support")
}

func TestCheckoutService_VerifyPayment_PaymentStillSettling(t *testing.T) {
	fx := createTestCheckoutService(t)
	ctx := context.Background()
	userID := uuid.New()
	a, b, _ := scenarioCart(userID)
	intent := pendingIntent(userID, a, b)
	confirmation := &service.PaymentConfirmation{GatewayOrderID: intent.GatewayOrderID}

	fx.expectLock(userID)
	fx.repos.Intents.On("FindByGatewayOrderID", ctx, "order_fake_1").Return(intent, nil)
	fx.gateway.On("VerifyPayment", ctx, confirmation).
		Return(errors.Wrap(service.ErrPaymentNotCompleted, "checkout session is unpaid"))
	fx.metrics.On("PaymentVerified", "fake", "pending").Return()

	_, err := fx.service.VerifyPayment(ctx, userID, confirmation)
	require.ErrorIs(t, err, domainerrors.ErrPaymentPending)

	fx.repos.Intents.AssertNotCalled(t, "MarkFailed", mock.Anything, mock.Anything, mock.Anything)
	fx.repos.Orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
