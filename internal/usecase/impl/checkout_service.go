package impl

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"storefront/config"
	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

const defaultIntentTTL = 30 * time.Minute

// errIntentSettled aborts a verification transaction that lost the race to another verifier.
var errIntentSettled = errors.New("payment intent settled concurrently")

type checkoutService struct {
	txManager  repository.TransactionManager
	cartRepo   repository.CartRepository
	intentRepo repository.PaymentIntentRepository
	orderRepo  repository.OrderRepository
	gateway    service.PaymentGateway
	locker     service.Locker
	metrics    service.BusinessMetrics
	notifier   orderNotifier
	currency   string
	intentTTL  time.Duration
	logger     *slog.Logger
	now        func() time.Time
}

// CheckoutServiceParams holds dependencies for CheckoutService, injected by Fx.
type CheckoutServiceParams struct {
	fx.In

	TxManager  repository.TransactionManager
	CartRepo   repository.CartRepository
	IntentRepo repository.PaymentIntentRepository
	OrderRepo  repository.OrderRepository
	Gateway    service.PaymentGateway
	Locker     service.Locker
	Metrics    service.BusinessMetrics
	Publisher  service.EventPublisher
	Feed       service.OrderFeed
	Config     *config.Config
	Logger     *slog.Logger
}

// NewCheckoutService creates the checkout use case.
func NewCheckoutService(params CheckoutServiceParams) usecase.CheckoutUsecase {
	intentTTL := defaultIntentTTL
	if params.Config != nil && params.Config.Payment != nil && params.Config.Payment.IntentTTL > 0 {
		intentTTL = params.Config.Payment.IntentTTL
	}

	return &checkoutService{
		txManager:  params.TxManager,
		cartRepo:   params.CartRepo,
		intentRepo: params.IntentRepo,
		orderRepo:  params.OrderRepo,
		gateway:    params.Gateway,
		locker:     params.Locker,
		metrics:    params.Metrics,
		notifier:   orderNotifier{publisher: params.Publisher, feed: params.Feed},
		currency:   paymentCurrency(params.Config),
		intentTTL:  intentTTL,
		logger:     params.Logger,
		now:        time.Now,
	}
}

func (s *checkoutService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, s.logger)
}

func (s *checkoutService) CreatePaymentOrder(ctx context.Context, userID uuid.UUID, input *usecase.CreatePaymentOrderInput) (*usecase.PaymentOrderOutput, error) {
	if input == nil {
		return nil, invalidInput("Request body is required")
	}

	address, email, err := shippingAddress(input)
	if err != nil {
		return nil, err
	}

	release, err := s.lock(ctx, userID)
	if err != nil {
		return nil, err
	}
	defer release()

	lines, err := s.cartRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, dataError(err, "failed to fetch cart")
	}
	if len(lines) == 0 {
		return nil, errors.Wrap(domainerrors.ErrCartEmpty, "cart is empty")
	}

	now := s.now()
	snapshot, total, err := snapshotCart(lines, now)
	if err != nil {
		return nil, err
	}

	if input.Amount != nil && !input.Amount.Round(2).Equal(total.Round(2)) {
		return nil, domainerrors.ErrAmountMismatch.WithDetails(
			fmt.Sprintf("expected %s, got %s", total.StringFixed(2), input.Amount.StringFixed(2)))
	}
	if len(input.Items) > 0 && !matchesCart(input.Items, lines) {
		return nil, errors.Wrap(domainerrors.ErrCartChanged, "client items differ from cart")
	}

	intentID := uuid.New()
	remote, err := s.gateway.CreateOrder(ctx, &service.CreatePaymentOrderRequest{
		Receipt:       intentID.String(),
		Amount:        total,
		Currency:      s.currency,
		Items:         snapshot,
		CustomerEmail: email,
	})
	if err != nil {
		s.log(ctx).Error("Payment gateway rejected order creation",
			slog.String("provider", s.gateway.Provider()),
			slog.Any("userID", userID),
			slog.Any("error", err),
		)
		return nil, errors.Wrap(domainerrors.ErrPaymentGateway, err.Error())
	}

	intent := &entity.PaymentIntent{
		ID:              intentID,
		UserID:          userID,
		Provider:        s.gateway.Provider(),
		GatewayOrderID:  remote.GatewayOrderID,
		Amount:          total,
		Currency:        s.currency,
		ShippingAddress: address,
		Items:           snapshot,
		Status:          entity.PaymentIntentPending,
		ExpiresAt:       now.Add(s.intentTTL),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.intentRepo.Create(ctx, intent); err != nil {
		return nil, dataError(err, "failed to create payment order")
	}

	s.metrics.CheckoutStarted(intent.Provider)
	s.log(ctx).Info("Payment intent created",
		slog.Any("userID", userID),
		slog.String("gatewayOrderID", intent.GatewayOrderID),
		slog.String("amount", total.StringFixed(2)),
	)

	amountMinor := remote.AmountMinor
	if amountMinor == 0 {
		amountMinor = entity.ToMinorUnits(total)
	}

	return &usecase.PaymentOrderOutput{
		OrderID:     intent.GatewayOrderID,
		Amount:      total,
		AmountMinor: amountMinor,
		Currency:    s.currency,
		KeyID:       s.gateway.PublicKey(),
		Provider:    intent.Provider,
		CheckoutURL: remote.CheckoutURL,
	}, nil
}

func (s *checkoutService) VerifyPayment(ctx context.Context, userID uuid.UUID, confirmation *service.PaymentConfirmation) (*usecase.VerifyPaymentOutput, error) {
	if confirmation == nil || confirmation.GatewayOrderID == "" {
		return nil, invalidInput("Payment order id is required")
	}

	release, err := s.lock(ctx, userID)
	if err != nil {
		return nil, err
	}
	defer release()

	intent, err := s.intentRepo.FindByGatewayOrderID(ctx, confirmation.GatewayOrderID)
	if err != nil {
		if errors.Is(err, repository.ErrPaymentIntentNotFound) {
			return nil, errors.Wrap(domainerrors.ErrPaymentIntentNotFound, "payment intent not found")
		}

		return nil, dataError(err, "failed to verify payment")
	}
	if intent.UserID != userID {
		return nil, errors.Wrap(domainerrors.ErrPaymentIntentNotFound, "payment intent belongs to another user")
	}

	now := s.now()
	if intent.Status == entity.PaymentIntentVerified {
		return s.existingOrder(ctx, intent)
	}
	if !intent.Settleable() {
		return nil, errors.Wrapf(domainerrors.ErrPaymentIntentClosed, "payment intent is %s", intent.Status)
	}

	// Expired intents are still settled once the gateway confirms payment.
	if err := s.gateway.VerifyPayment(ctx, confirmation); err != nil {
		return nil, s.verificationError(ctx, intent, err)
	}
	if !intent.IsOpen(now) {
		s.log(ctx).Warn("Payment confirmed after its intent expired",
			slog.Any("userID", userID),
			slog.String("gatewayOrderID", intent.GatewayOrderID),
			slog.String("status", string(intent.Status)),
		)
	}

	order := orderFromIntent(intent, confirmation.PaymentID, now)
	err = s.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		for _, item := range intent.Items {
			if err := repos.ProductRepo().DecrementStock(ctx, item.ProductID, item.Quantity); err != nil {
				if errors.Is(err, repository.ErrInsufficientStock) {
					return domainerrors.ErrInsufficientStock.WithMessage(
						fmt.Sprintf("%s sold out before your payment completed. If money was debited, please contact support", item.Name))
				}

				return dataError(err, "failed to reserve stock")
			}
		}

		if err := repos.OrderRepo().Create(ctx, order); err != nil {
			if errors.Is(err, repository.ErrDuplicateGatewayOrder) {
				return errIntentSettled
			}

			return dataError(err, "failed to create order")
		}

		if err := repos.PaymentIntentRepo().MarkVerified(ctx, intent.ID, order.ID); err != nil {
			if errors.Is(err, repository.ErrPaymentIntentStateChanged) {
				return errIntentSettled
			}

			return dataError(err, "failed to verify payment")
		}

		if err := repos.CartRepo().ClearByUser(ctx, userID); err != nil {
			return dataError(err, "failed to clear cart")
		}

		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, errIntentSettled):
			s.log(ctx).Info("Payment intent verified concurrently", slog.String("gatewayOrderID", intent.GatewayOrderID))
			return s.existingOrder(ctx, intent)
		case errors.Is(err, domainerrors.ErrInsufficientStock):
			s.failIntent(ctx, intent, "insufficient stock")
			s.metrics.PaymentVerified(intent.Provider, "stock")
		default:
			s.metrics.PaymentVerified(intent.Provider, "error")
		}

		return nil, err
	}

	s.metrics.PaymentVerified(intent.Provider, "success")
	s.log(ctx).Info("Order created from verified payment",
		slog.Any("orderID", order.ID),
		slog.Any("userID", userID),
		slog.String("total", order.TotalAmount.StringFixed(2)),
	)
	s.notifier.notify(ctx, s.log(ctx), newOrderEvent(ctx, EventOrderCreated, order, "", now))

	return &usecase.VerifyPaymentOutput{Order: order}, nil
}

// verificationError maps a gateway refusal. Only a forged confirmation closes
// the intent; missing fields and unsettled payments leave it pending.
func (s *checkoutService) verificationError(ctx context.Context, intent *entity.PaymentIntent, err error) error {
	switch {
	case errors.Is(err, service.ErrIncompleteConfirmation):
		return invalidInput("Payment confirmation is missing required fields")
	case errors.Is(err, service.ErrPaymentNotCompleted):
		s.metrics.PaymentVerified(intent.Provider, "pending")

		return errors.Wrap(domainerrors.ErrPaymentPending, err.Error())
	case errors.Is(err, service.ErrSignatureMismatch):
		s.log(ctx).Warn("Payment signature mismatch",
			slog.Any("userID", intent.UserID),
			slog.String("gatewayOrderID", intent.GatewayOrderID),
		)
		s.failIntent(ctx, intent, "signature mismatch")
		s.metrics.PaymentVerified(intent.Provider, "signature_mismatch")

		return errors.Wrap(domainerrors.ErrPaymentVerificationFailed, "signature mismatch")
	default:
		s.metrics.PaymentVerified(intent.Provider, "error")

		return errors.Wrap(domainerrors.ErrPaymentGateway, err.Error())
	}
}

func (s *checkoutService) existingOrder(ctx context.Context, intent *entity.PaymentIntent) (*usecase.VerifyPaymentOutput, error) {
	order, err := s.orderRepo.FindByGatewayOrderID(ctx, intent.GatewayOrderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, errors.Wrap(domainerrors.ErrOrderNotFound, "verified intent has no order")
		}

		return nil, dataError(err, "failed to fetch order")
	}

	return &usecase.VerifyPaymentOutput{Order: order, AlreadyVerified: true}, nil
}

func (s *checkoutService) failIntent(ctx context.Context, intent *entity.PaymentIntent, reason string) {
	err := s.intentRepo.MarkFailed(ctx, intent.ID, reason)
	if err != nil && !errors.Is(err, repository.ErrPaymentIntentStateChanged) {
		s.log(ctx).Error("Failed to mark payment intent as failed",
			slog.Any("intentID", intent.ID),
			slog.Any("error", err),
		)
	}
}

func (s *checkoutService) lock(ctx context.Context, userID uuid.UUID) (func(), error) {
	release, err := s.locker.Acquire(ctx, "checkout:"+userID.String())
	if err != nil {
		if errors.Is(err, service.ErrLockHeld) {
			return nil, errors.Wrap(domainerrors.ErrCheckoutInProgress, "checkout lock held")
		}

		return nil, errors.Wrap(domainerrors.ErrInternalError, err.Error())
	}

	return release, nil
}

// snapshotCart prices every line at its effective price and checks availability.
func snapshotCart(lines []*entity.CartItem, now time.Time) ([]entity.IntentItem, decimal.Decimal, error) {
	snapshot := make([]entity.IntentItem, 0, len(lines))
	for _, line := range lines {
		product := line.Product
		if product == nil || !product.IsActive {
			name := "A product in your cart"
			if product != nil {
				name = product.Name
			}
			return nil, decimal.Zero, domainerrors.ErrProductUnavailable.WithMessage(name + " is no longer available")
		}
		if line.Quantity > product.Stock {
			return nil, decimal.Zero, insufficientStock(product)
		}

		snapshot = append(snapshot, entity.IntentItem{
			ProductID: product.ID,
			Name:      product.Name,
			Quantity:  line.Quantity,
			UnitPrice: product.EffectivePrice(now),
		})
	}

	return snapshot, entity.SumIntentItems(snapshot), nil
}

// matchesCart reports whether the client's view of the cart has the same products and quantities.
func matchesCart(items []usecase.CheckoutItem, lines []*entity.CartItem) bool {
	want := make(map[uuid.UUID]int, len(lines))
	for _, line := range lines {
		want[line.ProductID] += line.Quantity
	}

	got := make(map[uuid.UUID]int, len(items))
	for _, item := range items {
		got[item.ProductID] += item.Quantity
	}

	if len(got) != len(want) {
		return false
	}
	for productID, qty := range want {
		if got[productID] != qty {
			return false
		}
	}

	return true
}

// shippingAddress returns the free-text address stored on the order and the
// customer email, if the structured form provided one.
func shippingAddress(input *usecase.CreatePaymentOrderInput) (string, string, error) {
	if input.Shipping == nil {
		address := strings.TrimSpace(input.ShippingAddress)
		if address == "" {
			return "", "", invalidInput("Shipping address is required")
		}

		return address, "", nil
	}

	d := *input.Shipping
	for _, field := range []struct{ value, label string }{
		{d.FullName, "Full name"},
		{d.Email, "Email"},
		{d.Phone, "Phone"},
		{d.Address, "Address"},
		{d.City, "City"},
		{d.State, "State"},
		{d.Pincode, "Pincode"},
	} {
		if strings.TrimSpace(field.value) == "" {
			return "", "", invalidInput(field.label + " is required")
		}
	}

	email := normalizeEmail(d.Email)
	if err := validateEmail(email); err != nil {
		return "", "", err
	}
	if !shippingPhonePattern.MatchString(strings.TrimSpace(d.Phone)) {
		return "", "", invalidInput("Phone number must be 10 digits")
	}
	if !pincodePattern.MatchString(strings.TrimSpace(d.Pincode)) {
		return "", "", invalidInput("Pincode must be 6 digits")
	}

	address := fmt.Sprintf("%s\n%s\n%s, %s - %s\nPhone: %s\nEmail: %s",
		strings.TrimSpace(d.FullName),
		strings.TrimSpace(d.Address),
		strings.TrimSpace(d.City),
		strings.TrimSpace(d.State),
		strings.TrimSpace(d.Pincode),
		strings.TrimSpace(d.Phone),
		email,
	)

	return address, email, nil
}

// orderFromIntent builds the order and its lines from the priced snapshot.
func orderFromIntent(intent *entity.PaymentIntent, paymentID string, now time.Time) *entity.Order {
	orderID := uuid.New()
	items := make([]*entity.OrderItem, 0, len(intent.Items))
	for _, item := range intent.Items {
		items = append(items, &entity.OrderItem{
			ID:              uuid.New(),
			OrderID:         orderID,
			ProductID:       item.ProductID,
			ProductName:     item.Name,
			Quantity:        item.Quantity,
			PriceAtPurchase: item.UnitPrice,
		})
	}

	return &entity.Order{
		ID:              orderID,
		UserID:          intent.UserID,
		TotalAmount:     entity.SumOrderItems(items),
		Currency:        intent.Currency,
		ShippingAddress: intent.ShippingAddress,
		Status:          entity.OrderStatusPending,
		PaymentStatus:   entity.PaymentStatusPaid,
		PaymentProvider: intent.Provider,
		GatewayOrderID:  intent.GatewayOrderID,
		PaymentID:       paymentID,
		Items:           items,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}
