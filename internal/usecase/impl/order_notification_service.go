package impl

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"storefront/config"
	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// pushBatchSize matches the FCM multicast limit, so one failed request costs at most one batch.
const pushBatchSize = 500

type orderNotificationService struct {
	userRepo   repository.UserRepository
	deviceRepo repository.DeviceRepository
	mailer     service.Mailer
	pusher     service.PushNotifier
	appBaseURL string
	logger     *slog.Logger
}

// OrderNotificationServiceParams holds dependencies for OrderNotificationService, injected by Fx.
type OrderNotificationServiceParams struct {
	fx.In

	UserRepo   repository.UserRepository
	DeviceRepo repository.DeviceRepository
	Mailer     service.Mailer
	// Pusher is nil when Firebase is not configured.
	Pusher service.PushNotifier `optional:"true"`
	Config *config.Config
	Logger *slog.Logger
}

// NewOrderNotificationService creates the order notification use case run by the worker.
func NewOrderNotificationService(params OrderNotificationServiceParams) usecase.OrderNotificationUsecase {
	appBaseURL := defaultAppBaseURL
	if params.Config != nil && params.Config.Mail != nil && params.Config.Mail.AppBaseURL != "" {
		appBaseURL = strings.TrimRight(params.Config.Mail.AppBaseURL, "/")
	}

	return &orderNotificationService{
		userRepo:   params.UserRepo,
		deviceRepo: params.DeviceRepo,
		mailer:     params.Mailer,
		pusher:     params.Pusher,
		appBaseURL: appBaseURL,
		logger:     params.Logger,
	}
}

// HandleOrderEvent returns an error only for failures worth redelivering the event for.
func (s *orderNotificationService) HandleOrderEvent(ctx context.Context, event *service.OrderEvent) (*usecase.NotificationResult, error) {
	logger := deliverycontext.GetLoggerOrDefault(ctx, s.logger).With(
		slog.String("eventID", event.EventID),
		slog.String("orderID", event.OrderID),
		slog.String("type", event.Type),
	)
	result := &usecase.NotificationResult{}

	userID, err := uuid.Parse(event.UserID)
	if err != nil {
		logger.Warn("Dropping order event with invalid user id", slog.String("userID", event.UserID))
		return result, nil
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			logger.Info("Customer no longer exists, skipping notification")
			return result, nil
		}

		return nil, errors.Wrap(err, "failed to load customer")
	}

	title, body := orderEventMessage(event)

	mail := &service.MailMessage{
		To:      user.Email,
		Subject: title,
		Body:    fmt.Sprintf("Hi %s,\n\n%s\n\nView your order: %s/orders/%s\n", user.Name, body, s.appBaseURL, event.OrderID),
	}
	if err := s.mailer.Send(ctx, mail); err != nil {
		logger.Error("Failed to send order email", slog.Any("error", err))
	} else {
		result.EmailSent = true
	}

	if s.pusher == nil {
		return result, nil
	}

	devices, err := s.deviceRepo.FindActiveDevicesByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch devices")
	}

	if len(devices) == 0 {
		return result, nil
	}

	tokens := make([]string, 0, len(devices))
	byToken := make(map[string]*entity.UserDevice, len(devices))
	for _, device := range devices {
		tokens = append(tokens, device.FCMToken)
		byToken[device.FCMToken] = device
	}

	msg := &service.PushMessage{
		Title: title,
		Body:  body,
		Data: map[string]string{
			"type":     event.Type,
			"order_id": event.OrderID,
			"status":   event.Status,
		},
	}
	if event.TrackingNumber != "" {
		msg.Data["tracking_number"] = event.TrackingNumber
	}

	var invalidTokens []string
	for start := 0; start < len(tokens); start += pushBatchSize {
		batch := tokens[start:min(start+pushBatchSize, len(tokens))]

		report, err := s.pusher.Push(ctx, batch, msg)
		if err != nil {
			// Email already went out; a push outage is not worth redelivery.
			logger.Error("Failed to send push batch", slog.Int("size", len(batch)), slog.Any("error", err))
			result.PushFailed += len(batch)

			continue
		}

		result.PushSent += report.Sent
		result.PushFailed += report.Failed
		invalidTokens = append(invalidTokens, report.InvalidTokens...)
	}

	// Unregistered tokens are pruned so the next event skips them.
	for _, token := range invalidTokens {
		device, ok := byToken[token]
		if !ok {
			continue
		}
		if err := s.deviceRepo.DeleteDevice(ctx, device.ID); err != nil {
			logger.Error("Failed to delete invalid device", slog.Any("deviceID", device.ID), slog.Any("error", err))

			continue
		}
		result.InvalidTokens++
	}

	logger.Info("Order notification delivered",
		slog.Bool("emailSent", result.EmailSent),
		slog.Int("pushSent", result.PushSent),
		slog.Int("pushFailed", result.PushFailed),
		slog.Int("invalidTokens", result.InvalidTokens),
	)

	return result, nil
}

// orderEventMessage returns the title and body shown to the customer.
func orderEventMessage(event *service.OrderEvent) (string, string) {
	ref := shortOrderRef(event.OrderID)

	if event.Type == EventOrderCreated {
		return fmt.Sprintf("Order %s placed", ref),
			fmt.Sprintf("Thank you! We received your payment of %s %s. We'll let you know when your order ships.", event.Currency, event.TotalAmount)
	}

	switch entity.OrderStatus(event.Status) {
	case entity.OrderStatusConfirmed:
		return fmt.Sprintf("Order %s confirmed", ref), "Your order has been confirmed and is being packed."
	case entity.OrderStatusInTransit:
		return fmt.Sprintf("Order %s shipped", ref), fmt.Sprintf("Your order is on its way. Tracking number: %s", event.TrackingNumber)
	case entity.OrderStatusCompleted:
		return fmt.Sprintf("Order %s delivered", ref), "Your order has been delivered. We'd love to hear what you think, leave a review!"
	case entity.OrderStatusRejected:
		return fmt.Sprintf("Order %s cancelled", ref), "Your order could not be fulfilled. Your payment will be refunded."
	default:
		return fmt.Sprintf("Order %s updated", ref), fmt.Sprintf("Your order status is now %s.", event.Status)
	}
}

func shortOrderRef(orderID string) string {
	if len(orderID) > 8 {
		orderID = orderID[:8]
	}

	return "#" + strings.ToUpper(orderID)
}
