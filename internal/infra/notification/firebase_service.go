package notification

import (
	"context"

	"storefront/config"
	"storefront/internal/domain/service"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"github.com/pkg/errors"
	"google.golang.org/api/option"
)

// MaxMulticastTokens is FCM's per-request token limit.
const MaxMulticastTokens = 500

type firebaseNotifier struct {
	client *messaging.Client
}

// NewFirebaseNotifier creates the FCM-backed push notifier.
func NewFirebaseNotifier(ctx context.Context, cfg *config.FirebaseConfig) (service.PushNotifier, error) {
	if cfg == nil || cfg.CredentialsPath == "" {
		return nil, errors.New("firebase credentials path is required")
	}

	var appConfig *firebase.Config
	if cfg.ProjectID != "" {
		appConfig = &firebase.Config{ProjectID: cfg.ProjectID}
	}

	app, err := firebase.NewApp(ctx, appConfig, option.WithCredentialsFile(cfg.CredentialsPath))
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize Firebase app")
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get messaging client")
	}

	return &firebaseNotifier{client: client}, nil
}

// Push sends msg to every token, MaxMulticastTokens per FCM request.
func (s *firebaseNotifier) Push(ctx context.Context, tokens []string, msg *service.PushMessage) (*service.PushReport, error) {
	report := &service.PushReport{}

	for start := 0; start < len(tokens); start += MaxMulticastTokens {
		chunk := tokens[start:min(start+MaxMulticastTokens, len(tokens))]

		resp, err := s.client.SendEachForMulticast(ctx, multicast(chunk, msg))
		if err != nil {
			return report, errors.Wrap(err, "failed to send multicast notification")
		}

		report.Sent += resp.SuccessCount
		report.Failed += resp.FailureCount
		for idx, r := range resp.Responses {
			if r.Error != nil && tokenGone(r.Error) {
				report.InvalidTokens = append(report.InvalidTokens, chunk[idx])
			}
		}
	}

	return report, nil
}

func multicast(tokens []string, msg *service.PushMessage) *messaging.MulticastMessage {
	return &messaging.MulticastMessage{
		Tokens: tokens,
		Notification: &messaging.Notification{
			Title: msg.Title,
			Body:  msg.Body,
		},
		Data: msg.Data,
		Android: &messaging.AndroidConfig{
			Priority:     "high",
			Notification: &messaging.AndroidNotification{Tag: msg.Data["order_id"]},
		},
	}
}

// tokenGone reports errors after which the token will never work again.
func tokenGone(err error) bool {
	return messaging.IsInvalidArgument(err) || messaging.IsUnregistered(err)
}
