// Package mail delivers transactional email. Only a logging mailer exists;
// messages are written to the application log instead of being sent.
package mail

import (
	"context"
	"log/slog"

	"storefront/config"
	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/service"

	"github.com/pkg/errors"
)

type logMailer struct {
	from   string
	logger *slog.Logger
}

// NewLogMailer creates a mailer that logs every message
func NewLogMailer(cfg *config.Config, logger *slog.Logger) service.Mailer {
	from := "no-reply@storefront.local"
	if cfg.Mail != nil && cfg.Mail.From != "" {
		from = cfg.Mail.From
	}

	return &logMailer{from: from, logger: logger}
}

func (m *logMailer) Send(ctx context.Context, msg *service.MailMessage) error {
	if msg == nil || msg.To == "" {
		return errors.New("mail recipient is required")
	}

	deliverycontext.GetLoggerOrDefault(ctx, m.logger).Info("[Mail] Outgoing email",
		slog.String("from", m.from),
		slog.String("to", msg.To),
		slog.String("subject", msg.Subject),
		slog.String("body", msg.Body),
	)

	return nil
}
