package mail

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"storefront/config"
	"storefront/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogMailer_Send(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	mailer := NewLogMailer(&config.Config{Mail: &config.MailConfig{From: "shop@example.com"}}, logger)

	err := mailer.Send(context.Background(), &service.MailMessage{
		To:      "jane@example.com",
		Subject: "Verify your email",
		Body:    "https://shop.example.com/verify-email?token=abc",
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `"to":"jane@example.com"`)
	assert.Contains(t, out, `"from":"shop@example.com"`)
	assert.Contains(t, out, "verify-email?token=abc")
}

func TestLogMailer_SendWithoutRecipient(t *testing.T) {
	mailer := NewLogMailer(&config.Config{}, slog.Default())

	assert.Error(t, mailer.Send(context.Background(), &service.MailMessage{Subject: "x"}))
}
