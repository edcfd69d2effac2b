package impl

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"storefront/config"
	mockRepo "storefront/internal/mocks/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var testNow = time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig(maxActiveSessions int) *config.Config {
	return &config.Config{
		Auth: &config.AuthConfig{
			BcryptCost:        4,
			MaxActiveSessions: maxActiveSessions,
			VerifyTokenTTL:    time.Hour,
		},
		Payment: &config.PaymentConfig{
			Provider:  "fake",
			Currency:  "INR",
			IntentTTL: 30 * time.Minute,
		},
		Storage: &config.StorageConfig{
			MaxUploadBytes: 1024,
			AllowedTypes:   []string{"image/jpeg", "image/png", "image/webp", "image/gif"},
		},
		Mail: &config.MailConfig{
			AppBaseURL: "https://shop.example.com",
		},
	}
}

// newTestRepos builds a repository factory and a transaction manager that runs against it.
func newTestRepos(t *testing.T) (*mockRepo.MockRepositoryFactory, *mockRepo.MockTransactionManager) {
	factory := mockRepo.NewMockRepositoryFactory(t)

	return factory, mockRepo.NewMockTransactionManager(factory)
}

func money(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func fixedNow() time.Time {
	return testNow
}

func uuidPtr(id uuid.UUID) *uuid.UUID {
	return &id
}

func strPtr(s string) *string {
	return &s
}
