package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPaymentIntent_OpenAndSettleable(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		status         PaymentIntentStatus
		expiresAt      time.Time
		wantOpen       bool
		wantSettleable bool
	}{
		{status: PaymentIntentPending, expiresAt: now.Add(time.Minute), wantOpen: true, wantSettleable: true},
		{status: PaymentIntentPending, expiresAt: now.Add(-time.Minute), wantSettleable: true},
		{status: PaymentIntentExpired, expiresAt: now.Add(-time.Hour), wantSettleable: true},
		{status: PaymentIntentFailed, expiresAt: now.Add(time.Minute)},
		{status: PaymentIntentVerified, expiresAt: now.Add(time.Minute)},
	}

	for _, tt := range tests {
		intent := &PaymentIntent{Status: tt.status, ExpiresAt: tt.expiresAt}
		assert.Equal(t, tt.wantOpen, intent.IsOpen(now), "open %s", tt.status)
		assert.Equal(t, tt.wantSettleable, intent.Settleable(), "settleable %s", tt.status)
	}
}
