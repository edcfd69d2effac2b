package errors

import (
	"database/sql"
	"net/http"
	"testing"

	"storefront/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseError_CopiesMatchSentinel(t *testing.T) {
	soldOut := ErrInsufficientStock.WithMessage("Steel Tumbler sold out")
	wrapped := errors.Wrap(soldOut, "verify payment")

	assert.ErrorIs(t, wrapped, ErrInsufficientStock)
	assert.NotErrorIs(t, wrapped, ErrPaymentPending)

	var appErr AppError
	require.True(t, errors.As(wrapped, &appErr))
	assert.Equal(t, http.StatusConflict, appErr.HTTPCode())
	assert.Equal(t, "INSUFFICIENT_STOCK", appErr.ErrorCode())
	assert.Equal(t, "Steel Tumbler sold out", appErr.Message())

	detailed := ErrValidationFailed.WithDetails("quantity must be positive")
	assert.ErrorIs(t, detailed, ErrValidationFailed)
	assert.Equal(t, ErrValidationFailed.Message(), detailed.Message())
	assert.Equal(t, "quantity must be positive", detailed.Details())
}

func TestPaymentPending_IsRetryableConflict(t *testing.T) {
	assert.Equal(t, http.StatusConflict, ErrPaymentPending.HTTPCode())
	assert.Equal(t, "PAYMENT_PENDING", ErrPaymentPending.ErrorCode())
	assert.NotErrorIs(t, ErrPaymentPending, ErrPaymentIntentClosed)
}

func TestDatabaseExecuteError(t *testing.T) {
	err := NewDatabaseExecuteError(sql.ErrConnDone, "failed to add item to cart")

	assert.ErrorIs(t, err, sql.ErrConnDone)
	assert.Equal(t, http.StatusInternalServerError, err.HTTPCode())
	assert.Equal(t, "failed to add item to cart", err.Message())
	assert.Equal(t, "Database execution failed", NewDatabaseExecuteError(sql.ErrConnDone, "").Message())
}
