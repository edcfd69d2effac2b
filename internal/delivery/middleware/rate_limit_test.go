package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront/config"
	apimiddleware "storefront/internal/delivery/api/middleware"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRateLimitedEcho(cfg *config.Config) *echo.Echo {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	e := echo.New()
	e.HTTPErrorHandler = apimiddleware.NewErrorMiddleware(logger).HandleHTTPError
	m := NewRateLimitMiddleware(cfg, logger)
	e.POST("/auth/login", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}, m.Limit)

	return e
}

func doLogin(e *echo.Echo, ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	req.Header.Set(echo.HeaderXRealIP, ip)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	return rec
}

func TestRateLimitMiddleware_BlocksAfterBurst(t *testing.T) {
	e := newRateLimitedEcho(&config.Config{
		RateLimit: &config.RateLimitConfig{Enabled: true, RequestsPerSecond: 0.001, Burst: 2},
	})

	require.Equal(t, http.StatusOK, doLogin(e, "10.0.0.1").Code)
	require.Equal(t, http.StatusOK, doLogin(e, "10.0.0.1").Code)

	rec := doLogin(e, "10.0.0.1")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "1", rec.Header().Get(echo.HeaderRetryAfter))
	assert.Contains(t, rec.Body.String(), `"code":"TOO_MANY_REQUESTS"`)

	// Other clients keep their own budget.
	assert.Equal(t, http.StatusOK, doLogin(e, "10.0.0.2").Code)
}

func TestRateLimitMiddleware_Disabled(t *testing.T) {
	e := newRateLimitedEcho(&config.Config{})

	for range 20 {
		require.Equal(t, http.StatusOK, doLogin(e, "10.0.0.1").Code)
	}
}
