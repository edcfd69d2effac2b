package middleware

import (
	"log/slog"
	"sync"
	"time"

	"storefront/config"
	deliverycontext "storefront/internal/delivery/context"
	domainerrors "storefront/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

const (
	defaultRequestsPerSecond = 1.0
	defaultBurst             = 5
	visitorIdleTimeout       = 10 * time.Minute
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimitMiddleware throttles requests per client IP with a token bucket
type RateLimitMiddleware struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    rate.Limit
	burst    int
	enabled  bool
	logger   *slog.Logger
	now      func() time.Time
}

// NewRateLimitMiddleware creates a rate limiter from config
func NewRateLimitMiddleware(cfg *config.Config, logger *slog.Logger) *RateLimitMiddleware {
	m := &RateLimitMiddleware{
		visitors: make(map[string]*visitor),
		limit:    rate.Limit(defaultRequestsPerSecond),
		burst:    defaultBurst,
		logger:   logger,
		now:      time.Now,
	}

	if rl := cfg.RateLimit; rl != nil {
		m.enabled = rl.Enabled
		if rl.RequestsPerSecond > 0 {
			m.limit = rate.Limit(rl.RequestsPerSecond)
		}
		if rl.Burst > 0 {
			m.burst = rl.Burst
		}
	}

	return m
}

// Limit rejects requests over the client's budget with 429
func (m *RateLimitMiddleware) Limit(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !m.enabled {
			return next(c)
		}

		ip := c.RealIP()
		if !m.allow(ip) {
			deliverycontext.GetLoggerOrDefault(c.Request().Context(), m.logger).Warn("Rate limit exceeded",
				slog.String("remote_ip", ip),
				slog.String("path", c.Request().URL.Path),
			)
			c.Response().Header().Set(echo.HeaderRetryAfter, "1")

			return domainerrors.ErrTooManyRequests
		}

		return next(c)
	}
}

func (m *RateLimitMiddleware) allow(ip string) bool {
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	v, ok := m.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(m.limit, m.burst)}
		m.visitors[ip] = v
	}
	v.lastSeen = now

	// Drop idle visitors once the map grows large.
	if len(m.visitors) > 1024 {
		for key, other := range m.visitors {
			if now.Sub(other.lastSeen) > visitorIdleTimeout {
				delete(m.visitors, key)
			}
		}
	}

	return v.limiter.AllowN(now, 1)
}
