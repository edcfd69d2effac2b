package middleware

import (
	"net/http"

	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/errors"
	"storefront/internal/infra/metrics"

	"github.com/labstack/echo/v4"
)

// MetricsMiddleware records request counts and latency per route
type MetricsMiddleware struct {
	metrics *metrics.Metrics
	skip    map[string]struct{}
}

// NewMetricsMiddleware creates a metrics middleware. Requests to skipPaths are not recorded.
func NewMetricsMiddleware(m *metrics.Metrics, skipPaths ...string) *MetricsMiddleware {
	skip := make(map[string]struct{}, len(skipPaths))
	for _, p := range skipPaths {
		skip[p] = struct{}{}
	}

	return &MetricsMiddleware{metrics: m, skip: skip}
}

// Handle wraps next with instrumentation
func (m *MetricsMiddleware) Handle(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, ok := m.skip[c.Request().URL.Path]; ok {
			return next(c)
		}

		done := m.metrics.RequestStarted()
		err := next(c)

		// Route template keeps label cardinality bounded.
		route := c.Path()
		if route == "" {
			route = "unmatched"
		}
		done(c.Request().Method, route, responseStatus(c, err))

		return err
	}
}

// responseStatus predicts the status the error handler will write for err.
func responseStatus(c echo.Context, err error) int {
	if err == nil || c.Response().Committed {
		return c.Response().Status
	}

	if appErr, ok := errors.AsType[domainerrors.AppError](err); ok {
		return appErr.HTTPCode()
	}
	if httpErr, ok := errors.AsType[*echo.HTTPError](err); ok {
		return httpErr.Code
	}

	return http.StatusInternalServerError
}
