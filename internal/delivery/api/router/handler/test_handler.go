package handler

import (
	"net/http"
	"time"

	"storefront/internal/delivery/api/middleware"
	"storefront/internal/delivery/api/response"
	"storefront/internal/domain/constants"
	"storefront/internal/domain/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// TestHandlerParams holds dependencies for TestHandler, injected by Fx.
type TestHandlerParams struct {
	fx.In

	Feed service.OrderFeed
}

// TestHandler handles test endpoints for middleware validation
type TestHandler struct {
	feed service.OrderFeed
}

// NewTestHandler creates a new TestHandler instance
func NewTestHandler(params TestHandlerParams) *TestHandler {
	return &TestHandler{feed: params.Feed}
}

// TestAuthMiddleware echoes the identity the auth middleware stored in the context
func (h *TestHandler) TestAuthMiddleware(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "CONTEXT_ERROR", "User ID not found in context")
	}

	roles, ok := middleware.GetRoles(c)
	if !ok {
		return response.Unauthorized(c, "CONTEXT_ERROR", "User roles not found in context")
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"message": "Authentication middleware test successful",
		"userID":  userID,
		"roles":   roles,
		"status":  "authenticated",
	})
}

// TestPublicEndpoint tests a public endpoint (no authentication required)
func (h *TestHandler) TestPublicEndpoint(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]any{
		"message": "Public endpoint test successful",
		"status":  "public",
	})
}

// TestFeedEvent pushes a synthetic order event to connected admin dashboards
func (h *TestHandler) TestFeedEvent(c echo.Context) error {
	event := &service.OrderEvent{
		EventID:       uuid.NewString(),
		Type:          constants.EventOrderCreated,
		OrderID:       uuid.NewString(),
		Status:        "pending",
		PaymentStatus: "paid",
		TotalAmount:   "0.00",
		Currency:      "INR",
		OccurredAt:    time.Now().UTC(),
	}
	h.feed.Publish(event)

	return response.OK(c, event)
}
