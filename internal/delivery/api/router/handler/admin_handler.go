package handler

import (
	"log/slog"
	"strings"

	"storefront/internal/delivery/api/response"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// AdminHandlerParams holds dependencies for AdminHandler, injected by Fx.
type AdminHandlerParams struct {
	fx.In

	StatsUC     usecase.StatsUsecase
	AdminUserUC usecase.AdminUserUsecase
	Logger      *slog.Logger
}

// AdminHandler serves the dashboard and customer management.
type AdminHandler struct {
	statsUC     usecase.StatsUsecase
	adminUserUC usecase.AdminUserUsecase
	logger      *slog.Logger
}

// NewAdminHandler is the constructor for AdminHandler.
func NewAdminHandler(params AdminHandlerParams) *AdminHandler {
	return &AdminHandler{
		statsUC:     params.StatsUC,
		adminUserUC: params.AdminUserUC,
		logger:      params.Logger,
	}
}

// GetStats returns the dashboard over ?days= (default 30).
func (h *AdminHandler) GetStats(c echo.Context) error {
	var days int
	if err := echo.QueryParamsBinder(c).Int("days", &days).BindError(); err != nil {
		return response.HandleAppError(c, domainerrors.ErrValidationFailed.WithMessage("days must be a number"))
	}
	if days < 0 || days > usecase.MaxStatsDays {
		return response.HandleAppError(c, domainerrors.ErrValidationFailed.WithMessage("days must be between 1 and 365"))
	}

	stats, err := h.statsUC.GetDashboardStats(c.Request().Context(), days)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, stats)
}

// ListUsers pages through customers, optionally filtered by ?search=.
func (h *AdminHandler) ListUsers(c echo.Context) error {
	page, err := pagination(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	users, err := h.adminUserUC.ListUsers(c.Request().Context(), strings.TrimSpace(c.QueryParam("search")), page)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, users)
}

func (h *AdminHandler) DeleteUser(c echo.Context) error {
	actorID, err := currentUser(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	userID, err := paramID(c, "id", "user")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	if err := h.adminUserUC.DeleteUser(c.Request().Context(), actorID, userID); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Message(c, "User deleted")
}
