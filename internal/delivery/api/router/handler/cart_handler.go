package handler

import (
	"log/slog"

	"storefront/internal/delivery/api/response"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// CartHandlerParams holds dependencies for CartHandler, injected by Fx.
type CartHandlerParams struct {
	fx.In

	CartUC usecase.CartUsecase
	Logger *slog.Logger
}

// CartHandler serves the server-side cart. Every endpoint answers with the full cart.
type CartHandler struct {
	cartUC usecase.CartUsecase
	logger *slog.Logger
}

// NewCartHandler is the constructor for CartHandler.
func NewCartHandler(params CartHandlerParams) *CartHandler {
	return &CartHandler{
		cartUC: params.CartUC,
		logger: params.Logger,
	}
}

// AddToCartRequest adds units of a product.
type AddToCartRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"gte=1"`
}

// UpdateCartItemRequest sets a line quantity; zero or less removes the line.
// ItemID may come from the body or the :id path parameter.
type UpdateCartItemRequest struct {
	ItemID   uuid.UUID `json:"item_id"`
	Quantity int       `json:"quantity"`
}

// RemoveCartItemRequest removes a line.
type RemoveCartItemRequest struct {
	ItemID uuid.UUID `json:"item_id"`
}

// cartItemID prefers the :id path parameter over the body field.
func cartItemID(c echo.Context, fromBody uuid.UUID) (uuid.UUID, error) {
	if c.Param("id") != "" {
		return paramID(c, "id", "cart item")
	}
	if fromBody == uuid.Nil {
		return uuid.Nil, domainerrors.ErrValidationFailed.WithMessage("item_id is required")
	}

	return fromBody, nil
}

func (h *CartHandler) GetCart(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	cart, err := h.cartUC.GetCart(c.Request().Context(), userID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, cart)
}

// AddItem merges the quantity into an existing line for the same product.
func (h *CartHandler) AddItem(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	req := AddToCartRequest{Quantity: 1}
	if err := bindAndValidate(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	cart, err := h.cartUC.AddItem(c.Request().Context(), userID, req.ProductID, req.Quantity)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, cart)
}

func (h *CartHandler) UpdateItem(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req UpdateCartItemRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}
	itemID, err := cartItemID(c, req.ItemID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	cart, err := h.cartUC.UpdateItem(c.Request().Context(), userID, itemID, req.Quantity)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, cart)
}

func (h *CartHandler) RemoveItem(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req RemoveCartItemRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}
	itemID, err := cartItemID(c, req.ItemID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	cart, err := h.cartUC.RemoveItem(c.Request().Context(), userID, itemID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, cart)
}

func (h *CartHandler) ClearCart(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	cart, err := h.cartUC.ClearCart(c.Request().Context(), userID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, cart)
}
