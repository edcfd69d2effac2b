package handler

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"storefront/internal/delivery/api/middleware"
	"storefront/internal/delivery/api/response"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// OrderHandlerParams holds dependencies for OrderHandler, injected by Fx.
type OrderHandlerParams struct {
	fx.In

	OrderUC usecase.OrderUsecase
	Logger  *slog.Logger
}

// OrderHandler serves customer order history and the admin order desk.
type OrderHandler struct {
	orderUC usecase.OrderUsecase
	logger  *slog.Logger
	now     func() time.Time
}

// NewOrderHandler is the constructor for OrderHandler.
func NewOrderHandler(params OrderHandlerParams) *OrderHandler {
	return &OrderHandler{
		orderUC: params.OrderUC,
		logger:  params.Logger,
		now:     time.Now,
	}
}

// UpdateOrderStatusRequest is an admin status change.
type UpdateOrderStatusRequest struct {
	Status         string  `json:"status" validate:"required"`
	TrackingNumber *string `json:"tracking_number" validate:"omitempty,max=100"`
	Notes          *string `json:"notes" validate:"omitempty,max=2000"`
}

// LookupReceiptRequest carries a scanned receipt QR payload.
type LookupReceiptRequest struct {
	QRData string `json:"qr_data" validate:"required"`
}

// ListMyOrders returns the caller's orders, newest first.
func (h *OrderHandler) ListMyOrders(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	page, err := pagination(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	orders, err := h.orderUC.ListUserOrders(c.Request().Context(), userID, page)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, orders)
}

// GetOrder returns one order to its owner or an admin.
func (h *OrderHandler) GetOrder(c echo.Context) error {
	viewer, ok := middleware.GetViewer(c)
	if !ok {
		return response.HandleAppError(c, domainerrors.ErrUnauthorized)
	}

	orderID, err := paramID(c, "id", "order")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	order, err := h.orderUC.GetOrder(c.Request().Context(), viewer, orderID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, order)
}

// ReceiptQR renders the order's receipt QR code as PNG.
func (h *OrderHandler) ReceiptQR(c echo.Context) error {
	viewer, ok := middleware.GetViewer(c)
	if !ok {
		return response.HandleAppError(c, domainerrors.ErrUnauthorized)
	}

	orderID, err := paramID(c, "id", "order")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	png, err := h.orderUC.ReceiptQR(c.Request().Context(), viewer, orderID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}

// ListOrders is the admin order listing, filterable by ?status=.
func (h *OrderHandler) ListOrders(c echo.Context) error {
	page, err := pagination(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	orders, err := h.orderUC.ListOrders(c.Request().Context(), c.QueryParam("status"), page)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, orders)
}

// UpdateOrderStatus moves an order through the fulfillment states.
func (h *OrderHandler) UpdateOrderStatus(c echo.Context) error {
	orderID, err := paramID(c, "id", "order")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req UpdateOrderStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	order, err := h.orderUC.UpdateOrderStatus(c.Request().Context(), orderID, usecase.UpdateOrderStatusInput{
		Status:         req.Status,
		TrackingNumber: req.TrackingNumber,
		Notes:          req.Notes,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, order)
}

// LookupByReceipt resolves a scanned receipt QR code.
func (h *OrderHandler) LookupByReceipt(c echo.Context) error {
	var req LookupReceiptRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	order, err := h.orderUC.LookupByReceipt(c.Request().Context(), req.QRData)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, order)
}

// ExportOrders downloads the orders as an xlsx workbook.
func (h *OrderHandler) ExportOrders(c echo.Context) error {
	// Buffer the workbook so a failure can still be rendered as JSON.
	var buf bytes.Buffer
	if err := h.orderUC.ExportOrders(c.Request().Context(), &buf, c.QueryParam("status")); err != nil {
		return response.HandleAppError(c, err)
	}

	filename := fmt.Sprintf("orders-%s.xlsx", h.now().Format("20060102"))
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))

	return c.Blob(http.StatusOK, xlsxContentType, buf.Bytes())
}
