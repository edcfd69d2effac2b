package handler

import (
	"io"
	"net/http"
	"testing"
	"time"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	mockUsecase "storefront/internal/mocks/usecase"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newOrderTestHandler(t *testing.T) (*OrderHandler, *mockUsecase.MockOrderUsecase) {
	orderUC := mockUsecase.NewMockOrderUsecase(t)
	h := NewOrderHandler(OrderHandlerParams{OrderUC: orderUC, Logger: newDiscardLogger()})
	h.now = func() time.Time { return time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC) }

	return h, orderUC
}

func TestOrderHandler_GetOrderPassesViewer(t *testing.T) {
	tests := []struct {
		name    string
		roles   []entity.Role
		isAdmin bool
	}{
		{name: "customer", roles: []entity.Role{entity.RoleCustomer}},
		{name: "admin", roles: []entity.Role{entity.RoleAdmin}, isAdmin: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, orderUC := newOrderTestHandler(t)
			userID, orderID := uuid.New(), uuid.New()

			e := newTestEcho()
			e.GET("/orders/:id", h.GetOrder, asUser(userID, tt.roles...))

			orderUC.On("GetOrder", mock.Anything, usecase.Viewer{UserID: userID, IsAdmin: tt.isAdmin}, orderID).
				Return(&entity.Order{ID: orderID, UserID: userID}, nil)

			rec := doRequest(e, http.MethodGet, "/orders/"+orderID.String(), "")
			requireStatus(t, rec, http.StatusOK)
		})
	}
}

func TestOrderHandler_GetOrderErrors(t *testing.T) {
	h, orderUC := newOrderTestHandler(t)
	userID, orderID := uuid.New(), uuid.New()

	e := newTestEcho()
	e.GET("/orders/:id", h.GetOrder, asUser(userID, entity.RoleCustomer))
	e.GET("/anonymous/:id", h.GetOrder)

	orderUC.On("GetOrder", mock.Anything, mock.Anything, orderID).Return(nil, domainerrors.ErrOrderNotFound)

	rec := doRequest(e, http.MethodGet, "/orders/"+orderID.String(), "")
	requireStatus(t, rec, http.StatusNotFound)
	assert.Equal(t, "ORDER_NOT_FOUND", decodeError(t, rec).Code)

	rec = doRequest(e, http.MethodGet, "/orders/not-a-uuid", "")
	requireStatus(t, rec, http.StatusBadRequest)
	assert.Equal(t, "Invalid order id", decodeError(t, rec).Message)

	rec = doRequest(e, http.MethodGet, "/anonymous/"+orderID.String(), "")
	requireStatus(t, rec, http.StatusUnauthorized)
}

func TestOrderHandler_UpdateOrderStatus(t *testing.T) {
	h, orderUC := newOrderTestHandler(t)
	orderID := uuid.New()

	e := newTestEcho()
	e.PATCH("/admin/orders/:id", h.UpdateOrderStatus)

	orderUC.On("UpdateOrderStatus", mock.Anything, orderID, mock.MatchedBy(func(in usecase.UpdateOrderStatusInput) bool {
		return in.Status == "in_transit" && in.TrackingNumber != nil && *in.TrackingNumber == "AWB1" && in.Notes == nil
	})).Return(&entity.Order{ID: orderID, Status: entity.OrderStatusInTransit}, nil)

	rec := doRequest(e, http.MethodPatch, "/admin/orders/"+orderID.String(), `{"status":"in_transit","tracking_number":"AWB1"}`)
	requireStatus(t, rec, http.StatusOK)

	var got entity.Order
	decodeData(t, rec, &got)
	assert.Equal(t, entity.OrderStatusInTransit, got.Status)

	rec = doRequest(e, http.MethodPatch, "/admin/orders/"+orderID.String(), `{}`)
	requireStatus(t, rec, http.StatusBadRequest)
}

func TestOrderHandler_UpdateOrderStatusNeedsTracking(t *testing.T) {
	h, orderUC := newOrderTestHandler(t)
	orderID := uuid.New()

	e := newTestEcho()
	e.PATCH("/admin/orders/:id", h.UpdateOrderStatus)

	orderUC.On("UpdateOrderStatus", mock.Anything, orderID, mock.Anything).Return(nil, domainerrors.ErrTrackingNumberRequired)

	rec := doRequest(e, http.MethodPatch, "/admin/orders/"+orderID.String(), `{"status":"in_transit"}`)
	requireStatus(t, rec, http.StatusBadRequest)
	assert.Equal(t, "TRACKING_NUMBER_REQUIRED", decodeError(t, rec).Code)
}

func TestOrderHandler_ListOrdersForwardsFilter(t *testing.T) {
	h, orderUC := newOrderTestHandler(t)

	e := newTestEcho()
	e.GET("/admin/orders", h.ListOrders)

	page := entity.Pagination{Page: 2, Limit: 5}
	orderUC.On("ListOrders", mock.Anything, "confirmed", page).
		Return(entity.NewPage([]*entity.Order{}, 6, page), nil)

	rec := doRequest(e, http.MethodGet, "/admin/orders?status=confirmed&page=2&limit=5", "")
	requireStatus(t, rec, http.StatusOK)

	var got entity.Page[*entity.Order]
	decodeData(t, rec, &got)
	assert.Equal(t, int64(6), got.Total)
	assert.Equal(t, 2, got.Page)

	rec = doRequest(e, http.MethodGet, "/admin/orders?page=two", "")
	requireStatus(t, rec, http.StatusBadRequest)
}

func TestOrderHandler_ExportOrders(t *testing.T) {
	h, orderUC := newOrderTestHandler(t)

	e := newTestEcho()
	e.GET("/admin/orders/export", h.ExportOrders)

	orderUC.On("ExportOrders", mock.Anything, mock.Anything, "").
		Run(func(args mock.Arguments) {
			_, _ = io.WriteString(args.Get(1).(io.Writer), "xlsx-bytes")
		}).
		Return(nil).Once()

	rec := doRequest(e, http.MethodGet, "/admin/orders/export", "")
	requireStatus(t, rec, http.StatusOK)
	assert.Equal(t, xlsxContentType, rec.Header().Get(echo.HeaderContentType))
	assert.Equal(t, `attachment; filename="orders-20260314.xlsx"`, rec.Header().Get(echo.HeaderContentDisposition))
	assert.Equal(t, "xlsx-bytes", rec.Body.String())

	orderUC.On("ExportOrders", mock.Anything, mock.Anything, "lost").Return(domainerrors.ErrInvalidOrderStatus).Once()

	rec = doRequest(e, http.MethodGet, "/admin/orders/export?status=lost", "")
	requireStatus(t, rec, http.StatusBadRequest)
	assert.Empty(t, rec.Header().Get(echo.HeaderContentDisposition))
}

func TestOrderHandler_ReceiptQR(t *testing.T) {
	h, orderUC := newOrderTestHandler(t)
	userID, orderID := uuid.New(), uuid.New()

	e := newTestEcho()
	e.GET("/orders/:id/receipt-qr", h.ReceiptQR, asUser(userID, entity.RoleCustomer))

	orderUC.On("ReceiptQR", mock.Anything, usecase.Viewer{UserID: userID}, orderID).Return([]byte("\x89PNG"), nil)

	rec := doRequest(e, http.MethodGet, "/orders/"+orderID.String()+"/receipt-qr", "")
	requireStatus(t, rec, http.StatusOK)
	assert.Equal(t, "image/png", rec.Header().Get(echo.HeaderContentType))
	assert.Equal(t, "\x89PNG", rec.Body.String())
}
