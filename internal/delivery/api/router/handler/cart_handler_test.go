package handler

import (
	"net/http"
	"testing"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	mockUsecase "storefront/internal/mocks/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newCartTestEcho(t *testing.T, userID uuid.UUID) (*echo.Echo, *mockUsecase.MockCartUsecase) {
	cartUC := mockUsecase.NewMockCartUsecase(t)
	h := NewCartHandler(CartHandlerParams{CartUC: cartUC, Logger: newDiscardLogger()})

	e := newTestEcho()
	g := e.Group("/cart")
	if userID != uuid.Nil {
		g.Use(asUser(userID, entity.RoleCustomer))
	}
	g.GET("", h.GetCart)
	g.POST("/add", h.AddItem)
	g.PUT("/items/:id", h.UpdateItem)
	g.DELETE("/remove", h.RemoveItem)

	return e, cartUC
}

func TestCartHandler_RequiresSignIn(t *testing.T) {
	e, _ := newCartTestEcho(t, uuid.Nil)

	rec := doRequest(e, http.MethodGet, "/cart", "")
	requireStatus(t, rec, http.StatusUnauthorized)
	assert.Equal(t, "UNAUTHORIZED", decodeError(t, rec).Code)
}

func TestCartHandler_AddItemDefaultsToOne(t *testing.T) {
	userID, productID := uuid.New(), uuid.New()
	e, cartUC := newCartTestEcho(t, userID)

	cartUC.On("AddItem", mock.Anything, userID, productID, 1).Return(&entity.Cart{ItemCount: 1, Currency: "INR"}, nil)

	rec := doRequest(e, http.MethodPost, "/cart/add", `{"product_id":"`+productID.String()+`"}`)
	requireStatus(t, rec, http.StatusOK)

	var cart entity.Cart
	decodeData(t, rec, &cart)
	assert.Equal(t, 1, cart.ItemCount)
}

func TestCartHandler_AddItemValidation(t *testing.T) {
	e, _ := newCartTestEcho(t, uuid.New())

	rec := doRequest(e, http.MethodPost, "/cart/add", `{"product_id":"`+uuid.NewString()+`","quantity":0}`)
	requireStatus(t, rec, http.StatusBadRequest)
	assert.Equal(t, "VALIDATION_FAILED", decodeError(t, rec).Code)

	rec = doRequest(e, http.MethodPost, "/cart/add", `{"quantity":2}`)
	requireStatus(t, rec, http.StatusBadRequest)

	rec = doRequest(e, http.MethodPost, "/cart/add", `{not json`)
	requireStatus(t, rec, http.StatusBadRequest)
}

func TestCartHandler_UpdateUsesPathID(t *testing.T) {
	userID, itemID := uuid.New(), uuid.New()
	e, cartUC := newCartTestEcho(t, userID)

	cartUC.On("UpdateItem", mock.Anything, userID, itemID, 0).Return(&entity.Cart{}, nil)

	rec := doRequest(e, http.MethodPut, "/cart/items/"+itemID.String(), `{"quantity":0}`)
	requireStatus(t, rec, http.StatusOK)
}

func TestCartHandler_RemoveFromBody(t *testing.T) {
	userID, itemID := uuid.New(), uuid.New()
	e, cartUC := newCartTestEcho(t, userID)

	cartUC.On("RemoveItem", mock.Anything, userID, itemID).Return(nil, domainerrors.ErrCartItemNotFound)

	rec := doRequest(e, http.MethodDelete, "/cart/remove", `{"item_id":"`+itemID.String()+`"}`)
	requireStatus(t, rec, http.StatusNotFound)
	assert.Equal(t, "CART_ITEM_NOT_FOUND", decodeError(t, rec).Code)

	rec = doRequest(e, http.MethodDelete, "/cart/remove", `{}`)
	requireStatus(t, rec, http.StatusBadRequest)
}
