package handler

import (
	"strings"

	"storefront/internal/delivery/api/middleware"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// bindAndValidate binds the request and runs the struct validation tags.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return domainerrors.ErrValidationFailed.WithMessage("Invalid request body")
	}

	return c.Validate(req)
}

// paramID parses a uuid path parameter.
func paramID(c echo.Context, name, label string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, domainerrors.ErrValidationFailed.WithMessage("Invalid " + label + " id")
	}

	return id, nil
}

// pagination reads ?page= and ?limit=.
func pagination(c echo.Context) (entity.Pagination, error) {
	var page entity.Pagination
	err := echo.QueryParamsBinder(c).
		Int("page", &page.Page).
		Int("limit", &page.Limit).
		BindError()
	if err != nil {
		return entity.Pagination{}, domainerrors.ErrValidationFailed.WithMessage("page and limit must be numbers")
	}

	return page.Normalize(), nil
}

// optionalBool reads a tri-state boolean query parameter.
func optionalBool(c echo.Context, name string) (*bool, error) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return nil, nil
	}

	var v bool
	if err := echo.QueryParamsBinder(c).Bool(name, &v).BindError(); err != nil {
		return nil, domainerrors.ErrValidationFailed.WithMessage(name + " must be true or false")
	}

	return &v, nil
}

// currentUser returns the authenticated user id.
func currentUser(c echo.Context) (uuid.UUID, error) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return uuid.Nil, domainerrors.ErrUnauthorized
	}

	return userID, nil
}
