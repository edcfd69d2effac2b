package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"storefront/internal/delivery/api/response"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// UploadFormField is the multipart field carrying the image.
const UploadFormField = "image"

// MediaHandlerParams holds dependencies for MediaHandler, injected by Fx.
type MediaHandlerParams struct {
	fx.In

	MediaUC usecase.MediaUsecase
	Logger  *slog.Logger
}

// MediaHandler accepts admin image uploads and serves stored media.
type MediaHandler struct {
	mediaUC usecase.MediaUsecase
	logger  *slog.Logger
}

// NewMediaHandler is the constructor for MediaHandler.
func NewMediaHandler(params MediaHandlerParams) *MediaHandler {
	return &MediaHandler{
		mediaUC: params.MediaUC,
		logger:  params.Logger,
	}
}

// UploadResponse keeps imageUrl for the admin dashboard alongside key and url.
type UploadResponse struct {
	Key      string `json:"key"`
	URL      string `json:"url"`
	ImageURL string `json:"imageUrl"`
}

// Upload stores an image under the :kind folder.
func (h *MediaHandler) Upload(c echo.Context) error {
	return h.upload(c, c.Param("kind"))
}

// UploadKind binds a fixed folder, for the /admin/upload/<kind>-image routes.
func (h *MediaHandler) UploadKind(kind string) echo.HandlerFunc {
	return func(c echo.Context) error {
		return h.upload(c, kind)
	}
}

func (h *MediaHandler) upload(c echo.Context, kind string) error {
	fh, err := c.FormFile(UploadFormField)
	if err != nil {
		return response.HandleAppError(c, domainerrors.ErrValidationFailed.WithMessage("An image file is required"))
	}

	file, err := fh.Open()
	if err != nil {
		return response.HandleAppError(c, domainerrors.ErrValidationFailed.WithMessage("Uploaded file could not be read"))
	}
	defer file.Close()

	output, err := h.mediaUC.Upload(c.Request().Context(), &usecase.UploadInput{
		Kind:        strings.ToLower(kind),
		Filename:    fh.Filename,
		ContentType: fh.Header.Get(echo.HeaderContentType),
		Size:        fh.Size,
		Body:        file,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Created(c, &UploadResponse{Key: output.Key, URL: output.URL, ImageURL: output.URL})
}

// Serve streams a stored object. The key is everything after /media/.
func (h *MediaHandler) Serve(c echo.Context) error {
	obj, err := h.mediaUC.Open(c.Request().Context(), c.Param("*"))
	if err != nil {
		return response.HandleAppError(c, err)
	}
	defer obj.Body.Close()

	header := c.Response().Header()
	header.Set("Cache-Control", "public, max-age=86400")
	if obj.Size > 0 {
		header.Set(echo.HeaderContentLength, strconv.FormatInt(obj.Size, 10))
	}

	return c.Stream(http.StatusOK, obj.ContentType, obj.Body)
}
