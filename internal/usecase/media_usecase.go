package usecase

import (
	"context"
	"io"

	"storefront/internal/domain/service"
)

// UploadKinds are the folders an admin may upload images into.
var UploadKinds = []string{"product", "banner", "gallery", "hero"}

// UploadInput is a single uploaded image.
type UploadInput struct {
	Kind        string
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// UploadOutput locates the stored image.
type UploadOutput struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

type MediaUsecase interface {
	Upload(ctx context.Context, input *UploadInput) (*UploadOutput, error)

	// Open streams a stored object; the caller closes Body.
	Open(ctx context.Context, key string) (*service.StoredObject, error)
}
