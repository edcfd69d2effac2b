package service

import (
	"context"
	"io"

	"github.com/pkg/errors"
)

// ErrObjectNotFound is returned when a stored object does not exist.
var ErrObjectNotFound = errors.New("object not found")

// StoredObject is an open handle to stored media.
type StoredObject struct {
	Body        io.ReadCloser
	ContentType string
	Size        int64
}

// MediaStorage stores uploaded images.
type MediaStorage interface {
	Put(ctx context.Context, key, contentType string, body io.Reader) error
	Open(ctx context.Context, key string) (*StoredObject, error)
	Delete(ctx context.Context, key string) error

	// URL returns the public URL under which key is served.
	URL(key string) string
}
