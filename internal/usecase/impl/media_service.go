package impl

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"path"
	"slices"
	"strings"
	"time"

	"storefront/config"
	deliverycontext "storefront/internal/delivery/context"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"
	"storefront/internal/util"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const (
	defaultMaxUploadBytes = 5 << 20
	sniffLen              = 512
)

var (
	defaultAllowedTypes = []string{"image/jpeg", "image/png", "image/webp", "image/gif"}

	imageExtensions = map[string]string{
		"image/jpeg": ".jpg",
		"image/png":  ".png",
		"image/webp": ".webp",
		"image/gif":  ".gif",
	}

	errUploadTooLarge = errors.New("upload exceeds size limit")
)

type mediaService struct {
	storage      service.MediaStorage
	maxBytes     int64
	allowedTypes []string
	logger       *slog.Logger
	now          func() time.Time
}

// NewMediaService creates the upload use case.
func NewMediaService(storage service.MediaStorage, cfg *config.Config, logger *slog.Logger) usecase.MediaUsecase {
	maxBytes := int64(defaultMaxUploadBytes)
	allowedTypes := defaultAllowedTypes
	if cfg != nil && cfg.Storage != nil {
		if cfg.Storage.MaxUploadBytes > 0 {
			maxBytes = cfg.Storage.MaxUploadBytes
		}
		if len(cfg.Storage.AllowedTypes) > 0 {
			allowedTypes = cfg.Storage.AllowedTypes
		}
	}

	return &mediaService{
		storage:      storage,
		maxBytes:     maxBytes,
		allowedTypes: allowedTypes,
		logger:       logger,
		now:          time.Now,
	}
}

func (s *mediaService) Upload(ctx context.Context, input *usecase.UploadInput) (*usecase.UploadOutput, error) {
	if input == nil || input.Body == nil {
		return nil, invalidInput("An image file is required")
	}
	if !slices.Contains(usecase.UploadKinds, input.Kind) {
		return nil, invalidInput(fmt.Sprintf("Upload kind must be one of %s", strings.Join(usecase.UploadKinds, ", ")))
	}
	if input.Size > s.maxBytes {
		return nil, s.tooLarge()
	}

	declared, _, err := mime.ParseMediaType(input.ContentType)
	if err != nil || !slices.Contains(s.allowedTypes, declared) {
		return nil, errors.Wrapf(domainerrors.ErrUnsupportedMediaType, "declared type %q", input.ContentType)
	}

	// The declared type must agree with the file's magic bytes.
	head := make([]byte, sniffLen)
	n, err := io.ReadFull(input.Body, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, err.Error())
	}
	head = head[:n]
	if sniffed := http.DetectContentType(head); sniffed != declared {
		return nil, errors.Wrapf(domainerrors.ErrUnsupportedMediaType, "content looks like %s", sniffed)
	}

	now := s.now()
	key := fmt.Sprintf("%s/%04d/%02d/%s%s", input.Kind, now.Year(), int(now.Month()), uuid.NewString(), imageExtensions[declared])
	body := &limitedReader{r: io.MultiReader(bytes.NewReader(head), input.Body), remaining: s.maxBytes}

	if err := s.storage.Put(ctx, key, declared, body); err != nil {
		if errors.Is(err, errUploadTooLarge) {
			return nil, s.tooLarge()
		}

		return nil, errors.Wrap(domainerrors.ErrInternalError, err.Error())
	}

	deliverycontext.GetLoggerOrDefault(ctx, s.logger).Info("Media uploaded",
		slog.String("key", key),
		slog.String("contentType", declared),
		slog.String("filename", input.Filename),
	)

	return &usecase.UploadOutput{Key: key, URL: s.storage.URL(key)}, nil
}

func (s *mediaService) Open(ctx context.Context, key string) (*service.StoredObject, error) {
	key = strings.TrimPrefix(key, "/")
	if key == "" || path.Clean(key) != key || strings.HasPrefix(key, "..") {
		return nil, errors.Wrap(domainerrors.ErrMediaNotFound, "invalid media key")
	}

	obj, err := s.storage.Open(ctx, key)
	if err != nil {
		if errors.Is(err, service.ErrObjectNotFound) {
			return nil, errors.Wrap(domainerrors.ErrMediaNotFound, key)
		}

		return nil, errors.Wrap(domainerrors.ErrInternalError, err.Error())
	}

	return obj, nil
}

func (s *mediaService) tooLarge() error {
	return domainerrors.ErrFileTooLarge.WithMessage("File exceeds the maximum upload size of " + util.FormatBytes(s.maxBytes))
}

// limitedReader fails with errUploadTooLarge once more than remaining bytes are read.
type limitedReader struct {
	r         io.Reader
	remaining int64
}

func (l *limitedReader) Read(p []byte) (int, error) {
	n, err := l.r.Read(p)
	l.remaining -= int64(n)
	if l.remaining < 0 {
		return n, errUploadTooLarge
	}

	return n, err
}
