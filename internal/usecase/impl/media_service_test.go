package impl

import (
	"bytes"
	"context"
	"io"
	"regexp"
	"strings"
	"testing"

	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/service"
	mockService "storefront/internal/mocks/service"
	"storefront/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func createTestMediaService(t *testing.T) (*mediaService, *mockService.MockMediaStorage) {
	storage := mockService.NewMockMediaStorage(t)
	svc := NewMediaService(storage, newTestConfig(0), newDiscardLogger()).(*mediaService)
	svc.now = fixedNow

	return svc, storage
}

func TestMediaService_Upload_Success(t *testing.T) {
	svc, storage := createTestMediaService(t)
	keyPattern := regexp.MustCompile(`^product/2024/03/[0-9a-f-]{36}\.png$`)

	var stored []byte
	storage.On("Put", mock.Anything, mock.MatchedBy(keyPattern.MatchString), "image/png", mock.Anything).
		Run(func(args mock.Arguments) {
			stored, _ = io.ReadAll(args.Get(3).(io.Reader))
		}).
		Return(nil)
	storage.On("URL", mock.Anything).Return("/media/product/2024/03/x.png")

	out, err := svc.Upload(context.Background(), &usecase.UploadInput{
		Kind:        "product",
		Filename:    "bottle.png",
		ContentType: "image/png",
		Size:        int64(len(pngHeader)),
		Body:        bytes.NewReader(pngHeader),
	})
	require.NoError(t, err)
	assert.Regexp(t, keyPattern, out.Key)
	assert.Equal(t, "/media/product/2024/03/x.png", out.URL)
	assert.Equal(t, pngHeader, stored)
}

func TestMediaService_Upload_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		input   *usecase.UploadInput
		wantErr error
	}{
		{
			name:    "unknown kind",
			input:   &usecase.UploadInput{Kind: "avatar", ContentType: "image/png", Body: bytes.NewReader(pngHeader)},
			wantErr: domainerrors.ErrValidationFailed,
		},
		{
			name:    "declared too large",
			input:   &usecase.UploadInput{Kind: "hero", ContentType: "image/png", Size: 4096, Body: bytes.NewReader(pngHeader)},
			wantErr: domainerrors.ErrFileTooLarge,
		},
		{
			name:    "not an image type",
			input:   &usecase.UploadInput{Kind: "hero", ContentType: "application/pdf", Body: strings.NewReader("%PDF-1.4")},
			wantErr: domainerrors.ErrUnsupportedMediaType,
		},
		{
			name:    "content disagrees with declared type",
			input:   &usecase.UploadInput{Kind: "gallery", ContentType: "image/jpeg", Body: bytes.NewReader(pngHeader)},
			wantErr: domainerrors.ErrUnsupportedMediaType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := createTestMediaService(t)

			_, err := svc.Upload(context.Background(), tt.input)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestMediaService_Upload_StreamLargerThanDeclared(t *testing.T) {
	svc, storage := createTestMediaService(t)
	body := append(append([]byte{}, pngHeader...), bytes.Repeat([]byte{0}, 2048)...)

	storage.On("Put", mock.Anything, mock.Anything, "image/png", mock.Anything).
		Return(func(_ context.Context, _, _ string, r io.Reader) error {
			_, err := io.ReadAll(r)
			return errors.Wrap(err, "failed to write object")
		})

	_, err := svc.Upload(context.Background(), &usecase.UploadInput{
		Kind:        "banner",
		ContentType: "image/png",
		Size:        10,
		Body:        bytes.NewReader(body),
	})
	require.ErrorIs(t, err, domainerrors.ErrFileTooLarge)

	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "File exceeds the maximum upload size of 1.0 KB", appErr.Message())
}

func TestMediaService_Open(t *testing.T) {
	t.Run("missing object", func(t *testing.T) {
		svc, storage := createTestMediaService(t)
		storage.On("Open", mock.Anything, "hero/2024/03/a.png").Return(nil, service.ErrObjectNotFound)

		_, err := svc.Open(context.Background(), "/hero/2024/03/a.png")
		assert.ErrorIs(t, err, domainerrors.ErrMediaNotFound)
	})

	t.Run("path traversal", func(t *testing.T) {
		svc, _ := createTestMediaService(t)

		_, err := svc.Open(context.Background(), "../config/config.yaml")
		assert.ErrorIs(t, err, domainerrors.ErrMediaNotFound)
	})
}
