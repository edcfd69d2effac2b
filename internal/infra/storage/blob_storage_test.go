package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"storefront/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocloud.dev/blob/memblob"
)

func TestBlobStorage_PutOpenDelete(t *testing.T) {
	bucket := memblob.OpenBucket(nil)
	t.Cleanup(func() { _ = bucket.Close() })

	store := NewBlobStorage(bucket, "")
	ctx := context.Background()
	key := "product/2026/10/abc.png"

	require.NoError(t, store.Put(ctx, key, "image/png", strings.NewReader("png-bytes")))

	obj, err := store.Open(ctx, key)
	require.NoError(t, err)
	defer obj.Body.Close()

	data, err := io.ReadAll(obj.Body)
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))
	assert.Equal(t, "image/png", obj.ContentType)
	assert.Equal(t, int64(len("png-bytes")), obj.Size)

	require.NoError(t, store.Delete(ctx, key))

	_, err = store.Open(ctx, key)
	assert.ErrorIs(t, err, service.ErrObjectNotFound)
	assert.ErrorIs(t, store.Delete(ctx, key), service.ErrObjectNotFound)
}

func TestBlobStorage_URL(t *testing.T) {
	bucket := memblob.OpenBucket(nil)
	t.Cleanup(func() { _ = bucket.Close() })

	assert.Equal(t, "/media/hero/a.png", NewBlobStorage(bucket, "").URL("hero/a.png"))
	assert.Equal(t, "https://cdn.example.com/hero/a.png", NewBlobStorage(bucket, "https://cdn.example.com/").URL("/hero/a.png"))
}
