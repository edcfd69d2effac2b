package postgres

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"storefront/config"
	deliverycontext "storefront/internal/delivery/context"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func newBufferedGormLogger(debug bool) (*gormSlogLogger, *bytes.Buffer) {
	var buf bytes.Buffer
	cfg := &config.Config{}
	cfg.Env.Debug = debug
	base := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	return newGormSlogLogger(base, cfg).(*gormSlogLogger), &buf
}

func stmt() (string, int64) { return `SELECT * FROM "products"`, 3 }

func TestGormSlogLogger_Trace(t *testing.T) {
	t.Run("failed query uses request logger", func(t *testing.T) {
		l, buf := newBufferedGormLogger(false)
		reqLogger := l.logger.With(slog.String("request_id", "req-42"))
		ctx := deliverycontext.WithLogger(context.Background(), reqLogger)

		l.Trace(ctx, time.Now(), stmt, errors.New("connection reset"))

		assert.Contains(t, buf.String(), "GORM query failed")
		assert.Contains(t, buf.String(), "request_id=req-42")
		assert.Contains(t, buf.String(), "connection reset")
	})

	t.Run("record not found is quiet", func(t *testing.T) {
		l, buf := newBufferedGormLogger(false)

		l.Trace(context.Background(), time.Now(), stmt, gorm.ErrRecordNotFound)

		assert.Empty(t, buf.String())
	})

	t.Run("slow query warns", func(t *testing.T) {
		l, buf := newBufferedGormLogger(false)

		l.Trace(context.Background(), time.Now().Add(-time.Second), stmt, nil)

		assert.Contains(t, buf.String(), "GORM slow query")
	})

	t.Run("fast query only in debug", func(t *testing.T) {
		l, buf := newBufferedGormLogger(false)
		l.Trace(context.Background(), time.Now(), stmt, nil)
		assert.Empty(t, buf.String())

		l, buf = newBufferedGormLogger(true)
		l.Trace(context.Background(), time.Now(), stmt, nil)
		assert.Contains(t, buf.String(), "GORM query")
	})
}
