// Package lock provides the per-user checkout lock.
package lock

import (
	"context"
	"log/slog"
	"time"

	"storefront/config"
	"storefront/internal/domain/lifecycle"
	"storefront/internal/domain/service"

	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const defaultLockTTL = 30 * time.Second

// LockerParams holds dependencies for the Locker, injected by Fx
type LockerParams struct {
	fx.In

	Lc     fx.Lifecycle
	Config *config.Config
	Logger *slog.Logger
}

// NewLocker uses redis when configured and falls back to an in-memory lock
func NewLocker(params LockerParams) service.Locker {
	cfg := params.Config.Redis

	ttl := defaultLockTTL
	if cfg != nil && cfg.LockTTL > 0 {
		ttl = cfg.LockTTL
	}

	if cfg == nil || cfg.Addr == "" {
		params.Logger.Info("Redis not configured, using in-memory checkout lock")

		return NewMemoryLocker(ttl)
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	params.Lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			pingCtx, cancel := context.WithTimeout(ctx, lifecycle.DefaultTimeout)
			defer cancel()

			if err := client.Ping(pingCtx).Err(); err != nil {
				return errors.Wrap(err, "failed to ping redis")
			}
			params.Logger.Info("Redis checkout lock ready", slog.String("addr", cfg.Addr))

			return nil
		},
		OnStop: func(ctx context.Context) error {
			return errors.WithStack(client.Close())
		},
	})

	return NewRedisLocker(client, ttl)
}
