package bootstrap

import (
	"context"
	"log/slog"

	"appointment-booking/internal/infra/cache"
	"appointment-booking/internal/pkg/config"
	"appointment-booking/internal/usecase/shared"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var CacheModule = fx.Module("cache",
	fx.Provide(
		NewSlotCache,
	),
)

// NewSlotCache falls back to a no-op cache when REDIS_ADDR is empty. Redis being down at
// startup is not fatal; every lookup falls through to the schedule tables.
func NewSlotCache(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) shared.SlotCache {
	if cfg.Redis.Addr == "" {
		logger.Info("slot cache disabled")
		return cache.NoopSlotCache{}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := client.Ping(ctx).Err(); err != nil {
				logger.Warn("redis unreachable, slot cache will miss", "addr", cfg.Redis.Addr, "error", err)
			}
			return nil
		},
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})
	return cache.NewRedisSlotCache(client, cfg.Redis.SlotTTL)
}
