package components

import (
	"context"
	"log/slog"

	"scooter-rental/internal/domain/settings"
	"scooter-rental/internal/infra/cache"
	"scooter-rental/internal/pkg/config"
	"scooter-rental/internal/pkg/errs"
	"scooter-rental/internal/usecase/queries"
	"scooter-rental/internal/usecase/shared"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var CacheModule = fx.Module("cache",
	fx.Provide(
		fx.Annotate(
			NewConfigProvider,
			fx.As(new(shared.ConfigProvider)),
		),
		fx.Annotate(
			NewZoneCache,
			fx.As(new(shared.ZoneLookup)),
		),
		NewOrderBackend,
		fx.Annotate(
			cache.NewOrderCache,
			fx.As(new(shared.OrderCache)),
			fx.As(new(queries.OrderReader)),
		),
	),
)

func NewConfigProvider(cfg config.Config, base settings.ConfigMap, source cache.ConfigSource, logger *slog.Logger) *cache.ConfigProvider {
	return cache.NewConfigProvider(base, source, cfg.Cache.ConfigTTL, cfg.Cache.ConfigMaxSize, logger)
}

func NewZoneCache(cfg config.Config, source cache.ZoneSource, logger *slog.Logger) *cache.ZoneCache {
	return cache.NewZoneCache(source, cfg.Cache.ZoneTTL, cfg.Cache.ZoneMaxSize, logger)
}

func NewOrderBackend(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (cache.OrderBackend, error) {
	switch cfg.Cache.Backend {
	case "", "memory":
		logger.Info("注文キャッシュ: インメモリ", "ttl", cfg.Cache.OrderTTL, "max_size", cfg.Cache.OrderMaxSize)
		return cache.NewMemoryOrderBackend(cfg.Cache.OrderTTL, cfg.Cache.OrderMaxSize), nil
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		lc.Append(fx.Hook{
			OnStart: func(ctx context.Context) error {
				if err := client.Ping(ctx).Err(); err != nil {
					return errs.Wrap(err, "failed to reach redis")
				}
				return nil
			},
			OnStop: func(_ context.Context) error {
				return client.Close()
			},
		})
		logger.Info("注文キャッシュ: Redis", "addr", cfg.Redis.Addr, "ttl", cfg.Cache.OrderTTL)
		return cache.NewRedisOrderBackend(client, cfg.Cache.OrderTTL), nil
	default:
		return nil, errs.New("unknown CACHE_BACKEND: " + cfg.Cache.Backend)
	}
}
