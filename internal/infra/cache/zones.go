package cache

import (
	"context"
	"log/slog"
	"time"

	"scooter-rental/internal/domain/pricing"
	"scooter-rental/internal/pkg/metrics"
	"scooter-rental/internal/pkg/ttlcache"
)

type ZoneSource interface {
	TariffZone(ctx context.Context, zoneID string) (pricing.TariffZone, error)
}

// ZoneCache is a read-through cache; failed fetches are not cached.
type ZoneCache struct {
	source ZoneSource
	cache  *ttlcache.Cache[string, pricing.TariffZone]
	logger *slog.Logger
}

func NewZoneCache(source ZoneSource, ttl time.Duration, maxEntries int, logger *slog.Logger) *ZoneCache {
	return &ZoneCache{
		source: source,
		cache:  ttlcache.New[string, pricing.TariffZone](maxEntries, ttl),
		logger: logger,
	}
}

func (z *ZoneCache) TariffZone(ctx context.Context, zoneID string) (pricing.TariffZone, error) {
	if zone, ok := z.cache.Get(zoneID); ok {
		metrics.CacheLookupsTotal.WithLabelValues("zone", metrics.CacheResult(true)).Inc()
		z.logger.DebugContext(ctx, "zone cache hit", "zone_id", zoneID)
		return zone, nil
	}
	metrics.CacheLookupsTotal.WithLabelValues("zone", metrics.CacheResult(false)).Inc()

	zone, err := z.source.TariffZone(ctx, zoneID)
	if err != nil {
		return pricing.TariffZone{}, err
	}
	z.cache.Set(zoneID, zone)
	z.logger.DebugContext(ctx, "cached zone", "zone_id", zoneID)
	return zone, nil
}
