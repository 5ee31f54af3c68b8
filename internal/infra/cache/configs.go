package cache

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"scooter-rental/internal/domain/settings"
	"scooter-rental/internal/pkg/metrics"
	"scooter-rental/internal/pkg/ttlcache"

	"golang.org/x/sync/singleflight"
)

const configKey = "config"

type ConfigSource interface {
	Configs(ctx context.Context) (settings.ConfigMap, error)
}

// ConfigProvider serves base configuration merged with the dynamic overlay.
// Callers always receive their own deep copy.
type ConfigProvider struct {
	base     settings.ConfigMap
	source   ConfigSource
	cache    *ttlcache.Cache[string, settings.ConfigMap]
	lastGood atomic.Pointer[settings.ConfigMap]
	group    singleflight.Group
	logger   *slog.Logger
}

func NewConfigProvider(base settings.ConfigMap, source ConfigSource, ttl time.Duration, maxEntries int, logger *slog.Logger) *ConfigProvider {
	return &ConfigProvider{
		base:   base.Clone(),
		source: source,
		cache:  ttlcache.New[string, settings.ConfigMap](maxEntries, ttl),
		logger: logger,
	}
}

// Configs never fails. A non-nil override replaces the base for this refresh.
func (p *ConfigProvider) Configs(ctx context.Context, override settings.ConfigMap) settings.ConfigMap {
	if cached, ok := p.cache.Get(configKey); ok {
		metrics.CacheLookupsTotal.WithLabelValues("config", metrics.CacheResult(true)).Inc()
		p.logger.DebugContext(ctx, "config cache hit")
		return cached.Clone()
	}
	metrics.CacheLookupsTotal.WithLabelValues("config", metrics.CacheResult(false)).Inc()

	if override != nil {
		return p.refresh(ctx, override).Clone()
	}

	// Concurrent misses share one upstream fetch; the fetch outlives a
	// cancelled caller so the other waiters still get a result.
	v, _, _ := p.group.Do(configKey, func() (any, error) {
		return p.refresh(context.WithoutCancel(ctx), p.base), nil
	})
	return v.(settings.ConfigMap).Clone()
}

// Invalidate drops the cached value; the last-known-good copy is kept.
func (p *ConfigProvider) Invalidate() {
	p.cache.Clear()
}

func (p *ConfigProvider) refresh(ctx context.Context, base settings.ConfigMap) settings.ConfigMap {
	dynamic, err := p.source.Configs(ctx)
	if err != nil {
		metrics.ConfigFallbacksTotal.Inc()
		if last := p.lastGood.Load(); last != nil {
			p.logger.WarnContext(ctx, "failed to fetch dynamic configs, using last known good", "error", err.Error())
			return *last
		}
		p.logger.WarnContext(ctx, "failed to fetch dynamic configs, using base config", "error", err.Error())
		return base.Clone()
	}

	merged := base.Merge(dynamic)
	p.cache.Set(configKey, merged.Clone())
	stored := merged.Clone()
	p.lastGood.Store(&stored)
	p.logger.DebugContext(ctx, "fetched and merged dynamic configs")
	return merged
}
