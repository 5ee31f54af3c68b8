package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"scooter-rental/internal/domain/order"
	"scooter-rental/internal/infra"
	"scooter-rental/internal/pkg/errs"
	"scooter-rental/internal/pkg/metrics"
	"scooter-rental/internal/pkg/ttlcache"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type OrderBackend interface {
	Get(ctx context.Context, id uuid.UUID) (order.Snapshot, bool, error)
	Set(ctx context.Context, snap order.Snapshot) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type OrderLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*order.Snapshot, error)
}

// OrderCache fronts order storage: reads fall through to the loader on a
// miss, writes go to the backend after the store has accepted them.
type OrderCache struct {
	backend OrderBackend
	loader  OrderLoader
	logger  *slog.Logger
}

func NewOrderCache(backend OrderBackend, loader OrderLoader, logger *slog.Logger) *OrderCache {
	return &OrderCache{
		backend: backend,
		loader:  loader,
		logger:  logger,
	}
}

func (c *OrderCache) FindByID(ctx context.Context, id uuid.UUID) (*order.Snapshot, bool, error) {
	snap, ok, err := c.backend.Get(ctx, id)
	if err != nil {
		c.logger.WarnContext(ctx, "order cache read failed, reading storage", "order_id", id, "error", err.Error())
	}
	if ok {
		metrics.CacheLookupsTotal.WithLabelValues("order", metrics.CacheResult(true)).Inc()
		c.logger.DebugContext(ctx, "order cache hit", "order_id", id)
		return &snap, true, nil
	}
	metrics.CacheLookupsTotal.WithLabelValues("order", metrics.CacheResult(false)).Inc()

	stored, err := c.loader.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	c.Remember(ctx, *stored)
	return stored, true, nil
}

// Remember writes snap through to the backend. When the write fails the
// previous entry is evicted so later reads go back to storage.
func (c *OrderCache) Remember(ctx context.Context, snap order.Snapshot) {
	err := c.backend.Set(ctx, snap)
	if err == nil {
		return
	}
	c.logger.WarnContext(ctx, "order cache write failed", "order_id", snap.ID, "error", err.Error())
	if err := c.backend.Delete(ctx, snap.ID); err != nil {
		c.logger.ErrorContext(ctx, "order cache evict failed", "order_id", snap.ID, "error", err.Error())
	}
}

// MemoryOrderBackend keeps snapshots in process.
type MemoryOrderBackend struct {
	cache *ttlcache.Cache[uuid.UUID, order.Snapshot]
}

func NewMemoryOrderBackend(ttl time.Duration, maxEntries int) *MemoryOrderBackend {
	return &MemoryOrderBackend{
		cache: ttlcache.New[uuid.UUID, order.Snapshot](maxEntries, ttl),
	}
}

func (b *MemoryOrderBackend) Get(_ context.Context, id uuid.UUID) (order.Snapshot, bool, error) {
	snap, ok := b.cache.Get(id)
	if !ok {
		return order.Snapshot{}, false, nil
	}
	return snap.Copy(), true, nil
}

func (b *MemoryOrderBackend) Set(_ context.Context, snap order.Snapshot) error {
	b.cache.Set(snap.ID, snap.Copy())
	return nil
}

func (b *MemoryOrderBackend) Delete(_ context.Context, id uuid.UUID) error {
	b.cache.Delete(id)
	return nil
}

// RedisClient is the subset of *redis.Client used by RedisOrderBackend.
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// RedisOrderBackend stores JSON snapshots under order:<id> with a TTL, so
// several service instances share one order cache.
type RedisOrderBackend struct {
	client RedisClient
	ttl    time.Duration
}

func NewRedisOrderBackend(client RedisClient, ttl time.Duration) *RedisOrderBackend {
	return &RedisOrderBackend{client: client, ttl: ttl}
}

func orderKey(id uuid.UUID) string {
	return "order:" + id.String()
}

func (b *RedisOrderBackend) Get(ctx context.Context, id uuid.UUID) (order.Snapshot, bool, error) {
	raw, err := b.client.Get(ctx, orderKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return order.Snapshot{}, false, nil
		}
		return order.Snapshot{}, false, errs.Wrap(err, "redis get failed")
	}

	var snap order.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return order.Snapshot{}, false, errs.Wrap(err, "failed to decode cached order")
	}
	return snap, true, nil
}

func (b *RedisOrderBackend) Set(ctx context.Context, snap order.Snapshot) error {
	raw, err := json.Marshal(snap)
	if err != nil {
		return errs.Wrap(err, "failed to encode order")
	}
	if err := b.client.Set(ctx, orderKey(snap.ID), raw, b.ttl).Err(); err != nil {
		return errs.Wrap(err, "redis set failed")
	}
	return nil
}

func (b *RedisOrderBackend) Delete(ctx context.Context, id uuid.UUID) error {
	if err := b.client.Del(ctx, orderKey(id)).Err(); err != nil {
		return errs.Wrap(err, "redis del failed")
	}
	return nil
}
