//go:build unit

package cache_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"scooter-rental/internal/domain/order"
	"scooter-rental/internal/infra"
	"scooter-rental/internal/infra/cache"
	"scooter-rental/tests/common/builder"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLoader struct {
	orders map[uuid.UUID]order.Snapshot
	err    error
	calls  int
}

func (f *fakeLoader) FindByID(_ context.Context, id uuid.UUID) (*order.Snapshot, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	snap, ok := f.orders[id]
	if !ok {
		return nil, infra.NotFound("order not found")
	}
	return &snap, nil
}

func TestOrderCache_ReadThrough(t *testing.T) {
	snap := builder.NewOrderBuilder().BuildSnapshot()
	loader := &fakeLoader{orders: map[uuid.UUID]order.Snapshot{snap.ID: snap}}
	c := cache.NewOrderCache(cache.NewMemoryOrderBackend(time.Minute, 10), loader, discardLogger())

	got, found, err := c.FindByID(context.Background(), snap.ID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, snap, *got)

	_, found, err = c.FindByID(context.Background(), snap.ID)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 1, loader.calls)
}

func TestOrderCache_Absent(t *testing.T) {
	loader := &fakeLoader{orders: map[uuid.UUID]order.Snapshot{}}
	c := cache.NewOrderCache(cache.NewMemoryOrderBackend(time.Minute, 10), loader, discardLogger())

	got, found, err := c.FindByID(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, got)
}

func TestOrderCache_LoaderFailure(t *testing.T) {
	loader := &fakeLoader{err: assert.AnError}
	c := cache.NewOrderCache(cache.NewMemoryOrderBackend(time.Minute, 10), loader, discardLogger())

	_, found, err := c.FindByID(context.Background(), uuid.New())
	require.ErrorIs(t, err, assert.AnError)
	assert.False(t, found)
}

func TestOrderCache_RememberOverwrites(t *testing.T) {
	b := builder.NewOrderBuilder()
	loader := &fakeLoader{}
	c := cache.NewOrderCache(cache.NewMemoryOrderBackend(time.Minute, 10), loader, discardLogger())

	c.Remember(context.Background(), b.BuildSnapshot())
	finished := b.Finished(10*time.Minute, 165).BuildSnapshot()
	c.Remember(context.Background(), finished)

	got, found, err := c.FindByID(context.Background(), finished.ID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, finished, *got)
	assert.Equal(t, 0, loader.calls)
}

func TestMemoryOrderBackend_ReturnsCopies(t *testing.T) {
	snap := builder.NewOrderBuilder().Finished(time.Minute, 45).BuildSnapshot()
	backend := cache.NewMemoryOrderBackend(time.Minute, 10)
	require.NoError(t, backend.Set(context.Background(), snap))

	got, ok, err := backend.Get(context.Background(), snap.ID)
	require.NoError(t, err)
	require.True(t, ok)
	*got.FinishTime = time.Time{}

	again, _, _ := backend.Get(context.Background(), snap.ID)
	assert.Equal(t, *snap.FinishTime, *again.FinishTime)
}

type fakeRedis struct {
	store  map[string]string
	ttls   map[string]time.Duration
	getErr error
	setErr error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{store: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeRedis) Get(_ context.Context, key string) *redis.StringCmd {
	if f.getErr != nil {
		return redis.NewStringResult("", f.getErr)
	}
	v, ok := f.store[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeRedis) Set(_ context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	if f.setErr != nil {
		return redis.NewStatusResult("", f.setErr)
	}
	f.store[key] = string(value.([]byte))
	f.ttls[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Del(_ context.Context, keys ...string) *redis.IntCmd {
	var n int64
	for _, key := range keys {
		if _, ok := f.store[key]; ok {
			delete(f.store, key)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

func TestRedisOrderBackend(t *testing.T) {
	snap := builder.NewOrderBuilder().Finished(10*time.Minute, 165).BuildSnapshot()
	client := newFakeRedis()
	backend := cache.NewRedisOrderBackend(client, 2*time.Hour)

	_, ok, err := backend.Get(context.Background(), snap.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, backend.Set(context.Background(), snap))

	key := "order:" + snap.ID.String()
	assert.Equal(t, 2*time.Hour, client.ttls[key])

	var stored map[string]any
	require.NoError(t, json.Unmarshal([]byte(client.store[key]), &stored))
	assert.Equal(t, float64(165), stored["total_amount"])

	got, ok, err := backend.Get(context.Background(), snap.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, snap.ID, got.ID)
	assert.Equal(t, snap.TotalAmount, got.TotalAmount)
	assert.True(t, snap.StartTime.Equal(got.StartTime))
	assert.True(t, snap.FinishTime.Equal(*got.FinishTime))
}

func TestOrderCache_BackendFailureFallsThrough(t *testing.T) {
	snap := builder.NewOrderBuilder().BuildSnapshot()
	client := newFakeRedis()
	client.getErr = assert.AnError
	loader := &fakeLoader{orders: map[uuid.UUID]order.Snapshot{snap.ID: snap}}
	c := cache.NewOrderCache(cache.NewRedisOrderBackend(client, time.Hour), loader, discardLogger())

	got, found, err := c.FindByID(context.Background(), snap.ID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, snap.ID, got.ID)
	assert.Equal(t, 1, loader.calls)
}

func TestOrderCache_WriteFailureEvicts(t *testing.T) {
	b := builder.NewOrderBuilder()
	started := b.BuildSnapshot()
	finished := b.Finished(10*time.Minute, 165).BuildSnapshot()

	t.Run("Redisへの書き込み失敗後はストレージの状態を返す", func(t *testing.T) {
		client := newFakeRedis()
		loader := &fakeLoader{orders: map[uuid.UUID]order.Snapshot{}}
		c := cache.NewOrderCache(cache.NewRedisOrderBackend(client, time.Hour), loader, discardLogger())

		c.Remember(context.Background(), started)
		loader.orders[finished.ID] = finished
		client.setErr = assert.AnError
		c.Remember(context.Background(), finished)

		assert.NotContains(t, client.store, "order:"+finished.ID.String())

		got, found, err := c.FindByID(context.Background(), finished.ID)
		require.NoError(t, err)
		require.True(t, found)
		require.NotNil(t, got.FinishTime)
		assert.Equal(t, int64(165), got.TotalAmount)
		assert.Equal(t, 1, loader.calls)
	})

	t.Run("メモリバックエンドのDeleteでエントリが消える", func(t *testing.T) {
		backend := cache.NewMemoryOrderBackend(time.Minute, 10)
		require.NoError(t, backend.Set(context.Background(), started))
		require.NoError(t, backend.Delete(context.Background(), started.ID))

		_, ok, err := backend.Get(context.Background(), started.ID)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}
