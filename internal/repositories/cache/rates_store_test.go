package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"casacalc/internal/services/exchange"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCache struct {
	data map[string][]byte
	sets int
	err  error
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: map[string][]byte{}}
}

func (f *fakeCache) Set(_ context.Context, key string, value interface{}) error {
	if f.err != nil {
		return f.err
	}
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.data[key] = b
	f.sets++
	return nil
}

func (f *fakeCache) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	b, ok := f.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dest)
}

func (f *fakeCache) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(f.data, k)
	}
	return f.err
}

func TestRateSnapshotStore_RoundTrip(t *testing.T) {
	fc := newFakeCache()
	store := newRateSnapshotStore(fc)
	ctx := context.Background()

	fetched := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	snap := &exchange.Snapshot{
		Base:      "EUR",
		Rates:     exchange.Rates{"EUR": decimal.NewFromInt(1), "USD": decimal.RequireFromString("1.0842")},
		FetchedAt: fetched,
	}
	require.NoError(t, store.Save(ctx, snap))
	assert.Contains(t, fc.data, "rates:base:EUR")
	assert.Equal(t, 1, fc.sets)

	got, err := store.Load(ctx, "EUR")
	require.NoError(t, err)
	assert.Equal(t, "EUR", got.Base)
	assert.True(t, got.FetchedAt.Equal(fetched))
	assert.True(t, decimal.RequireFromString("1.0842").Equal(got.Rates["USD"]))

	require.NoError(t, store.Delete(ctx, "EUR"))
	_, err = store.Load(ctx, "EUR")
	assert.ErrorIs(t, err, exchange.ErrSnapshotNotFound)
}

func TestRateSnapshotStore_Missing(t *testing.T) {
	store := newRateSnapshotStore(newFakeCache())

	_, err := store.Load(context.Background(), "USD")
	assert.ErrorIs(t, err, exchange.ErrSnapshotNotFound)
}

func TestRateSnapshotStore_BackendError(t *testing.T) {
	fc := newFakeCache()
	fc.err = errors.New("connection refused")
	store := newRateSnapshotStore(fc)
	ctx := context.Background()

	_, err := store.Load(ctx, "EUR")
	require.Error(t, err)
	assert.NotErrorIs(t, err, exchange.ErrSnapshotNotFound)
	assert.Contains(t, err.Error(), "connection refused")

	err = store.Save(ctx, &exchange.Snapshot{Base: "EUR"})
	assert.ErrorContains(t, err, "save rate snapshot")
}

func TestCacheService_PoolStats(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
	svc := NewCacheService(client, time.Minute)
	defer svc.Close()

	stats := svc.GetStats()
	require.NotNil(t, stats)
	assert.Zero(t, stats.TotalConns)
	assert.Zero(t, stats.Hits)
}
