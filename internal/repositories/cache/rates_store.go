package cache

import (
	"context"
	"fmt"

	"casacalc/internal/services/exchange"
	keys "casacalc/internal/utils/cache"
)

// jsonCache is the subset of CacheService the snapshot store needs.
type jsonCache interface {
	Set(ctx context.Context, key string, value interface{}) error
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Delete(ctx context.Context, keys ...string) error
}

// RateSnapshotStore keeps exchange rate snapshots in Redis so that every
// server instance shares one refresh. Freshness is judged by the provider
// from FetchedAt; the cache service's default TTL only bounds how long a
// dead entry lingers.
type RateSnapshotStore struct {
	cache jsonCache
}

func NewRateSnapshotStore(cache *CacheService) *RateSnapshotStore {
	return newRateSnapshotStore(cache)
}

func newRateSnapshotStore(cache jsonCache) *RateSnapshotStore {
	return &RateSnapshotStore{cache: cache}
}

func ratesKey(base string) string {
	return keys.GenerateKey(keys.EntityRates, keys.KeyBase, base)
}

func (s *RateSnapshotStore) Load(ctx context.Context, base string) (*exchange.Snapshot, error) {
	var snap exchange.Snapshot
	found, err := s.cache.Get(ctx, ratesKey(base), &snap)
	if err != nil {
		return nil, fmt.Errorf("load rate snapshot: %w", err)
	}
	if !found {
		return nil, exchange.ErrSnapshotNotFound
	}
	return &snap, nil
}

func (s *RateSnapshotStore) Save(ctx context.Context, snap *exchange.Snapshot) error {
	if err := s.cache.Set(ctx, ratesKey(snap.Base), snap); err != nil {
		return fmt.Errorf("save rate snapshot: %w", err)
	}
	return nil
}

func (s *RateSnapshotStore) Delete(ctx context.Context, base string) error {
	return s.cache.Delete(ctx, ratesKey(base))
}

var _ exchange.SnapshotStore = (*RateSnapshotStore)(nil)
