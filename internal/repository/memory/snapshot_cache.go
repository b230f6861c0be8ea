package memory

import (
	"context"
	"time"

	"vpp-configurator/internal/repository/contract"

	"github.com/patrickmn/go-cache"
)

// SnapshotCache keeps catalog snapshots in process
type SnapshotCache struct {
	cache *cache.Cache
}

func NewSnapshotCache(defaultTTL time.Duration) *SnapshotCache {
	c := cache.New(defaultTTL, 2*defaultTTL)
	return &SnapshotCache{
		cache: c,
	}
}

func (c *SnapshotCache) Get(_ context.Context, key string) (*contract.RawSnapshot, bool) {
	if x, found := c.cache.Get(key); found {
		return x.(*contract.RawSnapshot), true
	}
	return nil, false
}

func (c *SnapshotCache) Set(_ context.Context, key string, snap *contract.RawSnapshot, ttl time.Duration) {
	if ttl <= 0 {
		ttl = cache.DefaultExpiration
	}
	c.cache.Set(key, snap, ttl)
}

func (c *SnapshotCache) Delete(_ context.Context, key string) {
	c.cache.Delete(key)
}
