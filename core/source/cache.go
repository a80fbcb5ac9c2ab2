package source

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// LoadFunc produces a fresh snapshot.
type LoadFunc func(ctx context.Context) (*Snapshot, error)

type cacheEntry struct {
	snap  *Snapshot
	built time.Time
}

func (e *cacheEntry) expired(ttl time.Duration) bool {
	if ttl == 0 {
		return true
	}
	return time.Since(e.built) > ttl
}

// Cache keeps loaded snapshots for a TTL, keyed by source identity.
// Concurrent misses for the same key share one load.
type Cache struct {
	ttl     time.Duration
	mu      sync.RWMutex
	entries map[string]*cacheEntry
	sf      singleflight.Group
}

// NewCache creates a cache. A zero TTL reloads on every call.
func NewCache(ttl time.Duration) *Cache {
	return &Cache{ttl: ttl, entries: make(map[string]*cacheEntry)}
}

// Get returns the cached snapshot for key or loads a new one.
func (c *Cache) Get(ctx context.Context, key string, load LoadFunc) (*Snapshot, error) {
	if snap, ok := c.fresh(key); ok {
		return snap, nil
	}

	result, err, _ := c.sf.Do(key, func() (any, error) {
		if snap, ok := c.fresh(key); ok {
			return snap, nil
		}

		snap, err := load(ctx)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.entries[key] = &cacheEntry{snap: snap, built: time.Now()}
		c.mu.Unlock()
		return snap, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*Snapshot), nil
}

// Invalidate drops the entry for key.
func (c *Cache) Invalidate(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

func (c *Cache) fresh(key string) (*Snapshot, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok || entry.expired(c.ttl) {
		return nil, false
	}
	return entry.snap, true
}

// CacheKey identifies a configured source pair.
func (cfg Config) CacheKey() string {
	return cfg.Location + ":" + cfg.PrimaryMapping + "=" + cfg.PrimaryPath + "|" + cfg.SecondaryMapping + "=" + cfg.SecondaryPath
}
