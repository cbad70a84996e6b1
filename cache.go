package tenantkit

import (
	"context"
	"sync"
	"time"
)

// Cache sits in front of the store to shortcut repeated lookups for the
// same identifier. The middleware defaults to a no-op cache so that every
// request hits the store; pass WithCache(NewInMemoryCache()) to opt in.
type Cache interface {
	// Get retrieves a tenant from cache by identifier.
	Get(ctx context.Context, key string) (*Tenant, bool)

	// Set stores a tenant in cache with the given TTL.
	Set(ctx context.Context, key string, tenant *Tenant, ttl time.Duration)

	// Delete removes a tenant from cache.
	Delete(ctx context.Context, key string)

	// Close releases any resources held by the cache.
	Close() error
}

// DefaultCacheSize is the default maximum number of cached tenants.
const DefaultCacheSize = 1000

type cacheEntry struct {
	tenant    *Tenant
	expiresAt time.Time
}

// memoryCache is a size-bounded TTL cache. Eviction removes the entry
// closest to expiry, which approximates LRU well enough for tenant records
// that all share one TTL.
type memoryCache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
	maxSize int
	stop    chan struct{}
	done    chan struct{}
	closed  bool
}

// NewInMemoryCache creates an in-memory cache with automatic cleanup of
// expired entries.
func NewInMemoryCache() Cache {
	return NewInMemoryCacheWithSize(DefaultCacheSize)
}

// NewInMemoryCacheWithSize creates an in-memory cache bounded to maxSize entries.
func NewInMemoryCacheWithSize(maxSize int) Cache {
	if maxSize <= 0 {
		maxSize = DefaultCacheSize
	}
	c := &memoryCache{
		entries: make(map[string]cacheEntry),
		maxSize: maxSize,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	go c.cleanup()
	return c
}

func (c *memoryCache) Get(ctx context.Context, key string) (*Tenant, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if time.Now().After(entry.expiresAt) {
		delete(c.entries, key)
		return nil, false
	}
	return entry.tenant, true
}

func (c *memoryCache) Set(ctx context.Context, key string, tenant *Tenant, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[key]; !ok && len(c.entries) >= c.maxSize {
		c.evictOldest()
	}
	c.entries[key] = cacheEntry{tenant: tenant, expiresAt: time.Now().Add(ttl)}
}

func (c *memoryCache) Delete(ctx context.Context, key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// evictOldest removes the entry with the earliest expiry. Caller holds the lock.
func (c *memoryCache) evictOldest() {
	var (
		oldestKey string
		oldestAt  time.Time
	)
	for key, entry := range c.entries {
		if oldestKey == "" || entry.expiresAt.Before(oldestAt) {
			oldestKey, oldestAt = key, entry.expiresAt
		}
	}
	if oldestKey != "" {
		delete(c.entries, oldestKey)
	}
}

func (c *memoryCache) cleanup() {
	defer close(c.done)
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.mu.Lock()
			now := time.Now()
			for key, entry := range c.entries {
				if now.After(entry.expiresAt) {
					delete(c.entries, key)
				}
			}
			c.mu.Unlock()
		case <-c.stop:
			return
		}
	}
}

func (c *memoryCache) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.mu.Unlock()

	close(c.stop)
	<-c.done
	return nil
}

// noopCache never caches. It is the middleware default, keeping resolution
// semantics exactly one store lookup per request.
type noopCache struct{}

// NewNoOpCache creates a cache that doesn't cache.
func NewNoOpCache() Cache {
	return noopCache{}
}

func (noopCache) Get(ctx context.Context, key string) (*Tenant, bool) { return nil, false }

func (noopCache) Set(ctx context.Context, key string, tenant *Tenant, ttl time.Duration) {}

func (noopCache) Delete(ctx context.Context, key string) {}

func (noopCache) Close() error { return nil }
