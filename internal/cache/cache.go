package cache

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/gitai-dev/gitai-core/internal/structural"
)

// BuildFunc produces a fresh Structural Summary for a GetOrBuild miss.
// Concurrent GetOrBuild misses for the same key coalesce into a single
// build; a build that fails is not cached, so the next miss builds again.
type BuildFunc func(ctx context.Context) (structural.Summary, error)

// Cache is a two-tier analysis cache: an in-memory LRU tier backed by a
// content-addressed disk tier, with singleflight-coalesced fills on
// disk/build misses. One entry per CacheKey.
type Cache struct {
	mem   *memLRU[CacheKey, CacheEntry]
	disk  *diskStore
	flight singleflight.Group

	maxAgeSeconds int64

	mu    sync.Mutex
	stats CacheStats
}

// New constructs a Cache from options, applying DefaultOptions() first.
func New(opts ...Option) *Cache {
	o := DefaultOptions()
	for _, apply := range opts {
		apply(&o)
	}
	return &Cache{
		mem:           newMemLRU[CacheKey, CacheEntry](o.Capacity),
		disk:          newDiskStore(o.Directory),
		maxAgeSeconds: o.MaxAgeSeconds,
	}
}

// Get returns the cached Summary for key if present and unexpired. A
// memory hit is returned immediately. A memory miss falls through to the
// disk tier; a disk hit is promoted back into memory before returning.
func (c *Cache) Get(key CacheKey) (structural.Summary, bool) {
	now := nowSeconds()

	if entry, ok := c.mem.Get(key); ok {
		if entry.Expired(now, c.maxAgeSeconds) {
			c.mem.Delete(key)
			c.disk.Remove(key)
			c.recordMiss()
			return structural.Summary{}, false
		}
		c.recordHit()
		return entry.Summary, true
	}

	entry, ok, err := c.disk.Load(key)
	if err != nil || !ok {
		c.recordMiss()
		c.recordDiskMiss()
		return structural.Summary{}, false
	}
	if entry.Expired(now, c.maxAgeSeconds) {
		c.disk.Remove(key)
		c.recordMiss()
		c.recordDiskMiss()
		return structural.Summary{}, false
	}

	c.recordDiskHit()
	c.recordHit()
	if c.mem.Set(key, entry) {
		c.recordEviction()
	}
	return entry.Summary, true
}

// Set stores summary under key in both tiers, stamping CreatedAtSec with
// the current time.
func (c *Cache) Set(key CacheKey, summary structural.Summary) error {
	entry := CacheEntry{Summary: summary, CreatedAtSec: nowSeconds()}

	if c.mem.Set(key, entry) {
		c.recordEviction()
	}
	return c.disk.Store(key, entry)
}

// GetOrBuild returns the cached Summary for key, or calls build to
// produce one on a miss. Concurrent GetOrBuild calls for the same key
// while a build is in flight share its result; a failed build is not
// cached, and the next caller retries from scratch.
func (c *Cache) GetOrBuild(ctx context.Context, key CacheKey, build BuildFunc) (structural.Summary, error) {
	ctx, span := startGetOrBuildSpan(ctx, key)
	defer span.End()

	if summary, ok := c.Get(key); ok {
		setSpanOutcome(span, true)
		return summary, nil
	}

	flightKey := key.Language + "_" + key.ContentHash
	result, err, _ := c.flight.Do(flightKey, func() (interface{}, error) {
		if summary, ok := c.Get(key); ok {
			return summary, nil
		}
		summary, err := build(ctx)
		if err != nil {
			return structural.Summary{}, err
		}
		if setErr := c.Set(key, summary); setErr != nil {
			return structural.Summary{}, setErr
		}
		return summary, nil
	})
	setSpanOutcome(span, false)
	if err != nil {
		return structural.Summary{}, err
	}
	return result.(structural.Summary), nil
}

// Clear empties both tiers.
func (c *Cache) Clear() error {
	c.mem.Purge()
	return c.disk.Clear()
}

// CleanupExpired removes expired entries from both tiers and returns the
// number removed.
func (c *Cache) CleanupExpired() (int, error) {
	now := nowSeconds()
	removed := 0

	for _, key := range c.mem.Keys() {
		entry, ok := c.mem.Get(key)
		if ok && entry.Expired(now, c.maxAgeSeconds) {
			c.mem.Delete(key)
			removed++
		}
	}

	diskRemoved, err := c.disk.CleanupExpired(now, c.maxAgeSeconds)
	removed += diskRemoved
	return removed, err
}

// Stats returns a snapshot of cache counters.
func (c *Cache) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

func (c *Cache) recordHit() {
	c.mu.Lock()
	c.stats.Hits++
	c.mu.Unlock()
}

func (c *Cache) recordMiss() {
	c.mu.Lock()
	c.stats.Misses++
	c.mu.Unlock()
}

func (c *Cache) recordEviction() {
	c.mu.Lock()
	c.stats.Evictions++
	c.mu.Unlock()
}

func (c *Cache) recordDiskHit() {
	c.mu.Lock()
	c.stats.DiskHits++
	c.mu.Unlock()
}

func (c *Cache) recordDiskMiss() {
	c.mu.Lock()
	c.stats.DiskMisses++
	c.mu.Unlock()
}

func nowSeconds() int64 {
	return time.Now().Unix()
}
