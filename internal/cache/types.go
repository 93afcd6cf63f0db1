// Package cache implements a two-tier (memory + disk) analysis cache: a
// content-addressed store keyed by (content hash, language) that
// short-circuits repeated parse+extract work on identical source.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/gitai-dev/gitai-core/internal/structural"
)

// CacheKey identifies one analyzed unit by the hash of its exact byte
// content plus its language tag: equal bytes and equal language always
// produce an equal key.
type CacheKey struct {
	ContentHash string
	Language    string
}

// NewCacheKey computes a CacheKey from raw source bytes and a language tag.
func NewCacheKey(source []byte, language string) CacheKey {
	sum := sha256.Sum256(source)
	return CacheKey{ContentHash: hex.EncodeToString(sum[:]), Language: language}
}

// fileName returns the on-disk filename for this key:
// "<language>_<hex-content-hash>.json".
func (k CacheKey) fileName() string {
	return k.Language + "_" + k.ContentHash + cacheFileExt
}

const cacheFileExt = ".json"

// CacheEntry wraps a Structural Summary with bookkeeping: creation time,
// used to compute expiry, and an access count. AccessCount is carried in
// the serialized entry but Get does not update it, and eviction follows
// LRU recency only, not access counts.
type CacheEntry struct {
	Summary      structural.Summary `json:"summary"`
	CreatedAtSec int64              `json:"created_at_sec"`
	AccessCount  int64              `json:"access_count"`
}

// Expired reports whether the entry has exceeded maxAgeSeconds, measured
// against now (seconds since epoch). maxAgeSeconds == 0 means the entry
// never expires.
func (e CacheEntry) Expired(now int64, maxAgeSeconds int64) bool {
	if maxAgeSeconds == 0 {
		return false
	}
	return now-e.CreatedAtSec > maxAgeSeconds
}

// CacheStats is a snapshot of cache counters.
type CacheStats struct {
	Hits       int64
	Misses     int64
	Evictions  int64
	DiskHits   int64
	DiskMisses int64
}

// HitRate returns hits / (hits + misses), or 0 when there have been no
// lookups at all.
func (s CacheStats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

// Options configures a Cache.
type Options struct {
	// Capacity is the in-memory LRU tier's entry limit. <= 0 is coerced to
	// defaultCapacity.
	Capacity int

	// MaxAgeSeconds is the entry TTL. 0 disables expiry.
	MaxAgeSeconds int64

	// Directory is the on-disk cache root. Empty uses DefaultCacheDir().
	Directory string
}

// DefaultOptions returns the cache's default configuration.
func DefaultOptions() Options {
	return Options{
		Capacity:      defaultCapacity,
		MaxAgeSeconds: int64((30 * time.Minute).Seconds()),
	}
}

// Option is a functional option for configuring a Cache.
type Option func(*Options)

// WithCapacity sets the in-memory LRU tier's entry limit.
func WithCapacity(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.Capacity = n
		}
	}
}

// WithMaxAgeSeconds sets the entry TTL; 0 disables expiry.
func WithMaxAgeSeconds(seconds int64) Option {
	return func(o *Options) {
		if seconds >= 0 {
			o.MaxAgeSeconds = seconds
		}
	}
}

// WithDirectory sets the on-disk cache root directory.
func WithDirectory(dir string) Option {
	return func(o *Options) {
		if dir != "" {
			o.Directory = dir
		}
	}
}
