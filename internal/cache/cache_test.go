package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/gitai-dev/gitai-core/internal/structural"
)

func testSummary(name string) structural.Summary {
	return structural.NewSingleLanguage(structural.LangGo, structural.LanguageSummary{
		Functions: []structural.FunctionInfo{{Name: name, LineStart: 1, LineEnd: 2}},
	})
}

func TestCache_SetThenGet_HitsMemory(t *testing.T) {
	c := New(WithDirectory(t.TempDir()))
	key := NewCacheKey([]byte("package a"), structural.LangGo)

	if err := c.Set(key, testSummary("A")); err != nil {
		t.Fatalf("Set: %v", err)
	}

	summary, ok := c.Get(key)
	if !ok {
		t.Fatal("expected hit after Set")
	}
	if len(summary.Functions) != 1 || summary.Functions[0].Name != "A" {
		t.Fatalf("unexpected summary: %+v", summary)
	}

	stats := c.Stats()
	if stats.Hits != 1 {
		t.Errorf("expected 1 hit, got %d", stats.Hits)
	}
}

func TestCache_Get_MissWhenAbsent(t *testing.T) {
	c := New(WithDirectory(t.TempDir()))
	key := NewCacheKey([]byte("package a"), structural.LangGo)

	if _, ok := c.Get(key); ok {
		t.Fatal("expected miss for unseen key")
	}
	stats := c.Stats()
	if stats.Misses != 1 || stats.DiskMisses != 1 {
		t.Errorf("expected 1 miss and 1 disk miss, got %+v", stats)
	}
}

func TestCache_DiskHit_PromotesToMemory(t *testing.T) {
	c := New(WithDirectory(t.TempDir()))
	key := NewCacheKey([]byte("package a"), structural.LangGo)

	if err := c.disk.Store(key, CacheEntry{Summary: testSummary("A"), CreatedAtSec: nowSeconds()}); err != nil {
		t.Fatalf("Store: %v", err)
	}

	if _, ok := c.mem.Get(key); ok {
		t.Fatal("memory tier should be empty before first Get")
	}

	summary, ok := c.Get(key)
	if !ok || len(summary.Functions) != 1 {
		t.Fatalf("expected disk hit to surface the stored summary, got (%+v, %v)", summary, ok)
	}

	if _, ok := c.mem.Get(key); !ok {
		t.Error("expected disk hit to promote entry into the memory tier")
	}

	stats := c.Stats()
	if stats.DiskHits != 1 {
		t.Errorf("expected 1 disk hit, got %d", stats.DiskHits)
	}
}

func TestCache_Get_ExpiredEntryTreatedAsMiss(t *testing.T) {
	c := New(WithDirectory(t.TempDir()), WithMaxAgeSeconds(1))
	key := NewCacheKey([]byte("package a"), structural.LangGo)

	stale := CacheEntry{Summary: testSummary("A"), CreatedAtSec: nowSeconds() - 1000}
	c.mem.Set(key, stale)
	if err := c.disk.Store(key, stale); err != nil {
		t.Fatalf("Store: %v", err)
	}

	if _, ok := c.Get(key); ok {
		t.Fatal("expected expired entry to be treated as a miss")
	}
	if _, ok := c.mem.Get(key); ok {
		t.Error("expected expired entry to be removed from memory tier")
	}
	if _, ok, _ := c.disk.Load(key); ok {
		t.Error("expected expired entry to be removed from disk tier")
	}
}

func TestCache_MaxAgeZero_NeverExpires(t *testing.T) {
	c := New(WithDirectory(t.TempDir()), WithMaxAgeSeconds(0))
	key := NewCacheKey([]byte("package a"), structural.LangGo)

	ancient := CacheEntry{Summary: testSummary("A"), CreatedAtSec: 0}
	c.mem.Set(key, ancient)

	if _, ok := c.Get(key); !ok {
		t.Fatal("expected max age 0 to mean entries never expire")
	}
}

func TestCache_GetOrBuild_CallsBuildOnceOnMiss(t *testing.T) {
	c := New(WithDirectory(t.TempDir()))
	key := NewCacheKey([]byte("package a"), structural.LangGo)

	var calls atomic.Int32
	build := func(ctx context.Context) (structural.Summary, error) {
		calls.Add(1)
		return testSummary("A"), nil
	}

	if _, err := c.GetOrBuild(context.Background(), key, build); err != nil {
		t.Fatalf("GetOrBuild: %v", err)
	}
	if _, err := c.GetOrBuild(context.Background(), key, build); err != nil {
		t.Fatalf("GetOrBuild: %v", err)
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("expected build to run once across two calls, ran %d times", got)
	}
}

func TestCache_GetOrBuild_CoalescesConcurrentMisses(t *testing.T) {
	c := New(WithDirectory(t.TempDir()))
	key := NewCacheKey([]byte("package a"), structural.LangGo)

	var calls atomic.Int32
	release := make(chan struct{})
	build := func(ctx context.Context) (structural.Summary, error) {
		calls.Add(1)
		<-release
		return testSummary("A"), nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := c.GetOrBuild(context.Background(), key, build); err != nil {
				t.Errorf("GetOrBuild: %v", err)
			}
		}()
	}

	close(release)
	wg.Wait()

	if got := calls.Load(); got != 1 {
		t.Fatalf("expected exactly one build across concurrent misses, got %d", got)
	}
}

func TestCache_GetOrBuild_FailureNotCached(t *testing.T) {
	c := New(WithDirectory(t.TempDir()))
	key := NewCacheKey([]byte("package a"), structural.LangGo)

	boom := errors.New("boom")
	failing := func(ctx context.Context) (structural.Summary, error) {
		return structural.Summary{}, boom
	}
	if _, err := c.GetOrBuild(context.Background(), key, failing); !errors.Is(err, boom) {
		t.Fatalf("expected build error to propagate, got %v", err)
	}

	succeeding := func(ctx context.Context) (structural.Summary, error) {
		return testSummary("A"), nil
	}
	summary, err := c.GetOrBuild(context.Background(), key, succeeding)
	if err != nil {
		t.Fatalf("expected retry after failed build to succeed, got %v", err)
	}
	if len(summary.Functions) != 1 {
		t.Fatalf("unexpected summary after retry: %+v", summary)
	}
}

func TestCache_Clear_EmptiesBothTiers(t *testing.T) {
	c := New(WithDirectory(t.TempDir()))
	key := NewCacheKey([]byte("package a"), structural.LangGo)

	if err := c.Set(key, testSummary("A")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := c.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}

	if _, ok := c.Get(key); ok {
		t.Fatal("expected cache to be empty after Clear")
	}
}

func TestCache_CleanupExpired_RemovesOnlyStaleEntries(t *testing.T) {
	c := New(WithDirectory(t.TempDir()), WithMaxAgeSeconds(1000))

	fresh := NewCacheKey([]byte("fresh"), structural.LangGo)
	stale := NewCacheKey([]byte("stale"), structural.LangGo)

	if err := c.Set(fresh, testSummary("Fresh")); err != nil {
		t.Fatalf("Set fresh: %v", err)
	}
	staleEntry := CacheEntry{Summary: testSummary("Stale"), CreatedAtSec: nowSeconds() - 100000}
	c.mem.Set(stale, staleEntry)
	if err := c.disk.Store(stale, staleEntry); err != nil {
		t.Fatalf("Store stale: %v", err)
	}

	removed, err := c.CleanupExpired()
	if err != nil {
		t.Fatalf("CleanupExpired: %v", err)
	}
	if removed == 0 {
		t.Fatal("expected at least one expired entry removed")
	}

	if _, ok := c.Get(fresh); !ok {
		t.Error("expected fresh entry to survive cleanup")
	}
	if _, ok := c.Get(stale); ok {
		t.Error("expected stale entry to be gone after cleanup")
	}
}
