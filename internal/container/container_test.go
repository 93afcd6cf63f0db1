package container

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/gitai-dev/gitai-core/pkg/gitaierr"
)

type widget struct{ id int }

type gadget interface{ Name() string }

type gadgetImpl struct{}

func (gadgetImpl) Name() string { return "gadget" }

func TestResolve_UnregisteredTypeFails(t *testing.T) {
	c := New()
	_, err := Resolve[widget](context.Background(), c)
	if !errors.Is(err, gitaierr.ErrServiceNotRegistered) {
		t.Fatalf("expected ErrServiceNotRegistered, got %v", err)
	}
}

func TestResolve_BuildsOnceAndCachesSingleton(t *testing.T) {
	c := New()
	var calls atomic.Int32
	Register(c, func(ctx context.Context) (widget, error) {
		calls.Add(1)
		return widget{id: 7}, nil
	})

	first, err := Resolve[widget](context.Background(), c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Resolve[widget](context.Background(), c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first.id != 7 || second.id != 7 {
		t.Fatalf("unexpected instances: %+v %+v", first, second)
	}
	if calls.Load() != 1 {
		t.Fatalf("expected the factory to run exactly once, ran %d times", calls.Load())
	}
}

func TestResolve_CoalescesConcurrentMisses(t *testing.T) {
	c := New()
	var calls atomic.Int32
	release := make(chan struct{})

	Register(c, func(ctx context.Context) (widget, error) {
		calls.Add(1)
		<-release
		return widget{id: 1}, nil
	})

	const n = 8
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			if _, err := Resolve[widget](context.Background(), c); err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}

	close(release)
	wg.Wait()

	if calls.Load() != 1 {
		t.Fatalf("expected exactly one factory invocation across %d concurrent resolvers, got %d", n, calls.Load())
	}
}

func TestResolve_FailureNotCachedAndRetries(t *testing.T) {
	c := New()
	boom := errors.New("boom")
	attempt := 0
	Register(c, func(ctx context.Context) (widget, error) {
		attempt++
		if attempt == 1 {
			return widget{}, boom
		}
		return widget{id: 42}, nil
	})

	_, err := Resolve[widget](context.Background(), c)
	if !errors.Is(err, gitaierr.ErrCreationFailed) {
		t.Fatalf("expected ErrCreationFailed, got %v", err)
	}

	got, err := Resolve[widget](context.Background(), c)
	if err != nil {
		t.Fatalf("expected the retry to succeed, got %v", err)
	}
	if got.id != 42 {
		t.Fatalf("unexpected instance on retry: %+v", got)
	}
	if attempt != 2 {
		t.Fatalf("expected exactly 2 factory attempts, got %d", attempt)
	}
}

func TestRegister_LastRegistrationWinsAndResetsSingleton(t *testing.T) {
	c := New()
	Register(c, func(ctx context.Context) (widget, error) { return widget{id: 1}, nil })
	if _, err := Resolve[widget](context.Background(), c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	Register(c, func(ctx context.Context) (widget, error) { return widget{id: 2}, nil })
	got, err := Resolve[widget](context.Background(), c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.id != 2 {
		t.Fatalf("expected the latest registration to win, got %+v", got)
	}
}

func TestResolve_InterfaceType(t *testing.T) {
	c := New()
	Register(c, func(ctx context.Context) (gadget, error) { return gadgetImpl{}, nil })

	g, err := Resolve[gadget](context.Background(), c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.Name() != "gadget" {
		t.Fatalf("unexpected instance: %+v", g)
	}
}

func TestClone_SharesSingletonsAndStats(t *testing.T) {
	c := New()
	Register(c, func(ctx context.Context) (widget, error) { return widget{id: 99}, nil })

	if _, err := Resolve[widget](context.Background(), c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	clone := c.Clone()
	got, err := Resolve[widget](context.Background(), clone)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.id != 99 {
		t.Fatalf("expected clone to observe the same singleton, got %+v", got)
	}

	stats := c.Stats()
	if stats.Hits == 0 {
		t.Fatalf("expected clone's resolution to be reflected in the shared stats, got %+v", stats)
	}
}

func TestStats_HitRate(t *testing.T) {
	c := New()
	Register(c, func(ctx context.Context) (widget, error) { return widget{}, nil })

	if rate := c.GetCacheHitRate(); rate != 0 {
		t.Fatalf("expected 0 hit rate before any resolution, got %v", rate)
	}

	if _, err := Resolve[widget](context.Background(), c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := Resolve[widget](context.Background(), c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stats := c.Stats()
	if stats.Misses != 1 || stats.Hits != 1 {
		t.Fatalf("expected 1 miss and 1 hit, got %+v", stats)
	}
	if rate := c.GetCacheHitRate(); rate != 0.5 {
		t.Fatalf("expected hit rate 0.5, got %v", rate)
	}
}
