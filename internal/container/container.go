package container

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/gitai-dev/gitai-core/pkg/gitaierr"
)

// core is the shared state behind every handle to one container. Clone
// returns another Container pointing at the same core, so all clones
// observe the same singletons and counters.
type core struct {
	mu         sync.RWMutex
	factories  map[string]func(ctx context.Context) (any, error)
	singletons map[string]any

	flight singleflight.Group

	statsMu sync.Mutex
	stats   Stats
}

// Container is a handle to a service container. The zero value is not
// usable; construct one with New.
type Container struct {
	core *core
}

// New returns an empty Container with no services registered.
func New() *Container {
	return &Container{core: &core{
		factories:  make(map[string]func(ctx context.Context) (any, error)),
		singletons: make(map[string]any),
	}}
}

// Clone returns another handle to the same underlying state: the clone
// and its source observe the same singletons and the same counters.
func (c *Container) Clone() *Container {
	return &Container{core: c.core}
}

// Stats returns a snapshot of the container's counters.
func (c *Container) Stats() Stats {
	c.core.statsMu.Lock()
	defer c.core.statsMu.Unlock()
	return c.core.stats
}

// GetCacheHitRate returns hits / (hits + misses) across every registered
// type, or 0 if nothing has been resolved yet.
func (c *Container) GetCacheHitRate() float64 {
	return c.Stats().HitRate()
}

func (c *Container) recordHit() {
	c.core.statsMu.Lock()
	c.core.stats.Hits++
	c.core.statsMu.Unlock()
}

func (c *Container) recordMiss() {
	c.core.statsMu.Lock()
	c.core.stats.Misses++
	c.core.statsMu.Unlock()
}

// typeKey derives a per-type string key for T without requiring a live
// value, so Register/Resolve work uniformly for concrete and interface
// type parameters.
func typeKey[T any]() string {
	return reflect.TypeOf((*T)(nil)).Elem().String()
}

// Register installs factory as the constructor for T. Registration is
// idempotent by type: registering again for the same T replaces the
// factory and discards any instance already constructed under the
// previous factory, so the next Resolve observes the new one.
func Register[T any](c *Container, factory func(ctx context.Context) (T, error)) {
	key := typeKey[T]()

	c.core.mu.Lock()
	c.core.factories[key] = func(ctx context.Context) (any, error) {
		return factory(ctx)
	}
	delete(c.core.singletons, key)
	c.core.mu.Unlock()
}

// Resolve returns the shared instance of T, constructing it on first
// use. Concurrent Resolve calls for the same unconstructed T coalesce
// into a single factory invocation; a failed construction is not
// cached, so the next Resolve call retries from scratch.
func Resolve[T any](ctx context.Context, c *Container) (T, error) {
	var zero T
	key := typeKey[T]()

	ctx, span := startResolveSpan(ctx, key)
	defer span.End()

	c.core.mu.RLock()
	if v, ok := c.core.singletons[key]; ok {
		c.core.mu.RUnlock()
		c.recordHit()
		setResolveSpanOutcome(span, true)
		return v.(T), nil
	}
	factory, registered := c.core.factories[key]
	c.core.mu.RUnlock()

	if !registered {
		return zero, fmt.Errorf("%w: %s", gitaierr.ErrServiceNotRegistered, key)
	}

	c.recordMiss()
	setResolveSpanOutcome(span, false)

	result, err, _ := c.core.flight.Do(key, func() (interface{}, error) {
		c.core.mu.RLock()
		if v, ok := c.core.singletons[key]; ok {
			c.core.mu.RUnlock()
			return v, nil
		}
		c.core.mu.RUnlock()

		instance, buildErr := factory(ctx)
		if buildErr != nil {
			return nil, fmt.Errorf("%w: %v", gitaierr.ErrCreationFailed, buildErr)
		}

		c.core.mu.Lock()
		c.core.singletons[key] = instance
		c.core.mu.Unlock()
		return instance, nil
	})
	if err != nil {
		return zero, err
	}
	return result.(T), nil
}
