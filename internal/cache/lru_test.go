package cache

import "testing"

func TestMemLRU_SetGet(t *testing.T) {
	c := newMemLRU[string, int](2)

	c.Set("a", 1)
	c.Set("b", 2)

	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Fatalf("Get(a) = (%d, %v), want (1, true)", v, ok)
	}
	if v, ok := c.Get("b"); !ok || v != 2 {
		t.Fatalf("Get(b) = (%d, %v), want (2, true)", v, ok)
	}
}

func TestMemLRU_EvictsOldest(t *testing.T) {
	c := newMemLRU[string, int](2)

	c.Set("a", 1)
	c.Set("b", 2)
	c.Get("a") // touch a, making b the oldest

	evicted := c.Set("c", 3)
	if !evicted {
		t.Fatal("expected eviction when capacity exceeded")
	}
	if _, ok := c.Get("b"); ok {
		t.Error("expected b to have been evicted as least recently used")
	}
	if _, ok := c.Get("a"); !ok {
		t.Error("expected a to survive eviction")
	}
	if _, ok := c.Get("c"); !ok {
		t.Error("expected c to be present")
	}
}

func TestMemLRU_ZeroCapacityCoercedToDefault(t *testing.T) {
	c := newMemLRU[string, int](0)
	if c.capacity != defaultCapacity {
		t.Fatalf("expected capacity %d, got %d", defaultCapacity, c.capacity)
	}
}

func TestMemLRU_Delete(t *testing.T) {
	c := newMemLRU[string, int](4)
	c.Set("a", 1)

	if !c.Delete("a") {
		t.Fatal("expected Delete to report true for existing key")
	}
	if c.Delete("a") {
		t.Fatal("expected Delete to report false for already-removed key")
	}
	if _, ok := c.Get("a"); ok {
		t.Error("expected a to be gone after Delete")
	}
}

func TestMemLRU_Purge(t *testing.T) {
	c := newMemLRU[string, int](4)
	c.Set("a", 1)
	c.Set("b", 2)

	c.Purge()

	if c.Len() != 0 {
		t.Fatalf("expected length 0 after Purge, got %d", c.Len())
	}
}

func TestMemLRU_KeysMostRecentFirst(t *testing.T) {
	c := newMemLRU[string, int](4)
	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("c", 3)

	keys := c.Keys()
	if len(keys) != 3 || keys[0] != "c" || keys[2] != "a" {
		t.Fatalf("expected [c b a], got %v", keys)
	}
}
