package cache

import (
	"context"
	"testing"
	"time"
)

type fakeClock struct{ t time.Time }

func (f *fakeClock) now() time.Time { return f.t }

func newTestCache(max int, ttl time.Duration) (*LRUCache[string], *fakeClock) {
	clk := &fakeClock{t: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := NewLRUCache[string](max, ttl)
	c.now = clk.now
	return c, clk
}

func TestLRUGetSetDelete(t *testing.T) {
	c, _ := newTestCache(2, time.Minute)
	c.Set("a", "1")
	if v, ok := c.Get("a"); !ok || v != "1" {
		t.Fatalf("Get(a) = %q, %v", v, ok)
	}
	c.Set("a", "2")
	if v, _ := c.Get("a"); v != "2" {
		t.Fatalf("overwrite failed: %q", v)
	}
	c.Delete("a")
	if _, ok := c.Get("a"); ok {
		t.Fatalf("expected a deleted")
	}
	if c.Size() != 0 {
		t.Fatalf("size = %d", c.Size())
	}
}

func TestLRUCapacityEviction(t *testing.T) {
	c, _ := newTestCache(2, time.Minute)
	var evicted []string
	c.OnEvict(func(key string, _ string, reason EvictReason) {
		if reason == EvictCapacity {
			evicted = append(evicted, key)
		}
	})
	c.Set("a", "1")
	c.Set("b", "2")
	c.Get("a") // b becomes least recently used
	c.Set("c", "3")
	if _, ok := c.Get("b"); ok {
		t.Fatalf("expected b evicted")
	}
	if len(evicted) != 1 || evicted[0] != "b" {
		t.Fatalf("evicted = %v", evicted)
	}
}

func TestLRUSlidingExpiry(t *testing.T) {
	c, clk := newTestCache(10, time.Minute)
	c.Set("a", "1")

	clk.t = clk.t.Add(50 * time.Second)
	if _, ok := c.Get("a"); !ok {
		t.Fatalf("a should still be live")
	}
	// Expiry was pushed forward by the Get above.
	clk.t = clk.t.Add(50 * time.Second)
	if _, ok := c.Get("a"); !ok {
		t.Fatalf("a should have been refreshed")
	}
	clk.t = clk.t.Add(2 * time.Minute)
	if _, ok := c.Get("a"); ok {
		t.Fatalf("a should have expired")
	}
}

func TestManagerSweep(t *testing.T) {
	c, clk := newTestCache(10, time.Minute)
	reasons := map[string]EvictReason{}
	c.OnEvict(func(key string, _ string, reason EvictReason) { reasons[key] = reason })
	c.Set("a", "1")
	c.Set("b", "2")
	clk.t = clk.t.Add(2 * time.Minute)
	c.Set("c", "3")

	m := NewManager(c)
	if n := m.Sweep(); n != 2 {
		t.Fatalf("swept %d, want 2", n)
	}
	if c.Size() != 1 || reasons["a"] != EvictExpired || reasons["b"] != EvictExpired {
		t.Fatalf("size=%d reasons=%v", c.Size(), reasons)
	}
}

func TestManagerRunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- NewManager().Run(ctx, time.Millisecond) }()
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}
