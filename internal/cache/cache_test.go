package cache

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
)

func TestCache_GetSet(t *testing.T) {
	c := New[string, int](0)

	if _, ok := c.Get("missing"); ok {
		t.Error("Get on empty cache returned ok")
	}

	c.Set("a", 1)
	c.Set("a", 2)
	if v, ok := c.Get("a"); !ok || v != 2 {
		t.Errorf("Get(a) = %d, %v; want 2, true", v, ok)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
}

func TestCache_EvictsLeastRecentlyUsed(t *testing.T) {
	c := New[string, int](2)
	c.Set("a", 1)
	c.Set("b", 2)
	c.Get("a") // b is now the oldest
	c.Set("c", 3)

	if _, ok := c.Get("b"); ok {
		t.Error("b should have been evicted")
	}
	for _, k := range []string{"a", "c"} {
		if _, ok := c.Get(k); !ok {
			t.Errorf("%s should still be cached", k)
		}
	}
	if s := c.Stats(); s.Evictions != 1 || s.Len != 2 || s.Capacity != 2 {
		t.Errorf("Stats() = %+v", s)
	}
}

func TestCache_GetOrCreate(t *testing.T) {
	c := New[string, int](4)
	var calls atomic.Int32
	create := func() (int, error) {
		calls.Add(1)
		return 42, nil
	}

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := c.GetOrCreate("k", create)
			if err != nil || v != 42 {
				t.Errorf("GetOrCreate = %d, %v", v, err)
			}
		}()
	}
	wg.Wait()

	if calls.Load() != 1 {
		t.Errorf("create called %d times, want 1", calls.Load())
	}
	if s := c.Stats(); s.Hits != 15 || s.Misses != 1 {
		t.Errorf("Stats() = %+v, want 15 hits 1 miss", s)
	}
}

func TestCache_GetOrCreateErrorNotCached(t *testing.T) {
	c := New[string, int](4)
	errBoom := errors.New("boom")

	if _, err := c.GetOrCreate("k", func() (int, error) { return 0, errBoom }); !errors.Is(err, errBoom) {
		t.Fatalf("err = %v, want boom", err)
	}
	if c.Len() != 0 {
		t.Error("failed create was cached")
	}
	if v, err := c.GetOrCreate("k", func() (int, error) { return 7, nil }); err != nil || v != 7 {
		t.Errorf("retry = %d, %v", v, err)
	}
}

func TestCache_DeleteClear(t *testing.T) {
	c := New[int, string](0)
	c.Set(1, "one")
	c.Set(2, "two")
	c.Set(3, "three")

	if !c.Delete(2) || c.Delete(2) {
		t.Error("Delete(2) should succeed once")
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}

	c.Clear()
	if c.Len() != 0 {
		t.Errorf("Len() after Clear = %d", c.Len())
	}
	c.Set(4, "four")
	if v, ok := c.Get(4); !ok || v != "four" {
		t.Error("cache unusable after Clear")
	}
}
