package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func TestInMemoryCache_GetSet(t *testing.T) {
	c := NewInMemoryCache(3600)

	if _, ok := c.Get("k"); ok {
		t.Error("expected miss on empty cache")
	}

	if err := c.Set("k", "v"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, ok := c.Get("k")
	if !ok || got != "v" {
		t.Errorf("Get = (%q, %v), want (v, true)", got, ok)
	}

	c.Set("k", "v2")
	if got, _ := c.Get("k"); got != "v2" {
		t.Errorf("Get after overwrite = %q, want v2", got)
	}
	if c.Len() != 1 {
		t.Errorf("Len = %d, want 1", c.Len())
	}
}

func TestInMemoryCache_Expiry(t *testing.T) {
	clk := &fakeClock{t: time.Unix(1000, 0)}
	c := newInMemoryCache(60, clk.now)

	c.Set("k", "v")
	clk.advance(59 * time.Second)
	if _, ok := c.Get("k"); !ok {
		t.Error("entry expired early")
	}

	clk.advance(2 * time.Second)
	if _, ok := c.Get("k"); ok {
		t.Error("entry should have expired")
	}
	if c.Len() != 0 {
		t.Errorf("expired entry not dropped, Len = %d", c.Len())
	}
}

func TestInMemoryCache_NoTTL(t *testing.T) {
	clk := &fakeClock{t: time.Unix(1000, 0)}
	c := newInMemoryCache(0, clk.now)

	c.Set("k", "v")
	clk.advance(24 * 365 * time.Hour)
	if _, ok := c.Get("k"); !ok {
		t.Error("entries without TTL must not expire")
	}
}

func TestInMemoryCache_EntriesSkipsExpired(t *testing.T) {
	clk := &fakeClock{t: time.Unix(1000, 0)}
	c := newInMemoryCache(10, clk.now)

	c.Set("old", "1")
	clk.advance(11 * time.Second)
	c.Set("new", "2")

	entries := c.Entries()
	if len(entries) != 1 || entries["new"] != "2" {
		t.Errorf("Entries = %v, want only new", entries)
	}
}

func TestInMemoryCache_StatsAndClear(t *testing.T) {
	c := NewInMemoryCache(0)
	c.Set("a", "1")
	c.Get("a")
	c.Get("a")
	c.Get("b")

	st := c.Stats()
	if st.Entries != 1 || st.Hits != 2 || st.Misses != 1 {
		t.Errorf("Stats = %+v", st)
	}

	c.Clear()
	if st := c.Stats(); st != (Stats{}) {
		t.Errorf("Stats after Clear = %+v, want zero", st)
	}
}

func TestInMemoryCache_Concurrent(t *testing.T) {
	c := NewInMemoryCache(3600)
	var wg sync.WaitGroup

	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				key := fmt.Sprintf("k%d", j%10)
				c.Set(key, fmt.Sprint(n))
				c.Get(key)
			}
		}(i)
	}
	wg.Wait()

	if c.Len() != 10 {
		t.Errorf("Len = %d, want 10", c.Len())
	}
}
