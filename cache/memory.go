package cache

import (
	"sync"
	"sync/atomic"
	"time"
)

// memoryEntry is a cached analysis with its expiry. A zero expires means
// the entry never expires.
type memoryEntry struct {
	value   string
	expires time.Time
}

func (e memoryEntry) expired(now time.Time) bool {
	return !e.expires.IsZero() && now.After(e.expires)
}

// InMemoryCache keeps analysis results in process memory. Safe for
// concurrent use; expired entries are dropped lazily on Get.
type InMemoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time

	hits   atomic.Int64
	misses atomic.Int64
}

// NewInMemoryCache creates a cache whose entries live ttlSeconds. Zero or
// a negative value disables expiry.
func NewInMemoryCache(ttlSeconds int) *InMemoryCache {
	return newInMemoryCache(ttlSeconds, time.Now)
}

func newInMemoryCache(ttlSeconds int, now func() time.Time) *InMemoryCache {
	var ttl time.Duration
	if ttlSeconds > 0 {
		ttl = time.Duration(ttlSeconds) * time.Second
	}
	return &InMemoryCache{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     now,
	}
}

// Get returns the stored value for key if present and not expired.
func (c *InMemoryCache) Get(key string) (string, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if ok && e.expired(c.now()) {
		c.mu.Lock()
		// Re-check: a concurrent Set may have refreshed the entry.
		if cur, still := c.entries[key]; still && cur.expired(c.now()) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		ok = false
	}

	if !ok {
		c.misses.Add(1)
		return "", false
	}
	c.hits.Add(1)
	return e.value, true
}

// Set stores value under key, replacing any previous entry.
func (c *InMemoryCache) Set(key string, value string) error {
	e := memoryEntry{value: value}
	if c.ttl > 0 {
		e.expires = c.now().Add(c.ttl)
	}

	c.mu.Lock()
	c.entries[key] = e
	c.mu.Unlock()
	return nil
}

// Len returns the number of stored entries, expired ones included.
func (c *InMemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Clear removes every entry and resets the counters.
func (c *InMemoryCache) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]memoryEntry)
	c.mu.Unlock()
	c.hits.Store(0)
	c.misses.Store(0)
}

// Entries returns a copy of the live entries.
func (c *InMemoryCache) Entries() map[string]string {
	now := c.now()

	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make(map[string]string, len(c.entries))
	for key, e := range c.entries {
		if !e.expired(now) {
			out[key] = e.value
		}
	}
	return out
}

// Stats reports lookups since creation or the last Clear.
type Stats struct {
	Entries int   `json:"entries"`
	Hits    int64 `json:"hits"`
	Misses  int64 `json:"misses"`
}

// Stats returns the current counters.
func (c *InMemoryCache) Stats() Stats {
	return Stats{Entries: c.Len(), Hits: c.hits.Load(), Misses: c.misses.Load()}
}

var _ AnalysisCache = (*InMemoryCache)(nil)
