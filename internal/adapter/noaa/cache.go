package noaa

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/lowceiling/mos-data-etl/internal/domain"
	"github.com/lowceiling/mos-data-etl/internal/observability"
)

// CachedSource wraps a BulletinSource with an in-memory LRU cache. Entries
// expire after a TTL so a long-running collector still sees fresh MOS cycles.
type CachedSource struct {
	inner   domain.BulletinSource
	cache   *lruCache
	metrics *observability.Metrics
}

// NewCachedSource creates a cache decorator around a bulletin source.
func NewCachedSource(inner domain.BulletinSource, maxEntries int, ttl time.Duration, metrics *observability.Metrics) *CachedSource {
	return &CachedSource{
		inner:   inner,
		cache:   newLRUCache(maxEntries, ttl),
		metrics: metrics,
	}
}

func (c *CachedSource) Fetch(ctx context.Context, station, reportType string) (string, error) {
	key := fmt.Sprintf("%s|%s", station, reportType)
	if text, ok := c.cache.get(key); ok {
		c.metrics.FetchCache.WithLabelValues(reportType, "hit").Inc()
		return text, nil
	}
	c.metrics.FetchCache.WithLabelValues(reportType, "miss").Inc()

	text, err := c.inner.Fetch(ctx, station, reportType)
	if err != nil {
		return text, err
	}
	// Only cache non-empty bulletins so a station that was briefly missing
	// gets retried on the next cycle.
	if text != "" {
		c.cache.put(key, text)
	}
	return text, nil
}

// lruCache is a thread-safe LRU cache of bulletin text with per-entry expiry.
type lruCache struct {
	maxEntries int
	ttl        time.Duration
	now        func() time.Time

	mu      sync.Mutex
	entries map[string]*entry
	head    *entry // most recently used
	tail    *entry // least recently used
}

type entry struct {
	key       string
	value     string
	expiresAt time.Time
	prev      *entry
	next      *entry
}

func newLRUCache(maxEntries int, ttl time.Duration) *lruCache {
	return &lruCache{
		maxEntries: maxEntries,
		ttl:        ttl,
		now:        time.Now,
		entries:    make(map[string]*entry),
	}
}

func (c *lruCache) get(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return "", false
	}
	if c.now().After(e.expiresAt) {
		delete(c.entries, e.key)
		c.remove(e)
		return "", false
	}
	c.moveToFront(e)
	return e.value, true
}

func (c *lruCache) put(key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	expiresAt := c.now().Add(c.ttl)
	if e, ok := c.entries[key]; ok {
		e.value = value
		e.expiresAt = expiresAt
		c.moveToFront(e)
		return
	}

	e := &entry{key: key, value: value, expiresAt: expiresAt}
	c.entries[key] = e
	c.addToFront(e)

	if len(c.entries) > c.maxEntries {
		c.evictTail()
	}
}

func (c *lruCache) moveToFront(e *entry) {
	if e == c.head {
		return
	}
	c.remove(e)
	c.addToFront(e)
}

func (c *lruCache) addToFront(e *entry) {
	e.next = c.head
	e.prev = nil
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *lruCache) remove(e *entry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
}

func (c *lruCache) evictTail() {
	if c.tail == nil {
		return
	}
	delete(c.entries, c.tail.key)
	c.remove(c.tail)
}
