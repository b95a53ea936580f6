// README: TTL-bounded, single-flight cache of approved dynamic FAQ entries.
package faq

import (
	"context"
	"log"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Loader is the persistence side of the cache; *Store satisfies it.
type Loader interface {
	LoadApproved(ctx context.Context, limit int) ([]Entry, error)
}

// Cache holds the approved dynamic entries, refreshed at most once per TTL.
// Concurrent callers hitting a stale cache share a single reload; the swap is
// whole-slice, so readers see either the old or the new snapshot, never a
// partial write.
type Cache struct {
	loader     Loader
	ttl        time.Duration
	maxEntries int
	now        func() time.Time

	group singleflight.Group

	mu       sync.RWMutex
	entries  []Entry
	loadedAt time.Time
}

// NewCache creates a Cache. now may be nil (defaults to time.Now); tests
// inject a fake clock.
func NewCache(loader Loader, ttl time.Duration, maxEntries int, now func() time.Time) *Cache {
	if now == nil {
		now = time.Now
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if maxEntries <= 0 {
		maxEntries = 200
	}
	return &Cache{loader: loader, ttl: ttl, maxEntries: maxEntries, now: now}
}

// Entries returns the cached snapshot, reloading first when the TTL has
// elapsed. A failed reload logs and serves the previous snapshot, or nothing
// on a cold start; the caller simply falls through to the next stage.
func (c *Cache) Entries(ctx context.Context) []Entry {
	c.mu.RLock()
	fresh := !c.loadedAt.IsZero() && c.now().Sub(c.loadedAt) < c.ttl
	snapshot := c.entries
	c.mu.RUnlock()
	if fresh {
		return snapshot
	}

	got, err, _ := c.group.Do("reload", func() (any, error) {
		entries, err := c.loader.LoadApproved(ctx, c.maxEntries)
		if err != nil {
			return nil, err
		}
		if len(entries) > c.maxEntries {
			entries = entries[:c.maxEntries]
		}
		c.mu.Lock()
		c.entries = entries
		c.loadedAt = c.now()
		c.mu.Unlock()
		return entries, nil
	})
	if err != nil {
		log.Printf("faq: cache reload failed: %v", err)
		return snapshot
	}
	return got.([]Entry)
}

// Invalidate forces the next Entries call to reload.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.loadedAt = time.Time{}
	c.mu.Unlock()
}
