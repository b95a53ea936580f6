package faq

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

type fakeLoader struct {
	mu      sync.Mutex
	entries []Entry
	err     error
	calls   int32
	delay   time.Duration
}

func (f *fakeLoader) LoadApproved(ctx context.Context, limit int) ([]Entry, error) {
	atomic.AddInt32(&f.calls, 1)
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	if len(f.entries) > limit {
		return f.entries[:limit], nil
	}
	return f.entries, nil
}

func (f *fakeLoader) set(entries []Entry) {
	f.mu.Lock()
	f.entries = entries
	f.mu.Unlock()
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func TestCacheTTL(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)}
	loader := &fakeLoader{entries: []Entry{{ID: "e1"}}}
	cache := NewCache(loader, time.Minute, 10, clock.Now)

	ctx := context.Background()
	if got := cache.Entries(ctx); len(got) != 1 {
		t.Fatalf("first load: %d entries, want 1", len(got))
	}

	// Within TTL: no second fetch even after the source changes.
	loader.set([]Entry{{ID: "e1"}, {ID: "e2"}})
	if got := cache.Entries(ctx); len(got) != 1 {
		t.Fatalf("within TTL: %d entries, want stale 1", len(got))
	}
	if n := atomic.LoadInt32(&loader.calls); n != 1 {
		t.Fatalf("loader called %d times within TTL, want 1", n)
	}

	// After TTL: refreshed.
	clock.Advance(2 * time.Minute)
	if got := cache.Entries(ctx); len(got) != 2 {
		t.Fatalf("after TTL: %d entries, want 2", len(got))
	}
}

func TestCacheMaxEntries(t *testing.T) {
	var entries []Entry
	for i := 0; i < 50; i++ {
		entries = append(entries, Entry{ID: "e"})
	}
	loader := &fakeLoader{entries: entries}
	cache := NewCache(loader, time.Minute, 10, nil)

	if got := cache.Entries(context.Background()); len(got) != 10 {
		t.Fatalf("cap: %d entries, want 10", len(got))
	}
}

func TestCacheLoadFailureServesOldSnapshot(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)}
	loader := &fakeLoader{entries: []Entry{{ID: "e1"}}}
	cache := NewCache(loader, time.Minute, 10, clock.Now)
	ctx := context.Background()

	cache.Entries(ctx)
	clock.Advance(2 * time.Minute)
	loader.mu.Lock()
	loader.err = errors.New("db down")
	loader.mu.Unlock()

	if got := cache.Entries(ctx); len(got) != 1 {
		t.Fatalf("failed reload should serve previous snapshot, got %d entries", len(got))
	}
}

func TestCacheSingleFlight(t *testing.T) {
	loader := &fakeLoader{entries: []Entry{{ID: "e1"}}, delay: 50 * time.Millisecond}
	cache := NewCache(loader, time.Minute, 10, nil)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got := cache.Entries(ctx); len(got) != 1 {
				t.Errorf("concurrent load: %d entries, want 1", len(got))
			}
		}()
	}
	wg.Wait()

	if n := atomic.LoadInt32(&loader.calls); n != 1 {
		t.Fatalf("loader called %d times for concurrent cold start, want 1", n)
	}
}

func TestCacheInvalidate(t *testing.T) {
	loader := &fakeLoader{entries: []Entry{{ID: "e1"}}}
	cache := NewCache(loader, time.Hour, 10, nil)
	ctx := context.Background()

	cache.Entries(ctx)
	loader.set([]Entry{{ID: "e1"}, {ID: "e2"}})
	cache.Invalidate()

	if got := cache.Entries(ctx); len(got) != 2 {
		t.Fatalf("after Invalidate: %d entries, want 2", len(got))
	}
}
