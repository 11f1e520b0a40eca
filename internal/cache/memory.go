package cache

import (
	"context"
	"sync"
	"time"

	"feedsng/internal/model"
)

// MemoryCache is an in-process FeedCache with TTL expiry.
type MemoryCache struct {
	mu       sync.RWMutex
	items    map[string]entry
	ttl      time.Duration
	stopCh   chan struct{}
	stopOnce sync.Once
}

type entry struct {
	feed      model.Feed
	expiresAt time.Time
}

// NewMemory creates a memory cache and starts its expiry sweeper.
func NewMemory(ttl time.Duration) *MemoryCache {
	c := &MemoryCache{
		items:  make(map[string]entry),
		ttl:    ttl,
		stopCh: make(chan struct{}),
	}
	go c.cleanup()
	return c
}

func (c *MemoryCache) Get(_ context.Context, id model.FeedID) (model.Feed, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.items[feedKey(id)]
	if !ok || time.Now().After(e.expiresAt) {
		return model.Feed{}, false
	}
	return e.feed, true
}

func (c *MemoryCache) Set(_ context.Context, feed model.Feed) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items[feedKey(feed.ID)] = entry{
		feed:      feed,
		expiresAt: time.Now().Add(c.ttl),
	}
}

func (c *MemoryCache) Delete(_ context.Context, id model.FeedID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, feedKey(id))
}

// Close stops the expiry sweeper. It is safe to call more than once.
func (c *MemoryCache) Close() error {
	c.stopOnce.Do(func() { close(c.stopCh) })
	return nil
}

func (c *MemoryCache) cleanup() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.removeExpired()
		case <-c.stopCh:
			return
		}
	}
}

func (c *MemoryCache) removeExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for key, e := range c.items {
		if now.After(e.expiresAt) {
			delete(c.items, key)
		}
	}
}

var _ FeedCache = (*MemoryCache)(nil)
