// ============================================================================
// tabwerk - Robot Framework Testdaten-Werkzeug
// ============================================================================
//
// Package:     cache
// Description: Thread-safe in-memory cache with TTL support
// Author:      Mike Stoffels
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package cache

import (
	"sync"
	"time"
)

// entry is a cached item with expiration
type entry[V any] struct {
	value      V
	expiration time.Time
}

func (e *entry[V]) expired(now time.Time) bool {
	if e.expiration.IsZero() {
		return false // Never expires
	}
	return now.After(e.expiration)
}

// Cache is a thread-safe in-memory cache with TTL support
type Cache[V any] struct {
	mu       sync.RWMutex
	items    map[string]*entry[V]
	maxItems int
	ttl      time.Duration

	// Metrics
	hits   int64
	misses int64

	stop chan struct{}
	once sync.Once
}

// Config holds cache configuration
type Config struct {
	MaxItems int
	TTL      time.Duration // 0 keeps entries until evicted
	Cleanup  time.Duration // interval of the expiry sweep
}

// DefaultConfig returns default cache configuration
func DefaultConfig() Config {
	return Config{
		MaxItems: 10000,
		TTL:      30 * time.Minute,
		Cleanup:  time.Minute,
	}
}

// New creates a new cache instance. Close stops its cleanup goroutine.
func New[V any](cfg Config) *Cache[V] {
	if cfg.MaxItems <= 0 {
		cfg.MaxItems = 10000
	}
	if cfg.Cleanup <= 0 {
		cfg.Cleanup = time.Minute
	}

	c := &Cache[V]{
		items:    make(map[string]*entry[V]),
		maxItems: cfg.MaxItems,
		ttl:      cfg.TTL,
		stop:     make(chan struct{}),
	}
	go c.cleanupLoop(cfg.Cleanup)
	return c
}

// Get retrieves a value from the cache
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.items[key]
	if ok && e.expired(time.Now()) {
		delete(c.items, key)
		ok = false
	}
	if !ok {
		c.misses++
		var zero V
		return zero, false
	}
	c.hits++
	return e.value, true
}

// Set stores a value with the default TTL
func (c *Cache[V]) Set(key string, value V) {
	c.SetWithTTL(key, value, c.ttl)
}

// SetWithTTL stores a value with a custom TTL
func (c *Cache[V]) SetWithTTL(key string, value V, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.items[key]; !exists && len(c.items) >= c.maxItems {
		c.evictOldest()
	}

	var exp time.Time
	if ttl > 0 {
		exp = time.Now().Add(ttl)
	}
	c.items[key] = &entry[V]{value: value, expiration: exp}
}

// Delete removes a value from the cache
func (c *Cache[V]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
}

// Size returns the number of items in the cache
func (c *Cache[V]) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Stats returns cache statistics
func (c *Cache[V]) Stats() (hits, misses int64, hitRate float64) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	hits = c.hits
	misses = c.misses
	if total := hits + misses; total > 0 {
		hitRate = float64(hits) / float64(total) * 100
	}
	return
}

// Close stops the cleanup goroutine
func (c *Cache[V]) Close() {
	c.once.Do(func() { close(c.stop) })
}

// evictOldest removes the entry that expires first (lock held). Entries
// without expiration go before all others.
func (c *Cache[V]) evictOldest() {
	var oldestKey string
	var oldest time.Time
	for key, e := range c.items {
		if oldestKey == "" || e.expiration.Before(oldest) {
			oldestKey = key
			oldest = e.expiration
		}
	}
	if oldestKey != "" {
		delete(c.items, oldestKey)
	}
}

func (c *Cache[V]) cleanupLoop(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			c.cleanup()
		}
	}
}

// cleanup removes all expired entries
func (c *Cache[V]) cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for key, e := range c.items {
		if e.expired(now) {
			delete(c.items, key)
		}
	}
}
