// Package cache provides a process-wide expiring cache for remote API
// responses. Entries are evicted lazily: a Get past the expiry time counts as
// a miss and removes the entry.
package cache

import (
	"sync"
	"time"
)

// TTL classes per resource kind. Thumbnails and single-file fetches are never
// cached; they back on-demand verification where staleness is unacceptable.
const (
	UserTTL     = 10 * time.Minute
	ProjectsTTL = 3 * time.Minute
	FilesTTL    = 2 * time.Minute
)

// Entry is one cached value with its expiry window.
type Entry struct {
	Data      any
	StoredAt  time.Time
	ExpiresAt time.Time
}

// Cache is a string-keyed expiring cache, safe for concurrent use. Keys are
// composed of operation name plus identifier, e.g. "projects_<teamID>"; they
// are not scoped by access token.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

// New creates an empty cache.
func New() *Cache {
	return &Cache{entries: make(map[string]Entry)}
}

// Get returns the value under key, or false when absent or expired. An
// expired entry is evicted as a side effect.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}

	if time.Now().After(entry.ExpiresAt) {
		c.mu.Lock()
		// Re-check under the write lock; a concurrent Set may have replaced it.
		if current, still := c.entries[key]; still && time.Now().After(current.ExpiresAt) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return nil, false
	}

	return entry.Data, true
}

// Set stores value under key for the given ttl.
func (c *Cache) Set(key string, value any, ttl time.Duration) {
	now := time.Now()
	c.mu.Lock()
	c.entries[key] = Entry{
		Data:      value,
		StoredAt:  now,
		ExpiresAt: now.Add(ttl),
	}
	c.mu.Unlock()
}

// Delete removes key if present.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// Clear removes all entries.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]Entry)
	c.mu.Unlock()
}

// ClearExpired sweeps out expired entries and returns how many were removed.
func (c *Cache) ClearExpired() int {
	now := time.Now()
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for key, entry := range c.entries {
		if now.After(entry.ExpiresAt) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

// Len returns the number of stored entries, expired or not.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Lookup returns the value under key asserted to T. A value of the wrong type
// counts as a miss.
func Lookup[T any](c *Cache, key string) (T, bool) {
	var zero T
	raw, ok := c.Get(key)
	if !ok {
		return zero, false
	}
	value, ok := raw.(T)
	if !ok {
		return zero, false
	}
	return value, true
}
