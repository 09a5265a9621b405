// Package profile resolves platform member identities for embedding into
// search results.
package profile

import (
	"sync"
	"time"

	"github.com/Onlynfk/podground-backend-sub001/internal/domain"
)

// Cache defaults.
const (
	DefaultCacheTTL     = time.Hour
	DefaultCacheEntries = 5000
)

type cacheEntry struct {
	profile   domain.Profile
	expiresAt time.Time
}

// Cache is an in-process TTL cache of resolved profiles keyed by user id.
// Once full it evicts in insertion order. Expired entries fall out on read
// or via Sweep.
type Cache struct {
	mu         sync.Mutex
	entries    map[string]cacheEntry
	order      []string
	ttl        time.Duration
	maxEntries int

	now func() time.Time
}

func NewCache(ttl time.Duration, maxEntries int) *Cache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if maxEntries <= 0 {
		maxEntries = DefaultCacheEntries
	}
	return &Cache{
		entries:    make(map[string]cacheEntry),
		order:      make([]string, 0, maxEntries),
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

// GetBatch returns the cached profiles among userIDs plus the ids that
// were absent or expired.
func (c *Cache) GetBatch(userIDs []string) (map[string]domain.Profile, []string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	found := make(map[string]domain.Profile, len(userIDs))
	missing := make([]string, 0, len(userIDs))
	now := c.now()
	for _, id := range userIDs {
		entry, ok := c.entries[id]
		if !ok {
			missing = append(missing, id)
			continue
		}
		if now.After(entry.expiresAt) {
			c.removeLocked(id)
			missing = append(missing, id)
			continue
		}
		found[id] = entry.profile
	}
	return found, missing
}

// SetBatch stores the given profiles, evicting oldest entries when full.
func (c *Cache) SetBatch(profiles map[string]domain.Profile) {
	c.mu.Lock()
	defer c.mu.Unlock()

	expiresAt := c.now().Add(c.ttl)
	for id, p := range profiles {
		if _, ok := c.entries[id]; !ok {
			for len(c.entries) >= c.maxEntries && len(c.order) > 0 {
				c.removeLocked(c.order[0])
			}
			c.order = append(c.order, id)
		}
		c.entries[id] = cacheEntry{profile: p, expiresAt: expiresAt}
	}
}

// Invalidate drops one user's cached profile.
func (c *Cache) Invalidate(userID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.removeLocked(userID)
}

// Sweep removes expired entries and reports how many were dropped.
func (c *Cache) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for id, entry := range c.entries {
		if now.After(entry.expiresAt) {
			c.removeLocked(id)
			removed++
		}
	}
	return removed
}

// Len reports the live entry count.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *Cache) removeLocked(userID string) {
	if _, ok := c.entries[userID]; !ok {
		return
	}
	delete(c.entries, userID)
	for i, id := range c.order {
		if id == userID {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}
