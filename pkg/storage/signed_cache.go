package storage

import (
	"context"
	"fmt"
	"sync"
	"time"
)

const (
	// DefaultSignedURLCacheTTL caps how long a memoized URL may be reused.
	DefaultSignedURLCacheTTL = time.Hour
	// DefaultSignedURLCacheEntries bounds the cache size.
	DefaultSignedURLCacheEntries = 10000
)

// SignedURLCache memoizes presigned URLs so hot objects are not re-signed
// on every request. An entry lives for the shorter of the URL's validity
// and the configured TTL. When full, the oldest entry is evicted first.
type SignedURLCache struct {
	inner Storage

	mu         sync.Mutex
	entries    map[string]signedURLEntry
	order      []string
	ttl        time.Duration
	maxEntries int
	hits       uint64
	misses     uint64

	now func() time.Time
}

type signedURLEntry struct {
	url       string
	expiresAt time.Time
}

// SignedURLCacheStats reports cache effectiveness counters.
type SignedURLCacheStats struct {
	Entries int
	Hits    uint64
	Misses  uint64
}

// NewSignedURLCache wraps inner with URL memoization.
func NewSignedURLCache(inner Storage, ttl time.Duration, maxEntries int) *SignedURLCache {
	if ttl <= 0 {
		ttl = DefaultSignedURLCacheTTL
	}
	if maxEntries <= 0 {
		maxEntries = DefaultSignedURLCacheEntries
	}
	return &SignedURLCache{
		inner:      inner,
		entries:    make(map[string]signedURLEntry),
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

var _ Storage = (*SignedURLCache)(nil)

// GetURL returns a memoized presigned URL, signing through the wrapped
// Storage on a miss.
func (c *SignedURLCache) GetURL(ctx context.Context, key string, expires time.Duration) (string, error) {
	ck := fmt.Sprintf("%s:%d", key, int64(expires.Seconds()))

	c.mu.Lock()
	if e, ok := c.entries[ck]; ok {
		if c.now().Before(e.expiresAt) {
			c.hits++
			c.mu.Unlock()
			return e.url, nil
		}
		c.removeLocked(ck)
	}
	c.misses++
	c.mu.Unlock()

	url, err := c.inner.GetURL(ctx, key, expires)
	if err != nil {
		return "", err
	}

	ttl := c.ttl
	if expires > 0 && expires < ttl {
		ttl = expires
	}

	c.mu.Lock()
	if _, ok := c.entries[ck]; !ok {
		for len(c.entries) >= c.maxEntries && len(c.order) > 0 {
			c.removeLocked(c.order[0])
		}
		c.entries[ck] = signedURLEntry{url: url, expiresAt: c.now().Add(ttl)}
		c.order = append(c.order, ck)
	}
	c.mu.Unlock()

	return url, nil
}

// Sweep drops all expired entries and returns how many were removed.
func (c *SignedURLCache) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	var expired []string
	for ck, e := range c.entries {
		if !now.Before(e.expiresAt) {
			expired = append(expired, ck)
		}
	}
	for _, ck := range expired {
		c.removeLocked(ck)
	}
	return len(expired)
}

// Stats returns current counters.
func (c *SignedURLCache) Stats() SignedURLCacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return SignedURLCacheStats{
		Entries: len(c.entries),
		Hits:    c.hits,
		Misses:  c.misses,
	}
}

func (c *SignedURLCache) removeLocked(ck string) {
	delete(c.entries, ck)
	for i, k := range c.order {
		if k == ck {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}
