package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/Onlynfk/podground-backend-sub001/internal/domain"
)

// MemorySearchCache is the default in-process backend. Entries are stored
// as marshaled JSON so every Get returns an isolated copy. Expired
// entries are dropped lazily on read and eagerly by Sweep; the map is
// otherwise unbounded, sized by the TTL and the sweep loop.
type MemorySearchCache struct {
	mu      sync.Mutex
	entries map[string]memoryEntry

	now func() time.Time
}

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// NewMemorySearchCache creates an empty in-process cache.
func NewMemorySearchCache() *MemorySearchCache {
	return &MemorySearchCache{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

var _ SearchCache = (*MemorySearchCache)(nil)

func (c *MemorySearchCache) Get(ctx context.Context, key string) (*domain.SearchResponse, error) {
	c.mu.Lock()
	e, ok := c.entries[key]
	if ok && !c.now().Before(e.expiresAt) {
		delete(c.entries, key)
		ok = false
	}
	c.mu.Unlock()

	if !ok {
		return nil, ErrCacheMiss
	}

	var result domain.SearchResponse
	if err := json.Unmarshal(e.data, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cache data: %w", err)
	}

	return &result, nil
}

func (c *MemorySearchCache) Set(ctx context.Context, key string, result *domain.SearchResponse, ttl time.Duration) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal cache data: %w", err)
	}

	c.mu.Lock()
	c.entries[key] = memoryEntry{
		data:      data,
		expiresAt: c.now().Add(ttl),
	}
	c.mu.Unlock()

	return nil
}

func (c *MemorySearchCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
	return nil
}

func (c *MemorySearchCache) Sweep(ctx context.Context) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for key, e := range c.entries {
		if !now.Before(e.expiresAt) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed, nil
}

func (c *MemorySearchCache) Close() error {
	return nil
}

// Len reports the number of stored entries, expired or not.
func (c *MemorySearchCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
