package cache

import (
	"context"
	"errors"
	"time"

	"github.com/Onlynfk/podground-backend-sub001/internal/domain"
)

// ErrCacheMiss is returned when a key is absent or its entry has expired.
var ErrCacheMiss = errors.New("cache miss")

// SearchCache caches complete search responses. Keys are derived with Key
// so every backend shares the same addressing. Implementations must hand
// back isolated copies: mutating a returned response must never change
// what the next Get sees.
type SearchCache interface {
	Get(ctx context.Context, key string) (*domain.SearchResponse, error)
	Set(ctx context.Context, key string, result *domain.SearchResponse, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	// Sweep removes expired entries eagerly and reports how many were
	// dropped. Backends with native expiry may report zero.
	Sweep(ctx context.Context) (int, error)
	Close() error
}
