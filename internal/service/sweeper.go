package service

import (
	"context"
	"time"

	"github.com/Onlynfk/podground-backend-sub001/internal/cache"
	"github.com/Onlynfk/podground-backend-sub001/internal/profile"
	"github.com/Onlynfk/podground-backend-sub001/pkg/log"
	"github.com/Onlynfk/podground-backend-sub001/pkg/storage"
)

const defaultSweepInterval = 10 * time.Minute

// CacheSweeper periodically evicts expired entries from the result,
// profile, and signed-URL caches. Lazy expiry already keeps reads
// correct; the sweeper just stops dead entries from piling up.
type CacheSweeper struct {
	results  cache.SearchCache
	profiles *profile.Cache
	urls     *storage.SignedURLCache
	interval time.Duration
	doneCh   chan struct{}
}

func NewCacheSweeper(results cache.SearchCache, profiles *profile.Cache, urls *storage.SignedURLCache, interval time.Duration) *CacheSweeper {
	if interval <= 0 {
		interval = defaultSweepInterval
	}
	return &CacheSweeper{
		results:  results,
		profiles: profiles,
		urls:     urls,
		interval: interval,
		doneCh:   make(chan struct{}),
	}
}

// Start launches the sweep loop. It stops when ctx is cancelled.
func (s *CacheSweeper) Start(ctx context.Context) {
	go s.loop(ctx)
}

func (s *CacheSweeper) loop(ctx context.Context) {
	defer close(s.doneCh)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	l := log.L()
	l.Info().Dur("interval", s.interval).Msg("cache sweeper started")

	for {
		select {
		case <-ctx.Done():
			l.Info().Msg("cache sweeper shutting down")
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *CacheSweeper) sweep(ctx context.Context) {
	l := log.L()

	removed, err := s.results.Sweep(ctx)
	if err != nil {
		l.Warn().Err(err).Msg("result cache sweep failed")
	}

	var profilesRemoved, urlsRemoved int
	if s.profiles != nil {
		profilesRemoved = s.profiles.Sweep()
	}
	if s.urls != nil {
		urlsRemoved = s.urls.Sweep()
	}

	if removed+profilesRemoved+urlsRemoved > 0 {
		l.Info().
			Int("results_removed", removed).
			Int("profiles_removed", profilesRemoved).
			Int("urls_removed", urlsRemoved).
			Msg("cache sweep completed")
	}
}

// Wait blocks until the loop has exited.
func (s *CacheSweeper) Wait() {
	<-s.doneCh
}
