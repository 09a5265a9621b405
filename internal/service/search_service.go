// Package service implements the global search orchestrator: per-category
// searchers fanned out concurrently, a per-user response cache in front,
// and a URL refresh pass on every serve.
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Onlynfk/podground-backend-sub001/internal/cache"
	"github.com/Onlynfk/podground-backend-sub001/internal/config"
	"github.com/Onlynfk/podground-backend-sub001/internal/domain"
	"github.com/Onlynfk/podground-backend-sub001/internal/repository"
	"github.com/Onlynfk/podground-backend-sub001/pkg/log"
)

const (
	defaultLimitPerCategory = 10
	defaultMaxLimit         = 50
	defaultCacheTTL         = time.Hour
)

type searchServiceImpl struct {
	repo      repository.SearchRepository
	directory DirectoryClient
	profiles  ProfileDirectory
	cache     cache.SearchCache
	refresher ResponseRefresher
	cfg       config.SearchConfig
	cacheTTL  time.Duration
}

// NewSearchService creates the search orchestrator.
func NewSearchService(
	repo repository.SearchRepository,
	directory DirectoryClient,
	profiles ProfileDirectory,
	searchCache cache.SearchCache,
	refresher ResponseRefresher,
	cfg config.SearchConfig,
	cacheTTL time.Duration,
) SearchService {
	if cfg.LimitPerCategory <= 0 {
		cfg.LimitPerCategory = defaultLimitPerCategory
	}
	if cfg.MaxLimit <= 0 {
		cfg.MaxLimit = defaultMaxLimit
	}
	if cacheTTL <= 0 {
		cacheTTL = defaultCacheTTL
	}
	return &searchServiceImpl{
		repo:      repo,
		directory: directory,
		profiles:  profiles,
		cache:     searchCache,
		refresher: refresher,
		cfg:       cfg,
		cacheTTL:  cacheTTL,
	}
}

func (s *searchServiceImpl) SearchAll(ctx context.Context, req *domain.SearchRequest) (*domain.SearchResponse, error) {
	s.normalizeRequest(req)
	l := log.Ctx(ctx)

	if req.Query == "" {
		return s.emptyResult(req), nil
	}

	cacheKey := cache.Key(req.UserID, req.Query, req.Offset, req.Limit)

	cached, err := s.cache.Get(ctx, cacheKey)
	if err == nil {
		l.Debug().Str(log.FieldQuery, req.Query).Str(log.FieldCacheKey, cacheKey).Msg("search cache hit")
		s.refresher.Refresh(ctx, cached)
		cached.Cached = true
		return cached, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		// Treat a cache fault as a miss and serve from the backends.
		l.Warn().Err(err).Msg("cache get error")
	}

	l.Info().
		Str(log.FieldUserID, req.UserID).
		Str(log.FieldQuery, req.Query).
		Int("offset", req.Offset).
		Int("limit", req.Limit).
		Msg("performing global search")
	start := time.Now()

	results := domain.NewCategoryResults()

	// One task per category. Failures are logged and leave the category
	// empty; no task error ever reaches the group, so one slow or broken
	// backend never cancels the rest.
	g, gctx := errgroup.WithContext(ctx)
	runCategory := func(category string, search func(context.Context) error) {
		g.Go(func() error {
			if err := search(gctx); err != nil {
				l.Error().Err(err).Str(log.FieldCategory, category).Msg("category search failed")
			}
			return nil
		})
	}

	runCategory("podcasts", func(ctx context.Context) error {
		items, err := s.searchPodcasts(ctx, req.Query, req.Limit, req.Offset)
		if err != nil {
			return err
		}
		results.Podcasts = items
		return nil
	})
	runCategory("episodes", func(ctx context.Context) error {
		items, err := s.searchEpisodes(ctx, req.Query, req.Limit, req.Offset)
		if err != nil {
			return err
		}
		results.Episodes = items
		return nil
	})
	runCategory("posts", func(ctx context.Context) error {
		items, err := s.searchPosts(ctx, req.Query, req.Limit, req.Offset)
		if err != nil {
			return err
		}
		results.Posts = items
		return nil
	})
	runCategory("comments", func(ctx context.Context) error {
		items, err := s.searchComments(ctx, req.Query, req.Limit, req.Offset)
		if err != nil {
			return err
		}
		results.Comments = items
		return nil
	})
	runCategory("messages", func(ctx context.Context) error {
		items, err := s.searchMessages(ctx, req.Query, req.Limit, req.Offset, req.UserID)
		if err != nil {
			return err
		}
		results.Messages = items
		return nil
	})
	runCategory("events", func(ctx context.Context) error {
		items, err := s.searchEvents(ctx, req.Query, req.Limit, req.Offset)
		if err != nil {
			return err
		}
		results.Events = items
		return nil
	})
	runCategory("resources", func(ctx context.Context) error {
		items, err := s.searchResources(ctx, req.Query, req.Limit, req.Offset)
		if err != nil {
			return err
		}
		results.Resources = items
		return nil
	})
	runCategory("users", func(ctx context.Context) error {
		items, err := s.searchUsers(ctx, req.Query, req.Limit, req.Offset, req.UserID)
		if err != nil {
			return err
		}
		results.Users = items
		return nil
	})
	runCategory("partners", func(ctx context.Context) error {
		items, err := s.searchPartners(ctx, req.Query, req.Limit, req.Offset)
		if err != nil {
			return err
		}
		results.Partners = items
		return nil
	})
	runCategory("experts", func(ctx context.Context) error {
		items, err := s.searchExperts(ctx, req.Query, req.Limit, req.Offset)
		if err != nil {
			return err
		}
		results.Experts = items
		return nil
	})

	_ = g.Wait()

	l.Info().
		Float64("duration_s", time.Since(start).Seconds()).
		Int("total_results", results.Total()).
		Msg("global search completed")

	response := &domain.SearchResponse{
		Query:        req.Query,
		Offset:       req.Offset,
		Limit:        req.Limit,
		TotalResults: results.Total(),
		Results:      results,
		Cached:       false,
	}

	// Cache before the refresh pass so the stored copy keeps raw storage
	// URLs; every serve path signs them fresh.
	if err := s.cache.Set(ctx, cacheKey, response, s.cacheTTL); err != nil {
		l.Warn().Err(err).Str(log.FieldCacheKey, cacheKey).Msg("cache set error")
	}

	s.refresher.Refresh(ctx, response)

	return response, nil
}

func (s *searchServiceImpl) normalizeRequest(req *domain.SearchRequest) {
	req.Query = strings.TrimSpace(req.Query)
	if req.Limit <= 0 {
		req.Limit = s.cfg.LimitPerCategory
	}
	if req.Limit > s.cfg.MaxLimit {
		req.Limit = s.cfg.MaxLimit
	}
	if req.Offset < 0 {
		req.Offset = 0
	}
}

// emptyResult is the canonical response for blank queries: all ten
// categories present and empty, nothing queried.
func (s *searchServiceImpl) emptyResult(req *domain.SearchRequest) *domain.SearchResponse {
	return &domain.SearchResponse{
		Query:        "",
		Offset:       req.Offset,
		Limit:        req.Limit,
		TotalResults: 0,
		Results:      domain.NewCategoryResults(),
		Cached:       false,
	}
}
