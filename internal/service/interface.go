package service

import (
	"context"

	"github.com/Onlynfk/podground-backend-sub001/internal/domain"
)

// SearchService is the search surface of the service.
type SearchService interface {
	// SearchAll runs the query against every category. A failed category
	// yields an empty list; the call itself only fails when no response
	// can be built at all.
	SearchAll(ctx context.Context, req *domain.SearchRequest) (*domain.SearchResponse, error)
}

// DirectoryClient supplements podcast and episode search from the
// external podcast directory.
type DirectoryClient interface {
	Enabled() bool
	SearchPodcasts(ctx context.Context, query string, limit, offset int) ([]domain.PodcastResult, error)
	SearchEpisodes(ctx context.Context, query string, limit, offset int) ([]domain.EpisodeResult, error)
}

// ProfileDirectory resolves member identities and the people-search
// eligibility predicates.
type ProfileDirectory interface {
	GetUsersByIDs(ctx context.Context, userIDs []string) (map[string]domain.Profile, error)
	FilterPlatformReady(ctx context.Context, userIDs []string) ([]string, error)
	IsSearchable(ctx context.Context, userID string) bool
}

// ResponseRefresher rewrites the URLs embedded in a response to their
// current signed form. It runs on every serve path, fresh or cached.
type ResponseRefresher interface {
	Refresh(ctx context.Context, resp *domain.SearchResponse)
}
