package repository

import (
	"context"
	"errors"
)

// ErrSettingsNotFound is returned when a user has no privacy settings row.
// Callers treat the absence of settings as the platform defaults.
var ErrSettingsNotFound = errors.New("privacy settings not found")

// SearchRepository runs the per-category store queries. Ranked variants
// call the platform's stored search procedures; the ByTitle variants are
// the plain substring fallbacks used when a procedure is unavailable.
type SearchRepository interface {
	SearchPodcastsRanked(ctx context.Context, query string, limit, offset int) ([]PodcastRow, error)
	SearchPodcastsByTitle(ctx context.Context, query string, limit, offset int) ([]PodcastRow, error)
	SearchEpisodesRanked(ctx context.Context, query string, limit, offset int) ([]EpisodeRow, error)
	SearchEpisodesByTitle(ctx context.Context, query string, limit, offset int) ([]EpisodeRow, error)
	SearchPosts(ctx context.Context, query string, limit, offset int) ([]PostRow, error)
	FirstImagePerPost(ctx context.Context, postIDs []string) (map[string]string, error)
	SearchComments(ctx context.Context, query string, limit, offset int) ([]CommentRow, error)
	// ConversationIDs lists conversations the user currently belongs to.
	ConversationIDs(ctx context.Context, userID string, limit int) ([]string, error)
	RecentMessages(ctx context.Context, conversationIDs []string, fetchLimit int) ([]MessageRow, error)
	RecentEvents(ctx context.Context, fetchLimit int) ([]EventRow, error)
	RecentResources(ctx context.Context, fetchLimit int) ([]ResourceRow, error)
	// SearchUserProfiles matches first or last name, excluding the requester.
	SearchUserProfiles(ctx context.Context, query, excludeUserID string, fetchLimit, offset int) ([]UserProfileRow, error)
	ActivePartnerDeals(ctx context.Context, fetchLimit int) ([]PartnerRow, error)
	TopExperts(ctx context.Context, fetchLimit int) ([]ExpertRow, error)
}

// DirectoryRepository reads the identity tables behind profile
// resolution and the people-search predicates.
type DirectoryRepository interface {
	ProfilesByIDs(ctx context.Context, userIDs []string) ([]UserProfileRow, error)
	SignupsByIDs(ctx context.Context, userIDs []string) ([]SignupRow, error)
	VerifiedClaimsByUserIDs(ctx context.Context, userIDs []string) ([]ClaimRow, error)
	PodcastsByListenNotesIDs(ctx context.Context, listenNotesIDs []string) ([]PodcastRefRow, error)
	// CompletedOnboardingIDs filters the given ids down to users who
	// finished onboarding including its final step.
	CompletedOnboardingIDs(ctx context.Context, userIDs []string) ([]string, error)
	SearchVisibility(ctx context.Context, userID string) (bool, error)
}
