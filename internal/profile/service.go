package profile

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Onlynfk/podground-backend-sub001/internal/domain"
	"github.com/Onlynfk/podground-backend-sub001/internal/repository"
	"github.com/Onlynfk/podground-backend-sub001/pkg/log"
	"github.com/Onlynfk/podground-backend-sub001/pkg/storage"
)

// Service resolves member profiles, serving from the profile cache first
// and the identity tables on misses. Bucket-hosted avatars are presigned
// at resolution time.
type Service struct {
	repo      repository.DirectoryRepository
	store     storage.Storage
	cache     *Cache
	publicURL string
	signTTL   time.Duration
}

func NewService(repo repository.DirectoryRepository, store storage.Storage, cache *Cache, publicURL string, signTTL time.Duration) *Service {
	if signTTL <= 0 {
		signTTL = time.Hour
	}
	return &Service{
		repo:      repo,
		store:     store,
		cache:     cache,
		publicURL: strings.TrimSuffix(publicURL, "/"),
		signTTL:   signTTL,
	}
}

// GetUsersByIDs resolves profiles for the given user ids. Users with
// neither a profile nor a signup record are absent from the result. A
// verified podcast claim attaches the claimed show's id and title.
func (s *Service) GetUsersByIDs(ctx context.Context, userIDs []string) (map[string]domain.Profile, error) {
	unique := dedupe(userIDs)
	if len(unique) == 0 {
		return map[string]domain.Profile{}, nil
	}

	resolved, missing := s.cache.GetBatch(unique)
	if len(missing) == 0 {
		return resolved, nil
	}

	profiles, err := s.repo.ProfilesByIDs(ctx, missing)
	if err != nil {
		return nil, fmt.Errorf("load profiles: %w", err)
	}
	signups, err := s.repo.SignupsByIDs(ctx, missing)
	if err != nil {
		return nil, fmt.Errorf("load signups: %w", err)
	}
	claims, err := s.repo.VerifiedClaimsByUserIDs(ctx, missing)
	if err != nil {
		return nil, fmt.Errorf("load podcast claims: %w", err)
	}

	profileByID := make(map[string]repository.UserProfileRow, len(profiles))
	for _, p := range profiles {
		profileByID[p.UserID] = p
	}
	signupByID := make(map[string]repository.SignupRow, len(signups))
	for _, su := range signups {
		signupByID[su.UserID] = su
	}

	claimByUser := make(map[string]string, len(claims))
	listenNotesIDs := make([]string, 0, len(claims))
	for _, cl := range claims {
		if cl.ListenNotesID == "" {
			continue
		}
		claimByUser[cl.UserID] = cl.ListenNotesID
		listenNotesIDs = append(listenNotesIDs, cl.ListenNotesID)
	}
	podcastByLN := make(map[string]repository.PodcastRefRow, len(listenNotesIDs))
	if len(listenNotesIDs) > 0 {
		podcasts, err := s.repo.PodcastsByListenNotesIDs(ctx, listenNotesIDs)
		if err != nil {
			return nil, fmt.Errorf("load claimed podcasts: %w", err)
		}
		for _, p := range podcasts {
			podcastByLN[p.ListenNotesID] = p
		}
	}

	fresh := make(map[string]domain.Profile, len(missing))
	for _, id := range missing {
		row, hasProfile := profileByID[id]
		signup, hasSignup := signupByID[id]
		if !hasProfile && !hasSignup {
			continue
		}
		p := domain.Profile{
			ID:        id,
			Name:      displayName(row, signup),
			Email:     signup.Email,
			Bio:       row.Bio,
			Location:  row.Location,
			AvatarURL: s.signAvatar(ctx, row.AvatarURL),
		}
		if lnID, ok := claimByUser[id]; ok {
			if pod, ok := podcastByLN[lnID]; ok {
				p.PodcastID = pod.ID
				p.PodcastName = pod.Title
			}
		}
		fresh[id] = p
	}

	s.cache.SetBatch(fresh)
	for id, p := range fresh {
		resolved[id] = p
	}
	return resolved, nil
}

// FilterPlatformReady keeps only users who completed onboarding, including
// its final step, and hold a verified podcast claim. Input order is
// preserved.
func (s *Service) FilterPlatformReady(ctx context.Context, userIDs []string) ([]string, error) {
	if len(userIDs) == 0 {
		return []string{}, nil
	}
	onboarded, err := s.repo.CompletedOnboardingIDs(ctx, userIDs)
	if err != nil {
		return nil, fmt.Errorf("load onboarding: %w", err)
	}
	claims, err := s.repo.VerifiedClaimsByUserIDs(ctx, userIDs)
	if err != nil {
		return nil, fmt.Errorf("load podcast claims: %w", err)
	}

	onboardedSet := make(map[string]struct{}, len(onboarded))
	for _, id := range onboarded {
		onboardedSet[id] = struct{}{}
	}
	claimedSet := make(map[string]struct{}, len(claims))
	for _, cl := range claims {
		claimedSet[cl.UserID] = struct{}{}
	}

	ready := make([]string, 0, len(userIDs))
	for _, id := range userIDs {
		if _, ok := onboardedSet[id]; !ok {
			continue
		}
		if _, ok := claimedSet[id]; !ok {
			continue
		}
		ready = append(ready, id)
	}
	return ready, nil
}

// IsSearchable reports whether the user appears in people search. Missing
// settings and lookup failures default to visible.
func (s *Service) IsSearchable(ctx context.Context, userID string) bool {
	visible, err := s.repo.SearchVisibility(ctx, userID)
	if err != nil {
		if !errors.Is(err, repository.ErrSettingsNotFound) {
			l := log.Ctx(ctx)
			l.Warn().Err(err).Str(log.FieldUserID, userID).
				Msg("privacy lookup failed, defaulting to visible")
		}
		return true
	}
	return visible
}

// InvalidateUser drops the user's cached profile so the next resolution
// reloads it.
func (s *Service) InvalidateUser(userID string) {
	s.cache.Invalidate(userID)
}

// signAvatar presigns bucket-hosted avatars and passes external URLs
// through. Signing failures fall back to the stored URL.
func (s *Service) signAvatar(ctx context.Context, avatarURL string) string {
	key, ok := storage.ObjectKey(s.publicURL, avatarURL)
	if !ok {
		return avatarURL
	}
	signed, err := s.store.GetURL(ctx, key, s.signTTL)
	if err != nil {
		l := log.Ctx(ctx)
		l.Warn().Err(err).Msg("avatar signing failed, using stored url")
		return avatarURL
	}
	return signed
}

func displayName(row repository.UserProfileRow, signup repository.SignupRow) string {
	first := strings.TrimSpace(row.FirstName)
	last := strings.TrimSpace(row.LastName)
	switch {
	case first != "" && last != "":
		return first + " " + last
	case first != "":
		return first
	case last != "":
		return last
	}
	return strings.TrimSpace(signup.Name)
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
