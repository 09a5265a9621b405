package service

import (
	"context"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Onlynfk/podground-backend-sub001/internal/domain"
	"github.com/Onlynfk/podground-backend-sub001/pkg/log"
	"github.com/Onlynfk/podground-backend-sub001/pkg/storage"
)

// refreshWorkers bounds concurrent presign calls during a refresh pass.
const refreshWorkers = 10

// URLRefresher rewrites every bucket-hosted URL in a response to a fresh
// signed form and re-resolves embedded member avatars. Responses are
// cached with raw storage URLs, and signed URLs expire on their own
// schedule, so this pass runs on every serve, fresh or cached. It only
// ever replaces URL values: items, order and scores are left alone, and
// any single failure keeps the previous value.
type URLRefresher struct {
	store     storage.Storage
	profiles  ProfileDirectory
	publicURL string
	signTTL   time.Duration
}

var _ ResponseRefresher = (*URLRefresher)(nil)

func NewURLRefresher(store storage.Storage, profiles ProfileDirectory, publicURL string, signTTL time.Duration) *URLRefresher {
	if signTTL <= 0 {
		signTTL = time.Hour
	}
	return &URLRefresher{
		store:     store,
		profiles:  profiles,
		publicURL: strings.TrimSuffix(publicURL, "/"),
		signTTL:   signTTL,
	}
}

func (r *URLRefresher) Refresh(ctx context.Context, resp *domain.SearchResponse) {
	r.signImageURLs(ctx, resp)
	r.refreshAvatars(ctx, resp)
}

// signImageURLs re-signs every bucket-hosted image field in parallel.
// External URLs (directory artwork and the like) pass through untouched.
func (r *URLRefresher) signImageURLs(ctx context.Context, resp *domain.SearchResponse) {
	var targets []*string

	results := &resp.Results
	for i := range results.Podcasts {
		targets = append(targets, &results.Podcasts[i].ImageURL)
	}
	for i := range results.Episodes {
		targets = append(targets, &results.Episodes[i].ImageURL)
	}
	for i := range results.Posts {
		targets = append(targets, &results.Posts[i].ImageURL)
	}
	for i := range results.Resources {
		targets = append(targets, &results.Resources[i].ImageURL)
	}
	for i := range results.Partners {
		targets = append(targets, &results.Partners[i].LogoURL)
	}
	for i := range results.Experts {
		targets = append(targets, &results.Experts[i].AvatarURL)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(refreshWorkers)
	for _, target := range targets {
		target := target
		key, ok := storage.ObjectKey(r.publicURL, *target)
		if !ok {
			continue
		}
		g.Go(func() error {
			signed, err := r.store.GetURL(gctx, key, r.signTTL)
			if err != nil {
				// Keep the previous value; a stale link beats no link.
				l := log.Ctx(ctx)
				l.Warn().Err(err).Str("object_key", key).Msg("url refresh failed")
				return nil
			}
			*target = signed
			return nil
		})
	}
	_ = g.Wait()
}

// refreshAvatars re-resolves every embedded member reference through one
// batch profile lookup, replacing avatar URLs with their current signed
// form. Profile avatars can change between cache writes, so the cached
// value is never trusted.
func (r *URLRefresher) refreshAvatars(ctx context.Context, resp *domain.SearchResponse) {
	var refs []*domain.UserRef
	var ids []string

	results := &resp.Results
	for i := range results.Posts {
		if ref := &results.Posts[i].Author; ref.ID != "" {
			refs = append(refs, ref)
			ids = append(ids, ref.ID)
		}
	}
	for i := range results.Comments {
		if ref := &results.Comments[i].Author; ref.ID != "" {
			refs = append(refs, ref)
			ids = append(ids, ref.ID)
		}
	}
	for i := range results.Messages {
		if ref := &results.Messages[i].Sender; ref.ID != "" {
			refs = append(refs, ref)
			ids = append(ids, ref.ID)
		}
	}
	for i := range results.Events {
		if ref := &results.Events[i].Creator; ref.ID != "" {
			refs = append(refs, ref)
			ids = append(ids, ref.ID)
		}
	}
	for i := range results.Users {
		if results.Users[i].ID != "" {
			ids = append(ids, results.Users[i].ID)
		}
	}

	if len(ids) == 0 {
		return
	}

	profiles, err := r.profiles.GetUsersByIDs(ctx, ids)
	if err != nil {
		l := log.Ctx(ctx)
		l.Warn().Err(err).Msg("avatar refresh failed")
		return
	}

	for _, ref := range refs {
		if p, ok := profiles[ref.ID]; ok {
			ref.AvatarURL = p.AvatarURL
		}
	}
	for i := range results.Users {
		if p, ok := profiles[results.Users[i].ID]; ok {
			results.Users[i].AvatarURL = p.AvatarURL
		}
	}
}
