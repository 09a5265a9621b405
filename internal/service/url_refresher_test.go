package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Onlynfk/podground-backend-sub001/internal/domain"
)

const testPublicURL = "https://media.podground.io"

// fakeSigner counts presigns and can fail for selected keys.
type fakeSigner struct {
	mu      sync.Mutex
	calls   int
	failFor map[string]bool
}

func (f *fakeSigner) GetURL(_ context.Context, key string, _ time.Duration) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.failFor[key] {
		return "", errors.New("presign failed")
	}
	return fmt.Sprintf("https://signed.podground.io/%s?sig=%d", key, f.calls), nil
}

func refreshableResponse() *domain.SearchResponse {
	results := domain.NewCategoryResults()
	results.Podcasts = append(results.Podcasts,
		domain.PodcastResult{ID: "p1", Title: "Tech Talk", ImageURL: testPublicURL + "/covers/p1.jpg", RelevanceScore: 1.0},
		domain.PodcastResult{ID: "ln-2", Title: "Tech Talk Daily", ImageURL: "https://cdn.listennotes.com/art/ln-2.jpg", RelevanceScore: 0.8},
	)
	results.Posts = append(results.Posts, domain.PostResult{
		ID:       "post-1",
		Author:   domain.UserRef{ID: "u2", Name: "Grace", AvatarURL: "stale"},
		ImageURL: testPublicURL + "/posts/post-1.jpg",
	})
	results.Partners = append(results.Partners, domain.PartnerResult{
		ID:      "deal-1",
		LogoURL: testPublicURL + "/logos/deal-1.png",
	})
	results.Users = append(results.Users, domain.UserResult{ID: "u3", Name: "Ada", AvatarURL: "stale"})
	return &domain.SearchResponse{
		Query:        "tech talk",
		Limit:        10,
		TotalResults: results.Total(),
		Results:      results,
	}
}

func TestURLRefresherSignsPlatformURLsOnly(t *testing.T) {
	signer := &fakeSigner{}
	profiles := &fakeProfiles{profiles: map[string]domain.Profile{}}
	r := NewURLRefresher(signer, profiles, testPublicURL, time.Hour)

	resp := refreshableResponse()
	r.Refresh(context.Background(), resp)

	assert.Contains(t, resp.Results.Podcasts[0].ImageURL, "https://signed.podground.io/covers/p1.jpg")
	assert.Equal(t, "https://cdn.listennotes.com/art/ln-2.jpg", resp.Results.Podcasts[1].ImageURL,
		"external artwork passes through unsigned")
	assert.Contains(t, resp.Results.Posts[0].ImageURL, "https://signed.podground.io/posts/post-1.jpg")
	assert.Contains(t, resp.Results.Partners[0].LogoURL, "https://signed.podground.io/logos/deal-1.png")
	assert.Equal(t, 3, signer.calls)
}

func TestURLRefresherResolvesAvatars(t *testing.T) {
	signer := &fakeSigner{}
	profiles := &fakeProfiles{profiles: map[string]domain.Profile{
		"u2": {ID: "u2", Name: "Grace", AvatarURL: "https://signed.podground.io/avatars/u2.jpg?sig=9"},
		"u3": {ID: "u3", Name: "Ada", AvatarURL: "https://signed.podground.io/avatars/u3.jpg?sig=9"},
	}}
	r := NewURLRefresher(signer, profiles, testPublicURL, time.Hour)

	resp := refreshableResponse()
	r.Refresh(context.Background(), resp)

	assert.Equal(t, "https://signed.podground.io/avatars/u2.jpg?sig=9", resp.Results.Posts[0].Author.AvatarURL)
	assert.Equal(t, "Grace", resp.Results.Posts[0].Author.Name, "only the avatar is rewritten")
	assert.Equal(t, "https://signed.podground.io/avatars/u3.jpg?sig=9", resp.Results.Users[0].AvatarURL)
	assert.Equal(t, 1, profiles.batchCalls, "one batch lookup for all embedded members")
}

func TestURLRefresherKeepsValueOnSigningFailure(t *testing.T) {
	signer := &fakeSigner{failFor: map[string]bool{"covers/p1.jpg": true}}
	profiles := &fakeProfiles{profiles: map[string]domain.Profile{}}
	r := NewURLRefresher(signer, profiles, testPublicURL, time.Hour)

	resp := refreshableResponse()
	r.Refresh(context.Background(), resp)

	assert.Equal(t, testPublicURL+"/covers/p1.jpg", resp.Results.Podcasts[0].ImageURL,
		"a failed signing keeps the previous value")
	assert.Contains(t, resp.Results.Posts[0].ImageURL, "https://signed.podground.io/posts/post-1.jpg",
		"other items still refresh")
}

func TestURLRefresherSurvivesProfileLookupFailure(t *testing.T) {
	signer := &fakeSigner{}
	profiles := &fakeProfiles{batchErr: errors.New("store down")}
	r := NewURLRefresher(signer, profiles, testPublicURL, time.Hour)

	resp := refreshableResponse()
	r.Refresh(context.Background(), resp)

	assert.Equal(t, "stale", resp.Results.Posts[0].Author.AvatarURL, "stale avatar retained on failure")
}

func TestURLRefresherPreservesItemsAndOrder(t *testing.T) {
	signer := &fakeSigner{}
	profiles := &fakeProfiles{profiles: map[string]domain.Profile{}}
	r := NewURLRefresher(signer, profiles, testPublicURL, time.Hour)

	resp := refreshableResponse()
	before := resp.TotalResults
	r.Refresh(context.Background(), resp)

	require.Equal(t, before, resp.Results.Total())
	assert.Equal(t, "p1", resp.Results.Podcasts[0].ID)
	assert.Equal(t, "ln-2", resp.Results.Podcasts[1].ID)
	assert.InDelta(t, 1.0, resp.Results.Podcasts[0].RelevanceScore, 0.0001, "scores untouched")
}
