package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Onlynfk/podground-backend-sub001/internal/domain"
)

func sampleResponse(query string) *domain.SearchResponse {
	results := domain.NewCategoryResults()
	results.Podcasts = append(results.Podcasts, domain.PodcastResult{
		ID:             "pod-1",
		ListenNotesID:  "ln-1",
		Title:          "Tech Talk",
		Description:    "a weekly technology show",
		Source:         domain.SourceDatabase,
		Type:           domain.TypePodcast,
		RelevanceScore: 1.0,
	})
	return &domain.SearchResponse{
		Query:        query,
		Offset:       0,
		Limit:        10,
		TotalResults: results.Total(),
		Results:      results,
	}
}

func TestKey(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		assert.Equal(t, Key("u1", "tech talk", 0, 10), Key("u1", "tech talk", 0, 10))
	})

	t.Run("query normalized before hashing", func(t *testing.T) {
		assert.Equal(t, Key("u1", "tech talk", 0, 10), Key("u1", "  Tech Talk  ", 0, 10))
	})

	t.Run("distinct per user", func(t *testing.T) {
		assert.NotEqual(t, Key("u1", "tech talk", 0, 10), Key("u2", "tech talk", 0, 10))
	})

	t.Run("distinct per window", func(t *testing.T) {
		base := Key("u1", "tech talk", 0, 10)
		assert.NotEqual(t, base, Key("u1", "tech talk", 10, 10))
		assert.NotEqual(t, base, Key("u1", "tech talk", 0, 20))
	})

	t.Run("md5 hex format", func(t *testing.T) {
		assert.Len(t, Key("u1", "tech talk", 0, 10), 32)
	})
}

func TestMemorySearchCache_RoundTrip(t *testing.T) {
	ctx := context.Background()
	c := NewMemorySearchCache()
	key := Key("u1", "tech talk", 0, 10)

	require.NoError(t, c.Set(ctx, key, sampleResponse("tech talk"), time.Minute))

	got, err := c.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "tech talk", got.Query)
	require.Len(t, got.Results.Podcasts, 1)
	assert.Equal(t, "pod-1", got.Results.Podcasts[0].ID)
}

func TestMemorySearchCache_ReturnsIsolatedCopies(t *testing.T) {
	ctx := context.Background()
	c := NewMemorySearchCache()
	key := Key("u1", "tech talk", 0, 10)

	require.NoError(t, c.Set(ctx, key, sampleResponse("tech talk"), time.Minute))

	first, err := c.Get(ctx, key)
	require.NoError(t, err)
	first.Results.Podcasts[0].ImageURL = "mutated"

	second, err := c.Get(ctx, key)
	require.NoError(t, err)
	assert.Empty(t, second.Results.Podcasts[0].ImageURL)
}

func TestMemorySearchCache_Miss(t *testing.T) {
	c := NewMemorySearchCache()

	_, err := c.Get(context.Background(), Key("u1", "nothing", 0, 10))
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestMemorySearchCache_ExpiredEntryIsMissAndRemoved(t *testing.T) {
	ctx := context.Background()
	c := NewMemorySearchCache()
	key := Key("u1", "tech talk", 0, 10)

	base := time.Now()
	c.now = func() time.Time { return base }
	require.NoError(t, c.Set(ctx, key, sampleResponse("tech talk"), time.Minute))

	c.now = func() time.Time { return base.Add(2 * time.Minute) }
	_, err := c.Get(ctx, key)
	assert.ErrorIs(t, err, ErrCacheMiss)
	assert.Equal(t, 0, c.Len())
}

func TestMemorySearchCache_Sweep(t *testing.T) {
	ctx := context.Background()
	c := NewMemorySearchCache()

	base := time.Now()
	c.now = func() time.Time { return base }
	require.NoError(t, c.Set(ctx, Key("u1", "short", 0, 10), sampleResponse("short"), time.Minute))
	require.NoError(t, c.Set(ctx, Key("u1", "long", 0, 10), sampleResponse("long"), time.Hour))

	c.now = func() time.Time { return base.Add(5 * time.Minute) }
	removed, err := c.Sweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	assert.Equal(t, 1, c.Len())

	got, err := c.Get(ctx, Key("u1", "long", 0, 10))
	require.NoError(t, err)
	assert.Equal(t, "long", got.Query)
}

func TestMemorySearchCache_Delete(t *testing.T) {
	ctx := context.Background()
	c := NewMemorySearchCache()
	key := Key("u1", "tech talk", 0, 10)

	require.NoError(t, c.Set(ctx, key, sampleResponse("tech talk"), time.Minute))
	require.NoError(t, c.Delete(ctx, key))

	_, err := c.Get(ctx, key)
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestMemorySearchCache_PerUserEntries(t *testing.T) {
	ctx := context.Background()
	c := NewMemorySearchCache()

	alice := sampleResponse("tech talk")
	alice.Results.Messages = append(alice.Results.Messages, domain.MessageResult{
		ID: "m1", Content: "tech talk tonight?", Type: domain.TypeMessage,
	})
	require.NoError(t, c.Set(ctx, Key("alice", "tech talk", 0, 10), alice, time.Minute))
	require.NoError(t, c.Set(ctx, Key("bob", "tech talk", 0, 10), sampleResponse("tech talk"), time.Minute))

	got, err := c.Get(ctx, Key("bob", "tech talk", 0, 10))
	require.NoError(t, err)
	assert.Empty(t, got.Results.Messages)

	got, err = c.Get(ctx, Key("alice", "tech talk", 0, 10))
	require.NoError(t, err)
	assert.Len(t, got.Results.Messages, 1)
}
