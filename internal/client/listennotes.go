// Package client holds the outbound API clients of the search service.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Onlynfk/podground-backend-sub001/internal/config"
	"github.com/Onlynfk/podground-backend-sub001/internal/domain"
)

const defaultBaseURL = "https://listen-api.listennotes.com/api/v2"

// ErrDirectoryUnavailable is returned when the podcast directory answers
// with a non-success status.
var ErrDirectoryUnavailable = errors.New("podcast directory unavailable")

// podcastPublishedAfter narrows directory podcast search to shows
// published since 2021, matching the platform's catalog policy. Episode
// search is not narrowed.
var podcastPublishedAfter = time.Date(2021, time.January, 1, 0, 0, 0, 0, time.UTC).UnixMilli()

// ListenNotesClient searches the ListenNotes podcast directory. The zero
// API key disables it; callers check Enabled before searching.
type ListenNotesClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

func NewListenNotesClient(cfg config.ListenNotesConfig) *ListenNotesClient {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &ListenNotesClient{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		apiKey:     cfg.APIKey,
	}
}

// Enabled reports whether directory search is configured.
func (c *ListenNotesClient) Enabled() bool {
	return c.apiKey != ""
}

type lnPodcast struct {
	ID                  string `json:"id"`
	Title               string `json:"title"`
	TitleOriginal       string `json:"title_original"`
	Description         string `json:"description"`
	DescriptionOriginal string `json:"description_original"`
	Image               string `json:"image"`
	Publisher           string `json:"publisher"`
	PublisherOriginal   string `json:"publisher_original"`
}

type lnPodcastRef struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	TitleOriginal string `json:"title_original"`
	Image         string `json:"image"`
}

type lnEpisode struct {
	ID                  string       `json:"id"`
	Title               string       `json:"title"`
	TitleOriginal       string       `json:"title_original"`
	Description         string       `json:"description"`
	DescriptionOriginal string       `json:"description_original"`
	Image               string       `json:"image"`
	Audio               string       `json:"audio"`
	PubDateMS           int64        `json:"pub_date_ms"`
	Podcast             lnPodcastRef `json:"podcast"`
}

type lnPodcastSearchResponse struct {
	Results []lnPodcast `json:"results"`
}

type lnEpisodeSearchResponse struct {
	Results []lnEpisode `json:"results"`
}

// SearchPodcasts queries the directory for podcasts. Results carry no
// relevance score; scoring happens in the service layer.
func (c *ListenNotesClient) SearchPodcasts(ctx context.Context, query string, limit, offset int) ([]domain.PodcastResult, error) {
	params := c.searchParams(query, "podcast", limit, offset)
	params.Set("published_after", strconv.FormatInt(podcastPublishedAfter, 10))

	var payload lnPodcastSearchResponse
	if err := c.get(ctx, params, &payload); err != nil {
		return nil, err
	}
	results := make([]domain.PodcastResult, 0, len(payload.Results))
	for _, p := range payload.Results {
		results = append(results, domain.PodcastResult{
			ID:            p.ID,
			ListenNotesID: p.ID,
			Title:         unescape(p.TitleOriginal, p.Title),
			Description:   domain.Truncate(unescape(p.DescriptionOriginal, p.Description), domain.TextPreviewLen),
			ImageURL:      p.Image,
			Publisher:     unescape(p.PublisherOriginal, p.Publisher),
			Source:        domain.SourceListenNotes,
			Type:          domain.TypePodcast,
		})
	}
	return results, nil
}

// SearchEpisodes queries the directory for episodes. Directory episodes
// keep an empty local podcast id; the parent is identified by its
// directory id only.
func (c *ListenNotesClient) SearchEpisodes(ctx context.Context, query string, limit, offset int) ([]domain.EpisodeResult, error) {
	params := c.searchParams(query, "episode", limit, offset)

	var payload lnEpisodeSearchResponse
	if err := c.get(ctx, params, &payload); err != nil {
		return nil, err
	}
	results := make([]domain.EpisodeResult, 0, len(payload.Results))
	for _, e := range payload.Results {
		results = append(results, domain.EpisodeResult{
			ID:                   e.ID,
			ListenNotesID:        e.ID,
			Title:                unescape(e.TitleOriginal, e.Title),
			Description:          domain.Truncate(unescape(e.DescriptionOriginal, e.Description), domain.TextPreviewLen),
			ImageURL:             e.Image,
			PodcastTitle:         unescape(e.Podcast.TitleOriginal, e.Podcast.Title),
			PodcastListenNotesID: e.Podcast.ID,
			AudioURL:             e.Audio,
			PubDateMS:            e.PubDateMS,
			Source:               domain.SourceListenNotes,
			Type:                 domain.TypeEpisode,
		})
	}
	return results, nil
}

func (c *ListenNotesClient) searchParams(query, searchType string, limit, offset int) url.Values {
	params := url.Values{}
	params.Set("q", query)
	params.Set("sort_by_date", "0")
	params.Set("type", searchType)
	params.Set("offset", strconv.Itoa(offset))
	params.Set("len_min", strconv.Itoa(limit))
	return params
}

func (c *ListenNotesClient) get(ctx context.Context, params url.Values, out any) error {
	endpoint := c.baseURL + "/search?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build directory request: %w", err)
	}
	req.Header.Set("X-ListenAPI-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("call directory: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrDirectoryUnavailable, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode directory response: %w", err)
	}
	return nil
}

// unescape resolves HTML entities, preferring the directory's unhighlighted
// original field when present.
func unescape(original, fallback string) string {
	s := original
	if s == "" {
		s = fallback
	}
	return html.UnescapeString(s)
}
