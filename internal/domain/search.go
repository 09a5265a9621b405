package domain

import "time"

// Category sources for podcast and episode results.
const (
	SourceDatabase    = "database"
	SourceListenNotes = "listennotes"
)

// Per-item type tags.
const (
	TypePodcast  = "podcast"
	TypeEpisode  = "episode"
	TypePost     = "post"
	TypeComment  = "comment"
	TypeMessage  = "message"
	TypeEvent    = "event"
	TypeResource = "resource"
	TypeUser     = "user"
	TypePartner  = "partner"
	TypeExpert   = "expert"
)

// SearchRequest is the query surface of the search endpoint. Query may be
// empty; an empty query yields the canonical empty response rather than an
// error. UserID comes from the verified token, never from the client.
type SearchRequest struct {
	Query  string `form:"q"`
	Limit  int    `form:"limit"`
	Offset int    `form:"offset"`
	UserID string `form:"-"`
}

// SearchResponse is the complete result of one search call. Offset and
// Limit echo the clamped values actually applied.
type SearchResponse struct {
	Query        string          `json:"query"`
	Offset       int             `json:"offset"`
	Limit        int             `json:"limit"`
	TotalResults int             `json:"total_results"`
	Results      CategoryResults `json:"results"`
	Cached       bool            `json:"cached"`
}

// CategoryResults holds every result category. All ten lists are always
// present in the serialized response, empty rather than null.
type CategoryResults struct {
	Podcasts  []PodcastResult  `json:"podcasts"`
	Episodes  []EpisodeResult  `json:"episodes"`
	Posts     []PostResult     `json:"posts"`
	Comments  []CommentResult  `json:"comments"`
	Messages  []MessageResult  `json:"messages"`
	Events    []EventResult    `json:"events"`
	Resources []ResourceResult `json:"resources"`
	Users     []UserResult     `json:"users"`
	Partners  []PartnerResult  `json:"partners"`
	Experts   []ExpertResult   `json:"experts"`
}

// NewCategoryResults returns a CategoryResults with every list non-nil.
func NewCategoryResults() CategoryResults {
	return CategoryResults{
		Podcasts:  []PodcastResult{},
		Episodes:  []EpisodeResult{},
		Posts:     []PostResult{},
		Comments:  []CommentResult{},
		Messages:  []MessageResult{},
		Events:    []EventResult{},
		Resources: []ResourceResult{},
		Users:     []UserResult{},
		Partners:  []PartnerResult{},
		Experts:   []ExpertResult{},
	}
}

// Total counts every item across all categories.
func (r *CategoryResults) Total() int {
	return len(r.Podcasts) + len(r.Episodes) + len(r.Posts) + len(r.Comments) +
		len(r.Messages) + len(r.Events) + len(r.Resources) + len(r.Users) +
		len(r.Partners) + len(r.Experts)
}

// UserRef is an embedded reference to a platform user (author, sender,
// creator). AvatarURL is refreshed on every serve.
type UserRef struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
}

// PodcastResult is scored strictly against the title and may come from the
// local store or the podcast directory.
type PodcastResult struct {
	ID             string  `json:"id"`
	ListenNotesID  string  `json:"listennotes_id"`
	Title          string  `json:"title"`
	Description    string  `json:"description"`
	ImageURL       string  `json:"image_url"`
	Publisher      string  `json:"publisher"`
	Source         string  `json:"source"`
	Type           string  `json:"type"`
	RelevanceScore float64 `json:"relevance_score"`
}

// EpisodeResult carries its parent podcast's identity alongside the
// episode itself. AudioURL and PubDateMS are only known for directory
// results.
type EpisodeResult struct {
	ID                   string  `json:"id"`
	ListenNotesID        string  `json:"listennotes_id"`
	Title                string  `json:"title"`
	Description          string  `json:"description"`
	ImageURL             string  `json:"image_url"`
	PodcastID            string  `json:"podcast_id"`
	PodcastTitle         string  `json:"podcast_title"`
	PodcastListenNotesID string  `json:"podcast_listennotes_id"`
	AudioURL             string  `json:"audio_url,omitempty"`
	PubDateMS            int64   `json:"pub_date,omitempty"`
	Source               string  `json:"source"`
	Type                 string  `json:"type"`
	RelevanceScore       float64 `json:"relevance_score"`
}

type PostResult struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	PostType  string    `json:"post_type"`
	Author    UserRef   `json:"author"`
	ImageURL  string    `json:"image_url"`
	CreatedAt time.Time `json:"created_at"`
	Type      string    `json:"type"`
}

type CommentResult struct {
	ID          string    `json:"id"`
	Content     string    `json:"content"`
	PostID      string    `json:"post_id"`
	PostPreview string    `json:"post_preview"`
	Author      UserRef   `json:"author"`
	CreatedAt   time.Time `json:"created_at"`
	Type        string    `json:"type"`
}

type MessageResult struct {
	ID             string    `json:"id"`
	Content        string    `json:"content"`
	ConversationID string    `json:"conversation_id"`
	Sender         UserRef   `json:"sender"`
	CreatedAt      time.Time `json:"created_at"`
	Type           string    `json:"type"`
}

type EventResult struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	EventDate   time.Time `json:"event_date"`
	Location    string    `json:"location"`
	Creator     UserRef   `json:"creator"`
	CreatedAt   time.Time `json:"created_at"`
	Type        string    `json:"type"`
}

type ResourceResult struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	ResourceType string    `json:"resource_type"`
	URL          string    `json:"url"`
	ImageURL     string    `json:"image_url"`
	Author       string    `json:"author"`
	ReadTime     string    `json:"read_time"`
	CreatedAt    time.Time `json:"created_at"`
	Type         string    `json:"type"`
}

// UserResult is a platform member surfaced by people search. Only members
// that are platform-ready and searchable appear.
type UserResult struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Bio         string `json:"bio"`
	AvatarURL   string `json:"avatar_url"`
	PodcastName string `json:"podcast_name"`
	Type        string `json:"type"`
}

type PartnerResult struct {
	ID          string    `json:"id"`
	PartnerName string    `json:"partner_name"`
	DealTitle   string    `json:"deal_title"`
	Description string    `json:"description"`
	DealURL     string    `json:"deal_url"`
	Category    string    `json:"category"`
	LogoURL     string    `json:"logo_url"`
	CreatedAt   time.Time `json:"created_at"`
	Type        string    `json:"type"`
}

type ExpertResult struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Title          string    `json:"title"`
	Specialization string    `json:"specialization"`
	Bio            string    `json:"bio"`
	AvatarURL      string    `json:"avatar_url"`
	IsAvailable    bool      `json:"is_available"`
	HourlyRate     float64   `json:"hourly_rate"`
	Rating         float64   `json:"rating"`
	CreatedAt      time.Time `json:"created_at"`
	Type           string    `json:"type"`
}
