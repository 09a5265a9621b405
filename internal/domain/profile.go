package domain

// Profile is the resolved public identity of a platform user, assembled
// from the profile row, the signup record, and any verified podcast
// claim. Name falls back through "first last", first, last, then the
// signup name.
type Profile struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Bio         string `json:"bio"`
	Location    string `json:"location"`
	AvatarURL   string `json:"avatar_url"`
	PodcastID   string `json:"podcast_id"`
	PodcastName string `json:"podcast_name"`
}
