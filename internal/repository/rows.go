package repository

import "time"

// Row types are flat scan targets for the search queries. They carry the
// store's column values untouched; shaping into API results happens in the
// service layer.

type PodcastRow struct {
	ID            string `gorm:"column:id"`
	ListenNotesID string `gorm:"column:listennotes_id"`
	Title         string `gorm:"column:title"`
	Description   string `gorm:"column:description"`
	ImageURL      string `gorm:"column:image_url"`
	Publisher     string `gorm:"column:publisher"`
}

type EpisodeRow struct {
	ID                   string `gorm:"column:id"`
	ListenNotesID        string `gorm:"column:listennotes_id"`
	Title                string `gorm:"column:title"`
	Description          string `gorm:"column:description"`
	ImageURL             string `gorm:"column:image_url"`
	PodcastID            string `gorm:"column:podcast_id"`
	PodcastTitle         string `gorm:"column:podcast_title"`
	PodcastImageURL      string `gorm:"column:podcast_image_url"`
	PodcastListenNotesID string `gorm:"column:podcast_listennotes_id"`
}

type PostRow struct {
	ID        string    `gorm:"column:id"`
	Content   string    `gorm:"column:content"`
	PostType  string    `gorm:"column:post_type"`
	UserID    string    `gorm:"column:user_id"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

type CommentRow struct {
	ID          string    `gorm:"column:id"`
	Content     string    `gorm:"column:content"`
	PostID      string    `gorm:"column:post_id"`
	PostContent string    `gorm:"column:post_content"`
	UserID      string    `gorm:"column:user_id"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

type MessageRow struct {
	ID             string    `gorm:"column:id"`
	ConversationID string    `gorm:"column:conversation_id"`
	SenderID       string    `gorm:"column:sender_id"`
	Content        string    `gorm:"column:content"`
	CreatedAt      time.Time `gorm:"column:created_at"`
}

type EventRow struct {
	ID          string    `gorm:"column:id"`
	Title       string    `gorm:"column:title"`
	Description string    `gorm:"column:description"`
	EventDate   time.Time `gorm:"column:event_date"`
	Location    string    `gorm:"column:location"`
	HostUserID  string    `gorm:"column:host_user_id"`
	HostName    string    `gorm:"column:host_name"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

type ResourceRow struct {
	ID          string    `gorm:"column:id"`
	Title       string    `gorm:"column:title"`
	Description string    `gorm:"column:description"`
	Type        string    `gorm:"column:type"`
	URL         string    `gorm:"column:url"`
	ImageURL    string    `gorm:"column:image_url"`
	Author      string    `gorm:"column:author"`
	ReadTime    string    `gorm:"column:read_time"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

type UserProfileRow struct {
	UserID    string `gorm:"column:user_id"`
	FirstName string `gorm:"column:first_name"`
	LastName  string `gorm:"column:last_name"`
	Bio       string `gorm:"column:bio"`
	Location  string `gorm:"column:location"`
	AvatarURL string `gorm:"column:avatar_url"`
}

type PartnerRow struct {
	ID          string    `gorm:"column:id"`
	PartnerName string    `gorm:"column:partner_name"`
	DealTitle   string    `gorm:"column:deal_title"`
	Description string    `gorm:"column:description"`
	DealURL     string    `gorm:"column:deal_url"`
	ImageURL    string    `gorm:"column:image_url"`
	Category    string    `gorm:"column:category"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

type ExpertRow struct {
	ID             string    `gorm:"column:id"`
	Name           string    `gorm:"column:name"`
	Title          string    `gorm:"column:title"`
	Specialization string    `gorm:"column:specialization"`
	Bio            string    `gorm:"column:bio"`
	AvatarURL      string    `gorm:"column:avatar_url"`
	IsAvailable    bool      `gorm:"column:is_available"`
	HourlyRate     float64   `gorm:"column:hourly_rate"`
	Rating         float64   `gorm:"column:rating"`
	CreatedAt      time.Time `gorm:"column:created_at"`
}

type SignupRow struct {
	UserID string `gorm:"column:user_id"`
	Name   string `gorm:"column:name"`
	Email  string `gorm:"column:email"`
}

type ClaimRow struct {
	UserID        string `gorm:"column:user_id"`
	ListenNotesID string `gorm:"column:listennotes_id"`
}

type PodcastRefRow struct {
	ID            string `gorm:"column:id"`
	ListenNotesID string `gorm:"column:listennotes_id"`
	Title         string `gorm:"column:title"`
}
