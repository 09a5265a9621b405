package domain

import (
	"time"

	"gorm.io/gorm"

	"github.com/Onlynfk/podground-backend-sub001/pkg/database"
)

// Read models for the platform tables search queries. This service owns
// none of these tables; the models exist for query building and for
// bootstrapping dev databases via AutoMigrate.

// PodcastModel is the GORM model for the podcasts table.
type PodcastModel struct {
	ID            string               `gorm:"type:varchar(36);primaryKey"`
	ListenNotesID string               `gorm:"column:listennotes_id;type:varchar(64);index"`
	Title         string               `gorm:"type:varchar(500);not null"`
	Description   string               `gorm:"type:text"`
	ImageURL      string               `gorm:"type:text"`
	Publisher     string               `gorm:"type:varchar(255)"`
	Categories    database.StringArray `gorm:"type:text"`
	CreatedAt     time.Time            `gorm:"autoCreateTime"`
	UpdatedAt     time.Time            `gorm:"autoUpdateTime"`
}

func (PodcastModel) TableName() string {
	return "podcasts"
}

// EpisodeModel is the GORM model for the episodes table.
type EpisodeModel struct {
	ID            string    `gorm:"type:varchar(36);primaryKey"`
	ListenNotesID string    `gorm:"column:listennotes_id;type:varchar(64);index"`
	Title         string    `gorm:"type:varchar(500);not null"`
	Description   string    `gorm:"type:text"`
	ImageURL      string    `gorm:"type:text"`
	PodcastID     string    `gorm:"type:varchar(36);index"`
	AudioURL      string    `gorm:"type:text"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
}

func (EpisodeModel) TableName() string {
	return "episodes"
}

// PostModel is the GORM model for the posts table. Deleted posts are
// excluded from every query through the soft-delete column.
type PostModel struct {
	ID        string         `gorm:"type:varchar(36);primaryKey"`
	Content   string         `gorm:"type:text"`
	PostType  string         `gorm:"type:varchar(50)"`
	UserID    string         `gorm:"type:varchar(36);index"`
	CreatedAt time.Time      `gorm:"autoCreateTime;index"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (PostModel) TableName() string {
	return "posts"
}

// PostMediaModel is the GORM model for the post_media table.
type PostMediaModel struct {
	ID       string `gorm:"type:varchar(36);primaryKey"`
	PostID   string `gorm:"type:varchar(36);index"`
	URL      string `gorm:"type:text"`
	Type     string `gorm:"type:varchar(20);index"`
	Position int    `gorm:"default:0"`
}

func (PostMediaModel) TableName() string {
	return "post_media"
}

// PostCommentModel is the GORM model for the post_comments table.
type PostCommentModel struct {
	ID        string         `gorm:"type:varchar(36);primaryKey"`
	Content   string         `gorm:"type:text"`
	PostID    string         `gorm:"type:varchar(36);index"`
	UserID    string         `gorm:"type:varchar(36);index"`
	CreatedAt time.Time      `gorm:"autoCreateTime;index"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (PostCommentModel) TableName() string {
	return "post_comments"
}

// ConversationParticipantModel is the GORM model for the
// conversation_participants table. LeftAt null means active membership.
type ConversationParticipantModel struct {
	ID             string     `gorm:"type:varchar(36);primaryKey"`
	ConversationID string     `gorm:"type:varchar(36);index"`
	UserID         string     `gorm:"type:varchar(36);index"`
	LeftAt         *time.Time `gorm:"index"`
}

func (ConversationParticipantModel) TableName() string {
	return "conversation_participants"
}

// MessageModel is the GORM model for the messages table.
type MessageModel struct {
	ID             string    `gorm:"type:varchar(36);primaryKey"`
	Content        string    `gorm:"type:text"`
	ConversationID string    `gorm:"type:varchar(36);index"`
	SenderID       string    `gorm:"type:varchar(36);index"`
	IsDeleted      bool      `gorm:"default:false"`
	CreatedAt      time.Time `gorm:"autoCreateTime;index"`
}

func (MessageModel) TableName() string {
	return "messages"
}

// EventModel is the GORM model for the events table. HostUserID is nil
// for platform-hosted events.
type EventModel struct {
	ID          string    `gorm:"type:varchar(36);primaryKey"`
	Title       string    `gorm:"type:varchar(500);not null"`
	Description string    `gorm:"type:text"`
	EventDate   time.Time `gorm:"index"`
	Location    string    `gorm:"type:varchar(255)"`
	HostUserID  *string   `gorm:"type:varchar(36)"`
	HostName    string    `gorm:"type:varchar(255)"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

func (EventModel) TableName() string {
	return "events"
}

// ResourceModel is the GORM model for the resources table.
type ResourceModel struct {
	ID          string    `gorm:"type:varchar(36);primaryKey"`
	Title       string    `gorm:"type:varchar(500);not null"`
	Description string    `gorm:"type:text"`
	Type        string    `gorm:"type:varchar(50)"`
	URL         string    `gorm:"type:text"`
	ImageURL    string    `gorm:"type:text"`
	Author      string    `gorm:"type:varchar(255)"`
	ReadTime    string    `gorm:"type:varchar(50)"`
	CreatedAt   time.Time `gorm:"autoCreateTime;index"`
}

func (ResourceModel) TableName() string {
	return "resources"
}

// UserProfileModel is the GORM model for the user_profiles table.
type UserProfileModel struct {
	UserID    string    `gorm:"type:varchar(36);primaryKey"`
	FirstName string    `gorm:"type:varchar(100)"`
	LastName  string    `gorm:"type:varchar(100)"`
	Bio       string    `gorm:"type:text"`
	Location  string    `gorm:"type:varchar(255)"`
	AvatarURL string    `gorm:"type:text"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (UserProfileModel) TableName() string {
	return "user_profiles"
}

// UserSignupModel is the GORM model for the user_signup_tracking table.
type UserSignupModel struct {
	UserID string `gorm:"type:varchar(36);primaryKey"`
	Email  string `gorm:"type:varchar(255)"`
	Name   string `gorm:"type:varchar(255)"`
}

func (UserSignupModel) TableName() string {
	return "user_signup_tracking"
}

// PodcastClaimModel is the GORM model for the podcast_claims table.
type PodcastClaimModel struct {
	ID            string `gorm:"type:varchar(36);primaryKey"`
	UserID        string `gorm:"type:varchar(36);index"`
	ListenNotesID string `gorm:"column:listennotes_id;type:varchar(64);index"`
	ClaimStatus   string `gorm:"type:varchar(20);index"`
	IsVerified    bool   `gorm:"default:false"`
}

func (PodcastClaimModel) TableName() string {
	return "podcast_claims"
}

// UserOnboardingModel is the GORM model for the user_onboarding table.
// Its primary key is the user id.
type UserOnboardingModel struct {
	ID             string `gorm:"type:varchar(36);primaryKey"`
	IsCompleted    bool   `gorm:"default:false"`
	Step5Completed bool   `gorm:"column:step_5_completed;default:false"`
}

func (UserOnboardingModel) TableName() string {
	return "user_onboarding"
}

// UserPrivacySettingsModel is the GORM model for the
// user_privacy_settings table. Users without a row are searchable.
type UserPrivacySettingsModel struct {
	UserID           string `gorm:"type:varchar(36);primaryKey"`
	SearchVisibility bool   `gorm:"default:true"`
}

func (UserPrivacySettingsModel) TableName() string {
	return "user_privacy_settings"
}

// PartnerDealModel is the GORM model for the partner_deals table.
type PartnerDealModel struct {
	ID          string    `gorm:"type:varchar(36);primaryKey"`
	PartnerName string    `gorm:"type:varchar(255)"`
	DealTitle   string    `gorm:"type:varchar(500)"`
	Description string    `gorm:"type:text"`
	DealURL     string    `gorm:"type:text"`
	ImageURL    string    `gorm:"type:text"`
	Category    string    `gorm:"type:varchar(100)"`
	IsActive    bool      `gorm:"default:true;index"`
	CreatedAt   time.Time `gorm:"autoCreateTime;index"`
}

func (PartnerDealModel) TableName() string {
	return "partner_deals"
}

// ExpertModel is the GORM model for the experts table.
type ExpertModel struct {
	ID             string    `gorm:"type:varchar(36);primaryKey"`
	Name           string    `gorm:"type:varchar(255)"`
	Title          string    `gorm:"type:varchar(255)"`
	Specialization string    `gorm:"type:varchar(255)"`
	Bio            string    `gorm:"type:text"`
	AvatarURL      string    `gorm:"type:text"`
	IsAvailable    bool      `gorm:"default:true"`
	HourlyRate     float64   `gorm:"default:0"`
	Rating         float64   `gorm:"default:0;index"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
}

func (ExpertModel) TableName() string {
	return "experts"
}
