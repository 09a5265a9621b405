package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Onlynfk/podground-backend-sub001/internal/domain"
)

// GormSearchRepository implements SearchRepository on the platform's
// relational store.
type GormSearchRepository struct {
	db *gorm.DB
}

var _ SearchRepository = (*GormSearchRepository)(nil)

func NewGormSearchRepository(db *gorm.DB) *GormSearchRepository {
	return &GormSearchRepository{db: db}
}

func likePattern(query string) string {
	return "%" + query + "%"
}

// SearchPodcastsRanked calls the store's ranking procedure for podcasts.
func (r *GormSearchRepository) SearchPodcastsRanked(ctx context.Context, query string, limit, offset int) ([]PodcastRow, error) {
	var rows []PodcastRow
	result := r.db.WithContext(ctx).
		Raw("SELECT * FROM search_podcasts_ranked(?, ?, ?)", query, limit, offset).
		Scan(&rows)
	if result.Error != nil {
		return nil, result.Error
	}
	return rows, nil
}

// SearchPodcastsByTitle is the plain substring fallback used when the
// ranking procedure is unavailable.
func (r *GormSearchRepository) SearchPodcastsByTitle(ctx context.Context, query string, limit, offset int) ([]PodcastRow, error) {
	var models []domain.PodcastModel
	result := r.db.WithContext(ctx).
		Where("title ILIKE ?", likePattern(query)).
		Offset(offset).
		Limit(limit).
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}
	rows := make([]PodcastRow, 0, len(models))
	for _, m := range models {
		rows = append(rows, PodcastRow{
			ID:            m.ID,
			ListenNotesID: m.ListenNotesID,
			Title:         m.Title,
			Description:   m.Description,
			ImageURL:      m.ImageURL,
			Publisher:     m.Publisher,
		})
	}
	return rows, nil
}

// SearchEpisodesRanked calls the store's ranking procedure for episodes.
// The procedure joins each episode to its podcast.
func (r *GormSearchRepository) SearchEpisodesRanked(ctx context.Context, query string, limit, offset int) ([]EpisodeRow, error) {
	var rows []EpisodeRow
	result := r.db.WithContext(ctx).
		Raw("SELECT * FROM search_episodes_ranked(?, ?, ?)", query, limit, offset).
		Scan(&rows)
	if result.Error != nil {
		return nil, result.Error
	}
	return rows, nil
}

func (r *GormSearchRepository) SearchEpisodesByTitle(ctx context.Context, query string, limit, offset int) ([]EpisodeRow, error) {
	var rows []EpisodeRow
	result := r.db.WithContext(ctx).
		Model(&domain.EpisodeModel{}).
		Select("episodes.id, episodes.listennotes_id, episodes.title, episodes.description, episodes.image_url, episodes.podcast_id, " +
			"podcasts.title AS podcast_title, podcasts.image_url AS podcast_image_url, podcasts.listennotes_id AS podcast_listennotes_id").
		Joins("LEFT JOIN podcasts ON podcasts.id = episodes.podcast_id").
		Where("episodes.title ILIKE ?", likePattern(query)).
		Offset(offset).
		Limit(limit).
		Scan(&rows)
	if result.Error != nil {
		return nil, result.Error
	}
	return rows, nil
}

func (r *GormSearchRepository) SearchPosts(ctx context.Context, query string, limit, offset int) ([]PostRow, error) {
	var models []domain.PostModel
	result := r.db.WithContext(ctx).
		Where("content ILIKE ?", likePattern(query)).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}
	rows := make([]PostRow, 0, len(models))
	for _, m := range models {
		rows = append(rows, PostRow{
			ID:        m.ID,
			Content:   m.Content,
			PostType:  m.PostType,
			UserID:    m.UserID,
			CreatedAt: m.CreatedAt,
		})
	}
	return rows, nil
}

// FirstImagePerPost returns the first image attachment for each of the
// given posts. Posts without an image are absent from the map.
func (r *GormSearchRepository) FirstImagePerPost(ctx context.Context, postIDs []string) (map[string]string, error) {
	images := make(map[string]string, len(postIDs))
	if len(postIDs) == 0 {
		return images, nil
	}
	var media []domain.PostMediaModel
	result := r.db.WithContext(ctx).
		Where("post_id IN ? AND type = ?", postIDs, "image").
		Order("post_id, position").
		Find(&media)
	if result.Error != nil {
		return nil, result.Error
	}
	for _, m := range media {
		if _, ok := images[m.PostID]; !ok {
			images[m.PostID] = m.URL
		}
	}
	return images, nil
}

func (r *GormSearchRepository) SearchComments(ctx context.Context, query string, limit, offset int) ([]CommentRow, error) {
	var rows []CommentRow
	result := r.db.WithContext(ctx).
		Model(&domain.PostCommentModel{}).
		Select("post_comments.id, post_comments.content, post_comments.post_id, post_comments.user_id, post_comments.created_at, posts.content AS post_content").
		Joins("LEFT JOIN posts ON posts.id = post_comments.post_id").
		Where("post_comments.content ILIKE ?", likePattern(query)).
		Order("post_comments.created_at DESC").
		Offset(offset).
		Limit(limit).
		Scan(&rows)
	if result.Error != nil {
		return nil, result.Error
	}
	return rows, nil
}

func (r *GormSearchRepository) ConversationIDs(ctx context.Context, userID string, limit int) ([]string, error) {
	var ids []string
	result := r.db.WithContext(ctx).
		Model(&domain.ConversationParticipantModel{}).
		Where("user_id = ? AND left_at IS NULL", userID).
		Limit(limit).
		Pluck("conversation_id", &ids)
	if result.Error != nil {
		return nil, result.Error
	}
	return ids, nil
}

func (r *GormSearchRepository) RecentMessages(ctx context.Context, conversationIDs []string, fetchLimit int) ([]MessageRow, error) {
	if len(conversationIDs) == 0 {
		return []MessageRow{}, nil
	}
	var models []domain.MessageModel
	result := r.db.WithContext(ctx).
		Where("conversation_id IN ? AND is_deleted = ?", conversationIDs, false).
		Order("created_at DESC").
		Limit(fetchLimit).
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}
	rows := make([]MessageRow, 0, len(models))
	for _, m := range models {
		rows = append(rows, MessageRow{
			ID:             m.ID,
			ConversationID: m.ConversationID,
			SenderID:       m.SenderID,
			Content:        m.Content,
			CreatedAt:      m.CreatedAt,
		})
	}
	return rows, nil
}

func (r *GormSearchRepository) RecentEvents(ctx context.Context, fetchLimit int) ([]EventRow, error) {
	var models []domain.EventModel
	result := r.db.WithContext(ctx).
		Order("event_date DESC").
		Limit(fetchLimit).
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}
	rows := make([]EventRow, 0, len(models))
	for _, m := range models {
		row := EventRow{
			ID:          m.ID,
			Title:       m.Title,
			Description: m.Description,
			EventDate:   m.EventDate,
			Location:    m.Location,
			HostName:    m.HostName,
			CreatedAt:   m.CreatedAt,
		}
		if m.HostUserID != nil {
			row.HostUserID = *m.HostUserID
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (r *GormSearchRepository) RecentResources(ctx context.Context, fetchLimit int) ([]ResourceRow, error) {
	var models []domain.ResourceModel
	result := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(fetchLimit).
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}
	rows := make([]ResourceRow, 0, len(models))
	for _, m := range models {
		rows = append(rows, ResourceRow{
			ID:          m.ID,
			Title:       m.Title,
			Description: m.Description,
			Type:        m.Type,
			URL:         m.URL,
			ImageURL:    m.ImageURL,
			Author:      m.Author,
			ReadTime:    m.ReadTime,
			CreatedAt:   m.CreatedAt,
		})
	}
	return rows, nil
}

func (r *GormSearchRepository) SearchUserProfiles(ctx context.Context, query, excludeUserID string, fetchLimit, offset int) ([]UserProfileRow, error) {
	pattern := likePattern(query)
	var models []domain.UserProfileModel
	result := r.db.WithContext(ctx).
		Where("user_id <> ?", excludeUserID).
		Where("first_name ILIKE ? OR last_name ILIKE ?", pattern, pattern).
		Offset(offset).
		Limit(fetchLimit).
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}
	rows := make([]UserProfileRow, 0, len(models))
	for _, m := range models {
		rows = append(rows, UserProfileRow{
			UserID:    m.UserID,
			FirstName: m.FirstName,
			LastName:  m.LastName,
			Bio:       m.Bio,
			Location:  m.Location,
			AvatarURL: m.AvatarURL,
		})
	}
	return rows, nil
}

func (r *GormSearchRepository) ActivePartnerDeals(ctx context.Context, fetchLimit int) ([]PartnerRow, error) {
	var models []domain.PartnerDealModel
	result := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at DESC").
		Limit(fetchLimit).
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}
	rows := make([]PartnerRow, 0, len(models))
	for _, m := range models {
		rows = append(rows, PartnerRow{
			ID:          m.ID,
			PartnerName: m.PartnerName,
			DealTitle:   m.DealTitle,
			Description: m.Description,
			DealURL:     m.DealURL,
			ImageURL:    m.ImageURL,
			Category:    m.Category,
			CreatedAt:   m.CreatedAt,
		})
	}
	return rows, nil
}

func (r *GormSearchRepository) TopExperts(ctx context.Context, fetchLimit int) ([]ExpertRow, error) {
	var models []domain.ExpertModel
	result := r.db.WithContext(ctx).
		Order("rating DESC").
		Limit(fetchLimit).
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}
	rows := make([]ExpertRow, 0, len(models))
	for _, m := range models {
		rows = append(rows, ExpertRow{
			ID:             m.ID,
			Name:           m.Name,
			Title:          m.Title,
			Specialization: m.Specialization,
			Bio:            m.Bio,
			AvatarURL:      m.AvatarURL,
			IsAvailable:    m.IsAvailable,
			HourlyRate:     m.HourlyRate,
			Rating:         m.Rating,
			CreatedAt:      m.CreatedAt,
		})
	}
	return rows, nil
}
