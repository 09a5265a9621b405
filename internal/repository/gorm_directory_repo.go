package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Onlynfk/podground-backend-sub001/internal/domain"
)

// GormDirectoryRepository implements DirectoryRepository on the platform's
// relational store.
type GormDirectoryRepository struct {
	db *gorm.DB
}

var _ DirectoryRepository = (*GormDirectoryRepository)(nil)

func NewGormDirectoryRepository(db *gorm.DB) *GormDirectoryRepository {
	return &GormDirectoryRepository{db: db}
}

func (r *GormDirectoryRepository) ProfilesByIDs(ctx context.Context, userIDs []string) ([]UserProfileRow, error) {
	if len(userIDs) == 0 {
		return []UserProfileRow{}, nil
	}
	var models []domain.UserProfileModel
	result := r.db.WithContext(ctx).
		Where("user_id IN ?", userIDs).
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

func (r *GormDirectoryRepository) SignupsByIDs(ctx context.Context, userIDs []string) ([]SignupRow, error) {
	if len(userIDs) == 0 {
		return []SignupRow{}, nil
	}
	var models []domain.UserSignupModel
	result := r.db.WithContext(ctx).
		Where("user_id IN ?", userIDs).
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}
	rows := make([]SignupRow, 0, len(models))
	for _, m := range models {
		rows = append(rows, SignupRow{
			UserID: m.UserID,
			Name:   m.Name,
			Email:  m.Email,
		})
	}
	return rows, nil
}

// VerifiedClaimsByUserIDs returns only claims that completed verification.
func (r *GormDirectoryRepository) VerifiedClaimsByUserIDs(ctx context.Context, userIDs []string) ([]ClaimRow, error) {
	if len(userIDs) == 0 {
		return []ClaimRow{}, nil
	}
	var models []domain.PodcastClaimModel
	result := r.db.WithContext(ctx).
		Where("user_id IN ? AND claim_status = ? AND is_verified = ?", userIDs, "verified", true).
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}
	rows := make([]ClaimRow, 0, len(models))
	for _, m := range models {
		rows = append(rows, ClaimRow{
			UserID:        m.UserID,
			ListenNotesID: m.ListenNotesID,
		})
	}
	return rows, nil
}

func (r *GormDirectoryRepository) PodcastsByListenNotesIDs(ctx context.Context, listenNotesIDs []string) ([]PodcastRefRow, error) {
	if len(listenNotesIDs) == 0 {
		return []PodcastRefRow{}, nil
	}
	var models []domain.PodcastModel
	result := r.db.WithContext(ctx).
		Where("listennotes_id IN ?", listenNotesIDs).
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}
	rows := make([]PodcastRefRow, 0, len(models))
	for _, m := range models {
		rows = append(rows, PodcastRefRow{
			ID:            m.ID,
			ListenNotesID: m.ListenNotesID,
			Title:         m.Title,
		})
	}
	return rows, nil
}

func (r *GormDirectoryRepository) CompletedOnboardingIDs(ctx context.Context, userIDs []string) ([]string, error) {
	if len(userIDs) == 0 {
		return []string{}, nil
	}
	var ids []string
	result := r.db.WithContext(ctx).
		Model(&domain.UserOnboardingModel{}).
		Where("id IN ? AND is_completed = ? AND step_5_completed = ?", userIDs, true, true).
		Pluck("id", &ids)
	if result.Error != nil {
		return nil, result.Error
	}
	return ids, nil
}

// SearchVisibility reports whether the user allows appearing in search.
// Users without a settings row get ErrSettingsNotFound; callers apply the
// platform default.
func (r *GormDirectoryRepository) SearchVisibility(ctx context.Context, userID string) (bool, error) {
	var settings domain.UserPrivacySettingsModel
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&settings)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return false, ErrSettingsNotFound
		}
		return false, result.Error
	}
	return settings.SearchVisibility, nil
}
