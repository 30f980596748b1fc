package repository

import (
	"context"
	"errors"
	"time"

	"lifelog/internal/models"

	"gorm.io/gorm"
)

// MoodRepository defines the interface for mood data operations.
type MoodRepository interface {
	Create(ctx context.Context, mood *models.Mood) error
	// LatestSince returns the most recent mood created at or after since,
	// or nil when none exists.
	LatestSince(ctx context.Context, userID uint, since time.Time) (*models.Mood, error)
	History(ctx context.Context, userID uint, limit, offset int) ([]models.Mood, error)
}

type moodRepository struct {
	db *gorm.DB
}

// NewMoodRepository creates a new mood repository
func NewMoodRepository(db *gorm.DB) MoodRepository {
	return &moodRepository{db: db}
}

func (r *moodRepository) Create(ctx context.Context, mood *models.Mood) error {
	if err := r.db.WithContext(ctx).Create(mood).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *moodRepository) LatestSince(ctx context.Context, userID uint, since time.Time) (*models.Mood, error) {
	var mood models.Mood
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND created_at >= ?", userID, since).
		Order("created_at DESC").
		First(&mood).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &mood, nil
}

func (r *moodRepository) History(ctx context.Context, userID uint, limit, offset int) ([]models.Mood, error) {
	var moods []models.Mood
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&moods).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return moods, nil
}
