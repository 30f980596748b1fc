package service

import (
	"context"
	"time"

	"lifelog/internal/models"
	"lifelog/internal/repository"
)

// MaxMoodNoteLength caps the optional note attached to a mood record.
const MaxMoodNoteLength = 500

// MoodService handles mood business logic. Moods are append-only; recording a
// new mood supersedes the previous one for "today" without rewriting history.
type MoodService struct {
	moodRepo repository.MoodRepository
	now      func() time.Time
}

// NewMoodService creates a new mood service.
func NewMoodService(moodRepo repository.MoodRepository) *MoodService {
	return &MoodService{moodRepo: moodRepo, now: time.Now}
}

// RecordMood appends a mood record for the user.
func (s *MoodService) RecordMood(ctx context.Context, userID uint, moodType models.MoodType, note string) (*models.Mood, error) {
	if !models.ValidMoodType(moodType) {
		return nil, models.NewValidationError("Unknown mood type")
	}
	if len(note) > MaxMoodNoteLength {
		return nil, models.NewValidationError("Mood note is too long")
	}
	mood := &models.Mood{
		UserID:   userID,
		MoodType: moodType,
		Note:     note,
	}
	if err := s.moodRepo.Create(ctx, mood); err != nil {
		return nil, err
	}
	return mood, nil
}

// TodayMood returns the most recent mood recorded since the user's local
// midnight, or nil if none exists. tzOffsetMinutes is the user's offset east
// of UTC, as reported by the client.
func (s *MoodService) TodayMood(ctx context.Context, userID uint, tzOffsetMinutes int) (*models.Mood, error) {
	since := localMidnightUTC(s.now(), tzOffsetMinutes)
	return s.moodRepo.LatestSince(ctx, userID, since)
}

// MoodHistory returns the user's mood records, newest first.
func (s *MoodService) MoodHistory(ctx context.Context, userID uint, limit, offset int) ([]models.Mood, error) {
	if limit <= 0 || limit > 200 {
		limit = 30
	}
	return s.moodRepo.History(ctx, userID, limit, offset)
}

// localMidnightUTC converts now to the client's local day boundary and maps
// it back to UTC for querying.
func localMidnightUTC(now time.Time, tzOffsetMinutes int) time.Time {
	offset := time.Duration(tzOffsetMinutes) * time.Minute
	local := now.UTC().Add(offset)
	midnight := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
	return midnight.Add(-offset)
}
