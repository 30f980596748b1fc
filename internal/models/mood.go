// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// MoodType is one of the fixed mood choices a user can record.
type MoodType string

const (
	MoodHappy   MoodType = "happy"
	MoodSmile   MoodType = "smile"
	MoodNeutral MoodType = "neutral"
	MoodSad     MoodType = "sad"
	MoodAngry   MoodType = "angry"
)

// ValidMoodType reports whether t is one of the known mood types.
func ValidMoodType(t MoodType) bool {
	switch t {
	case MoodHappy, MoodSmile, MoodNeutral, MoodSad, MoodAngry:
		return true
	}
	return false
}

// Mood records how a user felt at a point in time. "Today's mood" is the most
// recent record created at or after the user's local midnight; this is a
// client convention, not a database constraint.
type Mood struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	MoodType  MoodType  `gorm:"type:varchar(20);not null" json:"mood_type"`
	Note      string    `json:"note"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM
func (Mood) TableName() string {
	return "moods"
}
