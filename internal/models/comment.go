// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// Comment is an append-only remark on a post. Comments are never edited or
// deleted.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;index" json:"post_id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID" json:"user"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM
func (Comment) TableName() string {
	return "comments"
}
