// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// Visibility controls who may see a post.
type Visibility string

const (
	// VisibilityPublic makes a post visible to everyone.
	VisibilityPublic Visibility = "public"
	// VisibilityFriends restricts a post to the author and accepted friends.
	VisibilityFriends Visibility = "friends"
	// VisibilityPrivate restricts a post to the author.
	VisibilityPrivate Visibility = "private"
)

// MaxImagesPerPost is the hard cap on images attached to a single post.
const MaxImagesPerPost = 9

// Post represents a journal entry. Author and ID are immutable after creation;
// only the author may delete it.
type Post struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	UserID       uint       `gorm:"not null;index" json:"user_id"`
	User         User       `gorm:"foreignKey:UserID" json:"user"`
	Content      string     `gorm:"type:text" json:"content"`
	ImageURLs    []string   `gorm:"serializer:json" json:"image_urls"`
	Visibility   Visibility `gorm:"type:varchar(20);default:'public';index" json:"visibility"`
	LocationName string     `json:"location_name"`
	ShowLocation bool       `json:"show_location"`
	// LikesCount is not persisted; computed at query time
	LikesCount int `gorm:"->" json:"likes_count"`
	// Liked indicates whether the current requesting user liked this post (computed)
	Liked     bool           `gorm:"->" json:"liked"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for GORM
func (Post) TableName() string {
	return "posts"
}

// VisibleTo reports whether the post may be shown to viewerID given whether
// the viewer is an accepted friend of the author.
func (p *Post) VisibleTo(viewerID uint, isFriend bool) bool {
	if p.UserID == viewerID {
		return true
	}
	switch p.Visibility {
	case VisibilityPublic:
		return true
	case VisibilityFriends:
		return isFriend
	default:
		return false
	}
}
