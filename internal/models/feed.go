// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// FeedComment is a comment joined with its author's profile for display.
type FeedComment struct {
	Comment
	Author User `json:"author"`
}

// FeedItem is a post enriched with author, comments, and like metadata for
// display. It is rebuilt on every feed load and never persisted.
type FeedItem struct {
	Post      Post          `json:"post"`
	Author    User          `json:"author"`
	Comments  []FeedComment `json:"comments"`
	LikeCount int           `json:"like_count"`
	Liked     bool          `json:"liked"`
}

// FeedSnapshot is the last successfully loaded feed for a user, cached so a
// revisit can paint instantly while a silent refresh runs.
type FeedSnapshot struct {
	UserID   uint       `json:"user_id"`
	Items    []FeedItem `json:"items"`
	LoadedAt time.Time  `json:"loaded_at"`
}
