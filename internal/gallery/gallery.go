// Package gallery derives a flat image gallery from feed items and drives the
// lightbox used to browse it. Everything here is pure state; no storage or
// transport.
package gallery

import (
	"fmt"
	"sort"
	"time"

	"lifelog/internal/models"
)

// Filter selects which images a gallery page shows.
type Filter string

const (
	// FilterAll shows every image, newest post first.
	FilterAll Filter = "all"
	// FilterRecent shows images from posts made in the last seven days.
	FilterRecent Filter = "recent"
	// FilterMostLiked orders images by their post's like count, ties broken
	// newest first.
	FilterMostLiked Filter = "most_liked"
)

// RecentWindow is the cutoff for FilterRecent.
const RecentWindow = 7 * 24 * time.Hour

// DefaultPageSize is the number of images per gallery page.
const DefaultPageSize = 12

// Image is one gallery cell. ID is stable across reloads so the lightbox can
// address an image independent of its current position.
type Image struct {
	ID        string    `json:"id"`
	PostID    uint      `json:"post_id"`
	Index     int       `json:"index"`
	URL       string    `json:"url"`
	AuthorID  uint      `json:"author_id"`
	Author    string    `json:"author"`
	Caption   string    `json:"caption"`
	LikeCount int       `json:"like_count"`
	CreatedAt time.Time `json:"created_at"`
}

// ImageID builds the stable identifier for the index-th image of a post.
func ImageID(postID uint, index int) string {
	return fmt.Sprintf("%d-%d", postID, index)
}

// Derive flattens feed items into gallery images. Posts without images
// contribute nothing; a post's images keep their attachment order.
func Derive(items []models.FeedItem) []Image {
	var images []Image
	for _, item := range items {
		for i, url := range item.Post.ImageURLs {
			images = append(images, Image{
				ID:        ImageID(item.Post.ID, i),
				PostID:    item.Post.ID,
				Index:     i,
				URL:       url,
				AuthorID:  item.Author.ID,
				Author:    item.Author.Username,
				Caption:   item.Post.Content,
				LikeCount: item.LikeCount,
				CreatedAt: item.Post.CreatedAt,
			})
		}
	}
	return images
}

// Apply returns the images selected and ordered by filter. now anchors the
// recency window. The input slice is not modified.
func Apply(images []Image, filter Filter, now time.Time) []Image {
	out := make([]Image, 0, len(images))
	switch filter {
	case FilterRecent:
		cutoff := now.Add(-RecentWindow)
		for _, img := range images {
			if !img.CreatedAt.Before(cutoff) {
				out = append(out, img)
			}
		}
	case FilterMostLiked:
		out = append(out, images...)
		sort.SliceStable(out, func(i, j int) bool {
			if out[i].LikeCount != out[j].LikeCount {
				return out[i].LikeCount > out[j].LikeCount
			}
			return out[i].CreatedAt.After(out[j].CreatedAt)
		})
	default:
		out = append(out, images...)
	}
	return out
}

// Pages returns how many pages of pageSize the image set fills. An empty set
// still has one (empty) page.
func Pages(total, pageSize int) int {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if total <= 0 {
		return 1
	}
	return (total + pageSize - 1) / pageSize
}

// Paginate returns the images on the given 1-based page. Out-of-range pages
// clamp to the nearest valid page.
func Paginate(images []Image, page, pageSize int) []Image {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	last := Pages(len(images), pageSize)
	if page < 1 {
		page = 1
	}
	if page > last {
		page = last
	}
	start := (page - 1) * pageSize
	if start >= len(images) {
		return []Image{}
	}
	end := start + pageSize
	if end > len(images) {
		end = len(images)
	}
	return images[start:end]
}
