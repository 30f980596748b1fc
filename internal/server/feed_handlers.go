package server

import (
	"time"

	"lifelog/internal/gallery"
	"lifelog/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetFeed handles GET /api/feed
func (s *Server) GetFeed(c *fiber.Ctx) error {
	snap, cached, err := s.feedService.HomeFeed(c.Context(), currentUserID(c))
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(fiber.Map{
		"items":     snap.Items,
		"loaded_at": snap.LoadedAt,
		"cached":    cached,
	})
}

// GetGallery handles GET /api/feed/gallery
func (s *Server) GetGallery(c *fiber.Ctx) error {
	filter := gallery.Filter(c.Query("filter", string(gallery.FilterAll)))
	switch filter {
	case gallery.FilterAll, gallery.FilterRecent, gallery.FilterMostLiked:
	default:
		return models.RespondError(c,
			models.NewValidationError("Unknown gallery filter"))
	}
	page := queryInt(c, "page", 1)
	pageSize := queryInt(c, "page_size", gallery.DefaultPageSize)
	if pageSize < 1 || pageSize > 100 {
		pageSize = gallery.DefaultPageSize
	}

	snap, _, err := s.feedService.HomeFeed(c.Context(), currentUserID(c))
	if err != nil {
		return models.RespondError(c, err)
	}

	images := gallery.Apply(gallery.Derive(snap.Items), filter, time.Now())
	return c.JSON(fiber.Map{
		"images":    gallery.Paginate(images, page, pageSize),
		"total":     len(images),
		"pages":     gallery.Pages(len(images), pageSize),
		"page":      page,
		"page_size": pageSize,
	})
}
