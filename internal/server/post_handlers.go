package server

import (
	"lifelog/internal/models"
	"lifelog/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreatePost handles POST /api/posts
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req struct {
		Content      string            `json:"content"`
		ImageURLs    []string          `json:"image_urls"`
		Visibility   models.Visibility `json:"visibility"`
		LocationName string            `json:"location_name"`
		ShowLocation bool              `json:"show_location"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	userID := currentUserID(c)
	post, err := s.postService.CreatePost(c.Context(), service.CreatePostInput{
		UserID:       userID,
		Content:      req.Content,
		ImageURLs:    req.ImageURLs,
		Visibility:   req.Visibility,
		LocationName: req.LocationName,
		ShowLocation: req.ShowLocation,
	})
	if err != nil {
		return models.RespondError(c, err)
	}

	// A new post changes the author's own feed.
	s.feedService.InvalidateSnapshot(c.Context(), userID)

	return c.Status(fiber.StatusCreated).JSON(post)
}

// GetPost handles GET /api/posts/:id
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := paramUint(c, "id")
	if err != nil {
		return models.RespondError(c, err)
	}
	post, err := s.postService.GetPost(c.Context(), id, currentUserID(c))
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(post)
}

// DeletePost handles DELETE /api/posts/:id
func (s *Server) DeletePost(c *fiber.Ctx) error {
	id, err := paramUint(c, "id")
	if err != nil {
		return models.RespondError(c, err)
	}
	userID := currentUserID(c)
	if err := s.postService.DeletePost(c.Context(), id, userID); err != nil {
		return models.RespondError(c, err)
	}
	s.feedService.InvalidateSnapshot(c.Context(), userID)
	return c.JSON(fiber.Map{"message": "Post deleted"})
}

// ToggleLike handles POST /api/posts/:id/like
func (s *Server) ToggleLike(c *fiber.Ctx) error {
	id, err := paramUint(c, "id")
	if err != nil {
		return models.RespondError(c, err)
	}
	userID := currentUserID(c)
	liked, count, err := s.postService.ToggleLike(c.Context(), id, userID)
	if err != nil {
		return models.RespondError(c, err)
	}
	s.feedService.InvalidateSnapshot(c.Context(), userID)
	return c.JSON(fiber.Map{
		"liked":      liked,
		"like_count": count,
	})
}
