package server

import (
	"lifelog/internal/models"
	"lifelog/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetMyProfile handles GET /api/users/me
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	user, err := s.userService.GetUser(c.Context(), currentUserID(c))
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(user)
}

// UpdateMyProfile handles PUT /api/users/me
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	var req struct {
		DisplayName *string `json:"display_name"`
		Bio         *string `json:"bio"`
		AvatarURL   *string `json:"avatar_url"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateProfile(c.Context(), service.UpdateProfileInput{
		UserID:      currentUserID(c),
		DisplayName: req.DisplayName,
		Bio:         req.Bio,
		AvatarURL:   req.AvatarURL,
	})
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(user)
}

// GetUserProfile handles GET /api/users/:id
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	id, err := paramUint(c, "id")
	if err != nil {
		return models.RespondError(c, err)
	}
	user, err := s.userService.GetUser(c.Context(), id)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(user)
}

// GetUserByUsername handles GET /api/users/by-username/:username
func (s *Server) GetUserByUsername(c *fiber.Ctx) error {
	username := c.Params("username")
	if username == "" {
		return models.RespondError(c, models.NewValidationError("Username is required"))
	}
	user, err := s.userService.GetUserByUsername(c.Context(), username)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(user)
}

// GetUserPosts handles GET /api/users/:id/posts
func (s *Server) GetUserPosts(c *fiber.Ctx) error {
	ownerID, err := paramUint(c, "id")
	if err != nil {
		return models.RespondError(c, err)
	}
	limit := queryInt(c, "limit", 20)
	offset := queryInt(c, "offset", 0)

	posts, err := s.postService.GetUserPosts(c.Context(), ownerID, currentUserID(c), limit, offset)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(fiber.Map{"posts": posts})
}

// SearchUsers handles GET /api/users/search
func (s *Server) SearchUsers(c *fiber.Ctx) error {
	users, err := s.userService.SearchUsers(c.Context(),
		c.Query("q"), queryInt(c, "limit", 20), queryInt(c, "offset", 0))
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(fiber.Map{"users": users})
}
