package server

import (
	"lifelog/internal/models"

	"github.com/gofiber/fiber/v2"
)

// SendMessage handles POST /api/messages
func (s *Server) SendMessage(c *fiber.Ctx) error {
	var req struct {
		ReceiverID uint   `json:"receiver_id"`
		Content    string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	message, err := s.chatService.SendMessage(c.Context(), currentUserID(c), req.ReceiverID, req.Content)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(message)
}

// GetConversation handles GET /api/messages/:userId
func (s *Server) GetConversation(c *fiber.Ctx) error {
	otherID, err := paramUint(c, "userId")
	if err != nil {
		return models.RespondError(c, err)
	}
	messages, err := s.chatService.GetConversation(c.Context(), currentUserID(c), otherID, queryInt(c, "limit", 50))
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(fiber.Map{"messages": messages})
}

// GetUnreadCount handles GET /api/messages/unread-count
func (s *Server) GetUnreadCount(c *fiber.Ctx) error {
	count, err := s.chatService.UnreadCount(c.Context(), currentUserID(c))
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(fiber.Map{"unread": count})
}
