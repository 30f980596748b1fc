package server

import (
	"lifelog/internal/middleware"
	"lifelog/internal/models"

	"github.com/gofiber/fiber/v2"
)

// SendFriendRequest handles POST /api/friends/requests/:userId
func (s *Server) SendFriendRequest(c *fiber.Ctx) error {
	addresseeID, err := paramUint(c, "userId")
	if err != nil {
		return models.RespondError(c, err)
	}

	friendship, err := s.friendService.SendFriendRequest(c.Context(), currentUserID(c), addresseeID)
	if err != nil {
		return models.RespondError(c, err)
	}

	if s.notifier != nil {
		if pubErr := s.notifier.PublishFriendRequest(c.Context(), friendship); pubErr != nil {
			middleware.Logger.WarnContext(c.UserContext(), "friend request notification failed",
				"addressee_id", addresseeID, "error", pubErr.Error())
		}
	}

	return c.Status(fiber.StatusCreated).JSON(friendship)
}

// GetFriends handles GET /api/friends
func (s *Server) GetFriends(c *fiber.Ctx) error {
	friends, err := s.friendService.GetFriends(c.Context(), currentUserID(c))
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(fiber.Map{"friends": friends})
}

// GetPendingRequests handles GET /api/friends/requests
func (s *Server) GetPendingRequests(c *fiber.Ctx) error {
	requests, err := s.friendService.GetPendingRequests(c.Context(), currentUserID(c))
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(fiber.Map{"requests": requests})
}

// GetSentRequests handles GET /api/friends/requests/sent
func (s *Server) GetSentRequests(c *fiber.Ctx) error {
	requests, err := s.friendService.GetSentRequests(c.Context(), currentUserID(c))
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(fiber.Map{"requests": requests})
}

// AcceptFriendRequest handles POST /api/friends/requests/:requestId/accept
func (s *Server) AcceptFriendRequest(c *fiber.Ctx) error {
	requestID, err := paramUint(c, "requestId")
	if err != nil {
		return models.RespondError(c, err)
	}
	userID := currentUserID(c)
	if err := s.friendService.AcceptFriendRequest(c.Context(), requestID, userID); err != nil {
		return models.RespondError(c, err)
	}
	// A new friend edge changes what the feed contains.
	s.feedService.InvalidateSnapshot(c.Context(), userID)
	return c.JSON(fiber.Map{"message": "Friend request accepted"})
}

// RejectFriendRequest handles POST /api/friends/requests/:requestId/reject
func (s *Server) RejectFriendRequest(c *fiber.Ctx) error {
	requestID, err := paramUint(c, "requestId")
	if err != nil {
		return models.RespondError(c, err)
	}
	if err := s.friendService.RejectFriendRequest(c.Context(), requestID, currentUserID(c)); err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Friend request rejected"})
}

// CancelFriendRequest handles DELETE /api/friends/requests/:requestId
func (s *Server) CancelFriendRequest(c *fiber.Ctx) error {
	requestID, err := paramUint(c, "requestId")
	if err != nil {
		return models.RespondError(c, err)
	}
	if err := s.friendService.CancelFriendRequest(c.Context(), requestID, currentUserID(c)); err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Friend request cancelled"})
}

// GetFriendshipStatus handles GET /api/friends/status/:userId
func (s *Server) GetFriendshipStatus(c *fiber.Ctx) error {
	otherID, err := paramUint(c, "userId")
	if err != nil {
		return models.RespondError(c, err)
	}
	status, err := s.friendService.FriendshipStatus(c.Context(), currentUserID(c), otherID)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(fiber.Map{"status": status})
}

// RemoveFriend handles DELETE /api/friends/:userId
func (s *Server) RemoveFriend(c *fiber.Ctx) error {
	friendID, err := paramUint(c, "userId")
	if err != nil {
		return models.RespondError(c, err)
	}
	userID := currentUserID(c)
	if err := s.friendService.RemoveFriend(c.Context(), userID, friendID); err != nil {
		return models.RespondError(c, err)
	}
	s.feedService.InvalidateSnapshot(c.Context(), userID)
	return c.JSON(fiber.Map{"message": "Friend removed"})
}
