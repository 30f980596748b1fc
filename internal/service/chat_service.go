package service

import (
	"context"
	"strings"

	"lifelog/internal/middleware"
	"lifelog/internal/models"
	"lifelog/internal/repository"
)

// MaxMessageLength caps a single chat message body.
const MaxMessageLength = 4000

// MessagePublisher delivers a stored message to the receiver's live
// connections, if any.
type MessagePublisher interface {
	PublishMessage(ctx context.Context, receiverID uint, message *models.Message) error
}

// ChatService handles direct message business logic. Messaging is restricted
// to accepted friends.
type ChatService struct {
	messageRepo repository.MessageRepository
	friendRepo  repository.FriendRepository
	publisher   MessagePublisher
}

// NewChatService creates a new chat service. publisher may be nil when live
// delivery is disabled.
func NewChatService(messageRepo repository.MessageRepository, friendRepo repository.FriendRepository, publisher MessagePublisher) *ChatService {
	return &ChatService{messageRepo: messageRepo, friendRepo: friendRepo, publisher: publisher}
}

// SendMessage stores a message and pushes it to the receiver's live
// connections. Delivery is best-effort; the stored message is the source of
// truth.
func (s *ChatService) SendMessage(ctx context.Context, senderID, receiverID uint, content string) (*models.Message, error) {
	if senderID == receiverID {
		return nil, models.NewValidationError("Cannot message yourself")
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, models.NewValidationError("Message cannot be empty")
	}
	if len(content) > MaxMessageLength {
		return nil, models.NewValidationError("Message is too long")
	}

	friendship, err := s.friendRepo.GetFriendshipBetweenUsers(ctx, senderID, receiverID)
	if err != nil {
		return nil, err
	}
	if friendship == nil || friendship.Status != models.FriendshipStatusAccepted {
		return nil, models.NewForbiddenError("You can only message friends")
	}

	message := &models.Message{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    content,
	}
	if err := s.messageRepo.Create(ctx, message); err != nil {
		return nil, err
	}

	if s.publisher != nil {
		if err := s.publisher.PublishMessage(ctx, receiverID, message); err != nil {
			middleware.Logger.WarnContext(ctx, "live message delivery failed",
				"receiver_id", receiverID, "error", err.Error())
		}
	}
	return message, nil
}

// GetConversation returns the most recent messages between userID and
// otherID, oldest first, and marks messages from otherID as read.
func (s *ChatService) GetConversation(ctx context.Context, userID, otherID uint, limit int) ([]models.Message, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	messages, err := s.messageRepo.GetConversation(ctx, userID, otherID, limit)
	if err != nil {
		return nil, err
	}
	if err := s.messageRepo.MarkRead(ctx, userID, otherID); err != nil {
		return nil, err
	}
	return messages, nil
}

// UnreadCount returns the number of unread messages addressed to userID.
func (s *ChatService) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	return s.messageRepo.UnreadCount(ctx, userID)
}
