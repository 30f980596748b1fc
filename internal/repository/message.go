package repository

import (
	"context"

	"lifelog/internal/models"

	"gorm.io/gorm"
)

// MessageRepository defines the interface for direct message data operations.
// Messages are append-only; only the read flag is ever mutated.
type MessageRepository interface {
	Create(ctx context.Context, message *models.Message) error
	// GetConversation returns messages between two users in both directions,
	// oldest first, capped at limit.
	GetConversation(ctx context.Context, userID1, userID2 uint, limit int) ([]models.Message, error)
	// MarkRead flags every unread message from senderID to receiverID as read.
	MarkRead(ctx context.Context, receiverID, senderID uint) error
	UnreadCount(ctx context.Context, receiverID uint) (int64, error)
}

type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates a new message repository
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, message *models.Message) error {
	if err := r.db.WithContext(ctx).Create(message).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *messageRepository) GetConversation(ctx context.Context, userID1, userID2 uint, limit int) ([]models.Message, error) {
	var messages []models.Message
	if err := r.db.WithContext(ctx).
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userID1, userID2, userID2, userID1).
		Order("created_at ASC").
		Limit(limit).
		Preload("Sender").
		Find(&messages).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return messages, nil
}

func (r *messageRepository) MarkRead(ctx context.Context, receiverID, senderID uint) error {
	if err := r.db.WithContext(ctx).
		Model(&models.Message{}).
		Where("receiver_id = ? AND sender_id = ? AND read = ?", receiverID, senderID, false).
		Update("read", true).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *messageRepository) UnreadCount(ctx context.Context, receiverID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Message{}).
		Where("receiver_id = ? AND read = ?", receiverID, false).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}
