// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// Message is an append-only direct message between two users. It appears in
// both participants' conversation view.
type Message struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	SenderID   uint      `gorm:"not null;index:idx_messages_pair" json:"sender_id"`
	ReceiverID uint      `gorm:"not null;index:idx_messages_pair" json:"receiver_id"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	Read       bool      `gorm:"default:false" json:"read"`
	CreatedAt  time.Time `json:"created_at"`

	// Relationships
	Sender User `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
}

// TableName specifies the table name for GORM
func (Message) TableName() string {
	return "messages"
}
