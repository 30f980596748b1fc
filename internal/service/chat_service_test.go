package service

import (
	"context"
	"strings"
	"testing"

	"lifelog/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPublisher struct {
	published []*models.Message
	err       error
}

func (s *stubPublisher) PublishMessage(_ context.Context, _ uint, message *models.Message) error {
	s.published = append(s.published, message)
	return s.err
}

func acceptedFriends() *stubFriendRepo {
	return &stubFriendRepo{
		getBetween: func(_ context.Context, a, b uint) (*models.Friendship, error) {
			return &models.Friendship{RequesterID: a, AddresseeID: b, Status: models.FriendshipStatusAccepted}, nil
		},
	}
}

func TestSendMessageValidation(t *testing.T) {
	ctx := context.Background()
	svc := NewChatService(&stubMessageRepo{}, acceptedFriends(), nil)

	_, err := svc.SendMessage(ctx, 1, 1, "hi")
	requireAppErrorCode(t, err, "VALIDATION_ERROR")

	_, err = svc.SendMessage(ctx, 1, 2, "   ")
	requireAppErrorCode(t, err, "VALIDATION_ERROR")

	_, err = svc.SendMessage(ctx, 1, 2, strings.Repeat("x", MaxMessageLength+1))
	requireAppErrorCode(t, err, "VALIDATION_ERROR")
}

func TestSendMessageFriendsOnly(t *testing.T) {
	ctx := context.Background()

	svc := NewChatService(&stubMessageRepo{}, &stubFriendRepo{}, nil)
	_, err := svc.SendMessage(ctx, 1, 2, "hello")
	requireAppErrorCode(t, err, "FORBIDDEN")

	pendingOnly := &stubFriendRepo{
		getBetween: func(_ context.Context, _, _ uint) (*models.Friendship, error) {
			return &models.Friendship{Status: models.FriendshipStatusPending}, nil
		},
	}
	svc = NewChatService(&stubMessageRepo{}, pendingOnly, nil)
	_, err = svc.SendMessage(ctx, 1, 2, "hello")
	requireAppErrorCode(t, err, "FORBIDDEN")
}

func TestSendMessageStoresAndPublishes(t *testing.T) {
	ctx := context.Background()
	pub := &stubPublisher{}
	svc := NewChatService(&stubMessageRepo{}, acceptedFriends(), pub)

	msg, err := svc.SendMessage(ctx, 1, 2, "  hello  ")
	require.NoError(t, err)
	assert.Equal(t, "hello", msg.Content)
	assert.Equal(t, uint(1), msg.SenderID)
	assert.Equal(t, uint(2), msg.ReceiverID)
	require.Len(t, pub.published, 1)
	assert.Equal(t, msg, pub.published[0])
}

func TestSendMessageDeliveryFailureIsNotFatal(t *testing.T) {
	ctx := context.Background()
	pub := &stubPublisher{err: assert.AnError}
	svc := NewChatService(&stubMessageRepo{}, acceptedFriends(), pub)

	msg, err := svc.SendMessage(ctx, 1, 2, "hello")
	require.NoError(t, err)
	assert.NotNil(t, msg)
}

func TestGetConversationMarksRead(t *testing.T) {
	ctx := context.Background()
	var markedReceiver, markedSender uint
	messages := &stubMessageRepo{
		getConversation: func(_ context.Context, a, b uint, limit int) ([]models.Message, error) {
			assert.Equal(t, 50, limit)
			return []models.Message{{ID: 1, SenderID: b, ReceiverID: a, Content: "yo"}}, nil
		},
		markRead: func(_ context.Context, receiverID, senderID uint) error {
			markedReceiver, markedSender = receiverID, senderID
			return nil
		},
	}
	svc := NewChatService(messages, acceptedFriends(), nil)

	msgs, err := svc.GetConversation(ctx, 1, 2, 0)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, uint(1), markedReceiver)
	assert.Equal(t, uint(2), markedSender)
}
