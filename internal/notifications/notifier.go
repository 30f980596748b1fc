// Package notifications delivers live events to connected clients. Events are
// published into Redis channels so delivery works across server instances;
// the Hub fans them out to the receiving user's websocket connections.
package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"lifelog/internal/middleware"
	"lifelog/internal/models"

	"github.com/redis/go-redis/v9"
)

// Event is the envelope every live payload is wrapped in.
type Event struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// Notifier publishes events into per-user Redis channels. A nil Redis client
// turns every publish into a no-op; the app degrades to polling.
type Notifier struct {
	rdb *redis.Client
}

// NewNotifier creates a new Notifier instance using the provided Redis client.
func NewNotifier(rdb *redis.Client) *Notifier {
	return &Notifier{rdb: rdb}
}

// UserChannel derives the Redis channel name for a user.
func UserChannel(userID uint) string {
	return "events:user:" + strconv.FormatUint(uint64(userID), 10)
}

// PublishEvent wraps payload in an Event envelope and publishes it to the
// user's channel.
func (n *Notifier) PublishEvent(ctx context.Context, userID uint, eventType string, payload any) error {
	if n.rdb == nil {
		return nil
	}
	b, err := json.Marshal(Event{Type: eventType, Payload: payload})
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	return n.rdb.Publish(ctx, UserChannel(userID), b).Err()
}

// PublishMessage pushes a stored chat message to the receiver's connections.
func (n *Notifier) PublishMessage(ctx context.Context, receiverID uint, message *models.Message) error {
	return n.PublishEvent(ctx, receiverID, "message", message)
}

// PublishFriendRequest tells the addressee about a new pending request.
func (n *Notifier) PublishFriendRequest(ctx context.Context, friendship *models.Friendship) error {
	return n.PublishEvent(ctx, friendship.AddresseeID, "friend_request", friendship)
}

// StartSubscriber subscribes to every per-user channel and calls onMessage
// for each incoming payload. It returns once the subscription is set up; the
// pump runs until ctx is cancelled.
func (n *Notifier) StartSubscriber(ctx context.Context, onMessage func(channel, payload string)) error {
	if n.rdb == nil {
		return nil
	}
	sub := n.rdb.PSubscribe(ctx, "events:user:*")
	ch := sub.Channel()

	go func() {
		defer func() { _ = sub.Close() }()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				func() {
					defer func() {
						if r := recover(); r != nil {
							middleware.Logger.Error("panic in event subscriber", "panic", fmt.Sprint(r))
						}
					}()
					onMessage(msg.Channel, msg.Payload)
				}()
			}
		}
	}()

	return nil
}
