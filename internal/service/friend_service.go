package service

import (
	"context"

	"lifelog/internal/models"
	"lifelog/internal/repository"
)

// FriendService handles friendship business logic.
type FriendService struct {
	friendRepo repository.FriendRepository
	userRepo   repository.UserRepository
}

// NewFriendService creates a new friend service.
func NewFriendService(friendRepo repository.FriendRepository, userRepo repository.UserRepository) *FriendService {
	return &FriendService{friendRepo: friendRepo, userRepo: userRepo}
}

// SendFriendRequest creates a pending friendship from requesterID to
// addresseeID. A previously rejected edge between the pair is discarded so
// the request can be made again.
func (s *FriendService) SendFriendRequest(ctx context.Context, requesterID, addresseeID uint) (*models.Friendship, error) {
	if requesterID == addresseeID {
		return nil, models.NewValidationError("Cannot send a friend request to yourself")
	}
	if _, err := s.userRepo.GetByID(ctx, addresseeID); err != nil {
		return nil, err
	}

	existing, err := s.friendRepo.GetFriendshipBetweenUsers(ctx, requesterID, addresseeID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		switch existing.Status {
		case models.FriendshipStatusAccepted:
			return nil, models.NewValidationError("Already friends")
		case models.FriendshipStatusPending:
			return nil, models.NewValidationError("A friend request is already pending")
		case models.FriendshipStatusRejected:
			if err := s.friendRepo.Delete(ctx, existing.ID); err != nil {
				return nil, err
			}
		}
	}

	friendship := &models.Friendship{
		RequesterID: requesterID,
		AddresseeID: addresseeID,
		Status:      models.FriendshipStatusPending,
	}
	if err := s.friendRepo.Create(ctx, friendship); err != nil {
		return nil, err
	}
	return friendship, nil
}

// AcceptFriendRequest marks a pending request as accepted. Only the addressee
// may accept.
func (s *FriendService) AcceptFriendRequest(ctx context.Context, friendshipID, userID uint) error {
	return s.respond(ctx, friendshipID, userID, models.FriendshipStatusAccepted)
}

// RejectFriendRequest marks a pending request as rejected. Only the addressee
// may reject. The edge is kept so the rejection is visible to the requester.
func (s *FriendService) RejectFriendRequest(ctx context.Context, friendshipID, userID uint) error {
	return s.respond(ctx, friendshipID, userID, models.FriendshipStatusRejected)
}

func (s *FriendService) respond(ctx context.Context, friendshipID, userID uint, status models.FriendshipStatus) error {
	friendship, err := s.friendRepo.GetByID(ctx, friendshipID)
	if err != nil {
		return err
	}
	if friendship.AddresseeID != userID {
		return models.NewForbiddenError("Only the addressee can respond to a friend request")
	}
	if friendship.Status != models.FriendshipStatusPending {
		return models.NewValidationError("Friend request is not pending")
	}
	return s.friendRepo.UpdateStatus(ctx, friendshipID, status)
}

// CancelFriendRequest withdraws a pending request. Only the requester may
// cancel, and cancellation removes the edge entirely.
func (s *FriendService) CancelFriendRequest(ctx context.Context, friendshipID, userID uint) error {
	friendship, err := s.friendRepo.GetByID(ctx, friendshipID)
	if err != nil {
		return err
	}
	if friendship.RequesterID != userID {
		return models.NewForbiddenError("Only the requester can cancel a friend request")
	}
	if friendship.Status != models.FriendshipStatusPending {
		return models.NewValidationError("Friend request is not pending")
	}
	return s.friendRepo.Delete(ctx, friendshipID)
}

// RemoveFriend deletes the accepted friendship between userID and friendID.
func (s *FriendService) RemoveFriend(ctx context.Context, userID, friendID uint) error {
	friendship, err := s.friendRepo.GetFriendshipBetweenUsers(ctx, userID, friendID)
	if err != nil {
		return err
	}
	if friendship == nil || friendship.Status != models.FriendshipStatusAccepted {
		return models.NewNotFoundError("Friendship", friendID)
	}
	return s.friendRepo.RemoveFriendship(ctx, userID, friendID)
}

// GetFriends returns the user's accepted friends.
func (s *FriendService) GetFriends(ctx context.Context, userID uint) ([]models.User, error) {
	return s.friendRepo.GetFriends(ctx, userID)
}

// GetPendingRequests returns incoming pending requests for userID.
func (s *FriendService) GetPendingRequests(ctx context.Context, userID uint) ([]models.Friendship, error) {
	return s.friendRepo.GetPendingRequests(ctx, userID)
}

// GetSentRequests returns outgoing pending requests from userID.
func (s *FriendService) GetSentRequests(ctx context.Context, userID uint) ([]models.Friendship, error) {
	return s.friendRepo.GetSentRequests(ctx, userID)
}

// FriendshipStatus describes the edge between two users from userID's point
// of view: "none", "friends", "pending_sent", "pending_received" or
// "rejected".
func (s *FriendService) FriendshipStatus(ctx context.Context, userID, otherID uint) (string, error) {
	if userID == otherID {
		return "self", nil
	}
	friendship, err := s.friendRepo.GetFriendshipBetweenUsers(ctx, userID, otherID)
	if err != nil {
		return "", err
	}
	if friendship == nil {
		return "none", nil
	}
	switch friendship.Status {
	case models.FriendshipStatusAccepted:
		return "friends", nil
	case models.FriendshipStatusPending:
		if friendship.RequesterID == userID {
			return "pending_sent", nil
		}
		return "pending_received", nil
	default:
		return "rejected", nil
	}
}
