package service

import (
	"context"
	"time"

	"lifelog/internal/models"
)

// Function-typed repository stubs. Unset fields return zero values so each
// test only wires the calls it cares about.

type stubUserRepo struct {
	create        func(ctx context.Context, user *models.User) error
	getByID       func(ctx context.Context, id uint) (*models.User, error)
	getByIDs      func(ctx context.Context, ids []uint) ([]models.User, error)
	getByEmail    func(ctx context.Context, email string) (*models.User, error)
	getByUsername func(ctx context.Context, username string) (*models.User, error)
	update        func(ctx context.Context, user *models.User) error
	search        func(ctx context.Context, query string, limit, offset int) ([]models.User, error)
}

func (s *stubUserRepo) Create(ctx context.Context, user *models.User) error {
	if s.create == nil {
		return nil
	}
	return s.create(ctx, user)
}

func (s *stubUserRepo) GetByID(ctx context.Context, id uint) (*models.User, error) {
	if s.getByID == nil {
		return &models.User{ID: id}, nil
	}
	return s.getByID(ctx, id)
}

func (s *stubUserRepo) GetByIDs(ctx context.Context, ids []uint) ([]models.User, error) {
	if s.getByIDs == nil {
		return nil, nil
	}
	return s.getByIDs(ctx, ids)
}

func (s *stubUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if s.getByEmail == nil {
		return nil, nil
	}
	return s.getByEmail(ctx, email)
}

func (s *stubUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	if s.getByUsername == nil {
		return nil, nil
	}
	return s.getByUsername(ctx, username)
}

func (s *stubUserRepo) Update(ctx context.Context, user *models.User) error {
	if s.update == nil {
		return nil
	}
	return s.update(ctx, user)
}

func (s *stubUserRepo) Search(ctx context.Context, query string, limit, offset int) ([]models.User, error) {
	if s.search == nil {
		return nil, nil
	}
	return s.search(ctx, query, limit, offset)
}

type stubPostRepo struct {
	create         func(ctx context.Context, post *models.Post) error
	getByID        func(ctx context.Context, id uint) (*models.Post, error)
	getByAuthorIDs func(ctx context.Context, viewerID uint, authorIDs []uint, limit int) ([]models.Post, error)
	getByUserID    func(ctx context.Context, userID uint, limit, offset int) ([]models.Post, error)
	delete         func(ctx context.Context, id uint) error
}

func (s *stubPostRepo) Create(ctx context.Context, post *models.Post) error {
	if s.create == nil {
		post.ID = 1
		return nil
	}
	return s.create(ctx, post)
}

func (s *stubPostRepo) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	if s.getByID == nil {
		return nil, models.NewNotFoundError("Post", id)
	}
	return s.getByID(ctx, id)
}

func (s *stubPostRepo) GetByAuthorIDs(ctx context.Context, viewerID uint, authorIDs []uint, limit int) ([]models.Post, error) {
	if s.getByAuthorIDs == nil {
		return nil, nil
	}
	return s.getByAuthorIDs(ctx, viewerID, authorIDs, limit)
}

func (s *stubPostRepo) GetByUserID(ctx context.Context, userID uint, limit, offset int) ([]models.Post, error) {
	if s.getByUserID == nil {
		return nil, nil
	}
	return s.getByUserID(ctx, userID, limit, offset)
}

func (s *stubPostRepo) Delete(ctx context.Context, id uint) error {
	if s.delete == nil {
		return nil
	}
	return s.delete(ctx, id)
}

type stubFriendRepo struct {
	create             func(ctx context.Context, friendship *models.Friendship) error
	getByID            func(ctx context.Context, id uint) (*models.Friendship, error)
	getBetween         func(ctx context.Context, userID1, userID2 uint) (*models.Friendship, error)
	getFriends         func(ctx context.Context, userID uint) ([]models.User, error)
	getFriendIDs       func(ctx context.Context, userID uint) ([]uint, error)
	getPendingRequests func(ctx context.Context, userID uint) ([]models.Friendship, error)
	getSentRequests    func(ctx context.Context, userID uint) ([]models.Friendship, error)
	updateStatus       func(ctx context.Context, friendshipID uint, status models.FriendshipStatus) error
	delete             func(ctx context.Context, friendshipID uint) error
	removeFriendship   func(ctx context.Context, userID1, userID2 uint) error
}

func (s *stubFriendRepo) Create(ctx context.Context, friendship *models.Friendship) error {
	if s.create == nil {
		friendship.ID = 1
		return nil
	}
	return s.create(ctx, friendship)
}

func (s *stubFriendRepo) GetByID(ctx context.Context, id uint) (*models.Friendship, error) {
	if s.getByID == nil {
		return nil, models.NewNotFoundError("Friendship", id)
	}
	return s.getByID(ctx, id)
}

func (s *stubFriendRepo) GetFriendshipBetweenUsers(ctx context.Context, userID1, userID2 uint) (*models.Friendship, error) {
	if s.getBetween == nil {
		return nil, nil
	}
	return s.getBetween(ctx, userID1, userID2)
}

func (s *stubFriendRepo) GetFriends(ctx context.Context, userID uint) ([]models.User, error) {
	if s.getFriends == nil {
		return nil, nil
	}
	return s.getFriends(ctx, userID)
}

func (s *stubFriendRepo) GetFriendIDs(ctx context.Context, userID uint) ([]uint, error) {
	if s.getFriendIDs == nil {
		return nil, nil
	}
	return s.getFriendIDs(ctx, userID)
}

func (s *stubFriendRepo) GetPendingRequests(ctx context.Context, userID uint) ([]models.Friendship, error) {
	if s.getPendingRequests == nil {
		return nil, nil
	}
	return s.getPendingRequests(ctx, userID)
}

func (s *stubFriendRepo) GetSentRequests(ctx context.Context, userID uint) ([]models.Friendship, error) {
	if s.getSentRequests == nil {
		return nil, nil
	}
	return s.getSentRequests(ctx, userID)
}

func (s *stubFriendRepo) UpdateStatus(ctx context.Context, friendshipID uint, status models.FriendshipStatus) error {
	if s.updateStatus == nil {
		return nil
	}
	return s.updateStatus(ctx, friendshipID, status)
}

func (s *stubFriendRepo) Delete(ctx context.Context, friendshipID uint) error {
	if s.delete == nil {
		return nil
	}
	return s.delete(ctx, friendshipID)
}

func (s *stubFriendRepo) RemoveFriendship(ctx context.Context, userID1, userID2 uint) error {
	if s.removeFriendship == nil {
		return nil
	}
	return s.removeFriendship(ctx, userID1, userID2)
}

type stubCommentRepo struct {
	create       func(ctx context.Context, comment *models.Comment) error
	getByPostID  func(ctx context.Context, postID uint) ([]models.Comment, error)
	getByPostIDs func(ctx context.Context, postIDs []uint) ([]models.Comment, error)
}

func (s *stubCommentRepo) Create(ctx context.Context, comment *models.Comment) error {
	if s.create == nil {
		comment.ID = 1
		return nil
	}
	return s.create(ctx, comment)
}

func (s *stubCommentRepo) GetByPostID(ctx context.Context, postID uint) ([]models.Comment, error) {
	if s.getByPostID == nil {
		return nil, nil
	}
	return s.getByPostID(ctx, postID)
}

func (s *stubCommentRepo) GetByPostIDs(ctx context.Context, postIDs []uint) ([]models.Comment, error) {
	if s.getByPostIDs == nil {
		return nil, nil
	}
	return s.getByPostIDs(ctx, postIDs)
}

type stubLikeRepo struct {
	like           func(ctx context.Context, userID, postID uint) error
	unlike         func(ctx context.Context, userID, postID uint) error
	isLiked        func(ctx context.Context, userID, postID uint) (bool, error)
	countByPostIDs func(ctx context.Context, postIDs []uint) (map[uint]int, error)
	likedPostIDs   func(ctx context.Context, userID uint, postIDs []uint) ([]uint, error)
}

func (s *stubLikeRepo) Like(ctx context.Context, userID, postID uint) error {
	if s.like == nil {
		return nil
	}
	return s.like(ctx, userID, postID)
}

func (s *stubLikeRepo) Unlike(ctx context.Context, userID, postID uint) error {
	if s.unlike == nil {
		return nil
	}
	return s.unlike(ctx, userID, postID)
}

func (s *stubLikeRepo) IsLiked(ctx context.Context, userID, postID uint) (bool, error) {
	if s.isLiked == nil {
		return false, nil
	}
	return s.isLiked(ctx, userID, postID)
}

func (s *stubLikeRepo) CountByPostIDs(ctx context.Context, postIDs []uint) (map[uint]int, error) {
	if s.countByPostIDs == nil {
		return map[uint]int{}, nil
	}
	return s.countByPostIDs(ctx, postIDs)
}

func (s *stubLikeRepo) LikedPostIDs(ctx context.Context, userID uint, postIDs []uint) ([]uint, error) {
	if s.likedPostIDs == nil {
		return nil, nil
	}
	return s.likedPostIDs(ctx, userID, postIDs)
}

type stubMessageRepo struct {
	create          func(ctx context.Context, message *models.Message) error
	getConversation func(ctx context.Context, userID1, userID2 uint, limit int) ([]models.Message, error)
	markRead        func(ctx context.Context, receiverID, senderID uint) error
	unreadCount     func(ctx context.Context, receiverID uint) (int64, error)
}

func (s *stubMessageRepo) Create(ctx context.Context, message *models.Message) error {
	if s.create == nil {
		message.ID = 1
		message.CreatedAt = time.Now()
		return nil
	}
	return s.create(ctx, message)
}

func (s *stubMessageRepo) GetConversation(ctx context.Context, userID1, userID2 uint, limit int) ([]models.Message, error) {
	if s.getConversation == nil {
		return nil, nil
	}
	return s.getConversation(ctx, userID1, userID2, limit)
}

func (s *stubMessageRepo) MarkRead(ctx context.Context, receiverID, senderID uint) error {
	if s.markRead == nil {
		return nil
	}
	return s.markRead(ctx, receiverID, senderID)
}

func (s *stubMessageRepo) UnreadCount(ctx context.Context, receiverID uint) (int64, error) {
	if s.unreadCount == nil {
		return 0, nil
	}
	return s.unreadCount(ctx, receiverID)
}

type stubMoodRepo struct {
	create      func(ctx context.Context, mood *models.Mood) error
	latestSince func(ctx context.Context, userID uint, since time.Time) (*models.Mood, error)
	history     func(ctx context.Context, userID uint, limit, offset int) ([]models.Mood, error)
}

func (s *stubMoodRepo) Create(ctx context.Context, mood *models.Mood) error {
	if s.create == nil {
		mood.ID = 1
		return nil
	}
	return s.create(ctx, mood)
}

func (s *stubMoodRepo) LatestSince(ctx context.Context, userID uint, since time.Time) (*models.Mood, error) {
	if s.latestSince == nil {
		return nil, nil
	}
	return s.latestSince(ctx, userID, since)
}

func (s *stubMoodRepo) History(ctx context.Context, userID uint, limit, offset int) ([]models.Mood, error) {
	if s.history == nil {
		return nil, nil
	}
	return s.history(ctx, userID, limit, offset)
}
