package service

import (
	"context"
	"strings"

	"lifelog/internal/models"
	"lifelog/internal/repository"
)

// MaxCommentLength caps a single comment body.
const MaxCommentLength = 2000

// CommentService handles comment business logic. Comments are append-only.
type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
	friendRepo  repository.FriendRepository
}

// NewCommentService creates a new comment service.
func NewCommentService(commentRepo repository.CommentRepository, postRepo repository.PostRepository, friendRepo repository.FriendRepository) *CommentService {
	return &CommentService{commentRepo: commentRepo, postRepo: postRepo, friendRepo: friendRepo}
}

// AddComment appends a comment to a post the user can see.
func (s *CommentService) AddComment(ctx context.Context, postID, userID uint, content string) (*models.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, models.NewValidationError("Comment cannot be empty")
	}
	if len(content) > MaxCommentLength {
		return nil, models.NewValidationError("Comment is too long")
	}

	if err := s.ensureVisible(ctx, postID, userID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		PostID:  postID,
		UserID:  userID,
		Content: content,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// GetComments returns a post's comments, oldest first.
func (s *CommentService) GetComments(ctx context.Context, postID, viewerID uint) ([]models.Comment, error) {
	if err := s.ensureVisible(ctx, postID, viewerID); err != nil {
		return nil, err
	}
	return s.commentRepo.GetByPostID(ctx, postID)
}

func (s *CommentService) ensureVisible(ctx context.Context, postID, viewerID uint) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.UserID == viewerID {
		return nil
	}
	friendship, err := s.friendRepo.GetFriendshipBetweenUsers(ctx, post.UserID, viewerID)
	if err != nil {
		return err
	}
	isFriend := friendship != nil && friendship.Status == models.FriendshipStatusAccepted
	if !post.VisibleTo(viewerID, isFriend) {
		return models.NewNotFoundError("Post", postID)
	}
	return nil
}
