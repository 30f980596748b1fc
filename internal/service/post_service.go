package service

import (
	"context"
	"strings"

	"lifelog/internal/models"
	"lifelog/internal/repository"
)

// MaxPostContentLength caps the text body of a single post.
const MaxPostContentLength = 10000

// CreatePostInput contains the data needed to create a post.
type CreatePostInput struct {
	UserID       uint
	Content      string
	ImageURLs    []string
	Visibility   models.Visibility
	LocationName string
	ShowLocation bool
}

// PostService handles post business logic.
type PostService struct {
	postRepo   repository.PostRepository
	friendRepo repository.FriendRepository
	likeRepo   repository.LikeRepository
}

// NewPostService creates a new post service.
func NewPostService(postRepo repository.PostRepository, friendRepo repository.FriendRepository, likeRepo repository.LikeRepository) *PostService {
	return &PostService{postRepo: postRepo, friendRepo: friendRepo, likeRepo: likeRepo}
}

// CreatePost validates and persists a new post. A post needs text or at least
// one image; image count is capped at models.MaxImagesPerPost.
func (s *PostService) CreatePost(ctx context.Context, input CreatePostInput) (*models.Post, error) {
	content := strings.TrimSpace(input.Content)
	if content == "" && len(input.ImageURLs) == 0 {
		return nil, models.NewValidationError("A post needs text or at least one image")
	}
	if len(content) > MaxPostContentLength {
		return nil, models.NewValidationError("Post content is too long")
	}
	if len(input.ImageURLs) > models.MaxImagesPerPost {
		return nil, models.NewValidationError("A post can have at most 9 images")
	}

	visibility := input.Visibility
	if visibility == "" {
		visibility = models.VisibilityPublic
	}
	switch visibility {
	case models.VisibilityPublic, models.VisibilityFriends, models.VisibilityPrivate:
	default:
		return nil, models.NewValidationError("Unknown visibility")
	}

	post := &models.Post{
		UserID:       input.UserID,
		Content:      content,
		ImageURLs:    input.ImageURLs,
		Visibility:   visibility,
		LocationName: input.LocationName,
		ShowLocation: input.ShowLocation,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// GetPost returns a post if the viewer is allowed to see it.
func (s *PostService) GetPost(ctx context.Context, postID, viewerID uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	isFriend, err := s.areFriends(ctx, post.UserID, viewerID)
	if err != nil {
		return nil, err
	}
	if !post.VisibleTo(viewerID, isFriend) {
		// Hidden posts read as absent, not forbidden.
		return nil, models.NewNotFoundError("Post", postID)
	}

	counts, err := s.likeRepo.CountByPostIDs(ctx, []uint{post.ID})
	if err != nil {
		return nil, err
	}
	post.LikesCount = counts[post.ID]
	post.Liked, err = s.likeRepo.IsLiked(ctx, viewerID, post.ID)
	if err != nil {
		return nil, err
	}
	return post, nil
}

// GetUserPosts returns ownerID's posts that viewerID is allowed to see,
// newest first.
func (s *PostService) GetUserPosts(ctx context.Context, ownerID, viewerID uint, limit, offset int) ([]models.Post, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	posts, err := s.postRepo.GetByUserID(ctx, ownerID, limit, offset)
	if err != nil {
		return nil, err
	}

	isFriend, err := s.areFriends(ctx, ownerID, viewerID)
	if err != nil {
		return nil, err
	}

	visible := make([]models.Post, 0, len(posts))
	for _, p := range posts {
		if p.VisibleTo(viewerID, isFriend) {
			visible = append(visible, p)
		}
	}
	return visible, nil
}

// DeletePost removes a post. Only the author may delete it.
func (s *PostService) DeletePost(ctx context.Context, postID, userID uint) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.UserID != userID {
		return models.NewForbiddenError("Only the author can delete a post")
	}
	return s.postRepo.Delete(ctx, postID)
}

// ToggleLike flips the viewer's like on a post and returns the new state and
// like count. Liking an already-liked post is a no-op on the count.
func (s *PostService) ToggleLike(ctx context.Context, postID, userID uint) (liked bool, count int, err error) {
	if _, err := s.GetPost(ctx, postID, userID); err != nil {
		return false, 0, err
	}

	already, err := s.likeRepo.IsLiked(ctx, userID, postID)
	if err != nil {
		return false, 0, err
	}
	if already {
		err = s.likeRepo.Unlike(ctx, userID, postID)
	} else {
		err = s.likeRepo.Like(ctx, userID, postID)
	}
	if err != nil {
		return false, 0, err
	}

	counts, err := s.likeRepo.CountByPostIDs(ctx, []uint{postID})
	if err != nil {
		return false, 0, err
	}
	return !already, counts[postID], nil
}

func (s *PostService) areFriends(ctx context.Context, ownerID, viewerID uint) (bool, error) {
	if ownerID == viewerID {
		return true, nil
	}
	f, err := s.friendRepo.GetFriendshipBetweenUsers(ctx, ownerID, viewerID)
	if err != nil {
		return false, err
	}
	return f != nil && f.Status == models.FriendshipStatusAccepted, nil
}
