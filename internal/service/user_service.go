package service

import (
	"context"
	"strings"

	"lifelog/internal/cache"
	"lifelog/internal/models"
	"lifelog/internal/repository"
)

// UpdateProfileInput contains the editable profile fields. Username and email
// are immutable after signup.
type UpdateProfileInput struct {
	UserID      uint
	DisplayName *string
	Bio         *string
	AvatarURL   *string
}

// UserService handles user profile business logic. Profile reads go through
// the injected cache; a nil-backed cache degrades to plain repository reads.
type UserService struct {
	userRepo repository.UserRepository
	cache    *cache.Client
}

// NewUserService creates a new user service.
func NewUserService(userRepo repository.UserRepository, profileCache *cache.Client) *UserService {
	return &UserService{userRepo: userRepo, cache: profileCache}
}

// GetUser returns a user profile, served cache-aside.
func (s *UserService) GetUser(ctx context.Context, userID uint) (*models.User, error) {
	var user models.User
	err := s.cache.Aside(ctx, cache.UserKey(userID), &user, cache.UserTTL, func() error {
		u, err := s.userRepo.GetByID(ctx, userID)
		if err != nil {
			return err
		}
		user = *u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByUsername returns the profile registered under username.
func (s *UserService) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.userRepo.GetByUsername(ctx, username)
}

// UpdateProfile applies the provided fields to the user's profile. Nil fields
// are left unchanged.
func (s *UserService) UpdateProfile(ctx context.Context, input UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.DisplayName != nil {
		name := strings.TrimSpace(*input.DisplayName)
		if len(name) > 100 {
			return nil, models.NewValidationError("Display name is too long")
		}
		user.DisplayName = name
	}
	if input.Bio != nil {
		if len(*input.Bio) > 500 {
			return nil, models.NewValidationError("Bio is too long")
		}
		user.Bio = *input.Bio
	}
	if input.AvatarURL != nil {
		user.AvatarURL = *input.AvatarURL
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	s.cache.InvalidateUser(ctx, user.ID)
	return user, nil
}

// SearchUsers finds users whose username or display name matches query.
func (s *UserService) SearchUsers(ctx context.Context, query string, limit, offset int) ([]models.User, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []models.User{}, nil
	}
	if limit <= 0 || limit > 50 {
		limit = 20
	}
	return s.userRepo.Search(ctx, query, limit, offset)
}
