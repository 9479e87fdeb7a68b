package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nikmarin/jobboard/internal/password"
	"github.com/nikmarin/jobboard/internal/repository"
)

var ErrCannotFollowSelf = errors.New("cannot follow yourself")

type UserService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

type UpdateUserInput struct {
	Email    *string `json:"email"`
	Bio      *string `json:"bio"`
	Image    *string `json:"image"`
	Password *string `json:"password"`
}

// ProfileResponse is the public view of a user, with the viewer's
// following flag when the request is authenticated.
type ProfileResponse struct {
	Username  string `json:"username"`
	Bio       string `json:"bio"`
	Image     string `json:"image"`
	Following bool   `json:"following"`
}

func (s *UserService) Update(ctx context.Context, userID uuid.UUID, input UpdateUserInput) (*UserDetails, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if input.Email != nil {
		user.Email = strings.ToLower(strings.TrimSpace(*input.Email))
	}
	if input.Bio != nil {
		user.Bio = *input.Bio
	}
	if input.Image != nil {
		user.Image = *input.Image
	}
	if input.Password != nil {
		hash, err := password.Hash(*input.Password)
		if err != nil {
			return nil, fmt.Errorf("hashing password: %w", err)
		}
		user.PasswordHash = hash
	}
	user.UpdatedAt = time.Now()

	if err := s.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("updating user: %w", err)
	}

	return &UserDetails{
		Username: user.Username,
		Email:    user.Email,
		Bio:      user.Bio,
		Image:    user.Image,
	}, nil
}

// Profile returns the public projection. viewerID is nil for
// unauthenticated requests, in which case following is always false.
func (s *UserService) Profile(ctx context.Context, viewerID *uuid.UUID, username string) (*ProfileResponse, error) {
	user, err := s.userRepo.GetByUsername(ctx, strings.ToLower(username))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	following := false
	if viewerID != nil {
		following, err = s.userRepo.IsFollowing(ctx, *viewerID, user.ID)
		if err != nil {
			return nil, err
		}
	}

	return &ProfileResponse{
		Username:  user.Username,
		Bio:       user.Bio,
		Image:     user.Image,
		Following: following,
	}, nil
}

func (s *UserService) Follow(ctx context.Context, viewerID uuid.UUID, username string) (*ProfileResponse, error) {
	user, err := s.userRepo.GetByUsername(ctx, strings.ToLower(username))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if user.ID == viewerID {
		return nil, ErrCannotFollowSelf
	}

	if err := s.userRepo.Follow(ctx, viewerID, user.ID); err != nil {
		return nil, fmt.Errorf("following user: %w", err)
	}

	return &ProfileResponse{
		Username:  user.Username,
		Bio:       user.Bio,
		Image:     user.Image,
		Following: true,
	}, nil
}

func (s *UserService) Unfollow(ctx context.Context, viewerID uuid.UUID, username string) (*ProfileResponse, error) {
	user, err := s.userRepo.GetByUsername(ctx, strings.ToLower(username))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if err := s.userRepo.Unfollow(ctx, viewerID, user.ID); err != nil {
		return nil, fmt.Errorf("unfollowing user: %w", err)
	}

	return &ProfileResponse{
		Username:  user.Username,
		Bio:       user.Bio,
		Image:     user.Image,
		Following: false,
	}, nil
}
