package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nikmarin/jobboard/internal/domain"
	"github.com/nikmarin/jobboard/internal/password"
	"github.com/nikmarin/jobboard/internal/repository"
	"github.com/nikmarin/jobboard/internal/token"
)

var (
	ErrEmailTaken    = errors.New("email already taken")
	ErrUsernameTaken = errors.New("username already taken")
	ErrInvalidCreds  = errors.New("invalid username or password")
	ErrInvalidToken  = errors.New("invalid or expired token")
	ErrUserNotFound  = errors.New("user not found")
)

type AuthService struct {
	userRepo repository.UserRepository
	tokens   *token.Issuer
}

func NewAuthService(userRepo repository.UserRepository, tokens *token.Issuer) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

type RegisterInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Bio      string `json:"bio"`
	Image    string `json:"image"`
}

type LoginInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse is the login/registration payload: profile fields plus
// both freshly minted tokens.
type UserResponse struct {
	Username     string `json:"username"`
	Email        string `json:"email"`
	Bio          string `json:"bio"`
	Image        string `json:"image"`
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token"`
}

// UserDetails is the "who am I" projection. No tokens.
type UserDetails struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Bio      string `json:"bio"`
	Image    string `json:"image"`
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*UserResponse, error) {
	username := strings.ToLower(strings.TrimSpace(input.Username))
	email := strings.ToLower(strings.TrimSpace(input.Email))

	existing, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUsernameTaken
	}

	existing, err = s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := password.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	image := input.Image
	if image == "" {
		image = domain.DefaultImage(username)
	}

	now := time.Now()
	user := &domain.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Bio:          input.Bio,
		Image:        image,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateUsername):
			return nil, ErrUsernameTaken
		case errors.Is(err, repository.ErrDuplicateEmail):
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("creating user: %w", err)
	}

	return s.recordLogin(ctx, user)
}

// Login accepts either username or email. Failures are deliberately
// non-specific about which field was wrong.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*UserResponse, error) {
	var (
		user *domain.User
		err  error
	)
	if input.Username != "" {
		user, err = s.userRepo.GetByUsername(ctx, strings.ToLower(strings.TrimSpace(input.Username)))
	} else {
		user, err = s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(input.Email)))
	}
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCreds
	}

	if !password.Verify(input.Password, user.PasswordHash) {
		return nil, ErrInvalidCreds
	}

	return s.recordLogin(ctx, user)
}

// recordLogin mints both tokens and persists the refresh token onto
// the user record, overwriting any prior value. Only the most recent
// refresh token stays valid: concurrent logins for the same user race
// on the field and the last write wins.
func (s *AuthService) recordLogin(ctx context.Context, user *domain.User) (*UserResponse, error) {
	accessToken, err := s.tokens.IssueAccess(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("issuing access token: %w", err)
	}
	refreshToken, err := s.tokens.IssueRefresh(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("issuing refresh token: %w", err)
	}

	if err := s.userRepo.SetRefreshToken(ctx, user.ID, refreshToken); err != nil {
		return nil, fmt.Errorf("storing refresh token: %w", err)
	}

	return &UserResponse{
		Username:     user.Username,
		Email:        user.Email,
		Bio:          user.Bio,
		Image:        user.Image,
		Token:        accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Refresh validates a refresh token and mints a new access token. The
// refresh token itself is not rotated: it stays valid until its own
// expiry or the next login.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.tokens.ParseRefresh(refreshToken)
	if err != nil {
		return "", ErrInvalidToken
	}

	userID, err := claims.UserID()
	if err != nil {
		return "", ErrInvalidToken
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", ErrInvalidToken
	}

	// Only the token currently stored on the record is accepted, so a
	// login or logout since issuance rejects the older token.
	if subtle.ConstantTimeCompare([]byte(user.RefreshToken), []byte(refreshToken)) != 1 {
		return "", ErrInvalidToken
	}

	accessToken, err := s.tokens.IssueAccess(user.ID, user.Email)
	if err != nil {
		return "", fmt.Errorf("issuing access token: %w", err)
	}
	return accessToken, nil
}

// Logout clears the stored refresh token so a replayed one is rejected.
func (s *AuthService) Logout(ctx context.Context, userID uuid.UUID) error {
	return s.userRepo.SetRefreshToken(ctx, userID, "")
}

func (s *AuthService) CurrentUser(ctx context.Context, userID uuid.UUID) (*UserDetails, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	return &UserDetails{
		Username: user.Username,
		Email:    user.Email,
		Bio:      user.Bio,
		Image:    user.Image,
	}, nil
}
