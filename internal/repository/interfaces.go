package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/nikmarin/jobboard/internal/domain"
)

// Duplicate-key errors surfaced by Create when a unique constraint is
// violated under a racing registration the service pre-checks missed.
var (
	ErrDuplicateUsername = errors.New("username already exists")
	ErrDuplicateEmail    = errors.New("email already exists")
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	SetRefreshToken(ctx context.Context, id uuid.UUID, token string) error

	AddFavorite(ctx context.Context, userID, jobID uuid.UUID) error
	RemoveFavorite(ctx context.Context, userID, jobID uuid.UUID) error
	IsFavorite(ctx context.Context, userID, jobID uuid.UUID) (bool, error)
	CountFavorites(ctx context.Context, jobID uuid.UUID) (int, error)

	Follow(ctx context.Context, userID, targetID uuid.UUID) error
	Unfollow(ctx context.Context, userID, targetID uuid.UUID) error
	IsFollowing(ctx context.Context, userID, targetID uuid.UUID) (bool, error)
}

type JobFilter struct {
	CategoryID  *uuid.UUID
	AuthorID    *uuid.UUID
	FavoritedBy *uuid.UUID
	Limit       int
	Offset      int
}

type JobRepository interface {
	Create(ctx context.Context, job *domain.Job) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Job, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Job, error)
	List(ctx context.Context, filter JobFilter) ([]domain.Job, error)
	Update(ctx context.Context, job *domain.Job) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) error
	GetBySlug(ctx context.Context, slug string) (*domain.Category, error)
	List(ctx context.Context) ([]domain.Category, error)
}

type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error)
	ListByJob(ctx context.Context, jobID uuid.UUID) ([]domain.Comment, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
