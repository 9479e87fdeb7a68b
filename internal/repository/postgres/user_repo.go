package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikmarin/jobboard/internal/domain"
	"github.com/nikmarin/jobboard/internal/repository"
)

type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

func (r *UserRepo) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (id, username, email, password_hash, bio, image, refresh_token, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.pool.Exec(ctx, query,
		user.ID, user.Username, user.Email, user.PasswordHash,
		user.Bio, user.Image, user.RefreshToken, user.CreatedAt, user.UpdatedAt,
	)
	return mapUniqueViolation(err)
}

// mapUniqueViolation converts a 23505 on one of the users table's
// unique indexes into the repository's duplicate errors.
func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		switch {
		case strings.Contains(pgErr.ConstraintName, "username"):
			return repository.ErrDuplicateUsername
		case strings.Contains(pgErr.ConstraintName, "email"):
			return repository.ErrDuplicateEmail
		}
	}
	return err
}

func (r *UserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return r.scanUser(ctx, "SELECT id, username, email, password_hash, bio, image, refresh_token, created_at, updated_at FROM users WHERE id = $1", id)
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.scanUser(ctx, "SELECT id, username, email, password_hash, bio, image, refresh_token, created_at, updated_at FROM users WHERE email = $1", email)
}

func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.scanUser(ctx, "SELECT id, username, email, password_hash, bio, image, refresh_token, created_at, updated_at FROM users WHERE username = $1", username)
}

func (r *UserRepo) scanUser(ctx context.Context, query string, arg any) (*domain.User, error) {
	var u domain.User
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&u.ID, &u.Username, &u.Email, &u.PasswordHash,
		&u.Bio, &u.Image, &u.RefreshToken, &u.CreatedAt, &u.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) Update(ctx context.Context, user *domain.User) error {
	query := `
		UPDATE users
		SET username = $2, email = $3, password_hash = $4, bio = $5, image = $6, updated_at = $7
		WHERE id = $1`

	_, err := r.pool.Exec(ctx, query,
		user.ID, user.Username, user.Email, user.PasswordHash,
		user.Bio, user.Image, user.UpdatedAt,
	)
	return mapUniqueViolation(err)
}

// SetRefreshToken overwrites the single stored refresh token. Two
// concurrent logins race on this field and the last write wins.
func (r *UserRepo) SetRefreshToken(ctx context.Context, id uuid.UUID, token string) error {
	_, err := r.pool.Exec(ctx, "UPDATE users SET refresh_token = $2 WHERE id = $1", id, token)
	return err
}

func (r *UserRepo) AddFavorite(ctx context.Context, userID, jobID uuid.UUID) error {
	query := `
		INSERT INTO user_favorites (user_id, job_id, created_at)
		VALUES ($1, $2, now())
		ON CONFLICT (user_id, job_id) DO NOTHING`

	_, err := r.pool.Exec(ctx, query, userID, jobID)
	return err
}

func (r *UserRepo) RemoveFavorite(ctx context.Context, userID, jobID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, "DELETE FROM user_favorites WHERE user_id = $1 AND job_id = $2", userID, jobID)
	return err
}

func (r *UserRepo) IsFavorite(ctx context.Context, userID, jobID uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM user_favorites WHERE user_id = $1 AND job_id = $2)",
		userID, jobID,
	).Scan(&exists)
	return exists, err
}

func (r *UserRepo) CountFavorites(ctx context.Context, jobID uuid.UUID) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM user_favorites WHERE job_id = $1", jobID).Scan(&count)
	return count, err
}

func (r *UserRepo) Follow(ctx context.Context, userID, targetID uuid.UUID) error {
	query := `
		INSERT INTO user_following (user_id, target_id, created_at)
		VALUES ($1, $2, now())
		ON CONFLICT (user_id, target_id) DO NOTHING`

	_, err := r.pool.Exec(ctx, query, userID, targetID)
	return err
}

func (r *UserRepo) Unfollow(ctx context.Context, userID, targetID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, "DELETE FROM user_following WHERE user_id = $1 AND target_id = $2", userID, targetID)
	return err
}

func (r *UserRepo) IsFollowing(ctx context.Context, userID, targetID uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM user_following WHERE user_id = $1 AND target_id = $2)",
		userID, targetID,
	).Scan(&exists)
	return exists, err
}
