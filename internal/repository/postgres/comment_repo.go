package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikmarin/jobboard/internal/domain"
)

type CommentRepo struct {
	pool *pgxpool.Pool
}

func NewCommentRepo(pool *pgxpool.Pool) *CommentRepo {
	return &CommentRepo{pool: pool}
}

func (r *CommentRepo) Create(ctx context.Context, comment *domain.Comment) error {
	query := `
		INSERT INTO comments (id, job_id, author_id, body, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.pool.Exec(ctx, query,
		comment.ID, comment.JobID, comment.AuthorID, comment.Body,
		comment.CreatedAt, comment.UpdatedAt,
	)
	return err
}

func (r *CommentRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	var c domain.Comment
	err := r.pool.QueryRow(ctx, `
		SELECT c.id, c.job_id, c.author_id, c.body, c.created_at, c.updated_at, u.username, u.image
		FROM comments c
		JOIN users u ON u.id = c.author_id
		WHERE c.id = $1`, id,
	).Scan(&c.ID, &c.JobID, &c.AuthorID, &c.Body, &c.CreatedAt, &c.UpdatedAt, &c.AuthorUsername, &c.AuthorImage)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CommentRepo) ListByJob(ctx context.Context, jobID uuid.UUID) ([]domain.Comment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT c.id, c.job_id, c.author_id, c.body, c.created_at, c.updated_at, u.username, u.image
		FROM comments c
		JOIN users u ON u.id = c.author_id
		WHERE c.job_id = $1
		ORDER BY c.created_at`, jobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []domain.Comment
	for rows.Next() {
		var c domain.Comment
		if err := rows.Scan(&c.ID, &c.JobID, &c.AuthorID, &c.Body, &c.CreatedAt, &c.UpdatedAt, &c.AuthorUsername, &c.AuthorImage); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

func (r *CommentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, "DELETE FROM comments WHERE id = $1", id)
	return err
}
