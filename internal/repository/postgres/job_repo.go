package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikmarin/jobboard/internal/domain"
	"github.com/nikmarin/jobboard/internal/repository"
)

type JobRepo struct {
	pool *pgxpool.Pool
}

func NewJobRepo(pool *pgxpool.Pool) *JobRepo {
	return &JobRepo{pool: pool}
}

const jobColumns = `
	j.id, j.slug, j.title, j.description, j.salary, j.category_id, j.author_id,
	j.created_at, j.updated_at, u.username, COALESCE(c.slug, '')`

const jobJoins = `
	FROM jobs j
	JOIN users u ON u.id = j.author_id
	LEFT JOIN categories c ON c.id = j.category_id`

func (r *JobRepo) Create(ctx context.Context, job *domain.Job) error {
	query := `
		INSERT INTO jobs (id, slug, title, description, salary, category_id, author_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.pool.Exec(ctx, query,
		job.ID, job.Slug, job.Title, job.Description, job.Salary,
		job.CategoryID, job.AuthorID, job.CreatedAt, job.UpdatedAt,
	)
	return err
}

func (r *JobRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Job, error) {
	return r.scanJob(ctx, "SELECT "+jobColumns+jobJoins+" WHERE j.id = $1", id)
}

func (r *JobRepo) GetBySlug(ctx context.Context, slug string) (*domain.Job, error) {
	return r.scanJob(ctx, "SELECT "+jobColumns+jobJoins+" WHERE j.slug = $1", slug)
}

func (r *JobRepo) scanJob(ctx context.Context, query string, arg any) (*domain.Job, error) {
	var j domain.Job
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&j.ID, &j.Slug, &j.Title, &j.Description, &j.Salary, &j.CategoryID,
		&j.AuthorID, &j.CreatedAt, &j.UpdatedAt, &j.AuthorUsername, &j.CategorySlug,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &j, nil
}

func (r *JobRepo) List(ctx context.Context, filter repository.JobFilter) ([]domain.Job, error) {
	query := "SELECT " + jobColumns + jobJoins
	args := []any{}

	where := ""
	addCond := func(cond string, arg any) {
		args = append(args, arg)
		if where == "" {
			where = " WHERE "
		} else {
			where += " AND "
		}
		where += fmt.Sprintf(cond, len(args))
	}

	if filter.CategoryID != nil {
		addCond("j.category_id = $%d", *filter.CategoryID)
	}
	if filter.AuthorID != nil {
		addCond("j.author_id = $%d", *filter.AuthorID)
	}
	if filter.FavoritedBy != nil {
		addCond("j.id IN (SELECT job_id FROM user_favorites WHERE user_id = $%d)", *filter.FavoritedBy)
	}

	query += where + " ORDER BY j.created_at DESC"

	limit := filter.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	args = append(args, limit)
	query += fmt.Sprintf(" LIMIT $%d", len(args))
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []domain.Job
	for rows.Next() {
		var j domain.Job
		if err := rows.Scan(
			&j.ID, &j.Slug, &j.Title, &j.Description, &j.Salary, &j.CategoryID,
			&j.AuthorID, &j.CreatedAt, &j.UpdatedAt, &j.AuthorUsername, &j.CategorySlug,
		); err != nil {
			return nil, err
		}
		jobs = append(jobs, j)
	}
	return jobs, rows.Err()
}

func (r *JobRepo) Update(ctx context.Context, job *domain.Job) error {
	query := `
		UPDATE jobs
		SET slug = $2, title = $3, description = $4, salary = $5, category_id = $6, updated_at = $7
		WHERE id = $1`

	_, err := r.pool.Exec(ctx, query,
		job.ID, job.Slug, job.Title, job.Description, job.Salary,
		job.CategoryID, job.UpdatedAt,
	)
	return err
}

func (r *JobRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, "DELETE FROM jobs WHERE id = $1", id)
	return err
}
