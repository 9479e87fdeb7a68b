package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nikmarin/jobboard/internal/domain"
	"github.com/nikmarin/jobboard/internal/repository"
)

var (
	ErrJobNotFound  = errors.New("job not found")
	ErrJobSlugTaken = errors.New("a job with this title already exists")
	ErrNotJobAuthor = errors.New("only the job author can perform this action")
)

type JobService struct {
	jobRepo      repository.JobRepository
	userRepo     repository.UserRepository
	categoryRepo repository.CategoryRepository
}

func NewJobService(jobRepo repository.JobRepository, userRepo repository.UserRepository, categoryRepo repository.CategoryRepository) *JobService {
	return &JobService{
		jobRepo:      jobRepo,
		userRepo:     userRepo,
		categoryRepo: categoryRepo,
	}
}

type CreateJobInput struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Salary      *string `json:"salary"`
	Category    string  `json:"category"`
}

type UpdateJobInput struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Salary      *string `json:"salary"`
}

type ListJobsInput struct {
	Category  string
	Author    string
	Favorited string
	Limit     int
	Offset    int
}

// JobResponse decorates a job with the viewer-dependent favorited flag
// and the total favorites count.
type JobResponse struct {
	domain.Job
	Favorited      bool `json:"favorited"`
	FavoritesCount int  `json:"favorites_count"`
}

func (s *JobService) Create(ctx context.Context, authorID uuid.UUID, input CreateJobInput) (*JobResponse, error) {
	slug := slugify(input.Title)

	existing, err := s.jobRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrJobSlugTaken
	}

	var categoryID *uuid.UUID
	if input.Category != "" {
		category, err := s.categoryRepo.GetBySlug(ctx, slugify(input.Category))
		if err != nil {
			return nil, err
		}
		if category != nil {
			categoryID = &category.ID
		}
	}

	now := time.Now()
	job := &domain.Job{
		ID:          uuid.New(),
		Slug:        slug,
		Title:       input.Title,
		Description: input.Description,
		Salary:      input.Salary,
		CategoryID:  categoryID,
		AuthorID:    authorID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.jobRepo.Create(ctx, job); err != nil {
		return nil, fmt.Errorf("creating job: %w", err)
	}

	return s.decorate(ctx, job, &authorID)
}

func (s *JobService) GetBySlug(ctx context.Context, viewerID *uuid.UUID, slug string) (*JobResponse, error) {
	job, err := s.jobRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, ErrJobNotFound
	}
	return s.decorate(ctx, job, viewerID)
}

func (s *JobService) List(ctx context.Context, viewerID *uuid.UUID, input ListJobsInput) ([]JobResponse, error) {
	filter := repository.JobFilter{Limit: input.Limit, Offset: input.Offset}

	if input.Category != "" {
		category, err := s.categoryRepo.GetBySlug(ctx, input.Category)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return []JobResponse{}, nil
		}
		filter.CategoryID = &category.ID
	}
	if input.Author != "" {
		author, err := s.userRepo.GetByUsername(ctx, strings.ToLower(input.Author))
		if err != nil {
			return nil, err
		}
		if author == nil {
			return []JobResponse{}, nil
		}
		filter.AuthorID = &author.ID
	}
	if input.Favorited != "" {
		user, err := s.userRepo.GetByUsername(ctx, strings.ToLower(input.Favorited))
		if err != nil {
			return nil, err
		}
		if user == nil {
			return []JobResponse{}, nil
		}
		filter.FavoritedBy = &user.ID
	}

	jobs, err := s.jobRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]JobResponse, 0, len(jobs))
	for i := range jobs {
		resp, err := s.decorate(ctx, &jobs[i], viewerID)
		if err != nil {
			return nil, err
		}
		responses = append(responses, *resp)
	}
	return responses, nil
}

func (s *JobService) Update(ctx context.Context, userID uuid.UUID, slug string, input UpdateJobInput) (*JobResponse, error) {
	job, err := s.jobRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, ErrJobNotFound
	}
	if job.AuthorID != userID {
		return nil, ErrNotJobAuthor
	}

	if input.Title != nil {
		job.Title = *input.Title
		job.Slug = slugify(*input.Title)
	}
	if input.Description != nil {
		job.Description = *input.Description
	}
	if input.Salary != nil {
		job.Salary = input.Salary
	}
	job.UpdatedAt = time.Now()

	if err := s.jobRepo.Update(ctx, job); err != nil {
		return nil, fmt.Errorf("updating job: %w", err)
	}

	return s.decorate(ctx, job, &userID)
}

func (s *JobService) Delete(ctx context.Context, userID uuid.UUID, slug string) error {
	job, err := s.jobRepo.GetBySlug(ctx, slug)
	if err != nil {
		return err
	}
	if job == nil {
		return ErrJobNotFound
	}
	if job.AuthorID != userID {
		return ErrNotJobAuthor
	}

	return s.jobRepo.Delete(ctx, job.ID)
}

// Favorite adds the job to the user's favorites. Favoriting an already
// favorited job is a no-op.
func (s *JobService) Favorite(ctx context.Context, userID uuid.UUID, slug string) (*JobResponse, error) {
	job, err := s.jobRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, ErrJobNotFound
	}

	if err := s.userRepo.AddFavorite(ctx, userID, job.ID); err != nil {
		return nil, fmt.Errorf("adding favorite: %w", err)
	}

	return s.decorate(ctx, job, &userID)
}

// Unfavorite removes the job from the user's favorites. Removing an
// absent favorite is a no-op.
func (s *JobService) Unfavorite(ctx context.Context, userID uuid.UUID, slug string) (*JobResponse, error) {
	job, err := s.jobRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, ErrJobNotFound
	}

	if err := s.userRepo.RemoveFavorite(ctx, userID, job.ID); err != nil {
		return nil, fmt.Errorf("removing favorite: %w", err)
	}

	return s.decorate(ctx, job, &userID)
}

func (s *JobService) decorate(ctx context.Context, job *domain.Job, viewerID *uuid.UUID) (*JobResponse, error) {
	count, err := s.userRepo.CountFavorites(ctx, job.ID)
	if err != nil {
		return nil, err
	}

	favorited := false
	if viewerID != nil {
		favorited, err = s.userRepo.IsFavorite(ctx, *viewerID, job.ID)
		if err != nil {
			return nil, err
		}
	}

	return &JobResponse{Job: *job, Favorited: favorited, FavoritesCount: count}, nil
}

var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)
var multiDash = regexp.MustCompile(`-+`)

func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = nonAlphanumeric.ReplaceAllString(s, "-")
	s = multiDash.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	return s
}
