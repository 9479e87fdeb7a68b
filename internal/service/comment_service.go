package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nikmarin/jobboard/internal/domain"
	"github.com/nikmarin/jobboard/internal/repository"
)

var (
	ErrCommentNotFound  = errors.New("comment not found")
	ErrNotCommentAuthor = errors.New("only the comment author can delete it")
)

type CommentService struct {
	commentRepo repository.CommentRepository
	jobRepo     repository.JobRepository
}

func NewCommentService(commentRepo repository.CommentRepository, jobRepo repository.JobRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		jobRepo:     jobRepo,
	}
}

type CreateCommentInput struct {
	Body string `json:"body"`
}

func (s *CommentService) Create(ctx context.Context, authorID uuid.UUID, jobSlug string, input CreateCommentInput) (*domain.Comment, error) {
	job, err := s.jobRepo.GetBySlug(ctx, jobSlug)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, ErrJobNotFound
	}

	now := time.Now()
	comment := &domain.Comment{
		ID:        uuid.New(),
		JobID:     job.ID,
		AuthorID:  authorID,
		Body:      input.Body,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("creating comment: %w", err)
	}

	return s.commentRepo.GetByID(ctx, comment.ID)
}

func (s *CommentService) ListByJob(ctx context.Context, jobSlug string) ([]domain.Comment, error) {
	job, err := s.jobRepo.GetBySlug(ctx, jobSlug)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, ErrJobNotFound
	}

	return s.commentRepo.ListByJob(ctx, job.ID)
}

func (s *CommentService) Delete(ctx context.Context, userID, commentID uuid.UUID) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment == nil {
		return ErrCommentNotFound
	}
	if comment.AuthorID != userID {
		return ErrNotCommentAuthor
	}

	return s.commentRepo.Delete(ctx, commentID)
}
