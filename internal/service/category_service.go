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
	ErrCategoryNotFound  = errors.New("category not found")
	ErrCategorySlugTaken = errors.New("category already exists")
)

type CategoryService struct {
	categoryRepo repository.CategoryRepository
}

func NewCategoryService(categoryRepo repository.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

type CreateCategoryInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (s *CategoryService) Create(ctx context.Context, input CreateCategoryInput) (*domain.Category, error) {
	slug := slugify(input.Name)

	existing, err := s.categoryRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrCategorySlugTaken
	}

	var desc *string
	if input.Description != "" {
		desc = &input.Description
	}

	category := &domain.Category{
		ID:          uuid.New(),
		Name:        input.Name,
		Slug:        slug,
		Description: desc,
		CreatedAt:   time.Now(),
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("creating category: %w", err)
	}

	return category, nil
}

func (s *CategoryService) GetBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	category, err := s.categoryRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}
	return category, nil
}

func (s *CategoryService) List(ctx context.Context) ([]domain.Category, error) {
	return s.categoryRepo.List(ctx)
}
