package domain

import (
	"time"

	"github.com/google/uuid"
)

type Job struct {
	ID          uuid.UUID  `json:"id"`
	Slug        string     `json:"slug"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Salary      *string    `json:"salary,omitempty"`
	CategoryID  *uuid.UUID `json:"category_id,omitempty"`
	AuthorID    uuid.UUID  `json:"author_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	// Joined fields
	AuthorUsername string `json:"author_username,omitempty"`
	CategorySlug   string `json:"category_slug,omitempty"`
}
