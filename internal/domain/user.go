package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Bio          string    `json:"bio"`
	Image        string    `json:"image"`
	RefreshToken string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// DefaultImage derives the avatar URL used when a user registers
// without one. Computed once at creation, never on later reads.
func DefaultImage(username string) string {
	return fmt.Sprintf("https://i.pravatar.cc/150?u=%s", username)
}
