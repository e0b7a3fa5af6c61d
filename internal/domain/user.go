package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// User owns tasks. Every task operation is scoped to the owning user's ID.
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string // argon2id
	Name         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type UserRepository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
}
