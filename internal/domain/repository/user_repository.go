package repository

import (
	"context"
	"errors"

	"github.com/oksasatya/users-api/internal/domain/entity"
)

var (
	// ErrNotFound is returned when no record matches the lookup.
	ErrNotFound = errors.New("not found")
	// ErrEmailTaken is returned when a write violates email uniqueness.
	ErrEmailTaken = errors.New("email already taken")
)

// UserRepository defines the persistence operations for users.
// Create assigns ID, CreatedAt and UpdatedAt on success.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	List(ctx context.Context) ([]entity.User, error)
	UpdateByID(ctx context.Context, id string, up entity.UserUpdate) (*entity.User, error)
}
