package user

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	// ErrUserNotFound is returned when no user matches the lookup key.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailTaken is returned when a write would violate email
	// uniqueness. The service pre-checks, but the storage layer reports
	// the race the pre-check cannot close.
	ErrEmailTaken = errors.New("email already registered")
)

// Storage persists user accounts. Implementations must treat emails as
// globally unique and case-sensitive.
type Storage interface {
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, u *User) error
}
