package task

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrTaskNotFound is returned when no task matches the lookup id.
var ErrTaskNotFound = errors.New("task not found")

// Query is a fully-resolved storage query: every predicate typed, defaults
// applied, limit already includes the look-ahead row.
type Query struct {
	Predicates []Predicate
	OrderBy    SortField
	Order      Order
	Limit      int
}

// Storage persists tasks.
type Storage interface {
	Create(ctx context.Context, t *Task) error
	FindByID(ctx context.Context, id uuid.UUID) (*Task, error)
	FindMany(ctx context.Context, q Query) ([]*Task, error)
	Update(ctx context.Context, t *Task) error
	Delete(ctx context.Context, id uuid.UUID) error
}
