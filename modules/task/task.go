// Package task implements private per-user tasks: CRUD behind an ownership
// check and cursor-based keyset listing.
package task

import (
	"time"

	"github.com/google/uuid"
)

// Task is a single to-do item. UserID is the immutable owner; every
// operation checks it against the caller identity.
type Task struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	UserID      uuid.UUID `json:"userId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
