// Package user implements account registration, login, and profile
// management. Passwords are stored as bcrypt digests and never serialized.
package user

import (
	"time"

	"github.com/google/uuid"
)

// User is an account record. Digest is excluded from every JSON response.
type User struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Digest    string    `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
