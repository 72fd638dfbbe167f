package user

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemoryStorage is an in-memory Storage with the same observable semantics
// as the postgres implementation. Used by tests and local bootstrapping.
type MemoryStorage struct {
	mu      sync.RWMutex
	byID    map[uuid.UUID]*User
	byEmail map[string]uuid.UUID
}

// NewMemoryStorage creates an empty in-memory user storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		byID:    make(map[uuid.UUID]*User),
		byEmail: make(map[string]uuid.UUID),
	}
}

func (s *MemoryStorage) Create(_ context.Context, u *User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byEmail[u.Email]; exists {
		return ErrEmailTaken
	}
	clone := *u
	s.byID[u.ID] = &clone
	s.byEmail[u.Email] = u.ID
	return nil
}

func (s *MemoryStorage) FindByID(_ context.Context, id uuid.UUID) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.byID[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (s *MemoryStorage) FindByEmail(_ context.Context, email string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[email]
	if !ok {
		return nil, ErrUserNotFound
	}
	clone := *s.byID[id]
	return &clone, nil
}

func (s *MemoryStorage) Update(_ context.Context, u *User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.byID[u.ID]
	if !ok {
		return ErrUserNotFound
	}
	if u.Email != current.Email {
		if holder, exists := s.byEmail[u.Email]; exists && holder != u.ID {
			return ErrEmailTaken
		}
		delete(s.byEmail, current.Email)
		s.byEmail[u.Email] = u.ID
	}
	clone := *u
	s.byID[u.ID] = &clone
	return nil
}
