package task

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStorage is an in-memory Storage with the same observable semantics
// as the postgres implementation. Used by tests and local bootstrapping.
type MemoryStorage struct {
	mu    sync.RWMutex
	tasks map[uuid.UUID]*Task
}

// NewMemoryStorage creates an empty in-memory task storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{tasks: make(map[uuid.UUID]*Task)}
}

func (s *MemoryStorage) Create(_ context.Context, t *Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	clone := *t
	s.tasks[t.ID] = &clone
	return nil
}

func (s *MemoryStorage) FindByID(_ context.Context, id uuid.UUID) (*Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tasks[id]
	if !ok {
		return nil, ErrTaskNotFound
	}
	clone := *t
	return &clone, nil
}

func (s *MemoryStorage) FindMany(_ context.Context, q Query) ([]*Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []*Task
	for _, t := range s.tasks {
		if matchesAll(t, q.Predicates) {
			clone := *t
			matched = append(matched, &clone)
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		less := lessBy(matched[i], matched[j], q.OrderBy)
		if q.Order == OrderAsc {
			return less
		}
		return lessBy(matched[j], matched[i], q.OrderBy)
	})

	if q.Limit > 0 && len(matched) > q.Limit {
		matched = matched[:q.Limit]
	}
	return matched, nil
}

func (s *MemoryStorage) Update(_ context.Context, t *Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[t.ID]; !ok {
		return ErrTaskNotFound
	}
	clone := *t
	s.tasks[t.ID] = &clone
	return nil
}

func (s *MemoryStorage) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[id]; !ok {
		return ErrTaskNotFound
	}
	delete(s.tasks, id)
	return nil
}

func matchesAll(t *Task, predicates []Predicate) bool {
	for _, p := range predicates {
		switch p := p.(type) {
		case OwnerIs:
			if t.UserID != p.ID {
				return false
			}
		case CompletedIs:
			if t.Completed != p.Value {
				return false
			}
		case MatchesSearch:
			term := strings.ToLower(p.Term)
			if !strings.Contains(strings.ToLower(t.Title), term) &&
				!strings.Contains(strings.ToLower(t.Description), term) {
				return false
			}
		case CursorBefore:
			if !timeField(t, p.Field).Before(p.Value) {
				return false
			}
		case CursorAfter:
			if !timeField(t, p.Field).After(p.Value) {
				return false
			}
		default:
			return false
		}
	}
	return true
}

func timeField(t *Task, field SortField) time.Time {
	if field == SortUpdatedAt {
		return t.UpdatedAt
	}
	return t.CreatedAt
}

func lessBy(a, b *Task, field SortField) bool {
	switch field {
	case SortTitle:
		return a.Title < b.Title
	case SortUpdatedAt:
		return a.UpdatedAt.Before(b.UpdatedAt)
	default:
		return a.CreatedAt.Before(b.CreatedAt)
	}
}
