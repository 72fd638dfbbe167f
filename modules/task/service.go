package task

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/taskhub/taskhub/core"
	"github.com/taskhub/taskhub/pkg/logger"
)

const (
	// DefaultLimit is the page size when the client does not ask for one.
	DefaultLimit = 20
	// MaxLimit caps the page size; larger requests are clamped, not
	// rejected.
	MaxLimit = 100
)

// TaskUpdate carries the optional update fields. A nil field is left
// unchanged.
type TaskUpdate struct {
	Title       *string
	Description *string
	Completed   *bool
}

// ListQuery is the client-facing listing request before defaults are
// applied.
type ListQuery struct {
	Search    string
	Completed *bool
	OrderBy   SortField
	Order     Order
	Cursor    string
	Limit     int
}

// Page is the listing envelope. NextCursor is null on the final page.
type Page struct {
	Data       []*Task `json:"data"`
	NextCursor *string `json:"nextCursor"`
	HasMore    bool    `json:"hasMore"`
	Limit      int     `json:"limit"`
}

// Service implements task operations over a Storage.
type Service struct {
	storage Storage
	log     *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the service logger.
func WithLogger(log *slog.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// NewService creates a task service.
func NewService(storage Storage, opts ...Option) *Service {
	s := &Service{storage: storage, log: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create stores a new task owned by ownerID. An omitted description is
// persisted as the empty string, never as null.
func (s *Service) Create(ctx context.Context, ownerID uuid.UUID, title, description string) (*Task, error) {
	now := time.Now().UTC()
	t := &Task{
		ID:          uuid.New(),
		Title:       title,
		Description: description,
		Completed:   false,
		UserID:      ownerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.storage.Create(ctx, t); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	s.log.LogAttrs(ctx, slog.LevelInfo, "task created",
		logger.UserID(ownerID.String()),
		slog.String("task_id", t.ID.String()),
	)
	return t, nil
}

// resolve fetches a task unconditionally, then checks ownership. Existence
// is decided strictly before ownership: a caller probing another user's
// task id learns it exists only if it does.
func (s *Service) resolve(ctx context.Context, taskID, callerID uuid.UUID, action string) (*Task, error) {
	t, err := s.storage.FindByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, ErrTaskNotFound) {
			return nil, core.NotFound("Task not found")
		}
		return nil, fmt.Errorf("resolve task: %w", err)
	}
	if t.UserID != callerID {
		return nil, core.Forbidden(fmt.Sprintf("You don't have permission to %s this task", action))
	}
	return t, nil
}

// Get returns a task the caller owns.
func (s *Service) Get(ctx context.Context, taskID, callerID uuid.UUID) (*Task, error) {
	return s.resolve(ctx, taskID, callerID, "access")
}

// Update applies the provided fields to a task the caller owns. The resolve
// runs in full again even if the caller just fetched the task; the
// read-then-write race window this leaves is benign for single-owner data.
func (s *Service) Update(ctx context.Context, taskID, callerID uuid.UUID, update TaskUpdate) (*Task, error) {
	t, err := s.resolve(ctx, taskID, callerID, "update")
	if err != nil {
		return nil, err
	}

	if update.Title != nil {
		t.Title = *update.Title
	}
	if update.Description != nil {
		t.Description = *update.Description
	}
	if update.Completed != nil {
		t.Completed = *update.Completed
	}
	t.UpdatedAt = time.Now().UTC()

	if err := s.storage.Update(ctx, t); err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	return t, nil
}

// Delete removes a task the caller owns.
func (s *Service) Delete(ctx context.Context, taskID, callerID uuid.UUID) error {
	t, err := s.resolve(ctx, taskID, callerID, "delete")
	if err != nil {
		return err
	}
	if err := s.storage.Delete(ctx, t.ID); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}

// List returns one page of the caller's tasks. Keyset pagination: the query
// fetches limit+1 rows and the extra row only signals whether another page
// exists. There is no secondary tie-break key, so boundary rows sharing the
// same orderBy value may repeat or skip across pages.
func (s *Service) List(ctx context.Context, callerID uuid.UUID, q ListQuery) (*Page, error) {
	orderBy := q.OrderBy
	switch orderBy {
	case SortCreatedAt, SortUpdatedAt, SortTitle:
	default:
		orderBy = SortCreatedAt
	}
	order := q.Order
	if order != OrderAsc {
		order = OrderDesc
	}
	limit := q.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	predicates := []Predicate{OwnerIs{ID: callerID}}
	if q.Search != "" {
		predicates = append(predicates, MatchesSearch{Term: q.Search})
	}
	if q.Completed != nil {
		predicates = append(predicates, CompletedIs{Value: *q.Completed})
	}
	if p, ok := cursorPredicate(q.Cursor, orderBy, order); ok {
		predicates = append(predicates, p)
	}

	rows, err := s.storage.FindMany(ctx, Query{
		Predicates: predicates,
		OrderBy:    orderBy,
		Order:      order,
		Limit:      limit + 1,
	})
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	hasMore := len(rows) > limit
	if hasMore {
		rows = rows[:limit]
	}
	if rows == nil {
		rows = []*Task{}
	}

	page := &Page{Data: rows, HasMore: hasMore, Limit: limit}
	if hasMore {
		cursor := cursorValue(rows[len(rows)-1], orderBy)
		page.NextCursor = &cursor
	}
	return page, nil
}

// cursorPredicate turns a raw cursor into a strict-inequality predicate on
// the timestamp sort field. Title ordering and unparseable cursors yield no
// predicate: a stale or foreign cursor degrades to page one instead of
// failing the request.
func cursorPredicate(raw string, orderBy SortField, order Order) (Predicate, bool) {
	if raw == "" || orderBy == SortTitle {
		return nil, false
	}
	ts, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return nil, false
	}
	if order == OrderAsc {
		return CursorAfter{Field: orderBy, Value: ts}, true
	}
	return CursorBefore{Field: orderBy, Value: ts}, true
}

// cursorValue stringifies the orderBy field of the last returned row.
func cursorValue(t *Task, orderBy SortField) string {
	switch orderBy {
	case SortUpdatedAt:
		return t.UpdatedAt.UTC().Format(time.RFC3339Nano)
	case SortTitle:
		return t.Title
	default:
		return t.CreatedAt.UTC().Format(time.RFC3339Nano)
	}
}
