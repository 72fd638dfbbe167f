package task

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStorage persists tasks in the tasks table.
type PostgresStorage struct {
	pool *pgxpool.Pool
}

// NewPostgresStorage creates a postgres-backed task storage.
func NewPostgresStorage(pool *pgxpool.Pool) *PostgresStorage {
	return &PostgresStorage{pool: pool}
}

const taskColumns = "id, title, description, completed, user_id, created_at, updated_at"

func (s *PostgresStorage) Create(ctx context.Context, t *Task) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO tasks (id, title, description, completed, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		t.ID, t.Title, t.Description, t.Completed, t.UserID, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert task: %w", err)
	}
	return nil
}

func (s *PostgresStorage) FindByID(ctx context.Context, id uuid.UUID) (*Task, error) {
	row := s.pool.QueryRow(ctx, "SELECT "+taskColumns+" FROM tasks WHERE id = $1", id)

	var t Task
	err := row.Scan(&t.ID, &t.Title, &t.Description, &t.Completed, &t.UserID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("scan task: %w", err)
	}
	return &t, nil
}

// sortColumns maps sort fields to columns. The predicate and order builders
// go through this map only, so no request-supplied string ever reaches SQL.
var sortColumns = map[SortField]string{
	SortCreatedAt: "created_at",
	SortUpdatedAt: "updated_at",
	SortTitle:     "title",
}

func (s *PostgresStorage) FindMany(ctx context.Context, q Query) ([]*Task, error) {
	var (
		conditions []string
		args       []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	for _, p := range q.Predicates {
		switch p := p.(type) {
		case OwnerIs:
			conditions = append(conditions, "user_id = "+arg(p.ID))
		case CompletedIs:
			conditions = append(conditions, "completed = "+arg(p.Value))
		case MatchesSearch:
			pattern := arg("%" + escapeLike(p.Term) + "%")
			conditions = append(conditions, fmt.Sprintf("(title ILIKE %s OR description ILIKE %s)", pattern, pattern))
		case CursorBefore:
			conditions = append(conditions, sortColumns[p.Field]+" < "+arg(p.Value))
		case CursorAfter:
			conditions = append(conditions, sortColumns[p.Field]+" > "+arg(p.Value))
		default:
			return nil, fmt.Errorf("unsupported predicate %T", p)
		}
	}

	direction := "DESC"
	if q.Order == OrderAsc {
		direction = "ASC"
	}

	query := "SELECT " + taskColumns + " FROM tasks"
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += fmt.Sprintf(" ORDER BY %s %s LIMIT %s", sortColumns[q.OrderBy], direction, arg(q.Limit))

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*Task
	for rows.Next() {
		var t Task
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.Completed, &t.UserID, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan task row: %w", err)
		}
		tasks = append(tasks, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate task rows: %w", err)
	}
	return tasks, nil
}

func (s *PostgresStorage) Update(ctx context.Context, t *Task) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE tasks
		SET title = $2, description = $3, completed = $4, updated_at = $5
		WHERE id = $1`,
		t.ID, t.Title, t.Description, t.Completed, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrTaskNotFound
	}
	return nil
}

func (s *PostgresStorage) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, "DELETE FROM tasks WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// escapeLike neutralizes LIKE wildcards so a search term matches literally.
func escapeLike(term string) string {
	replacer := strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)
	return replacer.Replace(term)
}
