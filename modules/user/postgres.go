package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStorage persists users in the users table.
type PostgresStorage struct {
	pool *pgxpool.Pool
}

// NewPostgresStorage creates a postgres-backed user storage.
func NewPostgresStorage(pool *pgxpool.Pool) *PostgresStorage {
	return &PostgresStorage{pool: pool}
}

const uniqueViolation = "23505"

func (s *PostgresStorage) Create(ctx context.Context, u *User) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO users (id, name, email, password_digest, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		u.ID, u.Name, u.Email, u.Digest, u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrEmailTaken
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (s *PostgresStorage) FindByID(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.scanOne(s.pool.QueryRow(ctx, `
		SELECT id, name, email, password_digest, created_at, updated_at
		FROM users WHERE id = $1`, id))
}

func (s *PostgresStorage) FindByEmail(ctx context.Context, email string) (*User, error) {
	return s.scanOne(s.pool.QueryRow(ctx, `
		SELECT id, name, email, password_digest, created_at, updated_at
		FROM users WHERE email = $1`, email))
}

func (s *PostgresStorage) Update(ctx context.Context, u *User) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE users
		SET name = $2, email = $3, password_digest = $4, updated_at = $5
		WHERE id = $1`,
		u.ID, u.Name, u.Email, u.Digest, u.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrEmailTaken
		}
		return fmt.Errorf("update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (s *PostgresStorage) scanOne(row pgx.Row) (*User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Digest, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &u, nil
}
