package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskhub/taskhub/core"
	"github.com/taskhub/taskhub/pkg/logger"
)

// ProfileUpdate carries the optional profile fields. A nil field is left
// unchanged.
type ProfileUpdate struct {
	Name  *string
	Email *string
}

// Service implements account operations over a Storage.
type Service struct {
	storage    Storage
	log        *slog.Logger
	bcryptCost int
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

// WithBcryptCost overrides the password hashing cost. Tests lower it to keep
// the suite fast.
func WithBcryptCost(cost int) Option {
	return func(s *Service) {
		if cost >= bcrypt.MinCost && cost <= bcrypt.MaxCost {
			s.bcryptCost = cost
		}
	}
}

// NewService creates a user service.
func NewService(storage Storage, opts ...Option) *Service {
	s := &Service{
		storage:    storage,
		log:        slog.Default(),
		bcryptCost: bcrypt.DefaultCost,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register creates an account. Email uniqueness is pre-checked so the
// conflict surfaces with the documented message even before the index does.
func (s *Service) Register(ctx context.Context, name, email, password string) (*User, error) {
	if _, err := s.storage.FindByEmail(ctx, email); err == nil {
		return nil, core.Conflict("User with this email already exists")
	} else if !errors.Is(err, ErrUserNotFound) {
		return nil, fmt.Errorf("register: lookup email: %w", err)
	}

	digest, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("register: hash password: %w", err)
	}

	now := time.Now().UTC()
	u := &User{
		ID:        uuid.New(),
		Name:      name,
		Email:     email,
		Digest:    string(digest),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.storage.Create(ctx, u); err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return nil, core.Conflict("User with this email already exists")
		}
		return nil, fmt.Errorf("register: create user: %w", err)
	}

	s.log.LogAttrs(ctx, slog.LevelInfo, "user registered",
		logger.UserID(u.ID.String()),
		logger.Event("user.registered"),
	)
	return u, nil
}

// Authenticate verifies credentials. Unknown email and wrong password both
// produce the same 401 so accounts cannot be enumerated.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*User, error) {
	u, err := s.storage.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, core.Unauthorized("Invalid email or password")
		}
		return nil, fmt.Errorf("authenticate: lookup email: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Digest), []byte(password)); err != nil {
		return nil, core.Unauthorized("Invalid email or password")
	}
	return u, nil
}

// Profile returns the account behind an authenticated subject. A verified
// token whose subject has since been deleted yields a 404.
func (s *Service) Profile(ctx context.Context, userID uuid.UUID) (*User, error) {
	u, err := s.storage.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, core.NotFound("User not found")
		}
		return nil, fmt.Errorf("profile: %w", err)
	}
	return u, nil
}

// UpdateProfile applies the provided fields. Changing the email to one held
// by another account is a conflict.
func (s *Service) UpdateProfile(ctx context.Context, userID uuid.UUID, update ProfileUpdate) (*User, error) {
	u, err := s.storage.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, core.NotFound("User not found")
		}
		return nil, fmt.Errorf("update profile: %w", err)
	}

	if update.Email != nil && *update.Email != u.Email {
		if other, err := s.storage.FindByEmail(ctx, *update.Email); err == nil && other.ID != userID {
			return nil, core.Conflict("Email already in use")
		} else if err != nil && !errors.Is(err, ErrUserNotFound) {
			return nil, fmt.Errorf("update profile: lookup email: %w", err)
		}
		u.Email = *update.Email
	}
	if update.Name != nil {
		u.Name = *update.Name
	}
	u.UpdatedAt = time.Now().UTC()

	if err := s.storage.Update(ctx, u); err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return nil, core.Conflict("Email already in use")
		}
		return nil, fmt.Errorf("update profile: save: %w", err)
	}
	return u, nil
}

// ChangePassword swaps the digest after verifying the current password.
func (s *Service) ChangePassword(ctx context.Context, userID uuid.UUID, current, newPassword string) error {
	u, err := s.storage.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return core.NotFound("User not found")
		}
		return fmt.Errorf("change password: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Digest), []byte(current)); err != nil {
		return core.Unauthorized("Current password is incorrect")
	}

	digest, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.bcryptCost)
	if err != nil {
		return fmt.Errorf("change password: hash: %w", err)
	}
	u.Digest = string(digest)
	u.UpdatedAt = time.Now().UTC()

	if err := s.storage.Update(ctx, u); err != nil {
		return fmt.Errorf("change password: save: %w", err)
	}

	s.log.LogAttrs(ctx, slog.LevelInfo, "password changed",
		logger.UserID(u.ID.String()),
		logger.Event("user.password_changed"),
	)
	return nil
}
