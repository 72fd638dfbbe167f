package auth

import (
	"time"

	"github.com/google/uuid"

	"github.com/taskhub/taskhub/core"
	"github.com/taskhub/taskhub/pkg/jwt"
)

// Config carries the token signing parameters. Injected at construction so
// no business logic reads the environment directly.
type Config struct {
	Secret   string        `env:"JWT_SECRET,required"`          // Secret signs session tokens; at least 32 bytes.
	TokenTTL time.Duration `env:"JWT_TOKEN_TTL" envDefault:"1h"` // TokenTTL is the token lifetime from issuance.
}

// Claims is the session token payload. A token asserts exactly one
// identity claim.
type Claims struct {
	UserID    string `json:"userId"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}

// Valid reports whether the temporal claims hold.
func (c Claims) Valid() error {
	if c.ExpiresAt > 0 && time.Now().Unix() > c.ExpiresAt {
		return jwt.ErrExpiredToken
	}
	return nil
}

// Service issues and verifies session tokens. Stateless: nothing is stored
// server-side and no revocation bookkeeping exists.
type Service struct {
	codec *jwt.Service
	ttl   time.Duration
}

// NewService creates a token service from cfg.
func NewService(cfg Config) (*Service, error) {
	codec, err := jwt.NewFromString(cfg.Secret)
	if err != nil {
		return nil, err
	}
	// Only an unset TTL falls back to the default. A negative TTL is
	// honored so already-expired tokens can be minted where needed.
	ttl := cfg.TokenTTL
	if ttl == 0 {
		ttl = time.Hour
	}
	return &Service{codec: codec, ttl: ttl}, nil
}

// Issue produces a signed token for userID with the configured lifetime.
func (s *Service) Issue(userID uuid.UUID) (string, error) {
	now := time.Now()
	return s.codec.Sign(Claims{
		UserID:    userID.String(),
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(s.ttl).Unix(),
	})
}

// Verify checks the signature and expiry of a raw credential and returns
// the subject. Forged, malformed, and expired tokens all collapse to
// core.ErrInvalidToken so the failure mode is not observable externally.
func (s *Service) Verify(raw string) (uuid.UUID, error) {
	var claims Claims
	if err := s.codec.Parse(raw, &claims); err != nil {
		return uuid.Nil, core.ErrInvalidToken
	}
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return uuid.Nil, core.ErrInvalidToken
	}
	return userID, nil
}

// TTL returns the configured token lifetime.
func (s *Service) TTL() time.Duration {
	return s.ttl
}
