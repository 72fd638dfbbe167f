package jwt_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskhub/taskhub/pkg/jwt"
)

type testClaims struct {
	Subject   string `json:"sub"`
	ExpiresAt int64  `json:"exp,omitempty"`
}

func (c testClaims) Valid() error {
	if c.ExpiresAt > 0 && time.Now().Unix() > c.ExpiresAt {
		return jwt.ErrExpiredToken
	}
	return nil
}

func TestService_SignParse(t *testing.T) {
	svc, err := jwt.NewFromString("test-signing-key-that-is-long-enough")
	require.NoError(t, err)

	t.Run("round trip", func(t *testing.T) {
		token, err := svc.Sign(testClaims{Subject: "user-1"})
		require.NoError(t, err)
		assert.Len(t, strings.Split(token, "."), 3)

		var parsed testClaims
		require.NoError(t, svc.Parse(token, &parsed))
		assert.Equal(t, "user-1", parsed.Subject)
	})

	t.Run("rejects tampered payload", func(t *testing.T) {
		token, err := svc.Sign(testClaims{Subject: "user-1"})
		require.NoError(t, err)

		parts := strings.Split(token, ".")
		parts[1] = parts[1][:len(parts[1])-2] + "xx"
		tampered := strings.Join(parts, ".")

		var parsed testClaims
		assert.ErrorIs(t, svc.Parse(tampered, &parsed), jwt.ErrInvalidSignature)
	})

	t.Run("rejects token signed with a different key", func(t *testing.T) {
		other, err := jwt.NewFromString("another-signing-key-also-long-enough")
		require.NoError(t, err)

		token, err := other.Sign(testClaims{Subject: "user-1"})
		require.NoError(t, err)

		var parsed testClaims
		assert.ErrorIs(t, svc.Parse(token, &parsed), jwt.ErrInvalidSignature)
	})

	t.Run("rejects malformed token", func(t *testing.T) {
		var parsed testClaims
		assert.ErrorIs(t, svc.Parse("not-a-token", &parsed), jwt.ErrInvalidToken)
		assert.ErrorIs(t, svc.Parse("a.b", &parsed), jwt.ErrInvalidToken)
	})

	t.Run("rejects expired claims", func(t *testing.T) {
		token, err := svc.Sign(testClaims{
			Subject:   "user-1",
			ExpiresAt: time.Now().Add(-time.Minute).Unix(),
		})
		require.NoError(t, err)

		var parsed testClaims
		assert.ErrorIs(t, svc.Parse(token, &parsed), jwt.ErrExpiredToken)
	})

	t.Run("rejects empty signing key", func(t *testing.T) {
		_, err := jwt.NewFromString("")
		assert.ErrorIs(t, err, jwt.ErrMissingSigningKey)
	})
}
