package user_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskhub/taskhub/core"
	"github.com/taskhub/taskhub/modules/user"
)

func newService() *user.Service {
	return user.NewService(user.NewMemoryStorage(), user.WithBcryptCost(bcrypt.MinCost))
}

func TestService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("creates an account", func(t *testing.T) {
		svc := newService()

		u, err := svc.Register(ctx, "Alice", "alice@example.com", "secret1")
		require.NoError(t, err)
		assert.Equal(t, "Alice", u.Name)
		assert.Equal(t, "alice@example.com", u.Email)
		assert.NotEqual(t, uuid.Nil, u.ID)
		assert.NotEmpty(t, u.Digest)
		assert.NotEqual(t, "secret1", u.Digest)
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		svc := newService()

		_, err := svc.Register(ctx, "Alice", "alice@example.com", "secret1")
		require.NoError(t, err)

		_, err = svc.Register(ctx, "Another Alice", "alice@example.com", "secret2")
		var typed *core.Error
		require.ErrorAs(t, err, &typed)
		assert.Equal(t, 409, typed.Status)
		assert.Equal(t, "User with this email already exists", typed.Message)
	})
}

func TestService_Authenticate(t *testing.T) {
	ctx := context.Background()
	svc := newService()
	_, err := svc.Register(ctx, "Alice", "alice@example.com", "secret1")
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		u, err := svc.Authenticate(ctx, "alice@example.com", "secret1")
		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", u.Email)
	})

	t.Run("wrong password and unknown email are indistinguishable", func(t *testing.T) {
		_, errWrongPass := svc.Authenticate(ctx, "alice@example.com", "nope")
		_, errNoUser := svc.Authenticate(ctx, "bob@example.com", "secret1")

		var typedPass, typedUser *core.Error
		require.ErrorAs(t, errWrongPass, &typedPass)
		require.ErrorAs(t, errNoUser, &typedUser)
		assert.Equal(t, 401, typedPass.Status)
		assert.Equal(t, typedPass.Message, typedUser.Message)
		assert.Equal(t, "Invalid email or password", typedPass.Message)
	})
}

func TestService_UpdateProfile(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	alice, err := svc.Register(ctx, "Alice", "alice@example.com", "secret1")
	require.NoError(t, err)
	_, err = svc.Register(ctx, "Bob", "bob@example.com", "secret2")
	require.NoError(t, err)

	t.Run("partial update keeps untouched fields", func(t *testing.T) {
		name := "Alice Cooper"
		u, err := svc.UpdateProfile(ctx, alice.ID, user.ProfileUpdate{Name: &name})
		require.NoError(t, err)
		assert.Equal(t, "Alice Cooper", u.Name)
		assert.Equal(t, "alice@example.com", u.Email)
	})

	t.Run("email held by another account conflicts", func(t *testing.T) {
		email := "bob@example.com"
		_, err := svc.UpdateProfile(ctx, alice.ID, user.ProfileUpdate{Email: &email})
		var typed *core.Error
		require.ErrorAs(t, err, &typed)
		assert.Equal(t, 409, typed.Status)
		assert.Equal(t, "Email already in use", typed.Message)
	})

	t.Run("re-submitting own email is not a conflict", func(t *testing.T) {
		email := "alice@example.com"
		_, err := svc.UpdateProfile(ctx, alice.ID, user.ProfileUpdate{Email: &email})
		assert.NoError(t, err)
	})

	t.Run("unknown subject", func(t *testing.T) {
		_, err := svc.UpdateProfile(ctx, uuid.New(), user.ProfileUpdate{})
		var typed *core.Error
		require.ErrorAs(t, err, &typed)
		assert.Equal(t, 404, typed.Status)
		assert.Equal(t, "User not found", typed.Message)
	})
}

func TestService_ChangePassword(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	alice, err := svc.Register(ctx, "Alice", "alice@example.com", "secret1")
	require.NoError(t, err)

	t.Run("wrong current password", func(t *testing.T) {
		err := svc.ChangePassword(ctx, alice.ID, "nope", "newsecret")
		var typed *core.Error
		require.ErrorAs(t, err, &typed)
		assert.Equal(t, 401, typed.Status)
		assert.Equal(t, "Current password is incorrect", typed.Message)
	})

	t.Run("rotates the digest", func(t *testing.T) {
		require.NoError(t, svc.ChangePassword(ctx, alice.ID, "secret1", "newsecret"))

		_, err := svc.Authenticate(ctx, "alice@example.com", "secret1")
		assert.Error(t, err)

		_, err = svc.Authenticate(ctx, "alice@example.com", "newsecret")
		assert.NoError(t, err)
	})
}
