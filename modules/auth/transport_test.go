package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskhub/taskhub/core"
	"github.com/taskhub/taskhub/modules/auth"
)

func TestBearerTransport_Extract(t *testing.T) {
	transport := auth.NewBearerTransport()

	t.Run("extracts bearer token", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/", nil)
		r.Header.Set("Authorization", "Bearer abc123")

		token, err := transport.Extract(r)
		require.NoError(t, err)
		assert.Equal(t, "abc123", token)
	})

	t.Run("scheme is case-insensitive", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/", nil)
		r.Header.Set("Authorization", "bearer abc123")

		token, err := transport.Extract(r)
		require.NoError(t, err)
		assert.Equal(t, "abc123", token)
	})

	t.Run("missing header", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/", nil)
		_, err := transport.Extract(r)
		assert.ErrorIs(t, err, core.ErrNoTokenProvided)
	})

	t.Run("wrong part count", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/", nil)
		r.Header.Set("Authorization", "abc123")

		_, err := transport.Extract(r)
		assert.ErrorIs(t, err, core.ErrTokenError)
	})

	t.Run("wrong scheme", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/", nil)
		r.Header.Set("Authorization", "Basic abc123")

		_, err := transport.Extract(r)
		assert.ErrorIs(t, err, core.ErrTokenMalformed)
	})
}

func TestCookieTransport(t *testing.T) {
	transport := auth.NewCookieTransport(false)

	t.Run("set then extract", func(t *testing.T) {
		w := httptest.NewRecorder()
		transport.Set(w, "abc123")

		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, auth.CookieName, cookies[0].Name)
		assert.Equal(t, "abc123", cookies[0].Value)
		assert.Equal(t, "/", cookies[0].Path)
		assert.True(t, cookies[0].HttpOnly)
		assert.Equal(t, http.SameSiteLaxMode, cookies[0].SameSite)

		r := httptest.NewRequest("GET", "/", nil)
		r.AddCookie(cookies[0])

		token, err := transport.Extract(r)
		require.NoError(t, err)
		assert.Equal(t, "abc123", token)
	})

	t.Run("secure mode hardens the cookie", func(t *testing.T) {
		secure := auth.NewCookieTransport(true)
		w := httptest.NewRecorder()
		secure.Set(w, "abc123")

		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.True(t, cookies[0].Secure)
		assert.Equal(t, http.SameSiteStrictMode, cookies[0].SameSite)
	})

	t.Run("clear expires the cookie", func(t *testing.T) {
		w := httptest.NewRecorder()
		transport.Clear(w)

		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Negative(t, cookies[0].MaxAge)
	})

	t.Run("missing cookie", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/", nil)
		_, err := transport.Extract(r)
		assert.ErrorIs(t, err, core.ErrNoTokenProvided)
	})
}

func TestCompositeTransport_Extract(t *testing.T) {
	transport := auth.DefaultTransport(false)

	t.Run("cookie wins over header", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/", nil)
		r.AddCookie(&http.Cookie{Name: auth.CookieName, Value: "from-cookie"})
		r.Header.Set("Authorization", "Bearer from-header")

		token, err := transport.Extract(r)
		require.NoError(t, err)
		assert.Equal(t, "from-cookie", token)
	})

	t.Run("falls back to header", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/", nil)
		r.Header.Set("Authorization", "Bearer from-header")

		token, err := transport.Extract(r)
		require.NoError(t, err)
		assert.Equal(t, "from-header", token)
	})

	t.Run("neither carrier present", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/", nil)
		_, err := transport.Extract(r)
		assert.ErrorIs(t, err, core.ErrNoTokenProvided)
	})

	t.Run("malformed header does not fall through", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/", nil)
		r.Header.Set("Authorization", "Basic abc")

		_, err := transport.Extract(r)
		assert.ErrorIs(t, err, core.ErrTokenMalformed)
	})
}
