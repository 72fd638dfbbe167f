package binder_test

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskhub/taskhub/pkg/binder"
)

type payload struct {
	Title string `json:"title"`
}

func TestJSON(t *testing.T) {
	t.Run("decodes valid body", func(t *testing.T) {
		r := httptest.NewRequest("POST", "/", strings.NewReader(`{"title":"hello"}`))
		r.Header.Set("Content-Type", "application/json")

		var p payload
		require.NoError(t, binder.JSON(r, &p))
		assert.Equal(t, "hello", p.Title)
	})

	t.Run("accepts charset parameter", func(t *testing.T) {
		r := httptest.NewRequest("POST", "/", strings.NewReader(`{"title":"hello"}`))
		r.Header.Set("Content-Type", "application/json; charset=utf-8")

		var p payload
		assert.NoError(t, binder.JSON(r, &p))
	})

	t.Run("rejects missing content type", func(t *testing.T) {
		r := httptest.NewRequest("POST", "/", strings.NewReader(`{}`))
		var p payload
		assert.ErrorIs(t, binder.JSON(r, &p), binder.ErrMissingContentType)
	})

	t.Run("rejects wrong media type", func(t *testing.T) {
		r := httptest.NewRequest("POST", "/", strings.NewReader(`{}`))
		r.Header.Set("Content-Type", "text/plain")
		var p payload
		assert.ErrorIs(t, binder.JSON(r, &p), binder.ErrUnsupportedMediaType)
	})

	t.Run("rejects empty body", func(t *testing.T) {
		r := httptest.NewRequest("POST", "/", strings.NewReader(""))
		r.Header.Set("Content-Type", "application/json")
		var p payload
		assert.ErrorIs(t, binder.JSON(r, &p), binder.ErrFailedToParseJSON)
	})

	t.Run("rejects trailing data", func(t *testing.T) {
		r := httptest.NewRequest("POST", "/", strings.NewReader(`{"title":"a"}{"title":"b"}`))
		r.Header.Set("Content-Type", "application/json")
		var p payload
		assert.ErrorIs(t, binder.JSON(r, &p), binder.ErrFailedToParseJSON)
	})

	t.Run("ignores unknown fields", func(t *testing.T) {
		r := httptest.NewRequest("POST", "/", strings.NewReader(`{"title":"a","extra":1}`))
		r.Header.Set("Content-Type", "application/json")
		var p payload
		assert.NoError(t, binder.JSON(r, &p))
		assert.Equal(t, "a", p.Title)
	})
}
