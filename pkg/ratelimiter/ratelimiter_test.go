package ratelimiter_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskhub/taskhub/pkg/ratelimiter"
)

func newBucket(t *testing.T, capacity int) *ratelimiter.Bucket {
	t.Helper()
	store := ratelimiter.NewMemoryStore(ratelimiter.WithCleanupInterval(0))
	t.Cleanup(store.Close)

	bucket, err := ratelimiter.NewBucket(store, ratelimiter.Config{
		Capacity:       capacity,
		RefillRate:     capacity,
		RefillInterval: time.Minute,
	})
	require.NoError(t, err)
	return bucket
}

func TestBucket_Allow(t *testing.T) {
	ctx := context.Background()

	t.Run("allows up to capacity", func(t *testing.T) {
		bucket := newBucket(t, 3)
		for i := 0; i < 3; i++ {
			result, err := bucket.Allow(ctx, "k")
			require.NoError(t, err)
			assert.True(t, result.Allowed(), "request %d", i)
		}

		result, err := bucket.Allow(ctx, "k")
		require.NoError(t, err)
		assert.False(t, result.Allowed())
		assert.Positive(t, result.RetryAfter())
	})

	t.Run("keys are independent", func(t *testing.T) {
		bucket := newBucket(t, 1)
		first, err := bucket.Allow(ctx, "a")
		require.NoError(t, err)
		assert.True(t, first.Allowed())

		second, err := bucket.Allow(ctx, "b")
		require.NoError(t, err)
		assert.True(t, second.Allowed())
	})

	t.Run("reset restores capacity", func(t *testing.T) {
		bucket := newBucket(t, 1)
		_, err := bucket.Allow(ctx, "k")
		require.NoError(t, err)

		require.NoError(t, bucket.Reset(ctx, "k"))

		result, err := bucket.Allow(ctx, "k")
		require.NoError(t, err)
		assert.True(t, result.Allowed())
	})

	t.Run("rejects non-positive token counts", func(t *testing.T) {
		bucket := newBucket(t, 1)
		_, err := bucket.AllowN(ctx, "k", 0)
		assert.ErrorIs(t, err, ratelimiter.ErrInvalidTokenCount)
	})

	t.Run("rejects invalid config", func(t *testing.T) {
		store := ratelimiter.NewMemoryStore(ratelimiter.WithCleanupInterval(0))
		defer store.Close()
		_, err := ratelimiter.NewBucket(store, ratelimiter.Config{})
		assert.ErrorIs(t, err, ratelimiter.ErrInvalidConfig)
	})
}

func TestMiddleware(t *testing.T) {
	bucket := newBucket(t, 1)
	handler := ratelimiter.Middleware(bucket, ratelimiter.KeyByIP)(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		}),
	)

	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "10.0.0.1:1234"

	w1 := httptest.NewRecorder()
	handler.ServeHTTP(w1, r)
	assert.Equal(t, http.StatusOK, w1.Code)
	assert.Equal(t, "1", w1.Header().Get("X-RateLimit-Limit"))

	w2 := httptest.NewRecorder()
	handler.ServeHTTP(w2, r)
	assert.Equal(t, http.StatusTooManyRequests, w2.Code)
	assert.Contains(t, w2.Body.String(), "Too many requests")
}

func TestKeyByIP(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "192.0.2.7:5555"
	assert.Equal(t, "192.0.2.7", ratelimiter.KeyByIP(r))

	r.Header.Set("X-Forwarded-For", "203.0.113.9, 192.0.2.7")
	assert.Equal(t, "203.0.113.9", ratelimiter.KeyByIP(r))
}
