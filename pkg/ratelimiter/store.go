package ratelimiter

import (
	"context"
	"time"
)

// Store is the interface for rate limit storage backends.
type Store interface {
	// ConsumeTokens attempts to consume tokens from the bucket identified
	// by key. A negative remaining count means the request must be denied.
	ConsumeTokens(ctx context.Context, key string, tokens int, config Config) (remaining int, resetAt time.Time, err error)

	// Reset clears the rate limit state for the given key.
	Reset(ctx context.Context, key string) error
}
