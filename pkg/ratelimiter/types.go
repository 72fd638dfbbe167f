package ratelimiter

import "time"

// Result contains the outcome of a rate limit check.
type Result struct {
	Limit     int       // Maximum tokens (bucket capacity)
	Remaining int       // Tokens remaining; negative means denied
	ResetAt   time.Time // When tokens will next be refilled
}

// Allowed reports whether the request may proceed.
func (r *Result) Allowed() bool {
	return r.Remaining >= 0
}

// RetryAfter returns how long to wait before retrying, or 0 when allowed.
func (r *Result) RetryAfter() time.Duration {
	if r.Allowed() {
		return 0
	}
	return time.Until(r.ResetAt)
}

// Config defines the token bucket parameters.
type Config struct {
	Capacity       int           `env:"RATE_LIMIT_CAPACITY" envDefault:"100"`      // Capacity is the burst limit.
	RefillRate     int           `env:"RATE_LIMIT_REFILL_RATE" envDefault:"100"`   // RefillRate is tokens added per interval.
	RefillInterval time.Duration `env:"RATE_LIMIT_REFILL_INTERVAL" envDefault:"1m"` // RefillInterval is how often tokens are added.
	Enabled        bool          `env:"RATE_LIMIT_ENABLED" envDefault:"true"`      // Enabled turns the middleware on or off.
}

func (c Config) validate() error {
	if c.Capacity <= 0 {
		return ErrInvalidConfig
	}
	if c.RefillRate <= 0 {
		return ErrInvalidConfig
	}
	if c.RefillInterval <= 0 {
		return ErrInvalidConfig
	}
	return nil
}
