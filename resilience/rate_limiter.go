package resilience

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrRateLimited is returned by Execute when no token is available.
var ErrRateLimited = errors.New("rate limit exceeded")

// RateLimiterConfig configures a rate limiter.
type RateLimiterConfig struct {
	// Name identifies the limiter in logs.
	Name string `yaml:"name" mapstructure:"name"`
	// Rate is the number of tokens added per second.
	Rate float64 `yaml:"rate" mapstructure:"rate" validate:"gte=0"`
	// Burst is the bucket capacity.
	Burst int `yaml:"burst" mapstructure:"burst" validate:"gte=0"`
	// OnLimit is called whenever a caller has to wait or is refused.
	OnLimit func(name string) `yaml:"-" mapstructure:"-"`
}

// RateLimiter is a token bucket. The bucket starts full.
type RateLimiter struct {
	config RateLimiterConfig
	now    func() time.Time

	mu         sync.Mutex
	tokens     float64
	lastRefill time.Time
}

// NewRateLimiter creates a rate limiter. A non-positive Rate defaults to 10
// per second and a non-positive Burst to max(1, Rate).
func NewRateLimiter(config RateLimiterConfig) *RateLimiter {
	if config.Rate <= 0 {
		config.Rate = 10.0
	}
	if config.Burst <= 0 {
		config.Burst = max(1, int(config.Rate))
	}
	rl := &RateLimiter{config: config, now: time.Now}
	rl.tokens = float64(config.Burst)
	rl.lastRefill = rl.now()
	return rl
}

// Allow takes a token if one is available and reports whether it did.
func (rl *RateLimiter) Allow() bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.refill()
	if rl.tokens >= 1 {
		rl.tokens--
		return true
	}
	rl.limited()
	return false
}

// Wait blocks until a token is available or ctx ends. A token reserved for
// a caller whose ctx ends first is handed back to the bucket.
func (rl *RateLimiter) Wait(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	delay := rl.reserve()
	if delay <= 0 {
		return nil
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		rl.refund()
		return ctx.Err()
	}
}

// Execute runs fn if a token is available, else returns ErrRateLimited.
func (rl *RateLimiter) Execute(fn func() error) error {
	if !rl.Allow() {
		return ErrRateLimited
	}
	return fn()
}

// Tokens returns the tokens currently available. It is negative while
// callers are queued behind reservations.
func (rl *RateLimiter) Tokens() float64 {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.refill()
	return rl.tokens
}

// Name returns the configured limiter name.
func (rl *RateLimiter) Name() string {
	return rl.config.Name
}

// reserve takes a token, possibly going into debt, and returns how long the
// caller must wait before using it.
func (rl *RateLimiter) reserve() time.Duration {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.refill()
	rl.tokens--
	if rl.tokens >= 0 {
		return 0
	}
	rl.limited()
	return time.Duration(-rl.tokens / rl.config.Rate * float64(time.Second))
}

func (rl *RateLimiter) refund() {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.refill()
	rl.tokens = min(rl.tokens+1, float64(rl.config.Burst))
}

// refill adds the tokens earned since the last refill, capped at Burst.
func (rl *RateLimiter) refill() {
	now := rl.now()
	rl.tokens += now.Sub(rl.lastRefill).Seconds() * rl.config.Rate
	rl.lastRefill = now
	if rl.tokens > float64(rl.config.Burst) {
		rl.tokens = float64(rl.config.Burst)
	}
}

func (rl *RateLimiter) limited() {
	if rl.config.OnLimit != nil {
		rl.config.OnLimit(rl.config.Name)
	}
}
