package mcptool

import (
	"fmt"

	"golang.org/x/time/rate"
)

// RateLimiter is a token bucket shared by all tool calls on a server.
type RateLimiter struct {
	limiter *rate.Limiter
}

// NewRateLimiter creates a rate limiter with the given burst and refill rate
// in tokens per second. NewRateLimiter(10, 1.0) allows 10 calls at once and
// refills one per second. A non-positive refill rate never refills.
func NewRateLimiter(burst int, refillRate float64) *RateLimiter {
	return &RateLimiter{limiter: rate.NewLimiter(rate.Limit(max(refillRate, 0)), burst)}
}

// Allow reports whether a call may proceed, consuming one token.
func (r *RateLimiter) Allow() bool {
	return r.limiter.Allow()
}

// CheckRateLimit returns an error naming toolName when no token is available.
func (r *RateLimiter) CheckRateLimit(toolName string) error {
	if !r.Allow() {
		return fmt.Errorf("rate limit exceeded for tool %q, please wait before retrying", toolName)
	}
	return nil
}
