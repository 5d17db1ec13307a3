// Package ratelimit provides rate limiting for transcoded exchanges.
//
// The gateway buffers whole bodies in memory before transcoding, so an
// unbounded request rate translates directly into unbounded memory use when
// naive buffering is enabled. A local token bucket in front of the handler
// is the practical cap:
//
//	limiter := ratelimit.NewTokenBucket(100, 10)
//	h := httpgw.New(mux, httpgw.WithLimiter(limiter))
//
// Non-blocking check:
//
//	if limiter.Allow(ctx) {
//	    // Handle immediately
//	} else {
//	    // Rejected - respond 429
//	}
package ratelimit

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Limiter is the interface for rate limiters.
//
// All implementations must be safe for concurrent use.
type Limiter interface {
	// Allow returns true if an exchange can proceed right now.
	// This is a non-blocking check.
	Allow(ctx context.Context) bool

	// Wait blocks until an exchange is allowed or context is cancelled.
	// Returns context.Canceled or context.DeadlineExceeded if cancelled.
	Wait(ctx context.Context) error

	// Reserve returns a reservation for a future exchange.
	// The caller can check Delay() to know when the exchange can proceed.
	Reserve(ctx context.Context) Reservation
}

// Reservation represents a rate limit reservation.
type Reservation interface {
	// OK returns whether the reservation was successful.
	// If false, the rate limit is exhausted.
	OK() bool

	// Delay returns how long to wait before the exchange can proceed.
	// Returns 0 if it can proceed immediately.
	Delay() time.Duration

	// Cancel cancels the reservation, returning tokens for use by other
	// exchanges. Should be called if the exchange won't happen.
	Cancel()
}

// TokenBucket implements a local token bucket rate limiter on
// golang.org/x/time/rate. Suitable for per-instance limits; tokens refill
// at the configured rate and each exchange consumes one.
type TokenBucket struct {
	limiter *rate.Limiter
}

// NewTokenBucket creates a new token bucket rate limiter.
//
// Parameters:
//   - rps: exchanges per second (rate at which tokens are added)
//   - burst: maximum burst size (maximum tokens that can accumulate)
func NewTokenBucket(rps float64, burst int) *TokenBucket {
	return &TokenBucket{
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
	}
}

// Allow returns true if an exchange can proceed right now.
// Consumes one token if available.
func (t *TokenBucket) Allow(ctx context.Context) bool {
	return t.limiter.Allow()
}

// Wait blocks until an exchange is allowed or context is cancelled.
func (t *TokenBucket) Wait(ctx context.Context) error {
	return t.limiter.Wait(ctx)
}

// Reserve returns a reservation for a future exchange.
func (t *TokenBucket) Reserve(ctx context.Context) Reservation {
	return &tokenBucketReservation{r: t.limiter.Reserve()}
}

// SetLimit updates the rate limit dynamically.
func (t *TokenBucket) SetLimit(rps float64) {
	t.limiter.SetLimit(rate.Limit(rps))
}

// SetBurst updates the burst size dynamically.
func (t *TokenBucket) SetBurst(burst int) {
	t.limiter.SetBurst(burst)
}

// Limit returns the current rate limit (exchanges per second).
func (t *TokenBucket) Limit() float64 {
	return float64(t.limiter.Limit())
}

// Burst returns the current burst size.
func (t *TokenBucket) Burst() int {
	return t.limiter.Burst()
}

// tokenBucketReservation wraps rate.Reservation.
type tokenBucketReservation struct {
	r *rate.Reservation
}

func (r *tokenBucketReservation) OK() bool {
	return r.r.OK()
}

func (r *tokenBucketReservation) Delay() time.Duration {
	return r.r.Delay()
}

func (r *tokenBucketReservation) Cancel() {
	r.r.Cancel()
}

// Compile-time check
var _ Limiter = (*TokenBucket)(nil)
