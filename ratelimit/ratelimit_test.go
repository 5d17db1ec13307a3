package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestTokenBucketAllow(t *testing.T) {
	limiter := NewTokenBucket(0.001, 2)
	ctx := context.Background()

	if !limiter.Allow(ctx) {
		t.Error("expected first exchange to be allowed")
	}
	if !limiter.Allow(ctx) {
		t.Error("expected second exchange (within burst) to be allowed")
	}
	if limiter.Allow(ctx) {
		t.Error("expected third exchange to be rejected")
	}
}

func TestTokenBucketWaitCancelled(t *testing.T) {
	limiter := NewTokenBucket(0.001, 1)
	ctx := context.Background()

	// Exhaust the burst, then wait with an already-cancelled context.
	if !limiter.Allow(ctx) {
		t.Fatal("expected first exchange to be allowed")
	}
	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if err := limiter.Wait(cancelled); err == nil {
		t.Error("expected error from cancelled wait")
	}
}

func TestTokenBucketReserve(t *testing.T) {
	limiter := NewTokenBucket(100, 1)
	ctx := context.Background()

	res := limiter.Reserve(ctx)
	if !res.OK() {
		t.Fatal("expected reservation to succeed")
	}
	if res.Delay() != 0 {
		t.Errorf("expected immediate reservation, got delay %v", res.Delay())
	}

	// Second reservation must wait for the refill.
	res2 := limiter.Reserve(ctx)
	if !res2.OK() {
		t.Fatal("expected second reservation to succeed")
	}
	if res2.Delay() <= 0 {
		t.Error("expected second reservation to be delayed")
	}
	res2.Cancel()
}

func TestTokenBucketSetLimit(t *testing.T) {
	limiter := NewTokenBucket(1, 1)
	limiter.SetLimit(50)
	limiter.SetBurst(5)

	if limiter.Limit() != 50 {
		t.Errorf("expected limit 50, got %v", limiter.Limit())
	}
	if limiter.Burst() != 5 {
		t.Errorf("expected burst 5, got %d", limiter.Burst())
	}

	// The raised limit refills quickly enough to allow a prompt wait.
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := limiter.Wait(ctx); err != nil {
		t.Errorf("expected wait to succeed, got %v", err)
	}
}
