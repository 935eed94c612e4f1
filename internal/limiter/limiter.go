// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package limiter bounds outbound request concurrency and spacing.
//
// A single Limiter is constructed at process startup and injected into
// every component that performs network I/O, so the whole process obeys
// one concurrency cap and one inter-request interval no matter how many
// searches run at once.
package limiter

import (
	"context"
	"time"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

const defaultMaxConcurrent = 3

// Limiter combines a capacity limiter (at most K operations in flight)
// with a token bucket (minimum spacing between operations). Both halves
// are safe for concurrent use.
type Limiter struct {
	sem    *semaphore.Weighted
	bucket *rate.Limiter
}

// New returns a Limiter admitting at most maxConcurrent concurrent
// operations spaced at least interval apart. A non-positive
// maxConcurrent falls back to the default (3); a non-positive interval
// disables spacing.
func New(maxConcurrent int, interval time.Duration) *Limiter {
	if maxConcurrent <= 0 {
		maxConcurrent = defaultMaxConcurrent
	}
	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}
	return &Limiter{
		sem:    semaphore.NewWeighted(int64(maxConcurrent)),
		bucket: rate.NewLimiter(limit, 1),
	}
}

// NewNop returns a limiter that admits everything immediately. Tests
// substitute it to avoid real waits.
func NewNop() *Limiter {
	return &Limiter{
		sem:    semaphore.NewWeighted(int64(1 << 30)),
		bucket: rate.NewLimiter(rate.Inf, 1),
	}
}

// Acquire claims a concurrency slot, blocking until one is free or the
// context is cancelled. Every successful Acquire must be paired with a
// Release.
func (l *Limiter) Acquire(ctx context.Context) error {
	return l.sem.Acquire(ctx, 1)
}

// Release returns a concurrency slot claimed by Acquire.
func (l *Limiter) Release() {
	l.sem.Release(1)
}

// Wait blocks until the token bucket permits the next request or the
// context is cancelled.
func (l *Limiter) Wait(ctx context.Context) error {
	return l.bucket.Wait(ctx)
}
