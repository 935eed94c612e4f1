// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package limiter

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcquireBoundsConcurrency(t *testing.T) {
	l := New(2, 0)
	ctx := context.Background()

	var inFlight, peak int64
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			require.NoError(t, l.Acquire(ctx))
			defer l.Release()

			n := atomic.AddInt64(&inFlight, 1)
			for {
				p := atomic.LoadInt64(&peak)
				if n <= p || atomic.CompareAndSwapInt64(&peak, p, n) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			atomic.AddInt64(&inFlight, -1)
		}()
	}
	wg.Wait()

	assert.LessOrEqual(t, atomic.LoadInt64(&peak), int64(2))
}

func TestWaitSpacesRequests(t *testing.T) {
	l := New(1, 30*time.Millisecond)
	ctx := context.Background()

	start := time.Now()
	require.NoError(t, l.Wait(ctx))
	require.NoError(t, l.Wait(ctx))
	require.NoError(t, l.Wait(ctx))

	assert.GreaterOrEqual(t, time.Since(start), 60*time.Millisecond)
}

func TestWaitHonorsContextCancellation(t *testing.T) {
	l := New(1, time.Hour)
	ctx, cancel := context.WithCancel(context.Background())

	require.NoError(t, l.Wait(ctx))
	cancel()
	assert.Error(t, l.Wait(ctx))
}

func TestNopLimiterNeverBlocks(t *testing.T) {
	l := NewNop()
	ctx := context.Background()

	start := time.Now()
	for i := 0; i < 100; i++ {
		require.NoError(t, l.Acquire(ctx))
		require.NoError(t, l.Wait(ctx))
	}
	for i := 0; i < 100; i++ {
		l.Release()
	}
	assert.Less(t, time.Since(start), time.Second)
}

func TestNewDefaultsInvalidConcurrency(t *testing.T) {
	l := New(0, 0)
	require.NoError(t, l.Acquire(context.Background()))
	l.Release()
}
