package cj_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tanguy-kabore/cjdropshipping-api/internal/cj"
)

func TestRateLimiter_Wait(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		rate    float64
		burst   int
		daily   int64
		calls   int
		wantErr bool
	}{
		{
			name:  "allows calls within rate",
			rate:  100,
			burst: 10,
			daily: 5000,
			calls: 3,
		},
		{
			name:  "allows burst",
			rate:  100,
			burst: 5,
			daily: 5000,
			calls: 5,
		},
		{
			name:    "rejects when daily limit reached",
			rate:    100,
			burst:   10,
			daily:   2,
			calls:   3,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rl := cj.NewRateLimiter(tt.rate, tt.burst, tt.daily)

			var lastErr error
			for range tt.calls {
				lastErr = rl.Wait(context.Background())
				if lastErr != nil {
					break
				}
			}

			if tt.wantErr {
				require.Error(t, lastErr)
				assert.ErrorIs(t, lastErr, cj.ErrDailyLimitReached)
			} else {
				require.NoError(t, lastErr)
			}
		})
	}
}

func TestRateLimiter_DailyCountAndRemaining(t *testing.T) {
	t.Parallel()

	rl := cj.NewRateLimiter(100, 10, 5000)

	assert.Equal(t, int64(0), rl.DailyCount())
	assert.Equal(t, int64(5000), rl.Remaining())

	require.NoError(t, rl.Wait(context.Background()))
	assert.Equal(t, int64(1), rl.DailyCount())
	assert.Equal(t, int64(4999), rl.Remaining())

	require.NoError(t, rl.Wait(context.Background()))
	assert.Equal(t, int64(2), rl.DailyCount())
}

func TestRateLimiter_WindowReset(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)
	var mu sync.Mutex
	currentTime := now

	rl := cj.NewRateLimiter(
		100, 10, 5000,
		cj.WithRateLimiterNowFunc(func() time.Time {
			mu.Lock()
			defer mu.Unlock()
			return currentTime
		}),
	)

	require.NoError(t, rl.Wait(context.Background()))
	require.NoError(t, rl.Wait(context.Background()))
	assert.Equal(t, int64(2), rl.DailyCount())
	assert.Equal(t, now.Add(24*time.Hour), rl.ResetAt())

	// Advance past the 24-hour window.
	mu.Lock()
	currentTime = now.Add(24*time.Hour + time.Minute)
	mu.Unlock()

	// Counter resets on the next call.
	require.NoError(t, rl.Wait(context.Background()))
	assert.Equal(t, int64(1), rl.DailyCount())
}

func TestRateLimiter_ConcurrentCallsRespectDailyLimit(t *testing.T) {
	t.Parallel()

	const limit = 5
	rl := cj.NewRateLimiter(1000, 100, limit)

	var wg sync.WaitGroup
	results := make(chan error, 20)
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- rl.Wait(context.Background())
		}()
	}
	wg.Wait()
	close(results)

	var admitted int64
	for err := range results {
		if err == nil {
			admitted++
		} else {
			assert.ErrorIs(t, err, cj.ErrDailyLimitReached)
		}
	}

	assert.Equal(t, int64(limit), admitted)
	assert.Equal(t, int64(limit), rl.DailyCount())
}

func TestRateLimiter_ContextCanceled(t *testing.T) {
	t.Parallel()

	// Very slow limiter, 1 per 10 seconds with burst 1.
	rl := cj.NewRateLimiter(0.1, 1, 5000)

	// First call uses the burst.
	require.NoError(t, rl.Wait(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := rl.Wait(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limiter wait")

	// A canceled wait does not consume daily quota.
	assert.Equal(t, int64(1), rl.DailyCount())
}
