package backend

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiter_AllowsBurst(t *testing.T) {
	rl := NewRateLimiter(1, 3)
	for i := 0; i < 3; i++ {
		assert.True(t, rl.Allow(), "request %d", i)
	}
	assert.False(t, rl.Allow())
}

func TestRateLimiter_RecordRateLimitBlocks(t *testing.T) {
	rl := NewRateLimiter(100, 10)
	rl.RecordRateLimit(time.Hour)
	assert.False(t, rl.Allow())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := rl.Wait(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRateLimiter_DefaultBackoff(t *testing.T) {
	rl := NewRateLimiter(100, 10)
	before := time.Now()
	rl.RecordRateLimit(0)

	rl.mu.Lock()
	retryAt := rl.retryAt
	rl.mu.Unlock()
	assert.WithinDuration(t, before.Add(DefaultRetryAfter), retryAt, time.Second)
}

func TestRateLimiter_WaitPassesAfterBackoff(t *testing.T) {
	rl := NewRateLimiter(100, 10)
	rl.RecordRateLimit(10 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, rl.Wait(ctx))
}
