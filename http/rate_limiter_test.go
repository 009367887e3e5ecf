package http

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newFakeClockLimiter(capacity int, refill time.Duration) (*RateLimiter, *time.Time) {
	now := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(capacity, refill)
	rl.now = func() time.Time { return now }
	return rl, &now
}

func TestRateLimiter_RefillsAfterWindow(t *testing.T) {
	rl, now := newFakeClockLimiter(2, time.Minute)
	defer rl.Stop()

	assert.True(t, rl.Allow("10.0.0.1"))
	assert.True(t, rl.Allow("10.0.0.1"))
	assert.False(t, rl.Allow("10.0.0.1"))
	assert.True(t, rl.Allow("10.0.0.2"), "buckets are per client")

	*now = now.Add(30 * time.Second)
	assert.Equal(t, 30*time.Second, rl.RetryAfter("10.0.0.1"))
	assert.False(t, rl.Allow("10.0.0.1"))

	*now = now.Add(30 * time.Second)
	assert.True(t, rl.Allow("10.0.0.1"))
}

func TestRateLimiter_CleanupDropsIdleClients(t *testing.T) {
	rl, now := newFakeClockLimiter(1, time.Minute)
	defer rl.Stop()

	rl.Allow("idle")
	*now = now.Add(2 * time.Hour)
	rl.Allow("active")
	rl.cleanup()

	rl.mu.Lock()
	defer rl.mu.Unlock()
	assert.NotContains(t, rl.clients, "idle")
	assert.Contains(t, rl.clients, "active")
}

func TestRateLimiter_StopTwice(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)
	rl.Stop()
	assert.NotPanics(t, rl.Stop)
}
