package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newThrottleWithServer(t *testing.T, maxFailures int) (*LoginThrottle, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewLoginThrottle(client, maxFailures, 15, zap.NewNop()), mr
}

func TestThrottleBlocksAfterLimit(t *testing.T) {
	throttle, _ := newThrottleWithServer(t, 3)
	ctx := context.Background()

	assert.False(t, throttle.Blocked(ctx, "pastor1"))

	throttle.RecordFailure(ctx, "pastor1")
	throttle.RecordFailure(ctx, "pastor1")
	assert.False(t, throttle.Blocked(ctx, "pastor1"))

	throttle.RecordFailure(ctx, "pastor1")
	assert.True(t, throttle.Blocked(ctx, "pastor1"))

	// A different account is unaffected.
	assert.False(t, throttle.Blocked(ctx, "treasurer1"))
}

func TestThrottleResetClearsCounter(t *testing.T) {
	throttle, _ := newThrottleWithServer(t, 2)
	ctx := context.Background()

	throttle.RecordFailure(ctx, "pastor1")
	throttle.RecordFailure(ctx, "pastor1")
	assert.True(t, throttle.Blocked(ctx, "pastor1"))

	throttle.Reset(ctx, "pastor1")
	assert.False(t, throttle.Blocked(ctx, "pastor1"))
}

func TestThrottleLockoutWindowExpires(t *testing.T) {
	throttle, mr := newThrottleWithServer(t, 1)
	ctx := context.Background()

	throttle.RecordFailure(ctx, "pastor1")
	assert.True(t, throttle.Blocked(ctx, "pastor1"))

	mr.FastForward(16 * time.Minute)
	assert.False(t, throttle.Blocked(ctx, "pastor1"))
}

func TestThrottleNilClientIsNoop(t *testing.T) {
	throttle := NewLoginThrottle(nil, 1, 1, zap.NewNop())
	ctx := context.Background()

	throttle.RecordFailure(ctx, "pastor1")
	assert.False(t, throttle.Blocked(ctx, "pastor1"))

	// Nil receiver must also be safe; the service is built this way when
	// throttling is disabled.
	var disabled *LoginThrottle
	disabled.RecordFailure(ctx, "pastor1")
	disabled.Reset(ctx, "pastor1")
	assert.False(t, disabled.Blocked(ctx, "pastor1"))
}
