package service

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const throttleKeyPrefix = "login_failures:"

// LoginThrottle counts failed login attempts per account in Redis and blocks
// further attempts inside the lockout window once the limit is hit. It is
// best-effort: a Redis outage never blocks a legitimate login.
type LoginThrottle struct {
	client *redis.Client
	limit  int
	window time.Duration
	logger *zap.Logger
}

// NewLoginThrottle builds a throttle. A nil client disables throttling.
func NewLoginThrottle(client *redis.Client, maxFailures, lockoutMinutes int, logger *zap.Logger) *LoginThrottle {
	if maxFailures <= 0 {
		maxFailures = 10
	}
	if lockoutMinutes <= 0 {
		lockoutMinutes = 15
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LoginThrottle{
		client: client,
		limit:  maxFailures,
		window: time.Duration(lockoutMinutes) * time.Minute,
		logger: logger,
	}
}

// Blocked reports whether the account is inside a lockout window.
func (t *LoginThrottle) Blocked(ctx context.Context, userID string) bool {
	if t == nil || t.client == nil {
		return false
	}
	count, err := t.client.Get(ctx, throttleKeyPrefix+userID).Int()
	if err != nil {
		if err != redis.Nil {
			t.logger.Debug("throttle lookup failed", zap.Error(err))
		}
		return false
	}
	return count >= t.limit
}

// RecordFailure bumps the failure counter, starting the lockout window on the
// first failure.
func (t *LoginThrottle) RecordFailure(ctx context.Context, userID string) {
	if t == nil || t.client == nil {
		return
	}
	key := throttleKeyPrefix + userID
	count, err := t.client.Incr(ctx, key).Result()
	if err != nil {
		t.logger.Debug("throttle increment failed", zap.Error(err))
		return
	}
	if count == 1 {
		if err := t.client.Expire(ctx, key, t.window).Err(); err != nil {
			t.logger.Debug("throttle expire failed", zap.Error(err))
		}
	}
}

// Reset clears the failure counter after a successful login.
func (t *LoginThrottle) Reset(ctx context.Context, userID string) {
	if t == nil || t.client == nil {
		return
	}
	if err := t.client.Del(ctx, throttleKeyPrefix+userID).Err(); err != nil {
		t.logger.Debug("throttle reset failed", zap.Error(err))
	}
}
