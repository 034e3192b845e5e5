package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// AttemptCounter is the slice of Redis the limiter needs.
type AttemptCounter interface {
	Incr(ctx context.Context, key string) (int64, error)
	Expire(ctx context.Context, key string, ttl time.Duration) error
}

// RateLimiter throttles login attempts with a fixed window counter. It
// fails open: when the counter is absent or unreachable every attempt is
// allowed, so an outage of the throttle never locks users out.
type RateLimiter struct {
	counter AttemptCounter
	logger  *zap.Logger
	limit   int
	window  time.Duration
}

// NewRateLimiter builds the limiter. A nil counter disables it.
func NewRateLimiter(counter AttemptCounter, limit int, window time.Duration, logger *zap.Logger) *RateLimiter {
	return &RateLimiter{counter: counter, logger: logger, limit: limit, window: window}
}

// Allow records an attempt under key and reports whether it is within the
// window limit. The window starts on the first attempt for the key.
func (l *RateLimiter) Allow(ctx context.Context, key string) bool {
	if l == nil || l.counter == nil || l.limit <= 0 {
		return true
	}

	counterKey := fmt.Sprintf("ratelimit:%s", key)
	count, err := l.counter.Incr(ctx, counterKey)
	if err != nil {
		l.logger.Warn("rate limiter unavailable, allowing request", zap.Error(err))
		return true
	}
	if count == 1 {
		if err := l.counter.Expire(ctx, counterKey, l.window); err != nil {
			l.logger.Warn("rate limiter expire failed", zap.Error(err))
		}
	}
	return count <= int64(l.limit)
}
