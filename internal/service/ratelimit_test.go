package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
)

type fakeCounter struct {
	counts  map[string]int64
	expires map[string]int
	incrErr error
}

func newFakeCounter() *fakeCounter {
	return &fakeCounter{counts: make(map[string]int64), expires: make(map[string]int)}
}

func (f *fakeCounter) Incr(_ context.Context, key string) (int64, error) {
	if f.incrErr != nil {
		return 0, f.incrErr
	}
	f.counts[key]++
	return f.counts[key], nil
}

func (f *fakeCounter) Expire(_ context.Context, key string, _ time.Duration) error {
	f.expires[key]++
	return nil
}

func TestRateLimiter_AllowsLimitThenRejects(t *testing.T) {
	t.Parallel()

	counter := newFakeCounter()
	limiter := NewRateLimiter(counter, 3, time.Minute, zap.NewNop())

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		if !limiter.Allow(ctx, "signin:1.2.3.4") {
			t.Fatalf("attempt %d within limit rejected", i+1)
		}
	}
	if limiter.Allow(ctx, "signin:1.2.3.4") {
		t.Fatal("attempt over limit allowed")
	}
	if limiter.Allow(ctx, "signin:1.2.3.4") {
		t.Fatal("attempt over limit allowed")
	}

	// a different key has its own window
	if !limiter.Allow(ctx, "signin:5.6.7.8") {
		t.Fatal("unrelated key rejected")
	}
}

func TestRateLimiter_ExpireSetOnFirstHitOnly(t *testing.T) {
	t.Parallel()

	counter := newFakeCounter()
	limiter := NewRateLimiter(counter, 10, time.Minute, zap.NewNop())

	ctx := context.Background()
	for i := 0; i < 5; i++ {
		limiter.Allow(ctx, "signin:1.2.3.4")
	}

	if got := counter.expires["ratelimit:signin:1.2.3.4"]; got != 1 {
		t.Fatalf("expire called %d times, want once", got)
	}
}

func TestRateLimiter_FailsOpenWithoutCounter(t *testing.T) {
	t.Parallel()

	var limiter *RateLimiter
	if !limiter.Allow(context.Background(), "signin:any") {
		t.Fatal("nil limiter should allow")
	}

	limiter = NewRateLimiter(nil, 5, time.Minute, zap.NewNop())
	for i := 0; i < 20; i++ {
		if !limiter.Allow(context.Background(), "signin:any") {
			t.Fatal("disabled limiter should allow everything")
		}
	}
}

func TestRateLimiter_FailsOpenOnCounterError(t *testing.T) {
	t.Parallel()

	counter := newFakeCounter()
	counter.incrErr = errors.New("connection refused")
	limiter := NewRateLimiter(counter, 1, time.Minute, zap.NewNop())

	for i := 0; i < 5; i++ {
		if !limiter.Allow(context.Background(), "signin:any") {
			t.Fatal("unreachable counter must not reject")
		}
	}
}
