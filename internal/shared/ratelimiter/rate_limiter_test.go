package ratelimiter

import (
	"sync"
	"testing"
	"time"
)

func TestNewRateLimiter(t *testing.T) {
	t.Parallel()

	rl := NewRateLimiter(10, time.Minute)

	if rl == nil {
		t.Fatal("expected non-nil rate limiter")
	}
	if rl.limit != 10 {
		t.Errorf("expected limit 10, got %d", rl.limit)
	}
	if rl.interval != time.Minute {
		t.Errorf("expected interval 1m, got %v", rl.interval)
	}
}

func TestRateLimiter_WaitIfNeeded_UnderLimit(t *testing.T) {
	t.Parallel()

	rl := NewRateLimiter(5, time.Minute)

	start := time.Now()
	for i := 0; i < 5; i++ {
		rl.WaitIfNeeded()
	}
	elapsed := time.Since(start)

	// Calls under the limit must not sleep
	if elapsed > 100*time.Millisecond {
		t.Errorf("expected no wait under the limit, waited %v", elapsed)
	}
}

func TestRateLimiter_WaitIfNeeded_OverLimit(t *testing.T) {
	t.Parallel()

	rl := NewRateLimiter(2, 200*time.Millisecond)

	start := time.Now()
	for i := 0; i < 3; i++ {
		rl.WaitIfNeeded()
	}
	elapsed := time.Since(start)

	// The third call exceeds the limit and must wait for the interval reset
	if elapsed < 100*time.Millisecond {
		t.Errorf("expected wait on limit breach, waited only %v", elapsed)
	}
}

func TestRateLimiter_WaitIfNeeded_ResetAfterInterval(t *testing.T) {
	t.Parallel()

	rl := NewRateLimiter(1, 50*time.Millisecond)

	rl.WaitIfNeeded()
	time.Sleep(60 * time.Millisecond)

	start := time.Now()
	rl.WaitIfNeeded()
	elapsed := time.Since(start)

	// The counter resets once the interval elapses, so no wait is needed
	if elapsed > 30*time.Millisecond {
		t.Errorf("expected no wait after interval reset, waited %v", elapsed)
	}
}

func TestRateLimiter_WaitIfNeeded_Concurrent(t *testing.T) {
	t.Parallel()

	rl := NewRateLimiter(100, time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rl.WaitIfNeeded()
		}()
	}
	wg.Wait()

	rl.mu.Lock()
	defer rl.mu.Unlock()
	if rl.count != 50 {
		t.Errorf("expected count 50, got %d", rl.count)
	}
}
