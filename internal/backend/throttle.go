package backend

import (
	"context"
	"sync"
	"time"
)

// throttle spaces directory rescans at least interval apart, so a stream of
// writes to one large file cannot turn into a rescan per debounce tick.
type throttle struct {
	interval time.Duration

	mu   sync.Mutex
	last time.Time
}

func newThrottle(interval time.Duration) *throttle {
	return &throttle{interval: interval}
}

// wait blocks until interval has passed since the previous call returned.
// It reports false when ctx is cancelled first.
func (t *throttle) wait(ctx context.Context) bool {
	if t == nil || t.interval <= 0 {
		return ctx.Err() == nil
	}
	t.mu.Lock()
	var remaining time.Duration
	if !t.last.IsZero() {
		remaining = t.interval - time.Since(t.last)
	}
	t.mu.Unlock()
	if remaining > 0 {
		timer := time.NewTimer(remaining)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return false
		case <-timer.C:
		}
	}
	t.mu.Lock()
	t.last = time.Now()
	t.mu.Unlock()
	return true
}
