package memory

import (
	"context"
	"sync"
	"time"
)

type window struct {
	failures int
	resetAt  time.Time
}

// LoginThrottle is a fixed-window failure counter held in process memory.
type LoginThrottle struct {
	mu          sync.Mutex
	maxFailures int
	period      time.Duration
	now         func() time.Time
	windows     map[string]*window
}

func NewLoginThrottle(maxFailures int, period time.Duration) *LoginThrottle {
	return &LoginThrottle{
		maxFailures: maxFailures,
		period:      period,
		now:         time.Now,
		windows:     make(map[string]*window),
	}
}

func (t *LoginThrottle) Blocked(_ context.Context, key string) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	w := t.current(key)
	return w != nil && t.maxFailures > 0 && w.failures >= t.maxFailures, nil
}

func (t *LoginThrottle) RecordFailure(_ context.Context, key string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	w := t.current(key)
	if w == nil {
		w = &window{resetAt: t.now().Add(t.period)}
		t.windows[key] = w
	}
	w.failures++
	return nil
}

func (t *LoginThrottle) Reset(_ context.Context, key string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	delete(t.windows, key)
	return nil
}

// current drops a lapsed window. Must be called with mu held.
func (t *LoginThrottle) current(key string) *window {
	w, ok := t.windows[key]
	if !ok {
		return nil
	}
	if !t.now().Before(w.resetAt) {
		delete(t.windows, key)
		return nil
	}
	return w
}
