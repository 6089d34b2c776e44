package service

import (
	"sync"
	"time"

	"github.com/99minutos/journal-system/internal/core/ports"
)

var t0 = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock(at time.Time) *testClock {
	return &testClock{now: at}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type captureSink struct {
	mu     sync.Mutex
	events []ports.AuthEventInput
}

func (s *captureSink) Enqueue(e ports.AuthEventInput) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, e)
}

func (s *captureSink) Events() []ports.AuthEventInput {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]ports.AuthEventInput(nil), s.events...)
}
