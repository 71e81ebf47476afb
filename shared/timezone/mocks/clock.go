package mocks

import (
	"sync"
	"time"

	"comanda/shared/timezone"
)

// Clock is a settable timezone.Clock.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

// Now implements timezone.Clock.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.now
}

func (c *Clock) Set(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = now
}

func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = c.now.Add(d)
}

func NewClock(now time.Time) *Clock {
	return &Clock{now: now}
}

var _ timezone.Clock = (*Clock)(nil)
