package tetris

import (
	"sync"
	"time"
)

// Clock is a monotonic time source measured from an arbitrary origin.
type Clock interface {
	Now() time.Duration
}

type systemClock struct {
	start time.Time
}

// SystemClock returns a clock counting wall time from the moment of the call.
func SystemClock() Clock {
	return systemClock{start: time.Now()}
}

func (c systemClock) Now() time.Duration {
	return time.Since(c.start)
}

// ManualClock only moves when told to. It drives tests and headless
// simulations.
type ManualClock struct {
	mu  sync.Mutex
	now time.Duration
}

// Now returns the current reading.
func (c *ManualClock) Now() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now += d
	c.mu.Unlock()
}

// Set moves the clock to an absolute reading.
func (c *ManualClock) Set(now time.Duration) {
	c.mu.Lock()
	c.now = now
	c.mu.Unlock()
}
