package testing

import (
	"sync"
	"time"
)

// Epoch is the wall time every FakeClock starts at, a Monday.
var Epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// FakeClock is the wall clock a ChartTester installs with animation.SetClock.
// It only moves when the tester pumps, so calendar scopes resolved against
// the current date and LoopClock timestamps stay reproducible.
// All methods are safe for concurrent use.
type FakeClock struct {
	mu    sync.Mutex
	epoch time.Time
	now   time.Time
}

// NewFakeClock returns a FakeClock at Epoch.
func NewFakeClock() *FakeClock {
	return &FakeClock{epoch: Epoch, now: Epoch}
}

// Now returns the current fake time.
func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Elapsed returns the time advanced since the epoch or the last Set.
func (c *FakeClock) Elapsed() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now.Sub(c.epoch)
}

// Advance moves the clock forward by d. Negative steps are ignored.
func (c *FakeClock) Advance(d time.Duration) {
	if d <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Set jumps to t and makes it the new epoch.
func (c *FakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.epoch, c.now = t, t
}
