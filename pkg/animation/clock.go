package animation

import (
	"sync/atomic"
	"time"
)

// Clock is a source of wall time. LoopClock stamps its frames with it, and
// chart files without a reference date resolve calendar scopes against it.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// clockBox gives atomic.Pointer a concrete type to hold.
type clockBox struct{ Clock }

var wallClock atomic.Pointer[clockBox]

func init() {
	wallClock.Store(&clockBox{systemClock{}})
}

// SetClock installs c as the wall clock and returns the clock it replaced,
// for restoring in test cleanup. Pass nil to go back to system time. Safe
// to call while a LoopClock is running.
func SetClock(c Clock) Clock {
	if c == nil {
		c = systemClock{}
	}
	return wallClock.Swap(&clockBox{c}).Clock
}

// Now reads the installed wall clock.
func Now() time.Time { return wallClock.Load().Now() }
