package animation

import (
	"context"
	"sync"
	"time"
)

// FrameCallback receives the host timestamp of the frame being produced.
type FrameCallback func(now time.Duration)

// FrameHandle identifies a pending frame request.
type FrameHandle uint64

// FrameClock is the host clock: RequestFrame schedules cb to run once
// before the next frame, and CancelFrame withdraws a pending request.
// Implementations run at most one callback at a time.
type FrameClock interface {
	RequestFrame(cb FrameCallback) FrameHandle
	CancelFrame(h FrameHandle)
}

type frameRequest struct {
	handle FrameHandle
	cb     FrameCallback
}

// frameQueue is the pending-request bookkeeping shared by the clocks.
type frameQueue struct {
	mu      sync.Mutex
	next    FrameHandle
	pending []frameRequest
}

func (q *frameQueue) request(cb FrameCallback) FrameHandle {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.next++
	q.pending = append(q.pending, frameRequest{handle: q.next, cb: cb})
	return q.next
}

func (q *frameQueue) cancel(h FrameHandle) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for i, r := range q.pending {
		if r.handle == h {
			q.pending = append(q.pending[:i], q.pending[i+1:]...)
			return
		}
	}
}

// take removes and returns every pending request. Callbacks run after the
// lock is released, so they may request the next frame.
func (q *frameQueue) take() []frameRequest {
	q.mu.Lock()
	defer q.mu.Unlock()
	reqs := q.pending
	q.pending = nil
	return reqs
}

func (q *frameQueue) size() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// ManualClock is a FrameClock stepped explicitly with Advance. It is used
// by tests and by offline frame export.
type ManualClock struct {
	queue frameQueue
	mu    sync.Mutex
	now   time.Duration
}

// NewManualClock returns a clock at timestamp zero.
func NewManualClock() *ManualClock {
	return &ManualClock{}
}

// RequestFrame implements FrameClock.
func (c *ManualClock) RequestFrame(cb FrameCallback) FrameHandle {
	return c.queue.request(cb)
}

// CancelFrame implements FrameClock.
func (c *ManualClock) CancelFrame(h FrameHandle) {
	c.queue.cancel(h)
}

// Now returns the current timestamp.
func (c *ManualClock) Now() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Pending returns the number of outstanding frame requests.
func (c *ManualClock) Pending() int {
	return c.queue.size()
}

// Advance moves the clock forward by d and runs the callbacks that were
// pending beforehand, serially. Requests made by those callbacks wait for
// the next Advance. It returns the number of callbacks run.
func (c *ManualClock) Advance(d time.Duration) int {
	c.mu.Lock()
	c.now += d
	now := c.now
	c.mu.Unlock()

	reqs := c.queue.take()
	for _, r := range reqs {
		r.cb(now)
	}
	return len(reqs)
}

// LoopClock is a FrameClock that produces frames at a fixed interval from a
// single goroutine started by Run. Timestamps are measured from the start
// of Run using the package Clock.
type LoopClock struct {
	queue    frameQueue
	interval time.Duration
}

// NewLoopClock returns a clock producing a frame every interval. A
// non-positive interval selects 60 frames per second.
func NewLoopClock(interval time.Duration) *LoopClock {
	if interval <= 0 {
		interval = time.Second / 60
	}
	return &LoopClock{interval: interval}
}

// RequestFrame implements FrameClock. It is safe to call from any goroutine.
func (c *LoopClock) RequestFrame(cb FrameCallback) FrameHandle {
	return c.queue.request(cb)
}

// CancelFrame implements FrameClock. It is safe to call from any goroutine.
func (c *LoopClock) CancelFrame(h FrameHandle) {
	c.queue.cancel(h)
}

// Run drives frames until ctx is done and returns ctx.Err(). Frames with no
// pending requests are skipped.
func (c *LoopClock) Run(ctx context.Context) error {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()
	start := Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			now := Now().Sub(start)
			for _, r := range c.queue.take() {
				r.cb(now)
			}
		}
	}
}
