package scheduler

import (
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/go-drift/chart"
	"github.com/go-drift/chart/pkg/animation"
	"github.com/go-drift/chart/pkg/errors"
	"github.com/go-drift/chart/pkg/rendering"
)

// Stats counts scheduler work since creation.
type Stats struct {
	Ticks       uint64
	LiveDraws   uint64
	CacheBuilds uint64
	Blits       uint64
	Panics      uint64
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithLogger sets the scheduler's logger. Defaults to chart.Logger().
func WithLogger(l *slog.Logger) Option {
	return func(s *Scheduler) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithOffscreen sets the factory used for render caches. Defaults to
// rendering.NewGGOffscreen.
func WithOffscreen(f rendering.OffscreenFactory) Option {
	return func(s *Scheduler) {
		if f != nil {
			s.offscreen = f
		}
	}
}

// WithErrorHandler routes recovered paint panics to h instead of the
// package-level errors handler.
func WithErrorHandler(h errors.ErrorHandler) Option {
	return func(s *Scheduler) {
		s.handler = h
	}
}

// Scheduler runs the frame loop for a set of shape groups.
//
// All methods are safe for concurrent use. PaintFuncs run with the
// scheduler locked and must not call back into it.
type Scheduler struct {
	mu        sync.Mutex
	clock     animation.FrameClock
	logger    *slog.Logger
	offscreen rendering.OffscreenFactory
	handler   errors.ErrorHandler

	groups map[string]*groupState
	order  []string
	phases *animation.PhaseTable

	running bool
	armed   bool
	handle  animation.FrameHandle
	lastNow time.Duration
	stats   Stats
}

// New returns a stopped scheduler driven by clock.
func New(clock animation.FrameClock, opts ...Option) *Scheduler {
	s := &Scheduler{
		clock:     clock,
		logger:    chart.Logger(),
		offscreen: rendering.NewGGOffscreen,
		groups:    make(map[string]*groupState),
		phases:    animation.NewPhaseTable(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start subscribes to the host clock. Calling Start on a running scheduler
// is a no-op.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	s.running = true
	s.logger.Info("chart loop started", "groups", len(s.order))
	s.arm()
}

// Stop cancels the pending frame request. It is idempotent.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}
	s.running = false
	if s.armed {
		s.clock.CancelFrame(s.handle)
		s.armed = false
		s.handle = 0
	}
	s.logger.Info("chart loop stopped")
}

// Running reports whether the loop is started.
func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Armed reports whether a frame request is pending with the host clock.
func (s *Scheduler) Armed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.armed
}

// Stats returns a snapshot of the work counters.
func (s *Scheduler) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

// arm requests the next frame if the loop is running and none is pending.
// Callers hold s.mu.
func (s *Scheduler) arm() {
	if !s.running || s.armed {
		return
	}
	s.armed = true
	s.handle = s.clock.RequestFrame(s.onFrame)
}

func (s *Scheduler) onFrame(now time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.armed = false
	s.handle = 0
	if !s.running {
		return
	}
	if s.tick(now) {
		s.arm()
	} else {
		s.logger.Debug("chart loop idle", "now", now)
	}
}

// Tick renders one frame at host timestamp now and reports whether any
// shape needs another frame. The clock calls it while the loop runs; hosts
// that produce frames themselves may call it directly.
func (s *Scheduler) Tick(now time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tick(now)
}

func (s *Scheduler) tick(now time.Duration) bool {
	s.stats.Ticks++
	s.lastNow = now
	more := false
	for _, key := range slices.Clone(s.order) {
		g, ok := s.groups[key]
		if !ok {
			continue
		}
		if s.tickGroup(g, now) {
			more = true
		}
	}
	return more
}

func (s *Scheduler) tickGroup(g *groupState, now time.Duration) bool {
	if g.group.Canvas == nil || g.group.Size.IsEmpty() {
		s.logger.Debug("skipping group without surface", "group", g.key)
		return false
	}
	if !g.started {
		g.started = true
		g.origin = now
	}
	g.group.Canvas.Clear()
	more := false
	for _, sh := range g.shapes {
		if s.tickShape(g, sh, now) {
			more = true
		}
	}
	return more
}

// tickShape draws one shape and reports whether it needs another frame.
func (s *Scheduler) tickShape(g *groupState, sh *shapeState, now time.Duration) bool {
	a := sh.Animation
	if now-g.origin < a.Delay {
		return true
	}
	frame := &Frame{
		Group:   g.key,
		ShapeID: sh.ID,
		Phase:   sh.key.Name,
		Size:    g.group.Size,
		Now:     now,
		Pointer: g.pointer,
		State:   animation.StateIdle,
		Raw:     1,
	}
	more := s.drawShape(g, sh, frame, now)
	if frame.restart {
		s.restart(sh)
		return true
	}
	return more
}

func (s *Scheduler) drawShape(g *groupState, sh *shapeState, frame *Frame, now time.Duration) bool {
	a := sh.Animation
	if a.Duration <= 0 {
		if !a.Controller.ShouldRender() {
			return false
		}
		s.drawFinal(g, sh, frame)
		return false
	}

	phase := s.phases.Phase(sh.key, a.Controller, a.Duration)
	pf := phase.Tick(now)
	frame.State, frame.Raw, frame.Cycle = pf.State, pf.Fraction, pf.Cycle
	switch pf.State {
	case animation.StatePaused, animation.StateCycling:
		s.paintLive(g, sh, sh.easing(pf.Fraction), frame)
		return true
	case animation.StateFrozen, animation.StateIdle:
		s.drawFinal(g, sh, frame)
		return phase.AnimatesLater()
	default:
		return false
	}
}

// restart returns the shape to its first cycle and drops its cache.
func (s *Scheduler) restart(sh *shapeState) {
	if p, ok := s.phases.Lookup(sh.key); ok {
		p.Reset()
	}
	sh.cache = nil
}

// drawFinal draws the shape at fraction 1, through the cache unless the
// shape opts out.
func (s *Scheduler) drawFinal(g *groupState, sh *shapeState, frame *Frame) {
	if sh.NoCache {
		s.paintLive(g, sh, 1, frame)
		return
	}
	if sh.cache == nil {
		off := s.offscreen(g.group.Size)
		if !s.paint(g, sh, 1, off, frame) {
			return
		}
		sh.cache = off.Image()
		s.stats.CacheBuilds++
		s.logger.Debug("cached shape", "group", g.key, "shape", sh.ID)
	}
	g.group.Canvas.DrawImage(sh.cache, rendering.Offset{})
	s.stats.Blits++
}

func (s *Scheduler) paintLive(g *groupState, sh *shapeState, fraction float64, frame *Frame) {
	if s.paint(g, sh, fraction, g.group.Canvas, frame) {
		s.stats.LiveDraws++
	}
}

// paint calls the shape's PaintFunc, recovering panics so one broken shape
// cannot stop the loop.
func (s *Scheduler) paint(g *groupState, sh *shapeState, fraction float64, c rendering.Canvas, frame *Frame) bool {
	panicked := errors.Guard(s.handler, "scheduler.paint", g.key, func() {
		sh.Paint(fraction, c, frame)
	})
	if panicked {
		s.stats.Panics++
		s.logger.Warn("recovered paint panic", "group", g.key, "shape", sh.ID)
	}
	return !panicked
}
