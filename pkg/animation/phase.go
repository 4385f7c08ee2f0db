package animation

import (
	"fmt"
	"time"
)

// PhaseState is the outcome of one phase tick.
type PhaseState int

const (
	// StateIdle means the phase has no duration and never animates. Callers
	// treat it as always showing the final frame.
	StateIdle PhaseState = iota
	// StateCycling means the phase is animating; Frame.Fraction is live.
	StateCycling
	// StateFrozen means the phase shows its final frame (fraction 1).
	StateFrozen
	// StateSuppressed means nothing is drawn this tick.
	StateSuppressed
	// StatePaused means the phase is stopped and repeats its last fraction.
	StatePaused
)

// String returns a human-readable representation of the state.
func (s PhaseState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateCycling:
		return "cycling"
	case StateFrozen:
		return "frozen"
	case StateSuppressed:
		return "suppressed"
	case StatePaused:
		return "paused"
	default:
		return fmt.Sprintf("PhaseState(%d)", int(s))
	}
}

// Draws reports whether anything is drawn in this state.
func (s PhaseState) Draws() bool {
	return s != StateSuppressed
}

// Frame is the result of [Phase.Tick].
type Frame struct {
	// Fraction is the raw (un-eased) progress through the current cycle.
	Fraction float64
	State    PhaseState
	// Cycle is floor(elapsed / duration).
	Cycle int
	// Runs is the number of cycle wraps observed so far.
	Runs int
}

// Phase tracks one animatable aspect of a shape. The zero value is not
// usable; create phases with NewPhase or through a PhaseTable.
//
// A Phase is not safe for concurrent use. It is mutated only from the frame
// callback that ticks it.
type Phase struct {
	Controller Controller
	Duration   time.Duration

	started      bool
	first        time.Duration
	lastTick     time.Duration
	elapsed      time.Duration
	runCount     int
	prevFraction float64
	stopped      bool
	last         Frame
}

// NewPhase returns a phase in its initial state.
func NewPhase(c Controller, d time.Duration) *Phase {
	return &Phase{Controller: c, Duration: d}
}

// Tick advances the phase to the host timestamp now.
//
// The first tick fixes the phase origin. A wrap is detected when the cycle
// fraction drops below the previous tick's fraction, and bumps the run count
// before the controller policy is evaluated.
func (p *Phase) Tick(now time.Duration) Frame {
	if p.Duration <= 0 {
		return Frame{Fraction: 1, State: StateIdle}
	}
	if !p.started {
		p.started = true
		p.first = now
		p.lastTick = now
	}
	if p.stopped {
		f := p.last
		f.State = StatePaused
		return f
	}
	p.lastTick = now
	p.elapsed = now - p.first

	fraction := float64(p.elapsed%p.Duration) / float64(p.Duration)
	cycle := int(p.elapsed / p.Duration)
	if fraction < p.prevFraction {
		p.runCount++
	}

	frame := Frame{Fraction: fraction, Cycle: cycle}
	frame.State = decide(p.Controller, p.runCount, cycle)
	if frame.State == StateFrozen {
		frame.Fraction = 1
	}
	frame.Runs = p.runCount
	p.prevFraction = fraction
	p.last = frame
	return frame
}

// Last returns the frame produced by the most recent tick.
func (p *Phase) Last() Frame {
	return p.last
}

// Elapsed returns the phase time at the most recent unpaused tick.
func (p *Phase) Elapsed() time.Duration {
	return p.elapsed
}

// Stopped reports whether the phase is paused.
func (p *Phase) Stopped() bool {
	return p.stopped
}

// Stop pauses the phase. Ticks report StatePaused with the last fraction
// until Resume.
func (p *Phase) Stop() {
	p.stopped = true
}

// Resume unpauses the phase at host time now, shifting the phase origin by
// the paused span so the animation continues where it left off.
func (p *Phase) Resume(now time.Duration) {
	if !p.stopped {
		return
	}
	p.stopped = false
	if p.started && now > p.lastTick {
		p.first += now - p.lastTick
	}
}

// Reset returns the phase to its initial state. Controller and Duration are
// kept.
func (p *Phase) Reset() {
	*p = Phase{Controller: p.Controller, Duration: p.Duration}
}

// AnimatesLater reports whether a phase that is frozen now will animate
// again in a later cycle.
func (p *Phase) AnimatesLater() bool {
	if p.Duration <= 0 || !p.started {
		return false
	}
	return animatesAfter(p.Controller, p.last.Cycle)
}
