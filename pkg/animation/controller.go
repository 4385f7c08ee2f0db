package animation

import (
	"fmt"
	"strings"
)

// Controller is the replay policy of a phase. It is a closed set: the only
// implementations are [ReplayLimit] and [PerCycle].
type Controller interface {
	fmt.Stringer
	// ShouldRender reports whether a static (duration-less) shape with this
	// policy is drawn at all.
	ShouldRender() bool
	isController()
}

// ReplayLimit lets a phase cycle while its completed cycle count is at most
// the limit, then freezes it on its final frame. Zero freezes immediately;
// a negative limit suppresses the phase.
type ReplayLimit int

func (ReplayLimit) isController() {}

// ShouldRender reports whether the limit is non-negative.
func (n ReplayLimit) ShouldRender() bool { return n >= 0 }

func (n ReplayLimit) String() string { return fmt.Sprintf("replay(%d)", int(n)) }

// PerCycle decides each cycle explicitly: cycle i animates when the entry is
// true and freezes on the final frame when it is false. Cycles past the end
// are suppressed.
type PerCycle []bool

func (PerCycle) isController() {}

// ShouldRender reports whether there is at least one cycle entry.
func (c PerCycle) ShouldRender() bool { return len(c) > 0 }

func (c PerCycle) String() string {
	parts := make([]string, len(c))
	for i, v := range c {
		parts[i] = fmt.Sprint(v)
	}
	return "cycles[" + strings.Join(parts, " ") + "]"
}

// decide applies the controller policy for the given completed-run count
// and cycle index.
func decide(c Controller, runCount, cycle int) PhaseState {
	switch c := c.(type) {
	case ReplayLimit:
		switch {
		case c < 0:
			return StateSuppressed
		case c == 0:
			return StateFrozen
		case runCount <= int(c):
			return StateCycling
		default:
			return StateFrozen
		}
	case PerCycle:
		if cycle < 0 || cycle >= len(c) {
			return StateSuppressed
		}
		if c[cycle] {
			return StateCycling
		}
		return StateFrozen
	default:
		panic(fmt.Sprintf("animation: unknown controller %T", c))
	}
}

// animatesAfter reports whether the policy will animate again in some cycle
// after cycle. Frozen ReplayLimit phases never resume.
func animatesAfter(c Controller, cycle int) bool {
	switch c := c.(type) {
	case ReplayLimit:
		return false
	case PerCycle:
		for i := max(cycle+1, 0); i < len(c); i++ {
			if c[i] {
				return true
			}
		}
		return false
	default:
		panic(fmt.Sprintf("animation: unknown controller %T", c))
	}
}
