// Package animation provides the timing primitives of the chart engine.
//
// # Core Components
//
//   - [Controller]: the replay policy of a phase, either [ReplayLimit] (cycle
//     up to N times, then freeze on the final frame) or [PerCycle] (an
//     explicit animate/freeze decision per cycle).
//
//   - [Phase]: the state machine of one animatable aspect of a shape. Each
//     [Phase.Tick] turns a host timestamp into a [Frame]: the fraction to draw
//     and whether the phase is cycling, frozen, suppressed or paused.
//
//   - [PhaseTable]: the engine-owned side table holding one Phase per
//     (shape, phase name), so shape descriptors stay immutable.
//
//   - [FrameClock]: the host clock. [ManualClock] is stepped explicitly (tests,
//     offline export); [LoopClock] drives frames from a single goroutine.
//
//   - Easing functions, looked up by name with [EasingByName], and [Tween]s
//     for interpolating values with an eased fraction.
//
// # Basic Usage
//
//	phase := animation.NewPhase(animation.ReplayLimit(1), time.Second)
//	frame := phase.Tick(now)
//	if frame.State.Draws() {
//	    draw(animation.EaseOutCubic(frame.Fraction))
//	}
package animation
