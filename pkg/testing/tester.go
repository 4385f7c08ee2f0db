package testing

import (
	"errors"
	"testing"
	"time"

	"github.com/go-drift/chart/pkg/animation"
	"github.com/go-drift/chart/pkg/rendering"
	"github.com/go-drift/chart/pkg/scheduler"
)

const (
	// DefaultTestWidth is the default width of a test surface.
	DefaultTestWidth = 640
	// DefaultTestHeight is the default height of a test surface.
	DefaultTestHeight = 320
	// DefaultFrameInterval is the step used by Pump and PumpAndSettle.
	DefaultFrameInterval = time.Second / 60
)

// ErrSettleTimeout is returned when PumpAndSettle exceeds its timeout.
var ErrSettleTimeout = errors.New("PumpAndSettle timed out: scheduler did not settle")

// Chart is anything that can lay itself out onto a canvas as a scheduler
// group, such as a charts.LineChart.
type Chart interface {
	Group(canvas rendering.Canvas) (scheduler.Group, error)
}

// ChartTester drives a scheduler frame by frame without a real surface.
// Every group draws onto a RecordingCanvas, and frames come from a
// ManualClock advanced by Pump.
type ChartTester struct {
	frames    *animation.ManualClock
	clock     *FakeClock
	prevClock animation.Clock
	sched     *scheduler.Scheduler
	canvases  map[string]*rendering.RecordingCanvas
	size      rendering.Size
	interval  time.Duration
}

// NewChartTester creates a tester with a started scheduler. Call Cleanup
// when done, or use NewChartTesterWithT instead.
func NewChartTester(opts ...scheduler.Option) *ChartTester {
	frames := animation.NewManualClock()
	clk := NewFakeClock()
	opts = append([]scheduler.Option{scheduler.WithOffscreen(rendering.NewRecordingOffscreen)}, opts...)
	t := &ChartTester{
		frames:   frames,
		clock:    clk,
		sched:    scheduler.New(frames, opts...),
		canvases: make(map[string]*rendering.RecordingCanvas),
		size:     rendering.Size{Width: DefaultTestWidth, Height: DefaultTestHeight},
		interval: DefaultFrameInterval,
	}
	t.prevClock = animation.SetClock(clk)
	t.sched.Start()
	return t
}

// NewChartTesterWithT creates a tester that cleans up via t.Cleanup.
func NewChartTesterWithT(t *testing.T, opts ...scheduler.Option) *ChartTester {
	tester := NewChartTester(opts...)
	t.Cleanup(tester.Cleanup)
	return tester
}

// Cleanup stops the scheduler and restores the animation clock.
func (t *ChartTester) Cleanup() {
	t.sched.Stop()
	if t.prevClock != nil {
		animation.SetClock(t.prevClock)
		t.prevClock = nil
	}
}

// SetSize sets the surface size used by groups registered afterwards.
func (t *ChartTester) SetSize(size rendering.Size) {
	t.size = size
}

// Size returns the current surface size.
func (t *ChartTester) Size() rendering.Size {
	return t.size
}

// SetFrameInterval sets the step used by Pump and PumpAndSettle.
func (t *ChartTester) SetFrameInterval(d time.Duration) {
	if d > 0 {
		t.interval = d
	}
}

// Clock returns the wall clock installed for the tester's lifetime.
func (t *ChartTester) Clock() *FakeClock {
	return t.clock
}

// Frames returns the frame clock driving the scheduler.
func (t *ChartTester) Frames() *animation.ManualClock {
	return t.frames
}

// Scheduler returns the scheduler under test.
func (t *ChartTester) Scheduler() *scheduler.Scheduler {
	return t.sched
}

// Canvas returns the recording canvas of the group under key, or nil.
func (t *ChartTester) Canvas(key string) *rendering.RecordingCanvas {
	return t.canvases[key]
}

// PumpShapes registers shapes under key on a fresh recording canvas and
// renders the first frame.
func (t *ChartTester) PumpShapes(key string, shapes ...scheduler.Shape) error {
	canvas := t.canvasFor(key)
	if err := t.sched.Register(key, scheduler.Group{Canvas: canvas, Size: t.size, Shapes: shapes}); err != nil {
		return err
	}
	t.Pump()
	return nil
}

// PumpChart lays chart out on the group's canvas, registers it under key
// and renders the first frame. Pumping again under the same key replaces
// the group, as a data refresh would.
func (t *ChartTester) PumpChart(key string, chart Chart) error {
	g, err := chart.Group(t.canvasFor(key))
	if err != nil {
		return err
	}
	if err := t.sched.Register(key, g); err != nil {
		return err
	}
	t.Pump()
	return nil
}

// Pump advances time by one frame interval and runs the pending frame, if
// any. It reports whether a frame ran.
func (t *ChartTester) Pump() bool {
	return t.PumpFor(t.interval)
}

// PumpFor advances time by d and runs the pending frame, if any.
func (t *ChartTester) PumpFor(d time.Duration) bool {
	t.clock.Advance(d)
	return t.frames.Advance(d) > 0
}

// PumpAndSettle pumps frames until the scheduler stops requesting them.
// It returns ErrSettleTimeout if frames are still pending once timeout of
// simulated time has elapsed. Paused shapes keep the loop alive, so a
// tester with a paused shape never settles.
func (t *ChartTester) PumpAndSettle(timeout time.Duration) error {
	var elapsed time.Duration
	for t.frames.Pending() > 0 {
		if elapsed >= timeout {
			return ErrSettleTimeout
		}
		t.Pump()
		elapsed += t.interval
	}
	return nil
}

// Hover moves the pointer over the group under key and pumps a frame.
func (t *ChartTester) Hover(key string, pos rendering.Offset) error {
	if err := t.sched.SetPointer(key, &pos); err != nil {
		return err
	}
	t.Pump()
	return nil
}

// Leave clears the pointer of the group under key and pumps a frame.
func (t *ChartTester) Leave(key string) error {
	if err := t.sched.SetPointer(key, nil); err != nil {
		return err
	}
	t.Pump()
	return nil
}

func (t *ChartTester) canvasFor(key string) *rendering.RecordingCanvas {
	c, ok := t.canvases[key]
	if !ok || c.Size() != t.size {
		c = rendering.NewRecordingCanvas(t.size)
		t.canvases[key] = c
	}
	return c
}
