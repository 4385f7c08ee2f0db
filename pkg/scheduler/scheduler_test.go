package scheduler

import (
	"math"
	"testing"
	"time"

	"github.com/go-drift/chart/pkg/animation"
	"github.com/go-drift/chart/pkg/errors"
	"github.com/go-drift/chart/pkg/rendering"
)

const ms = time.Millisecond

var testSize = rendering.Size{Width: 64, Height: 32}

// recorder counts PaintFunc calls.
type recorder struct {
	calls     int
	fractions []float64
	frames    []Frame
}

func (r *recorder) paint(fraction float64, c rendering.Canvas, f *Frame) {
	r.calls++
	r.fractions = append(r.fractions, fraction)
	r.frames = append(r.frames, *f)
	c.DrawLine(rendering.Offset{}, rendering.Offset{X: fraction * 10}, rendering.StrokePaint(rendering.ColorBlack, 1))
}

type panicRecorder struct {
	panics []*errors.PanicError
}

func (h *panicRecorder) HandleError(*errors.ChartError)     {}
func (h *panicRecorder) HandlePanic(err *errors.PanicError) { h.panics = append(h.panics, err) }

func newTestScheduler(opts ...Option) (*Scheduler, *animation.ManualClock) {
	clock := animation.NewManualClock()
	opts = append([]Option{WithOffscreen(rendering.NewRecordingOffscreen)}, opts...)
	return New(clock, opts...), clock
}

func register(t *testing.T, s *Scheduler, key string, shapes ...Shape) *rendering.RecordingCanvas {
	t.Helper()
	canvas := rendering.NewRecordingCanvas(testSize)
	if err := s.Register(key, Group{Canvas: canvas, Size: testSize, Shapes: shapes}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	return canvas
}

func TestCacheReuse(t *testing.T) {
	s, _ := newTestScheduler()
	rec := &recorder{}
	canvas := register(t, s, "chart", Shape{
		ID:        "grid",
		Paint:     rec.paint,
		Animation: Animation{Controller: animation.ReplayLimit(0)},
	})

	if s.Tick(0) {
		t.Error("a static shape should not need another frame")
	}
	s.Tick(16 * ms)

	if rec.calls != 1 {
		t.Errorf("paint called %d times, want 1", rec.calls)
	}
	if rec.fractions[0] != 1 {
		t.Errorf("cache rendered at %v, want 1", rec.fractions[0])
	}
	if got := canvas.Count(rendering.OpImage); got != 2 {
		t.Errorf("blits = %d, want 2", got)
	}
	if got := canvas.Count(rendering.OpLine); got != 0 {
		t.Errorf("visible canvas got %d live lines, want 0", got)
	}
	st := s.Stats()
	if st.CacheBuilds != 1 || st.Blits != 2 || st.LiveDraws != 0 || st.Ticks != 2 {
		t.Errorf("stats = %+v", st)
	}
}

func TestFrozenPhaseUsesCache(t *testing.T) {
	s, _ := newTestScheduler()
	rec := &recorder{}
	canvas := register(t, s, "chart", Shape{
		ID:        "stroke",
		Paint:     rec.paint,
		Animation: Animation{Controller: animation.ReplayLimit(0), Duration: time.Second},
	})
	if s.Tick(0) || s.Tick(500*ms) {
		t.Error("frozen phase should not keep the loop alive")
	}
	if rec.calls != 1 || canvas.Count(rendering.OpImage) != 2 {
		t.Errorf("calls=%d blits=%d", rec.calls, canvas.Count(rendering.OpImage))
	}
}

func TestLiveDrawIsEased(t *testing.T) {
	s, _ := newTestScheduler()
	rec := &recorder{}
	canvas := register(t, s, "chart", Shape{
		ID:        "stroke",
		Paint:     rec.paint,
		Animation: Animation{Controller: animation.ReplayLimit(1), Duration: time.Second, Easing: "easeInCubic"},
	})
	if !s.Tick(0) || !s.Tick(500*ms) {
		t.Fatal("cycling shape should keep the loop alive")
	}
	if rec.fractions[1] != 0.125 {
		t.Errorf("eased fraction = %v, want 0.125", rec.fractions[1])
	}
	f := rec.frames[1]
	if f.Raw != 0.5 || f.State != animation.StateCycling || f.Group != "chart" || f.Phase != "stroke" {
		t.Errorf("frame = %+v", f)
	}
	if canvas.Count(rendering.OpLine) != 2 || canvas.Count(rendering.OpClear) != 2 {
		t.Errorf("ops = %v", canvas.Kinds())
	}
}

func TestReplayLimitFreezesIntoCache(t *testing.T) {
	s, _ := newTestScheduler()
	rec := &recorder{}
	canvas := register(t, s, "chart", Shape{
		ID:        "stroke",
		Paint:     rec.paint,
		Animation: Animation{Controller: animation.ReplayLimit(2), Duration: time.Second},
	})
	for at := time.Duration(0); at <= 2500*ms; at += 500 * ms {
		if !s.Tick(at) {
			t.Fatalf("t=%v: should still be cycling", at)
		}
	}
	if s.Tick(3000 * ms) {
		t.Error("t=3s: frozen shape should let the loop lapse")
	}
	if canvas.Count(rendering.OpImage) != 1 {
		t.Errorf("blits = %d, want 1", canvas.Count(rendering.OpImage))
	}
	if rec.calls != 7 || rec.fractions[6] != 1 {
		t.Errorf("calls=%d fractions=%v", rec.calls, rec.fractions)
	}
}

func TestPerCycleRearmsWhileFrozen(t *testing.T) {
	s, _ := newTestScheduler()
	rec := &recorder{}
	canvas := register(t, s, "chart", Shape{
		ID:        "stroke",
		Paint:     rec.paint,
		Animation: Animation{Controller: animation.PerCycle{true, false, true}, Duration: time.Second},
	})
	steps := []struct {
		at    time.Duration
		more  bool
		blits int
		lines int
	}{
		{0, true, 0, 1},
		{1000 * ms, true, 1, 1},
		{2000 * ms, true, 1, 2},
		{3000 * ms, false, 1, 2},
	}
	for _, st := range steps {
		if got := s.Tick(st.at); got != st.more {
			t.Errorf("t=%v: Tick = %v, want %v", st.at, got, st.more)
		}
		if canvas.Count(rendering.OpImage) != st.blits || canvas.Count(rendering.OpLine) != st.lines {
			t.Errorf("t=%v: blits=%d lines=%d, want %d/%d", st.at,
				canvas.Count(rendering.OpImage), canvas.Count(rendering.OpLine), st.blits, st.lines)
		}
	}
}

func TestDelay(t *testing.T) {
	s, _ := newTestScheduler()
	rec := &recorder{}
	register(t, s, "chart", Shape{
		ID:        "fill",
		Paint:     rec.paint,
		Animation: Animation{Controller: animation.ReplayLimit(1), Duration: time.Second, Delay: 300 * ms},
	})
	if !s.Tick(0) || !s.Tick(200*ms) {
		t.Fatal("a delayed shape keeps the loop alive")
	}
	if rec.calls != 0 {
		t.Fatalf("painted %d times during delay", rec.calls)
	}
	s.Tick(300 * ms)
	s.Tick(550 * ms)
	if rec.calls != 2 || rec.fractions[0] != 0 || rec.fractions[1] != 0.25 {
		t.Errorf("fractions = %v, want [0 0.25]", rec.fractions)
	}
}

func TestSuppressedShapes(t *testing.T) {
	s, _ := newTestScheduler()
	rec := &recorder{}
	canvas := register(t, s, "chart",
		Shape{ID: "anim", Paint: rec.paint, Animation: Animation{Controller: animation.ReplayLimit(-1), Duration: time.Second}},
		Shape{ID: "static", Paint: rec.paint, Animation: Animation{Controller: animation.ReplayLimit(-1)}},
		Shape{ID: "empty", Paint: rec.paint, Animation: Animation{Controller: animation.PerCycle{}}},
	)
	if s.Tick(0) {
		t.Error("suppressed shapes should not keep the loop alive")
	}
	if rec.calls != 0 || canvas.Count(rendering.OpImage) != 0 {
		t.Errorf("calls=%d ops=%v", rec.calls, canvas.Kinds())
	}
}

func TestPauseResume(t *testing.T) {
	s, _ := newTestScheduler()
	rec := &recorder{}
	register(t, s, "chart", Shape{
		ID:        "stroke",
		Paint:     rec.paint,
		Animation: Animation{Controller: animation.ReplayLimit(5), Duration: time.Second},
	})
	s.Tick(0)
	s.Tick(300 * ms)
	if err := s.Pause("chart", "stroke"); err != nil {
		t.Fatal(err)
	}
	if !s.Tick(800 * ms) {
		t.Error("a paused shape keeps the loop alive")
	}
	if got := rec.frames[2]; got.State != animation.StatePaused || rec.fractions[2] != 0.3 {
		t.Errorf("paused draw = %v at %v", got.State, rec.fractions[2])
	}
	if err := s.Resume("chart", "stroke"); err != nil {
		t.Fatal(err)
	}
	s.Tick(1000 * ms)
	if rec.fractions[3] != 0.5 {
		t.Errorf("after resume fraction = %v, want 0.5", rec.fractions[3])
	}
}

func TestResumeAt(t *testing.T) {
	s, _ := newTestScheduler()
	rec := &recorder{}
	register(t, s, "chart", Shape{
		ID:        "stroke",
		Paint:     rec.paint,
		Animation: Animation{Controller: animation.ReplayLimit(5), Duration: time.Second},
	})
	s.Tick(0)
	s.Tick(300 * ms)
	if err := s.Pause("chart", "stroke"); err != nil {
		t.Fatal(err)
	}
	s.Tick(800 * ms)
	if err := s.ResumeAt("chart", "stroke", 900*ms); err != nil {
		t.Fatal(err)
	}
	s.Tick(1000 * ms)
	if got := rec.fractions[3]; math.Abs(got-0.4) > 1e-9 {
		t.Errorf("fraction = %v, want 0.4 after a 600ms pause", got)
	}
	if err := s.ResumeAt("chart", "missing", 0); !errors.Is(err, errors.ErrUnknownShape) {
		t.Errorf("ResumeAt unknown shape = %v", err)
	}
}

func TestFrameRestart(t *testing.T) {
	s, _ := newTestScheduler()
	var raws []float64
	restarted := false
	register(t, s, "chart", Shape{
		ID: "marker",
		Paint: func(_ float64, _ rendering.Canvas, f *Frame) {
			raws = append(raws, f.Raw)
			if f.Raw >= 0.5 && !restarted {
				restarted = true
				f.Restart()
			}
		},
		Animation: Animation{Controller: animation.ReplayLimit(5), Duration: time.Second},
	})
	for _, now := range []time.Duration{0, 500 * ms, 600 * ms, 700 * ms} {
		if !s.Tick(now) {
			t.Fatalf("tick at %v should request another frame", now)
		}
	}
	want := []float64{0, 0.5, 0, 0.1}
	for i := range want {
		if math.Abs(raws[i]-want[i]) > 1e-9 {
			t.Errorf("raw fractions = %v, want %v", raws, want)
			break
		}
	}
}

func TestResetShape(t *testing.T) {
	s, _ := newTestScheduler()
	rec := &recorder{}
	register(t, s, "chart", Shape{
		ID:        "stroke",
		Paint:     rec.paint,
		Animation: Animation{Controller: animation.ReplayLimit(0), Duration: time.Second},
	})
	s.Tick(0)
	if err := s.ResetShape("chart", "stroke"); err != nil {
		t.Fatal(err)
	}
	s.Tick(100 * ms)
	if rec.calls != 2 || s.Stats().CacheBuilds != 2 {
		t.Errorf("reset should rebuild the cache: calls=%d stats=%+v", rec.calls, s.Stats())
	}
}

func TestInvalidate(t *testing.T) {
	s, clock := newTestScheduler()
	rec := &recorder{}
	register(t, s, "chart",
		Shape{ID: "a", Paint: rec.paint, Animation: Animation{Controller: animation.ReplayLimit(0)}},
		Shape{ID: "b", Paint: rec.paint, Animation: Animation{Controller: animation.ReplayLimit(0)}},
	)
	s.Start()
	clock.Advance(16 * ms)
	if rec.calls != 2 || s.Armed() {
		t.Fatalf("calls=%d armed=%v", rec.calls, s.Armed())
	}

	if err := s.InvalidateShape("chart", "b"); err != nil {
		t.Fatal(err)
	}
	if !s.Armed() {
		t.Error("invalidation should request a frame")
	}
	clock.Advance(16 * ms)
	if rec.calls != 3 {
		t.Errorf("calls = %d, want only b rebuilt", rec.calls)
	}

	if err := s.Invalidate("chart"); err != nil {
		t.Fatal(err)
	}
	clock.Advance(16 * ms)
	if rec.calls != 5 {
		t.Errorf("calls = %d, want both rebuilt", rec.calls)
	}

	if err := s.Invalidate("nope"); !errors.Is(err, errors.ErrUnknownGroup) {
		t.Errorf("Invalidate(unknown) = %v", err)
	}
	if err := s.InvalidateShape("chart", "nope"); !errors.Is(err, errors.ErrUnknownShape) {
		t.Errorf("InvalidateShape(unknown) = %v", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	s, _ := newTestScheduler()
	noop := func(float64, rendering.Canvas, *Frame) {}
	ctrl := animation.ReplayLimit(0)
	tests := []struct {
		name   string
		shapes []Shape
		want   error
	}{
		{"nil paint", []Shape{{ID: "a", Animation: Animation{Controller: ctrl}}}, errors.ErrNilPaint},
		{"nil controller", []Shape{{ID: "a", Paint: noop}}, errors.ErrNilController},
		{"duplicate", []Shape{
			{ID: "a", Paint: noop, Animation: Animation{Controller: ctrl}},
			{ID: "a", Paint: noop, Animation: Animation{Controller: ctrl}},
		}, errors.ErrDuplicateShape},
		{"easing", []Shape{{ID: "a", Paint: noop, Animation: Animation{Controller: ctrl, Easing: "wobble"}}}, errors.ErrUnknownEasing},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.Register("bad", Group{Shapes: tt.shapes})
			if !errors.Is(err, tt.want) || !errors.IsKind(err, errors.KindPrecondition) {
				t.Fatalf("Register = %v, want %v", err, tt.want)
			}
			var ce *errors.ChartError
			if !errors.As(err, &ce) || ce.Key != "bad" {
				t.Errorf("error should carry the group key: %v", err)
			}
		})
	}
	if len(s.Groups()) != 0 {
		t.Errorf("invalid groups were registered: %v", s.Groups())
	}
}

func TestUnregisterFreesState(t *testing.T) {
	s, _ := newTestScheduler()
	rec := &recorder{}
	register(t, s, "a", Shape{ID: "stroke", Paint: rec.paint, Animation: Animation{Controller: animation.ReplayLimit(1), Duration: time.Second}})
	register(t, s, "b", Shape{ID: "stroke", Paint: rec.paint, Animation: Animation{Controller: animation.ReplayLimit(1), Duration: time.Second}})
	s.Tick(0)
	if s.phases.Len() != 2 {
		t.Fatalf("phases = %d, want 2", s.phases.Len())
	}
	s.Unregister("a")
	s.Unregister("a")
	if s.phases.Len() != 1 {
		t.Errorf("phases = %d after Unregister, want 1", s.phases.Len())
	}
	if got := s.Groups(); len(got) != 1 || got[0] != "b" {
		t.Errorf("Groups = %v", got)
	}
}

func TestGroupKeysDoNotCollide(t *testing.T) {
	s, _ := newTestScheduler()
	nested, flat := &recorder{}, &recorder{}
	anim := Animation{Controller: animation.ReplayLimit(5), Duration: time.Second}
	register(t, s, "a/b", Shape{ID: "c", Phase: "stroke", Paint: nested.paint, Animation: anim})
	s.Tick(0)
	s.Tick(600 * ms)

	register(t, s, "a", Shape{ID: "b/c", Phase: "stroke", Paint: flat.paint, Animation: anim})
	s.Tick(700 * ms)
	if flat.fractions[0] != 0 {
		t.Errorf("new group starts at %v, want 0", flat.fractions[0])
	}
	if s.phases.Len() != 2 {
		t.Errorf("phases = %d, want 2", s.phases.Len())
	}

	s.Unregister("a")
	s.Tick(800 * ms)
	if got := nested.fractions[len(nested.fractions)-1]; math.Abs(got-0.8) > 1e-9 {
		t.Errorf("a/b fraction after unregistering a = %v, want 0.8", got)
	}
}

func TestReRegisterKeepsRunState(t *testing.T) {
	s, _ := newTestScheduler()
	rec := &recorder{}
	shape := Shape{ID: "stroke", Paint: rec.paint, Animation: Animation{Controller: animation.ReplayLimit(0), Duration: time.Second}}
	gone := Shape{ID: "old", Paint: rec.paint, Animation: Animation{Controller: animation.ReplayLimit(1), Duration: time.Second}}
	register(t, s, "chart", shape, gone)
	s.Tick(0)
	if s.phases.Len() != 2 {
		t.Fatalf("phases = %d", s.phases.Len())
	}

	canvas := register(t, s, "chart", shape)
	if s.phases.Len() != 1 {
		t.Errorf("phase of removed shape should be freed, have %d", s.phases.Len())
	}
	s.Tick(100 * ms)
	if canvas.Count(rendering.OpImage) != 1 {
		t.Error("re-registered frozen shape should draw from a rebuilt cache")
	}
	if s.Stats().CacheBuilds != 2 {
		t.Errorf("CacheBuilds = %d, want 2", s.Stats().CacheBuilds)
	}
	if len(s.Groups()) != 1 {
		t.Errorf("Groups = %v", s.Groups())
	}
}

func TestGroupWithoutSurfaceIsSkipped(t *testing.T) {
	s, _ := newTestScheduler()
	rec := &recorder{}
	shape := Shape{ID: "a", Paint: rec.paint, Animation: Animation{Controller: animation.ReplayLimit(1), Duration: time.Second}}
	if err := s.Register("nocanvas", Group{Size: testSize, Shapes: []Shape{shape}}); err != nil {
		t.Fatal(err)
	}
	if err := s.Register("nosize", Group{Canvas: rendering.NewRecordingCanvas(rendering.Size{}), Shapes: []Shape{shape}}); err != nil {
		t.Fatal(err)
	}
	if s.Tick(0) || rec.calls != 0 {
		t.Errorf("groups without a surface must be skipped, calls=%d", rec.calls)
	}
}

func TestPaintPanicIsRecovered(t *testing.T) {
	h := &panicRecorder{}
	s, _ := newTestScheduler(WithErrorHandler(h))
	rec := &recorder{}
	canvas := register(t, s, "chart",
		Shape{ID: "bad", NoCache: true, Paint: func(float64, rendering.Canvas, *Frame) { panic("boom") }, Animation: Animation{Controller: animation.ReplayLimit(0)}},
		Shape{ID: "cached-bad", Paint: func(float64, rendering.Canvas, *Frame) { panic("boom") }, Animation: Animation{Controller: animation.ReplayLimit(0)}},
		Shape{ID: "good", NoCache: true, Paint: rec.paint, Animation: Animation{Controller: animation.ReplayLimit(0)}},
	)
	s.Tick(0)
	if rec.calls != 1 {
		t.Errorf("shape after a panicking one should still paint, calls=%d", rec.calls)
	}
	if len(h.panics) != 2 || h.panics[0].Key != "chart" || h.panics[0].Value != "boom" {
		t.Errorf("panics = %+v", h.panics)
	}
	if s.Stats().Panics != 2 || canvas.Count(rendering.OpImage) != 0 {
		t.Errorf("stats=%+v ops=%v", s.Stats(), canvas.Kinds())
	}
}

func TestSetPointer(t *testing.T) {
	s, clock := newTestScheduler()
	rec := &recorder{}
	register(t, s, "chart", Shape{ID: "hover", NoCache: true, Paint: rec.paint, Animation: Animation{Controller: animation.ReplayLimit(0)}})
	s.Start()
	clock.Advance(16 * ms)
	if s.Armed() {
		t.Fatal("static hover shape should let the loop lapse")
	}

	pos := rendering.Offset{X: 3, Y: 4}
	if err := s.SetPointer("chart", &pos); err != nil {
		t.Fatal(err)
	}
	pos.X = 99
	clock.Advance(16 * ms)
	last := rec.frames[len(rec.frames)-1]
	if last.Pointer == nil || *last.Pointer != (rendering.Offset{X: 3, Y: 4}) {
		t.Errorf("pointer = %v", last.Pointer)
	}

	if err := s.SetPointer("chart", nil); err != nil {
		t.Fatal(err)
	}
	clock.Advance(16 * ms)
	if rec.frames[len(rec.frames)-1].Pointer != nil {
		t.Error("cleared pointer should reach the paint call as nil")
	}
	if err := s.SetPointer("missing", nil); !errors.IsKind(err, errors.KindPrecondition) {
		t.Errorf("SetPointer(unknown) = %v", err)
	}
}

func TestStartStop(t *testing.T) {
	s, clock := newTestScheduler()
	rec := &recorder{}
	register(t, s, "chart", Shape{ID: "stroke", Paint: rec.paint, Animation: Animation{Controller: animation.ReplayLimit(1), Duration: time.Second}})
	if clock.Pending() != 0 {
		t.Fatal("a stopped scheduler must not request frames")
	}
	s.Start()
	s.Start()
	if clock.Pending() != 1 || !s.Running() {
		t.Fatalf("pending=%d running=%v", clock.Pending(), s.Running())
	}
	clock.Advance(16 * ms)
	if clock.Pending() != 1 {
		t.Error("cycling shape should re-arm")
	}
	s.Stop()
	s.Stop()
	if clock.Pending() != 0 || s.Running() {
		t.Errorf("pending=%d running=%v after Stop", clock.Pending(), s.Running())
	}
	clock.Advance(16 * ms)
	if rec.calls != 1 {
		t.Errorf("calls = %d after Stop, want 1", rec.calls)
	}
}

func TestLoopLapsesAfterEntranceAnimation(t *testing.T) {
	s, clock := newTestScheduler()
	rec := &recorder{}
	canvas := register(t, s, "chart", Shape{
		ID:        "stroke",
		Paint:     rec.paint,
		Animation: Animation{Controller: animation.ReplayLimit(1), Duration: 100 * ms, Easing: "easeOutCubic"},
	})
	s.Start()
	frames := 0
	for clock.Pending() > 0 && frames < 100 {
		clock.Advance(16 * ms)
		frames++
	}
	if clock.Pending() != 0 {
		t.Fatal("loop never lapsed")
	}
	for _, f := range rec.fractions {
		if f < 0 || f > 1 || math.IsNaN(f) {
			t.Fatalf("fraction out of range: %v", f)
		}
	}
	kinds := canvas.Kinds()
	if kinds[len(kinds)-1] != rendering.OpImage {
		t.Errorf("final frame should blit the cache, ops end with %v", kinds[len(kinds)-1])
	}
}
