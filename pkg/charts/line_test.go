package charts

import (
	"slices"
	"testing"
	"time"

	"github.com/go-drift/chart/pkg/animation"
	"github.com/go-drift/chart/pkg/errors"
	"github.com/go-drift/chart/pkg/geometry"
	"github.com/go-drift/chart/pkg/rendering"
	"github.com/go-drift/chart/pkg/scheduler"
)

var size = rendering.Size{Width: 320, Height: 160}

func sampleChart() *LineChart {
	c := NewLineChart(geometry.Series{
		X:      []float64{0, 1, 2, 3, 4, 5, 6},
		Y:      []float64{3, 7, 4, 9, 6, 6, 10},
		YRange: geometry.Bounds(0, 10),
	})
	c.XLabels = geometry.ScopeWeek.Labels(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	return c
}

func shapeIDs(shapes []scheduler.Shape) []string {
	ids := make([]string, len(shapes))
	for i, s := range shapes {
		ids[i] = s.ID
	}
	return ids
}

func TestShapes(t *testing.T) {
	c := sampleChart()
	want := []string{ShapeGrid, ShapeFill, ShapeStroke, ShapeLabels, ShapeHover}
	if got := shapeIDs(c.Shapes()); !slices.Equal(got, want) {
		t.Errorf("shapes = %v, want %v", got, want)
	}
	c.Style.Fill = rendering.ColorTransparent
	if got := shapeIDs(c.Shapes()); slices.Contains(got, ShapeFill) {
		t.Errorf("transparent fill should drop the fill shape: %v", got)
	}
}

func TestLayoutError(t *testing.T) {
	c := NewLineChart(geometry.Series{X: []float64{0, 1}, Y: []float64{1}})
	if err := c.Layout(size); !errors.Is(err, errors.ErrLengthMismatch) {
		t.Errorf("Layout = %v, want ErrLengthMismatch", err)
	}
	c = NewLineChart(geometry.Series{X: []float64{1, 0}, Y: []float64{1, 2}})
	c.Reduce = true
	if err := c.Layout(size); !errors.Is(err, errors.ErrNotIncreasing) {
		t.Errorf("Layout = %v, want ErrNotIncreasing", err)
	}
}

func TestPaintBeforeLayoutIsNoop(t *testing.T) {
	c := sampleChart()
	rec := rendering.NewRecordingCanvas(size)
	frame := &scheduler.Frame{Pointer: &rendering.Offset{}}
	for _, sh := range c.Shapes() {
		sh.Paint(1, rec, frame)
	}
	if got := rec.Kinds(); len(got) != 0 {
		t.Errorf("unlaid chart drew %v", got)
	}
}

func TestLabels(t *testing.T) {
	c := sampleChart()
	if err := c.Layout(size); err != nil {
		t.Fatal(err)
	}
	rec := rendering.NewRecordingCanvas(size)
	c.paintLabels(1, rec, &scheduler.Frame{})
	want := []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun", "0", "2.5", "5", "7.5", "10"}
	if got := rec.Texts(); !slices.Equal(got, want) {
		t.Errorf("texts = %v, want %v", got, want)
	}
}

func TestStrokeReveal(t *testing.T) {
	c := sampleChart()
	if err := c.Layout(size); err != nil {
		t.Fatal(err)
	}
	half := c.Fit().Stroke(0.5).Bounds()
	full := c.Fit().Stroke(1).Bounds()
	if half.Right >= full.Right {
		t.Errorf("half reveal reaches %v, full %v", half.Right, full.Right)
	}

	rec := rendering.NewRecordingCanvas(size)
	c.paintStroke(0, rec, &scheduler.Frame{})
	if rec.Count(rendering.OpPath) != 0 {
		t.Error("nothing should be stroked at fraction 0")
	}
	c.paintStroke(0.5, rec, &scheduler.Frame{})
	c.paintFill(0.5, rec, &scheduler.Frame{})
	if rec.Count(rendering.OpPath) != 2 {
		t.Errorf("ops = %v", rec.Kinds())
	}
}

func TestHover(t *testing.T) {
	c := sampleChart()
	if err := c.Layout(size); err != nil {
		t.Fatal(err)
	}
	pt := c.Fit().Points[3]

	rec := rendering.NewRecordingCanvas(size)
	c.paintHover(1, rec, &scheduler.Frame{Pointer: &rendering.Offset{X: pt.X + 2, Y: pt.Y - 2}})
	if rec.Count(rendering.OpCircle) != 1 || rec.Count(rendering.OpLine) != 1 {
		t.Errorf("hover ops = %v", rec.Kinds())
	}

	rec.Reset()
	c.paintHover(1, rec, &scheduler.Frame{Pointer: &rendering.Offset{X: -50, Y: -50}})
	c.paintHover(1, rec, &scheduler.Frame{})
	if len(rec.Kinds()) != 0 {
		t.Errorf("no hover expected, got %v", rec.Kinds())
	}
}

// radiusCanvas records the radius of every circle drawn.
type radiusCanvas struct {
	*rendering.RecordingCanvas
	radii []float64
}

func (c *radiusCanvas) DrawCircle(center rendering.Offset, radius float64, paint rendering.Paint) {
	c.radii = append(c.radii, radius)
	c.RecordingCanvas.DrawCircle(center, radius, paint)
}

func TestHoverMarkerGrowsIn(t *testing.T) {
	s := scheduler.New(animation.NewManualClock(), scheduler.WithOffscreen(rendering.NewRecordingOffscreen))
	c := sampleChart()
	canvas := &radiusCanvas{RecordingCanvas: rendering.NewRecordingCanvas(size)}
	g, err := c.Group(canvas)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Register("visits", g); err != nil {
		t.Fatal(err)
	}
	pt := c.Fit().Points[1]
	if err := s.SetPointer("visits", &pt); err != nil {
		t.Fatal(err)
	}
	for now := time.Duration(0); now <= 400*time.Millisecond; now += 50 * time.Millisecond {
		s.Tick(now)
	}

	lo, hi := c.Style.HoverRadius/2, c.Style.HoverRadius
	radii := canvas.radii
	if len(radii) == 0 || radii[0] != lo {
		t.Fatalf("radii = %v, want to start at %v", radii, lo)
	}
	if last := radii[len(radii)-1]; last != hi {
		t.Errorf("radii = %v, want to end at %v", radii, hi)
	}
	between := 0
	for i, r := range radii {
		if r > lo && r < hi {
			between++
		}
		if i > 0 && r < radii[i-1] {
			t.Errorf("radius shrank: %v", radii)
			break
		}
	}
	if between == 0 {
		t.Errorf("radius never animated between %v and %v: %v", lo, hi, radii)
	}

	// Moving to another point grows the marker in again.
	next := c.Fit().Points[4]
	if err := s.SetPointer("visits", &next); err != nil {
		t.Fatal(err)
	}
	s.Tick(450 * time.Millisecond)
	if r := canvas.radii[len(canvas.radii)-1]; r != lo {
		t.Errorf("radius on a new point = %v, want %v", r, lo)
	}
}

func TestValueLabels(t *testing.T) {
	got := ValueLabels(0, 1, 4)
	var texts []string
	for _, l := range got {
		texts = append(texts, l.Text)
	}
	if want := []string{"0", "0.33", "0.67", "1"}; !slices.Equal(texts, want) {
		t.Errorf("texts = %v, want %v", texts, want)
	}
	if one := ValueLabels(3, 9, 1); len(one) != 1 || one[0].Text != "3" {
		t.Errorf("single label = %v", one)
	}
}

func TestLineChartSettlesIntoCache(t *testing.T) {
	clock := animation.NewManualClock()
	s := scheduler.New(clock, scheduler.WithOffscreen(rendering.NewRecordingOffscreen))
	canvas := rendering.NewRecordingCanvas(size)
	g, err := sampleChart().Group(canvas)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Register("visits", g); err != nil {
		t.Fatal(err)
	}
	s.Start()
	for i := 0; clock.Pending() > 0; i++ {
		if i > 500 {
			t.Fatal("chart never settled")
		}
		clock.Advance(16 * time.Millisecond)
	}

	canvas.Reset()
	s.Tick(clock.Now() + time.Second)
	want := []rendering.OpKind{rendering.OpClear, rendering.OpImage, rendering.OpImage, rendering.OpImage, rendering.OpImage}
	if got := canvas.Kinds(); !slices.Equal(got, want) {
		t.Errorf("settled frame = %v, want %v", got, want)
	}
	if st := s.Stats(); st.CacheBuilds != 4 {
		t.Errorf("CacheBuilds = %d, want 4", st.CacheBuilds)
	}
}
