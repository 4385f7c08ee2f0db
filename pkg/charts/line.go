// Package charts assembles ready-made scheduler shapes for common charts.
package charts

import (
	"math"
	"strconv"
	"time"

	"github.com/go-drift/chart/pkg/animation"
	"github.com/go-drift/chart/pkg/geometry"
	"github.com/go-drift/chart/pkg/rendering"
	"github.com/go-drift/chart/pkg/scheduler"
	"github.com/go-drift/chart/pkg/spline"
)

// Shape IDs produced by LineChart.
const (
	ShapeGrid   = "grid"
	ShapeFill   = "fill"
	ShapeStroke = "stroke"
	ShapeLabels = "labels"
	ShapeHover  = "hover"
)

// Style holds the colors and metrics of a line chart.
type Style struct {
	Stroke      rendering.Color
	StrokeWidth float64
	// Fill is the area color at full opacity. Zero disables the fill.
	Fill rendering.Color
	Grid rendering.Color
	// GridLines is the number of horizontal grid lines, baseline included.
	GridLines   int
	Label       rendering.TextStyle
	Hover       rendering.Color
	HoverRadius float64
}

// DefaultStyle returns a blue line on a light grey grid.
func DefaultStyle() Style {
	return Style{
		Stroke:      rendering.RGB(0x1E, 0x88, 0xE5),
		StrokeWidth: 3,
		Fill:        rendering.RGBA(0x1E, 0x88, 0xE5, 0x40),
		Grid:        rendering.RGB(0xE0, 0xE0, 0xE0),
		GridLines:   5,
		Label:       rendering.TextStyle{Color: rendering.RGB(0x61, 0x61, 0x61)},
		Hover:       rendering.RGB(0x0D, 0x47, 0xA1),
		HoverRadius: 6,
	}
}

// DefaultStrokeAnimation reveals the line, replays it once, then freezes.
func DefaultStrokeAnimation() scheduler.Animation {
	return scheduler.Animation{Controller: animation.ReplayLimit(1), Duration: 1200 * time.Millisecond, Easing: "easeInOutCubic"}
}

// DefaultFillAnimation fades the area in after the stroke started, replays
// once, then freezes.
func DefaultFillAnimation() scheduler.Animation {
	return scheduler.Animation{Controller: animation.ReplayLimit(1), Duration: 800 * time.Millisecond, Delay: 400 * time.Millisecond, Easing: "easeOutSine"}
}

// DefaultHoverAnimation grows the hover marker in over 150ms. The marker
// holds its full radius from the second cycle on.
func DefaultHoverAnimation() scheduler.Animation {
	return scheduler.Animation{Controller: animation.ReplayLimit(1), Duration: 150 * time.Millisecond, Easing: "easeOutCubic"}
}

// LineChart is a smoothed line chart with grid, area fill, labels and a
// hover marker.
//
// Geometry is computed by Layout and read by the paint functions of the
// shapes returned from Shapes. After changing the data or the surface size,
// call Layout again and invalidate the group's caches. A LineChart serves
// a single group.
type LineChart struct {
	Series  geometry.Series
	Padding geometry.Padding
	Style   Style
	XLabels []geometry.Label
	// YLabels defaults to GridLines evenly spaced value labels.
	YLabels []geometry.Label
	// Reduce keeps only the extreme points of the series.
	Reduce bool
	Stroke scheduler.Animation
	Fill   scheduler.Animation
	// Hover animates the marker radius each time a new point is hovered.
	Hover scheduler.Animation

	size    rendering.Size
	proj    *geometry.Projection
	fit     *spline.Fit
	xLabels []geometry.PlacedLabel
	yLabels []geometry.PlacedLabel
	hover   *animation.Tween[float64]
	hovered int
}

// NewLineChart returns a chart with the default style and animations.
func NewLineChart(s geometry.Series) *LineChart {
	return &LineChart{
		Series:  s,
		Padding: geometry.Padding{Top: 16, Right: 16, Bottom: 28, Left: 44},
		Style:   DefaultStyle(),
		Stroke:  DefaultStrokeAnimation(),
		Fill:    DefaultFillAnimation(),
		Hover:   DefaultHoverAnimation(),
	}
}

// Layout projects and fits the series for a surface of the given size.
func (c *LineChart) Layout(size rendering.Size) error {
	proj, err := geometry.NewProjection(c.Series, size, c.Padding)
	if err != nil {
		return err
	}
	fit, err := spline.NewFit(proj.Points(c.Series), proj.Baseline(), spline.Options{
		Reduce:      c.Reduce,
		StrokeWidth: c.Style.StrokeWidth,
	})
	if err != nil {
		return err
	}
	c.size, c.proj, c.fit = size, proj, fit
	c.xLabels = proj.XLabels(c.XLabels)
	ylabels := c.YLabels
	if len(ylabels) == 0 {
		ylabels = ValueLabels(proj.YMin, proj.YMax, c.Style.GridLines)
	}
	c.yLabels = proj.YLabels(ylabels)
	c.hover = animation.TweenFloat64(c.Style.HoverRadius/2, c.Style.HoverRadius)
	c.hovered = -1
	return nil
}

// Fit returns the fitted geometry from the last Layout, or nil.
func (c *LineChart) Fit() *spline.Fit {
	return c.fit
}

// Group lays the chart out for canvas and returns a scheduler group.
func (c *LineChart) Group(canvas rendering.Canvas) (scheduler.Group, error) {
	size := canvas.Size()
	if err := c.Layout(size); err != nil {
		return scheduler.Group{}, err
	}
	return scheduler.Group{Canvas: canvas, Size: size, Shapes: c.Shapes()}, nil
}

// Shapes returns the chart's shapes in paint order.
func (c *LineChart) Shapes() []scheduler.Shape {
	static := scheduler.Animation{Controller: animation.ReplayLimit(0)}
	shapes := []scheduler.Shape{
		{ID: ShapeGrid, Paint: c.paintGrid, Animation: static},
	}
	if c.Style.Fill != rendering.ColorTransparent {
		shapes = append(shapes, scheduler.Shape{ID: ShapeFill, Paint: c.paintFill, Animation: c.Fill})
	}
	return append(shapes,
		scheduler.Shape{ID: ShapeStroke, Paint: c.paintStroke, Animation: c.Stroke},
		scheduler.Shape{ID: ShapeLabels, Paint: c.paintLabels, Animation: static},
		scheduler.Shape{ID: ShapeHover, Paint: c.paintHover, Animation: c.Hover, NoCache: true},
	)
}

func (c *LineChart) paintGrid(_ float64, canvas rendering.Canvas, _ *scheduler.Frame) {
	if c.proj == nil {
		return
	}
	area := c.proj.Area
	paint := rendering.StrokePaint(c.Style.Grid, 1)
	paint.StrokeCap = rendering.CapButt
	n := max(c.Style.GridLines, 1)
	for i := range n {
		y := area.Bottom
		if n > 1 {
			y -= float64(i) / float64(n-1) * area.Height()
		}
		canvas.DrawLine(rendering.Offset{X: area.Left, Y: y}, rendering.Offset{X: area.Right, Y: y}, paint)
	}
}

func (c *LineChart) paintFill(fraction float64, canvas rendering.Canvas, _ *scheduler.Frame) {
	if c.fit == nil || c.fit.Fill().IsEmpty() {
		return
	}
	canvas.DrawPath(c.fit.Fill(), rendering.FillPaint(c.Style.Fill.ScaleAlpha(fraction)))
}

func (c *LineChart) paintStroke(fraction float64, canvas rendering.Canvas, _ *scheduler.Frame) {
	if c.fit == nil {
		return
	}
	path := c.fit.Stroke(fraction)
	if path.IsEmpty() {
		return
	}
	canvas.DrawPath(path, rendering.StrokePaint(c.Style.Stroke, c.Style.StrokeWidth))
}

func (c *LineChart) paintLabels(_ float64, canvas rendering.Canvas, _ *scheduler.Frame) {
	style := c.Style.Label
	style.Align = rendering.TextAlignCenter
	lineHeight := rendering.MeasureText("0", style).Height
	for _, l := range c.xLabels {
		canvas.DrawText(l.Text, l.Position.Add(rendering.Offset{Y: lineHeight + 2}), style)
	}
	style.Align = rendering.TextAlignRight
	for _, l := range c.yLabels {
		canvas.DrawText(l.Text, l.Position.Add(rendering.Offset{X: -6, Y: lineHeight / 3}), style)
	}
}

// paintHover marks the point under the pointer. Moving onto another point
// restarts the hover phase, so the marker grows in again.
func (c *LineChart) paintHover(fraction float64, canvas rendering.Canvas, f *scheduler.Frame) {
	if c.fit == nil {
		return
	}
	i, ok := -1, false
	if f.Pointer != nil {
		i, ok = c.fit.Hover(*f.Pointer, c.Style.HoverRadius*2)
	}
	switch {
	case !ok:
		c.hovered = -1
		return
	case i != c.hovered:
		c.hovered = i
		f.Restart()
		fraction = 0
	case f.Cycle > 0:
		fraction = 1
	}
	pt := c.fit.Points[i]
	area := c.proj.Area
	guide := rendering.StrokePaint(c.Style.Grid, 1)
	guide.Dash = &rendering.DashPattern{Intervals: []float64{4, 4}}
	canvas.DrawLine(rendering.Offset{X: pt.X, Y: area.Top}, rendering.Offset{X: pt.X, Y: area.Bottom}, guide)
	canvas.DrawCircle(pt, c.hover.Evaluate(fraction), rendering.FillPaint(c.Style.Hover))
}

// ValueLabels returns n labels evenly spanning [lo, hi], formatted with at
// most two decimals.
func ValueLabels(lo, hi float64, n int) []geometry.Label {
	if n < 2 {
		return []geometry.Label{geometry.ValueLabel(lo, formatValue(lo))}
	}
	out := make([]geometry.Label, n)
	for i := range n {
		v := lo + (hi-lo)*float64(i)/float64(n-1)
		out[i] = geometry.ValueLabel(v, formatValue(v))
	}
	return out
}

func formatValue(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}
