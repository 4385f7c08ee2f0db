package spline

import (
	"honnef.co/go/curve"

	"github.com/go-drift/chart/pkg/rendering"
)

// Options configures NewFit.
type Options struct {
	// Reduce runs ReduceExtremes before fitting.
	Reduce bool
	// StrokeWidth is used to tuck the fill under the stroke.
	StrokeWidth float64
	LUT         LUTOptions
}

// Fit is the fitted geometry of one projected series. Build it again
// whenever the data or the surface size change.
type Fit struct {
	Points   []rendering.Offset
	Quads    []Quad
	Cubics   []curve.CubicBez
	LUT      *LUT
	Baseline float64

	smooth *rendering.Path
	fill   *rendering.Path
}

// NewFit fits points and precomputes the LUT, the full stroke and the fill.
func NewFit(points []rendering.Offset, baseline float64, opts Options) (*Fit, error) {
	if opts.Reduce {
		reduced, err := ReduceExtremes(points)
		if err != nil {
			return nil, err
		}
		points = reduced
	}
	f := &Fit{
		Points:   points,
		Quads:    ControlQuads(points),
		Baseline: baseline,
	}
	f.Cubics = Cubics(f.Quads)
	f.LUT = NewLUT(f.Cubics, opts.LUT)
	f.smooth = SmoothPath(f.Quads)
	f.fill = FillPath(f.Cubics, opts.StrokeWidth, baseline)
	return f, nil
}

// Stroke returns the curve revealed up to fraction. At 1 it returns the
// exact cubic path instead of the sampled polyline.
func (f *Fit) Stroke(fraction float64) *rendering.Path {
	if fraction >= 1 {
		return f.smooth
	}
	return f.LUT.StrokePath(fraction)
}

// Fill returns the closed area under the curve.
func (f *Fit) Fill() *rendering.Path {
	return f.fill
}

// Hover returns the index of the fitted point under pt.
func (f *Fit) Hover(pt rendering.Offset, radius float64) (int, bool) {
	return FindHoveringPoint(pt, f.Points, radius)
}
