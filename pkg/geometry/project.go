package geometry

import (
	"math"

	"github.com/go-drift/chart/pkg/errors"
	"github.com/go-drift/chart/pkg/rendering"
)

// ValueRange is an optional [min, max] pair. A nil bound is computed from
// the data being projected.
type ValueRange struct {
	Min *float64
	Max *float64
}

// Bounds returns a fully specified range.
func Bounds(min, max float64) ValueRange {
	return ValueRange{Min: &min, Max: &max}
}

// Resolve fills in missing bounds from values in a single pass. With no
// values and no bounds it returns (0, 0).
func (r ValueRange) Resolve(values []float64) (lo, hi float64) {
	if r.Min != nil && r.Max != nil {
		return *r.Min, *r.Max
	}
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range values {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if len(values) == 0 {
		lo, hi = 0, 0
	}
	if r.Min != nil {
		lo = *r.Min
	}
	if r.Max != nil {
		hi = *r.Max
	}
	return lo, hi
}

// Project maps each value into [0, output] using the given range.
//
// A degenerate range (max == min) maps every value to output/2, so a flat
// series is drawn through the middle of the axis instead of producing NaN.
func Project(values []float64, output float64, r ValueRange) []float64 {
	lo, hi := r.Resolve(values)
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = interpolate(v, lo, hi, output)
	}
	return out
}

// ProjectY is Project with the axis flipped: output - projected.
func ProjectY(values []float64, output float64, r ValueRange) []float64 {
	out := Project(values, output, r)
	for i, v := range out {
		out[i] = output - v
	}
	return out
}

func interpolate(v, lo, hi, output float64) float64 {
	span := hi - lo
	if span == 0 {
		return output / 2
	}
	return (v - lo) / span * output
}

// Padding insets the plot area from the edges of the surface.
type Padding struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

// UniformPadding returns a Padding with every side set to v.
func UniformPadding(v float64) Padding {
	return Padding{Top: v, Right: v, Bottom: v, Left: v}
}

// Inner returns the plot area for a surface of the given size. Extents
// that would be negative are clamped to zero.
func (p Padding) Inner(size rendering.Size) rendering.Rect {
	w := math.Max(0, size.Width-p.Left-p.Right)
	h := math.Max(0, size.Height-p.Top-p.Bottom)
	return rendering.RectFromLTWH(p.Left, p.Top, w, h)
}

// Series is a raw data series.
type Series struct {
	X      []float64
	Y      []float64
	XRange ValueRange
	YRange ValueRange
}

// Len returns the number of points in the series.
func (s Series) Len() int {
	return len(s.X)
}

// Validate reports a precondition error if X and Y differ in length.
func (s Series) Validate() error {
	if len(s.X) != len(s.Y) {
		return errors.Preconditionf("geometry.Series", errors.ErrLengthMismatch, "len(x)=%d len(y)=%d", len(s.X), len(s.Y))
	}
	return nil
}

// Projection holds the resolved ranges of one series laid out in one plot
// area. It is recomputed whenever the data or the surface size changes.
type Projection struct {
	Area       rendering.Rect
	XMin, XMax float64
	YMin, YMax float64
}

// NewProjection resolves the series ranges against the plot area of a
// surface of the given size.
func NewProjection(s Series, size rendering.Size, pad Padding) (*Projection, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	p := &Projection{Area: pad.Inner(size)}
	p.XMin, p.XMax = s.XRange.Resolve(s.X)
	p.YMin, p.YMax = s.YRange.Resolve(s.Y)
	return p, nil
}

// X maps a raw x value to a surface x coordinate.
func (p *Projection) X(v float64) float64 {
	return p.Area.Left + interpolate(v, p.XMin, p.XMax, p.Area.Width())
}

// Y maps a raw y value to a surface y coordinate (flipped).
func (p *Projection) Y(v float64) float64 {
	h := p.Area.Height()
	return p.Area.Top + h - interpolate(v, p.YMin, p.YMax, h)
}

// Point maps a raw (x, y) pair to surface coordinates.
func (p *Projection) Point(x, y float64) rendering.Offset {
	return rendering.Offset{X: p.X(x), Y: p.Y(y)}
}

// Points projects every point of s. s must have the same length invariant
// as the series the projection was built from.
func (p *Projection) Points(s Series) []rendering.Offset {
	n := min(len(s.X), len(s.Y))
	out := make([]rendering.Offset, n)
	for i := range n {
		out[i] = p.Point(s.X[i], s.Y[i])
	}
	return out
}

// Baseline returns the surface y coordinate of the bottom of the plot area.
func (p *Projection) Baseline() float64 {
	return p.Area.Bottom
}
