package spline

import (
	"math"

	"honnef.co/go/curve"

	"github.com/go-drift/chart/pkg/rendering"
)

// LUTOptions controls sampling density. Zero values select the defaults.
type LUTOptions struct {
	// SamplesPerStep is the number of samples per Step of arc length.
	// Defaults to 4.
	SamplesPerStep int
	// Step is the arc length, in pixels, covered by SamplesPerStep samples.
	// Defaults to 16.
	Step float64
	// Accuracy is the arc length accuracy passed to curve. Defaults to 0.1.
	Accuracy float64
}

func (o LUTOptions) withDefaults() LUTOptions {
	if o.SamplesPerStep <= 0 {
		o.SamplesPerStep = 4
	}
	if o.Step <= 0 {
		o.Step = 16
	}
	if o.Accuracy <= 0 {
		o.Accuracy = 0.1
	}
	return o
}

// LUT is a flattened sample table of a chain of cubics, built once per
// geometry change. Drawing the stroke to fraction f means drawing a polyline
// through the first f*Len() samples.
type LUT struct {
	points []rendering.Offset
}

// NewLUT samples every cubic SamplesPerStep * ceil(arclen/Step) times (at
// least SamplesPerStep) and appends the final endpoint.
func NewLUT(cubics []curve.CubicBez, opts LUTOptions) *LUT {
	opts = opts.withDefaults()
	lut := &LUT{}
	for _, c := range cubics {
		steps := math.Ceil(c.Arclen(opts.Accuracy) / opts.Step)
		n := opts.SamplesPerStep * max(1, int(steps))
		for j := range n {
			lut.points = append(lut.points, fromPoint(c.Eval(float64(j)/float64(n))))
		}
	}
	if len(cubics) > 0 {
		lut.points = append(lut.points, fromPoint(cubics[len(cubics)-1].P3))
	}
	return lut
}

// Len returns the number of samples.
func (l *LUT) Len() int {
	return len(l.points)
}

// Points returns every sample. The slice must not be modified.
func (l *LUT) Points() []rendering.Offset {
	return l.points
}

// Prefix returns the first floor(f * Len()) samples. f is clamped to [0, 1].
func (l *LUT) Prefix(f float64) []rendering.Offset {
	f = math.Max(0, math.Min(1, f))
	return l.points[:int(f*float64(len(l.points)))]
}

// StrokePath returns a polyline through Prefix(f). Fewer than two samples
// yield an empty path.
func (l *LUT) StrokePath(f float64) *rendering.Path {
	return rendering.Polyline(l.Prefix(f))
}
