package spline

import (
	"honnef.co/go/curve"

	"github.com/go-drift/chart/pkg/rendering"
)

const (
	offsetAccuracy  = 0.1
	offsetDimension = 1e-3
)

// FillPath builds the area under the curve: every cubic is offset by half the
// stroke width (downwards for a left-to-right curve, so the fill tucks under
// the stroke) and the outline is closed down to baseline.
//
// It returns an empty path when cubics is empty.
func FillPath(cubics []curve.CubicBez, strokeWidth, baseline float64) *rendering.Path {
	path := rendering.NewPath()
	if len(cubics) == 0 {
		return path
	}
	d := strokeWidth / 2
	started := false
	var first, last rendering.Offset
	for _, c := range cubics {
		var segment curve.BezPath
		if d == 0 {
			segment = curve.BezPath{curve.MoveTo(c.P0), curve.CubicTo(c.P1, c.P2, c.P3)}
		} else {
			co := curve.NewCubicOffset(c, d, offsetDimension)
			segment = curve.FitToBezPathOpt(&co, offsetAccuracy)
		}
		for _, el := range segment {
			switch el.Kind {
			case curve.MoveToKind:
				p := fromPoint(el.P0)
				if !started {
					path.MoveTo(p.X, p.Y)
					first, started = p, true
				} else if !p.ApproxEqual(last) {
					path.LineTo(p.X, p.Y)
				}
				last = p
			case curve.LineToKind:
				path.LineTo(el.P0.X, el.P0.Y)
				last = fromPoint(el.P0)
			case curve.QuadToKind:
				path.QuadTo(el.P0.X, el.P0.Y, el.P1.X, el.P1.Y)
				last = fromPoint(el.P1)
			case curve.CubicToKind:
				path.CubicTo(el.P0.X, el.P0.Y, el.P1.X, el.P1.Y, el.P2.X, el.P2.Y)
				last = fromPoint(el.P2)
			}
		}
	}
	path.LineTo(last.X, baseline)
	path.LineTo(first.X, baseline)
	path.Close()
	return path
}
