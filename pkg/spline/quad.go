package spline

import (
	"honnef.co/go/curve"

	"github.com/go-drift/chart/pkg/rendering"
)

// Quad is one smooth segment between two consecutive data points.
type Quad struct {
	Start rendering.Offset
	CP1   rendering.Offset
	CP2   rendering.Offset
	End   rendering.Offset
}

// ControlQuads builds one Quad per consecutive pair of points using
// horizontal tangents: CP1 = (mid, start.y), CP2 = (mid, end.y).
func ControlQuads(points []rendering.Offset) []Quad {
	if len(points) < 2 {
		return nil
	}
	quads := make([]Quad, len(points)-1)
	for i := range quads {
		p, next := points[i], points[i+1]
		mid := (p.X + next.X) / 2
		quads[i] = Quad{
			Start: p,
			CP1:   rendering.Offset{X: mid, Y: p.Y},
			CP2:   rendering.Offset{X: mid, Y: next.Y},
			End:   next,
		}
	}
	return quads
}

// Cubic returns q as a cubic Bézier.
func (q Quad) Cubic() curve.CubicBez {
	return curve.CubicBez{
		P0: toPoint(q.Start),
		P1: toPoint(q.CP1),
		P2: toPoint(q.CP2),
		P3: toPoint(q.End),
	}
}

// Cubics converts every quad to a cubic Bézier.
func Cubics(quads []Quad) []curve.CubicBez {
	out := make([]curve.CubicBez, len(quads))
	for i, q := range quads {
		out[i] = q.Cubic()
	}
	return out
}

// SmoothPath returns the full curve through every quad.
func SmoothPath(quads []Quad) *rendering.Path {
	path := rendering.NewPath()
	if len(quads) == 0 {
		return path
	}
	path.MoveTo(quads[0].Start.X, quads[0].Start.Y)
	for _, q := range quads {
		path.CubicTo(q.CP1.X, q.CP1.Y, q.CP2.X, q.CP2.Y, q.End.X, q.End.Y)
	}
	return path
}

func toPoint(o rendering.Offset) curve.Point {
	return curve.Pt(o.X, o.Y)
}

func fromPoint(p curve.Point) rendering.Offset {
	return rendering.Offset{X: p.X, Y: p.Y}
}
