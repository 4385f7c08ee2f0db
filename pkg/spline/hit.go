package spline

import "github.com/go-drift/chart/pkg/rendering"

// FindHoveringPoint returns the index of the first point whose square of
// half-side radius contains pt. It is a linear scan.
func FindHoveringPoint(pt rendering.Offset, points []rendering.Offset, radius float64) (int, bool) {
	for i, p := range points {
		if rendering.RectFromCenter(p, radius).Contains(pt) {
			return i, true
		}
	}
	return -1, false
}
