package spline

import (
	"github.com/go-drift/chart/pkg/errors"
	"github.com/go-drift/chart/pkg/rendering"
)

// ReduceExtremes keeps only the points where the series stops rising or
// falling, plus the first and last point. Flat runs collapse onto the point
// where the preceding rise or fall ended.
//
// Points must have strictly increasing X; anything else is a caller error
// reported as a KindPrecondition *errors.ChartError wrapping
// errors.ErrNotIncreasing. The input is never reordered.
func ReduceExtremes(points []rendering.Offset) ([]rendering.Offset, error) {
	for i := 1; i < len(points); i++ {
		if !(points[i].X > points[i-1].X) {
			return nil, errors.Preconditionf("spline.ReduceExtremes", errors.ErrNotIncreasing,
				"x[%d]=%v after x[%d]=%v", i, points[i].X, i-1, points[i-1].X)
		}
	}
	if len(points) <= 2 {
		return append([]rendering.Offset(nil), points...), nil
	}

	out := make([]rendering.Offset, 0, len(points))
	out = append(out, points[0])
	prev := direction(points[0], points[1])
	for i := 1; i < len(points)-1; i++ {
		dir := direction(points[i], points[i+1])
		if dir != prev && prev != 0 {
			out = append(out, points[i])
		}
		prev = dir
	}
	return append(out, points[len(points)-1]), nil
}

func direction(a, b rendering.Offset) int {
	switch {
	case b.Y > a.Y:
		return 1
	case b.Y < a.Y:
		return -1
	default:
		return 0
	}
}
