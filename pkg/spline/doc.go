// Package spline turns projected data points into smooth drawable curves.
//
// The pipeline is:
//
//	points -> ReduceExtremes (optional) -> ControlQuads -> Cubics
//	       -> LUT (progressive stroke reveal)
//	       -> FillPath (area under the curve)
//
// Control points use a horizontal-tangent rule: both control points of a
// segment sit at the horizontal midpoint of its endpoints, at the height of
// the nearer endpoint. Curves never overshoot their endpoints vertically.
//
// Arc lengths and curve offsets are computed with honnef.co/go/curve.
package spline
