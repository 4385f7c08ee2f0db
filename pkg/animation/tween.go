package animation

import "github.com/go-drift/chart/pkg/rendering"

// Tween interpolates between Begin and End for a fraction in [0, 1].
//
// Use the helper constructors ([TweenFloat64], [TweenColor], [TweenOffset])
// for common types, or create custom tweens with a Lerp function.
type Tween[T any] struct {
	// Begin is the value at t = 0.
	Begin T
	// End is the value at t = 1.
	End T
	// Lerp interpolates between a and b at progress t.
	Lerp func(a, b T, t float64) T
}

// Evaluate returns the interpolated value at t.
func (tw *Tween[T]) Evaluate(t float64) T {
	if tw.Lerp == nil {
		return tw.End
	}
	return tw.Lerp(tw.Begin, tw.End, t)
}

// EvaluateEased returns the value at t after applying e.
func (tw *Tween[T]) EvaluateEased(t float64, e Easing) T {
	if e != nil {
		t = e(t)
	}
	return tw.Evaluate(t)
}

// LerpFloat64 linearly interpolates between two float64 values.
func LerpFloat64(a, b float64, t float64) float64 {
	return a + (b-a)*t
}

// LerpOffset linearly interpolates between two Offset values.
func LerpOffset(a, b rendering.Offset, t float64) rendering.Offset {
	return a.Lerp(b, t)
}

// LerpColor linearly interpolates each ARGB channel.
func LerpColor(a, b rendering.Color, t float64) rendering.Color {
	channel := func(shift uint) uint32 {
		ca := float64((a >> shift) & 0xFF)
		cb := float64((b >> shift) & 0xFF)
		return uint32(LerpFloat64(ca, cb, t)) & 0xFF
	}
	return rendering.Color(channel(24)<<24 | channel(16)<<16 | channel(8)<<8 | channel(0))
}

// TweenFloat64 creates a tween for float64 values.
func TweenFloat64(begin, end float64) *Tween[float64] {
	return &Tween[float64]{Begin: begin, End: end, Lerp: LerpFloat64}
}

// TweenOffset creates a tween for Offset values.
func TweenOffset(begin, end rendering.Offset) *Tween[rendering.Offset] {
	return &Tween[rendering.Offset]{Begin: begin, End: end, Lerp: LerpOffset}
}

// TweenColor creates a tween for Color values.
func TweenColor(begin, end rendering.Color) *Tween[rendering.Color] {
	return &Tween[rendering.Color]{Begin: begin, End: end, Lerp: LerpColor}
}
