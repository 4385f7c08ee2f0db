package rendering

import "fmt"

// PaintStyle describes how shapes are filled or stroked.
type PaintStyle int

const (
	// PaintStyleFill fills the shape interior.
	PaintStyleFill PaintStyle = iota

	// PaintStyleStroke draws only the outline.
	PaintStyleStroke

	// PaintStyleFillAndStroke fills and then strokes the outline.
	PaintStyleFillAndStroke
)

// String returns a human-readable representation of the paint style.
func (s PaintStyle) String() string {
	switch s {
	case PaintStyleFill:
		return "fill"
	case PaintStyleStroke:
		return "stroke"
	case PaintStyleFillAndStroke:
		return "fill_and_stroke"
	default:
		return fmt.Sprintf("PaintStyle(%d)", int(s))
	}
}

// StrokeCap describes how stroke endpoints are drawn.
type StrokeCap int

const (
	CapButt   StrokeCap = iota // Flat edge at endpoint (default)
	CapRound                   // Semicircle at endpoint
	CapSquare                  // Square extending past endpoint
)

// String returns a human-readable representation of the stroke cap.
func (c StrokeCap) String() string {
	switch c {
	case CapButt:
		return "butt"
	case CapRound:
		return "round"
	case CapSquare:
		return "square"
	default:
		return fmt.Sprintf("StrokeCap(%d)", int(c))
	}
}

// StrokeJoin describes how stroke corners are drawn.
type StrokeJoin int

const (
	JoinMiter StrokeJoin = iota // Sharp corner (default)
	JoinRound                   // Rounded corner
	JoinBevel                   // Flattened corner
)

// String returns a human-readable representation of the stroke join.
func (j StrokeJoin) String() string {
	switch j {
	case JoinMiter:
		return "miter"
	case JoinRound:
		return "round"
	case JoinBevel:
		return "bevel"
	default:
		return fmt.Sprintf("StrokeJoin(%d)", int(j))
	}
}

// DashPattern defines a stroke dash pattern as alternating on/off lengths.
//
// The pattern repeats along the stroke. For example, Intervals of [10, 5]
// draws 10 pixels on, 5 pixels off, repeating. Intervals of [10, 5, 5, 5]
// draws 10 on, 5 off, 5 on, 5 off, repeating.
type DashPattern struct {
	Intervals []float64 // Alternating on/off lengths; must have even count >= 2, all > 0
	Phase     float64   // Starting offset into the pattern in pixels
}

// Paint describes how to draw a shape on the canvas.
//
// A zero-value Paint fills with transparent black and draws nothing.
// Use DefaultPaint, StrokePaint or FillPaint for usable values.
type Paint struct {
	Color       Color
	Style       PaintStyle // Fill, stroke, or both
	StrokeWidth float64    // Width of stroke in pixels

	// Stroke styling (only applies when Style includes stroke)
	StrokeCap  StrokeCap    // How endpoints are drawn; 0 = CapButt
	StrokeJoin StrokeJoin   // How corners are drawn; 0 = JoinMiter
	MiterLimit float64      // Miter join limit before beveling; 0 defaults to 4.0
	Dash       *DashPattern // Dash pattern; nil = solid stroke

	// Alpha is the overall opacity 0.0-1.0 multiplied into Color.
	// Zero is treated as fully opaque so that literal Paint values work.
	Alpha float64
}

// DefaultPaint returns a basic opaque white fill paint.
func DefaultPaint() Paint {
	return Paint{
		Color:       ColorWhite,
		Style:       PaintStyleFill,
		StrokeWidth: 1,
		StrokeCap:   CapButt,
		StrokeJoin:  JoinMiter,
		MiterLimit:  4.0,
		Alpha:       1.0,
	}
}

// StrokePaint returns a round-capped stroke paint.
func StrokePaint(color Color, width float64) Paint {
	p := DefaultPaint()
	p.Color = color
	p.Style = PaintStyleStroke
	p.StrokeWidth = width
	p.StrokeCap = CapRound
	p.StrokeJoin = JoinRound
	return p
}

// FillPaint returns a fill paint of the given color.
func FillPaint(color Color) Paint {
	p := DefaultPaint()
	p.Color = color
	return p
}

// EffectiveColor returns Color with Alpha applied.
func (p Paint) EffectiveColor() Color {
	if p.Alpha <= 0 {
		return p.Color
	}
	return p.Color.ScaleAlpha(p.Alpha)
}
