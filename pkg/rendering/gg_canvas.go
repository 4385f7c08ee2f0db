package rendering

import (
	"image"
	"io"

	"github.com/gogpu/gg"

	"github.com/go-drift/chart"
)

// GGCanvas is a [Canvas] backed by a software gg drawing context.
type GGCanvas struct {
	dc   *gg.Context
	size Size
}

// NewGGCanvas creates a canvas of width x height pixels.
func NewGGCanvas(width, height int) *GGCanvas {
	return &GGCanvas{
		dc:   gg.NewContext(width, height),
		size: Size{Width: float64(width), Height: float64(height)},
	}
}

// NewGGOffscreen is an [OffscreenFactory] backed by gg.
func NewGGOffscreen(size Size) Offscreen {
	w, h := size.Pixels()
	return NewGGCanvas(max(w, 1), max(h, 1))
}

// Context exposes the underlying gg context.
func (c *GGCanvas) Context() *gg.Context {
	return c.dc
}

// Clear resets the canvas to transparent.
func (c *GGCanvas) Clear() {
	c.dc.Clear()
}

func (c *GGCanvas) DrawPath(path *Path, paint Paint) {
	if path == nil || path.IsEmpty() {
		return
	}
	c.dc.ClearPath()
	for _, cmd := range path.Commands {
		a := cmd.Args
		switch cmd.Op {
		case PathOpMoveTo:
			c.dc.MoveTo(a[0], a[1])
		case PathOpLineTo:
			c.dc.LineTo(a[0], a[1])
		case PathOpQuadTo:
			c.dc.QuadraticTo(a[0], a[1], a[2], a[3])
		case PathOpCubicTo:
			c.dc.CubicTo(a[0], a[1], a[2], a[3], a[4], a[5])
		case PathOpClose:
			c.dc.ClosePath()
		}
	}
	if path.FillRule == FillRuleEvenOdd {
		c.dc.SetFillRule(gg.FillRuleEvenOdd)
	} else {
		c.dc.SetFillRule(gg.FillRuleNonZero)
	}
	c.finish(paint)
}

func (c *GGCanvas) DrawLine(start, end Offset, paint Paint) {
	c.dc.ClearPath()
	c.dc.DrawLine(start.X, start.Y, end.X, end.Y)
	paint.Style = PaintStyleStroke
	c.finish(paint)
}

func (c *GGCanvas) DrawCircle(center Offset, radius float64, paint Paint) {
	c.dc.ClearPath()
	c.dc.DrawCircle(center.X, center.Y, radius)
	c.finish(paint)
}

// DrawText rasterizes text with the built-in label face and blits it.
func (c *GGCanvas) DrawText(text string, position Offset, style TextStyle) {
	img, top := RasterizeText(text, position, style)
	if img == nil {
		return
	}
	c.DrawImage(img, top)
}

func (c *GGCanvas) DrawImage(img image.Image, position Offset) {
	if img == nil {
		return
	}
	c.dc.DrawImage(gg.ImageBufFromImage(img), position.X, position.Y)
}

func (c *GGCanvas) Size() Size {
	return c.size
}

// Image returns a snapshot of the canvas pixels.
func (c *GGCanvas) Image() image.Image {
	return c.dc.Image()
}

// EncodePNG writes the canvas as PNG.
func (c *GGCanvas) EncodePNG(w io.Writer) error {
	return c.dc.EncodePNG(w)
}

func (c *GGCanvas) applyPaint(p Paint) {
	r, g, b, a := p.EffectiveColor().RGBAF()
	c.dc.SetRGBA(r, g, b, a)
	c.dc.SetLineWidth(p.StrokeWidth)
	switch p.StrokeCap {
	case CapRound:
		c.dc.SetLineCap(gg.LineCapRound)
	case CapSquare:
		c.dc.SetLineCap(gg.LineCapSquare)
	default:
		c.dc.SetLineCap(gg.LineCapButt)
	}
	switch p.StrokeJoin {
	case JoinRound:
		c.dc.SetLineJoin(gg.LineJoinRound)
	case JoinBevel:
		c.dc.SetLineJoin(gg.LineJoinBevel)
	default:
		c.dc.SetLineJoin(gg.LineJoinMiter)
	}
	if p.MiterLimit > 0 {
		c.dc.SetMiterLimit(p.MiterLimit)
	} else {
		c.dc.SetMiterLimit(4)
	}
	if p.Dash != nil && len(p.Dash.Intervals) >= 2 {
		c.dc.SetDash(p.Dash.Intervals...)
		c.dc.SetDashOffset(p.Dash.Phase)
	} else {
		c.dc.ClearDash()
	}
}

func (c *GGCanvas) finish(p Paint) {
	c.applyPaint(p)
	var err error
	switch p.Style {
	case PaintStyleStroke:
		err = c.dc.Stroke()
	case PaintStyleFillAndStroke:
		if err = c.dc.FillPreserve(); err == nil {
			err = c.dc.Stroke()
		}
	default:
		err = c.dc.Fill()
	}
	if err != nil {
		chart.Logger().Warn("rendering: draw failed", "style", p.Style.String(), "err", err)
	}
}
