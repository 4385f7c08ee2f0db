package rendering

import (
	"image"
	"image/draw"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// TextAlign controls the horizontal anchor of a text run.
type TextAlign int

const (
	TextAlignLeft TextAlign = iota
	TextAlignCenter
	TextAlignRight
)

// TextStyle describes how label text should be rendered.
type TextStyle struct {
	Color Color
	Align TextAlign
	// Scale is an integer magnification of the built-in bitmap face; 0 and
	// 1 both render at the native 13px height.
	Scale int
}

func (s TextStyle) scale() int {
	if s.Scale < 1 {
		return 1
	}
	return s.Scale
}

// labelFace is the fixed bitmap face used for axis labels.
var labelFace font.Face = basicfont.Face7x13

// MeasureText returns the pixel size of s rendered with style.
func MeasureText(s string, style TextStyle) Size {
	metrics := labelFace.Metrics()
	w := font.MeasureString(labelFace, s).Ceil()
	h := (metrics.Ascent + metrics.Descent).Ceil()
	k := float64(style.scale())
	return Size{Width: float64(w) * k, Height: float64(h) * k}
}

// RasterizeText renders s into a tightly sized RGBA image and returns it
// with the top-left position that places the text's baseline at anchor
// according to style.Align.
func RasterizeText(s string, anchor Offset, style TextStyle) (*image.RGBA, Offset) {
	metrics := labelFace.Metrics()
	w := font.MeasureString(labelFace, s).Ceil()
	h := (metrics.Ascent + metrics.Descent).Ceil()
	if w <= 0 || h <= 0 {
		return nil, anchor
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(style.Color.NRGBA()),
		Face: labelFace,
		Dot:  fixed.Point26_6{X: 0, Y: metrics.Ascent},
	}
	d.DrawString(s)

	k := style.scale()
	if k > 1 {
		scaled := image.NewRGBA(image.Rect(0, 0, w*k, h*k))
		xdraw.NearestNeighbor.Scale(scaled, scaled.Bounds(), dst, dst.Bounds(), draw.Over, nil)
		dst = scaled
	}

	width := float64(dst.Bounds().Dx())
	top := Offset{X: anchor.X, Y: anchor.Y - float64(metrics.Ascent.Ceil()*k)}
	switch style.Align {
	case TextAlignCenter:
		top.X -= width / 2
	case TextAlignRight:
		top.X -= width
	}
	return dst, top
}

// Downscale shrinks img by an integer supersampling factor using a
// Catmull-Rom filter. factor <= 1 returns img unchanged.
func Downscale(img image.Image, factor int) image.Image {
	if factor <= 1 {
		return img
	}
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()/factor, b.Dy()/factor))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}
