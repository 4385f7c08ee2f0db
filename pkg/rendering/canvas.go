package rendering

import "image"

// Canvas is an immediate-mode drawing surface.
//
// The engine never reads pixels back from a Canvas. The only pixel access
// happens through [Offscreen.Image] when a rendered shape is cached.
type Canvas interface {
	// Clear resets the whole surface to transparent.
	Clear()

	// DrawPath strokes or fills a path with the provided paint.
	DrawPath(path *Path, paint Paint)

	// DrawLine draws a line segment with the provided paint.
	DrawLine(start, end Offset, paint Paint)

	// DrawCircle draws a circle with the provided paint.
	DrawCircle(center Offset, radius float64, paint Paint)

	// DrawText draws a single line of text anchored at position.
	DrawText(text string, position Offset, style TextStyle)

	// DrawImage draws an image with its top-left corner at the given position.
	DrawImage(img image.Image, position Offset)

	// Size returns the size of the canvas in pixels.
	Size() Size
}

// Offscreen is a Canvas whose pixels can be captured as an image, used as
// a render cache.
type Offscreen interface {
	Canvas

	// Image returns a snapshot of the rendered pixels.
	Image() image.Image
}

// OffscreenFactory creates offscreen surfaces sized for a shape group.
type OffscreenFactory func(size Size) Offscreen
