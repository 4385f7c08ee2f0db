package testing

import (
	"fmt"
	"image"
	"math"
	"sort"

	"github.com/go-drift/chart/pkg/rendering"
)

// DisplayOp represents a serialized canvas drawing operation.
type DisplayOp struct {
	Op     string         `json:"op"`
	Params map[string]any `json:"params,omitempty"`
}

// serializingCanvas implements rendering.Canvas and records ops as DisplayOp.
type serializingCanvas struct {
	ops  []DisplayOp
	size rendering.Size
}

func (c *serializingCanvas) Clear() {
	c.ops = append(c.ops, DisplayOp{Op: "clear"})
}

func (c *serializingCanvas) DrawPath(path *rendering.Path, paint rendering.Paint) {
	params := serializePaint(paint)
	params["commands"] = path.Len()
	if !path.IsEmpty() {
		params["bounds"] = serializeRect(path.Bounds())
	}
	c.ops = append(c.ops, DisplayOp{Op: "drawPath", Params: params})
}

func (c *serializingCanvas) DrawLine(start, end rendering.Offset, paint rendering.Paint) {
	params := serializePaint(paint)
	params["start"] = serializeOffset(start)
	params["end"] = serializeOffset(end)
	c.ops = append(c.ops, DisplayOp{Op: "drawLine", Params: params})
}

func (c *serializingCanvas) DrawCircle(center rendering.Offset, radius float64, paint rendering.Paint) {
	params := serializePaint(paint)
	params["center"] = serializeOffset(center)
	params["radius"] = round2(radius)
	c.ops = append(c.ops, DisplayOp{Op: "drawCircle", Params: params})
}

func (c *serializingCanvas) DrawText(text string, position rendering.Offset, style rendering.TextStyle) {
	c.ops = append(c.ops, DisplayOp{
		Op: "drawText",
		Params: sortedMap(
			"text", text,
			"position", serializeOffset(position),
			"color", serializeColor(style.Color),
			"align", int(style.Align),
		),
	})
}

func (c *serializingCanvas) DrawImage(img image.Image, position rendering.Offset) {
	b := img.Bounds()
	c.ops = append(c.ops, DisplayOp{
		Op:     "drawImage",
		Params: sortedMap("position", serializeOffset(position), "size", [2]int{b.Dx(), b.Dy()}),
	})
}

func (c *serializingCanvas) Size() rendering.Size {
	return c.size
}

// serializeDisplayList replays dl and returns the ops of its last frame,
// which starts at the final clear.
func serializeDisplayList(dl *rendering.DisplayList) []DisplayOp {
	c := &serializingCanvas{size: dl.Size()}
	dl.Paint(c)
	ops := c.ops
	for i := len(ops) - 1; i >= 0; i-- {
		if ops[i].Op == "clear" {
			return ops[i:]
		}
	}
	return ops
}

func serializePaint(p rendering.Paint) map[string]any {
	m := sortedMap("color", serializeColor(p.EffectiveColor()), "style", p.Style.String())
	if p.Style != rendering.PaintStyleFill {
		m["strokeWidth"] = round2(p.StrokeWidth)
	}
	if p.Dash != nil {
		m["dash"] = p.Dash.Intervals
	}
	return m
}

func serializeRect(r rendering.Rect) map[string]any {
	return sortedMap(
		"left", round2(r.Left),
		"top", round2(r.Top),
		"right", round2(r.Right),
		"bottom", round2(r.Bottom),
	)
}

func serializeOffset(o rendering.Offset) [2]float64 {
	return [2]float64{round2(o.X), round2(o.Y)}
}

// serializeColor formats a color as 0xAARRGGBB.
func serializeColor(c rendering.Color) string {
	return fmt.Sprintf("0x%08X", uint32(c))
}

// round2 rounds a float64 to 2 decimal places.
func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

// sortedMap creates a map from alternating key-value pairs.
// encoding/json writes map keys in sorted order, so snapshots are stable.
func sortedMap(kvs ...any) map[string]any {
	m := make(map[string]any, len(kvs)/2)
	for i := 0; i+1 < len(kvs); i += 2 {
		m[kvs[i].(string)] = kvs[i+1]
	}
	return m
}

// sortedKeys returns the keys of a map in sorted order.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
