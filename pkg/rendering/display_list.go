package rendering

import "image"

// OpKind identifies a recorded drawing operation.
type OpKind int

const (
	OpClear OpKind = iota
	OpPath
	OpLine
	OpCircle
	OpText
	OpImage
)

// String returns a human-readable representation of the op kind.
func (k OpKind) String() string {
	switch k {
	case OpClear:
		return "clear"
	case OpPath:
		return "path"
	case OpLine:
		return "line"
	case OpCircle:
		return "circle"
	case OpText:
		return "text"
	case OpImage:
		return "image"
	default:
		return "unknown"
	}
}

// DisplayList is an immutable list of drawing operations.
// It can be replayed onto any Canvas implementation.
type DisplayList struct {
	ops  []displayOp
	size Size
}

// Paint replays the recorded operations onto the provided canvas.
func (d *DisplayList) Paint(canvas Canvas) {
	for _, op := range d.ops {
		op.execute(canvas)
	}
}

// Size returns the size recorded when the display list was created.
func (d *DisplayList) Size() Size {
	return d.size
}

// Len returns the number of recorded operations.
func (d *DisplayList) Len() int {
	return len(d.ops)
}

// RecordingCanvas records drawing commands instead of rasterizing them.
//
// It implements [Offscreen] so it can stand in for a real surface in
// tests; Image returns a blank image of the recorded size.
type RecordingCanvas struct {
	ops  []displayOp
	size Size
}

// NewRecordingCanvas returns an empty recorder of the given size.
func NewRecordingCanvas(size Size) *RecordingCanvas {
	return &RecordingCanvas{size: size}
}

// NewRecordingOffscreen is an [OffscreenFactory] producing recorders.
func NewRecordingOffscreen(size Size) Offscreen {
	return NewRecordingCanvas(size)
}

// EndRecording returns a display list of everything recorded so far and
// resets the recorder.
func (c *RecordingCanvas) EndRecording() *DisplayList {
	ops := make([]displayOp, len(c.ops))
	copy(ops, c.ops)
	c.ops = c.ops[:0]
	return &DisplayList{ops: ops, size: c.size}
}

// DisplayList returns a copy of everything recorded so far without
// resetting the recorder.
func (c *RecordingCanvas) DisplayList() *DisplayList {
	ops := make([]displayOp, len(c.ops))
	copy(ops, c.ops)
	return &DisplayList{ops: ops, size: c.size}
}

// Reset discards every recorded operation.
func (c *RecordingCanvas) Reset() {
	c.ops = c.ops[:0]
}

// Count returns how many operations of kind were recorded.
func (c *RecordingCanvas) Count(kind OpKind) int {
	n := 0
	for _, op := range c.ops {
		if op.kind() == kind {
			n++
		}
	}
	return n
}

// Kinds returns the recorded operation kinds in order.
func (c *RecordingCanvas) Kinds() []OpKind {
	kinds := make([]OpKind, len(c.ops))
	for i, op := range c.ops {
		kinds[i] = op.kind()
	}
	return kinds
}

// Texts returns every string passed to DrawText, in order.
func (c *RecordingCanvas) Texts() []string {
	var out []string
	for _, op := range c.ops {
		if t, ok := op.(opText); ok {
			out = append(out, t.text)
		}
	}
	return out
}

func (c *RecordingCanvas) Clear() {
	c.ops = append(c.ops, opClear{})
}

func (c *RecordingCanvas) DrawPath(path *Path, paint Paint) {
	cp := &Path{FillRule: path.FillRule, Commands: append([]PathCommand(nil), path.Commands...)}
	c.ops = append(c.ops, opPath{path: cp, paint: paint})
}

func (c *RecordingCanvas) DrawLine(start, end Offset, paint Paint) {
	c.ops = append(c.ops, opLine{start: start, end: end, paint: paint})
}

func (c *RecordingCanvas) DrawCircle(center Offset, radius float64, paint Paint) {
	c.ops = append(c.ops, opCircle{center: center, radius: radius, paint: paint})
}

func (c *RecordingCanvas) DrawText(text string, position Offset, style TextStyle) {
	c.ops = append(c.ops, opText{text: text, position: position, style: style})
}

func (c *RecordingCanvas) DrawImage(img image.Image, position Offset) {
	c.ops = append(c.ops, opImage{image: img, position: position})
}

func (c *RecordingCanvas) Size() Size {
	return c.size
}

// Image returns a blank image of the recorder's size.
func (c *RecordingCanvas) Image() image.Image {
	w, h := c.size.Pixels()
	return image.NewNRGBA(image.Rect(0, 0, w, h))
}

type displayOp interface {
	execute(canvas Canvas)
	kind() OpKind
}

type opClear struct{}

func (opClear) execute(canvas Canvas) { canvas.Clear() }
func (opClear) kind() OpKind          { return OpClear }

type opPath struct {
	path  *Path
	paint Paint
}

func (op opPath) execute(canvas Canvas) { canvas.DrawPath(op.path, op.paint) }
func (opPath) kind() OpKind             { return OpPath }

type opLine struct {
	start, end Offset
	paint      Paint
}

func (op opLine) execute(canvas Canvas) { canvas.DrawLine(op.start, op.end, op.paint) }
func (opLine) kind() OpKind             { return OpLine }

type opCircle struct {
	center Offset
	radius float64
	paint  Paint
}

func (op opCircle) execute(canvas Canvas) { canvas.DrawCircle(op.center, op.radius, op.paint) }
func (opCircle) kind() OpKind             { return OpCircle }

type opText struct {
	text     string
	position Offset
	style    TextStyle
}

func (op opText) execute(canvas Canvas) { canvas.DrawText(op.text, op.position, op.style) }
func (opText) kind() OpKind             { return OpText }

type opImage struct {
	image    image.Image
	position Offset
}

func (op opImage) execute(canvas Canvas) { canvas.DrawImage(op.image, op.position) }
func (opImage) kind() OpKind             { return OpImage }
