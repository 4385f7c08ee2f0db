package rendering

import "fmt"

// PathOp is the kind of a path command.
type PathOp int

const (
	PathOpMoveTo  PathOp = iota // Args: x, y
	PathOpLineTo                // Args: x, y
	PathOpQuadTo                // Args: control x, y, end x, y
	PathOpCubicTo               // Args: two control points, then the end point
	PathOpClose                 // no Args
)

var pathOpNames = [...]string{"move_to", "line_to", "quad_to", "cubic_to", "close"}

func (o PathOp) String() string {
	if o >= 0 && int(o) < len(pathOpNames) {
		return pathOpNames[o]
	}
	return fmt.Sprintf("PathOp(%d)", int(o))
}

// PathFillRule selects how a filled path decides its interior.
type PathFillRule int

const (
	// FillRuleNonZero is the default. Chart areas never self-intersect, so
	// it is the only rule the chart shapes use.
	FillRuleNonZero PathFillRule = iota
	// FillRuleEvenOdd leaves overlapping regions as holes.
	FillRuleEvenOdd
)

func (r PathFillRule) String() string {
	switch r {
	case FillRuleNonZero:
		return "nonzero"
	case FillRuleEvenOdd:
		return "evenodd"
	default:
		return fmt.Sprintf("PathFillRule(%d)", int(r))
	}
}

// PathCommand is one recorded path operation.
type PathCommand struct {
	Op   PathOp
	Args []float64
}

// Path is a retained list of path commands. Canvases replay it on
// DrawPath, which keeps curve fitting independent of the rasterizer.
type Path struct {
	Commands []PathCommand
	FillRule PathFillRule
}

// NewPath returns an empty nonzero path.
func NewPath() *Path {
	return &Path{}
}

// Polyline returns an open path through pts. Fewer than two points
// produce an empty path, since a single point has nothing to stroke.
func Polyline(pts []Offset) *Path {
	p := &Path{}
	if len(pts) < 2 {
		return p
	}
	p.Commands = make([]PathCommand, 0, len(pts))
	p.MoveTo(pts[0].X, pts[0].Y)
	for _, pt := range pts[1:] {
		p.LineTo(pt.X, pt.Y)
	}
	return p
}

func (p *Path) add(op PathOp, args ...float64) {
	p.Commands = append(p.Commands, PathCommand{Op: op, Args: args})
}

// MoveTo starts a new subpath at (x, y).
func (p *Path) MoveTo(x, y float64) { p.add(PathOpMoveTo, x, y) }

// LineTo adds a straight segment to (x, y).
func (p *Path) LineTo(x, y float64) { p.add(PathOpLineTo, x, y) }

// QuadTo adds a quadratic segment to (x2, y2) through control (x1, y1).
func (p *Path) QuadTo(x1, y1, x2, y2 float64) { p.add(PathOpQuadTo, x1, y1, x2, y2) }

// CubicTo adds a cubic segment to (x3, y3) with controls (x1, y1), (x2, y2).
func (p *Path) CubicTo(x1, y1, x2, y2, x3, y3 float64) {
	p.add(PathOpCubicTo, x1, y1, x2, y2, x3, y3)
}

// Close joins the current subpath back to its start.
func (p *Path) Close() { p.add(PathOpClose) }

// IsEmpty reports whether the path has no commands.
func (p *Path) IsEmpty() bool { return len(p.Commands) == 0 }

// Clear drops every command, keeping the backing array.
func (p *Path) Clear() { p.Commands = p.Commands[:0] }

// Len returns the number of commands.
func (p *Path) Len() int { return len(p.Commands) }

// Current returns the end point of the last command that has one.
func (p *Path) Current() (Offset, bool) {
	for i := len(p.Commands) - 1; i >= 0; i-- {
		if a := p.Commands[i].Args; len(a) >= 2 {
			return Offset{X: a[len(a)-2], Y: a[len(a)-1]}, true
		}
	}
	return Offset{}, false
}

// Bounds returns the box around every coordinate, control points
// included. An empty path has the zero Rect.
func (p *Path) Bounds() Rect {
	var r Rect
	first := true
	for _, cmd := range p.Commands {
		for i := 0; i+1 < len(cmd.Args); i += 2 {
			pt := Rect{Left: cmd.Args[i], Top: cmd.Args[i+1], Right: cmd.Args[i], Bottom: cmd.Args[i+1]}
			if first {
				r, first = pt, false
				continue
			}
			r = r.Union(pt)
		}
	}
	return r
}
