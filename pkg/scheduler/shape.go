package scheduler

import (
	"image"
	"time"

	"github.com/go-drift/chart/pkg/animation"
	"github.com/go-drift/chart/pkg/errors"
	"github.com/go-drift/chart/pkg/rendering"
)

// PaintFunc draws a shape at fraction (already eased) onto c.
type PaintFunc func(fraction float64, c rendering.Canvas, f *Frame)

// Frame describes the tick a PaintFunc is called from.
type Frame struct {
	Group   string
	ShapeID string
	Phase   string
	// Size is the pixel size of the group's surface.
	Size rendering.Size
	// Now is the host timestamp of the tick.
	Now time.Duration
	// Pointer is the latest pointer position over the group, or nil.
	Pointer *rendering.Offset
	// State is the phase state the fraction came from.
	State animation.PhaseState
	// Raw is the un-eased fraction.
	Raw float64
	// Cycle is the phase cycle the fraction belongs to.
	Cycle int

	restart bool
}

// Restart asks the scheduler to reset the shape's phase and drop its cache
// once the PaintFunc returns, so the animation plays again from its first
// cycle on the next frame.
func (f *Frame) Restart() {
	f.restart = true
}

// Animation configures the phase of a shape.
type Animation struct {
	Controller animation.Controller
	// Duration of one cycle. Zero makes the shape static.
	Duration time.Duration
	// Delay before the shape is first drawn, measured from the group's
	// first tick.
	Delay time.Duration
	// Easing is a name understood by animation.EasingByName.
	Easing string
}

// Shape is a caller-authored shape descriptor. The scheduler never writes
// to it; run state and caches live in the scheduler.
type Shape struct {
	// ID must be unique within its group.
	ID string
	// Phase names the animated aspect, e.g. "stroke" or "fill". Defaults
	// to ID.
	Phase     string
	Paint     PaintFunc
	Animation Animation
	// NoCache forces live drawing when the phase is static or frozen.
	NoCache bool
}

// Group binds an ordered list of shapes to a drawing surface.
type Group struct {
	Canvas rendering.Canvas
	Size   rendering.Size
	Shapes []Shape
}

type shapeState struct {
	Shape
	key    animation.PhaseKey
	easing animation.Easing
	cache  image.Image
}

type groupState struct {
	key     string
	group   Group
	shapes  []*shapeState
	pointer *rendering.Offset
	started bool
	origin  time.Duration
}

func (g *groupState) shape(id string) (*shapeState, bool) {
	for _, sh := range g.shapes {
		if sh.ID == id {
			return sh, true
		}
	}
	return nil, false
}

func phaseKey(group string, sh Shape) animation.PhaseKey {
	name := sh.Phase
	if name == "" {
		name = sh.ID
	}
	return animation.PhaseKey{Group: group, Shape: sh.ID, Name: name}
}

// validate checks shapes and resolves their easing functions.
func validate(key string, g Group) ([]*shapeState, error) {
	const op = "scheduler.Register"
	seen := make(map[string]bool, len(g.Shapes))
	states := make([]*shapeState, 0, len(g.Shapes))
	for _, sh := range g.Shapes {
		var err *errors.ChartError
		easing, ok := animation.EasingByName(sh.Animation.Easing)
		switch {
		case seen[sh.ID]:
			err = errors.Preconditionf(op, errors.ErrDuplicateShape, "shape %q", sh.ID)
		case sh.Paint == nil:
			err = errors.Preconditionf(op, errors.ErrNilPaint, "shape %q", sh.ID)
		case sh.Animation.Controller == nil:
			err = errors.Preconditionf(op, errors.ErrNilController, "shape %q", sh.ID)
		case !ok:
			err = errors.Preconditionf(op, errors.ErrUnknownEasing, "shape %q easing %q", sh.ID, sh.Animation.Easing)
		}
		if err != nil {
			err.Key = key
			return nil, err
		}
		seen[sh.ID] = true
		states = append(states, &shapeState{Shape: sh, key: phaseKey(key, sh), easing: easing})
	}
	return states, nil
}
