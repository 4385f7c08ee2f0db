package scheduler

import (
	"slices"
	"time"

	"github.com/go-drift/chart/pkg/errors"
	"github.com/go-drift/chart/pkg/rendering"
)

// Register binds g under key, replacing any group already registered there.
// Replacing drops every cached bitmap of the group; animation run state is
// kept for shapes whose ID survives, so entrance animations do not replay
// on a data refresh.
func (s *Scheduler) Register(key string, g Group) error {
	shapes, err := validate(key, g)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	gs := &groupState{key: key, group: g, shapes: shapes}
	if old, ok := s.groups[key]; ok {
		gs.pointer, gs.started, gs.origin = old.pointer, old.started, old.origin
		for _, sh := range old.shapes {
			if _, kept := gs.shape(sh.ID); !kept {
				s.phases.DeleteShape(sh.key.Group, sh.key.Shape)
			}
		}
	} else {
		s.order = append(s.order, key)
	}
	s.groups[key] = gs
	s.logger.Debug("registered group", "group", key, "shapes", len(shapes))
	s.arm()
	return nil
}

// Unregister removes the group under key and frees its phase state and
// caches. Unknown keys are ignored.
func (s *Scheduler) Unregister(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.groups[key]
	if !ok {
		return
	}
	for _, sh := range g.shapes {
		s.phases.DeleteShape(sh.key.Group, sh.key.Shape)
	}
	delete(s.groups, key)
	s.order = slices.DeleteFunc(s.order, func(k string) bool { return k == key })
}

// Groups returns the registered keys in registration order.
func (s *Scheduler) Groups() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.order)
}

// Invalidate drops every cached bitmap of the group and requests a frame.
func (s *Scheduler) Invalidate(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, err := s.group("scheduler.Invalidate", key)
	if err != nil {
		return err
	}
	for _, sh := range g.shapes {
		sh.cache = nil
	}
	s.arm()
	return nil
}

// InvalidateShape drops the cached bitmap of one shape.
func (s *Scheduler) InvalidateShape(key, id string) error {
	return s.withShape("scheduler.InvalidateShape", key, id, func(_ *groupState, sh *shapeState) {
		sh.cache = nil
	})
}

// Pause stops the shape's phase. The shape keeps drawing at its last
// fraction, and the loop stays alive, until Resume.
func (s *Scheduler) Pause(key, id string) error {
	return s.withShape("scheduler.Pause", key, id, func(_ *groupState, sh *shapeState) {
		s.phases.Phase(sh.key, sh.Animation.Controller, sh.Animation.Duration).Stop()
	})
}

// Resume continues a paused shape from where it stopped. The scheduler
// has no clock reading between ticks, so the resume is stamped with the
// last tick's time and the phase may run ahead by up to one frame
// interval. Hosts that know the current frame time should call ResumeAt.
func (s *Scheduler) Resume(key, id string) error {
	return s.resume("scheduler.Resume", key, id, func() time.Duration { return s.lastNow })
}

// ResumeAt is Resume stamped with the host time now.
func (s *Scheduler) ResumeAt(key, id string, now time.Duration) error {
	return s.resume("scheduler.ResumeAt", key, id, func() time.Duration { return now })
}

func (s *Scheduler) resume(op, key, id string, at func() time.Duration) error {
	return s.withShape(op, key, id, func(_ *groupState, sh *shapeState) {
		if p, ok := s.phases.Lookup(sh.key); ok {
			p.Resume(at())
		}
	})
}

// ResetShape restarts the shape's animation from its first cycle and drops
// its cache.
func (s *Scheduler) ResetShape(key, id string) error {
	return s.withShape("scheduler.ResetShape", key, id, func(_ *groupState, sh *shapeState) {
		s.restart(sh)
	})
}

// SetPointer records the latest pointer position over the group (nil when
// the pointer left) and requests a frame. Positions are not queued; each
// frame sees only the latest one.
func (s *Scheduler) SetPointer(key string, pos *rendering.Offset) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, err := s.group("scheduler.SetPointer", key)
	if err != nil {
		return err
	}
	if pos != nil {
		p := *pos
		pos = &p
	}
	g.pointer = pos
	s.arm()
	return nil
}

func (s *Scheduler) group(op, key string) (*groupState, error) {
	g, ok := s.groups[key]
	if !ok {
		err := errors.Preconditionf(op, errors.ErrUnknownGroup, "%q", key)
		err.Key = key
		return nil, err
	}
	return g, nil
}

func (s *Scheduler) withShape(op, key, id string, fn func(*groupState, *shapeState)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, err := s.group(op, key)
	if err != nil {
		return err
	}
	sh, ok := g.shape(id)
	if !ok {
		e := errors.Preconditionf(op, errors.ErrUnknownShape, "%q", id)
		e.Key = key
		return e
	}
	fn(g, sh)
	s.arm()
	return nil
}
