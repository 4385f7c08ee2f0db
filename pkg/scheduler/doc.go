// Package scheduler drives animated chart shapes from a single frame loop.
//
// A [Scheduler] owns any number of shape groups, each bound to a drawing
// surface. Every frame it clears each surface and visits the group's shapes
// in order. A shape either waits out its start delay, draws live with the
// eased fraction of its animation phase, or, once its phase has frozen on
// the final frame, is rendered once onto an offscreen surface and blitted
// from that bitmap on every later frame.
//
// The loop only asks the host clock for another frame while some shape is
// still animating, paused or waiting on its delay. Idle charts cost nothing
// until they are registered again, invalidated, paused, resumed or receive
// a new pointer position.
//
// Cached bitmaps are never invalidated implicitly. After changing anything
// that affects a shape's geometry, call [Scheduler.Invalidate],
// [Scheduler.InvalidateShape] or register the group again.
package scheduler
