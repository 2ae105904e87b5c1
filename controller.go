package mandelbrot

import (
	"context"

	"seehuhn.de/go/geom/vec"
)

// Controller turns pointer events into view commands: a press and drag pans,
// a wheel step zooms around the pointer. Coordinates are screen pixels,
// i.e. frame pixels magnified by DisplayScale.
//
// A Controller keeps drag state and is meant to be driven from a single
// event goroutine. The Coordinator it drives may be shared.
type Controller struct {
	c *Coordinator

	dragging bool
	last     vec.Vec2
}

// NewController creates a controller that applies commands to c.
func NewController(c *Coordinator) *Controller {
	return &Controller{c: c}
}

// Dragging reports whether a drag is in progress.
func (ct *Controller) Dragging() bool {
	return ct.dragging
}

// PointerDown starts a drag at (x, y).
func (ct *Controller) PointerDown(x, y float64) {
	ct.dragging = true
	ct.last = vec.Vec2{X: x, Y: y}
}

// PointerMove pans by the distance moved since the last event while a drag
// is in progress, and is a no-op otherwise.
func (ct *Controller) PointerMove(ctx context.Context, x, y float64) error {
	if !ct.dragging {
		return nil
	}
	p := vec.Vec2{X: x, Y: y}
	d := p.Sub(ct.last)
	ct.last = p
	if d.X == 0 && d.Y == 0 {
		return nil
	}
	return ct.c.Apply(ctx, Pan(d.X, d.Y))
}

// PointerUp ends a drag.
func (ct *Controller) PointerUp() {
	ct.dragging = false
}

// PointerLeave ends a drag when the pointer leaves the surface.
func (ct *Controller) PointerLeave() {
	ct.dragging = false
}

// Wheel zooms around (x, y). A negative deltaY (wheel up) zooms in, a
// positive one zooms out, zero is ignored.
func (ct *Controller) Wheel(ctx context.Context, x, y, deltaY float64) error {
	if deltaY == 0 {
		return nil
	}
	return ct.c.Apply(ctx, ZoomAt(x, y, deltaY < 0))
}
