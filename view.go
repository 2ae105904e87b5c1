package mandelbrot

import (
	"fmt"
	"math"

	"seehuhn.de/go/geom/vec"

	"github.com/maikkel/mandelbrot/internal/parallel"
	"github.com/maikkel/mandelbrot/palette"
)

// BaseSpan is the width and height of the visible plane region at zoom 1.
// It frames the whole set along the real axis.
const BaseSpan = 3.5

// Accepted ranges at the mutation boundary.
const (
	MinResolution   = 256
	MaxResolution   = 2048
	MinIterations   = 2
	MaxIterations   = 10000
	MinDisplayScale = 1
	MaxDisplayScale = 8
)

// ViewState describes what to render: where the viewport is centred, how far
// it is zoomed, and how the result is coloured and sized.
//
// ViewState is a plain value. The Coordinator owns the live copy and hands
// each render an immutable snapshot.
type ViewState struct {
	// CenterX and CenterY are the real and imaginary coordinates at the
	// centre of the frame.
	CenterX, CenterY float64

	// Zoom scales BaseSpan: the visible span is BaseSpan/Zoom.
	Zoom float64

	// Resolution is the frame width and height in pixels.
	Resolution int

	// MaxIteration caps the escape-time iteration.
	MaxIteration int

	// Palette selects the colouring.
	Palette palette.ID

	// Invert applies palette.Invert after lookup.
	Invert bool

	// DisplayScale is the integer factor the presentation layer magnifies
	// the frame by. It converts pointer coordinates and scales exports.
	DisplayScale int
}

// DefaultView returns the initial view: the whole set at zoom 1.
func DefaultView() ViewState {
	return ViewState{
		CenterX:      -0.5,
		CenterY:      0,
		Zoom:         1,
		Resolution:   1024,
		MaxIteration: 1000,
		Palette:      palette.Sine,
		DisplayScale: 1,
	}
}

// Validate reports the first invariant the view violates, or nil.
func (v ViewState) Validate() error {
	switch {
	case !(v.Zoom > 0) || math.IsInf(v.Zoom, 0):
		return fmt.Errorf("%w: %v", ErrInvalidZoom, v.Zoom)
	case !finite(v.CenterX) || !finite(v.CenterY):
		return fmt.Errorf("%w: (%v, %v)", ErrInvalidCenter, v.CenterX, v.CenterY)
	case v.Resolution < MinResolution || v.Resolution > MaxResolution:
		return fmt.Errorf("%w: %d not in [%d, %d]", ErrInvalidResolution, v.Resolution, MinResolution, MaxResolution)
	case v.MaxIteration < MinIterations || v.MaxIteration > MaxIterations:
		return fmt.Errorf("%w: %d not in [%d, %d]", ErrInvalidIterations, v.MaxIteration, MinIterations, MaxIterations)
	case !v.Palette.Valid():
		return fmt.Errorf("%w: %d", ErrInvalidPalette, uint8(v.Palette))
	case v.DisplayScale < MinDisplayScale || v.DisplayScale > MaxDisplayScale:
		return fmt.Errorf("%w: %d not in [%d, %d]", ErrInvalidDisplayScale, v.DisplayScale, MinDisplayScale, MaxDisplayScale)
	}
	return nil
}

// Span returns the width (and height) of the visible plane region.
func (v ViewState) Span() float64 {
	return BaseSpan / v.Zoom
}

// Center returns the plane point at the centre of the frame.
func (v ViewState) Center() vec.Vec2 {
	return vec.Vec2{X: v.CenterX, Y: v.CenterY}
}

// PlanePoint returns the plane point that frame pixel (px, py) samples.
// Fractional pixel coordinates are allowed.
func (v ViewState) PlanePoint(px, py float64) vec.Vec2 {
	span := v.Span()
	res := float64(v.Resolution)
	return vec.Vec2{
		X: v.CenterX - span/2 + span*(px/res),
		Y: v.CenterY - span/2 + span*(py/res),
	}
}

// ScreenToPlane returns the plane point under a pointer at screen position
// (sx, sy), which is magnified by DisplayScale.
func (v ViewState) ScreenToPlane(sx, sy float64) vec.Vec2 {
	scale := float64(max(v.DisplayScale, 1))
	return v.PlanePoint(sx/scale, sy/scale)
}

// request builds the render request message for one band of this view.
func (v ViewState) request(b parallel.Band) Request {
	return Request{
		Resolution:   v.Resolution,
		Zoom:         v.Zoom,
		CenterX:      v.CenterX,
		CenterY:      v.CenterY,
		StartRow:     b.Start,
		EndRow:       b.End,
		Palette:      v.Palette,
		MaxIteration: v.MaxIteration,
		Invert:       v.Invert,
	}
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
