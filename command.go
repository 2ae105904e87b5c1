package mandelbrot

import (
	"fmt"

	"github.com/maikkel/mandelbrot/palette"
)

// Command is a mutation of a ViewState.
//
// Commands only change the value they are given; they never schedule a
// render. Coordinator.Apply runs a batch of commands against a copy of the
// live view, validates the result, commits it, and then requests a render.
// A command that rejects its input leaves the live view untouched.
type Command func(*ViewState) error

// SetResolution sets the frame size in pixels. Changing it rebuilds the
// worker pool and framebuffers.
func SetResolution(n int) Command {
	return func(v *ViewState) error {
		if n < MinResolution || n > MaxResolution {
			return fmt.Errorf("%w: %d not in [%d, %d]", ErrInvalidResolution, n, MinResolution, MaxResolution)
		}
		v.Resolution = n
		return nil
	}
}

// SetDisplayScale sets the presentation magnification.
func SetDisplayScale(n int) Command {
	return func(v *ViewState) error {
		if n < MinDisplayScale || n > MaxDisplayScale {
			return fmt.Errorf("%w: %d not in [%d, %d]", ErrInvalidDisplayScale, n, MinDisplayScale, MaxDisplayScale)
		}
		v.DisplayScale = n
		return nil
	}
}

// SetPalette selects the palette.
func SetPalette(id palette.ID) Command {
	return func(v *ViewState) error {
		if !id.Valid() {
			return fmt.Errorf("%w: %d", ErrInvalidPalette, uint8(id))
		}
		v.Palette = id
		return nil
	}
}

// SetInvert toggles colour inversion.
func SetInvert(on bool) Command {
	return func(v *ViewState) error {
		v.Invert = on
		return nil
	}
}

// SetMaxIteration sets the iteration cap.
func SetMaxIteration(n int) Command {
	return func(v *ViewState) error {
		if n < MinIterations || n > MaxIterations {
			return fmt.Errorf("%w: %d not in [%d, %d]", ErrInvalidIterations, n, MinIterations, MaxIterations)
		}
		v.MaxIteration = n
		return nil
	}
}

// SetZoom sets the zoom factor directly, keeping the centre.
func SetZoom(z float64) Command {
	return func(v *ViewState) error {
		if !(z > 0) || !finite(z) {
			return fmt.Errorf("%w: %v", ErrInvalidZoom, z)
		}
		v.Zoom = z
		return nil
	}
}

// SetCenter moves the viewport centre to (x, y).
func SetCenter(x, y float64) Command {
	return func(v *ViewState) error {
		if !finite(x) || !finite(y) {
			return fmt.Errorf("%w: (%v, %v)", ErrInvalidCenter, x, y)
		}
		v.CenterX, v.CenterY = x, y
		return nil
	}
}

// Reset returns centre and zoom to their defaults, keeping the rendering
// parameters.
func Reset() Command {
	return func(v *ViewState) error {
		d := DefaultView()
		v.CenterX, v.CenterY, v.Zoom = d.CenterX, d.CenterY, d.Zoom
		return nil
	}
}

// applyCommands runs cmds against a copy of v and validates the outcome.
func applyCommands(v ViewState, cmds []Command) (ViewState, error) {
	next := v
	for _, cmd := range cmds {
		if cmd == nil {
			continue
		}
		if err := cmd(&next); err != nil {
			return v, err
		}
	}
	if err := next.Validate(); err != nil {
		return v, err
	}
	return next, nil
}
