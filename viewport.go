package mandelbrot

import "fmt"

// ZoomFactor is the zoom change of one wheel step.
const ZoomFactor = 1.2

// Pan shifts the view by a pointer drag of (dx, dy) screen pixels. The
// plane moves with the pointer, so dragging right moves the centre left.
// Screen pixels are divided by DisplayScale to get frame pixels.
func Pan(dx, dy float64) Command {
	return func(v *ViewState) error {
		if !finite(dx) || !finite(dy) {
			return fmt.Errorf("%w: pan by (%v, %v)", ErrInvalidCenter, dx, dy)
		}
		span := v.Span()
		res := float64(v.Resolution)
		scale := float64(max(v.DisplayScale, 1))

		v.CenterX -= (dx / scale / res) * span
		v.CenterY -= (dy / scale / res) * span
		return nil
	}
}

// ZoomAt zooms by ZoomFactor around the screen position (sx, sy), in when
// in is true and out otherwise. The plane point under the pointer stays
// under the pointer.
func ZoomAt(sx, sy float64, in bool) Command {
	return func(v *ViewState) error {
		if !finite(sx) || !finite(sy) {
			return fmt.Errorf("%w: zoom at (%v, %v)", ErrInvalidCenter, sx, sy)
		}
		cursor := v.ScreenToPlane(sx, sy)

		oldZoom := v.Zoom
		if in {
			v.Zoom *= ZoomFactor
		} else {
			v.Zoom /= ZoomFactor
		}

		center := cursor.Sub(cursor.Sub(v.Center()).Mul(oldZoom / v.Zoom))
		v.CenterX, v.CenterY = center.X, center.Y
		return nil
	}
}
