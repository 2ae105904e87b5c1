package mandelbrot

import (
	"fmt"

	"github.com/maikkel/mandelbrot/internal/escape"
	"github.com/maikkel/mandelbrot/internal/parallel"
	"github.com/maikkel/mandelbrot/palette"
)

// Request asks a worker to render rows [StartRow, EndRow) of a
// Resolution x Resolution frame. It is a self-contained value: a worker
// needs nothing else to produce the band.
type Request struct {
	Resolution   int
	Zoom         float64
	CenterX      float64
	CenterY      float64
	StartRow     int
	EndRow       int
	Palette      palette.ID
	MaxIteration int
	Invert       bool
}

// Result carries one rendered band back to the coordinator.
type Result struct {
	StartRow int
	EndRow   int

	// Pixels holds (EndRow-StartRow)*Resolution RGBA pixels, row-major,
	// alpha always 255.
	Pixels []byte

	// Err is set when the band could not be rendered.
	Err error
}

func (r Request) validate() error {
	switch {
	case r.Resolution <= 0:
		return fmt.Errorf("%w: %d", ErrInvalidResolution, r.Resolution)
	case r.StartRow < 0 || r.EndRow < r.StartRow || r.EndRow > r.Resolution:
		return fmt.Errorf("%w: [%d, %d) of %d", ErrInvalidBand, r.StartRow, r.EndRow, r.Resolution)
	case !(r.Zoom > 0) || !finite(r.Zoom):
		return fmt.Errorf("%w: %v", ErrInvalidZoom, r.Zoom)
	case !r.Palette.Valid():
		return fmt.Errorf("%w: %d", ErrInvalidPalette, uint8(r.Palette))
	}
	return nil
}

// RenderBand computes the escape-time colouring of every pixel in the
// requested band. Pixel (px, py) samples the plane point
//
//	x0 = CenterX - span/2 + span*(px/Resolution)
//	y0 = CenterY - span/2 + span*(py/Resolution)
//
// with span = 3.5/Zoom, and is written at byte offset
// (px + (py-StartRow)*Resolution)*4. RenderBand is pure and safe to call
// from any goroutine. An empty band yields an empty, non-error Result.
func RenderBand(req Request) Result {
	res := Result{StartRow: req.StartRow, EndRow: req.EndRow}
	if err := req.validate(); err != nil {
		res.Err = err
		return res
	}
	rows := req.EndRow - req.StartRow
	if rows == 0 {
		return res
	}

	pix := parallel.GetBuffer(rows * req.Resolution * parallel.BytesPerPixel)
	colorize := req.Palette.Func()

	span := BaseSpan / req.Zoom
	size := float64(req.Resolution)
	xMin := req.CenterX - span/2
	yMin := req.CenterY - span/2

	i := 0
	for py := req.StartRow; py < req.EndRow; py++ {
		y0 := yMin + span*(float64(py)/size)
		for px := 0; px < req.Resolution; px++ {
			x0 := xMin + span*(float64(px)/size)
			c := colorize(escape.Iterate(x0, y0, req.MaxIteration), req.MaxIteration)
			if req.Invert {
				c = c.Invert()
			}
			pix[i+0] = c.R
			pix[i+1] = c.G
			pix[i+2] = c.B
			pix[i+3] = 255
			i += parallel.BytesPerPixel
		}
	}

	res.Pixels = pix
	return res
}
