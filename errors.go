package mandelbrot

import "errors"

// Validation errors returned by commands and ViewState.Validate.
// Errors carry the rejected value; test for them with errors.Is.
var (
	ErrInvalidZoom         = errors.New("mandelbrot: zoom must be positive and finite")
	ErrInvalidCenter       = errors.New("mandelbrot: center must be finite")
	ErrInvalidResolution   = errors.New("mandelbrot: resolution out of range")
	ErrInvalidIterations   = errors.New("mandelbrot: iteration cap out of range")
	ErrInvalidPalette      = errors.New("mandelbrot: unknown palette")
	ErrInvalidDisplayScale = errors.New("mandelbrot: display scale out of range")
	ErrInvalidBand         = errors.New("mandelbrot: band rows outside the frame")
)

// Runtime errors.
var (
	// ErrClosed is returned by operations on a closed Coordinator.
	ErrClosed = errors.New("mandelbrot: coordinator closed")

	// ErrBandFailed wraps a failure reported by, or recovered from, a band
	// worker. The render is abandoned and not retried.
	ErrBandFailed = errors.New("mandelbrot: band render failed")

	// ErrBandTimeout is reported when bands of a render have not all arrived
	// within the configured band timeout.
	ErrBandTimeout = errors.New("mandelbrot: band render timed out")
)
