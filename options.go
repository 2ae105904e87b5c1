package mandelbrot

import "time"

// DefaultBandTimeout bounds how long a render waits for its slowest band.
const DefaultBandTimeout = 30 * time.Second

// Option configures a Coordinator during creation.
//
// Example:
//
//	c, err := mandelbrot.NewCoordinator(
//	    mandelbrot.WithWorkers(4),
//	    mandelbrot.WithView(view),
//	)
type Option func(*options)

// options holds optional configuration for Coordinator creation.
type options struct {
	view        ViewState
	workers     int
	bandTimeout time.Duration
	trailing    bool
	onFrame     func(Frame)

	// render replaces RenderBand; tests use it to gate or fail bands.
	render func(Request) Result
}

// defaultOptions returns the default coordinator options.
func defaultOptions() options {
	return options{
		view:        DefaultView(),
		workers:     0, // parallel.DefaultWorkers
		bandTimeout: DefaultBandTimeout,
		trailing:    true,
		render:      RenderBand,
	}
}

// WithView sets the initial view. It is validated by NewCoordinator.
func WithView(v ViewState) Option {
	return func(o *options) {
		o.view = v
	}
}

// WithWorkers sets the number of band workers, which is also the number of
// bands a frame is split into. Non-positive values select one worker per
// logical CPU.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithBandTimeout sets how long a render may wait for outstanding bands
// before it fails with ErrBandTimeout. Zero disables the watchdog.
func WithBandTimeout(d time.Duration) Option {
	return func(o *options) {
		o.bandTimeout = max(d, 0)
	}
}

// WithTrailingRender controls whether a request dropped during a render
// schedules one more render when the current one completes. It is enabled
// by default; disabling it drops such requests outright.
func WithTrailingRender(on bool) Option {
	return func(o *options) {
		o.trailing = on
	}
}

// WithFrameHandler registers fn to be called after each completed render.
// Frames are delivered in order on a worker goroutine, before any trailing
// render starts. fn may call Request, or Apply without a resolution change,
// but must not call Wait, Render or Close, which would wait on the goroutine
// running fn.
func WithFrameHandler(fn func(Frame)) Option {
	return func(o *options) {
		o.onFrame = fn
	}
}

// withRenderer replaces the band renderer.
func withRenderer(fn func(Request) Result) Option {
	return func(o *options) {
		if fn != nil {
			o.render = fn
		}
	}
}
