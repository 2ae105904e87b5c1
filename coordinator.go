package mandelbrot

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/maikkel/mandelbrot/internal/parallel"
)

// State is the render state of a Coordinator.
type State int32

const (
	// Idle means no render is in flight; a request dispatches at once.
	Idle State = iota

	// Rendering means a render is in flight; requests are dropped.
	Rendering
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Rendering:
		return "Rendering"
	default:
		return fmt.Sprintf("State(%d)", int32(s))
	}
}

// Frame describes a completed render. It is passed to the handler
// registered with WithFrameHandler.
type Frame struct {
	// Generation numbers renders from 1 in dispatch order.
	Generation uint64

	// View is the state the frame was rendered from.
	View ViewState

	// Elapsed is the time from dispatch to the last band composited.
	Elapsed time.Duration

	// Image is a copy of the presented frame, owned by the handler.
	Image *Framebuffer
}

// Stats holds render counters of a Coordinator.
type Stats struct {
	Requested    uint64        // render requests received
	Renders      uint64        // renders dispatched, including trailing ones
	Dropped      uint64        // requests dropped while a render was in flight
	Completed    uint64        // renders presented
	Failed       uint64        // renders abandoned on error or timeout
	Discarded    uint64        // band results that arrived after their render ended
	LastDuration time.Duration // elapsed time of the last completed render
}

// Coordinator owns the view state, a pool of band workers and the
// framebuffer, and runs the render cycle: split the frame into one row band
// per worker, dispatch every band, composite results as they arrive, and
// present the frame once the last band lands.
//
// At most one render is in flight. A request that arrives while rendering is
// dropped; with trailing renders enabled (the default) the coordinator
// renders once more when the current render completes, so the latest view is
// always drawn without queueing intermediate ones.
//
// The presented frame only changes when a render completes: bands are
// composited into a back buffer that is swapped in at the end. A failed
// render leaves the previous frame in place.
//
// All methods are safe for concurrent use.
type Coordinator struct {
	opts    options
	workers int

	mu         sync.Mutex
	view       ViewState
	state      State
	pool       *parallel.WorkerPool
	front      *Framebuffer
	spare      *Framebuffer
	job        *job
	generation uint64
	pending    bool
	resizing   bool
	closed     bool
	err        error
	stats      Stats

	// idle is closed while the coordinator is quiet: no render in flight
	// and no resize in progress.
	idle  chan struct{}
	quiet bool
}

// NewCoordinator creates a coordinator and starts its workers.
// No render is started; call Request, Apply or Render.
func NewCoordinator(opts ...Option) (*Coordinator, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.view.Validate(); err != nil {
		return nil, err
	}

	workers := o.workers
	if workers <= 0 {
		workers = parallel.DefaultWorkers()
	}

	idle := make(chan struct{})
	close(idle)

	c := &Coordinator{
		opts:    o,
		workers: workers,
		view:    o.view,
		pool:    parallel.NewWorkerPool(workers),
		front:   NewFramebuffer(o.view.Resolution),
		idle:    idle,
		quiet:   true,
	}

	Logger().Debug("mandelbrot: coordinator created",
		"workers", workers,
		"resolution", o.view.Resolution,
		"band_timeout", o.bandTimeout,
		"trailing", o.trailing)

	return c, nil
}

// Request asks for a render of the current view. It reports whether a render
// was dispatched; false means one is already in flight (the request is
// coalesced) or the coordinator is closed.
func (c *Coordinator) Request() bool {
	c.mu.Lock()
	launch := c.requestLocked()
	c.mu.Unlock()

	if launch == nil {
		return false
	}
	launch()
	return true
}

// Apply runs cmds against the current view as one mutation and requests a
// render. If any command or the resulting view is invalid, nothing changes
// and the error is returned.
//
// A resolution change waits for the in-flight render, rebuilds the worker
// pool and framebuffer, then renders; ctx bounds that wait. If ctx ends
// first, Apply returns its error but the new view stays committed: with
// trailing renders enabled it is drawn, at the new resolution, once the
// in-flight render ends.
func (c *Coordinator) Apply(ctx context.Context, cmds ...Command) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}

	next, err := applyCommands(c.view, cmds)
	if err != nil {
		c.mu.Unlock()
		return err
	}

	resized := next.Resolution != c.view.Resolution
	c.view = next

	if resized && !c.resizing {
		c.resizing = true
		c.busyLocked()
		j := c.job
		c.mu.Unlock()
		return c.resize(ctx, j)
	}

	// During a resize the request is coalesced into the one the resize
	// issues when it finishes.
	launch := c.requestLocked()
	c.mu.Unlock()

	if launch != nil {
		launch()
	}
	return nil
}

// Render requests a render of the current view, waits for it and returns a
// copy of the presented frame. If a render is already in flight, Render
// waits for it and then requests its own.
func (c *Coordinator) Render(ctx context.Context) (*Framebuffer, error) {
	for !c.Request() {
		if c.isClosed() {
			return nil, ErrClosed
		}
		if err := c.waitQuiet(ctx); err != nil {
			return nil, err
		}
	}
	if err := c.Wait(ctx); err != nil {
		return nil, err
	}
	return c.Snapshot(), nil
}

// Wait blocks until no render is in flight, including any trailing render,
// and returns the error of the last render (nil if it completed).
func (c *Coordinator) Wait(ctx context.Context) error {
	if err := c.waitQuiet(ctx); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// Snapshot returns a copy of the presented frame.
func (c *Coordinator) Snapshot() *Framebuffer {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.front.Clone()
}

// View returns the current view state.
func (c *Coordinator) View() ViewState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view
}

// State returns whether a render is in flight.
func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Stats returns a copy of the render counters.
func (c *Coordinator) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

// Err returns the error of the last finished render, or nil.
func (c *Coordinator) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// Workers returns the worker count, which is also the band count.
func (c *Coordinator) Workers() int {
	return c.workers
}

// Close waits for the in-flight render to finish or fail, then stops the
// workers. Further requests are refused. Close is safe to call multiple
// times.
func (c *Coordinator) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.mu.Unlock()

	_ = c.waitQuiet(context.Background())

	c.mu.Lock()
	pool := c.pool
	c.mu.Unlock()
	pool.Close()

	Logger().Info("mandelbrot: coordinator closed")
	return nil
}

func (c *Coordinator) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// requestLocked either drops the request or prepares a render, returning
// the function that dispatches it. The caller runs it after unlocking.
func (c *Coordinator) requestLocked() func() {
	if c.closed {
		return nil
	}
	c.stats.Requested++

	if c.state == Rendering || c.resizing {
		c.stats.Dropped++
		// Only a changed view needs a trailing render.
		if c.job == nil || c.view != c.job.view {
			c.pending = true
		}
		Logger().Debug("mandelbrot: render request dropped", "generation", c.generation)
		return nil
	}
	return c.dispatchLocked()
}

// dispatchLocked snapshots the view, plans the bands and moves to
// Rendering. The returned function queues the bands on the pool.
func (c *Coordinator) dispatchLocked() func() {
	c.generation++
	view := c.view

	bands := parallel.Partition(view.Resolution, view.Resolution, c.workers)

	back := c.spare
	c.spare = nil
	if back == nil || back.Size() != view.Resolution {
		back = NewFramebuffer(view.Resolution)
	}

	j := newJob(c.generation, view, bands, back)
	c.job = j
	c.state = Rendering
	c.pending = false
	c.stats.Renders++
	c.busyLocked()

	if d := c.opts.bandTimeout; d > 0 {
		j.timer = time.AfterFunc(d, func() {
			if j.composited.Full() {
				return
			}
			c.fail(j, fmt.Errorf("%w after %v: bands %v of %d missing",
				ErrBandTimeout, d, j.composited.Missing(), j.composited.Len()))
		})
	}

	work := make([]func(), len(bands))
	for i, b := range bands {
		work[i] = func() { c.runBand(j, b) }
	}

	Logger().Debug("mandelbrot: render dispatched",
		"generation", j.generation,
		"bands", len(bands),
		"resolution", view.Resolution,
		"zoom", view.Zoom,
		"palette", view.Palette)

	pool := c.pool
	return func() {
		if n := pool.Dispatch(work); n < len(work) {
			c.fail(j, fmt.Errorf("%w: %d of %d bands not dispatched", ErrClosed, len(work)-n, len(work)))
		}
	}
}

// runBand renders one band on a worker goroutine and delivers the result.
func (c *Coordinator) runBand(j *job, b parallel.Band) {
	if j.failed.Load() {
		c.discard(j, b)
		return
	}

	// Empty bands trail a plan with more workers than rows.
	if b.Empty() {
		c.deliver(j, b, Result{StartRow: b.Start, EndRow: b.End})
		return
	}

	res := c.render(j.view.request(b))
	if res.Err != nil {
		c.fail(j, fmt.Errorf("%w: band %d: %w", ErrBandFailed, b.Index, res.Err))
		return
	}
	c.deliver(j, b, res)
}

// render calls the band renderer, turning a panic into an error result.
func (c *Coordinator) render(req Request) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			res = Result{StartRow: req.StartRow, EndRow: req.EndRow, Err: fmt.Errorf("panic: %v", r)}
		}
	}()
	return c.opts.render(req)
}

// deliver composites a band result into the job's back buffer and finishes
// the job when it was the last band.
func (c *Coordinator) deliver(j *job, b parallel.Band, res Result) {
	defer parallel.PutBuffer(res.Pixels)

	if j.failed.Load() {
		c.discard(j, b)
		return
	}
	if res.StartRow != b.Start || res.EndRow != b.End {
		c.fail(j, fmt.Errorf("%w: band %d returned rows [%d, %d), want [%d, %d)",
			ErrBandFailed, b.Index, res.StartRow, res.EndRow, b.Start, b.End))
		return
	}
	if added, _ := j.claimed.Mark(b.Index); !added {
		c.discard(j, b)
		return
	}
	if err := j.back.composite(b, res.Pixels); err != nil {
		c.fail(j, fmt.Errorf("%w: band %d: %w", ErrBandFailed, b.Index, err))
		return
	}
	if _, last := j.composited.Mark(b.Index); last {
		c.finish(j)
	}
}

func (c *Coordinator) discard(j *job, b parallel.Band) {
	c.mu.Lock()
	c.stats.Discarded++
	c.mu.Unlock()

	Logger().Warn("mandelbrot: band result discarded", "generation", j.generation, "band", b.Index)
}

// finish presents a completed job and starts the trailing render, if one
// is pending.
func (c *Coordinator) finish(j *job) {
	c.mu.Lock()
	if c.job != j {
		c.mu.Unlock()
		return
	}

	elapsed := time.Since(j.started)

	prev := c.front
	c.front = j.back
	if prev.Size() == c.view.Resolution {
		c.spare = prev
	}

	c.job = nil
	c.state = Idle
	c.err = nil
	c.stats.Completed++
	c.stats.LastDuration = elapsed
	j.end()

	var frame *Frame
	if c.opts.onFrame != nil {
		frame = &Frame{
			Generation: j.generation,
			View:       j.view,
			Elapsed:    elapsed,
			Image:      c.front.Clone(),
		}
	}

	launch := c.settleLocked()
	c.mu.Unlock()

	Logger().Debug("mandelbrot: render complete",
		"generation", j.generation,
		"elapsed", elapsed,
		"trailing", launch != nil)

	if frame != nil {
		c.opts.onFrame(*frame)
	}
	if launch != nil {
		launch()
	}
}

// fail abandons a job. Its back buffer is dropped so late results cannot
// reach a live buffer; the previous frame stays presented. A view changed
// during the job is still rendered, as after a completed one.
func (c *Coordinator) fail(j *job, err error) {
	c.mu.Lock()
	if c.job != j {
		c.mu.Unlock()
		return
	}

	j.failed.Store(true)
	c.job = nil
	c.state = Idle
	c.err = err
	c.stats.Failed++
	j.end()
	launch := c.settleLocked()
	c.mu.Unlock()

	Logger().Error("mandelbrot: render failed", "generation", j.generation, "err", err)

	if launch != nil {
		launch()
	}
}

// settleLocked runs after a render ends. It dispatches the trailing render
// if a changed view is pending, and otherwise marks the coordinator quiet.
// The caller runs the returned function after unlocking.
func (c *Coordinator) settleLocked() func() {
	switch {
	case c.pending && c.opts.trailing && !c.closed && !c.resizing:
		return c.dispatchLocked()
	case !c.resizing:
		c.pending = false
		c.quietLocked()
	}
	return nil
}

// resize waits for the in-flight job j (if any), replaces the worker pool
// and framebuffers, and renders the current view.
func (c *Coordinator) resize(ctx context.Context, j *job) error {
	if j != nil {
		select {
		case <-j.done:
		case <-ctx.Done():
			c.mu.Lock()
			c.resizing = false
			if c.state == Idle {
				c.quietLocked()
			}
			launch := c.requestLocked()
			c.mu.Unlock()
			if launch != nil {
				launch()
			}
			return ctx.Err()
		}
	}

	c.mu.Lock()
	old := c.pool
	if c.closed {
		c.resizing = false
		c.quietLocked()
		c.mu.Unlock()
		return ErrClosed
	}

	c.pool = parallel.NewWorkerPool(c.workers)
	c.front = NewFramebuffer(c.view.Resolution)
	c.spare = nil
	c.resizing = false
	c.quietLocked()

	Logger().Info("mandelbrot: worker pool rebuilt",
		"resolution", c.view.Resolution,
		"workers", c.workers)

	launch := c.requestLocked()
	c.mu.Unlock()

	// Stragglers of a failed render may still hold old workers.
	go old.Close()

	if launch != nil {
		launch()
	}
	return nil
}

// waitQuiet blocks until no render is in flight and no resize is in
// progress.
func (c *Coordinator) waitQuiet(ctx context.Context) error {
	for {
		c.mu.Lock()
		quiet, ch := c.quiet, c.idle
		c.mu.Unlock()

		if quiet {
			return nil
		}
		select {
		case <-ch:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (c *Coordinator) busyLocked() {
	if c.quiet {
		c.idle = make(chan struct{})
		c.quiet = false
	}
}

func (c *Coordinator) quietLocked() {
	if !c.quiet {
		close(c.idle)
		c.quiet = true
	}
}
