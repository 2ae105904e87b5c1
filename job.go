package mandelbrot

import (
	"sync/atomic"
	"time"

	"github.com/maikkel/mandelbrot/internal/parallel"
)

// job is one dispatched render: a view snapshot, its band plan, and the
// back buffer the bands composite into.
//
// A job ends exactly once, either by finishing (every band composited, back
// buffer presented) or by failing (back buffer abandoned). Results that
// arrive after the end are discarded.
type job struct {
	generation uint64
	view       ViewState
	bands      []parallel.Band
	back       *Framebuffer
	started    time.Time

	// claimed guards the composite of each band; composited detects the
	// final band.
	claimed    *parallel.BandSet
	composited *parallel.BandSet

	// failed is set once the job has failed.
	failed atomic.Bool

	// done is closed when the job ends.
	done chan struct{}

	// timer is the band watchdog; nil when disabled. Guarded by
	// Coordinator.mu.
	timer *time.Timer
}

func newJob(generation uint64, view ViewState, bands []parallel.Band, back *Framebuffer) *job {
	return &job{
		generation: generation,
		view:       view,
		bands:      bands,
		back:       back,
		started:    time.Now(),
		claimed:    parallel.NewBandSet(len(bands)),
		composited: parallel.NewBandSet(len(bands)),
		done:       make(chan struct{}),
	}
}

// end stops the watchdog and wakes anyone waiting on the job.
// The caller holds Coordinator.mu and has checked the job is current.
func (j *job) end() {
	if j.timer != nil {
		j.timer.Stop()
	}
	close(j.done)
}
