package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// WorkerPool is a fixed set of goroutines that render row-bands.
//
// Each worker owns a queue. Dispatch hands item i to worker i%n, so a plan
// with one band per worker gives every worker exactly one band. A worker
// whose queue is empty steals from the others before blocking, which keeps
// the pool busy when bands differ in cost (rows through the set interior
// iterate to the cap, rows outside escape at once).
//
// The pool is meant to live across many renders. Creating one starts n
// goroutines; Close stops them after running everything already queued.
//
// Thread safety: WorkerPool is safe for concurrent use.
type WorkerPool struct {
	// workers is the number of worker goroutines.
	workers int

	// queues holds one work queue per worker.
	queues []chan func()

	// done is closed by Close to stop the workers.
	done chan struct{}

	// wg tracks running workers.
	wg sync.WaitGroup

	// running is false once Close has been called.
	running atomic.Bool
}

// NewWorkerPool starts a pool with the given number of workers.
// If workers is 0 or negative, runtime.NumCPU is used.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = DefaultWorkers()
	}

	// A few slots per worker let a burst of dispatches return without
	// waiting on the workers.
	queueSize := max(workers*4, 8)

	p := &WorkerPool{
		workers: workers,
		queues:  make([]chan func(), workers),
		done:    make(chan struct{}),
	}
	for i := range workers {
		p.queues[i] = make(chan func(), queueSize)
	}

	p.running.Store(true)

	p.wg.Add(workers)
	for i := range workers {
		go p.worker(i)
	}

	return p
}

// DefaultWorkers returns the hardware concurrency of the machine, at least 1.
func DefaultWorkers() int {
	return max(runtime.NumCPU(), 1)
}

// worker is the main loop of one worker goroutine.
func (p *WorkerPool) worker(id int) {
	defer p.wg.Done()

	own := p.queues[id]

	for {
		select {
		case <-p.done:
			p.drain(own)
			return

		case work := <-own:
			run(work)

		default:
			if stolen := p.steal(id); stolen != nil {
				run(stolen)
				continue
			}

			select {
			case <-p.done:
				p.drain(own)
				return
			case work := <-own:
				run(work)
			}
		}
	}
}

func run(work func()) {
	if work != nil {
		work()
	}
}

// drain runs whatever is left in a queue without blocking.
func (p *WorkerPool) drain(queue chan func()) {
	for {
		select {
		case work := <-queue:
			run(work)
		default:
			return
		}
	}
}

// steal takes one item from another worker's queue, or returns nil.
func (p *WorkerPool) steal(self int) func() {
	for i := range p.workers {
		if i == self {
			continue
		}
		select {
		case work := <-p.queues[i]:
			return work
		default:
		}
	}
	return nil
}

// Dispatch queues work round-robin across the workers and returns at once.
// It returns the number of items accepted; fewer than len(work) means the
// pool was closed part way through, and the rest will never run.
func (p *WorkerPool) Dispatch(work []func()) int {
	if len(work) == 0 || !p.running.Load() {
		return 0
	}

	for i, fn := range work {
		select {
		case p.queues[i%p.workers] <- fn:
		case <-p.done:
			return i
		}
	}
	return len(work)
}

// Close stops accepting work, runs everything already queued, and waits for
// all workers to exit. Close is safe to call multiple times.
func (p *WorkerPool) Close() {
	if !p.running.CompareAndSwap(true, false) {
		return
	}
	close(p.done)
	p.wg.Wait()
}

// Workers returns the number of workers in the pool.
func (p *WorkerPool) Workers() int {
	return p.workers
}
