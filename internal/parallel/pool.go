// Package parallel provides the worker pool backing parse dispatch.
//
// The parser keeps one pool per compute mode and submits each cache miss as
// one job. Pools are deliberately plain: a fixed worker count, one shared
// buffered queue, graceful shutdown that finishes queued work.
package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Pool runs submitted jobs on a fixed set of worker goroutines pulling from
// one shared buffered queue. Parse jobs are coarse (one whole file each), so
// a shared queue balances load without per-worker queues or work stealing.
//
// Thread safety: Pool is safe for concurrent use.
type Pool struct {
	// workers is the number of worker goroutines.
	workers int

	// queue holds jobs waiting for a free worker.
	queue chan func()

	// done signals workers to stop.
	done chan struct{}

	// wg waits for all workers to finish.
	wg sync.WaitGroup

	// mu orders acceptance against shutdown: Submit enqueues under the read
	// lock, Close flips running and closes done under the write lock. A job
	// accepted under the read lock is therefore in the queue before done
	// closes, and the shutdown drain runs it.
	mu sync.RWMutex

	// running indicates whether the pool is accepting work.
	running atomic.Bool
}

// NewPool creates a pool with the specified number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
// The pool starts immediately and workers begin waiting for work.
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	queueSize := workers * 4
	if queueSize < 8 {
		queueSize = 8
	}

	p := &Pool{
		workers: workers,
		queue:   make(chan func(), queueSize),
		done:    make(chan struct{}),
	}
	p.running.Store(true)

	p.wg.Add(workers)
	for range workers {
		go p.worker()
	}
	return p
}

// worker is the main loop for each worker goroutine.
func (p *Pool) worker() {
	defer p.wg.Done()

	for {
		select {
		case <-p.done:
			// Finish queued work before exiting
			p.drain()
			return

		case job := <-p.queue:
			if job != nil {
				job()
			}
		}
	}
}

// drain executes jobs remaining in the queue at shutdown.
func (p *Pool) drain() {
	for {
		select {
		case job := <-p.queue:
			if job != nil {
				job()
			}
		default:
			return
		}
	}
}

// Submit queues a single job. It blocks while the queue is full and reports
// whether the job was accepted; false means the pool is closed and the job
// will not run. A true return guarantees the job runs, even when Close is
// called concurrently.
func (p *Pool) Submit(job func()) bool {
	if job == nil {
		return false
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	if !p.running.Load() {
		return false
	}
	p.queue <- job
	return true
}

// Close gracefully shuts down the pool.
// It stops accepting new work, lets queued jobs finish, and then stops all
// workers. Close is safe to call multiple times.
func (p *Pool) Close() {
	p.mu.Lock()
	if !p.running.CompareAndSwap(true, false) {
		// Already closed
		p.mu.Unlock()
		return
	}
	close(p.done)
	p.mu.Unlock()

	p.wg.Wait()
}

// Workers returns the number of workers in the pool.
func (p *Pool) Workers() int {
	return p.workers
}

// IsRunning returns true if the pool is still accepting work.
func (p *Pool) IsRunning() bool {
	return p.running.Load()
}
