package engine

import "sync"

// Pool is the default Executor backing use_async_state/use_async_ref when
// no caller-supplied Executor is given (spec.md §4.2 "executor?", §5
// "default: a shared worker pool"). Grounded generically on the
// goroutine-plus-channel worker pool idiom used throughout the retrieval
// pack for background work; no dedicated pool library appears anywhere in
// the pack, so this is the one ambient concern built on nothing more than
// the standard library's concurrency primitives.
type Pool struct {
	jobs chan func()
	done chan struct{}
	once sync.Once
}

// NewPool starts a Pool with the given number of worker goroutines; a
// count below 1 falls back to 4 workers.
func NewPool(workers int) *Pool {
	if workers < 1 {
		workers = 4
	}
	p := &Pool{
		jobs: make(chan func(), 64),
		done: make(chan struct{}),
	}
	for i := 0; i < workers; i++ {
		go p.run()
	}
	return p
}

func (p *Pool) run() {
	for {
		select {
		case job, ok := <-p.jobs:
			if !ok {
				return
			}
			job()
		case <-p.done:
			return
		}
	}
}

// Submit enqueues job for execution by a worker goroutine. It never blocks
// past Close.
func (p *Pool) Submit(job func()) {
	select {
	case p.jobs <- job:
	case <-p.done:
	}
}

// Close stops accepting work and terminates every worker goroutine. Safe
// to call more than once.
func (p *Pool) Close() {
	p.once.Do(func() { close(p.done) })
}

var _ Executor = (*Pool)(nil)
