package worker

import (
	"context"
	"sync"
)

// Task is a unit of work executed by the pool
type Task func(ctx context.Context)

// Pool executes tasks concurrently with a fixed number of workers. Callers
// submit closures that write their own results; the pool only bounds
// parallelism and honors cancellation.
type Pool struct {
	workers int
	tasks   chan Task
	wg      sync.WaitGroup
}

// NewPool creates a pool with the given worker count
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}

	return &Pool{
		workers: workers,
		tasks:   make(chan Task, workers*2),
	}
}

// Start launches the workers. Tasks submitted after the context is cancelled
// are dropped.
func (p *Pool) Start(ctx context.Context) {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for task := range p.tasks {
				if ctx.Err() != nil {
					continue // Drain without executing once cancelled
				}
				task(ctx)
			}
		}()
	}
}

// Submit queues a task for execution
func (p *Pool) Submit(task Task) {
	p.tasks <- task
}

// Wait closes the queue and blocks until all submitted tasks finish
func (p *Pool) Wait() {
	close(p.tasks)
	p.wg.Wait()
}
