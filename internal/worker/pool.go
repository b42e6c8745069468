// Package worker runs tasks on a fixed number of goroutines with an optional
// shared rate limit.
package worker

import (
	"context"
	"sync"
	"time"
)

type Task func(ctx context.Context) error

type Result struct {
	Name string
	Err  error
}

type namedTask struct {
	name string
	run  Task
}

type WorkerPool struct {
	workers int
	tasks   chan namedTask
	wg      sync.WaitGroup
	mu      sync.Mutex
	running bool
	ticker  *time.Ticker
}

func NewWorkerPool(workers, buffer int) *WorkerPool {
	if workers <= 0 {
		workers = 1
	}
	if buffer < 0 {
		buffer = 0
	}
	return &WorkerPool{
		workers: workers,
		tasks:   make(chan namedTask, buffer),
	}
}

// SetRateLimit spaces task starts across all workers to rps per second. It
// has no effect once Run was called.
func (p *WorkerPool) SetRateLimit(rps int) {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.running {
		return
	}
	if p.ticker != nil {
		p.ticker.Stop()
		p.ticker = nil
	}
	if rps <= 0 {
		return
	}
	p.ticker = time.NewTicker(time.Second / time.Duration(rps))
}

// Submit blocks while the task buffer is full. It must not be called after
// Close.
func (p *WorkerPool) Submit(name string, t Task) {
	if p == nil || t == nil {
		return
	}
	p.tasks <- namedTask{name: name, run: t}
}

func (p *WorkerPool) Close() {
	if p == nil {
		return
	}
	close(p.tasks)
}

// Run starts the workers. The returned channel yields one Result per task and
// is closed once Close was called and every task finished, or ctx is done.
func (p *WorkerPool) Run(ctx context.Context) <-chan Result {
	if p == nil {
		out := make(chan Result)
		close(out)
		return out
	}
	out := make(chan Result, p.workers*1024)

	p.mu.Lock()
	p.running = true
	ticker := p.ticker
	p.mu.Unlock()
	var rate <-chan time.Time
	if ticker != nil {
		rate = ticker.C
	}

	p.wg.Add(p.workers)
	for i := 0; i < p.workers; i++ {
		go func() {
			defer p.wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case t, ok := <-p.tasks:
					if !ok {
						return
					}
					if t.run == nil {
						continue
					}
					if rate != nil {
						select {
						case <-ctx.Done():
							return
						case <-rate:
						}
					}
					err := t.run(ctx)
					select {
					case <-ctx.Done():
						return
					case out <- Result{Name: t.name, Err: err}:
					}
				}
			}
		}()
	}

	go func() {
		p.wg.Wait()
		if ticker != nil {
			ticker.Stop()
		}
		close(out)
	}()

	return out
}
