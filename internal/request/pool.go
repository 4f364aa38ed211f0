package request

import (
	"context"
	"runtime"
	"sync"

	"github.com/alitto/pond"
)

// Pool wraps a fixed-size pond worker pool, sized 2*NumCPU the way
// cmd/main.go's runBatch sizes its pool, and used here to fan
// receivers, panel sample points, and grid rows out (§5). The sources
// at one point are evaluated sequentially, not through the pool.
type Pool struct {
	wp *pond.WorkerPool
}

// NewPool builds a Pool bound to ctx; cancelling ctx stops queued but
// not-yet-started work, the same cancellation path cmd/main.go's
// runBatch wires through pond.Context(ctx).
func NewPool(ctx context.Context) *Pool {
	n := runtime.NumCPU() * 2
	wp := pond.New(n, 0, pond.MinWorkers(n), pond.Context(ctx))
	return &Pool{wp: wp}
}

// Run submits n independent units of work and blocks until all have
// completed, implementing internal/grid.Executor.
func (p *Pool) Run(n int, fn func(i int)) {
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		i := i
		p.wp.Submit(func() {
			defer wg.Done()
			fn(i)
		})
	}
	wg.Wait()
}

// Stop drains and releases the underlying pool.
func (p *Pool) Stop() {
	p.wp.StopAndWait()
}
