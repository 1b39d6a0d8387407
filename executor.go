package layoutkit

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Executor runs layout computations off the UI loop.
type Executor interface {
	Go(ctx context.Context, fn func(ctx context.Context))
}

// WorkerPool is an Executor backed by a bounded errgroup. Go blocks while
// every worker is busy.
type WorkerPool struct {
	group *errgroup.Group
}

var _ Executor = (*WorkerPool)(nil)

// NewWorkerPool creates a pool running at most limit computations at once.
// A limit below 1 means no limit.
func NewWorkerPool(limit int) *WorkerPool {
	g := new(errgroup.Group)
	if limit > 0 {
		g.SetLimit(limit)
	}
	return &WorkerPool{group: g}
}

// Go runs fn on a worker.
func (p *WorkerPool) Go(ctx context.Context, fn func(ctx context.Context)) {
	p.group.Go(func() error {
		fn(ctx)
		return nil
	})
}

// Wait blocks until every started computation has returned.
func (p *WorkerPool) Wait() error {
	return p.group.Wait()
}

// InlineExecutor runs computations on the calling goroutine.
type InlineExecutor struct{}

var _ Executor = InlineExecutor{}

// Go runs fn immediately.
func (InlineExecutor) Go(ctx context.Context, fn func(ctx context.Context)) {
	fn(ctx)
}

// MeasureAll measures independent layouts in parallel, at most limit at a
// time. Layouts are immutable, so they may share subtrees. It stops starting
// new measurements once ctx is done and returns ctx's error.
func MeasureAll(ctx context.Context, layouts []Layout, maxSize Size, limit int) ([]Measurement, error) {
	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}

	out := make([]Measurement, len(layouts))
	for i, l := range layouts {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out[i] = Measure(l, maxSize)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
