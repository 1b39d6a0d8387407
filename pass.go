package layoutkit

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// PassOutcome is how a pass ended.
type PassOutcome uint8

const (
	// PassApplied means the pass reached the views.
	PassApplied PassOutcome = iota
	// PassSuperseded means a newer pass was submitted before this one could
	// be applied. No builder or configurator ran for it.
	PassSuperseded
	// PassCanceled means the pass context was done before apply.
	PassCanceled
	// PassFailed means the pass could not be applied (stopped loop, full
	// queue or an apply precondition failure).
	PassFailed
)

// String returns the outcome name.
func (o PassOutcome) String() string {
	switch o {
	case PassApplied:
		return "applied"
	case PassSuperseded:
		return "superseded"
	case PassCanceled:
		return "canceled"
	case PassFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// PassResult is the final state of a pass.
type PassResult struct {
	Outcome PassOutcome
	Report  ApplyReport
	// Arrangement is the applied tree. Nil unless Outcome is PassApplied.
	Arrangement *Arrangement
	Err         error
}

// Pass is a handle to one submitted layout pass.
type Pass struct {
	ID         uuid.UUID
	Generation uint64

	done     chan struct{}
	doneOnce sync.Once
	result   PassResult
	// claimed is set by whichever of the apply callback or a loop stop
	// gets to the pass first.
	claimed atomic.Bool
}

func newPass(generation uint64) *Pass {
	return &Pass{
		ID:         uuid.New(),
		Generation: generation,
		done:       make(chan struct{}),
	}
}

// Done is closed once the pass has finished.
func (p *Pass) Done() <-chan struct{} {
	return p.done
}

// Result blocks until the pass has finished and returns its result.
func (p *Pass) Result() PassResult {
	<-p.done
	return p.result
}

// Wait is Result bounded by ctx.
func (p *Pass) Wait(ctx context.Context) (PassResult, error) {
	select {
	case <-p.done:
		return p.result, nil
	case <-ctx.Done():
		return PassResult{}, ctx.Err()
	}
}

func (p *Pass) finish(r PassResult) {
	p.doneOnce.Do(func() {
		p.result = r
		close(p.done)
	})
}

func (p *Pass) claim() bool {
	return p.claimed.CompareAndSwap(false, true)
}

// PassStage is the lifecycle point a PassEvent reports.
type PassStage string

const (
	StageSubmitted PassStage = "submitted"
	StageArranged  PassStage = "arranged"
	StageFinished  PassStage = "finished"
)

// PassEvent is delivered to pipeline observers.
type PassEvent struct {
	PassID     uuid.UUID
	Generation uint64
	Stage      PassStage
	Time       time.Time
	// Result is set for StageFinished.
	Result *PassResult
	// Arrangement is set for StageArranged.
	Arrangement *Arrangement
}
