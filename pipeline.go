package layoutkit

import (
	"context"
	"fmt"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/grindlemire/go-layoutkit/internal/debug"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const tracerName = "github.com/grindlemire/go-layoutkit"

// Pipeline measures and arranges layout trees off the UI loop and applies
// them on it, in submission order.
//
// Every Submit starts a new generation. A pass whose generation is no longer
// the latest when it reaches the UI loop, or whose context is done, is
// discarded without running any builder or configurator. Applied passes
// therefore have strictly increasing generations, and reuse matching always
// compares against the last applied tree.
type Pipeline struct {
	loop      *MainLoop
	applier   *Applier
	executor  Executor
	logger    *zap.Logger
	metrics   *Metrics
	tracer    trace.Tracer
	observers []func(PassEvent)

	generation  atomic.Uint64
	lastApplied atomic.Uint64
}

// PipelineOption is a functional option for configuring a Pipeline.
type PipelineOption func(*Pipeline) error

// WithExecutor sets where measurement and arrangement run.
// Default is a WorkerPool limited to GOMAXPROCS.
func WithExecutor(e Executor) PipelineOption {
	return func(p *Pipeline) error {
		if e == nil {
			return fmt.Errorf("executor must not be nil")
		}
		p.executor = e
		return nil
	}
}

// WithLogger sets the pipeline logger.
func WithLogger(logger *zap.Logger) PipelineOption {
	return func(p *Pipeline) error {
		if logger == nil {
			return fmt.Errorf("logger must not be nil")
		}
		p.logger = logger
		return nil
	}
}

// WithMetrics records pass outcomes and stage durations in m. The applier
// records view counts in m too unless it already has metrics.
func WithMetrics(m *Metrics) PipelineOption {
	return func(p *Pipeline) error {
		p.metrics = m
		return nil
	}
}

// WithTracer sets the tracer for layout and apply spans.
// Default is the global OpenTelemetry tracer provider.
func WithTracer(t trace.Tracer) PipelineOption {
	return func(p *Pipeline) error {
		if t == nil {
			return fmt.Errorf("tracer must not be nil")
		}
		p.tracer = t
		return nil
	}
}

// WithObserver registers fn to receive pass events. Observers run on the
// goroutine that produced the event and must not block.
func WithObserver(fn func(PassEvent)) PipelineOption {
	return func(p *Pipeline) error {
		if fn == nil {
			return fmt.Errorf("observer must not be nil")
		}
		p.observers = append(p.observers, fn)
		return nil
	}
}

// NewPipeline creates a Pipeline applying onto applier from loop.
func NewPipeline(loop *MainLoop, applier *Applier, opts ...PipelineOption) (*Pipeline, error) {
	if loop == nil || applier == nil {
		return nil, fmt.Errorf("pipeline requires a main loop and an applier")
	}
	p := &Pipeline{
		loop:    loop,
		applier: applier,
		logger:  debug.Logger(),
		tracer:  otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}
	if p.executor == nil {
		p.executor = NewWorkerPool(runtime.GOMAXPROCS(0))
	}
	if p.metrics != nil && applier.metrics == nil {
		applier.metrics = p.metrics
	}
	return p, nil
}

// Generation returns the generation of the most recently submitted pass.
func (p *Pipeline) Generation() uint64 {
	return p.generation.Load()
}

// LastApplied returns the generation of the most recently applied pass, or 0.
func (p *Pipeline) LastApplied() uint64 {
	return p.lastApplied.Load()
}

// Submit starts a pass laying root out in rect. It supersedes every pass
// submitted before it that has not been applied yet.
func (p *Pipeline) Submit(ctx context.Context, root Layout, rect Rect) *Pass {
	pass := newPass(p.generation.Add(1))
	p.logger.Debug("pass submitted",
		zap.Stringer("pass_id", pass.ID),
		zap.Uint64("generation", pass.Generation),
	)
	p.emit(PassEvent{PassID: pass.ID, Generation: pass.Generation, Stage: StageSubmitted})

	p.executor.Go(ctx, func(ctx context.Context) {
		p.layout(ctx, pass, root, rect)
	})
	return pass
}

// layout runs on the executor.
func (p *Pipeline) layout(ctx context.Context, pass *Pass, root Layout, rect Rect) {
	if r, stale := p.stale(ctx, pass); stale {
		p.finish(pass, r)
		return
	}

	spanCtx, span := p.tracer.Start(ctx, "layoutkit.layout", trace.WithAttributes(p.passAttributes(pass)...))
	start := time.Now()
	arr := ArrangeWithin(root, rect)
	p.metrics.observeStage("layout", time.Since(start))
	span.SetAttributes(attribute.Int("layoutkit.nodes", arr.Count()))
	span.End()

	p.emit(PassEvent{PassID: pass.ID, Generation: pass.Generation, Stage: StageArranged, Arrangement: &arr})

	if err := p.loop.Post(func(ui *UIContext) {
		p.apply(spanCtx, ui, pass, &arr)
	}); err != nil {
		p.finish(pass, PassResult{Outcome: PassFailed, Err: err})
		return
	}
	go p.failOnStop(pass)
}

// failOnStop fails pass if the loop stops before its apply callback runs.
func (p *Pipeline) failOnStop(pass *Pass) {
	select {
	case <-pass.Done():
	case <-p.loop.Done():
		if pass.claim() {
			p.finish(pass, PassResult{Outcome: PassFailed, Err: ErrLoopStopped})
		}
	}
}

// apply runs on the UI loop.
func (p *Pipeline) apply(ctx context.Context, ui *UIContext, pass *Pass, arr *Arrangement) {
	if !pass.claim() {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			err := panicError(r)
			p.logger.Error("recovered panic while applying pass",
				zap.Stringer("pass_id", pass.ID),
				zap.Error(err),
			)
			p.finish(pass, PassResult{Outcome: PassFailed, Err: err})
		}
	}()

	if r, stale := p.stale(ctx, pass); stale {
		p.finish(pass, r)
		return
	}

	_, span := p.tracer.Start(ctx, "layoutkit.apply", trace.WithAttributes(p.passAttributes(pass)...))
	defer span.End()

	start := time.Now()
	report, err := p.applier.Apply(ui, arr)
	p.metrics.observeStage("apply", time.Since(start))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		p.finish(pass, PassResult{Outcome: PassFailed, Err: err})
		return
	}

	span.SetAttributes(
		attribute.Int("layoutkit.views.built", report.Built),
		attribute.Int("layoutkit.views.reused", report.Reused),
		attribute.Int("layoutkit.views.torn_down", report.TornDown),
	)
	if nodeErr := report.Err(); nodeErr != nil {
		span.RecordError(nodeErr)
		span.SetStatus(codes.Error, fmt.Sprintf("%d node errors", len(report.Errors)))
	}

	p.lastApplied.Store(pass.Generation)
	p.finish(pass, PassResult{Outcome: PassApplied, Report: report, Arrangement: arr})
}

// stale reports whether pass must be discarded, and the result to finish it with.
func (p *Pipeline) stale(ctx context.Context, pass *Pass) (PassResult, bool) {
	if err := ctx.Err(); err != nil {
		return PassResult{Outcome: PassCanceled, Err: err}, true
	}
	if p.generation.Load() != pass.Generation {
		return PassResult{Outcome: PassSuperseded}, true
	}
	return PassResult{}, false
}

func (p *Pipeline) finish(pass *Pass, r PassResult) {
	fields := []zap.Field{
		zap.Stringer("pass_id", pass.ID),
		zap.Uint64("generation", pass.Generation),
		zap.Stringer("outcome", r.Outcome),
	}
	switch r.Outcome {
	case PassApplied:
		p.logger.Debug("pass applied", append(fields,
			zap.Int("built", r.Report.Built),
			zap.Int("reused", r.Report.Reused),
			zap.Int("torn_down", r.Report.TornDown),
		)...)
	case PassFailed:
		p.logger.Warn("pass failed", append(fields, zap.Error(r.Err))...)
	default:
		p.logger.Debug("pass discarded", fields...)
	}

	p.metrics.observePass(r.Outcome, pass.Generation)
	// Observers see the result before waiters are released.
	p.emit(PassEvent{PassID: pass.ID, Generation: pass.Generation, Stage: StageFinished, Result: &r})
	pass.finish(r)
}

func (p *Pipeline) passAttributes(pass *Pass) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("layoutkit.pass_id", pass.ID.String()),
		attribute.Int64("layoutkit.generation", int64(pass.Generation)),
	}
}

func (p *Pipeline) emit(e PassEvent) {
	if len(p.observers) == 0 {
		return
	}
	e.Time = time.Now()
	for _, fn := range p.observers {
		fn(e)
	}
}
