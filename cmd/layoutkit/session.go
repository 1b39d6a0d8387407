package main

import (
	"context"
	"errors"

	layoutkit "github.com/grindlemire/go-layoutkit"
	"github.com/grindlemire/go-layoutkit/internal/config"
	"github.com/grindlemire/go-layoutkit/internal/debug"
	"github.com/prometheus/client_golang/prometheus"
)

// session is a running UI loop with a pipeline applying onto a headless
// window.
type session struct {
	window   *layoutkit.HeadlessView
	loop     *layoutkit.MainLoop
	pipeline *layoutkit.Pipeline
	registry *prometheus.Registry

	cancel context.CancelFunc
	done   chan error
}

// startSession builds the pipeline described by cfg and starts its UI loop.
// Metrics are registered with registry when enabled. Extra pipeline options
// are applied after the configured ones.
func startSession(cfg *config.Config, registry *prometheus.Registry, opts ...layoutkit.PipelineOption) (*session, error) {
	logger := debug.Logger()

	loop, err := layoutkit.NewMainLoop(
		layoutkit.WithQueueSize(cfg.Pipeline.QueueSize),
		layoutkit.WithLoopLogger(logger),
	)
	if err != nil {
		return nil, err
	}

	s := &session{
		window:   layoutkit.NewHeadlessView("Window"),
		loop:     loop,
		registry: registry,
		done:     make(chan error, 1),
	}

	pipelineOpts := []layoutkit.PipelineOption{
		layoutkit.WithExecutor(layoutkit.NewWorkerPool(cfg.Pipeline.Workers)),
		layoutkit.WithLogger(logger),
	}
	if cfg.Metrics.Enabled {
		metrics := layoutkit.NewMetrics(
			layoutkit.WithMetricsNamespace(cfg.Metrics.Namespace),
			layoutkit.WithRegistry(s.registry),
		)
		pipelineOpts = append(pipelineOpts, layoutkit.WithMetrics(metrics))
	}

	applier := layoutkit.NewApplier(s.window, layoutkit.WithApplierLogger(logger))
	s.pipeline, err = layoutkit.NewPipeline(loop, applier, append(pipelineOpts, opts...)...)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	go func() { s.done <- loop.Run(ctx) }()
	return s, nil
}

// dump renders the window hierarchy on the UI loop.
func (s *session) dump(ctx context.Context) (string, error) {
	var out string
	err := s.loop.Call(ctx, func(*layoutkit.UIContext) error {
		out = s.window.Dump()
		return nil
	})
	return out, err
}

// close stops the loop and waits for it.
func (s *session) close() error {
	s.loop.Stop()
	s.cancel()
	err := <-s.done
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
