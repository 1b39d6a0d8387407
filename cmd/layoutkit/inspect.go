package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	layoutkit "github.com/grindlemire/go-layoutkit"
	"github.com/grindlemire/go-layoutkit/internal/debug"
	"github.com/grindlemire/go-layoutkit/internal/inspector"
	"github.com/grindlemire/go-layoutkit/internal/treefile"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func inspectCmd(g *globals) *cobra.Command {
	var (
		b     bounds
		addr  string
		watch bool
	)

	cmd := &cobra.Command{
		Use:   "inspect <tree.yaml>",
		Short: "Apply a tree and serve the pipeline state over HTTP",
		Long: `Apply the tree, then serve the inspector until interrupted:
/tree shows the last applied arrangement, /passes recent pass events,
/metrics the pipeline metrics and /ws streams pass events.

With --watch the tree file is re-applied every time it is saved.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = g.cfg.Inspector.Addr
			}
			if addr == "" {
				return errors.New("no inspector address: set --addr or inspector.addr")
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runInspect(ctx, g, args[0], b.rect(), addr, watch)
		},
	}

	b.register(cmd)
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default inspector.addr)")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "re-apply the tree when the file changes")
	return cmd
}

func runInspect(ctx context.Context, g *globals, path string, rect layoutkit.Rect, addr string, watch bool) error {
	logger := debug.Logger()
	registry := prometheus.NewRegistry()

	opts := []inspector.Option{
		inspector.WithLogger(logger),
		inspector.WithHistory(g.cfg.Inspector.History),
		inspector.WithPushRate(g.cfg.Inspector.PushPerSecond),
	}
	if g.cfg.Metrics.Enabled {
		opts = append(opts, inspector.WithGatherer(registry))
	}
	srv, err := inspector.New(opts...)
	if err != nil {
		return err
	}

	s, err := startSession(g.cfg, registry, layoutkit.WithObserver(srv.Observe))
	if err != nil {
		return err
	}
	defer s.close()

	doc, err := treefile.Load(path)
	if err != nil {
		return err
	}

	eg, gctx := errgroup.WithContext(ctx)
	submit := func(doc *treefile.Document, err error) {
		if err == nil {
			var root layoutkit.Layout
			if root, err = doc.Build(); err == nil {
				s.pipeline.Submit(gctx, root, rect)
				return
			}
		}
		logger.Warn("tree not applied", zap.String("path", path), zap.Error(err))
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}
	submit(doc, nil)

	eg.Go(func() error {
		return srv.ListenAndServe(gctx, addr)
	})
	if watch {
		eg.Go(func() error {
			return treefile.Watch(gctx, path, treefile.DefaultDebounce, submit)
		})
	}
	return eg.Wait()
}
