package layoutkit

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/grindlemire/go-layoutkit/internal/debug"
	"go.uber.org/zap"
)

// DefaultQueueSize is the default capacity of the MainLoop queue.
const DefaultQueueSize = 256

// MainLoop is the UI-owning goroutine. Every view mutation happens inside a
// callback posted to it, and each callback receives a UIContext proving it
// runs on the loop.
type MainLoop struct {
	queue     chan func(*UIContext)
	queueSize int
	stopCh    chan struct{}
	stopOnce  sync.Once
	running   atomic.Bool
	logger    *zap.Logger
}

// LoopOption is a functional option for configuring a MainLoop.
type LoopOption func(*MainLoop) error

// WithQueueSize sets the capacity of the callback queue.
// Default is 256. Must be at least 1.
func WithQueueSize(size int) LoopOption {
	return func(l *MainLoop) error {
		if size < 1 {
			return fmt.Errorf("queue size must be at least 1")
		}
		l.queueSize = size
		return nil
	}
}

// WithLoopLogger sets the logger used for recovered callback panics.
func WithLoopLogger(logger *zap.Logger) LoopOption {
	return func(l *MainLoop) error {
		if logger == nil {
			return fmt.Errorf("logger must not be nil")
		}
		l.logger = logger
		return nil
	}
}

// NewMainLoop creates a MainLoop. Call Run on the goroutine that owns the
// view hierarchy.
func NewMainLoop(opts ...LoopOption) (*MainLoop, error) {
	l := &MainLoop{
		queueSize: DefaultQueueSize,
		stopCh:    make(chan struct{}),
		logger:    debug.Logger(),
	}
	for _, opt := range opts {
		if err := opt(l); err != nil {
			return nil, err
		}
	}
	l.queue = make(chan func(*UIContext), l.queueSize)
	return l, nil
}

// Run drains posted callbacks on the calling goroutine until Stop is called
// or ctx is done. The loop is stopped when Run returns, and callbacks still
// queued then are dropped.
func (l *MainLoop) Run(ctx context.Context) error {
	if !l.running.CompareAndSwap(false, true) {
		return ErrLoopRunning
	}
	defer l.running.Store(false)
	defer l.Stop()

	select {
	case <-l.stopCh:
		return ErrLoopStopped
	default:
	}

	for {
		// Stopping wins over queued work.
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.stopCh:
			return nil
		default:
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.stopCh:
			return nil
		case fn := <-l.queue:
			l.dispatch(fn)
		}
	}
}

// dispatch runs one callback with a fresh UIContext that is invalidated as
// soon as the callback returns.
func (l *MainLoop) dispatch(fn func(*UIContext)) {
	ui := &UIContext{loop: l}
	ui.active.Store(true)
	defer func() {
		ui.active.Store(false)
		if r := recover(); r != nil {
			l.logger.Error("recovered panic in main loop callback", zap.Any("panic", r))
		}
	}()
	fn(ui)
}

// Post enqueues fn to run on the loop. Safe to call from any goroutine.
// It never blocks: a full queue returns ErrQueueFull.
func (l *MainLoop) Post(fn func(*UIContext)) error {
	select {
	case <-l.stopCh:
		return ErrLoopStopped
	default:
	}

	select {
	case l.queue <- fn:
		return nil
	case <-l.stopCh:
		return ErrLoopStopped
	default:
		l.logger.Warn("main loop queue full", zap.Int("capacity", l.queueSize))
		return ErrQueueFull
	}
}

// Call posts fn and waits for it to finish.
func (l *MainLoop) Call(ctx context.Context, fn func(*UIContext) error) error {
	done := make(chan error, 1)
	if err := l.Post(func(ui *UIContext) {
		var err error
		defer func() {
			if r := recover(); r != nil {
				err = panicError(r)
			}
			done <- err
		}()
		err = fn(ui)
	}); err != nil {
		return err
	}

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	case <-l.stopCh:
		return ErrLoopStopped
	}
}

// Stop signals Run to return. Stop is idempotent - multiple calls are safe.
func (l *MainLoop) Stop() {
	l.stopOnce.Do(func() {
		close(l.stopCh)
	})
}

// Done is closed once Stop has been called.
func (l *MainLoop) Done() <-chan struct{} {
	return l.stopCh
}

// UIContext is the handle given to callbacks running on a MainLoop. It is
// valid only until the callback returns.
type UIContext struct {
	loop   *MainLoop
	active atomic.Bool
}

// Check returns ErrNotOnUIThread unless the handle belongs to a callback
// that is currently running.
func (u *UIContext) Check() error {
	if u == nil || !u.active.Load() {
		return ErrNotOnUIThread
	}
	return nil
}

// Loop returns the MainLoop the handle belongs to.
func (u *UIContext) Loop() *MainLoop {
	if u == nil {
		return nil
	}
	return u.loop
}
