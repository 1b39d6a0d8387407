package layoutkit

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

// --- Test view types ---

// imageView and labelView are distinct view types sharing HeadlessView's
// hierarchy bookkeeping.
type imageView struct{ *HeadlessView }

type labelView struct{ *HeadlessView }

var (
	imageClass = NewViewClass("ImageView", func() *imageView {
		return &imageView{NewHeadlessView("ImageView")}
	})
	labelClass = NewViewClass("LabelView", func() *labelView {
		return &labelView{NewHeadlessView("LabelView")}
	})
)

// calls counts view function invocations. Safe across goroutines.
type calls struct {
	builds  atomic.Int32
	configs atomic.Int32
}

// leaf creates a sized, materialized node whose configurator sets a "text"
// property and whose builder constructs through class.
func leaf[V interface {
	View
	SetProp(string, string)
}](id string, class ViewClass[V], w, h float64, p *calls) *SizeLayout[V] {
	return NewSizeLayout(SizeConfig[V]{
		BaseConfig: BaseConfig[V]{
			ReuseID: id,
			Class:   class,
			Build: func() V {
				if p != nil {
					p.builds.Add(1)
				}
				return class.New()
			},
			Config: func(v V) {
				if p != nil {
					p.configs.Add(1)
				}
				v.SetProp("text", id)
			},
		},
		Width:  w,
		Height: h,
	}, nil)
}

// box is a sized node that never produces a view.
func box(w, h float64, flex Flexibility, align Alignment) *SizeLayout[View] {
	return NewSizeLayout(SizeConfig[View]{
		BaseConfig: BaseConfig[View]{Alignment: align, Flexibility: flex},
		Width:      w,
		Height:     h,
	}, nil)
}

// hstack and vstack create view-less stacks that fill their rect.
func hstack(d StackDistribution, spacing float64, children ...Layout) *StackLayout[View] {
	return NewStackLayout(StackConfig[View]{
		BaseConfig:   BaseConfig[View]{Alignment: Fill},
		Axis:         Horizontal,
		Spacing:      spacing,
		Distribution: d,
	}, children...)
}

func vstack(d StackDistribution, spacing float64, children ...Layout) *StackLayout[View] {
	return NewStackLayout(StackConfig[View]{
		BaseConfig:   BaseConfig[View]{Alignment: Fill},
		Axis:         Vertical,
		Spacing:      spacing,
		Distribution: d,
	}, children...)
}

// --- Main loop helpers ---

// startLoop runs a MainLoop on its own goroutine until the test ends.
func startLoop(t *testing.T, opts ...LoopOption) *MainLoop {
	t.Helper()
	loop, err := NewMainLoop(opts...)
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- loop.Run(context.Background()) }()
	t.Cleanup(func() {
		loop.Stop()
		<-done
	})
	return loop
}

// onUI runs fn on loop and waits for it.
func onUI(t *testing.T, loop *MainLoop, fn func(ui *UIContext)) {
	t.Helper()
	require.NoError(t, loop.Call(context.Background(), func(ui *UIContext) error {
		fn(ui)
		return nil
	}))
}

// manualExecutor queues computations until the test runs them.
type manualExecutor struct {
	mu    sync.Mutex
	tasks []func()
}

func (e *manualExecutor) Go(ctx context.Context, fn func(context.Context)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.tasks = append(e.tasks, func() { fn(ctx) })
}

// runNext runs the oldest queued computation.
func (e *manualExecutor) runNext(t *testing.T) {
	t.Helper()
	e.mu.Lock()
	require.NotEmpty(t, e.tasks, "no queued computation")
	task := e.tasks[0]
	e.tasks = e.tasks[1:]
	e.mu.Unlock()
	task()
}
