package layoutkit

import (
	"github.com/grindlemire/go-layoutkit/internal/debug"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// ApplyReport summarizes one apply pass.
type ApplyReport struct {
	Built    int
	Reused   int
	TornDown int
	Errors   []*NodeError
}

// Err combines every node error into one, or returns nil.
func (r ApplyReport) Err() error {
	var err error
	for _, e := range r.Errors {
		err = multierr.Append(err, e)
	}
	return err
}

// Applier owns the view binding table and turns arrangements into views
// under a root container. It must only be used from its MainLoop; the
// binding table is not locked.
type Applier struct {
	root     View
	bindings []Binding
	logger   *zap.Logger
	metrics  *Metrics
}

// ApplierOption configures an Applier.
type ApplierOption func(*Applier)

// WithApplierLogger sets the applier's logger.
func WithApplierLogger(logger *zap.Logger) ApplierOption {
	return func(a *Applier) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithApplierMetrics records view counts in m.
func WithApplierMetrics(m *Metrics) ApplierOption {
	return func(a *Applier) {
		a.metrics = m
	}
}

// NewApplier creates an Applier that attaches top-level views to root.
func NewApplier(root View, opts ...ApplierOption) *Applier {
	a := &Applier{root: root, logger: debug.Logger()}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Root returns the root container.
func (a *Applier) Root() View {
	return a.root
}

// Bindings returns a copy of the current binding table in tree order.
func (a *Applier) Bindings() []Binding {
	out := make([]Binding, len(a.bindings))
	copy(out, a.bindings)
	return out
}

// Apply reconciles the live views with arr.
//
// Nodes that match a previous binding reuse its view; the rest are built.
// Every materialized node is configured and positioned, views are re-parented
// only when their parent changed, and previous views nothing matched are
// removed. A builder or configurator failure is isolated to its node and
// reported in ApplyReport.Errors, as is a toolkit panic while positioning or
// attaching its view. Descendants of a node whose view could not be built or
// attached attach to the nearest surviving ancestor.
//
// The returned error is non-nil only when Apply could not run at all.
func (a *Applier) Apply(ui *UIContext, arr *Arrangement) (ApplyReport, error) {
	if err := ui.Check(); err != nil {
		return ApplyReport{}, err
	}

	res := MatchViews(a.bindings, arr)
	for _, dup := range res.Duplicates {
		a.logger.Debug("duplicate reuse id in previous pass", zap.String("reuse_key", dup))
	}

	var report ApplyReport
	views := make([]View, len(res.Entries))
	bindings := make([]Binding, 0, len(res.Entries))

	for i, e := range res.Entries {
		l := e.Node.Layout
		parent, frame := a.resolveParent(res.Entries, views, i)

		view := e.View
		reused := view != nil
		if !reused {
			built, err := buildView(l)
			if err != nil {
				report.Errors = append(report.Errors, a.nodeError(PhaseBuild, e, err))
				continue
			}
			view = built
		}

		if err := configureView(l, view); err != nil {
			report.Errors = append(report.Errors, a.nodeError(PhaseConfigure, e, err))
		}

		moved := reused && a.bindings[e.Prev].Parent != parent
		if err := placeView(view, parent, frame, moved, !reused || moved); err != nil {
			report.Errors = append(report.Errors, a.nodeError(PhaseAttach, e, err))
			// The view may be half attached; it is no longer tracked.
			_ = removeView(view)
			continue
		}
		if reused {
			report.Reused++
		} else {
			report.Built++
		}

		views[i] = view
		bindings = append(bindings, Binding{
			ReuseID:  l.ViewReuseID(),
			ViewType: l.ViewType(),
			View:     view,
			Parent:   parent,
			Frame:    frame,
		})
	}

	for _, b := range res.Teardown {
		if err := removeView(b.View); err != nil {
			report.Errors = append(report.Errors, &NodeError{
				Phase:    PhaseTeardown,
				ReuseID:  b.ReuseID,
				ViewType: b.ViewType,
				Err:      err,
			})
			continue
		}
		report.TornDown++
	}

	a.bindings = bindings
	a.metrics.observeApply(report)
	return report, nil
}

// Reset removes every bound view.
func (a *Applier) Reset(ui *UIContext) (ApplyReport, error) {
	return a.Apply(ui, nil)
}

// resolveParent returns the view entry i attaches to and its frame in that
// view's coordinates, skipping ancestors whose view could not be built.
func (a *Applier) resolveParent(entries []MatchEntry, views []View, i int) (View, Rect) {
	frame := entries[i].Frame
	p := entries[i].Parent
	for p >= 0 && views[p] == nil {
		frame = frame.Offset(entries[p].Frame.Origin())
		p = entries[p].Parent
	}
	if p < 0 {
		return a.root, frame
	}
	return views[p], frame
}

func (a *Applier) nodeError(phase Phase, e MatchEntry, err error) *NodeError {
	ne := &NodeError{
		Phase:    phase,
		ReuseID:  e.Node.Layout.ViewReuseID(),
		ViewType: e.Node.Layout.ViewType(),
		Path:     e.Path,
		Err:      err,
	}
	a.logger.Warn("node failed during apply",
		zap.String("phase", string(phase)),
		zap.String("reuse_id", ne.ReuseID),
		zap.String("view_type", ne.ViewType),
		zap.Ints("path", ne.Path),
		zap.Error(err),
	)
	return ne
}

func buildView(l Layout) (v View, err error) {
	defer func() {
		if r := recover(); r != nil {
			v, err = nil, panicError(r)
		}
	}()
	v = l.MakeView()
	if isNilView(v) {
		return nil, ErrNilView
	}
	return v, nil
}

// placeView sets v's frame and, when attach is set, adds it to parent,
// detaching it from its old superview first when detach is set.
func placeView(v, parent View, frame Rect, detach, attach bool) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = panicError(r)
		}
	}()
	v.SetFrame(frame)
	if detach {
		v.RemoveFromSuperview()
	}
	if attach {
		parent.AddSubview(v)
	}
	return nil
}

func configureView(l Layout, v View) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = panicError(r)
		}
	}()
	return l.Configure(v)
}

func removeView(v View) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = panicError(r)
		}
	}()
	v.RemoveFromSuperview()
	return nil
}
