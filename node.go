package layoutkit

import "fmt"

// Layout is an immutable node of a layout tree.
//
// Measure and Arrange are pure: they never touch a view, may be called from
// any goroutine, and must return the same result for the same input.
// MakeView and Configure are side-effecting and only run on the UI loop.
type Layout interface {
	// Measure returns the natural size of the node within maxSize. Shrinking
	// maxSize never grows the result on either axis.
	Measure(maxSize Size) Measurement

	// Arrange positions the node and its sublayouts inside rect, using a
	// measurement previously produced by Measure.
	Arrange(rect Rect, m Measurement) Arrangement

	// NeedsView reports whether the apply phase must materialize a view for
	// this node. It is true iff a configurator is present.
	NeedsView() bool

	// MakeView returns a freshly built view: the builder's result when a
	// builder is present, otherwise a default instance of the view type.
	MakeView() View

	// Configure applies the configurator to v. It is a no-op without one.
	Configure(v View) error

	Alignment() Alignment
	Flexibility() Flexibility

	// ViewReuseID is the identifier used to match this node against the
	// previously applied tree. Empty means never reuse.
	ViewReuseID() string

	// ViewType identifies the concrete view type for reuse matching.
	ViewType() string
}

// Capability describes which view functions a node carries.
type Capability uint8

const (
	// CapabilityNone means the node never produces a view.
	CapabilityNone Capability = iota
	// CapabilityBuild means the node has a builder but no configurator.
	CapabilityBuild
	// CapabilityConfigure means the node has a configurator and relies on the
	// view class for construction.
	CapabilityConfigure
	// CapabilityBuildAndConfigure means the node has both.
	CapabilityBuildAndConfigure
)

// String returns the capability name.
func (c Capability) String() string {
	switch c {
	case CapabilityNone:
		return "none"
	case CapabilityBuild:
		return "build"
	case CapabilityConfigure:
		return "configure"
	case CapabilityBuildAndConfigure:
		return "build+configure"
	default:
		return "unknown"
	}
}

// ViewProvider is the pair of view functions a node may carry.
//
// Build must return a fresh, unconfigured view and is called at most once per
// bound view lifetime. Config may be called on every pass against the same
// reused view and must be idempotent.
type ViewProvider[V View] struct {
	Build  func() V
	Config func(V)
}

// Capability reports which functions are present.
func (p ViewProvider[V]) Capability() Capability {
	switch {
	case p.Build != nil && p.Config != nil:
		return CapabilityBuildAndConfigure
	case p.Config != nil:
		return CapabilityConfigure
	case p.Build != nil:
		return CapabilityBuild
	default:
		return CapabilityNone
	}
}

// BaseConfig is the full construction surface of a node.
type BaseConfig[V View] struct {
	Alignment   Alignment
	Flexibility Flexibility
	ReuseID     string
	Class       ViewClass[V]
	Build       func() V
	Config      func(V)
}

// BaseLayout implements every Layout method except Measure and Arrange.
// Composite layouts embed it.
type BaseLayout[V View] struct {
	alignment   Alignment
	flexibility Flexibility
	reuseID     string
	class       ViewClass[V]
	provider    ViewProvider[V]
}

// NewBaseLayout creates a BaseLayout from cfg.
func NewBaseLayout[V View](cfg BaseConfig[V]) BaseLayout[V] {
	return BaseLayout[V]{
		alignment:   cfg.Alignment,
		flexibility: cfg.Flexibility,
		reuseID:     cfg.ReuseID,
		class:       cfg.Class,
		provider:    ViewProvider[V]{Build: cfg.Build, Config: cfg.Config},
	}
}

func (b *BaseLayout[V]) Alignment() Alignment     { return b.alignment }
func (b *BaseLayout[V]) Flexibility() Flexibility { return b.flexibility }
func (b *BaseLayout[V]) ViewReuseID() string      { return b.reuseID }
func (b *BaseLayout[V]) ViewType() string         { return b.class.TypeName() }

// Provider returns the node's view functions.
func (b *BaseLayout[V]) Provider() ViewProvider[V] {
	return b.provider
}

// NeedsView is true iff a configurator is present.
func (b *BaseLayout[V]) NeedsView() bool {
	return b.provider.Config != nil
}

// MakeView builds a view. It returns nil if neither a builder nor a view
// class constructor is available, or if the one used returns a nil V.
func (b *BaseLayout[V]) MakeView() View {
	var v V
	switch {
	case b.provider.Build != nil:
		v = b.provider.Build()
	case b.class.New != nil:
		v = b.class.New()
	default:
		return nil
	}
	if isNilView(v) {
		return nil
	}
	return v
}

// Configure runs the configurator on v.
func (b *BaseLayout[V]) Configure(v View) error {
	if b.provider.Config == nil {
		return nil
	}
	typed, ok := v.(V)
	if !ok {
		return fmt.Errorf("%w: got %T, want %s", ErrViewTypeMismatch, v, b.ViewType())
	}
	b.provider.Config(typed)
	return nil
}
