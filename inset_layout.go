package layoutkit

var _ Layout = (*InsetLayout[View])(nil)

// InsetConfig configures an InsetLayout.
type InsetConfig[V View] struct {
	BaseConfig[V]

	Insets Edges
}

// InsetLayout pads one sublayout.
type InsetLayout[V View] struct {
	BaseLayout[V]

	insets    Edges
	sublayout Layout
}

// NewInsetLayout creates an InsetLayout around sublayout.
func NewInsetLayout[V View](cfg InsetConfig[V], sublayout Layout) *InsetLayout[V] {
	return &InsetLayout[V]{
		BaseLayout: NewBaseLayout(cfg.BaseConfig),
		insets:     cfg.Insets.Sanitized(),
		sublayout:  sublayout,
	}
}

// Insets returns the padding.
func (l *InsetLayout[V]) Insets() Edges {
	return l.insets
}

// Sublayout returns the padded layout.
func (l *InsetLayout[V]) Sublayout() Layout {
	return l.sublayout
}

// Measure implements Layout.
func (l *InsetLayout[V]) Measure(maxSize Size) Measurement {
	if l.sublayout == nil {
		return Measurement{Layout: l, Size: Size{}.Grow(l.insets).Min(maxSize), MaxSize: maxSize}
	}
	sub := safeMeasure(l.sublayout, maxSize.Shrink(l.insets))
	size := sub.Size.Grow(l.insets).Min(maxSize)
	return Measurement{Layout: l, Size: size, MaxSize: maxSize, Sublayouts: []Measurement{sub}}
}

// Arrange implements Layout.
func (l *InsetLayout[V]) Arrange(rect Rect, m Measurement) Arrangement {
	frame := l.Alignment().Position(m.Size, rect)
	if l.sublayout == nil {
		return Arrangement{Layout: l, Frame: frame}
	}
	content := RectFrom(Point{}, frame.Size()).Inset(l.insets)
	sub := sublayoutMeasurement(m, 0, l.sublayout, content.Size())
	return Arrangement{
		Layout:     l,
		Frame:      frame,
		Sublayouts: []Arrangement{safeArrange(l.sublayout, content, sub)},
	}
}
