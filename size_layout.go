package layoutkit

var _ Layout = (*SizeLayout[View])(nil)

// SizeConfig configures a SizeLayout. Zero-valued lengths are unset: Width
// and Height of zero size to content, MaxWidth and MaxHeight of zero impose
// no limit.
type SizeConfig[V View] struct {
	BaseConfig[V]

	Width, Height       float64
	MinWidth, MinHeight float64
	MaxWidth, MaxHeight float64
}

// SizeLayout is a leaf, or a wrapper around one sublayout, with optional
// exact, minimum and maximum dimensions.
type SizeLayout[V View] struct {
	BaseLayout[V]

	width, height       float64
	minWidth, minHeight float64
	maxWidth, maxHeight float64
	sublayout           Layout
}

// NewSizeLayout creates a SizeLayout. sublayout may be nil.
func NewSizeLayout[V View](cfg SizeConfig[V], sublayout Layout) *SizeLayout[V] {
	return &SizeLayout[V]{
		BaseLayout: NewBaseLayout(cfg.BaseConfig),
		width:      SanitizeLength(cfg.Width),
		height:     SanitizeLength(cfg.Height),
		minWidth:   SanitizeLength(cfg.MinWidth),
		minHeight:  SanitizeLength(cfg.MinHeight),
		maxWidth:   SanitizeLength(cfg.MaxWidth),
		maxHeight:  SanitizeLength(cfg.MaxHeight),
		sublayout:  sublayout,
	}
}

// Sublayout returns the wrapped layout, or nil.
func (s *SizeLayout[V]) Sublayout() Layout {
	return s.sublayout
}

// Measure implements Layout.
func (s *SizeLayout[V]) Measure(maxSize Size) Measurement {
	limit := Size{
		Width:  s.limit(maxSize.Width, s.width, s.maxWidth),
		Height: s.limit(maxSize.Height, s.height, s.maxHeight),
	}

	var natural Size
	var subs []Measurement
	if s.sublayout != nil {
		sub := safeMeasure(s.sublayout, limit)
		natural = sub.Size
		subs = []Measurement{sub}
	}

	natural.Width = resolveLength(natural.Width, s.width, s.minWidth, s.maxWidth, maxSize.Width)
	natural.Height = resolveLength(natural.Height, s.height, s.minHeight, s.maxHeight, maxSize.Height)

	return Measurement{Layout: s, Size: natural, MaxSize: maxSize, Sublayouts: subs}
}

// limit is the constraint passed to the sublayout on one axis.
func (s *SizeLayout[V]) limit(available, exact, maximum float64) float64 {
	if exact > 0 {
		available = min(available, exact)
	}
	if maximum > 0 {
		available = min(available, maximum)
	}
	return available
}

// resolveLength applies exact, min and max to a content length and clips the
// result to the available length.
func resolveLength(content, exact, minimum, maximum, available float64) float64 {
	v := content
	if exact > 0 {
		v = exact
	}
	v = max(v, minimum)
	if maximum > 0 {
		v = min(v, maximum)
	}
	return min(v, available)
}

// Arrange implements Layout.
func (s *SizeLayout[V]) Arrange(rect Rect, m Measurement) Arrangement {
	frame := s.Alignment().Position(m.Size, rect)
	arr := Arrangement{Layout: s, Frame: frame}
	if s.sublayout != nil {
		content := RectFrom(Point{}, frame.Size())
		sub := sublayoutMeasurement(m, 0, s.sublayout, content.Size())
		arr.Sublayouts = []Arrangement{safeArrange(s.sublayout, content, sub)}
	}
	return arr
}
