package layoutkit

var _ Layout = (*StackLayout[View])(nil)

// StackDistribution controls how a stack uses space its sublayouts did not
// claim.
type StackDistribution uint8

const (
	// DistributeFillFlexing gives all leftover space to the most flexible
	// sublayout (the earliest one on ties). Without a flexible sublayout the
	// space is left after the last sublayout.
	DistributeFillFlexing StackDistribution = iota
	// DistributeLeading packs sublayouts at the start of the axis.
	DistributeLeading
	// DistributeTrailing packs sublayouts at the end of the axis.
	DistributeTrailing
	// DistributeCenter centers sublayouts along the axis.
	DistributeCenter
)

// String returns the distribution name.
func (d StackDistribution) String() string {
	switch d {
	case DistributeFillFlexing:
		return "fill-flexing"
	case DistributeLeading:
		return "leading"
	case DistributeTrailing:
		return "trailing"
	case DistributeCenter:
		return "center"
	default:
		return "unknown"
	}
}

// StackConfig configures a StackLayout.
type StackConfig[V View] struct {
	BaseConfig[V]

	Axis         Axis
	Spacing      float64
	Distribution StackDistribution
}

// StackLayout lays sublayouts out one after another along an axis.
//
// Sublayouts are measured from least to most flexible, each against the
// space the previous ones left. When arranged into more space than measured,
// the slack goes to sublayouts according to the distribution; when arranged
// into less, the deficit is taken from the most flexible sublayouts first and
// never drives a length below zero. Flexibility ties always favor the earlier
// sibling.
type StackLayout[V View] struct {
	BaseLayout[V]

	axis         Axis
	spacing      float64
	distribution StackDistribution
	sublayouts   []Layout
}

// NewStackLayout creates a StackLayout. Nil sublayouts are ignored.
func NewStackLayout[V View](cfg StackConfig[V], sublayouts ...Layout) *StackLayout[V] {
	children := make([]Layout, 0, len(sublayouts))
	for _, l := range sublayouts {
		if l != nil {
			children = append(children, l)
		}
	}
	return &StackLayout[V]{
		BaseLayout:   NewBaseLayout(cfg.BaseConfig),
		axis:         cfg.Axis,
		spacing:      SanitizeLength(cfg.Spacing),
		distribution: cfg.Distribution,
		sublayouts:   children,
	}
}

// Axis returns the stacking axis.
func (s *StackLayout[V]) Axis() Axis {
	return s.axis
}

// Sublayouts returns the stacked layouts.
func (s *StackLayout[V]) Sublayouts() []Layout {
	return s.sublayouts
}

func (s *StackLayout[V]) totalSpacing() float64 {
	if len(s.sublayouts) < 2 {
		return 0
	}
	return s.spacing * float64(len(s.sublayouts)-1)
}

func (s *StackLayout[V]) flexes() []Flex {
	flexes := make([]Flex, len(s.sublayouts))
	for i, l := range s.sublayouts {
		flexes[i] = l.Flexibility().Flex(s.axis)
	}
	return flexes
}

// Measure implements Layout.
func (s *StackLayout[V]) Measure(maxSize Size) Measurement {
	if len(s.sublayouts) == 0 {
		return Measurement{Layout: s, MaxSize: maxSize}
	}

	axis, cross := s.axis, s.axis.Cross()
	spacing := s.totalSpacing()
	remaining := remainingLength(maxSize.Length(axis), spacing)

	subs := make([]Measurement, len(s.sublayouts))
	var total, crossLength float64
	for _, i := range OrderByFlex(s.flexes(), false) {
		sub := safeMeasure(s.sublayouts[i], maxSize.WithLength(axis, remaining))
		subs[i] = sub

		length := sub.Size.Length(axis)
		remaining = remainingLength(remaining, length)
		total += length
		crossLength = max(crossLength, sub.Size.Length(cross))
	}

	size := Size{}.WithLength(axis, total+spacing).WithLength(cross, crossLength)
	return Measurement{Layout: s, Size: size.Min(maxSize), MaxSize: maxSize, Sublayouts: subs}
}

// Arrange implements Layout.
func (s *StackLayout[V]) Arrange(rect Rect, m Measurement) Arrangement {
	frame := s.Alignment().Position(m.Size, rect)
	arr := Arrangement{Layout: s, Frame: frame}
	if len(s.sublayouts) == 0 {
		return arr
	}

	axis, cross := s.axis, s.axis.Cross()
	subs := make([]Measurement, len(s.sublayouts))
	lengths := make([]float64, len(s.sublayouts))
	used := s.totalSpacing()
	for i, child := range s.sublayouts {
		subs[i] = sublayoutMeasurement(m, i, child, frame.Size())
		lengths[i] = subs[i].Size.Length(axis)
		used += lengths[i]
	}

	var offset float64
	excess := frame.Size().Length(axis) - used
	switch {
	case excess < 0:
		s.absorbDeficit(lengths, -excess)
	case excess > 0:
		switch s.distribution {
		case DistributeFillFlexing:
			s.giveSlack(lengths, excess)
		case DistributeTrailing:
			offset = excess
		case DistributeCenter:
			offset = excess / 2
		}
	}

	crossLength := frame.Size().Length(cross)
	arr.Sublayouts = make([]Arrangement, len(s.sublayouts))
	cursor := offset
	for i, child := range s.sublayouts {
		slot := rectAlong(axis, cursor, lengths[i], crossLength)
		arr.Sublayouts[i] = safeArrange(child, slot, subs[i])
		cursor += lengths[i] + s.spacing
	}
	return arr
}

// giveSlack adds slack to the most flexible sublayout.
func (s *StackLayout[V]) giveSlack(lengths []float64, slack float64) {
	flexes := s.flexes()
	order := OrderByFlex(flexes, true)
	if len(order) > 0 && flexes[order[0]].Flexible {
		lengths[order[0]] += slack
	}
}

// absorbDeficit shrinks sublayouts, most flexible first, until the deficit
// is gone or every length is zero.
func (s *StackLayout[V]) absorbDeficit(lengths []float64, deficit float64) {
	for _, i := range OrderByFlex(s.flexes(), true) {
		if deficit <= 0 {
			return
		}
		take := min(lengths[i], deficit)
		lengths[i] -= take
		deficit -= take
	}
}

// remainingLength subtracts used from available, never below zero.
// Unbounded stays unbounded.
func remainingLength(available, used float64) float64 {
	if available == Unbounded {
		return Unbounded
	}
	return max(0, available-used)
}

// rectAlong builds a slot starting at start along axis and spanning the full
// cross length.
func rectAlong(axis Axis, start, length, crossLength float64) Rect {
	if axis == Horizontal {
		return Rect{X: start, Width: length, Height: crossLength}
	}
	return Rect{Y: start, Width: crossLength, Height: length}
}
