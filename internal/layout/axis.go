package layout

// Axis is one of the two layout dimensions.
type Axis uint8

const (
	Horizontal Axis = iota // X / width
	Vertical               // Y / height
)

// Cross returns the other axis.
func (a Axis) Cross() Axis {
	if a == Horizontal {
		return Vertical
	}
	return Horizontal
}

// String returns the axis name.
func (a Axis) String() string {
	switch a {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	default:
		return "unknown"
	}
}
