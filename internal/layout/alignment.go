package layout

// AxisAlignment specifies how a measured length is placed along one axis of
// an assigned rectangle.
type AxisAlignment uint8

const (
	AlignStart  AxisAlignment = iota // Leading edge (left / top)
	AlignCenter                      // Centered
	AlignEnd                         // Trailing edge (right / bottom)
	AlignFill                        // Take the whole assigned length
)

// String returns the alignment name.
func (a AxisAlignment) String() string {
	switch a {
	case AlignStart:
		return "start"
	case AlignCenter:
		return "center"
	case AlignEnd:
		return "end"
	case AlignFill:
		return "fill"
	default:
		return "unknown"
	}
}

// align places a length inside [start, start+available) and returns the
// resulting offset and length.
func (a AxisAlignment) align(length, start, available float64) (float64, float64) {
	length = SanitizeLength(length)
	available = SanitizeLength(available)
	start = sanitizeCoord(start)

	if a == AlignFill || length >= available {
		// Oversized content is clipped to the assigned length.
		return start, available
	}

	switch a {
	case AlignCenter:
		return start + (available-length)/2, length
	case AlignEnd:
		return start + available - length, length
	default:
		return start, length
	}
}

// Alignment is the per-axis placement policy of a node inside the rectangle
// its parent assigns to it.
type Alignment struct {
	Horizontal AxisAlignment
	Vertical   AxisAlignment
}

// Predefined alignments.
var (
	TopLeft      = Alignment{Horizontal: AlignStart, Vertical: AlignStart}
	TopCenter    = Alignment{Horizontal: AlignCenter, Vertical: AlignStart}
	TopRight     = Alignment{Horizontal: AlignEnd, Vertical: AlignStart}
	TopFill      = Alignment{Horizontal: AlignFill, Vertical: AlignStart}
	CenterLeft   = Alignment{Horizontal: AlignStart, Vertical: AlignCenter}
	Center       = Alignment{Horizontal: AlignCenter, Vertical: AlignCenter}
	CenterRight  = Alignment{Horizontal: AlignEnd, Vertical: AlignCenter}
	CenterFill   = Alignment{Horizontal: AlignFill, Vertical: AlignCenter}
	BottomLeft   = Alignment{Horizontal: AlignStart, Vertical: AlignEnd}
	BottomCenter = Alignment{Horizontal: AlignCenter, Vertical: AlignEnd}
	BottomRight  = Alignment{Horizontal: AlignEnd, Vertical: AlignEnd}
	BottomFill   = Alignment{Horizontal: AlignFill, Vertical: AlignEnd}
	FillLeft     = Alignment{Horizontal: AlignStart, Vertical: AlignFill}
	FillCenter   = Alignment{Horizontal: AlignCenter, Vertical: AlignFill}
	FillRight    = Alignment{Horizontal: AlignEnd, Vertical: AlignFill}
	Fill         = Alignment{Horizontal: AlignFill, Vertical: AlignFill}
)

// Position fits a measured size into rect. Each axis is resolved
// independently: a length that fits is placed according to the policy and
// keeps its natural value (AlignFill takes the assigned length); a length that
// does not fit is clipped to the assigned length at the rect's origin.
//
// The result is always finite and non-negative in size.
func (a Alignment) Position(size Size, rect Rect) Rect {
	x, w := a.Horizontal.align(size.Width, rect.X, rect.Width)
	y, h := a.Vertical.align(size.Height, rect.Y, rect.Height)
	return Rect{X: x, Y: y, Width: w, Height: h}
}
