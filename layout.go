// layout.go re-exports geometry types from internal/layout.
// Any changes to internal/layout types must be mirrored here.
package layoutkit

import "github.com/grindlemire/go-layoutkit/internal/layout"

// Point represents an x/y coordinate.
type Point = layout.Point

// Size represents a width/height pair.
type Size = layout.Size

// Rect represents a rectangle with position and dimensions.
type Rect = layout.Rect

// Edges represents spacing on four sides (top, right, bottom, left).
type Edges = layout.Edges

// Axis is one of the two layout dimensions.
type Axis = layout.Axis

const (
	Horizontal = layout.Horizontal
	Vertical   = layout.Vertical
)

// Unbounded is the constraint value meaning "no limit on this axis".
const Unbounded = layout.Unbounded

// UnboundedSize is a constraint with no limit on either axis.
var UnboundedSize = layout.UnboundedSize

// AxisAlignment specifies placement along one axis.
type AxisAlignment = layout.AxisAlignment

const (
	AlignStart  = layout.AlignStart
	AlignCenter = layout.AlignCenter
	AlignEnd    = layout.AlignEnd
	AlignFill   = layout.AlignFill
)

// Alignment is the per-axis placement policy of a node.
type Alignment = layout.Alignment

var (
	TopLeft      = layout.TopLeft
	TopCenter    = layout.TopCenter
	TopRight     = layout.TopRight
	TopFill      = layout.TopFill
	CenterLeft   = layout.CenterLeft
	Center       = layout.Center
	CenterRight  = layout.CenterRight
	CenterFill   = layout.CenterFill
	BottomLeft   = layout.BottomLeft
	BottomCenter = layout.BottomCenter
	BottomRight  = layout.BottomRight
	BottomFill   = layout.BottomFill
	FillLeft     = layout.FillLeft
	FillCenter   = layout.FillCenter
	FillRight    = layout.FillRight
	Fill         = layout.Fill
)

// Flex is the growth/shrink weight of a node along one axis.
type Flex = layout.Flex

var (
	Inflexible  = layout.Inflexible
	DefaultFlex = layout.DefaultFlex
	HighFlex    = layout.HighFlex
	LowFlex     = layout.LowFlex
	MinFlex     = layout.MinFlex
	MaxFlex     = layout.MaxFlex
)

// Flexibility is a node's Flex along both axes.
type Flexibility = layout.Flexibility

var (
	InflexibleBoth = layout.InflexibleBoth
	FlexibleBoth   = layout.FlexibleBoth
	HighFlexBoth   = layout.HighFlexBoth
	LowFlexBoth    = layout.LowFlexBoth
	MinFlexBoth    = layout.MinFlexBoth
	MaxFlexBoth    = layout.MaxFlexBoth
)

// NewRect creates a new Rect.
func NewRect(x, y, width, height float64) Rect {
	return layout.NewRect(x, y, width, height)
}

// NewSize creates a new Size.
func NewSize(width, height float64) Size {
	return layout.NewSize(width, height)
}

// EdgeAll creates Edges with the same value on all sides.
func EdgeAll(n float64) Edges {
	return layout.EdgeAll(n)
}

// EdgeSymmetric creates Edges with vertical and horizontal values.
func EdgeSymmetric(v, h float64) Edges {
	return layout.EdgeSymmetric(v, h)
}

// EdgeTRBL creates Edges in CSS order: top, right, bottom, left.
func EdgeTRBL(t, r, b, l float64) Edges {
	return layout.EdgeTRBL(t, r, b, l)
}

// FlexWeight returns a flexible Flex with the given weight.
func FlexWeight(w int32) Flex {
	return layout.FlexWeight(w)
}

// OrderByFlex returns sibling indices sorted by flexibility, ties in sibling order.
func OrderByFlex(flexes []Flex, descending bool) []int {
	return layout.OrderByFlex(flexes, descending)
}

// RectFrom creates a Rect from an origin and a size.
func RectFrom(origin Point, size Size) Rect {
	return layout.RectFrom(origin, size)
}

// SanitizeLength maps NaN, infinities and negative values to zero.
func SanitizeLength(v float64) float64 {
	return layout.SanitizeLength(v)
}

// SanitizeConstraint maps NaN and negative values to zero and +Inf to Unbounded.
func SanitizeConstraint(v float64) float64 {
	return layout.SanitizeConstraint(v)
}
