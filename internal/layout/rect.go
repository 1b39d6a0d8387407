package layout

// Rect represents a rectangle. X and Y are the top-left corner; Width and
// Height are dimensions.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// NewRect creates a new Rect with the given position and dimensions.
func NewRect(x, y, width, height float64) Rect {
	return Rect{X: x, Y: y, Width: width, Height: height}
}

// RectFrom creates a Rect from an origin and a size.
func RectFrom(origin Point, size Size) Rect {
	return Rect{X: origin.X, Y: origin.Y, Width: size.Width, Height: size.Height}
}

// Origin returns the top-left corner.
func (r Rect) Origin() Point {
	return Point{X: r.X, Y: r.Y}
}

// Size returns the dimensions.
func (r Rect) Size() Size {
	return Size{Width: r.Width, Height: r.Height}
}

// Inset returns a new Rect inset by the given Edges.
// The result never has a negative width or height.
func (r Rect) Inset(edges Edges) Rect {
	return Rect{
		X:      r.X + edges.Left,
		Y:      r.Y + edges.Top,
		Width:  max(0, r.Width-edges.Horizontal()),
		Height: max(0, r.Height-edges.Vertical()),
	}
}

// Translate returns a new Rect moved by (dx, dy).
func (r Rect) Translate(dx, dy float64) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, Width: r.Width, Height: r.Height}
}

// Offset returns a new Rect moved by p.
func (r Rect) Offset(p Point) Rect {
	return r.Translate(p.X, p.Y)
}

// Sanitized returns the rectangle with non-finite coordinates zeroed and
// non-finite or negative dimensions zeroed.
func (r Rect) Sanitized() Rect {
	return Rect{
		X:      sanitizeCoord(r.X),
		Y:      sanitizeCoord(r.Y),
		Width:  SanitizeLength(r.Width),
		Height: SanitizeLength(r.Height),
	}
}
