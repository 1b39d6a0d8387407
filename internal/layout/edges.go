package layout

// Edges represents values for four sides of a box.
type Edges struct {
	Top, Right, Bottom, Left float64
}

// EdgeAll creates Edges with the same value on all sides.
func EdgeAll(n float64) Edges {
	return Edges{Top: n, Right: n, Bottom: n, Left: n}
}

// EdgeSymmetric creates Edges with vertical (top/bottom) and horizontal (left/right) values.
func EdgeSymmetric(v, h float64) Edges {
	return Edges{Top: v, Right: h, Bottom: v, Left: h}
}

// EdgeTRBL creates Edges following CSS order: Top, Right, Bottom, Left.
func EdgeTRBL(t, r, b, l float64) Edges {
	return Edges{Top: t, Right: r, Bottom: b, Left: l}
}

// Horizontal returns the sum of Left and Right.
func (e Edges) Horizontal() float64 {
	return e.Left + e.Right
}

// Vertical returns the sum of Top and Bottom.
func (e Edges) Vertical() float64 {
	return e.Top + e.Bottom
}

// Sanitized returns the edges with every non-finite or negative value set to zero.
func (e Edges) Sanitized() Edges {
	return Edges{
		Top:    SanitizeLength(e.Top),
		Right:  SanitizeLength(e.Right),
		Bottom: SanitizeLength(e.Bottom),
		Left:   SanitizeLength(e.Left),
	}
}
