package layout

// Size is a width/height pair.
type Size struct {
	Width, Height float64
}

// NewSize creates a Size.
func NewSize(width, height float64) Size {
	return Size{Width: width, Height: height}
}

// UnboundedSize is a constraint with no limit on either axis.
var UnboundedSize = Size{Width: Unbounded, Height: Unbounded}

// Length returns the size along axis.
func (s Size) Length(axis Axis) float64 {
	if axis == Horizontal {
		return s.Width
	}
	return s.Height
}

// WithLength returns a copy with the length along axis replaced.
func (s Size) WithLength(axis Axis, v float64) Size {
	if axis == Horizontal {
		s.Width = v
	} else {
		s.Height = v
	}
	return s
}

// Sanitized returns the size with every non-finite or negative length set to zero.
func (s Size) Sanitized() Size {
	return Size{Width: SanitizeLength(s.Width), Height: SanitizeLength(s.Height)}
}

// Constraint returns the size interpreted as a maximum: NaN and negative
// lengths become zero and +Inf becomes Unbounded.
func (s Size) Constraint() Size {
	return Size{Width: SanitizeConstraint(s.Width), Height: SanitizeConstraint(s.Height)}
}

// Min returns the component-wise minimum.
func (s Size) Min(other Size) Size {
	return Size{Width: min(s.Width, other.Width), Height: min(s.Height, other.Height)}
}

// Shrink subtracts edges from a constraint, never below zero.
func (s Size) Shrink(e Edges) Size {
	return Size{
		Width:  shrink(s.Width, e.Horizontal()),
		Height: shrink(s.Height, e.Vertical()),
	}
}

// Grow adds edges to a measured size.
func (s Size) Grow(e Edges) Size {
	return Size{Width: s.Width + e.Horizontal(), Height: s.Height + e.Vertical()}
}
