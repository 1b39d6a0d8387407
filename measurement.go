package layoutkit

import (
	"github.com/grindlemire/go-layoutkit/internal/debug"
	"go.uber.org/zap"
)

// Measurement is the result of measuring a node: its natural size under
// MaxSize and the measurements of its sublayouts.
type Measurement struct {
	Layout     Layout
	Size       Size
	MaxSize    Size
	Sublayouts []Measurement
}

// Arrange positions the measured node inside rect.
func (m Measurement) Arrange(rect Rect) Arrangement {
	return safeArrange(m.Layout, rect, m)
}

// Measure measures l within maxSize. Constraints are sanitized first, the
// returned size is always finite and non-negative, and a panicking layout
// yields a zero-size measurement instead of propagating.
func Measure(l Layout, maxSize Size) Measurement {
	return safeMeasure(l, maxSize)
}

// ArrangeWithin measures l within rect's size and arranges it in rect.
func ArrangeWithin(l Layout, rect Rect) Arrangement {
	rect = rect.Sanitized()
	return safeMeasure(l, rect.Size()).Arrange(rect)
}

func safeMeasure(l Layout, maxSize Size) (m Measurement) {
	maxSize = maxSize.Constraint()
	if l == nil {
		return Measurement{MaxSize: maxSize}
	}

	defer func() {
		if r := recover(); r != nil {
			debug.Logger().Error("recovered panic in Measure",
				zap.String("reuse_id", l.ViewReuseID()),
				zap.String("view_type", l.ViewType()),
				zap.Any("panic", r),
			)
			m = Measurement{Layout: l, MaxSize: maxSize}
		}
	}()

	m = l.Measure(maxSize)
	m.Layout = l
	m.MaxSize = maxSize
	m.Size = m.Size.Sanitized()
	return m
}

func safeArrange(l Layout, rect Rect, m Measurement) (a Arrangement) {
	rect = rect.Sanitized()
	if l == nil {
		return Arrangement{Frame: rect}
	}

	defer func() {
		if r := recover(); r != nil {
			debug.Logger().Error("recovered panic in Arrange",
				zap.String("reuse_id", l.ViewReuseID()),
				zap.String("view_type", l.ViewType()),
				zap.Any("panic", r),
			)
			a = Arrangement{Layout: l, Frame: l.Alignment().Position(m.Size, rect)}
		}
	}()

	a = l.Arrange(rect, m)
	a.Layout = l
	a.Frame = a.Frame.Sanitized()
	return a
}

// sublayoutMeasurement returns the i-th sublayout measurement of m, measuring
// child within fallback when m does not carry one.
func sublayoutMeasurement(m Measurement, i int, child Layout, fallback Size) Measurement {
	if i < len(m.Sublayouts) {
		return m.Sublayouts[i]
	}
	return safeMeasure(child, fallback)
}
