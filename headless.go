package layoutkit

import (
	"fmt"
	"maps"
	"slices"
	"sort"
	"strings"
)

var _ View = (*HeadlessView)(nil)

// HeadlessView is an in-memory View. It records its frame, hierarchy and a
// set of string properties, which makes it suitable for tests and for
// running layouts without a real toolkit.
//
// Types that embed *HeadlessView are distinct view types for reuse matching
// while sharing its hierarchy bookkeeping.
type HeadlessView struct {
	class     string
	frame     Rect
	superview *HeadlessView
	subviews  []View
	props     map[string]string
}

// NewHeadlessView creates a detached view of the given class.
func NewHeadlessView(class string) *HeadlessView {
	return &HeadlessView{class: class, props: make(map[string]string)}
}

// HeadlessClass returns a ViewClass constructing HeadlessViews named name.
func HeadlessClass(name string) ViewClass[*HeadlessView] {
	return NewViewClass(name, func() *HeadlessView {
		return NewHeadlessView(name)
	})
}

// headless is implemented by *HeadlessView and every type embedding it.
type headless interface {
	base() *HeadlessView
}

func (v *HeadlessView) base() *HeadlessView { return v }

func baseOf(v View) *HeadlessView {
	if h, ok := v.(headless); ok {
		return h.base()
	}
	return nil
}

// Class returns the class name the view was created with.
func (v *HeadlessView) Class() string { return v.class }

// Frame implements View.
func (v *HeadlessView) Frame() Rect { return v.frame }

// SetFrame implements View.
func (v *HeadlessView) SetFrame(r Rect) { v.frame = r }

// AddSubview implements View. A headless subview is first removed from its
// current superview.
func (v *HeadlessView) AddSubview(sub View) {
	if h := baseOf(sub); h != nil {
		h.RemoveFromSuperview()
		h.superview = v
	}
	v.subviews = append(v.subviews, sub)
}

// RemoveFromSuperview implements View.
func (v *HeadlessView) RemoveFromSuperview() {
	p := v.superview
	if p == nil {
		return
	}
	p.subviews = slices.DeleteFunc(p.subviews, func(s View) bool {
		return baseOf(s) == v
	})
	v.superview = nil
}

// Superview returns the containing view, or nil.
func (v *HeadlessView) Superview() *HeadlessView { return v.superview }

// Subviews returns a copy of the direct subviews in insertion order.
func (v *HeadlessView) Subviews() []View {
	return slices.Clone(v.subviews)
}

// SetProp sets a property. Setting the same value twice is a no-op.
func (v *HeadlessView) SetProp(key, value string) {
	v.props[key] = value
}

// Prop returns a property value.
func (v *HeadlessView) Prop(key string) (string, bool) {
	val, ok := v.props[key]
	return val, ok
}

// Props returns a copy of every property.
func (v *HeadlessView) Props() map[string]string {
	return maps.Clone(v.props)
}

// AbsoluteFrame returns the frame in the coordinate space of the topmost
// ancestor.
func (v *HeadlessView) AbsoluteFrame() Rect {
	r := v.frame
	for p := v.superview; p != nil && p.superview != nil; p = p.superview {
		r = r.Offset(p.frame.Origin())
	}
	return r
}

// Descendants returns the number of views below v.
func (v *HeadlessView) Descendants() int {
	n := 0
	for _, s := range v.subviews {
		n++
		if h := baseOf(s); h != nil {
			n += h.Descendants()
		}
	}
	return n
}

// Dump renders the hierarchy below v as indented text, one view per line.
func (v *HeadlessView) Dump() string {
	var sb strings.Builder
	v.dump(&sb, 0)
	return sb.String()
}

func (v *HeadlessView) dump(sb *strings.Builder, depth int) {
	f := v.frame
	fmt.Fprintf(sb, "%s%s (%g,%g %gx%g)", strings.Repeat("  ", depth), v.class, f.X, f.Y, f.Width, f.Height)
	if len(v.props) > 0 {
		keys := slices.Collect(maps.Keys(v.props))
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(sb, " %s=%q", k, v.props[k])
		}
	}
	sb.WriteByte('\n')
	for _, s := range v.subviews {
		if h := baseOf(s); h != nil {
			h.dump(sb, depth+1)
		}
	}
}
