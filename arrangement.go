package layoutkit

// Arrangement is a node paired with its frame. Frame is relative to the
// parent arrangement's frame origin; the root frame is relative to whatever
// rect the root was arranged in.
type Arrangement struct {
	Layout     Layout
	Frame      Rect
	Sublayouts []Arrangement
}

// Walk visits a and its descendants depth-first in tree order. fn receives
// the node, its path of sublayout indices from a, and the absolute origin of
// its parent. Returning false skips the node's descendants.
func (a *Arrangement) Walk(fn func(node *Arrangement, path []int, parentOrigin Point) bool) {
	a.walk(nil, Point{}, fn)
}

func (a *Arrangement) walk(path []int, parentOrigin Point, fn func(*Arrangement, []int, Point) bool) {
	if !fn(a, path, parentOrigin) {
		return
	}
	origin := parentOrigin.Add(a.Frame.Origin())
	for i := range a.Sublayouts {
		childPath := make([]int, len(path)+1)
		copy(childPath, path)
		childPath[len(path)] = i
		a.Sublayouts[i].walk(childPath, origin, fn)
	}
}

// FlatFrame is one node of a flattened arrangement.
type FlatFrame struct {
	Layout Layout
	Path   []int
	// Frame is in the coordinate space of the root arrangement's parent.
	Frame Rect
}

// Flatten returns every node with its absolute frame, depth-first.
func (a *Arrangement) Flatten() []FlatFrame {
	var out []FlatFrame
	a.Walk(func(node *Arrangement, path []int, parentOrigin Point) bool {
		out = append(out, FlatFrame{
			Layout: node.Layout,
			Path:   path,
			Frame:  node.Frame.Offset(parentOrigin),
		})
		return true
	})
	return out
}

// Equal reports whether two arrangements have the same shape, frames and
// node identities (reuse id and view type).
func (a *Arrangement) Equal(other *Arrangement) bool {
	if a == nil || other == nil {
		return a == other
	}
	if a.Frame != other.Frame || len(a.Sublayouts) != len(other.Sublayouts) {
		return false
	}
	if reuseKeyOf(a.Layout) != reuseKeyOf(other.Layout) {
		return false
	}
	for i := range a.Sublayouts {
		if !a.Sublayouts[i].Equal(&other.Sublayouts[i]) {
			return false
		}
	}
	return true
}

// Count returns the number of nodes in the arrangement.
func (a *Arrangement) Count() int {
	n := 1
	for i := range a.Sublayouts {
		n += a.Sublayouts[i].Count()
	}
	return n
}
