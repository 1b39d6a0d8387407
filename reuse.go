package layoutkit

import "fmt"

// reuseKey identifies a reusable view across passes. Views are reused only
// between nodes with the same non-empty reuse id and the same view type.
type reuseKey struct {
	id       string
	viewType string
}

func reuseKeyOf(l Layout) reuseKey {
	if l == nil {
		return reuseKey{}
	}
	return reuseKey{id: l.ViewReuseID(), viewType: l.ViewType()}
}

func (k reuseKey) String() string {
	return fmt.Sprintf("%s/%s", k.viewType, k.id)
}

// Binding associates a live view with the node it was applied for.
type Binding struct {
	ReuseID  string
	ViewType string
	View     View
	// Parent is the view View was added to.
	Parent View
	// Frame is the frame set on View, relative to Parent.
	Frame Rect
}

func (b Binding) key() reuseKey {
	return reuseKey{id: b.ReuseID, viewType: b.ViewType}
}

// MatchEntry is one materialized node of the next tree.
type MatchEntry struct {
	Node *Arrangement
	// Path is the sublayout index path from the root arrangement.
	Path []int
	// Parent is the index in Entries of the nearest materialized ancestor,
	// or -1 when the node attaches to the root container.
	Parent int
	// Frame is the node's frame relative to its parent entry's view.
	Frame Rect
	// Prev is the index of the matched binding, or -1 when a view must be built.
	Prev int
	// View is the matched view, nil when a view must be built.
	View View
}

// MatchResult pairs the materialized nodes of a new tree with reusable views.
type MatchResult struct {
	// Entries lists materialized nodes depth-first in tree order.
	Entries []MatchEntry
	// Teardown lists previous bindings nothing matched, in their original order.
	Teardown []Binding
	// Duplicates lists reuse keys that appear more than once in the previous
	// bindings. Each occurrence is still reusable, in order, by a node with
	// the same key.
	Duplicates []string
}

// Reused returns the number of entries that matched a previous view.
func (r MatchResult) Reused() int {
	n := 0
	for _, e := range r.Entries {
		if e.View != nil {
			n++
		}
	}
	return n
}

// MatchViews pairs the nodes of next that need a view with views bound in
// prev. Only nodes whose NeedsView is true are materialized; their frames are
// expressed relative to the nearest materialized ancestor.
//
// A node matches a binding iff both carry the same non-empty reuse id and the
// same view type. Nodes are visited depth-first and each takes the first
// unconsumed candidate in prev, so matching is deterministic even with
// duplicated ids. Bindings that no node takes are returned for teardown.
func MatchViews(prev []Binding, next *Arrangement) MatchResult {
	candidates := make(map[reuseKey][]int)
	var res MatchResult
	for i, b := range prev {
		if b.ReuseID == "" || b.View == nil {
			continue
		}
		k := b.key()
		if len(candidates[k]) == 1 {
			res.Duplicates = append(res.Duplicates, k.String())
		}
		candidates[k] = append(candidates[k], i)
	}

	consumed := make([]bool, len(prev))
	take := func(k reuseKey) int {
		if k.id == "" {
			return -1
		}
		for _, i := range candidates[k] {
			if !consumed[i] {
				consumed[i] = true
				return i
			}
		}
		return -1
	}

	if next != nil {
		// stack[depth] holds the nearest materialized entry and its
		// absolute origin for the node currently being visited.
		type anchor struct {
			entry  int
			origin Point
		}
		var stack []anchor
		next.Walk(func(node *Arrangement, path []int, parentOrigin Point) bool {
			stack = stack[:len(path)]
			parent := anchor{entry: -1}
			if len(stack) > 0 {
				parent = stack[len(stack)-1]
			}

			abs := node.Frame.Offset(parentOrigin)
			self := parent
			if node.Layout != nil && node.Layout.NeedsView() {
				prevIdx := take(reuseKeyOf(node.Layout))
				entry := MatchEntry{
					Node:   node,
					Path:   path,
					Parent: parent.entry,
					Frame:  abs.Offset(Point{X: -parent.origin.X, Y: -parent.origin.Y}),
					Prev:   prevIdx,
				}
				if prevIdx >= 0 {
					entry.View = prev[prevIdx].View
				}
				res.Entries = append(res.Entries, entry)
				self = anchor{entry: len(res.Entries) - 1, origin: abs.Origin()}
			}
			stack = append(stack, self)
			return true
		})
	}

	for i, b := range prev {
		if !consumed[i] && b.View != nil {
			res.Teardown = append(res.Teardown, b)
		}
	}
	return res
}
