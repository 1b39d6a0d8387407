package layout

import (
	"fmt"
	"math"
	"sort"
)

// Flex is the growth/shrink weight of a node along one axis. The zero value
// is inflexible: the node keeps its measured length. Flexible values are
// ordered by Weight; any flexible value outranks an inflexible one.
type Flex struct {
	Weight   int32
	Flexible bool
}

// Predefined flex values.
var (
	Inflexible  = Flex{}
	DefaultFlex = Flex{Weight: 0, Flexible: true}
	HighFlex    = Flex{Weight: 1000, Flexible: true}
	LowFlex     = Flex{Weight: -1000, Flexible: true}
	MinFlex     = Flex{Weight: math.MinInt32, Flexible: true}
	MaxFlex     = Flex{Weight: math.MaxInt32, Flexible: true}
)

// FlexWeight returns a flexible Flex with the given weight.
func FlexWeight(w int32) Flex {
	return Flex{Weight: w, Flexible: true}
}

// Compare returns -1, 0 or 1 when f is less flexible than, as flexible as, or
// more flexible than other.
func (f Flex) Compare(other Flex) int {
	switch {
	case !f.Flexible && !other.Flexible:
		return 0
	case !f.Flexible:
		return -1
	case !other.Flexible:
		return 1
	case f.Weight < other.Weight:
		return -1
	case f.Weight > other.Weight:
		return 1
	default:
		return 0
	}
}

// String returns a short description such as "inflexible" or "flex(1000)".
func (f Flex) String() string {
	if !f.Flexible {
		return "inflexible"
	}
	return fmt.Sprintf("flex(%d)", f.Weight)
}

// Flexibility is a node's Flex along both axes.
type Flexibility struct {
	Horizontal Flex
	Vertical   Flex
}

// Predefined flexibilities.
var (
	InflexibleBoth = Flexibility{Horizontal: Inflexible, Vertical: Inflexible}
	FlexibleBoth   = Flexibility{Horizontal: DefaultFlex, Vertical: DefaultFlex}
	HighFlexBoth   = Flexibility{Horizontal: HighFlex, Vertical: HighFlex}
	LowFlexBoth    = Flexibility{Horizontal: LowFlex, Vertical: LowFlex}
	MinFlexBoth    = Flexibility{Horizontal: MinFlex, Vertical: MinFlex}
	MaxFlexBoth    = Flexibility{Horizontal: MaxFlex, Vertical: MaxFlex}
)

// Flex returns the value along axis.
func (f Flexibility) Flex(axis Axis) Flex {
	if axis == Horizontal {
		return f.Horizontal
	}
	return f.Vertical
}

// OrderByFlex returns the indices of flexes sorted by flexibility. Equal
// values keep sibling order (earlier siblings first) in both directions, so
// a composite that hands slack out in this order gives ties to the earliest
// sibling.
func OrderByFlex(flexes []Flex, descending bool) []int {
	order := make([]int, len(flexes))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		c := flexes[order[i]].Compare(flexes[order[j]])
		if descending {
			return c > 0
		}
		return c < 0
	})
	return order
}
