package treefile

import (
	"fmt"
	"strconv"
	"strings"

	layoutkit "github.com/grindlemire/go-layoutkit"
)

var namedAlignments = map[string]layoutkit.Alignment{
	"top-left":      layoutkit.TopLeft,
	"top-center":    layoutkit.TopCenter,
	"top-right":     layoutkit.TopRight,
	"top-fill":      layoutkit.TopFill,
	"center-left":   layoutkit.CenterLeft,
	"center":        layoutkit.Center,
	"center-right":  layoutkit.CenterRight,
	"center-fill":   layoutkit.CenterFill,
	"bottom-left":   layoutkit.BottomLeft,
	"bottom-center": layoutkit.BottomCenter,
	"bottom-right":  layoutkit.BottomRight,
	"bottom-fill":   layoutkit.BottomFill,
	"fill-left":     layoutkit.FillLeft,
	"fill-center":   layoutkit.FillCenter,
	"fill-right":    layoutkit.FillRight,
	"fill":          layoutkit.Fill,
}

var axisAlignments = map[string]layoutkit.AxisAlignment{
	"start":  layoutkit.AlignStart,
	"center": layoutkit.AlignCenter,
	"end":    layoutkit.AlignEnd,
	"fill":   layoutkit.AlignFill,
}

// ParseAlignment parses a named alignment or a "horizontal,vertical" pair.
// Empty means top-left.
func ParseAlignment(s string) (layoutkit.Alignment, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return layoutkit.TopLeft, nil
	}
	if a, ok := namedAlignments[s]; ok {
		return a, nil
	}

	h, v, ok := strings.Cut(s, ",")
	if !ok {
		return layoutkit.Alignment{}, fmt.Errorf("unknown alignment %q", s)
	}
	ha, hok := axisAlignments[strings.TrimSpace(h)]
	va, vok := axisAlignments[strings.TrimSpace(v)]
	if !hok || !vok {
		return layoutkit.Alignment{}, fmt.Errorf("unknown alignment %q", s)
	}
	return layoutkit.Alignment{Horizontal: ha, Vertical: va}, nil
}

// ParseFlex parses one axis of a flex value. Empty means inflexible.
func ParseFlex(s string) (layoutkit.Flex, error) {
	switch s = strings.TrimSpace(strings.ToLower(s)); s {
	case "", "none", "inflexible":
		return layoutkit.Inflexible, nil
	case "flexible", "default":
		return layoutkit.DefaultFlex, nil
	case "high":
		return layoutkit.HighFlex, nil
	case "low":
		return layoutkit.LowFlex, nil
	case "min":
		return layoutkit.MinFlex, nil
	case "max":
		return layoutkit.MaxFlex, nil
	}
	w, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return layoutkit.Flex{}, fmt.Errorf("unknown flex %q", s)
	}
	return layoutkit.FlexWeight(int32(w)), nil
}

// ParseFlexibility parses a flex value for both axes, or a
// "horizontal,vertical" pair.
func ParseFlexibility(s string) (layoutkit.Flexibility, error) {
	h, v, pair := strings.Cut(s, ",")
	hf, err := ParseFlex(h)
	if err != nil {
		return layoutkit.Flexibility{}, err
	}
	if !pair {
		return layoutkit.Flexibility{Horizontal: hf, Vertical: hf}, nil
	}
	vf, err := ParseFlex(v)
	if err != nil {
		return layoutkit.Flexibility{}, err
	}
	return layoutkit.Flexibility{Horizontal: hf, Vertical: vf}, nil
}

func parseInsets(values []float64) (layoutkit.Edges, error) {
	switch len(values) {
	case 0:
		return layoutkit.Edges{}, nil
	case 1:
		return layoutkit.EdgeAll(values[0]), nil
	case 2:
		return layoutkit.EdgeSymmetric(values[0], values[1]), nil
	case 4:
		return layoutkit.EdgeTRBL(values[0], values[1], values[2], values[3]), nil
	default:
		return layoutkit.Edges{}, fmt.Errorf("insets take 1, 2 or 4 values, got %d", len(values))
	}
}

func parseAxis(nodeType, s string) (layoutkit.Axis, error) {
	var fixed string
	switch nodeType {
	case "hstack":
		fixed = "horizontal"
	case "vstack":
		fixed = "vertical"
	}
	s = strings.TrimSpace(strings.ToLower(s))
	if fixed != "" {
		if s != "" && s != fixed {
			return 0, fmt.Errorf("%s cannot have axis %q", nodeType, s)
		}
		s = fixed
	}

	switch s {
	case "", "horizontal":
		return layoutkit.Horizontal, nil
	case "vertical":
		return layoutkit.Vertical, nil
	default:
		return 0, fmt.Errorf("unknown axis %q", s)
	}
}

func parseDistribution(s string) (layoutkit.StackDistribution, error) {
	switch strings.TrimSpace(strings.ToLower(s)) {
	case "", "fill", "fill-flexing":
		return layoutkit.DistributeFillFlexing, nil
	case "leading":
		return layoutkit.DistributeLeading, nil
	case "trailing":
		return layoutkit.DistributeTrailing, nil
	case "center":
		return layoutkit.DistributeCenter, nil
	default:
		return 0, fmt.Errorf("unknown distribution %q", s)
	}
}
