// Package treefile describes layout trees in YAML and builds them over
// headless views.
//
// A document has a single root node:
//
//	root:
//	  type: inset
//	  align: fill
//	  insets: [15, 10]
//	  children:
//	    - type: size
//	      id: card
//	      view: CardView
//	      align: center
//	      width: 100
//	      height: 50
//	      props: {title: Hello}
//
// Node types are size, inset, stack, hstack and vstack. A node with a view
// is materialized as a layoutkit.HeadlessView of that class, and its props
// are applied by the node's configurator.
package treefile

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	layoutkit "github.com/grindlemire/go-layoutkit"
	"gopkg.in/yaml.v3"
)

// Document is a parsed tree file.
type Document struct {
	Root *Node `yaml:"root"`
}

// Node is one layout node.
type Node struct {
	Type string `yaml:"type"`

	// ID is the view reuse identifier.
	ID string `yaml:"id,omitempty"`
	// View is the headless view class. Empty means no view.
	View  string            `yaml:"view,omitempty"`
	Props map[string]string `yaml:"props,omitempty"`

	// Align is a named alignment ("center", "top-left") or a
	// "horizontal,vertical" pair of start, center, end or fill.
	Align string `yaml:"align,omitempty"`
	// Flex is "none", "flexible", "high", "low", "min", "max" or an integer
	// weight, optionally as a "horizontal,vertical" pair.
	Flex string `yaml:"flex,omitempty"`

	// size
	Width     float64 `yaml:"width,omitempty"`
	Height    float64 `yaml:"height,omitempty"`
	MinWidth  float64 `yaml:"min_width,omitempty"`
	MinHeight float64 `yaml:"min_height,omitempty"`
	MaxWidth  float64 `yaml:"max_width,omitempty"`
	MaxHeight float64 `yaml:"max_height,omitempty"`

	// inset: one value for all edges, two for vertical and horizontal, or
	// four in top, right, bottom, left order.
	Insets []float64 `yaml:"insets,omitempty"`

	// stack
	Axis         string  `yaml:"axis,omitempty"`
	Spacing      float64 `yaml:"spacing,omitempty"`
	Distribution string  `yaml:"distribution,omitempty"`

	Children []*Node `yaml:"children,omitempty"`
}

// Parse decodes a tree file. Unknown keys are rejected.
func Parse(data []byte) (*Document, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parsing tree file: %w", err)
	}
	if doc.Root == nil {
		return nil, errors.New("tree file has no root node")
	}
	return &doc, nil
}

// Load reads and parses the tree file at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading tree file: %w", err)
	}
	return Parse(data)
}

// Build creates the layout tree. The document may be built any number of
// times; each build yields an independent tree.
func (d *Document) Build() (layoutkit.Layout, error) {
	return d.Root.build("root")
}

// Marshal encodes the document as YAML.
func (d *Document) Marshal() ([]byte, error) {
	return yaml.Marshal(d)
}

func (n *Node) build(path string) (layoutkit.Layout, error) {
	base, err := n.baseConfig()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	children := make([]layoutkit.Layout, 0, len(n.Children))
	for i, c := range n.Children {
		if c == nil {
			return nil, fmt.Errorf("%s.children[%d]: empty node", path, i)
		}
		l, err := c.build(fmt.Sprintf("%s.children[%d]", path, i))
		if err != nil {
			return nil, err
		}
		children = append(children, l)
	}

	switch n.Type {
	case "size":
		child, err := single(path, children)
		if err != nil {
			return nil, err
		}
		return layoutkit.NewSizeLayout(layoutkit.SizeConfig[*layoutkit.HeadlessView]{
			BaseConfig: base,
			Width:      n.Width,
			Height:     n.Height,
			MinWidth:   n.MinWidth,
			MinHeight:  n.MinHeight,
			MaxWidth:   n.MaxWidth,
			MaxHeight:  n.MaxHeight,
		}, child), nil

	case "inset":
		child, err := single(path, children)
		if err != nil {
			return nil, err
		}
		insets, err := parseInsets(n.Insets)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return layoutkit.NewInsetLayout(layoutkit.InsetConfig[*layoutkit.HeadlessView]{
			BaseConfig: base,
			Insets:     insets,
		}, child), nil

	case "stack", "hstack", "vstack":
		axis, err := parseAxis(n.Type, n.Axis)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		dist, err := parseDistribution(n.Distribution)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return layoutkit.NewStackLayout(layoutkit.StackConfig[*layoutkit.HeadlessView]{
			BaseConfig:   base,
			Axis:         axis,
			Spacing:      n.Spacing,
			Distribution: dist,
		}, children...), nil

	case "":
		return nil, fmt.Errorf("%s: missing node type", path)
	default:
		return nil, fmt.Errorf("%s: unknown node type %q", path, n.Type)
	}
}

func single(path string, children []layoutkit.Layout) (layoutkit.Layout, error) {
	switch len(children) {
	case 0:
		return nil, nil
	case 1:
		return children[0], nil
	default:
		return nil, fmt.Errorf("%s: at most one child allowed, got %d", path, len(children))
	}
}

func (n *Node) baseConfig() (layoutkit.BaseConfig[*layoutkit.HeadlessView], error) {
	align, err := ParseAlignment(n.Align)
	if err != nil {
		return layoutkit.BaseConfig[*layoutkit.HeadlessView]{}, err
	}
	flex, err := ParseFlexibility(n.Flex)
	if err != nil {
		return layoutkit.BaseConfig[*layoutkit.HeadlessView]{}, err
	}

	cfg := layoutkit.BaseConfig[*layoutkit.HeadlessView]{
		Alignment:   align,
		Flexibility: flex,
		ReuseID:     n.ID,
	}
	if n.View == "" {
		if len(n.Props) > 0 {
			return cfg, errors.New("props require a view")
		}
		return cfg, nil
	}

	props := make(map[string]string, len(n.Props))
	for k, v := range n.Props {
		props[k] = v
	}
	cfg.Class = layoutkit.HeadlessClass(n.View)
	cfg.Config = func(v *layoutkit.HeadlessView) {
		for k, val := range props {
			v.SetProp(k, val)
		}
	}
	return cfg, nil
}
