package treefile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	layoutkit "github.com/grindlemire/go-layoutkit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cardTree = `
root:
  type: inset
  align: fill
  flex: flexible
  children:
    - type: size
      id: card
      view: Card
      align: center
      width: 100
      height: 50
      props:
        role: card
      children:
        - type: size
          width: 20
          height: 10
`

func TestBuild_CardTree(t *testing.T) {
	doc, err := Parse([]byte(cardTree))
	require.NoError(t, err)

	root, err := doc.Build()
	require.NoError(t, err)

	arr := layoutkit.ArrangeWithin(root, layoutkit.NewRect(0, 0, 320, 480))
	flat := arr.Flatten()
	require.Len(t, flat, 3)
	assert.Equal(t, layoutkit.NewRect(0, 0, 320, 480), flat[0].Frame)
	assert.Equal(t, layoutkit.NewRect(110, 215, 100, 50), flat[1].Frame)
	assert.Equal(t, layoutkit.NewRect(110, 215, 20, 10), flat[2].Frame)

	card := flat[1].Layout
	assert.True(t, card.NeedsView())
	assert.Equal(t, "card", card.ViewReuseID())
	assert.Equal(t, "Card", card.ViewType())
	assert.False(t, flat[0].Layout.NeedsView())
	assert.False(t, flat[2].Layout.NeedsView())
}

func TestBuild_AppliesProps(t *testing.T) {
	doc, err := Parse([]byte(cardTree))
	require.NoError(t, err)
	root, err := doc.Build()
	require.NoError(t, err)

	loop, err := layoutkit.NewMainLoop()
	require.NoError(t, err)
	done := make(chan error, 1)
	go func() { done <- loop.Run(context.Background()) }()
	defer func() {
		loop.Stop()
		<-done
	}()

	rootView := layoutkit.NewHeadlessView("Window")
	applier := layoutkit.NewApplier(rootView)
	arr := layoutkit.ArrangeWithin(root, layoutkit.NewRect(0, 0, 320, 480))

	var report layoutkit.ApplyReport
	require.NoError(t, loop.Call(context.Background(), func(ui *layoutkit.UIContext) error {
		var err error
		report, err = applier.Apply(ui, &arr)
		return err
	}))

	assert.Equal(t, 1, report.Built)
	assert.Equal(t,
		"Window (0,0 0x0)\n  Card (110,215 100x50) role=\"card\"\n",
		rootView.Dump())
}

func TestBuild_IndependentTrees(t *testing.T) {
	doc, err := Parse([]byte(cardTree))
	require.NoError(t, err)

	a, err := doc.Build()
	require.NoError(t, err)
	b, err := doc.Build()
	require.NoError(t, err)

	assert.NotSame(t, a, b)
	arrA := layoutkit.ArrangeWithin(a, layoutkit.NewRect(0, 0, 320, 480))
	arrB := layoutkit.ArrangeWithin(b, layoutkit.NewRect(0, 0, 320, 480))
	assert.True(t, arrA.Equal(&arrB))
}

func TestBuild_Stacks(t *testing.T) {
	doc, err := Parse([]byte(`
root:
  type: hstack
  align: fill
  spacing: 10
  distribution: leading
  children:
    - {type: size, width: 20, height: 10}
    - {type: size, width: 30, height: 40, align: "start,end"}
    - type: vstack
      distribution: center
      align: fill
      children:
        - {type: size, width: 5, height: 5}
`))
	require.NoError(t, err)
	root, err := doc.Build()
	require.NoError(t, err)

	arr := layoutkit.ArrangeWithin(root, layoutkit.NewRect(0, 0, 200, 100))
	require.Len(t, arr.Sublayouts, 3)
	assert.Equal(t, layoutkit.NewRect(0, 0, 20, 10), arr.Sublayouts[0].Frame)
	assert.Equal(t, layoutkit.NewRect(30, 60, 30, 40), arr.Sublayouts[1].Frame)
	assert.Equal(t, layoutkit.NewRect(70, 0, 5, 100), arr.Sublayouts[2].Frame)
	assert.Equal(t, layoutkit.NewRect(0, 47.5, 5, 5), arr.Sublayouts[2].Sublayouts[0].Frame)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"no root", "other: 1\n"},
		{"unknown field", "root: {type: size, colour: red}\n"},
		{"bad yaml", "root: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestBuild_Errors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{"missing type", "root: {width: 1}\n", "root: missing node type"},
		{"unknown type", "root: {type: grid}\n", `root: unknown node type "grid"`},
		{"too many children", "root: {type: size, children: [{type: size}, {type: size}]}\n", "at most one child"},
		{"bad alignment", "root: {type: size, align: middle}\n", `unknown alignment "middle"`},
		{"bad flex", "root: {type: size, flex: lots}\n", `unknown flex "lots"`},
		{"bad insets", "root: {type: inset, insets: [1, 2, 3]}\n", "insets take 1, 2 or 4 values"},
		{"bad axis", "root: {type: stack, axis: diagonal}\n", `unknown axis "diagonal"`},
		{"conflicting axis", "root: {type: hstack, axis: vertical}\n", "hstack cannot have axis"},
		{"bad distribution", "root: {type: stack, distribution: spread}\n", `unknown distribution "spread"`},
		{"props without view", "root: {type: size, props: {a: b}}\n", "props require a view"},
		{"nested path", "root: {type: stack, children: [{type: size}, {type: oval}]}\n", "root.children[1]: unknown node type"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Parse([]byte(tt.yaml))
			require.NoError(t, err)
			_, err = doc.Build()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParseAlignment(t *testing.T) {
	tests := map[string]layoutkit.Alignment{
		"":              layoutkit.TopLeft,
		"center":        layoutkit.Center,
		"Bottom-Right":  layoutkit.BottomRight,
		"fill":          layoutkit.Fill,
		"end, start":    layoutkit.TopRight,
		"fill,center":   layoutkit.CenterFill,
		"center ,fill ": layoutkit.FillCenter,
	}
	for in, want := range tests {
		got, err := ParseAlignment(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseAlignment("start,middle")
	assert.Error(t, err)
}

func TestParseFlexibility(t *testing.T) {
	tests := map[string]layoutkit.Flexibility{
		"":           layoutkit.InflexibleBoth,
		"flexible":   layoutkit.FlexibleBoth,
		"high":       layoutkit.HighFlexBoth,
		"max":        layoutkit.MaxFlexBoth,
		"5":          {Horizontal: layoutkit.FlexWeight(5), Vertical: layoutkit.FlexWeight(5)},
		"none, -3":   {Horizontal: layoutkit.Inflexible, Vertical: layoutkit.FlexWeight(-3)},
		"low,min":    {Horizontal: layoutkit.LowFlex, Vertical: layoutkit.MinFlex},
		"inflexible": layoutkit.InflexibleBoth,
	}
	for in, want := range tests {
		got, err := ParseFlexibility(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseFlexibility("high,99999999999")
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tree.yaml")
	require.NoError(t, os.WriteFile(path, []byte(cardTree), 0o644))

	doc, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "inset", doc.Root.Type)
	require.Len(t, doc.Root.Children, 1)
	assert.Equal(t, map[string]string{"role": "card"}, doc.Root.Children[0].Props)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestMarshal_RoundTripsStructure(t *testing.T) {
	doc, err := Parse([]byte(cardTree))
	require.NoError(t, err)

	out, err := doc.Marshal()
	require.NoError(t, err)
	again, err := Parse(out)
	require.NoError(t, err)
	assert.Equal(t, doc, again)
}

func TestExampleTrees(t *testing.T) {
	paths, err := filepath.Glob("../../examples/trees/*.yaml")
	require.NoError(t, err)
	require.NotEmpty(t, paths)

	for _, path := range paths {
		t.Run(filepath.Base(path), func(t *testing.T) {
			doc, err := Load(path)
			require.NoError(t, err)
			root, err := doc.Build()
			require.NoError(t, err)

			arr := layoutkit.ArrangeWithin(root, layoutkit.NewRect(0, 0, 320, 480))
			assert.Greater(t, arr.Count(), 1)
		})
	}
}
