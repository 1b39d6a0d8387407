package layoutkit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bindingFor(id, viewType string, v View) Binding {
	return Binding{ReuseID: id, ViewType: viewType, View: v}
}

func TestMatchViews_ReusesAcrossPositions(t *testing.T) {
	oldImage := imageClass.New()
	prev := []Binding{bindingFor("avatar", "ImageView", oldImage)}

	// Same id and type, now nested one level deeper, plus a label that
	// shares the id.
	next := ArrangeWithin(vstack(DistributeLeading, 0,
		hstack(DistributeLeading, 0, leaf("avatar", imageClass, 10, 10, nil)),
		leaf("avatar", labelClass, 10, 10, nil),
	), NewRect(0, 0, 100, 100))

	res := MatchViews(prev, &next)
	require.Len(t, res.Entries, 2)

	assert.Equal(t, View(oldImage), res.Entries[0].View, "image should reuse the previous view")
	assert.Equal(t, 0, res.Entries[0].Prev)
	assert.Equal(t, []int{0, 0}, res.Entries[0].Path)

	assert.Nil(t, res.Entries[1].View, "label must not take an image view")
	assert.Equal(t, -1, res.Entries[1].Prev)
	assert.Empty(t, res.Teardown)
	assert.Equal(t, 1, res.Reused())
}

func TestMatchViews_EmptyIDNeverReuses(t *testing.T) {
	prev := []Binding{bindingFor("", "ImageView", imageClass.New())}
	next := ArrangeWithin(leaf("", imageClass, 10, 10, nil), NewRect(0, 0, 10, 10))

	res := MatchViews(prev, &next)
	require.Len(t, res.Entries, 1)
	assert.Nil(t, res.Entries[0].View)
	require.Len(t, res.Teardown, 1)
	assert.Equal(t, prev[0].View, res.Teardown[0].View)
}

func TestMatchViews_SingleNodeTakesFirstDuplicate(t *testing.T) {
	first, second, third := imageClass.New(), imageClass.New(), imageClass.New()
	prev := []Binding{
		bindingFor("row", "ImageView", first),
		bindingFor("other", "ImageView", third),
		bindingFor("row", "ImageView", second),
	}
	next := ArrangeWithin(leaf("row", imageClass, 10, 10, nil), NewRect(0, 0, 10, 10))

	res := MatchViews(prev, &next)
	require.Len(t, res.Entries, 1)
	assert.Equal(t, View(first), res.Entries[0].View)
	assert.Equal(t, []string{"ImageView/row"}, res.Duplicates)

	require.Len(t, res.Teardown, 2)
	assert.Equal(t, View(third), res.Teardown[0].View, "teardown keeps previous order")
	assert.Equal(t, View(second), res.Teardown[1].View)
}

func TestMatchViews_DuplicatesInNextTree(t *testing.T) {
	a, b := labelClass.New(), labelClass.New()
	prev := []Binding{bindingFor("cell", "LabelView", a), bindingFor("cell", "LabelView", b)}

	next := ArrangeWithin(vstack(DistributeLeading, 0,
		leaf("cell", labelClass, 10, 10, nil),
		leaf("cell", labelClass, 10, 10, nil),
		leaf("cell", labelClass, 10, 10, nil),
	), NewRect(0, 0, 100, 100))

	res := MatchViews(prev, &next)
	require.Len(t, res.Entries, 3)
	assert.Equal(t, View(a), res.Entries[0].View)
	assert.Equal(t, View(b), res.Entries[1].View)
	assert.Nil(t, res.Entries[2].View)
	assert.Empty(t, res.Teardown)
}

func TestMatchViews_FramesRelativeToMaterializedAncestor(t *testing.T) {
	container := NewInsetLayout(InsetConfig[*HeadlessView]{
		BaseConfig: BaseConfig[*HeadlessView]{
			Alignment: Fill,
			ReuseID:   "panel",
			Class:     HeadlessClass("Panel"),
			Config:    func(*HeadlessView) {},
		},
		Insets: EdgeAll(5),
	}, hstack(DistributeLeading, 0,
		box(7, 7, InflexibleBoth, TopLeft),
		leaf("icon", imageClass, 10, 10, nil),
	))

	root := NewInsetLayout(InsetConfig[View]{
		BaseConfig: BaseConfig[View]{Alignment: Fill},
		Insets:     EdgeTRBL(20, 0, 0, 10),
	}, container)

	next := ArrangeWithin(root, NewRect(0, 0, 200, 100))
	res := MatchViews(nil, &next)
	require.Len(t, res.Entries, 2)

	panel, icon := res.Entries[0], res.Entries[1]
	assert.Equal(t, -1, panel.Parent)
	assert.Equal(t, NewRect(10, 20, 190, 80), panel.Frame)

	// Offset by the panel insets and the view-less stack and sibling.
	assert.Equal(t, 0, icon.Parent)
	assert.Equal(t, NewRect(12, 5, 10, 10), icon.Frame)
}

func TestMatchViews_NilTreeTearsDownEverything(t *testing.T) {
	prev := []Binding{
		bindingFor("a", "ImageView", imageClass.New()),
		bindingFor("", "LabelView", labelClass.New()),
	}
	res := MatchViews(prev, nil)
	assert.Empty(t, res.Entries)
	assert.Len(t, res.Teardown, 2)
}
