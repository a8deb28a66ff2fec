package tree_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rsankarapandian/stores-backoffice/internal/desk/apiclient"
	"github.com/rsankarapandian/stores-backoffice/internal/desk/tree"
)

func sample() []apiclient.GroupNode {
	return []apiclient.GroupNode{
		{Code: "01", Name: "Capital Account"},
		{Code: "02", Name: "Current Assets", Children: []apiclient.GroupNode{
			{Code: "0201", Name: "Cash-in-Hand"},
			{Code: "0203", Name: "Stock-in-Hand", Children: []apiclient.GroupNode{
				{Code: "020301", Name: "Finished Goods"},
				{Code: "020302", Name: "Scrap"},
			}},
		}},
		{Code: "03", Name: "Current Liabilities", Children: []apiclient.GroupNode{
			{Code: "0201", Name: "Repeated code"},
		}},
	}
}

func keys(nodes []*tree.Node) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.Key)
	}
	return out
}

func TestBuild_KeysUniqueAcrossTree(t *testing.T) {
	roots := tree.Build(sample())
	seen := map[string]bool{}
	tree.Walk(roots, func(n *tree.Node) bool {
		assert.False(t, seen[n.Key], "duplicate key %s", n.Key)
		seen[n.Key] = true
		return true
	})
	assert.Len(t, seen, 8)
	assert.True(t, seen["02/0201"])
	assert.True(t, seen["03/0201"])
	assert.True(t, seen["02/0203/020301"])
}

func TestBuild_RepeatedSiblingCode(t *testing.T) {
	roots := tree.Build([]apiclient.GroupNode{{Code: "01", Name: "A"}, {Code: "01", Name: "B"}, {Code: "02"}})
	assert.Equal(t, []string{"01", "01~2", "02"}, keys(roots))
	assert.Equal(t, "02", roots[2].DisplayName)
}

func TestBuild_SuffixNeverReusesTakenKey(t *testing.T) {
	roots := tree.Build([]apiclient.GroupNode{{Code: "x"}, {Code: "x"}, {Code: "x~2"}})
	assert.Equal(t, []string{"x", "x~2", "x~2~2"}, keys(roots))
}

func TestBuild_EmptyCodeKeepsChildrenPrefixed(t *testing.T) {
	roots := tree.Build([]apiclient.GroupNode{
		{Code: "", Name: "Unnamed", Children: []apiclient.GroupNode{{Code: "A"}}},
		{Code: "A"},
	})
	require.Len(t, roots, 2)
	assert.Equal(t, "_", roots[0].Key)
	require.Len(t, roots[0].Children, 1)
	assert.Equal(t, "_/A", roots[0].Children[0].Key)
	assert.Equal(t, "_", roots[0].Children[0].ParentKey)
	assert.Equal(t, "A", roots[1].Key)

	seen := map[string]bool{}
	tree.Walk(roots, func(n *tree.Node) bool {
		assert.NotEmpty(t, n.Key)
		assert.False(t, seen[n.Key], "duplicate key %s", n.Key)
		seen[n.Key] = true
		return true
	})
}

func TestView_ExpandRevealsOnlyImmediateChildren(t *testing.T) {
	v := tree.NewView(tree.Build(sample()), nil)
	assert.Equal(t, []string{"01", "02", "03"}, keys(v.Visible()))

	v.Expand("02")
	assert.Equal(t, []string{"01", "02", "02/0201", "02/0203", "03"}, keys(v.Visible()))

	v.Expand("02/0203")
	assert.Len(t, v.Visible(), 7)

	// collapsing hides every descendant, and re-expanding shows one level again
	v.Collapse("02")
	assert.Equal(t, []string{"01", "02", "03"}, keys(v.Visible()))
	v.Expand("02")
	assert.Equal(t, []string{"01", "02", "02/0201", "02/0203", "03"}, keys(v.Visible()))

	v.Expand("01")
	assert.False(t, v.IsExpanded("01"), "leaves do not expand")
}

func TestView_KeyboardNavigation(t *testing.T) {
	var picked []string
	v := tree.NewView(tree.Build(sample()), func(n *tree.Node) { picked = append(picked, n.Code) })

	require.True(t, v.HandleKey(tree.KeyArrowDown))
	assert.Equal(t, "01", v.Cursor)
	require.True(t, v.HandleKey(tree.KeyArrowDown))
	assert.Equal(t, "02", v.Cursor)

	// Enter expands a collapsed parent without selecting it
	require.True(t, v.HandleKey(tree.KeyEnter))
	assert.True(t, v.IsExpanded("02"))
	assert.Empty(t, picked)
	assert.False(t, v.HandleKey(tree.KeyEnter), "expanded parent is not selectable")

	require.True(t, v.HandleKey(tree.KeyArrowDown))
	assert.Equal(t, "02/0201", v.Cursor)
	require.True(t, v.HandleKey(tree.KeyEnter))
	assert.Equal(t, []string{"0201"}, picked)
	assert.Equal(t, "02/0201", v.Selected)

	require.True(t, v.HandleKey(tree.KeyArrowDown))
	require.True(t, v.HandleKey(tree.KeyArrowRight))
	assert.True(t, v.IsExpanded("02/0203"))
	require.True(t, v.HandleKey(tree.KeyArrowDown))
	assert.Equal(t, "02/0203/020301", v.Cursor)

	// ArrowLeft on a leaf climbs to the parent, then collapses it
	require.True(t, v.HandleKey(tree.KeyArrowLeft))
	assert.Equal(t, "02/0203", v.Cursor)
	require.True(t, v.HandleKey(tree.KeyArrowLeft))
	assert.False(t, v.IsExpanded("02/0203"))

	require.True(t, v.HandleKey(tree.KeyArrowUp))
	require.True(t, v.HandleKey(tree.KeyArrowUp))
	require.True(t, v.HandleKey(tree.KeyArrowUp))
	assert.Equal(t, "01", v.Cursor)
	assert.False(t, v.HandleKey(tree.KeyArrowUp), "no node above the first")
}

func TestView_CollapseMovesHiddenCursor(t *testing.T) {
	v := tree.NewView(tree.Build(sample()), nil)
	v.Expand("02")
	v.Expand("02/0203")
	v.Cursor = "02/0203/020302"

	v.Collapse("02")
	assert.Equal(t, "02", v.Cursor)
}

func TestView_ClickAndSelectParents(t *testing.T) {
	var picked []string
	v := tree.NewView(tree.Build(sample()), func(n *tree.Node) { picked = append(picked, n.Key) })

	v.Click("02")
	assert.True(t, v.IsExpanded("02"))
	assert.Empty(t, picked)

	v.Click("02/0201")
	assert.Equal(t, []string{"02/0201"}, picked)

	v.SelectParents = true
	v.Click("03")
	assert.True(t, v.IsExpanded("03"))
	assert.Equal(t, []string{"02/0201", "03"}, picked)

	v.Cursor = "02"
	assert.True(t, v.HandleKey(tree.KeyEnter))
	assert.Equal(t, "02", v.Selected)

	v.Click("missing")
	assert.Len(t, picked, 3)
}

func TestView_FindCode(t *testing.T) {
	v := tree.NewView(tree.Build(sample()), nil)
	n := v.FindCode("0201")
	require.NotNil(t, n)
	assert.Equal(t, "02/0201", n.Key)
	assert.Nil(t, v.FindCode("99"))
}
