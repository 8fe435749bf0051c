package facet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/unicode/norm"
)

func nodeIDs(nodes []Node) []string {
	var ids []string
	for _, n := range nodes {
		ids = append(ids, n.ID())
	}
	return ids
}

func newBrowseTree(values ...*Value) *Tree {
	t := NewTree(NewAlphabrowsePathFactory(""))

	for _, v := range values {
		t.Add(v)
	}

	t.Update()

	return t
}

func TestAlphabrowsePathFactory(t *testing.T) {
	tests := []struct {
		prefix   string
		value    string
		expected []string
	}{
		{"", "Apple", []string{"A", "Apple"}},
		{"", "apricot", []string{"A", "apricot"}},
		{"", "Éclair", []string{"E", norm.NFD.String("Éclair")}},
		{"", "7-Up", []string{DigitBucket}},
		{"", "!bang", nil},
		{"", "", nil},
		{"en:", "en:Apple", []string{"A", "Apple"}},
		{"en:", "fr:Pomme", nil},
		{"en:", "en:", nil},
	}

	for _, tc := range tests {
		t.Run(tc.prefix+tc.value, func(t *testing.T) {
			f := NewAlphabrowsePathFactory(tc.prefix)
			v := NewValue(tc.value, 1, false)

			assert.Equal(t, tc.expected, f.Path(v))
			assert.Equal(t, tc.expected != nil, f.EncodesPath(v))
		})
	}
}

func TestTreeAdd(t *testing.T) {
	tree := newBrowseTree(
		NewValue("Apple", 5, false),
		NewValue("apricot", 10, false),
		NewValue("Banana", 2, true),
		NewValue("7-Up", 7, false),
		NewValue("#hashtag", 1, false),
	)

	root := tree.Root()
	assert.True(t, root.IsRoot())
	assert.Equal(t, []string{"A", "B", DigitBucket}, nodeIDs(root.Children()))

	a, ok := root.Child("A")
	require.True(t, ok)
	assert.False(t, a.HasValue())
	assert.Equal(t, "A", a.Label())
	assert.Equal(t, []string{"Apple", "apricot"}, nodeIDs(a.Children()))

	digits, ok := root.Child(DigitBucket)
	require.True(t, ok)
	assert.Equal(t, "7-Up", digits.Value().Value)
	assert.False(t, digits.HasChildren())

	apple, _ := a.Child("Apple")
	parent, ok := apple.Parent()
	require.True(t, ok)
	assert.Equal(t, "A", parent.ID())
	assert.Equal(t, 2, apple.Depth())

	assert.Equal(t, 4, tree.Count())
	assert.True(t, tree.HasSelectedValue())
	assert.Equal(t, []string{"Banana"}, labels(tree.Selected()))
	assert.Equal(t, []string{"Apple", "apricot", "Banana", "7-Up"}, labels(tree.All()))
}

func TestTreeUpdate(t *testing.T) {
	tree := NewTree(NewAlphabrowsePathFactory(""))
	tree.Add(NewValue("Apple", 1, false))

	assert.Equal(t, 0, tree.Count())

	tree.Update()
	assert.Equal(t, 1, tree.Count())

	// last write wins on the same path
	tree.Add(NewValue("Apple", 3, false))
	tree.Update()

	require.Equal(t, 1, tree.Count())
	for v := range tree.All() {
		assert.Equal(t, 3, v.Count)
	}
}

func TestTreeSortByLabel(t *testing.T) {
	tree := newBrowseTree(
		labeled("Banana", 1),
		labeled("apricot", 1),
		labeled("Apple", 1),
		labeled("7-Up", 1),
	)

	tree.SortByLabel(BinaryCollator, false)
	assert.Equal(t, []string{DigitBucket, "A", "B"}, nodeIDs(tree.Root().Children()))

	a, _ := tree.Root().Child("A")
	assert.Equal(t, []string{"Apple", "apricot"}, nodeIDs(a.Children()))

	tree.SortByLabel(BinaryCollator, true)
	assert.Equal(t, []string{"B", "A", DigitBucket}, nodeIDs(tree.Root().Children()))
	assert.Equal(t, []string{"apricot", "Apple"}, nodeIDs(a.Children()))
}

func TestTreeSortByCount(t *testing.T) {
	tree := newBrowseTree(
		labeled("Banana", 1),
		labeled("7-Up", 50),
		labeled("Apple", 5),
		labeled("apricot", 10),
		labeled("avocado", 1),
	)

	tree.SortByCount(true)

	// grouping buckets keep their relative order
	assert.Equal(t, []string{"B", "A", DigitBucket}, nodeIDs(tree.Root().Children()))

	a, _ := tree.Root().Child("A")
	assert.Equal(t, []string{"apricot", "Apple", "avocado"}, nodeIDs(a.Children()))

	tree.SortByCount(false)
	assert.Equal(t, []string{"B", "A", DigitBucket}, nodeIDs(tree.Root().Children()))
	assert.Equal(t, []string{"avocado", "Apple", "apricot"}, nodeIDs(a.Children()))
}

func TestNodeEditing(t *testing.T) {
	tree := NewTree(NewAlphabrowsePathFactory(""))
	root := tree.Root()

	_, err := root.AddChild("", "empty")
	require.ErrorIs(t, err, ErrInvalidInput)

	x, err := root.AddChild("x", "X")
	require.NoError(t, err)
	_, err = root.AddChild("y", "Y")
	require.NoError(t, err)

	x.SetValue(NewValue("x", 1, false))
	_, err = x.AddChild("x1", "")
	require.NoError(t, err)

	// replacing moves the child to the end and drops its subtree
	x2, err := root.AddChild("x", "X again")
	require.NoError(t, err)
	assert.Equal(t, []string{"y", "x"}, nodeIDs(root.Children()))
	assert.Equal(t, "X again", x2.Label())
	assert.False(t, x2.HasValue())
	assert.False(t, x2.HasChildren())

	root.RemoveChild("y")
	_, ok := root.Child("y")
	assert.False(t, ok)

	_, ok = root.Parent()
	assert.False(t, ok)
}

func TestNodeWalk(t *testing.T) {
	tree := newBrowseTree(
		NewValue("Apple", 1, false),
		NewValue("Banana", 1, false),
		NewValue("avocado", 1, false),
	)

	var ids []string
	for n := range tree.Root().Walk() {
		ids = append(ids, n.ID())
	}
	assert.Equal(t, []string{"A", "Apple", "avocado", "B", "Banana"}, ids)

	// stopping early
	ids = nil
	for n := range tree.Root().Walk() {
		ids = append(ids, n.ID())
		if n.ID() == "Apple" {
			break
		}
	}
	assert.Equal(t, []string{"A", "Apple"}, ids)
}
