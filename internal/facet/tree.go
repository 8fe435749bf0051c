package facet

import (
	"fmt"
	"iter"
	"slices"
)

const rootIndex = 0

// treeNode lives in its tree's arena; parent and children are arena indexes.
type treeNode struct {
	id       string
	label    string
	value    *Value
	parent   int
	children []int
	byID     map[string]int
}

// Tree is a container that files values under a path computed by a
// PathFactory, e.g. alphabetic browse buckets. Nodes without a value group
// their children.
//
// Add only maintains the node structure; call Update after a batch of adds to
// rebuild the flat value view used by All, Selected and Count.
type Tree struct {
	nodes            []treeNode
	paths            PathFactory
	values           []*Value
	hasSelectedValue bool
}

func NewTree(paths PathFactory) *Tree {
	t := &Tree{paths: paths}

	t.nodes = append(t.nodes, treeNode{parent: -1, byID: make(map[string]int)})

	return t
}

func (t *Tree) Root() Node {
	return Node{tree: t, index: rootIndex}
}

// Add files v under its path. Values the path factory cannot place are
// skipped silently.
func (t *Tree) Add(v *Value) {
	if t.paths.EncodesPath(v) == false {
		return
	}

	path := t.paths.Path(v)

	if len(path) == 0 || slices.Contains(path, "") {
		return
	}

	if v.Selected == true {
		t.hasSelectedValue = true
	}

	t.insert(path, v)
}

// insert walks path from the root, creating grouping nodes as needed, and
// stores v on the last node. A value already stored there is replaced.
func (t *Tree) insert(path []string, v *Value) {
	idx := rootIndex

	for _, segment := range path {
		child, ok := t.nodes[idx].byID[segment]
		if ok == false {
			child = t.addChild(idx, segment, segment)
		}

		idx = child
	}

	t.nodes[idx].value = v
}

func (t *Tree) addChild(parent int, id, label string) int {
	t.removeChild(parent, id)

	idx := len(t.nodes)
	t.nodes = append(t.nodes, treeNode{id: id, label: label, parent: parent, byID: make(map[string]int)})

	p := &t.nodes[parent]
	p.children = append(p.children, idx)
	p.byID[id] = idx

	return idx
}

func (t *Tree) removeChild(parent int, id string) {
	p := &t.nodes[parent]

	idx, ok := p.byID[id]
	if ok == false {
		return
	}

	delete(p.byID, id)
	p.children = slices.DeleteFunc(p.children, func(c int) bool { return c == idx })
}

// Update rebuilds the flat value view from a pre-order walk of the tree.
func (t *Tree) Update() {
	t.values = nil

	for n := range t.Root().Walk() {
		if v := n.Value(); v != nil {
			t.values = append(t.values, v)
		}
	}
}

func (t *Tree) All() iter.Seq[*Value] {
	return slices.Values(t.values)
}

func (t *Tree) Selected() iter.Seq[*Value] {
	return Filter(t.All(), IsSelected)
}

func (t *Tree) Unselected() iter.Seq[*Value] {
	return Filter(t.All(), IsNotSelected)
}

func (t *Tree) HasSelectedValue() bool {
	return t.hasSelectedValue
}

func (t *Tree) Count() int {
	return len(t.values)
}

// SortByLabel orders every node's children by the label of the child's value,
// or the child's own label when it carries no value.
func (t *Tree) SortByLabel(c Collator, reverse bool) {
	t.sortChildrenByLabel(rootIndex, c, reverse)
	sortValues(t.values, CompareByLabel(c), reverse)
}

func (t *Tree) sortChildrenByLabel(idx int, c Collator, reverse bool) {
	children := t.nodes[idx].children

	for _, child := range children {
		t.sortChildrenByLabel(child, c, reverse)
	}

	slices.SortStableFunc(children, func(a, b int) int {
		return c.CompareString(t.sortLabel(a), t.sortLabel(b))
	})

	if reverse == true {
		slices.Reverse(children)
	}
}

func (t *Tree) sortLabel(idx int) string {
	n := &t.nodes[idx]

	if n.value != nil {
		return n.value.DisplayLabel()
	}

	if n.label != "" {
		return n.label
	}

	return n.id
}

// SortByCount reorders only value-bearing children by count. Grouping
// children keep their relative order and come first.
func (t *Tree) SortByCount(reverse bool) {
	t.sortChildrenByCount(rootIndex, reverse)
	sortValues(t.values, CompareByCount, reverse)
}

func (t *Tree) sortChildrenByCount(idx int, reverse bool) {
	var grouping, valued []int

	for _, child := range t.nodes[idx].children {
		t.sortChildrenByCount(child, reverse)

		if t.nodes[child].value != nil {
			valued = append(valued, child)
		} else {
			grouping = append(grouping, child)
		}
	}

	slices.SortStableFunc(valued, func(a, b int) int {
		return CompareByCount(t.nodes[a].value, t.nodes[b].value)
	})

	if reverse == true {
		slices.Reverse(valued)
	}

	t.nodes[idx].children = append(grouping, valued...)
}

// Node is a handle to one node of a Tree.
type Node struct {
	tree  *Tree
	index int
}

func (n Node) node() *treeNode {
	return &n.tree.nodes[n.index]
}

func (n Node) ID() string {
	return n.node().id
}

func (n Node) Label() string {
	return n.node().label
}

func (n Node) SetLabel(label string) {
	n.node().label = label
}

func (n Node) Value() *Value {
	return n.node().value
}

func (n Node) HasValue() bool {
	return n.node().value != nil
}

func (n Node) SetValue(v *Value) {
	n.node().value = v
}

func (n Node) IsRoot() bool {
	return n.index == rootIndex
}

func (n Node) Parent() (Node, bool) {
	p := n.node().parent
	if p < 0 {
		return Node{}, false
	}

	return Node{tree: n.tree, index: p}, true
}

// Depth is the number of edges between n and the root.
func (n Node) Depth() int {
	depth := 0

	for p := n.node().parent; p >= 0; p = n.tree.nodes[p].parent {
		depth++
	}

	return depth
}

func (n Node) HasChildren() bool {
	return len(n.node().children) > 0
}

func (n Node) Children() []Node {
	var children []Node

	for _, idx := range n.node().children {
		children = append(children, Node{tree: n.tree, index: idx})
	}

	return children
}

func (n Node) Child(id string) (Node, bool) {
	idx, ok := n.node().byID[id]
	if ok == false {
		return Node{}, false
	}

	return Node{tree: n.tree, index: idx}, true
}

// AddChild appends a new child node, replacing any existing child with the same id.
func (n Node) AddChild(id, label string) (Node, error) {
	if id == "" {
		return Node{}, fmt.Errorf("%w: node id must not be empty", ErrInvalidInput)
	}

	idx := n.tree.addChild(n.index, id, label)

	return Node{tree: n.tree, index: idx}, nil
}

func (n Node) RemoveChild(id string) {
	n.tree.removeChild(n.index, id)
}

// Walk yields the descendants of n in pre-order.
func (n Node) Walk() iter.Seq[Node] {
	return func(yield func(Node) bool) {
		n.walk(yield)
	}
}

func (n Node) walk(yield func(Node) bool) bool {
	for _, idx := range n.node().children {
		child := Node{tree: n.tree, index: idx}

		if yield(child) == false {
			return false
		}

		if child.walk(yield) == false {
			return false
		}
	}

	return true
}
