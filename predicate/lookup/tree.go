package lookup

import (
	"fmt"
	"sort"

	"github.com/pkg/errors"

	"github.com/krew-solutions/predicate-go/predicate/option"
)

// ErrKeyNotFound reports a Get through a path whose intermediate
// components were never set.
var ErrKeyNotFound = errors.New("lookup path not found")

// Get marks a terminal slot in a traversal-only tree: the slot exists
// and should be filled with a resolved value during fan-out, but
// carries no literal of its own.
var Get getMarker

type getMarker struct{}

func (getMarker) String() string { return "GET" }

// Node is one node of a lookup tree. Children are keyed by path
// component; the terminal value, when present, sits in the node's own
// value slot (addressed by the empty path). Paths sharing a prefix
// share nodes, so one traversal pass serves every lookup merged into
// the tree.
type Node struct {
	value    option.Option[any]
	children map[Component]*Node
}

func NewNode() *Node {
	return &Node{
		value:    option.Nothing[any](),
		children: make(map[Component]*Node),
	}
}

// NewTree builds a tree from lookup→value pairs. When two paths
// collide, which write wins follows map iteration order; use Set
// directly when insertion order matters.
func NewTree(lookups map[string]any) *Node {
	n := NewNode()
	for path, value := range lookups {
		n.Set(path, value)
	}
	return n
}

// Set stores value under path, creating intermediate nodes as needed.
// An existing value at the same path is overwritten silently.
func (n *Node) Set(path string, value any) {
	cur := n
	for _, c := range Parse(path) {
		child, ok := cur.children[c]
		if !ok {
			child = NewNode()
			cur.children[c] = child
		}
		cur = child
	}
	cur.value = option.Some(value)
}

// Get walks path and returns the terminal value slot. A path through an
// absent intermediate node fails with ErrKeyNotFound; a present node
// without a terminal value yields Nothing.
func (n *Node) Get(path string) (option.Option[any], error) {
	cur := n
	for _, c := range Parse(path) {
		child, ok := cur.children[c]
		if !ok {
			return option.Nothing[any](), errors.Wrapf(ErrKeyNotFound, "%q", path)
		}
		cur = child
	}
	return cur.value, nil
}

// Empty reports whether the tree holds no values at all.
func (n *Node) Empty() bool {
	return n.value.IsNothing() && len(n.children) == 0
}

// Item is one stored lookup→value pair, with the full path
// reassembled.
type Item struct {
	Path  string
	Value any
}

// Items collects every stored pair by depth-first traversal. Each call
// walks the tree afresh; order is deterministic (paths sorted) but not
// meaningful.
func (n *Node) Items() []Item {
	var out []Item
	n.walk(nil, &out)
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

func (n *Node) walk(prefix []Component, out *[]Item) {
	if n.value.IsSome() {
		*out = append(*out, Item{Path: Join(prefix), Value: n.value.Unwrap()})
	}
	for c, child := range n.children {
		child.walk(append(prefix, c), out)
	}
}

// WithoutOperators derives the traversal-only tree used for fan-out:
// every stored path loses its trailing operator component (when it has
// one) and every terminal value becomes the Get marker. When stripping
// collapses two paths onto the same shorter path they share one slot,
// which is exactly the join semantics wanted: age__gt and age__lt both
// test the single resolved "age" of a row.
func (n *Node) WithoutOperators() *Node {
	out := NewNode()
	for _, it := range n.Items() {
		components := Parse(it.Path)
		if last := len(components) - 1; last >= 0 && components[last].IsOperator() {
			components = components[:last]
		}
		out.Set(Join(components), Get)
	}
	return out
}

// ToMap renders the tree as nested maps, terminal values under the ""
// key. Meant for debugging and String.
func (n *Node) ToMap() map[string]any {
	out := make(map[string]any, len(n.children)+1)
	if n.value.IsSome() {
		out[""] = n.value.Unwrap()
	}
	for c, child := range n.children {
		out[c.Name()] = child.ToMap()
	}
	return out
}

func (n *Node) String() string {
	return fmt.Sprintf("%v", n.ToMap())
}
