// Package lookup implements the path vocabulary of predicate
// expressions: parsing "city__name__iexact"-style keys into components,
// merging many lookups into one prefix-sharing tree, and fanning that
// tree out against an object graph into candidate rows.
package lookup

import (
	"strings"

	"github.com/krew-solutions/predicate-go/predicate/operators"
)

// Separator delimits components inside a lookup path.
const Separator = "__"

// Component is one step of a lookup path. The zero value is Root, the
// distinguished terminal slot that marks "stop here, this node holds
// the value"; every other component carries a name and either traverses
// the object graph or, in final position, names an operator.
type Component struct {
	name  string
	named bool
}

// Root marks the terminal value slot of a tree node.
var Root Component

// Named builds a traversal or operator component.
func Named(name string) Component {
	return Component{name: name, named: true}
}

func (c Component) IsRoot() bool { return !c.named }

func (c Component) Name() string { return c.name }

// IsOperator reports whether the component names a comparison operator.
// Classification is by name only: a relation that happens to be called
// "year" or "in" cannot be traversed in final position, there is no
// escaping mechanism.
func (c Component) IsOperator() bool {
	return c.named && operators.IsKnown(c.name)
}

func (c Component) String() string {
	if c.IsRoot() {
		return "<root>"
	}
	return c.name
}

// Parse splits a lookup path into its components. The empty path parses
// to an empty sequence, which addresses a node's own terminal slot.
// Separator placement is not validated: a stray or doubled separator
// simply yields an empty-named component.
func Parse(path string) []Component {
	if path == "" {
		return nil
	}
	parts := strings.Split(path, Separator)
	out := make([]Component, len(parts))
	for i, p := range parts {
		out[i] = Named(p)
	}
	return out
}

// Join is the inverse of Parse. Root components are skipped.
func Join(components []Component) string {
	names := make([]string, 0, len(components))
	for _, c := range components {
		if c.IsRoot() {
			continue
		}
		names = append(names, c.name)
	}
	return strings.Join(names, Separator)
}
