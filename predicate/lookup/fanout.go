package lookup

import (
	"github.com/krew-solutions/predicate-go/predicate/accessor"
	"github.com/krew-solutions/predicate-go/predicate/option"
)

// Rows fans a traversal-only tree out against instance and returns one
// tree per coherent assignment of resolved values to terminal slots —
// the in-memory analogue of a join across every traversed relation.
// Each branch of the tree resolves to a set of values through acc; the
// rows are the cartesian product of all branch picks, so a to-many
// relation with three related objects triples the row count for its
// branch. A branch that resolves to zero values empties the product:
// no related objects means no rows, which is distinct from a
// null-valued field (that resolves to [nil] and yields rows carrying
// nil).
//
// A nil instance resolves every component to [nil], so nulls propagate
// through arbitrarily deep paths instead of failing.
func Rows(n *Node, instance any, acc accessor.Accessor) ([]*Node, error) {
	base := NewNode()
	if n.value.IsSome() {
		base.value = option.Some[any](instance)
	}
	rows := []*Node{base}

	for c, child := range n.children {
		values, err := resolveComponent(instance, c, acc)
		if err != nil {
			return nil, err
		}

		var picks []*Node
		for _, v := range values {
			sub, err := Rows(child, v, acc)
			if err != nil {
				return nil, err
			}
			picks = append(picks, sub...)
		}

		next := make([]*Node, 0, len(rows)*len(picks))
		for _, row := range rows {
			for _, pick := range picks {
				next = append(next, row.withChild(c, pick))
			}
		}
		rows = next
	}
	return rows, nil
}

func resolveComponent(instance any, c Component, acc accessor.Accessor) ([]any, error) {
	if instance == nil {
		return []any{nil}, nil
	}
	return acc.Resolve(instance, c.Name())
}

// withChild copies the row and grafts pick under c. Rows under
// construction share unmodified child subtrees; that is safe because
// fan-out output is read-only.
func (n *Node) withChild(c Component, pick *Node) *Node {
	out := NewNode()
	out.value = n.value
	for k, v := range n.children {
		out.children[k] = v
	}
	out.children[c] = pick
	return out
}
