package predicate

import (
	"github.com/pkg/errors"

	"github.com/krew-solutions/predicate-go/predicate/accessor"
	"github.com/krew-solutions/predicate-go/predicate/lookup"
	"github.com/krew-solutions/predicate-go/predicate/operators"
)

// Eval reports whether instance satisfies the predicate, resolving
// fields with the default reflection accessor.
func (p *P) Eval(instance any) (bool, error) {
	return p.EvalWith(instance, nil)
}

// EvalWith is Eval with an explicit object graph accessor. A nil acc
// falls back to accessor.Default.
//
// All conditions of this node merge into one lookup tree and evaluate
// jointly over candidate rows: the tree matches when at least one row
// satisfies every condition. Nested predicates evaluate independently,
// then everything combines under the node's connector — every child
// must match under AND, at least one under OR, short-circuiting either
// way. An AND node with no children matches everything; an OR node with
// no children matches nothing. Negation applies last.
func (p *P) EvalWith(instance any, acc accessor.Accessor) (bool, error) {
	if acc == nil {
		acc = accessor.Default
	}

	tree := lookup.NewNode()
	clauses := make([]func() (bool, error), 0, len(p.children))
	for _, child := range p.children {
		switch c := child.(type) {
		case Expr:
			tree.Set(c.Lookup, c.Value)
		case *P:
			clauses = append(clauses, func() (bool, error) {
				return c.EvalWith(instance, acc)
			})
		default:
			return false, errors.Wrapf(ErrMalformedExpression, "%T", child)
		}
	}
	if !tree.Empty() {
		merged := make([]func() (bool, error), 0, len(clauses)+1)
		merged = append(merged, func() (bool, error) {
			return evalTree(tree, instance, acc)
		})
		clauses = append(merged, clauses...)
	}

	matched, err := combine(p.connector, clauses)
	if err != nil {
		return false, err
	}
	if p.negated {
		matched = !matched
	}
	return matched, nil
}

func combine(connector Connector, clauses []func() (bool, error)) (bool, error) {
	for _, clause := range clauses {
		ok, err := clause()
		if err != nil {
			return false, err
		}
		if connector == ConnectorOr && ok {
			return true, nil
		}
		if connector != ConnectorOr && !ok {
			return false, nil
		}
	}
	return connector != ConnectorOr, nil
}

// condition is one (path, operator, literal) triple extracted from the
// merged lookup tree; path is the operator-stripped traversal path that
// addresses the condition's value slot inside a candidate row.
type condition struct {
	path    string
	op      operators.Operator
	literal any
}

func evalTree(tree *lookup.Node, instance any, acc accessor.Accessor) (bool, error) {
	conds := conditions(tree)
	rows, err := lookup.Rows(tree.WithoutOperators(), instance, acc)
	if err != nil {
		return false, err
	}
	for _, row := range rows {
		ok, err := rowMatches(row, conds)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

func conditions(tree *lookup.Node) []condition {
	items := tree.Items()
	out := make([]condition, 0, len(items))
	for _, it := range items {
		components := lookup.Parse(it.Path)
		op := operators.OpExact
		if last := len(components) - 1; last >= 0 && components[last].IsOperator() {
			op = operators.Operator(components[last].Name())
			components = components[:last]
		}
		out = append(out, condition{
			path:    lookup.Join(components),
			op:      op,
			literal: it.Value,
		})
	}
	return out
}

// rowMatches requires every condition to hold within one row,
// short-circuiting on the first failure.
func rowMatches(row *lookup.Node, conds []condition) (bool, error) {
	for _, c := range conds {
		slot, err := row.Get(c.path)
		if err != nil {
			return false, err
		}
		var values []any
		if slot.IsSome() {
			values = []any{slot.Unwrap()}
		}
		ok, err := operators.Match(c.op, c.literal, values)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}
