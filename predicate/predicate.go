// Package predicate evaluates boolean filter expressions against live
// object graphs in memory, with the lookup vocabulary of a relational
// query filter (field comparisons, double-underscore relationship
// traversal, AND/OR composition, negation) but without ever touching a
// data store. A predicate answers one question: does this in-memory
// instance satisfy this filter.
//
//	adults := predicate.MustNew(
//		predicate.Where("age__gte", 18),
//		predicate.Where("city__name__iexact", "berlin"),
//	)
//	ok, err := adults.Eval(user)
package predicate

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

// Connector combines the children of a predicate node.
type Connector string

const (
	ConnectorAnd Connector = "AND"
	ConnectorOr  Connector = "OR"
)

// ErrMalformedExpression reports a predicate child that is neither a
// condition nor a nested predicate.
var ErrMalformedExpression = errors.New("malformed predicate expression")

// Expr is one raw lookup→value condition, e.g.
// Where("city__name__iexact", "berlin").
type Expr struct {
	Lookup string
	Value  any
}

// Where builds a single condition.
func Where(lookup string, value any) Expr {
	return Expr{Lookup: lookup, Value: value}
}

// P is an immutable predicate node: a connector, a negation flag, and
// children that are either Expr conditions or nested *P. Once built it
// holds no evaluation state, so one P may be shared across concurrent
// Eval calls on distinct instances without locking.
type P struct {
	connector Connector
	negated   bool
	children  []any
}

// New builds an AND predicate over conditions and nested predicates.
// Children of any other type fail with ErrMalformedExpression; every
// offending argument is reported, not just the first.
func New(children ...any) (*P, error) {
	var merr *multierror.Error
	for i, child := range children {
		switch child.(type) {
		case Expr, *P:
		default:
			merr = multierror.Append(merr, errors.Wrapf(
				ErrMalformedExpression,
				"argument %d: %T is neither a condition nor a nested predicate", i, child,
			))
		}
	}
	if err := merr.ErrorOrNil(); err != nil {
		return nil, err
	}
	return &P{connector: ConnectorAnd, children: children}, nil
}

// MustNew is New, panicking on malformed children. Meant for predicate
// literals in package-level variables and tests.
func MustNew(children ...any) *P {
	p, err := New(children...)
	if err != nil {
		panic(err)
	}
	return p
}

// And combines p with other predicates under a fresh AND node. The
// operands are not copied; they are immutable and shared.
func (p *P) And(others ...*P) *P {
	return p.combine(ConnectorAnd, others)
}

// Or combines p with other predicates under a fresh OR node.
func (p *P) Or(others ...*P) *P {
	return p.combine(ConnectorOr, others)
}

func (p *P) combine(connector Connector, others []*P) *P {
	children := make([]any, 0, len(others)+1)
	children = append(children, p)
	for _, o := range others {
		children = append(children, o)
	}
	return &P{connector: connector, children: children}
}

// Not returns the negation of p, leaving p untouched.
func (p *P) Not() *P {
	return &P{
		connector: p.connector,
		negated:   !p.negated,
		children:  p.children,
	}
}

func (p *P) String() string {
	parts := make([]string, len(p.children))
	for i, child := range p.children {
		switch c := child.(type) {
		case Expr:
			parts[i] = fmt.Sprintf("%s=%v", c.Lookup, c.Value)
		case *P:
			parts[i] = c.String()
		default:
			parts[i] = fmt.Sprintf("<invalid %T>", child)
		}
	}
	out := fmt.Sprintf("(%s: %s)", p.connector, strings.Join(parts, ", "))
	if p.negated {
		return "NOT " + out
	}
	return out
}
