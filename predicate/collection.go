package predicate

import "github.com/krew-solutions/predicate-go/predicate/accessor"

// Filter returns the items matching p, in input order.
func Filter[T any](p *P, items []T, acc accessor.Accessor) ([]T, error) {
	var out []T
	for _, item := range items {
		ok, err := p.EvalWith(item, acc)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, item)
		}
	}
	return out, nil
}

// Any reports whether at least one item matches p.
func Any[T any](p *P, items []T, acc accessor.Accessor) (bool, error) {
	for _, item := range items {
		ok, err := p.EvalWith(item, acc)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

// All reports whether every item matches p. Vacuously true for an
// empty slice.
func All[T any](p *P, items []T, acc accessor.Accessor) (bool, error) {
	for _, item := range items {
		ok, err := p.EvalWith(item, acc)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}
