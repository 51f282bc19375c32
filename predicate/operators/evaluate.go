package operators

import (
	"regexp"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// ErrInvalidPattern reports a malformed regex literal for OpRegex or OpIRegex.
var ErrInvalidPattern = errors.New("invalid regex pattern")

// Match tests a sequence of resolved values against literal under op.
// Every operator quantifies existentially over values, except OpIsNull
// (which tests for the presence or absence of nil in the sequence) and
// OpIn (set intersection with the literal collection). Nil values never
// match any operator other than OpIsNull.
func Match(op Operator, literal any, values []any) (bool, error) {
	switch op {
	case OpExact:
		return anyValue(values, func(v any) bool { return equal(v, literal) }), nil

	case OpIExact:
		want, ok := literal.(string)
		if !ok {
			return false, nil
		}
		want = strings.ToLower(want)
		return anyString(values, func(s string) bool { return strings.ToLower(s) == want }), nil

	case OpContains, OpSearch:
		want, ok := literal.(string)
		if !ok {
			return false, nil
		}
		return anyString(values, func(s string) bool { return strings.Contains(s, want) }), nil

	case OpIContains:
		want, ok := literal.(string)
		if !ok {
			return false, nil
		}
		want = strings.ToLower(want)
		return anyString(values, func(s string) bool { return strings.Contains(strings.ToLower(s), want) }), nil

	case OpGt:
		return anyOrdered(values, literal, func(c int) bool { return c > 0 }), nil
	case OpGte:
		return anyOrdered(values, literal, func(c int) bool { return c >= 0 }), nil
	case OpLt:
		return anyOrdered(values, literal, func(c int) bool { return c < 0 }), nil
	case OpLte:
		return anyOrdered(values, literal, func(c int) bool { return c <= 0 }), nil

	case OpStartsWith:
		want, ok := literal.(string)
		if !ok {
			return false, nil
		}
		return anyString(values, func(s string) bool { return strings.HasPrefix(s, want) }), nil

	case OpIStartsWith:
		want, ok := literal.(string)
		if !ok {
			return false, nil
		}
		want = strings.ToLower(want)
		return anyString(values, func(s string) bool { return strings.HasPrefix(strings.ToLower(s), want) }), nil

	case OpEndsWith:
		// Lowercases the value but not the literal. Intentional: callers
		// depend on a lowercase literal matching any casing of the value
		// while an uppercase literal never matches.
		want, ok := literal.(string)
		if !ok {
			return false, nil
		}
		return anyString(values, func(s string) bool { return strings.HasSuffix(strings.ToLower(s), want) }), nil

	case OpIEndsWith:
		want, ok := literal.(string)
		if !ok {
			return false, nil
		}
		want = strings.ToLower(want)
		return anyString(values, func(s string) bool { return strings.HasSuffix(strings.ToLower(s), want) }), nil

	case OpIn:
		members, ok := elements(literal)
		if !ok {
			return false, nil
		}
		return anyValue(values, func(v any) bool {
			for _, m := range members {
				if equal(v, m) {
					return true
				}
			}
			return false
		}), nil

	case OpRange:
		bounds, ok := elements(literal)
		if !ok || len(bounds) != 2 {
			return false, nil
		}
		return anyValue(values, func(v any) bool {
			lo, okLo := compare(v, bounds[0])
			hi, okHi := compare(v, bounds[1])
			return okLo && okHi && lo > 0 && hi < 0
		}), nil

	case OpYear:
		return anyTime(values, func(t time.Time) bool { return equal(t.Year(), literal) }), nil
	case OpMonth:
		return anyTime(values, func(t time.Time) bool { return equal(int(t.Month()), literal) }), nil
	case OpDay:
		return anyTime(values, func(t time.Time) bool { return equal(t.Day(), literal) }), nil

	case OpWeekDay:
		// Sunday=1 through Saturday=7, i.e. (isoWeekday mod 7) + 1.
		// Deliberately not ISO numbering.
		return anyTime(values, func(t time.Time) bool {
			return equal(isoWeekday(t)%7+1, literal)
		}), nil

	case OpIsNull:
		if truthy(literal) {
			return containsNil(values), nil
		}
		return !containsNil(values), nil

	case OpRegex:
		return matchRegex(literal, values, false)
	case OpIRegex:
		return matchRegex(literal, values, true)
	}

	return false, errors.Wrapf(ErrUnknownOperator, "%q", op)
}

func matchRegex(literal any, values []any, insensitive bool) (bool, error) {
	pattern, ok := literal.(string)
	if !ok {
		return false, errors.Wrapf(ErrInvalidPattern, "pattern %T(%v) is not a string", literal, literal)
	}
	if insensitive {
		pattern = "(?i)" + pattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return false, errors.Wrapf(ErrInvalidPattern, "%v", err)
	}
	return anyString(values, re.MatchString), nil
}

func anyValue(values []any, pred func(any) bool) bool {
	for _, v := range values {
		if v != nil && pred(v) {
			return true
		}
	}
	return false
}

func anyString(values []any, pred func(string) bool) bool {
	return anyValue(values, func(v any) bool {
		s, ok := v.(string)
		return ok && pred(s)
	})
}

func anyOrdered(values []any, literal any, pred func(int) bool) bool {
	return anyValue(values, func(v any) bool {
		c, ok := compare(v, literal)
		return ok && pred(c)
	})
}

func anyTime(values []any, pred func(time.Time) bool) bool {
	return anyValue(values, func(v any) bool {
		t, ok := timeValue(v)
		return ok && pred(t)
	})
}

func containsNil(values []any) bool {
	for _, v := range values {
		if v == nil {
			return true
		}
	}
	return false
}
