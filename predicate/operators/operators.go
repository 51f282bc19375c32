package operators

import "github.com/pkg/errors"

// Operator names one comparison from the closed lookup vocabulary. The
// set is fixed: every recognized name has a case in Match, and anything
// else fails with ErrUnknownOperator instead of being treated as a
// traversal step.
type Operator string

const (
	OpExact     Operator = "exact"
	OpIExact    Operator = "iexact"
	OpContains  Operator = "contains"
	OpIContains Operator = "icontains"
	OpGt        Operator = "gt"
	OpGte       Operator = "gte"
	OpLt        Operator = "lt"
	OpLte       Operator = "lte"
	OpIn        Operator = "in"

	OpStartsWith  Operator = "startswith"
	OpIStartsWith Operator = "istartswith"
	OpEndsWith    Operator = "endswith"
	OpIEndsWith   Operator = "iendswith"

	OpRange   Operator = "range"
	OpYear    Operator = "year"
	OpMonth   Operator = "month"
	OpDay     Operator = "day"
	OpWeekDay Operator = "week_day"

	OpIsNull Operator = "isnull"
	OpSearch Operator = "search"
	OpRegex  Operator = "regex"
	OpIRegex Operator = "iregex"
)

// ErrUnknownOperator reports an operator name outside the recognized set.
var ErrUnknownOperator = errors.New("unknown lookup operator")

var known = map[Operator]struct{}{
	OpExact: {}, OpIExact: {}, OpContains: {}, OpIContains: {},
	OpGt: {}, OpGte: {}, OpLt: {}, OpLte: {}, OpIn: {},
	OpStartsWith: {}, OpIStartsWith: {}, OpEndsWith: {}, OpIEndsWith: {},
	OpRange: {}, OpYear: {}, OpMonth: {}, OpDay: {}, OpWeekDay: {},
	OpIsNull: {}, OpSearch: {}, OpRegex: {}, OpIRegex: {},
}

// IsKnown reports whether name belongs to the operator vocabulary.
func IsKnown(name string) bool {
	_, ok := known[Operator(name)]
	return ok
}

// Parse resolves an operator name, failing with ErrUnknownOperator for
// anything outside the closed set.
func Parse(name string) (Operator, error) {
	if !IsKnown(name) {
		return "", errors.Wrapf(ErrUnknownOperator, "%q", name)
	}
	return Operator(name), nil
}
