package operators

import (
	"reflect"
	"strings"
	"time"
)

// equal reports whether two values compare equal, treating numeric
// values of different Go types as equal when their magnitudes match.
func equal(a, b any) bool {
	if reflect.DeepEqual(a, b) {
		return true
	}
	af, aok := toFloat(a)
	bf, bok := toFloat(b)
	return aok && bok && af == bf
}

// compare orders v against literal: -1, 0 or 1. ok is false when the
// pair has no defined ordering.
func compare(v, literal any) (int, bool) {
	if af, ok := toFloat(v); ok {
		bf, ok := toFloat(literal)
		if !ok {
			return 0, false
		}
		switch {
		case af < bf:
			return -1, true
		case af > bf:
			return 1, true
		}
		return 0, true
	}
	switch a := v.(type) {
	case string:
		b, ok := literal.(string)
		if !ok {
			return 0, false
		}
		return strings.Compare(a, b), true
	case time.Time:
		b, ok := timeValue(literal)
		if !ok {
			return 0, false
		}
		switch {
		case a.Before(b):
			return -1, true
		case a.After(b):
			return 1, true
		}
		return 0, true
	}
	return 0, false
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

func timeValue(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case *time.Time:
		if t != nil {
			return *t, true
		}
	}
	return time.Time{}, false
}

// isoWeekday numbers Monday=1 through Sunday=7.
func isoWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

// truthy mirrors the loose truthiness the isnull literal is tested with:
// nil and false are false, zero numbers and empty strings are false,
// everything else is true.
func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	}
	if f, ok := toFloat(v); ok {
		return f != 0
	}
	return true
}

// elements flattens a slice or array literal into []any.
func elements(literal any) ([]any, bool) {
	if literal == nil {
		return nil, false
	}
	if vs, ok := literal.([]any); ok {
		return vs, true
	}
	v := reflect.ValueOf(literal)
	if v.Kind() != reflect.Slice && v.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, v.Len())
	for i := range out {
		out[i] = v.Index(i).Interface()
	}
	return out, true
}
