package accessor

import (
	"reflect"
	"strings"
	"time"
)

// Reflect resolves components against structs and string-keyed maps
// using reflection. Struct fields match by json tag first, then by
// case-insensitive field name. Slice-valued fields fan out into one
// value per element; everything else is a one-element sequence.
type Reflect struct{}

func (Reflect) Resolve(instance any, field string) ([]any, error) {
	v := reflect.ValueOf(instance)
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return []any{nil}, nil
		}
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.Map:
		if v.Type().Key().Kind() != reflect.String {
			return []any{nil}, nil
		}
		mv := v.MapIndex(reflect.ValueOf(field))
		if !mv.IsValid() {
			return []any{nil}, nil
		}
		return fanOut(mv.Interface()), nil
	case reflect.Struct:
		fv, ok := structField(v, field)
		if !ok {
			return []any{nil}, nil
		}
		return fanOut(fv.Interface()), nil
	}
	return []any{nil}, nil
}

func structField(v reflect.Value, field string) (reflect.Value, bool) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		if tagName(sf) == field {
			return v.Field(i), true
		}
	}
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if sf.IsExported() && strings.EqualFold(sf.Name, field) {
			return v.Field(i), true
		}
	}
	return reflect.Value{}, false
}

func tagName(sf reflect.StructField) string {
	tag, ok := sf.Tag.Lookup("json")
	if !ok {
		return ""
	}
	if i := strings.IndexByte(tag, ','); i >= 0 {
		tag = tag[:i]
	}
	return tag
}

// fanOut expands a resolved field value into the sequence the engine
// joins over. time.Time and []byte stay scalar even though one is a
// struct and the other a slice.
func fanOut(val any) []any {
	if val == nil {
		return []any{nil}
	}
	v := reflect.ValueOf(val)
	if v.Kind() == reflect.Pointer && v.IsNil() {
		return []any{nil}
	}
	switch val.(type) {
	case time.Time, *time.Time, []byte, string:
		return []any{val}
	}

	// Only slices fan out; arrays stay scalar so value types like
	// uuid.UUID ([16]byte) compare as a whole.
	if v.Kind() == reflect.Slice {
		out := make([]any, v.Len())
		for i := range out {
			out[i] = v.Index(i).Interface()
		}
		return out
	}
	return []any{val}
}
