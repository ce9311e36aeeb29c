package shape

import (
	"reflect"

	"mapkit/omap"
)

// IsEmpty reports whether v has no members to enumerate.
//
// Absent values, empty mappings, zero-length strings, slices, arrays, native
// maps and channels are empty. Structs are empty when they have no exported
// fields. Scalars (numbers, bools, funcs) have no members and are empty.
// Pointers are followed. IsEmpty never panics.
func IsEmpty(v any) (empty bool) {
	defer func() {
		if recover() != nil {
			empty = false
		}
	}()

	if m, ok := v.(*omap.Map); ok {
		return m.Len() == 0
	}

	if v == nil {
		return true
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return true
		}

		if m, ok := rv.Interface().(*omap.Map); ok {
			return m.Len() == 0
		}

		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.String, reflect.Slice, reflect.Array, reflect.Map, reflect.Chan:
		return rv.Len() == 0
	case reflect.Struct:
		if m, ok := rv.Interface().(omap.Map); ok {
			return m.Len() == 0
		}

		for i := range rv.NumField() {
			if rv.Type().Field(i).IsExported() {
				return false
			}
		}

		return true
	default:
		return true
	}
}
