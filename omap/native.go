package omap

import (
	"fmt"
	"slices"
)

// FromNative converts values decoded into Go's unordered containers into
// ordered ones: map[string]any and map[any]any become *Map (keys sorted,
// non-string keys formatted with fmt.Sprint), []any elements are converted
// recursively into a new slice. Anything else is returned unchanged.
//
// Native maps carry no order, so sorting is the only deterministic choice.
func FromNative(v any) any {
	switch t := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}

		slices.Sort(keys)

		m := NewWithCapacity(len(keys))
		for _, k := range keys {
			m.Set(k, FromNative(t[k]))
		}

		return m
	case map[any]any:
		byKey := make(map[string]any, len(t))
		for k, val := range t {
			byKey[fmt.Sprint(k)] = val
		}

		return FromNative(byKey)
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = FromNative(item)
		}

		return out
	default:
		return v
	}
}

// ToNative converts m into a map[string]any, recursing through nested *Map
// values and []any elements. Order is lost.
func (m *Map) ToNative() map[string]any {
	if m == nil {
		return nil
	}

	out := make(map[string]any, m.Len())
	for k, v := range m.All() {
		out[k] = toNative(v)
	}

	return out
}

func toNative(v any) any {
	switch t := v.(type) {
	case *Map:
		return t.ToNative()
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = toNative(item)
		}

		return out
	default:
		return v
	}
}
