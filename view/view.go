// Package view builds derived mappings and iterates over mappings.
//
// Every function here reads its input without changing it; the ones that
// return a mapping return a new one. A nil input behaves like an empty
// mapping.
package view

import (
	"fmt"

	"mapkit/internal/walk"
	"mapkit/omap"
)

// Each calls fn for every entry of m in order until fn returns false.
func Each(m *omap.Map, fn func(key string, value any, m *omap.Map) bool) {
	for i := range m.Len() {
		k, v := m.At(i)
		if !fn(k, v, m) {
			return
		}
	}
}

// EachDeep calls fn for every entry of m and, right after an entry whose
// value is a *omap.Map or a []any, for the entries of that value. Slice
// entries are keyed by their decimal index. container is the *omap.Map or
// []any holding the entry.
//
// Returning false from fn skips the value just visited and the rest of the
// container being iterated; iteration resumes with the next entry of the
// enclosing container. A container nested inside itself is visited as a
// plain entry and not entered again. Native Go maps such as map[string]any
// are leaves; convert them with omap.FromNative to iterate into them.
func EachDeep(m *omap.Map, fn func(key string, value any, container any) bool) {
	if m == nil {
		return
	}

	walk.Walk(m, walk.DescendAll, func(s *walk.Step) walk.Action {
		if !fn(s.Key, s.Value, s.Container) {
			return walk.SkipSiblings
		}

		return walk.Continue
	})
}

// MapValues returns a mapping with the keys of m and the values fn returns
// for them.
func MapValues(m *omap.Map, fn func(key string, value any) any) *omap.Map {
	out := omap.NewWithCapacity(m.Len())

	for k, v := range m.All() {
		out.Set(k, fn(k, v))
	}

	return out
}

// MapValuesDeep is MapValues applied recursively: a plain mapping value is
// not passed to fn but replaced by its own mapped copy. A mapping nested
// inside itself is passed to fn like any other value.
func MapValuesDeep(m *omap.Map, fn func(key string, value any) any) *omap.Map {
	out := omap.NewWithCapacity(m.Len())
	if m == nil {
		return out
	}

	outs := []*omap.Map{out}

	walk.Walk(m, walk.DescendPlain, func(s *walk.Step) walk.Action {
		parent := outs[s.Depth]

		if !s.Descend {
			parent.Set(s.Key, fn(s.Key, s.Value))
			return walk.Continue
		}

		sub := omap.NewWithCapacity(s.Value.(*omap.Map).Len())
		parent.Set(s.Key, sub)
		outs = append(outs[:s.Depth+1], sub)

		return walk.Continue
	})

	return out
}

// Filter returns the entries of src whose keys appear in samples, in the
// order samples lists them. samples is a single string key, a []string, a
// []any whose elements are formatted with fmt.Sprint, or a *omap.Map whose
// keys are used. Any other samples value is reported as an
// *omap.ArgumentError.
func Filter(src *omap.Map, samples any) (*omap.Map, error) {
	keys, ok := keysOf(samples)
	if !ok {
		return nil, &omap.ArgumentError{Op: "filter", Arg: "samples", Value: samples}
	}

	out := omap.NewWithCapacity(len(keys))

	for _, k := range keys {
		if v, ok := src.Get(k); ok {
			out.Set(k, v)
		}
	}

	return out, nil
}

// Delete returns a copy of m without the given keys. keys takes the same
// forms as the samples of Filter; any other value removes nothing.
func Delete(m *omap.Map, keys any) *omap.Map {
	out := m.Clone()
	if out == nil {
		out = omap.New()
	}

	names, _ := keysOf(keys)
	for _, k := range names {
		out.Delete(k)
	}

	return out
}

// Grep returns the entries of m for which pred returns true.
func Grep(m *omap.Map, pred func(key string, value any) bool) *omap.Map {
	out := omap.New()

	for k, v := range m.All() {
		if pred(k, v) {
			out.Set(k, v)
		}
	}

	return out
}

func keysOf(v any) ([]string, bool) {
	switch t := v.(type) {
	case string:
		return []string{t}, true
	case []string:
		return t, true
	case []any:
		keys := make([]string, len(t))
		for i, e := range t {
			keys[i] = fmt.Sprint(e)
		}

		return keys, true
	case *omap.Map:
		if t == nil {
			return nil, false
		}

		return t.Keys(), true
	default:
		return nil, false
	}
}
