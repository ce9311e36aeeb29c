// Package flat converts plain mappings to and from lists of leaf entries.
//
// Flatten lists every leaf of a mapping together with the key path that
// reaches it. Make and MakeIn go the other way and build the nested
// mappings a path requires. Unflatten replays a whole list of entries.
package flat

import (
	"fmt"
	"slices"

	"mapkit/internal/pathexpr"
	"mapkit/internal/walk"
	"mapkit/omap"
	"mapkit/shape"
)

// Entry is one leaf of a flattened mapping.
type Entry struct {
	Keys  []string
	Value any
}

// String renders the entry as "a.b.c=value".
func (e Entry) String() string {
	return fmt.Sprintf("%s=%v", pathexpr.Format(e.Keys), e.Value)
}

// Flatten lists the leaves of v in pre-order, following key order.
//
// Only plain mappings are descended into: slices and every other value are
// leaves, and so is a mapping that contains itself. An empty nested mapping
// has no leaves and contributes nothing. Flatten returns an empty list when
// v is not a plain mapping.
func Flatten(v any) []Entry {
	entries := []Entry{}

	if !shape.IsPlain(v) {
		return entries
	}

	walk.Walk(v, walk.DescendPlain, func(s *walk.Step) walk.Action {
		if !s.Descend {
			entries = append(entries, Entry{Keys: slices.Clone(s.Path), Value: s.Value})
		}

		return walk.Continue
	})

	return entries
}

// Make builds the nested mappings path requires into a new mapping and
// stores value at its end.
func Make(path []string, value any) *omap.Map {
	m := omap.New()
	makeIn(m, path, value)

	return m
}

// MakeIn builds path into container and stores value at its end, then
// returns container.
//
// Each intermediate key descends into the plain mapping already stored there;
// any other value under an intermediate key is replaced by a new empty
// mapping. The last key is assigned directly. An empty path leaves container
// unchanged.
//
// container must be a non-nil *omap.Map; anything else is reported as an
// *omap.ArgumentError.
func MakeIn(container any, path []string, value any) (*omap.Map, error) {
	m, ok := container.(*omap.Map)
	if !ok || m == nil {
		return nil, &omap.ArgumentError{Op: "make", Arg: "container", Value: container}
	}

	makeIn(m, path, value)

	return m, nil
}

// Unflatten rebuilds a mapping from entries. Entries without keys are
// skipped; a later entry overwrites what an earlier one built on the same
// path.
func Unflatten(entries []Entry) *omap.Map {
	m := omap.New()

	for _, e := range entries {
		makeIn(m, e.Keys, e.Value)
	}

	return m
}

func makeIn(m *omap.Map, path []string, value any) {
	if len(path) == 0 {
		return
	}

	cur := m
	for _, k := range path[:len(path)-1] {
		next, ok := cur.Value(k).(*omap.Map)
		if !ok || next == nil {
			next = omap.New()
			cur.Set(k, next)
		}

		cur = next
	}

	cur.Set(path[len(path)-1], value)
}
