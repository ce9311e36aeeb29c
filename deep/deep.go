// Package deep merges plain mappings.
//
// Merging is structural: a plain mapping in a source is merged key by key
// into a freshly built copy of the target's plain mapping at the same key,
// while every other value (slices included) replaces the target's value
// wholesale. The result never aliases a source's mappings.
package deep

import (
	"mapkit/internal/walk"
	"mapkit/omap"
	"mapkit/shape"
)

// Assign merges sources into target from left to right and returns target.
//
// For each key of a source:
//   - a plain mapping value is merged into a fresh mapping: a deep clone of
//     the target's value at that key when that value is plain, an empty
//     mapping otherwise. The fresh mapping replaces the target's value.
//   - any other value replaces the target's value by reference.
//
// Keys missing from a source are left untouched, so the last source that
// defines a leaf path wins without discarding sibling leaves of earlier
// sources.
//
// Assign takes exclusive mutable access to target for the duration of the
// call. The top-level target is mutated in place; a nil target starts from
// an empty mapping. Nil sources are skipped. Each source is read as it was
// when Assign started, so a source may refer to target or to its subtrees:
// Assign(t, omap.Of("x", t)) stores a copy of the old t at "x". A mapping
// nested inside itself is copied once and stored by reference where the
// cycle closes.
func Assign(target *omap.Map, sources ...*omap.Map) *omap.Map {
	if target == nil {
		target = omap.New()
	}

	for _, src := range sources {
		if src == nil {
			continue
		}

		assign(target, Clone(src))
	}

	return target
}

// Merge is the non-mutating form of Assign: it merges sources into a new
// mapping.
func Merge(sources ...*omap.Map) *omap.Map {
	return Assign(omap.New(), sources...)
}

// Clone returns a deep copy of m: every nested plain mapping is rebuilt,
// leaves are shared. A mapping nested inside itself is copied once and the
// copy refers to itself the same way. Clone(nil) returns nil.
func Clone(m *omap.Map) *omap.Map {
	if m == nil {
		return nil
	}

	out := omap.NewWithCapacity(m.Len())
	dsts := []*omap.Map{out}
	copies := map[*omap.Map]*omap.Map{m: out}

	walk.Walk(m, walk.DescendPlain, func(s *walk.Step) walk.Action {
		parent := dsts[s.Depth]

		switch {
		case s.Cycle:
			parent.Set(s.Key, copies[s.Value.(*omap.Map)])
		case s.Descend:
			src := s.Value.(*omap.Map)
			dup := omap.NewWithCapacity(src.Len())

			copies[src] = dup
			parent.Set(s.Key, dup)
			dsts = append(dsts[:s.Depth+1], dup)
		default:
			parent.Set(s.Key, s.Value)
		}

		return walk.Continue
	})

	return out
}

// assign merges src into dst. src must not be reachable from dst and must
// not change during the call. dsts[d] is the destination mapping for
// entries found at depth d of src.
func assign(dst, src *omap.Map) {
	dsts := []*omap.Map{dst}

	walk.Walk(src, walk.DescendPlain, func(s *walk.Step) walk.Action {
		parent := dsts[s.Depth]

		if !s.Descend {
			parent.Set(s.Key, s.Value)
			return walk.Continue
		}

		var fresh *omap.Map

		if existing, ok := parent.Get(s.Key); ok && shape.IsPlain(existing) {
			fresh = Clone(existing.(*omap.Map))
		} else {
			fresh = omap.New()
		}

		parent.Set(s.Key, fresh)
		dsts = append(dsts[:s.Depth+1], fresh)

		return walk.Continue
	})
}
