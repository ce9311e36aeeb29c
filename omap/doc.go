// Package omap provides Map, the ordered string-keyed mapping every other
// mapkit package operates on.
//
// A *Map is the only value mapkit treats as a "plain" mapping: the unit that
// deep merge, flattening and deep traversal recurse into. Everything else,
// slices and native Go maps included, is an opaque leaf.
//
// # Order
//
// Iteration follows insertion order. Setting an existing key keeps its
// position; deleting a key keeps the relative order of the others. The JSON
// and YAML codecs preserve order in both directions.
//
// # Native values
//
// Data decoded by encoding/json or yaml.v3 into map[string]any has no order.
// FromNative converts such trees (sorting keys), ToNative goes the other way.
package omap
