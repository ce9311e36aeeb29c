// Package shape classifies values as plain mappings or leaves.
//
// The classification gates every recursive step in mapkit: deep merge,
// flattening and deep traversal only ever descend into values for which
// IsPlain returns true. The rule is a closed sum type rather than runtime
// introspection:
//
//   - ShapePlain: a non-nil *omap.Map
//   - ShapeLeaf: any other present value (slices, scalars, structs, native maps)
//   - ShapeAbsent: nil, including typed nils
//
// Classification is total and stable. Values that cross an untyped boundary
// as native Go maps are leaves (a documented false negative) until converted
// with omap.FromNative.
package shape
