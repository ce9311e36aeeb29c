package shape

import (
	"reflect"

	"mapkit/omap"
)

//go:generate go tool stringer -type=Shape -output=shape_string.go

type Shape int

const (
	ShapeAbsent Shape = iota // nil, or a typed nil pointer, map, slice, interface, func or chan
	ShapePlain               // non-nil *omap.Map, the only value merge and flatten recurse into
	ShapeLeaf                // everything else, arrays and domain types included
)

// Of classifies v. It never panics: a panic raised while probing an exotic
// value is recovered and the value is reported as ShapeLeaf.
func Of(v any) (s Shape) {
	defer func() {
		if recover() != nil {
			s = ShapeLeaf
		}
	}()

	switch t := v.(type) {
	case nil:
		return ShapeAbsent
	case *omap.Map:
		if t == nil {
			return ShapeAbsent
		}

		return ShapePlain
	case string, bool, int, int64, float64, []any:
		return ShapeLeaf
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		if rv.IsNil() {
			return ShapeAbsent
		}
	}

	return ShapeLeaf
}

// IsPlain reports whether v is a plain mapping, i.e. a non-nil *omap.Map.
//
// Native Go maps are not plain: they have no order. Convert them with
// omap.FromNative first.
func IsPlain(v any) bool {
	return Of(v) == ShapePlain
}

// IsLeaf reports whether v is present and not a plain mapping.
func IsLeaf(v any) bool {
	return Of(v) == ShapeLeaf
}
