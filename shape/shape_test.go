package shape

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"mapkit/omap"
)

type person struct {
	Name string
}

type hidden struct {
	name string
}

func TestOf(t *testing.T) {
	var nilMap *omap.Map
	var nilSlice []any
	var nilPtr *person
	var nilFunc func()

	tests := []struct {
		name  string
		value any
		want  Shape
	}{
		{"untyped nil", nil, ShapeAbsent},
		{"nil *omap.Map", nilMap, ShapeAbsent},
		{"nil slice", nilSlice, ShapeAbsent},
		{"nil pointer", nilPtr, ShapeAbsent},
		{"nil func", nilFunc, ShapeAbsent},
		{"empty mapping", omap.New(), ShapePlain},
		{"nested mapping", omap.Of("a", omap.Of("b", 1)), ShapePlain},
		{"array", []any{1, 2}, ShapeLeaf},
		{"typed array", [2]int{1, 2}, ShapeLeaf},
		{"string", "s", ShapeLeaf},
		{"number", 3.5, ShapeLeaf},
		{"bool", false, ShapeLeaf},
		{"domain type", person{Name: "x"}, ShapeLeaf},
		{"pointer to domain type", &person{}, ShapeLeaf},
		{"native map", map[string]any{"a": 1}, ShapeLeaf},
		{"omap.Map value", omap.Map{}, ShapeLeaf},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Of(tt.value))
			assert.Equal(t, tt.want == ShapePlain, IsPlain(tt.value))
			assert.Equal(t, tt.want == ShapeLeaf, IsLeaf(tt.value))
		})
	}
}

func TestOf_Stable(t *testing.T) {
	m := omap.Of("a", 1)
	for range 3 {
		assert.True(t, IsPlain(m))
	}

	assert.Equal(t, 1, m.Len())
}

func TestIsEmpty(t *testing.T) {
	var nilMap *omap.Map

	tests := []struct {
		name  string
		value any
		want  bool
	}{
		{"nil", nil, true},
		{"nil mapping", nilMap, true},
		{"empty mapping", omap.New(), true},
		{"mapping", omap.Of("a", nil), false},
		{"empty string", "", true},
		{"string", "abc", false},
		{"empty slice", []any{}, true},
		{"slice", []int{1}, false},
		{"native map", map[string]int{"a": 1}, false},
		{"number", 42, true},
		{"bool", true, true},
		{"struct with exported field", person{}, false},
		{"struct without exported fields", hidden{}, true},
		{"pointer to struct", &person{}, false},
		{"pointer to mapping", &nilMap, true},
		{"mapping value", *omap.Of("a", 1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsEmpty(tt.value))
		})
	}
}

func TestShape_String(t *testing.T) {
	assert.Equal(t, "ShapePlain", ShapePlain.String())
	assert.Equal(t, "Shape(7)", Shape(7).String())
}
