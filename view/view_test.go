package view

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mapkit/omap"
)

func assertMap(t *testing.T, want, got *omap.Map) {
	t.Helper()
	assert.True(t, want.Equal(got), "want %s, got %s", want, got)
}

func TestEach_StopsOnFalse(t *testing.T) {
	m := omap.Of("a", 1, "b", 2, "c", 3)

	var seen []string

	Each(m, func(key string, value any, container *omap.Map) bool {
		assert.Same(t, m, container)
		seen = append(seen, key)

		return key != "b"
	})

	assert.Equal(t, []string{"a", "b"}, seen)
}

func TestEach_NilMap(t *testing.T) {
	Each(nil, func(string, any, *omap.Map) bool {
		t.Fatal("visited an entry of a nil mapping")
		return true
	})
}

func TestEachDeep(t *testing.T) {
	m := omap.Of(
		"a", omap.Of("b", 1, "c", 2),
		"list", []any{"x", omap.Of("k", "v")},
		"d", 3,
	)

	var seen []string

	EachDeep(m, func(key string, value any, container any) bool {
		seen = append(seen, key)
		return true
	})

	assert.Equal(t, []string{"a", "b", "c", "list", "0", "1", "k", "d"}, seen)
}

func TestEachDeep_FalseAbandonsCurrentContainerOnly(t *testing.T) {
	m := omap.Of(
		"a", omap.Of("b", 1, "stop", 2, "c", 3),
		"skip", omap.Of("never", 1),
		"d", 4,
	)

	var seen []string

	EachDeep(m, func(key string, value any, container any) bool {
		seen = append(seen, key)
		return key != "stop" && key != "skip"
	})

	// "stop" ends the walk of a, "skip" ends the walk of the root before d
	assert.Equal(t, []string{"a", "b", "stop", "skip"}, seen)
}

func TestEachDeep_FalseInNestedContainerResumesOuter(t *testing.T) {
	m := omap.Of(
		"a", omap.Of("b", 1, "c", 2),
		"d", 3,
	)

	var seen []string

	EachDeep(m, func(key string, value any, container any) bool {
		seen = append(seen, key)
		return key != "b"
	})

	assert.Equal(t, []string{"a", "b", "d"}, seen)
}

func TestEachDeep_NativeMapIsLeaf(t *testing.T) {
	m := omap.Of("native", map[string]any{"inner": 1}, "after", 2)

	var seen []string

	EachDeep(m, func(key string, value any, container any) bool {
		seen = append(seen, key)
		return true
	})

	assert.Equal(t, []string{"native", "after"}, seen)

	seen = nil

	EachDeep(omap.FromNative(m.ToNative()).(*omap.Map), func(key string, value any, container any) bool {
		seen = append(seen, key)
		return true
	})

	assert.Equal(t, []string{"after", "native", "inner"}, seen)
}

func TestEachDeep_Cycle(t *testing.T) {
	m := omap.Of("a", 1)
	m.Set("self", m)

	var seen []string

	EachDeep(m, func(key string, value any, container any) bool {
		seen = append(seen, key)
		return true
	})

	assert.Equal(t, []string{"a", "self"}, seen)
}

func TestMapValues(t *testing.T) {
	inner := omap.Of("x", 1)
	m := omap.Of("a", 1, "b", inner)

	got := MapValues(m, func(key string, value any) any {
		if n, ok := value.(int); ok {
			return n * 10
		}

		return value
	})

	assertMap(t, omap.Of("a", 10, "b", inner), got)
	assert.Same(t, inner, got.Value("b"))
	assert.Equal(t, 1, m.Value("a"))
}

func TestMapValuesDeep(t *testing.T) {
	list := []any{1, 2}
	m := omap.Of(
		"a", 1,
		"b", omap.Of("c", 2, "d", omap.Of("e", 3)),
		"list", list,
	)

	var called []string

	got := MapValuesDeep(m, func(key string, value any) any {
		called = append(called, key)

		if n, ok := value.(int); ok {
			return n + 100
		}

		return value
	})

	want := omap.Of(
		"a", 101,
		"b", omap.Of("c", 102, "d", omap.Of("e", 103)),
		"list", list,
	)

	assertMap(t, want, got)
	assert.Equal(t, []string{"a", "c", "e", "list"}, called)
	assert.NotSame(t, m.Value("b"), got.Value("b"))
	assertMap(t, omap.Of("c", 2, "d", omap.Of("e", 3)), m.Value("b").(*omap.Map))
}

func TestMapValuesDeep_NilAndCycle(t *testing.T) {
	identity := func(_ string, v any) any { return v }

	assert.Equal(t, 0, MapValuesDeep(nil, identity).Len())

	m := omap.Of("a", 1)
	m.Set("self", m)

	got := MapValuesDeep(m, identity)
	assert.Same(t, m, got.Value("self"))
}

func TestFilter(t *testing.T) {
	src := omap.Of("a", 100, "b", 200, "c", 300, "d", 400)

	tests := []struct {
		name    string
		samples any
		want    *omap.Map
	}{
		{name: "string slice", samples: []string{"a", "b"}, want: omap.Of("a", 100, "b", 200)},
		{name: "any slice", samples: []any{"b", "a"}, want: omap.Of("b", 200, "a", 100)},
		{name: "mapping keys", samples: omap.Of("a", 1, "b", 2), want: omap.Of("a", 100, "b", 200)},
		{name: "single key", samples: "c", want: omap.Of("c", 300)},
		{name: "missing keys ignored", samples: []string{"z", "d"}, want: omap.Of("d", 400)},
		{name: "empty samples", samples: []string{}, want: omap.New()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Filter(src, tt.samples)
			require.NoError(t, err)
			assertMap(t, tt.want, got)
		})
	}
}

func TestFilter_StringifiesSliceElements(t *testing.T) {
	src := omap.Of("1", "one", "2", "two")

	got, err := Filter(src, []any{2})
	require.NoError(t, err)
	assertMap(t, omap.Of("2", "two"), got)
}

func TestFilter_InvalidSamples(t *testing.T) {
	var nilMap *omap.Map

	for _, samples := range []any{nil, 42, nilMap, map[string]any{"a": 1}} {
		got, err := Filter(omap.Of("a", 1), samples)

		require.ErrorIs(t, err, omap.ErrInvalidArgument)
		assert.Nil(t, got)
	}
}

func TestFilter_NilSource(t *testing.T) {
	got, err := Filter(nil, []string{"a"})
	require.NoError(t, err)
	assert.Equal(t, 0, got.Len())
}

func TestDelete(t *testing.T) {
	tests := []struct {
		name string
		keys any
		want *omap.Map
	}{
		{name: "string slice", keys: []string{"a", "c"}, want: omap.Of("b", 2)},
		{name: "any slice", keys: []any{"a"}, want: omap.Of("b", 2, "c", 3)},
		{name: "mapping keys", keys: omap.Of("a", 1, "b", 2), want: omap.Of("c", 3)},
		{name: "single key", keys: "b", want: omap.Of("a", 1, "c", 3)},
		{name: "unknown shape", keys: 42, want: omap.Of("a", 1, "b", 2, "c", 3)},
		{name: "nil", keys: nil, want: omap.Of("a", 1, "b", 2, "c", 3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := omap.Of("a", 1, "b", 2, "c", 3)

			got := Delete(m, tt.keys)

			assertMap(t, tt.want, got)
			assertMap(t, omap.Of("a", 1, "b", 2, "c", 3), m)
		})
	}
}

func TestDelete_NilMap(t *testing.T) {
	got := Delete(nil, "a")
	require.NotNil(t, got)
	assert.Equal(t, 0, got.Len())
}

func TestGrep(t *testing.T) {
	m := omap.Of("app_name", "x", "app_port", 80, "debug", true)

	got := Grep(m, func(key string, _ any) bool {
		return strings.HasPrefix(key, "app_")
	})

	assertMap(t, omap.Of("app_name", "x", "app_port", 80), got)
	assert.Equal(t, 3, m.Len())
	assert.Equal(t, 0, Grep(nil, func(string, any) bool { return true }).Len())
}

func TestVisitorPanicsPropagate(t *testing.T) {
	assert.PanicsWithValue(t, "boom", func() {
		Grep(omap.Of("a", 1), func(string, any) bool { panic("boom") })
	})

	assert.PanicsWithValue(t, "boom", func() {
		EachDeep(omap.Of("a", 1), func(string, any, any) bool { panic("boom") })
	})
}
