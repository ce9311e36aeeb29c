package walk

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"mapkit/omap"
)

// trace records "path(flags)" for every visit.
func trace(root any, mode Mode, decide func(*Step) Action) []string {
	var out []string

	Walk(root, mode, func(s *Step) Action {
		entry := strings.Join(s.Path, ".")
		if s.Descend {
			entry += "+"
		}

		if s.Cycle {
			entry += "@"
		}

		out = append(out, entry)

		if decide != nil {
			return decide(s)
		}

		return Continue
	})

	return out
}

func sample() *omap.Map {
	return omap.Of(
		"name", omap.Of("a", 1, "c", omap.Of("aa", 11, "bb", 22)),
		"list", []any{"x", omap.Of("k", "v")},
		"id", 1000,
	)
}

func TestWalk_PreOrder(t *testing.T) {
	got := trace(sample(), DescendPlain, nil)

	assert.Equal(t, []string{
		"name+", "name.a", "name.c+", "name.c.aa", "name.c.bb",
		"list", "id",
	}, got)
}

func TestWalk_DescendSlices(t *testing.T) {
	got := trace(sample(), DescendAll, nil)

	assert.Equal(t, []string{
		"name+", "name.a", "name.c+", "name.c.aa", "name.c.bb",
		"list+", "list.0", "list.1+", "list.1.k", "id",
	}, got)
}

func TestWalk_SliceRoot(t *testing.T) {
	root := []any{omap.Of("a", 1)}

	assert.Empty(t, trace(root, DescendPlain, nil))
	assert.Equal(t, []string{"0+", "0.a"}, trace(root, DescendAll, nil))
}

func TestWalk_NonContainerRoot(t *testing.T) {
	var nilMap *omap.Map

	assert.Empty(t, trace(nil, DescendAll, nil))
	assert.Empty(t, trace(nilMap, DescendAll, nil))
	assert.Empty(t, trace(42, DescendAll, nil))
}

func TestWalk_Actions(t *testing.T) {
	tests := []struct {
		name   string
		decide func(*Step) Action
		want   []string
	}{
		{
			name: "skip children",
			decide: func(s *Step) Action {
				if s.Key == "c" {
					return SkipChildren
				}
				return Continue
			},
			want: []string{"name+", "name.a", "name.c+", "list", "id"},
		},
		{
			name: "skip siblings",
			decide: func(s *Step) Action {
				if s.Key == "a" {
					return SkipSiblings
				}
				return Continue
			},
			want: []string{"name+", "name.a", "list", "id"},
		},
		{
			name: "stop",
			decide: func(s *Step) Action {
				if s.Key == "aa" {
					return Stop
				}
				return Continue
			},
			want: []string{"name+", "name.a", "name.c+", "name.c.aa"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, trace(sample(), DescendPlain, tt.decide))
		})
	}
}

func TestWalk_DetectsCycles(t *testing.T) {
	root := omap.Of("a", 1)
	child := omap.Of("back", root)
	root.Set("child", child)
	root.Set("self", root)

	got := trace(root, DescendPlain, nil)
	assert.Equal(t, []string{"a", "child+", "child.back@", "self@"}, got)

	list := []any{nil}
	list[0] = list

	assert.Equal(t, []string{"0@"}, trace(list, DescendAll, nil))
}

func TestWalk_SlicePrefixIsNotACycle(t *testing.T) {
	list := make([]any, 2)
	list[0] = "a"
	list[1] = list[:1]

	assert.Equal(t, []string{"0", "1+", "1.0"}, trace(list, DescendAll, nil))

	list[0] = list[:2]
	assert.Equal(t, []string{"0@", "1+", "1.0@"}, trace(list, DescendAll, nil))
}

func TestWalk_SharedSubtreeIsNotACycle(t *testing.T) {
	shared := omap.Of("x", 1)
	root := omap.Of("a", shared, "b", shared)

	got := trace(root, DescendPlain, nil)
	assert.Equal(t, []string{"a+", "a.x", "b+", "b.x"}, got)
}

func TestWalk_StepContext(t *testing.T) {
	root := sample()

	var containers []any
	var depths []int

	Walk(root, DescendPlain, func(s *Step) Action {
		if s.Key == "bb" {
			containers = append(containers, s.Container)
			depths = append(depths, s.Depth)
		}
		return Continue
	})

	nameC := root.Value("name").(*omap.Map).Value("c")

	assert.Equal(t, []any{nameC}, containers)
	assert.Equal(t, []int{2}, depths)
}
