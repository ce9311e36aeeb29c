package deep

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mapkit/omap"
)

func assertMapEqual(t *testing.T, want, got *omap.Map) {
	t.Helper()

	if diff := cmp.Diff(want.ToNative(), got.ToNative()); diff != "" {
		t.Fatalf("mapping mismatch (-want +got):\n%s", diff)
	}

	// order is part of equality
	assert.True(t, want.Equal(got), "want %s, got %s", want, got)
}

func TestAssign_LeafLevelMerge(t *testing.T) {
	got := Assign(omap.New(), omap.Of("a", omap.Of("b", 1)), omap.Of("a", omap.Of("c", 2)))

	assertMapEqual(t, omap.Of("a", omap.Of("b", 1, "c", 2)), got)
}

func TestAssign_LeafReplacesSubtree(t *testing.T) {
	got := Assign(omap.New(), omap.Of("a", omap.Of("b", 1)), omap.Of("a", 5))

	assertMapEqual(t, omap.Of("a", 5), got)
}

func TestAssign_SubtreeReplacesLeaf(t *testing.T) {
	got := Assign(omap.Of("a", 5), omap.Of("a", omap.Of("b", 1)))

	assertMapEqual(t, omap.Of("a", omap.Of("b", 1)), got)
}

func TestAssign_LastSourceWinsDeep(t *testing.T) {
	first := omap.Of("srv", omap.Of("http", omap.Of("port", 80, "host", "a")), "name", "one")
	second := omap.Of("srv", omap.Of("http", omap.Of("port", 8080)))
	third := omap.Of("name", "three", "extra", true)

	got := Assign(nil, first, second, third)

	want := omap.Of(
		"srv", omap.Of("http", omap.Of("port", 8080, "host", "a")),
		"name", "three",
		"extra", true,
	)
	assertMapEqual(t, want, got)
}

func TestAssign_NeverAliasesSources(t *testing.T) {
	inner := omap.Of("leaf", 1)
	src := omap.Of("a", omap.Of("b", inner))

	got := Assign(omap.New(), src)

	gotA := got.Value("a").(*omap.Map)
	gotB := gotA.Value("b").(*omap.Map)

	assert.NotSame(t, src.Value("a"), gotA)
	assert.NotSame(t, inner, gotB)

	gotB.Set("leaf", 2)
	gotB.Set("added", true)

	assert.Equal(t, 1, inner.Value("leaf"))
	assert.False(t, inner.Has("added"))
}

func TestAssign_DoesNotMutateTargetSubtrees(t *testing.T) {
	before := omap.Of("b", 1)
	target := omap.Of("a", before, "keep", "x")

	got := Assign(target, omap.Of("a", omap.Of("c", 2)))

	assert.Same(t, target, got)
	assert.NotSame(t, before, got.Value("a"))
	assertMapEqual(t, omap.Of("b", 1), before)
	assertMapEqual(t, omap.Of("a", omap.Of("b", 1, "c", 2), "keep", "x"), got)
}

func TestAssign_LeavesAreShared(t *testing.T) {
	list := []any{omap.Of("x", 1)}
	src := omap.Of("list", list)

	got := Assign(nil, src)

	gotList := got.Value("list").([]any)
	require.Len(t, gotList, 1)
	assert.Same(t, &list[0], &gotList[0])
}

func TestAssign_KeyOrder(t *testing.T) {
	target := omap.Of("a", 1, "b", 2)
	got := Assign(target, omap.Of("c", 3, "a", 10))

	assert.Equal(t, []string{"a", "b", "c"}, got.Keys())
	assert.Equal(t, 10, got.Value("a"))
}

func TestAssign_NoSources(t *testing.T) {
	target := omap.Of("a", omap.Of("b", 1))
	inner := target.Value("a")

	got := Assign(target)

	assert.Same(t, target, got)
	assert.Same(t, inner, got.Value("a"))
	assert.NotNil(t, Assign(nil))
	assert.Equal(t, 0, Assign(nil, nil, nil).Len())
}

func TestAssign_CyclicSourceTerminates(t *testing.T) {
	src := omap.Of("a", 1)
	src.Set("self", src)

	got := Assign(nil, src)

	assert.Equal(t, 1, got.Value("a"))

	self := got.Value("self").(*omap.Map)
	assert.NotSame(t, src, self)
	assert.Same(t, self, self.Value("self"))
	assert.Equal(t, 1, self.Value("a"))
}

// assignWithin fails the test when Assign does not return in time.
func assignWithin(t *testing.T, target *omap.Map, sources ...*omap.Map) *omap.Map {
	t.Helper()

	done := make(chan *omap.Map, 1)

	go func() {
		done <- Assign(target, sources...)
	}()

	select {
	case got := <-done:
		return got
	case <-time.After(5 * time.Second):
		t.Fatal("Assign did not return")
		return nil
	}
}

func TestAssign_SourceReferencesTarget(t *testing.T) {
	target := omap.New()

	got := assignWithin(t, target, omap.Of("x", target))

	assert.Same(t, target, got)
	assertMapEqual(t, omap.Of("x", omap.New()), got)
	assert.NotSame(t, target, got.Value("x"))

	target = omap.Of("a", 1, "sub", omap.Of("b", 2))

	got = assignWithin(t, target, omap.Of("x", target))

	want := omap.Of(
		"a", 1,
		"sub", omap.Of("b", 2),
		"x", omap.Of("a", 1, "sub", omap.Of("b", 2)),
	)
	assertMapEqual(t, want, got)
	assert.NotSame(t, got.Value("sub"), got.Value("x").(*omap.Map).Value("sub"))
}

func TestAssign_SourceIsTarget(t *testing.T) {
	target := omap.Of("a", 1, "sub", omap.Of("b", omap.Of("c", 3)))

	got := assignWithin(t, target, target)

	assert.Same(t, target, got)
	assertMapEqual(t, omap.Of("a", 1, "sub", omap.Of("b", omap.Of("c", 3))), got)
}

func TestAssign_SourceIsTargetSubtree(t *testing.T) {
	sub := omap.Of("b", 1)
	target := omap.Of("sub", sub)

	got := assignWithin(t, target, omap.Of("sub", omap.Of("inner", sub)), sub)

	want := omap.Of(
		"sub", omap.Of("b", 1, "inner", omap.Of("b", 1)),
		"b", 1,
	)
	assertMapEqual(t, want, got)
	assertMapEqual(t, omap.Of("b", 1), sub)
}

func TestAssign_SourceCycleThroughTarget(t *testing.T) {
	src := omap.New()
	target := omap.Of("s", src)
	src.Set("a", target)

	got := assignWithin(t, target, src)

	a := got.Value("a").(*omap.Map)
	s := a.Value("s").(*omap.Map)

	assert.Same(t, s, s.Value("a").(*omap.Map).Value("s"))
	assert.NotSame(t, src, s)
	assert.Same(t, src, got.Value("s"))
}

func TestMerge_LeavesSourcesUntouched(t *testing.T) {
	a := omap.Of("x", omap.Of("y", 1))
	b := omap.Of("x", omap.Of("z", 2))

	got := Merge(a, b)

	assertMapEqual(t, omap.Of("x", omap.Of("y", 1, "z", 2)), got)
	assertMapEqual(t, omap.Of("x", omap.Of("y", 1)), a)
	assertMapEqual(t, omap.Of("x", omap.Of("z", 2)), b)
}

func TestClone(t *testing.T) {
	assert.Nil(t, Clone(nil))

	leaf := []any{1}
	m := omap.Of("a", omap.Of("b", omap.Of("c", leaf)))

	c := Clone(m)
	assertMapEqual(t, m, c)

	cb := c.Value("a").(*omap.Map).Value("b").(*omap.Map)
	mb := m.Value("a").(*omap.Map).Value("b").(*omap.Map)

	assert.NotSame(t, mb, cb)
	cb.Set("c", "changed")
	assert.Equal(t, leaf, mb.Value("c"))
}

func TestClone_KeepsCycles(t *testing.T) {
	m := omap.Of("a", 1)
	inner := omap.Of("up", m)
	m.Set("inner", inner)

	c := Clone(m)

	ci := c.Value("inner").(*omap.Map)
	assert.NotSame(t, inner, ci)
	assert.Same(t, c, ci.Value("up"))
	assert.Same(t, m, inner.Value("up"))
}
