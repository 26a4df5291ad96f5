package registry

import (
	"slices"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"digital.vasic.corespec/pkg/scenario"
)

func noop() error { return nil }

func groupNames(r *Registry) []string {
	var names []string
	for g := range r.AllGroups() {
		names = append(names, g.Name())
	}
	return names
}

func TestRegistry_DeclareTree(t *testing.T) {
	r := New()

	arr, err := r.DeclareGroup("Array")
	require.NoError(t, err)
	take, err := arr.DeclareGroup("#take")
	require.NoError(t, err)
	require.NoError(t, take.DeclareCase("returns first n", noop))
	require.NoError(t, take.DeclareCase("raises on negative", noop))
	drop, err := arr.DeclareGroup("#drop", Pending())
	require.NoError(t, err)
	require.NoError(t, drop.DeclareCase("drops", noop))

	hash, err := r.DeclareGroup("Hash")
	require.NoError(t, err)
	require.NoError(t, hash.DeclareCase("stub", nil, Pending()))

	assert.Equal(t, 4, r.GroupCount())
	assert.Equal(t, 4, r.CaseCount())
	assert.Len(t, r.Roots(), 2)
	assert.Equal(t,
		[]string{"Array", "#take", "#drop", "Hash"},
		groupNames(r),
	)
	assert.Equal(t, []string{"Array", "#drop"}, drop.Group().Path())
	assert.True(t, drop.Group().Skipped())
	assert.False(t, take.Group().Skipped())
	assert.Same(t, arr.Group(), take.Group().Parent())
}

func TestRegistry_AllGroupsRestartable(t *testing.T) {
	r := New()
	a, _ := r.DeclareGroup("a")
	_, _ = a.DeclareGroup("b")
	_, _ = r.DeclareGroup("c")

	first := groupNames(r)
	second := groupNames(r)
	assert.Equal(t, []string{"a", "b", "c"}, first)
	assert.Equal(t, first, second)

	// Early exit stops the walk.
	var seen []string
	for g := range r.AllGroups() {
		seen = append(seen, g.Name())
		if g.Name() == "b" {
			break
		}
	}
	assert.Equal(t, []string{"a", "b"}, seen)
}

func TestRegistry_Entries(t *testing.T) {
	r := New()
	outer, _ := r.DeclareGroup("outer", Pending())
	inner, _ := outer.DeclareGroup("inner")
	require.NoError(t, inner.DeclareCase("deep", noop))
	live, _ := r.DeclareGroup("live")
	require.NoError(t, live.DeclareCase("runs", noop))
	require.NoError(t, live.DeclareCase("stub", noop, PendingIf(true)))
	require.NoError(t, live.DeclareCase("runs", noop, PendingIf(false)))

	entries := slices.Collect(r.Entries())
	require.Len(t, entries, 4)

	assert.Equal(t, []string{"outer", "inner"}, entries[0].Path)
	assert.True(t, entries[0].Pending)
	assert.False(t, entries[0].Case.Pending())
	assert.Equal(t, "outer inner deep", entries[0].FullName())

	assert.False(t, entries[1].Pending)
	assert.True(t, entries[2].Pending)
	assert.False(t, entries[3].Pending)

	// Duplicate names are kept as separate cases.
	assert.Equal(t, entries[1].Case.Name(), entries[3].Case.Name())
	assert.NotSame(t, entries[1].Case, entries[3].Case)
}

func TestRegistry_ConfigurationErrors(t *testing.T) {
	r := New()

	_, err := r.DeclareGroup("")
	assert.True(t, scenario.IsConfiguration(err))

	_, err = r.DeclareGroup("   ")
	assert.True(t, scenario.IsConfiguration(err))

	g, err := r.DeclareGroup("g")
	require.NoError(t, err)

	err = g.DeclareCase("", noop)
	assert.True(t, scenario.IsConfiguration(err))

	err = g.DeclareCase("no action", nil)
	require.Error(t, err)
	assert.True(t, scenario.IsConfiguration(err))
	assert.Contains(t, err.Error(), "action must not be nil")

	assert.Equal(t, 1, r.GroupCount())
	assert.Equal(t, 0, r.CaseCount())
}

func TestRegistry_Seal(t *testing.T) {
	r := New()
	g, err := r.DeclareGroup("g")
	require.NoError(t, err)

	assert.False(t, r.Sealed())
	r.Seal()
	r.Seal()
	assert.True(t, r.Sealed())

	_, err = r.DeclareGroup("late")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "registry is sealed")

	err = g.DeclareCase("late", noop)
	assert.True(t, scenario.IsConfiguration(err))
	assert.Equal(t, 0, r.CaseCount())
}

func TestRegistry_ConcurrentDeclaration(t *testing.T) {
	r := New()
	g, err := r.DeclareGroup("g")
	require.NoError(t, err)

	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = g.DeclareCase("c", noop)
		}()
	}
	wg.Wait()

	assert.Equal(t, 20, r.CaseCount())
	assert.Len(t, r.Children(g.Group()), 20)
}
