package suites

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"digital.vasic.corespec/pkg/registry"
	"digital.vasic.corespec/pkg/scenario"
)

type failingSuite struct{}

func (failingSuite) Name() string { return "failing" }

func (failingSuite) Declare(*registry.Declarer) error {
	return errors.New("boom")
}

func TestRegistry_Register(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(New("a", func(*registry.Declarer) {})))
	require.NoError(t, r.Register(New("b", func(*registry.Declarer) {})))

	assert.Equal(t, 2, r.Count())
	assert.Equal(t, []string{"a", "b"}, r.Names())

	s, ok := r.Get("a")
	require.True(t, ok)
	assert.Equal(t, "a", s.Name())

	_, ok = r.Get("missing")
	assert.False(t, ok)
}

func TestRegistry_RegisterErrors(t *testing.T) {
	tests := []struct {
		name  string
		suite Suite
		want  string
	}{
		{"nil suite", nil, "suite cannot be nil"},
		{"empty name", New("", func(*registry.Declarer) {}), "suite name cannot be empty"},
		{"duplicate", New("a", func(*registry.Declarer) {}), `suite "a" already registered`},
	}

	r := NewRegistry()
	require.NoError(t, r.Register(New("a", func(*registry.Declarer) {})))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := r.Register(tt.suite)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestRegistry_DeclareAll(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(New("one", func(d *registry.Declarer) {
		d.Describe("One", func() {
			d.It("works", func() error { return nil })
		})
	})))
	require.NoError(t, r.Register(New("two", func(d *registry.Declarer) {
		d.Describe("Two", func() {
			d.It("works", func() error { return nil })
		})
	})))

	t.Run("selected names in the given order", func(t *testing.T) {
		reg := registry.New()
		require.NoError(t, r.DeclareAll(registry.NewDeclarer(reg), "two", "one"))
		roots := reg.Roots()
		require.Len(t, roots, 2)
		assert.Equal(t, "Two", roots[0].Name())
		assert.Equal(t, "One", roots[1].Name())
	})

	t.Run("every suite when no names are given", func(t *testing.T) {
		reg := registry.New()
		require.NoError(t, r.DeclareAll(registry.NewDeclarer(reg)))
		assert.Equal(t, 2, reg.CaseCount())
	})

	t.Run("unknown suite", func(t *testing.T) {
		err := r.DeclareAll(registry.NewDeclarer(registry.New()), "three")
		require.Error(t, err)
		assert.Contains(t, err.Error(), `suite "three" not found`)
	})
}

func TestRegistry_DeclareAllCollectsErrors(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(failingSuite{}))
	require.NoError(t, r.Register(New("loose", func(d *registry.Declarer) {
		d.It("outside any group", func() error { return nil })
	})))

	err := r.DeclareAll(registry.NewDeclarer(registry.New()))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `declare suite "failing": boom`)
	assert.True(t, scenario.IsConfiguration(err))
}

func TestBuiltin_Names(t *testing.T) {
	assert.Equal(t,
		[]string{"array", "enumerable", "enumerator", "hash", "string", "files"},
		Builtin().Names(),
	)
}

func declared(t *testing.T, names ...string) *registry.Registry {
	t.Helper()
	reg := registry.New()
	require.NoError(t, Builtin().DeclareAll(registry.NewDeclarer(reg), names...))
	return reg
}

func TestBuiltin_AllExamplesPass(t *testing.T) {
	reg := declared(t)

	var executed, pending int
	for e := range reg.Entries() {
		if e.Pending {
			pending++
			continue
		}
		executed++
		assert.NoError(t, e.Case.Action()(), e.FullName())
	}
	assert.Greater(t, executed, 100)
	assert.Greater(t, pending, 0)
}

func TestBuiltin_ExamplesAreRepeatable(t *testing.T) {
	reg := declared(t)
	for range 2 {
		for e := range reg.Entries() {
			if !e.Pending {
				assert.NoError(t, e.Case.Action()(), e.FullName())
			}
		}
	}
}

func TestBuiltin_StubsStayPending(t *testing.T) {
	reg := declared(t, "hash")

	var pendingCases []string
	for e := range reg.Entries() {
		if e.Pending {
			pendingCases = append(pendingCases, e.FullName())
		}
	}
	assert.Equal(t, []string{
		"Hash Public Instance Methods hsh[key] = value implicitly returns the value that was assigned",
		"Hash Public Instance Methods #merge(a_hash) merge combines the contents of two hashes",
		"Hash Public Instance Methods #merge(a_hash) merge! mutates the hash in place",
		"Hash Public Instance Methods #reject returns a new hash of entries for which the hash returned false",
		"Hash Public Instance Methods #reject reject! mutates the object in place",
		"Hash Public Instance Methods #select returns a new hash of entries for which the hash returned true",
		"Hash Public Instance Methods #select select! mutates the object in place",
	}, pendingCases)

	for g := range reg.AllGroups() {
		if g.Name() == "#compare_by_identity" {
			assert.True(t, g.Pending())
			assert.Empty(t, reg.Children(g))
		}
	}
}

func TestBuiltin_DuplicateNamesAreKept(t *testing.T) {
	reg := declared(t, "string")

	counts := map[string]int{}
	for g := range reg.AllGroups() {
		counts[g.Name()]++
	}
	assert.Equal(t, 2, counts["length"])
	assert.Equal(t, 2, counts["rindex"])
	assert.Equal(t, 2, counts["replace"])
	assert.Equal(t, 0, reg.CaseCount())
}

func TestFiles_DeclaresEmbeddedGroups(t *testing.T) {
	reg := declared(t, "files")

	var roots []string
	for _, g := range reg.Roots() {
		roots = append(roots, g.Name())
	}
	assert.Equal(t, []string{"Enumerable", "Enumerator", "Hash", "String"}, roots)

	s, ok := Builtin().Get("files")
	require.True(t, ok)
	assert.Equal(t, "files", s.Name())
}
