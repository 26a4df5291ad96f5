package expect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentical(t *testing.T) {
	m := map[string]int{}
	s := []int{1, 2}
	x := 3
	p := &x

	assert.NoError(t, Identical(m, m))
	assert.NoError(t, Identical(s, s))
	assert.NoError(t, Identical(p, p))

	err := Identical(map[string]int{}, map[string]int{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected the same instance")

	// Same backing array, different length.
	assert.Error(t, Identical(s[:1], s))
}

func TestDistinct(t *testing.T) {
	assert.NoError(t, Distinct(map[string]int{}, map[string]int{}))
	assert.NoError(t, Distinct([]int{1}, []int{1}))

	m := map[string]int{}
	err := Distinct(m, m)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected distinct instances")
}

func TestIdentity_ValuesWithoutIdentity(t *testing.T) {
	tests := []struct {
		name string
		v    any
	}{
		{"int", 1},
		{"string", "a"},
		{"nil", nil},
		{"empty slice", []int{}},
		{"struct", point{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Identical(tt.v, tt.v)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "has no identity")

			assert.Error(t, Distinct(tt.v, tt.v))
		})
	}
}
