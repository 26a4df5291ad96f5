package expect

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"digital.vasic.corespec/pkg/scenario"
)

func TestNewEngine_RegistersAllBuiltins(t *testing.T) {
	e := NewEngine()

	builtins := []string{
		"equals", "not_equals", "kind", "nil", "not_nil",
		"true", "false", "matches", "contains",
		"not_empty", "count", "ordering", "one_of",
		"distinct",
	}

	for _, name := range builtins {
		assert.True(t, e.HasEvaluator(name),
			"missing built-in evaluator: %s", name)
	}
}

func TestDefaultEngine_Register(t *testing.T) {
	e := NewEngine()

	err := e.Register("even", func(_ Definition, v any) error {
		n, _ := toInt(v)
		return True(n%2 == 0, "odd")
	})
	require.NoError(t, err)
	assert.True(t, e.HasEvaluator("even"))
	assert.NoError(t, e.Check([]Definition{{Type: "even"}}, 4))
	assert.Error(t, e.Check([]Definition{{Type: "even"}}, 3))

	err = e.Register("equals", func(Definition, any) error {
		return nil
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")
}

func TestDefaultEngine_Builtins(t *testing.T) {
	tests := []struct {
		name  string
		def   Definition
		value any
		pass  bool
	}{
		{"equals", Definition{Type: "equals", Value: []any{1, 2}}, []int{1, 2}, true},
		{"equals fails", Definition{Type: "equals", Value: 1}, 2, false},
		{"not_equals", Definition{Type: "not_equals", Value: 1}, 2, true},
		{"kind", Definition{Type: "kind", Value: "hash"}, map[string]int{}, true},
		{"kind fails", Definition{Type: "kind", Value: "array"}, "a", false},
		{"nil", Definition{Type: "nil"}, nil, true},
		{"nil fails", Definition{Type: "nil"}, 0, false},
		{"not_nil", Definition{Type: "not_nil"}, 0, true},
		{"true", Definition{Type: "true"}, true, true},
		{"false", Definition{Type: "false"}, true, false},
		{"matches", Definition{Type: "matches", Pattern: "^a.c$"}, "abc", true},
		{"matches fails", Definition{Type: "matches", Pattern: "^x"}, "abc", false},
		{"contains string", Definition{Type: "contains", Value: "bc"}, "abc", true},
		{"contains element", Definition{Type: "contains", Value: 2}, []any{1, 2.0}, true},
		{"contains key", Definition{Type: "contains", Value: "k"}, map[string]int{"k": 1}, true},
		{"contains fails", Definition{Type: "contains", Value: 9}, []int{1}, false},
		{"not_empty", Definition{Type: "not_empty"}, []int{1}, true},
		{"not_empty fails", Definition{Type: "not_empty"}, "", false},
		{"count", Definition{Type: "count", Value: 3}, []any{1, 2, 3}, true},
		{"count runes", Definition{Type: "count", Value: 2}, "hé", true},
		{"count fails", Definition{Type: "count", Value: 1}, map[string]int{}, false},
		{"ordering name", Definition{Type: "ordering", Value: "greater"}, Greater, true},
		{"ordering int", Definition{Type: "ordering", Value: -1}, -3, true},
		{"ordering nil", Definition{Type: "ordering"}, nil, true},
		{"ordering fails", Definition{Type: "ordering", Value: "less"}, 0, false},
		{"one_of", Definition{Type: "one_of", Values: []any{1, "a"}}, "a", true},
		{"one_of fails", Definition{Type: "one_of", Values: []any{1}}, 2, false},
		{"distinct", Definition{Type: "distinct"}, []any{1, 2, 3}, true},
		{"distinct fails", Definition{Type: "distinct"}, []any{1, 2, 1.0}, false},
	}

	e := NewEngine()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := e.Evaluate(tt.def, tt.value)
			assert.Equal(t, tt.pass, r.Passed, r.Message)
			assert.Equal(t, tt.def.Type, r.Type)
		})
	}
}

func TestDefaultEngine_Check(t *testing.T) {
	e := NewEngine()
	defs := []Definition{
		{Type: "kind", Value: "array"},
		{Type: "count", Value: 2},
		{Type: "equals", Value: []any{1, 3}, Message: "second"},
	}

	err := e.Check(defs, []any{1, 2})
	require.Error(t, err)

	var ae *scenario.AssertionError
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, KindEquality, ae.Kind)
	assert.Contains(t, ae.Message, "second: expected [1, 3]")

	assert.NoError(t, e.Check(defs[:2], []any{1, 2}))
}

func TestDefaultEngine_UnknownType(t *testing.T) {
	e := NewEngine()

	err := e.Check([]Definition{{Type: "nonexistent"}}, 1)
	require.Error(t, err)
	assert.True(t, scenario.IsConfiguration(err))

	r := e.Evaluate(Definition{Type: "nonexistent"}, 1)
	assert.False(t, r.Passed)
	assert.Contains(t, r.Message, "unknown type nonexistent")
}

func TestDefaultEngine_EvaluateAll(t *testing.T) {
	e := NewEngine()
	results := e.EvaluateAll([]Definition{
		{Type: "not_nil"},
		{Type: "nil"},
	}, "x")

	require.Len(t, results, 2)
	assert.True(t, results[0].Passed)
	assert.False(t, results[1].Passed)
}
