package corelib

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"digital.vasic.corespec/pkg/expect"
	"digital.vasic.corespec/pkg/scenario"
)

func call(t *testing.T, name string, recv any, args ...any) (any, error) {
	t.Helper()
	op, ok := Catalog().Lookup(name)
	require.True(t, ok, "missing operation %s", name)
	return op(recv, args...)
}

func TestCatalog_Results(t *testing.T) {
	seq := ints(1, 2, 3, 4, 5)
	abc := map[string]any{"a": 1, "b": 2, "c": 3}

	tests := []struct {
		name string
		op   string
		recv any
		args []any
		want any
	}{
		{"drop", "sequence.drop", seq, []any{3}, ints(4, 5)},
		{"drop_while", "sequence.drop_while", seq, []any{map[string]any{"lt": 3}}, ints(3, 4, 5)},
		{"take", "sequence.take", seq, []any{2}, ints(1, 2)},
		{"take_while", "sequence.take_while", seq, []any{"odd"}, ints(1)},
		{"count", "sequence.count", seq, nil, 5},
		{"count item", "sequence.count", ints(5, 5, 6), []any{5}, 2},
		{"count_if", "sequence.count_if", seq, []any{"even"}, 2},
		{"cycle with block", "sequence.cycle", ints(1), []any{5, "identity"}, nil},
		{"cycle_values", "sequence.cycle_values", ints(1), []any{3}, ints(1, 1, 1)},
		{"detect", "sequence.detect", seq, []any{map[string]any{"eq": 5}}, 5},
		{"detect none", "sequence.detect", seq, []any{map[string]any{"eq": 9001}}, nil},
		{"detect ifnone", "sequence.detect", seq, []any{map[string]any{"eq": 9001}, "nope!"}, "nope!"},
		{"collect", "sequence.collect", []any{"grumpy"}, []any{map[string]any{"append": " cat"}}, []any{"grumpy cat"}},
		{"collect const", "sequence.collect", ints(1, 2), []any{map[string]any{"const": "asdf"}}, []any{"asdf", "asdf"}},
		{"collect_concat", "sequence.collect_concat", ints(1, 2), []any{"pair_double"}, ints(1, 2, 2, 4)},
		{"all", "sequence.all", []any{"a", "be"}, []any{map[string]any{"len_lt": 5}}, true},
		{"all truthy", "sequence.all", []any{false, nil, true}, nil, false},
		{"any", "sequence.any", []any{false, nil, true}, []any{map[string]any{"eq": true}}, true},
		{"words", "sequence.words", "foo bar baz", nil, []any{"foo", "bar", "baz"}},
		{"range", "sequence.range", nil, []any{1, 3}, ints(1, 2, 3)},
		{"index_by", "sequence.index_by", ints(0, 1), nil, map[any]any{0: 0, 1: 1}},
		{"next", "enumerator.next", ints(7, 8), []any{2}, 8},
		{"peek", "enumerator.peek", ints(7, 8), nil, ints(7, 7, 7)},
		{"rewind", "enumerator.rewind", ints(7, 8), []any{2}, 7},
		{"size", "enumerator.size", ints(7, 8), nil, 2},
		{"with_index", "enumerator.with_index", []any{"a"}, nil, []any{[]any{"a", 0}}},
		{"hash get", "hash.get", map[string]any{"key": "value"}, []any{"key"}, "value"},
		{"hash get missing", "hash.get", map[string]any{}, []any{"key"}, nil},
		{"hash get_default", "hash.get_default", nil, []any{"hello", "a"}, "hello"},
		{"hash get_proc", "hash.get_proc", nil, []any{"x"}, "this is what I am: 'x'"},
		{"hash set", "hash.set", map[string]any{}, []any{"key", "value"}, "value"},
		{"hash try_convert int", "hash.try_convert", 123, nil, nil},
		{"hash lt", "hash.lt", map[string]any{"a": 1}, []any{abc}, true},
		{"hash ge", "hash.ge", abc, []any{abc}, true},
		{"hash equal", "hash.equal", abc, []any{map[string]any{"a": 1}}, false},
		{"hash any", "hash.any", abc, []any{map[string]any{"key_eq": "c"}}, true},
		{"hash assoc", "hash.assoc", abc, []any{"a"}, []any{"a", 1}},
		{"hash assoc missing", "hash.assoc", abc, []any{"z"}, nil},
		{"hash clear", "hash.clear", abc, nil, map[string]any{}},
		{"hash default", "hash.default", nil, []any{"default_value"}, "default_value"},
		{"hash default none", "hash.default", nil, nil, nil},
		{"casecmp", "string.casecmp", "aBc", []any{"abc"}, 0},
		{"casecmp?", "string.casecmp?", "aBc", []any{"abc"}, true},
		{"capitalize", "string.capitalize", "hELLO", nil, "Hello"},
		{"center", "string.center", "abc", []any{6, "*"}, "*abc**"},
		{"ljust default pad", "string.ljust", "ab", []any{4}, "ab  "},
		{"squeeze", "string.squeeze", "aaabbb", []any{"a"}, "abbb"},
		{"chars", "string.chars", "ab", nil, []any{"a", "b"}},
		{"compare", "compare", "asdf", []any{"asd"}, expect.Greater},
		{"compare cross type", "compare", "asdf", []any{1}, expect.Incomparable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := call(t, tt.op, tt.recv, tt.args...)
			require.NoError(t, err)
			assert.NoError(t, expect.Equal(got, tt.want))
		})
	}
}

func TestCatalog_Enumerators(t *testing.T) {
	for _, op := range []string{
		"sequence.each", "sequence.each_with_index",
		"sequence.collect", "sequence.collect_concat",
		"sequence.drop_while", "sequence.take_while",
	} {
		got, err := call(t, op, ints(1, 2))
		require.NoError(t, err, op)
		assert.NoError(t, expect.KindOf(got, "enumerator"), op)
	}

	got, err := call(t, "sequence.cycle", ints(1, 2), 3)
	require.NoError(t, err)
	assert.NoError(t, expect.TypeOf[*Enumerator](got))
}

func TestCatalog_Errors(t *testing.T) {
	tests := []struct {
		name    string
		op      string
		recv    any
		args    []any
		kind    string
		pattern string
	}{
		{"drop negative", "sequence.drop", ints(1), []any{-3}, "ArgumentError", "attempt to drop negative size"},
		{"drop no args", "sequence.drop", ints(5), nil, "ArgumentError", expect.Literal("wrong number of arguments (given 0, expected 1)")},
		{"drop arity pattern", "sequence.drop", ints(5), nil, "ArgumentError", ".*(wrong number of arguments)+.*(expected 1)+.*"},
		{"count range arity", "sequence.count", ints(5), []any{1, 2}, "ArgumentError", expect.Literal("(given 2, expected 0..1)")},
		{"not a sequence", "sequence.take", "abc", []any{1}, "TypeError", "into Array"},
		{"hash lt", "hash.lt", map[string]any{"a": 1}, []any{"not a hash"}, "TypeError", "(no implicit conversion of)|(into Hash)"},
		{"hash gt", "hash.gt", map[string]any{"a": 1}, []any{"not a hash"}, "TypeError", "into Hash"},
		{"next past end", "enumerator.next", ints(1), []any{2}, "StopIteration", "iteration reached an end"},
		{"unknown block", "sequence.count_if", ints(1), []any{"shiny"}, "ArgumentError", "unknown block shiny"},
		{"malformed block", "sequence.count_if", ints(1), []any{map[string]any{"eq": 1, "ne": 2}}, "ArgumentError", "malformed block"},
		{"zero padding", "string.center", "a", []any{3, ""}, "ArgumentError", "zero width padding"},
		{"endless cycle", "sequence.cycle", ints(1), []any{-1, "identity"}, "ArgumentError", "forever"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			op, ok := Catalog().Lookup(tt.op)
			require.True(t, ok)
			err := expect.Raises(func() error {
				_, err := op(tt.recv, tt.args...)
				return err
			}, expect.ErrorKind(tt.kind), tt.pattern)
			assert.NoError(t, err)
		})
	}
}

func TestCatalog_BlockArgumentErrors(t *testing.T) {
	op, _ := Catalog().Lookup("sequence.count_if")
	err := expect.Raises(func() error {
		_, err := op(ints(1), map[string]any{"len_lt": "x"})
		return err
	}, expect.As[*TypeError](), "into Integer")
	assert.NoError(t, err)

	assert.True(t, scenario.IsAssertion(expect.Raises(func() error {
		return nil
	}, expect.AnyError, "")))
}
