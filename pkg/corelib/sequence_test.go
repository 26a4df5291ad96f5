package corelib

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ints(n ...int) []any {
	out := make([]any, len(n))
	for i, v := range n {
		out[i] = v
	}
	return out
}

func TestDrop(t *testing.T) {
	got, err := Drop(ints(1, 1, 1, 1, 1), 3)
	require.NoError(t, err)
	assert.Equal(t, ints(1, 1), got)

	got, err = Drop(ints(1, 2), 5)
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = Drop(ints(1), -3)
	var argErr *ArgumentError
	require.True(t, errors.As(err, &argErr))
	assert.Equal(t, "attempt to drop negative size", argErr.Message)
	assert.Equal(t, "ArgumentError", argErr.Kind())
}

func TestDropArgs(t *testing.T) {
	_, err := DropArgs(ints(5, 5))
	require.Error(t, err)
	assert.Equal(t,
		"wrong number of arguments (given 0, expected 1)", err.Error())

	_, err = DropArgs(ints(5), "x")
	var typeErr *TypeError
	require.True(t, errors.As(err, &typeErr))
	assert.Equal(t,
		"no implicit conversion of String into Integer", err.Error())

	got, err := DropArgs(ints(1, 2, 3, 4, 5), 3)
	require.NoError(t, err)
	assert.Equal(t, ints(4, 5), got)
}

func TestDropWhileAndTakeWhile(t *testing.T) {
	seq := ints(1, 2, 3, 4, 5, 6, 7, 8, 9, 0)
	notSix := func(v any) bool { return v != 6 }

	assert.Equal(t, ints(6, 7, 8, 9, 0), DropWhile(seq, notSix))
	assert.Equal(t, ints(1, 2, 3, 4, 5), TakeWhile(seq, notSix))
	assert.Equal(t, []any{}, DropWhile(seq, func(any) bool { return true }))
	assert.Equal(t, seq, TakeWhile(seq, func(any) bool { return true }))
}

func TestTake(t *testing.T) {
	got, err := Take(ints(1, 2, 3), 2)
	require.NoError(t, err)
	assert.Equal(t, ints(1, 2), got)

	_, err = Take(ints(1), -1)
	assert.Error(t, err)
}

func TestCounting(t *testing.T) {
	five := ints(1, 2, 3, 4, 5)
	even := func(v any) bool { return v.(int)%2 == 0 }

	assert.Equal(t, 5, Count(five))
	assert.Equal(t, 2, CountIf(five, even))
	assert.Equal(t, 5, CountOf(ints(5, 5, 5, 5, 5), 5))
	assert.Equal(t, 0, CountOf(ints(5, 5, 5, 5, 5), 6))
	assert.Equal(t, 1, CountOf(ints(1, 2), 2.0))
}

func TestCycle(t *testing.T) {
	var cycled []any
	result := CycleN(ints(1), 5, func(v any) { cycled = append(cycled, v) })
	assert.Nil(t, result)
	assert.Equal(t, ints(1, 1, 1, 1, 1), cycled)

	e := Cycle(ints(1, 2), 3)
	n, ok := e.Size()
	require.True(t, ok)
	assert.Equal(t, 6, n)
	assert.Equal(t, ints(1, 2, 1, 2, 1, 2), e.ToSlice())

	forever := Cycle(ints(1, 2), -1)
	_, ok = forever.Size()
	assert.False(t, ok)
	assert.Equal(t, ints(1, 2, 1, 2, 1), forever.Take(5))

	assert.Empty(t, Cycle(nil, -1).ToSlice())
}

func TestDetect(t *testing.T) {
	scope := Range(1, 10)
	isFive := func(v any) bool { return v == 5 }
	isBig := func(v any) bool { return v == 9001 }

	assert.Equal(t, 5, Detect(scope, isFive, nil))
	assert.Nil(t, Detect(scope, isBig, nil))
	assert.Equal(t, "nope!",
		Detect(scope, isBig, func() any { return "nope!" }))
}

func TestCollect(t *testing.T) {
	feelings := Words("grumpy hungry")
	cats := Collect(feelings, func(v any) any { return v.(string) + " cat" })
	assert.Equal(t, []any{"grumpy cat", "hungry cat"}, cats)

	doubled := CollectConcat(Range(1, 3), func(v any) any {
		return []any{v, v.(int) * 2}
	})
	assert.Equal(t, ints(1, 2, 2, 4, 3, 6), doubled)

	scalars := CollectConcat(Words("a b"), func(v any) any {
		return v.(string) + "!"
	})
	assert.Equal(t, []any{"a!", "b!"}, scalars)
}

func TestAllAny(t *testing.T) {
	short := func(v any) bool { return len(v.(string)) < 5 }

	assert.True(t, All(Words("a be see deed"), short))
	assert.False(t, All(Words("a be see deed fiver"), short))
	assert.True(t, All([]any{[]any{}, NewHash(), 1, 1.0, true}, nil))
	assert.False(t, All([]any{false, nil, true}, nil))
	assert.True(t, All(nil, nil))

	assert.True(t, Any([]any{[]any{}, 1, false}, func(v any) bool {
		return v == false
	}))
	assert.False(t, Any([]any{false, nil}, nil))
}

func TestTruthy(t *testing.T) {
	assert.False(t, Truthy(nil))
	assert.False(t, Truthy(false))
	assert.True(t, Truthy(true))
	assert.True(t, Truthy(0))
	assert.True(t, Truthy(""))
	assert.True(t, Truthy([]any{}))
}

func TestEachWithIndexAndObject(t *testing.T) {
	var indexes []int
	var seen []any
	EachWithIndex(Words("x y z"), func(v any, i int) {
		seen = append(seen, v)
		indexes = append(indexes, i)
	})
	assert.Equal(t, []int{0, 1, 2}, indexes)
	assert.Equal(t, Words("x y z"), seen)

	memo := EachWithObject(Words("1 2"), NewHash(), func(v, memo any) {
		memo.(*Hash).Set(v, v)
	})
	h := memo.(*Hash)
	assert.Equal(t, "1", h.Get("1"))
	assert.Equal(t, "2", h.Get("2"))
}

func TestWordsAndRange(t *testing.T) {
	assert.Equal(t, []any{"foo", "bar", "baz"}, Words("foo bar  baz"))
	assert.Equal(t, ints(1, 2, 3), Range(1, 3))
	assert.Equal(t, []any{}, Range(3, 1))
}
