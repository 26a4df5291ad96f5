package corelib

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnumerator_NextAndStop(t *testing.T) {
	e := Enumerate(ints(1, 2))
	defer e.Close()

	v, err := e.Next()
	require.NoError(t, err)
	assert.Equal(t, 1, v)
	v, err = e.Next()
	require.NoError(t, err)
	assert.Equal(t, 2, v)

	_, err = e.Next()
	var stop *StopIteration
	require.True(t, errors.As(err, &stop))
	assert.Equal(t, "iteration reached an end", err.Error())
	assert.Equal(t, "StopIteration", stop.Kind())
}

func TestEnumerator_PeekAndRewind(t *testing.T) {
	e := Enumerate(Words("a b c"))
	defer e.Close()

	v, err := e.Peek()
	require.NoError(t, err)
	assert.Equal(t, "a", v)
	v, _ = e.Peek()
	assert.Equal(t, "a", v)
	v, _ = e.Next()
	assert.Equal(t, "a", v)
	v, _ = e.Next()
	assert.Equal(t, "b", v)

	v, err = e.Rewind().Next()
	require.NoError(t, err)
	assert.Equal(t, "a", v)

	_, err = Enumerate(nil).Peek()
	assert.Error(t, err)
}

func TestEnumerator_SnapshotAndInternalIteration(t *testing.T) {
	src := ints(1, 2, 3)
	e := Enumerate(src)
	src[0] = 99

	n, ok := e.Size()
	require.True(t, ok)
	assert.Equal(t, 3, n)

	_, _ = e.Next()
	// Internal iteration ignores the external cursor.
	assert.Equal(t, ints(1, 2, 3), e.ToSlice())
	assert.Equal(t, ints(1, 2), e.Take(2))
	assert.Equal(t, []any{}, e.Take(0))

	var seen []any
	e.Each(func(v any) { seen = append(seen, v) })
	assert.Equal(t, ints(1, 2, 3), seen)
	e.Close()
}

func TestEnumerator_WithIndexAndObject(t *testing.T) {
	e := Enumerate(Words("a b"))

	assert.Equal(t,
		[]any{[]any{"a", 0}, []any{"b", 1}},
		e.WithIndex().ToSlice(),
	)

	memo := e.WithObject([]string{}, func(v, memo any) {})
	assert.Equal(t, []string{}, memo)
}

func TestEnumerator_TagAndString(t *testing.T) {
	e := Each(ints(1))
	assert.Equal(t, "enumerator", e.Tag())
	assert.Equal(t, "#<Enumerator: size 1>", e.String())
	assert.Equal(t, "#<Enumerator: ...>", Cycle(ints(1), -1).String())
}
