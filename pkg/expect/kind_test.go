package expect

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type lazy struct{}

func (lazy) Tag() string { return TagEnumerator }

func TestTag(t *testing.T) {
	var nilPtr *point

	tests := []struct {
		v    any
		want string
	}{
		{nil, TagNil},
		{nilPtr, TagNil},
		{true, TagBool},
		{42, TagInteger},
		{uint16(4), TagInteger},
		{1.5, TagFloat},
		{"s", TagString},
		{[]any{}, TagArray},
		{[2]int{}, TagArray},
		{map[string]int{}, TagHash},
		{errors.New("x"), TagError},
		{func() {}, TagFunction},
		{lazy{}, TagEnumerator},
		{point{}, TagObject},
		{&point{}, TagObject},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%T", tt.v), func(t *testing.T) {
			assert.Equal(t, tt.want, Tag(tt.v))
		})
	}
}

func TestKindOf(t *testing.T) {
	assert.NoError(t, KindOf("a", "string"))
	assert.NoError(t, KindOf([]int{1}, "Array"))
	assert.NoError(t, KindOf(lazy{}, "enumerator"))

	err := KindOf(1, "string")
	require.Error(t, err)
	assert.Contains(t, err.Error(),
		"expected 1 to be a string, got integer")
}

func TestTypeOf(t *testing.T) {
	assert.NoError(t, TypeOf[string]("a"))
	assert.NoError(t, TypeOf[error](errors.New("x")))
	assert.NoError(t, TypeOf[fmt.Stringer](Greater))

	err := TypeOf[int]("a")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `expected "a" to be a int, got string`)
}
