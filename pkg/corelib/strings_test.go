package corelib

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"digital.vasic.corespec/pkg/expect"
)

func TestCasecmp(t *testing.T) {
	tests := []struct {
		a    string
		b    any
		want any
	}{
		{"aBcDeF", "abcdef", 0},
		{"abcdef", "abcde", 1},
		{"abcdef", "abcdefg", -1},
		{"abcdef", "ABCDEF", 0},
		{"asdf", "asd", 1},
		{"asdf", 1, nil},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Casecmp(tt.a, tt.b), "%q <=> %v", tt.a, tt.b)
	}
}

func TestCasecmpOrdering(t *testing.T) {
	assert.NoError(t,
		expect.ExpectOrdering(Casecmp("asdf", "asd"), expect.Greater))
	assert.NoError(t,
		expect.ExpectOrdering(Casecmp("asdf", 1), expect.Incomparable))
}

func TestCasecmpP(t *testing.T) {
	assert.Equal(t, true, CasecmpP("aBcDeF", "abcdef"))
	assert.Equal(t, true, CasecmpP("äöü", "ÄÖÜ"))
	assert.Equal(t, false, CasecmpP("abc", "abd"))
	assert.Nil(t, CasecmpP("abc", 1))
}

func TestSpaceship(t *testing.T) {
	assert.Equal(t, -1, Spaceship("B", "a"))
	assert.Equal(t, 0, Spaceship("a", "a"))
	assert.Nil(t, Spaceship("a", 1))
}

func TestCaseConversions(t *testing.T) {
	assert.Equal(t, "Hello", Capitalize("hELLO"))
	assert.Equal(t, "Élan", Capitalize("éLAN"))
	assert.Equal(t, "", Capitalize(""))
	assert.Equal(t, "hELLO wORLD", Swapcase("Hello World"))
}

func TestJustify(t *testing.T) {
	tests := []struct {
		name string
		fn   func(string, int, string) (string, error)
		s    string
		w    int
		pad  string
		want string
	}{
		{"center", Center, "abc", 6, "*", "*abc**"},
		{"center repeat", Center, "hello", 20, "123", "1231231hello12312312"},
		{"center narrow", Center, "abc", 2, " ", "abc"},
		{"ljust", Ljust, "abc", 6, "12", "abc121"},
		{"rjust", Rjust, "abc", 5, "12", "12abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.fn(tt.s, tt.w, tt.pad)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := Center("abc", 10, "")
	assert.EqualError(t, err, "zero width padding")
}

func TestSqueezeReverseChars(t *testing.T) {
	assert.Equal(t, "abc", Squeeze("aaabbbccc", ""))
	assert.Equal(t, "abbb", Squeeze("aaabbb", "a"))
	assert.Equal(t, "cba", Reverse("abc"))
	assert.Equal(t, "éa", Reverse("aé"))
	assert.Equal(t, []any{"h", "é"}, Chars("hé"))
}
