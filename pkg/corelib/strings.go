package corelib

import (
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Casecmp compares a and b after folding ASCII letters to lower
// case. It returns -1, 0 or 1, or nil when b is not a string.
func Casecmp(a string, b any) any {
	s, ok := b.(string)
	if !ok {
		return nil
	}
	return strings.Compare(asciiLower(a), asciiLower(s))
}

// CasecmpP reports whether a and b are equal under Unicode case
// folding, or nil when b is not a string.
func CasecmpP(a string, b any) any {
	s, ok := b.(string)
	if !ok {
		return nil
	}
	// Casers are stateful, so each call builds its own.
	fa := cases.Fold().String(norm.NFC.String(a))
	fb := cases.Fold().String(norm.NFC.String(s))
	return fa == fb
}

// Spaceship compares two strings bytewise, returning -1, 0 or
// 1, or nil when b is not a string.
func Spaceship(a string, b any) any {
	s, ok := b.(string)
	if !ok {
		return nil
	}
	return strings.Compare(a, s)
}

func asciiLower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if 'A' <= c && c <= 'Z' {
			b[i] = c + 'a' - 'A'
		}
	}
	return string(b)
}

// Capitalize upper-cases the first character and lower-cases
// the rest.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return cases.Upper(language.Und).String(string(r)) +
		cases.Lower(language.Und).String(s[size:])
}

// Swapcase inverts the case of every letter.
func Swapcase(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case unicode.IsUpper(r):
			return unicode.ToLower(r)
		case unicode.IsLower(r):
			return unicode.ToUpper(r)
		}
		return r
	}, s)
}

func padding(pad string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(pad)
	out := make([]rune, n)
	for i := range out {
		out[i] = runes[i%len(runes)]
	}
	return string(out)
}

func justify(s string, width int, pad string, left float64) (string, error) {
	if pad == "" {
		return "", &ArgumentError{Message: "zero width padding"}
	}
	total := width - utf8.RuneCountInString(s)
	if total <= 0 {
		return s, nil
	}
	l := int(float64(total) * left)
	r := total - l
	return padding(pad, l) + s + padding(pad, r), nil
}

// Center pads s on both sides to width, favouring the right
// side when the padding is uneven.
func Center(s string, width int, pad string) (string, error) {
	return justify(s, width, pad, 0.5)
}

// Ljust pads s on the right to width.
func Ljust(s string, width int, pad string) (string, error) {
	return justify(s, width, pad, 0)
}

// Rjust pads s on the left to width.
func Rjust(s string, width int, pad string) (string, error) {
	return justify(s, width, pad, 1)
}

// Squeeze collapses runs of the same character. When set is
// non-empty only characters in set are squeezed.
func Squeeze(s, set string) string {
	var b strings.Builder
	var prev rune = -1
	for _, r := range s {
		if r == prev && (set == "" || strings.ContainsRune(set, r)) {
			continue
		}
		b.WriteRune(r)
		prev = r
	}
	return b.String()
}

// Reverse reverses the characters of s after composing it to
// NFC.
func Reverse(s string) string {
	runes := []rune(norm.NFC.String(s))
	slices.Reverse(runes)
	return string(runes)
}

// Chars splits s into its characters.
func Chars(s string) []any {
	out := []any{}
	for _, r := range norm.NFC.String(s) {
		out = append(out, string(r))
	}
	return out
}
