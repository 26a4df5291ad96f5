package expect

import (
	"fmt"
	"math"
	"reflect"
	"strings"
)

// Ordering is the outcome of comparing two values. Incomparable
// is a regular outcome, not an error.
type Ordering int

const (
	Less         Ordering = -1
	Same         Ordering = 0
	Greater      Ordering = 1
	Incomparable Ordering = 2
)

func (o Ordering) String() string {
	switch o {
	case Less:
		return "less"
	case Same:
		return "same"
	case Greater:
		return "greater"
	case Incomparable:
		return "incomparable"
	}
	return fmt.Sprintf("Ordering(%d)", int(o))
}

// ParseOrdering reads an ordering name. "equal" is accepted as
// an alias for "same".
func ParseOrdering(s string) (Ordering, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "less", "lt", "-1":
		return Less, nil
	case "same", "equal", "eq", "0":
		return Same, nil
	case "greater", "gt", "1":
		return Greater, nil
	case "incomparable", "nil", "none":
		return Incomparable, nil
	}
	return Incomparable, fmt.Errorf("unknown ordering %q", s)
}

// ToOrdering converts a three-way comparison result into an
// Ordering: negative, zero and positive integers map to Less,
// Same and Greater, nil maps to Incomparable. NaN is rejected.
func ToOrdering(v any) (Ordering, bool) {
	if v == nil {
		return Incomparable, true
	}
	if o, ok := v.(Ordering); ok {
		return o, true
	}
	if s, ok := v.(string); ok {
		o, err := ParseOrdering(s)
		return o, err == nil
	}
	i, u, f, kind, ok := numeric(v)
	if !ok {
		return Incomparable, false
	}
	switch kind {
	case 'u':
		if u > 0 {
			return Greater, true
		}
		return Same, true
	case 'f':
		if math.IsNaN(f) {
			return Incomparable, false
		}
		return Ordering(cmpOrdered(f, 0)), true
	}
	return Ordering(cmpOrdered(i, 0)), true
}

// Compare orders a and b. Numbers order against numbers and
// strings against strings (bytewise). Bools are only ever Same
// or Incomparable. Sequences compare lexicographically by
// element. Any cross-type pair is Incomparable.
func Compare(a, b any) Ordering {
	if isNil(a) || isNil(b) {
		if isNil(a) && isNil(b) {
			return Same
		}
		return Incomparable
	}

	if c, ordered, ok := compareNumbers(a, b); ok {
		if !ordered {
			return Incomparable
		}
		return Ordering(c)
	}

	ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)
	switch {
	case ra.Kind() == reflect.String && rb.Kind() == reflect.String:
		return Ordering(cmpOrdered(ra.String(), rb.String()))
	case ra.Kind() == reflect.Bool && rb.Kind() == reflect.Bool:
		if ra.Bool() == rb.Bool() {
			return Same
		}
		return Incomparable
	}

	sa, aok := sequence(a)
	sb, bok := sequence(b)
	if aok && bok {
		return compareSequences(sa, sb)
	}
	if aok || bok {
		return Incomparable
	}

	if Tag(a) == Tag(b) && Equivalent(a, b) {
		return Same
	}
	return Incomparable
}

func compareSequences(a, b reflect.Value) Ordering {
	n := min(a.Len(), b.Len())
	for i := range n {
		o := Compare(a.Index(i).Interface(), b.Index(i).Interface())
		if o != Same {
			return o
		}
	}
	return Ordering(cmpOrdered(int64(a.Len()), int64(b.Len())))
}

// ExpectOrdering fails when actual differs from expected.
// actual may be an Ordering or any value accepted by
// ToOrdering.
func ExpectOrdering(actual any, expected Ordering) error {
	got, ok := ToOrdering(actual)
	if !ok {
		return fail(KindOrdering,
			"expected an ordering, got %s", show(actual))
	}
	if got != expected {
		return fail(KindOrdering,
			"expected ordering %s, got %s", expected, got)
	}
	return nil
}
